package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/atomview/engine/colors"
)

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

// uniforms caches uniform locations of one program.
type uniforms struct {
	prog uint32
	locs map[string]int32
}

func newUniforms(prog uint32) *uniforms {
	return &uniforms{prog: prog, locs: make(map[string]int32)}
}

func (u *uniforms) loc(name string) int32 {
	if l, ok := u.locs[name]; ok {
		return l
	}
	l := gl.GetUniformLocation(u.prog, gl.Str(name+"\x00"))
	u.locs[name] = l
	return l
}

// set uploads one uniform value. Unknown names and types are ignored, as
// GL does for inactive uniforms.
func (u *uniforms) set(name string, v any) {
	l := u.loc(name)
	if l < 0 {
		return
	}
	switch v := v.(type) {
	case mgl32.Mat4:
		gl.UniformMatrix4fv(l, 1, false, &v[0])
	case [16]float32:
		gl.UniformMatrix4fv(l, 1, false, &v[0])
	case mgl32.Vec3:
		gl.Uniform3f(l, v[0], v[1], v[2])
	case float32:
		gl.Uniform1f(l, v)
	case int32:
		gl.Uniform1i(l, v)
	case int:
		gl.Uniform1i(l, int32(v))
	case [3]float32:
		gl.Uniform3f(l, v[0], v[1], v[2])
	case [4]float32:
		gl.Uniform4f(l, v[0], v[1], v[2], v[3])
	case colors.Color:
		gl.Uniform4f(l, v[0], v[1], v[2], v[3])
	}
}
