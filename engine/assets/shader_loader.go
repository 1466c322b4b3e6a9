// Package assets bundles the GLSL sources and reads and writes images.
package assets

import (
	"embed"
	"fmt"
	"path"
)

//go:embed shaders/*.vert shaders/*.frag
var shaders embed.FS

// LoadShader returns a bundled GLSL file as a null-terminated string for
// OpenGL.
func LoadShader(name string) (string, error) {
	b, err := shaders.ReadFile(path.Join("shaders", name))
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	// Ensure null termination for gl.Strs
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}

// LoadProgram returns the vertex and fragment sources of a shader pair
// named name.vert and name.frag.
func LoadProgram(name string) (vert, frag string, err error) {
	if vert, err = LoadShader(name + ".vert"); err != nil {
		return "", "", err
	}
	if frag, err = LoadShader(name + ".frag"); err != nil {
		return "", "", err
	}
	return vert, frag, nil
}
