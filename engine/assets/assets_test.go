package assets

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadShader(t *testing.T) {
	for _, name := range []string{"spheres", "quad"} {
		vs, fs, err := LoadProgram(name)
		if err != nil {
			t.Fatalf("LoadProgram(%q) error = %v", name, err)
		}
		for _, src := range []string{vs, fs} {
			if !strings.HasPrefix(src, "#version 330 core") {
				t.Errorf("%s: missing version line", name)
			}
			if !strings.HasSuffix(src, "\x00") {
				t.Errorf("%s: not null-terminated", name)
			}
		}
	}
	if _, err := LoadShader("missing.vert"); err == nil {
		t.Error("LoadShader(missing) error = nil")
	}
}

func TestPNGRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	path := filepath.Join(t.TempDir(), "out.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	got, err := LoadPNG(path)
	if err != nil {
		t.Fatalf("LoadPNG() error = %v", err)
	}
	if got.RGBAAt(2, 1) != img.RGBAAt(2, 1) || got.Rect != img.Rect {
		t.Errorf("round trip mismatch: %v %v", got.Rect, got.RGBAAt(2, 1))
	}
}

func TestPixelsSubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(2, 2, color.RGBA{R: 9, A: 255})
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
	w, h, pix := Pixels(sub)
	if w != 2 || h != 2 || len(pix) != 16 {
		t.Fatalf("Pixels() = %d, %d, len %d", w, h, len(pix))
	}
	// (2,2) is the bottom-right pixel of the sub image.
	if pix[12] != 9 {
		t.Errorf("pix = %v", pix)
	}
}
