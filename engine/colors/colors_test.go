package colors

import "testing"

func TestHex(t *testing.T) {
	c := Hex(0xFF0D0D)
	if got := c.HexString(); got != "#ff0d0d" {
		t.Errorf("Hex(0xFF0D0D).HexString() = %q, want %q", got, "#ff0d0d")
	}
	if c[3] != 1 {
		t.Errorf("Hex alpha = %v, want 1", c[3])
	}
}

func TestNRGBAClamps(t *testing.T) {
	c := Color{-1, 2, 0.5, 1}
	n := c.NRGBA()
	if n.R != 0 || n.G != 255 || n.B != 128 || n.A != 255 {
		t.Errorf("NRGBA() = %+v, want {0 255 128 255}", n)
	}
}

func TestWithAlpha(t *testing.T) {
	c := White.WithAlpha(0.25)
	if c[3] != 0.25 {
		t.Errorf("WithAlpha(0.25) alpha = %v", c[3])
	}
	if White[3] != 1 {
		t.Error("WithAlpha modified the receiver's source value")
	}
}
