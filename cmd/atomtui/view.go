package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

var (
	background = color.RGBA{0x0B, 0x0F, 0x14, 0xFF}
	focusColor = color.RGBA{0x7C, 0x3A, 0xED, 0xFF}

	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := titleStyle.Render(fmt.Sprintf(" atomview ─ %d views ", m.views.Len()))
	footer := lipgloss.JoinVertical(lipgloss.Left,
		dimStyle.Render(" "+m.status),
		m.help.View(keys),
	)
	rows := m.height - headerHeight - lipgloss.Height(footer)
	return lipgloss.JoinVertical(lipgloss.Left, header, m.render(m.width, max(rows, 0)), footer)
}

// render composes the attached surfaces and prints them as half-block
// cells, clipped to cols×rows cells.
func (m model) render(cols, rows int) string {
	img := m.compose()
	b := img.Bounds()
	cols = min(cols, b.Dx())
	rows = min(rows, b.Dy()/2)

	var sb strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		// Runs of identical cells share one styled string.
		for x := 0; x < cols; {
			top, bot := img.RGBAAt(x, 2*r), img.RGBAAt(x, 2*r+1)
			n := 1
			for x+n < cols && img.RGBAAt(x+n, 2*r) == top && img.RGBAAt(x+n, 2*r+1) == bot {
				n++
			}
			style := lipgloss.NewStyle().Foreground(hex(top)).Background(hex(bot))
			sb.WriteString(style.Render(strings.Repeat("▀", n)))
			x += n
		}
	}
	return sb.String()
}

// compose draws every surface over the background and outlines the focused
// one.
func (m model) compose() *image.RGBA {
	w, h := m.doc.Extent()
	w, h = w+gap, h+gap+h%2
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Rect, image.NewUniform(background), image.Point{}, draw.Src)
	for _, s := range m.doc.Children() {
		src := s.Image()
		draw.Copy(canvas, s.Bounds().Min, src, src.Bounds(), draw.Over, nil)
		if s == m.focus {
			outline(canvas, s.Bounds().Inset(-1), focusColor)
		}
	}
	return canvas
}

func outline(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X-1, y, c)
	}
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
