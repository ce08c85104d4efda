// Package preview renders sticker images as terminal thumbnails built from
// upper half-block cells, two pixels per cell.
package preview

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const halfBlock = "▀"

// Decode reads any image format the catalog serves.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding thumbnail: %w", err)
	}
	return img, nil
}

// Fit scales src to fit inside a box of cols x rows cells, keeping the aspect
// ratio, and composites it onto bg. The result is cols wide and 2*rows tall.
func Fit(src image.Image, cols, rows int, bg color.Color) *image.RGBA {
	w, h := cols, rows*2
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	sb := src.Bounds()
	if sb.Empty() || w == 0 || h == 0 {
		return dst
	}
	sw, sh := sb.Dx(), sb.Dy()
	tw, th := w, sh*w/sw
	if th > h {
		tw, th = sw*h/sh, h
	}
	tw, th = max(tw, 1), max(th, 1)
	off := image.Pt((w-tw)/2, (h-th)/2)
	draw.ApproxBiLinear.Scale(dst, image.Rectangle{Min: off, Max: off.Add(image.Pt(tw, th))}, src, sb, draw.Over, nil)
	return dst
}

// Render turns an image whose height is even into rows of half-block cells:
// the top pixel is the foreground, the bottom pixel the background.
func Render(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y+1 < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			sb.WriteString(lipgloss.NewStyle().
				Foreground(hex(img.RGBAAt(x, y))).
				Background(hex(img.RGBAAt(x, y+1))).
				Render(halfBlock))
		}
	}
	return sb.String()
}

// Placeholder is shown where a thumbnail could not be loaded.
func Placeholder(cols, rows int) string {
	style := lipgloss.NewStyle().
		Width(cols).
		Height(rows).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(lipgloss.Color("8"))
	return style.Render("?")
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
