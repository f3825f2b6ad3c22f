// Package software provides a pure-CPU rendering backend for drawpool:
// a triangle-rasterizing Painter and pixmap-backed textures and frame
// buffers. It exists for headless use and tests; a GPU backend plugs in
// behind the same interfaces.
package software

import (
	"image"

	"github.com/gogpu/drawpool"
)

// Pixmap represents a rectangular RGBA pixel buffer with 8 bits per
// channel, stored row-major without padding.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a pixmap of the given size, initially transparent.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// FromImage copies an image into a new pixmap.
func FromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	p := NewPixmap(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := (y*p.width + x) * 4
			p.data[i+0] = uint8(r >> 8)
			p.data[i+1] = uint8(g >> 8)
			p.data[i+2] = uint8(bl >> 8)
			p.data[i+3] = uint8(a >> 8)
		}
	}
	return p
}

// Width returns the pixmap width in pixels.
func (p *Pixmap) Width() int { return p.width }

// Height returns the pixmap height in pixels.
func (p *Pixmap) Height() int { return p.height }

// Data returns the raw RGBA pixel data. The slice is shared, not copied.
func (p *Pixmap) Data() []uint8 { return p.data }

// Image returns an *image.RGBA view sharing this pixmap's buffer.
// Mutations through either are visible in both.
func (p *Pixmap) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    p.data,
		Stride: p.width * 4,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// Clear fills the whole pixmap with a color.
func (p *Pixmap) Clear(c drawpool.RGBA) {
	r, g, b, a := c.Color().RGBA()
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = uint8(r >> 8)
		p.data[i+1] = uint8(g >> 8)
		p.data[i+2] = uint8(b >> 8)
		p.data[i+3] = uint8(a >> 8)
	}
}

// SetPixel writes a color at (x, y). Out-of-bounds writes are ignored.
func (p *Pixmap) SetPixel(x, y int, c drawpool.RGBA) {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = clampByte(c.R * 255)
	p.data[i+1] = clampByte(c.G * 255)
	p.data[i+2] = clampByte(c.B * 255)
	p.data[i+3] = clampByte(c.A * 255)
}

// GetPixel reads the color at (x, y). Out-of-bounds reads return
// transparent black.
func (p *Pixmap) GetPixel(x, y int) drawpool.RGBA {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return drawpool.Transparent
	}
	i := (y*p.width + x) * 4
	return drawpool.RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
