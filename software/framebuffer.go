package software

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/drawpool"
)

// FrameBuffer is a pixmap-backed offscreen target. Binding it redirects
// the painter's rasterization into the framebuffer's pixmap; Draw
// composites the pixmap back onto the painter's frame with the
// configured scaling filter and composition mode.
type FrameBuffer struct {
	painter *Painter
	pixmap  *Pixmap
	prev    *Pixmap

	blendDisabled bool
	composition   drawpool.CompositionMode
	smooth        bool

	draws int
}

// NewFrameBuffer creates an offscreen target of the given size rendering
// through painter.
func NewFrameBuffer(painter *Painter, width, height int) *FrameBuffer {
	return &FrameBuffer{
		painter: painter,
		pixmap:  NewPixmap(width, height),
	}
}

// NewAllocator returns a drawpool.FrameBufferAllocator producing
// framebuffers of the given size on painter.
func NewAllocator(painter *Painter, width, height int) drawpool.FrameBufferAllocator {
	return func() drawpool.FrameBuffer {
		return NewFrameBuffer(painter, width, height)
	}
}

// Pixmap returns the offscreen pixel buffer.
func (f *FrameBuffer) Pixmap() *Pixmap { return f.pixmap }

// Draws returns how many times the framebuffer was composited onto the
// frame.
func (f *FrameBuffer) Draws() int { return f.draws }

// IsDrawable reports whether the framebuffer has a usable target.
func (f *FrameBuffer) IsDrawable() bool {
	return f.pixmap != nil && f.pixmap.Width() > 0 && f.pixmap.Height() > 0
}

// Bind redirects the painter into this framebuffer and clears it.
func (f *FrameBuffer) Bind() {
	f.prev = f.painter.setTarget(f.pixmap)
	f.pixmap.Clear(drawpool.Transparent)
}

// Release restores the painter's previous target.
func (f *FrameBuffer) Release() {
	f.painter.setTarget(f.prev)
	f.prev = nil
}

// Draw composites the src region of the framebuffer onto the dest region
// of the painter's frame. Empty rectangles default to the full surface.
func (f *FrameBuffer) Draw(dest, src drawpool.Rect) {
	if !f.IsDrawable() {
		return
	}
	f.draws++

	frame := f.painter.Frame()
	if src.IsEmpty() {
		src = drawpool.R(0, 0, float64(f.pixmap.Width()), float64(f.pixmap.Height()))
	}
	if dest.IsEmpty() {
		dest = drawpool.R(0, 0, float64(frame.Width()), float64(frame.Height()))
	}

	dr := rectToImage(dest)
	sr := rectToImage(src)

	var scaler xdraw.Scaler = xdraw.NearestNeighbor
	if f.smooth {
		scaler = xdraw.ApproxBiLinear
	}

	switch f.composition {
	case drawpool.CompositionMultiply, drawpool.CompositionLight:
		// Scale into a staging image, then modulate the frame by it.
		tmp := image.NewRGBA(dr)
		scaler.Scale(tmp, dr, f.pixmap.Image(), sr, xdraw.Src, nil)
		modulate(frame, tmp, dr)
	default:
		op := xdraw.Over
		if f.blendDisabled {
			op = xdraw.Src
		}
		scaler.Scale(frame.Image(), dr, f.pixmap.Image(), sr, op, nil)
	}
}

// Resize reallocates the offscreen buffer. Content is discarded.
func (f *FrameBuffer) Resize(size drawpool.Point) {
	f.pixmap = NewPixmap(int(size.X), int(size.Y))
}

// DisableBlend makes Draw overwrite the destination instead of alpha
// compositing over it.
func (f *FrameBuffer) DisableBlend() {
	f.blendDisabled = true
}

// SetCompositionMode selects how Draw combines with the frame.
func (f *FrameBuffer) SetCompositionMode(mode drawpool.CompositionMode) {
	f.composition = mode
}

// SetSmooth toggles bilinear filtering when Draw scales.
func (f *FrameBuffer) SetSmooth(enabled bool) {
	f.smooth = enabled
}

func rectToImage(r drawpool.Rect) image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.Right()+0.5), int(r.Bottom()+0.5))
}

// modulate multiplies the frame's pixels by the staged light map inside
// region, leaving the frame's alpha untouched.
func modulate(frame *Pixmap, staged *image.RGBA, region image.Rectangle) {
	bounds := region.Intersect(image.Rect(0, 0, frame.Width(), frame.Height()))
	data := frame.Data()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s := staged.RGBAAt(x, y)
			i := (y*frame.Width() + x) * 4
			data[i+0] = mulByte(data[i+0], s.R)
			data[i+1] = mulByte(data[i+1], s.G)
			data[i+2] = mulByte(data[i+2], s.B)
		}
	}
}

func mulByte(a, b uint8) uint8 {
	return uint8((uint32(a)*uint32(b) + 127) / 255)
}
