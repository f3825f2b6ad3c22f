package software

import (
	"math"

	"github.com/gogpu/drawpool"
)

// Painter rasterizes submitted coordinate batches into a pixmap. It
// implements drawpool.Painter with a plain barycentric triangle filler:
// no subpixel coverage, nearest texture sampling.
//
// The painter renders into its frame pixmap unless a FrameBuffer is
// bound, in which case batches land in the framebuffer's pixmap until
// it is released.
type Painter struct {
	frame  *Pixmap
	target *Pixmap

	state drawpool.RenderState
	saved []drawpool.RenderState

	drawCalls  int
	stateLoads int
}

// NewPainter creates a painter with a frame target of the given size.
func NewPainter(width, height int) *Painter {
	frame := NewPixmap(width, height)
	return &Painter{
		frame:  frame,
		target: frame,
		state:  drawpool.RenderState{Color: drawpool.White, Opacity: 1},
	}
}

// Frame returns the painter's frame pixmap.
func (p *Painter) Frame() *Pixmap { return p.frame }

// DrawCalls returns the number of coordinate batches submitted so far.
func (p *Painter) DrawCalls() int { return p.drawCalls }

// StateLoads returns the number of render states applied so far.
func (p *Painter) StateLoads() int { return p.stateLoads }

// setTarget redirects rasterization to t and returns the previous
// target.
func (p *Painter) setTarget(t *Pixmap) *Pixmap {
	prev := p.target
	p.target = t
	return prev
}

// ExecuteState applies a render state for subsequent batches.
func (p *Painter) ExecuteState(state drawpool.RenderState) {
	p.state = state
	p.stateLoads++
}

// SaveAndResetState pushes the current state and resets to defaults.
func (p *Painter) SaveAndResetState() {
	p.saved = append(p.saved, p.state)
	p.state = drawpool.RenderState{Color: drawpool.White, Opacity: 1}
}

// RestoreSavedState pops the most recently saved state.
func (p *Painter) RestoreSavedState() {
	if n := len(p.saved); n > 0 {
		p.state = p.saved[n-1]
		p.saved = p.saved[:n-1]
	}
}

// DrawCoords rasterizes one batch with the current state.
func (p *Painter) DrawCoords(buf *drawpool.CoordsBuffer, topology drawpool.Topology) {
	if buf == nil || buf.VertexCount() == 0 || topology == drawpool.TopologyNone {
		return
	}
	p.drawCalls++

	v := buf.Vertices()
	uv := buf.TexCoords()
	textured := buf.HasTexCoords() && p.state.Texture != nil

	switch topology {
	case drawpool.TopologyTriangleStrip:
		// Strip-ordered quads: vertices TL, TR, BL, BR per quad.
		for i := 0; i+7 < len(v); i += 8 {
			p.fillTriangle(v[i:i+6], uvSlice(uv, i, 6), textured)
			p.fillTriangle(
				[]float64{v[i+4], v[i+5], v[i+2], v[i+3], v[i+6], v[i+7]},
				stripUV(uv, i, textured),
				textured)
		}
	default:
		for i := 0; i+5 < len(v); i += 6 {
			p.fillTriangle(v[i:i+6], uvSlice(uv, i, 6), textured)
		}
	}
}

func uvSlice(uv []float64, i, n int) []float64 {
	if i+n <= len(uv) {
		return uv[i : i+n]
	}
	return nil
}

func stripUV(uv []float64, i int, textured bool) []float64 {
	if !textured || i+8 > len(uv) {
		return nil
	}
	return []float64{uv[i+4], uv[i+5], uv[i+2], uv[i+3], uv[i+6], uv[i+7]}
}

// fillTriangle rasterizes one triangle given three x,y pairs and,
// optionally, three u,v pairs in texture pixel space.
func (p *Painter) fillTriangle(v []float64, uv []float64, textured bool) {
	ax, ay := v[0], v[1]
	bx, by := v[2], v[3]
	cx, cy := v[4], v[5]

	area := (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
	if area == 0 {
		return
	}

	minX := int(math.Floor(math.Min(ax, math.Min(bx, cx))))
	maxX := int(math.Ceil(math.Max(ax, math.Max(bx, cx))))
	minY := int(math.Floor(math.Min(ay, math.Min(by, cy))))
	maxY := int(math.Ceil(math.Max(ay, math.Max(by, cy))))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > p.target.Width() {
		maxX = p.target.Width()
	}
	if maxY > p.target.Height() {
		maxY = p.target.Height()
	}

	clip := p.state.ClipRect
	clipped := !clip.IsEmpty()

	textured = textured && uv != nil && p.state.Texture != nil
	var texPix *Pixmap
	if textured {
		tex, ok := p.state.Texture.(*Texture)
		if !ok || tex.IsEmpty() {
			textured = false
		} else {
			texPix = tex.Pixmap()
		}
	}

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float64(x) + 0.5

			// Barycentric weights relative to vertex a.
			wb := ((px-ax)*(cy-ay) - (py-ay)*(cx-ax)) / area
			wc := ((bx-ax)*(py-ay) - (by-ay)*(px-ax)) / area
			wa := 1 - wb - wc
			if wa < 0 || wb < 0 || wc < 0 {
				continue
			}
			if clipped && !clip.Contains(drawpool.Pt(px, py)) {
				continue
			}

			c := p.state.Color
			if textured {
				u := wa*uv[0] + wb*uv[2] + wc*uv[4]
				vv := wa*uv[1] + wb*uv[3] + wc*uv[5]
				t := sampleNearest(texPix, u, vv)
				c = drawpool.RGBA{
					R: t.R * c.R,
					G: t.G * c.G,
					B: t.B * c.B,
					A: t.A * c.A,
				}
			}
			c.A *= p.state.Opacity
			if c.A <= 0 {
				continue
			}
			p.blendPixel(x, y, c)
		}
	}
}

// sampleNearest reads the texel nearest to (u, v), clamping at edges.
func sampleNearest(pm *Pixmap, u, v float64) drawpool.RGBA {
	x := int(u)
	y := int(v)
	if x < 0 {
		x = 0
	} else if x >= pm.Width() {
		x = pm.Width() - 1
	}
	if y < 0 {
		y = 0
	} else if y >= pm.Height() {
		y = pm.Height() - 1
	}
	return pm.GetPixel(x, y)
}

// blendPixel combines a source color into the target at (x, y) according
// to the current blend equation and composition mode.
func (p *Painter) blendPixel(x, y int, src drawpool.RGBA) {
	dst := p.target.GetPixel(x, y)

	if p.state.BlendEquation == drawpool.BlendMax {
		p.target.SetPixel(x, y, drawpool.RGBA{
			R: math.Max(dst.R, src.R*src.A),
			G: math.Max(dst.G, src.G*src.A),
			B: math.Max(dst.B, src.B*src.A),
			A: math.Max(dst.A, src.A),
		})
		return
	}

	switch p.state.CompositionMode {
	case drawpool.CompositionMultiply, drawpool.CompositionLight:
		p.target.SetPixel(x, y, drawpool.RGBA{
			R: dst.R * src.R,
			G: dst.G * src.G,
			B: dst.B * src.B,
			A: dst.A,
		})
	case drawpool.CompositionAdd:
		p.target.SetPixel(x, y, drawpool.RGBA{
			R: math.Min(1, dst.R+src.R*src.A),
			G: math.Min(1, dst.G+src.G*src.A),
			B: math.Min(1, dst.B+src.B*src.A),
			A: math.Max(dst.A, src.A),
		})
	default:
		// Source over.
		a := src.A
		p.target.SetPixel(x, y, drawpool.RGBA{
			R: src.R*a + dst.R*(1-a),
			G: src.G*a + dst.G*(1-a),
			B: src.B*a + dst.B*(1-a),
			A: a + dst.A*(1-a),
		})
	}
}
