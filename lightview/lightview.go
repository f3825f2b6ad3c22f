// Package lightview accumulates dynamic light sources per frame and
// renders them through the drawpool engine's framed light pool.
//
// Colored sources are drawn additively (MAX blend) into the light map;
// zero-color sources darken it with the shade texture at a captured
// opacity. The light map itself is composited over the scene by the
// engine using the light composition mode, and is re-rendered only when
// the accumulated sources actually changed.
package lightview

import "github.com/gogpu/drawpool"

// dayLuminance is the ambient luminance at or above which the scene is
// considered fully lit and light rendering is skipped entirely.
const dayLuminance = 250.0 / 255.0

// Source is one accumulated light source. A black color marks a shadow
// source, drawn with the shade texture instead of additive light.
type Source struct {
	Pos       drawpool.Point
	Color     drawpool.RGBA
	Intensity float64

	// opacity is the engine's global opacity captured when the source
	// was added.
	opacity float64
}

// LightView owns the framed light pool and the per-frame source list.
// Not safe for concurrent use; accumulate and draw from one build flow.
type LightView struct {
	engine *drawpool.Engine
	pool   *drawpool.Pool

	lightTexture drawpool.Texture
	shadeTexture drawpool.Texture

	tileSize    float64
	size        drawpool.Point
	globalColor drawpool.RGBA

	sources []Source
}

// New registers the framed light pool on the engine and returns a light
// view that draws sources with lightTexture and shadows with
// shadeTexture.
func New(engine *drawpool.Engine, lightTexture, shadeTexture drawpool.Texture) *LightView {
	return &LightView{
		engine:       engine,
		pool:         engine.CreateFramedPool(drawpool.PoolLight),
		lightTexture: lightTexture,
		shadeTexture: shadeTexture,
		tileSize:     32,
		globalColor:  drawpool.White,
	}
}

// SetGlobalLight sets the ambient light color for the frame.
func (lv *LightView) SetGlobalLight(color drawpool.RGBA) {
	lv.globalColor = color
}

// GlobalLight returns the current ambient light color.
func (lv *LightView) GlobalLight() drawpool.RGBA {
	return lv.globalColor
}

// IsDark reports whether the ambient light is low enough for light
// rendering to matter at all.
func (lv *LightView) IsDark() bool {
	return lv.globalColor.Luminance() < dayLuminance
}

// SetSmooth toggles filtered scaling of the light map.
func (lv *LightView) SetSmooth(enabled bool) {
	lv.pool.Framed().SetSmooth(enabled)
}

// Resize reallocates the light map for a view of size tiles, each
// tileSize pixels across.
func (lv *LightView) Resize(size drawpool.Point, tileSize float64) {
	lv.tileSize = tileSize
	lv.size = size.Mul(tileSize)
	lv.pool.Framed().Resize(lv.size)
}

// AddLightSource accumulates one source for the current frame. A source
// at the same position and color as the immediately preceding one merges
// into it, keeping the maximum intensity. No-op while the scene is fully
// lit.
func (lv *LightView) AddLightSource(pos drawpool.Point, color drawpool.RGBA, intensity float64) {
	if !lv.IsDark() {
		return
	}

	if n := len(lv.sources); n > 0 {
		prev := &lv.sources[n-1]
		if prev.Pos == pos && prev.Color == color {
			if intensity > prev.Intensity {
				prev.Intensity = intensity
			}
			return
		}
	}

	lv.sources = append(lv.sources, Source{
		Pos:       pos,
		Color:     color,
		Intensity: intensity,
		opacity:   lv.engine.Opacity(),
	})
}

// Draw renders the accumulated sources into the light pool and clears
// them. While the scene is fully lit the framed pool is disabled for the
// frame, so no offscreen render or composite happens at all.
func (lv *LightView) Draw(dest, src drawpool.Rect) {
	dark := lv.IsDark()
	lv.pool.Framed().SetEnabled(dark)
	if !dark {
		return
	}

	e := lv.engine
	e.Use(drawpool.PoolLight, dest, src)

	// Full-frame ambient tint under all sources.
	e.SetColor(lv.globalColor)
	e.AddFilledRect(drawpool.RectFromSize(lv.size))

	shadeSize := lv.tileSize * 3.3
	shadeOffset := lv.tileSize * 1.8

	flushed := true
	for _, s := range lv.sources {
		if !isShadow(s.Color) {
			alpha := s.opacity
			if a := s.Intensity / 6; a < alpha {
				alpha = a
			}
			radius := s.Intensity * lv.tileSize
			e.SetBlendEquation(drawpool.BlendMax)
			e.SetColor(s.Color.WithAlpha(alpha))
			e.AddTexturedRect(drawpool.R(s.Pos.X-radius, s.Pos.Y-radius, radius*2, radius*2), lv.lightTexture)
			flushed = true
			continue
		}

		// Cut the additive batch before switching blend behavior.
		if flushed {
			e.Flush()
			flushed = false
		}
		e.ResetBlendEquation()
		e.SetOpacity(s.opacity)
		e.SetColor(lv.globalColor)
		e.AddTexturedRect(drawpool.R(s.Pos.X-shadeOffset, s.Pos.Y-shadeOffset, shadeSize, shadeSize), lv.shadeTexture)
		e.ResetOpacity()
	}

	e.ResetColor()
	e.ResetBlendEquation()

	lv.sources = lv.sources[:0]
}

func isShadow(c drawpool.RGBA) bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}
