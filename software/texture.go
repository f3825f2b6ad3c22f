package software

import (
	"sync/atomic"

	"github.com/gogpu/drawpool"
)

// nextTextureID hands out process-unique texture identities.
var nextTextureID atomic.Uint64

// Texture is a pixmap-backed implementation of drawpool.Texture.
// Opacity is determined once at construction by scanning the alpha
// channel; the pixel data is treated as immutable afterwards.
type Texture struct {
	id          uint64
	pixmap      *Pixmap
	opaque      bool
	superimpose bool
}

// NewTexture wraps a pixmap as a texture.
func NewTexture(pm *Pixmap) *Texture {
	t := &Texture{
		id:     nextTextureID.Add(1),
		pixmap: pm,
	}
	t.opaque = scanOpaque(pm)
	return t
}

func scanOpaque(pm *Pixmap) bool {
	if pm == nil || pm.width == 0 || pm.height == 0 {
		return false
	}
	data := pm.Data()
	for i := 3; i < len(data); i += 4 {
		if data[i] != 0xff {
			return false
		}
	}
	return true
}

// SetSuperimpose marks the texture as drawable on top of others without
// changing the result, letting the batcher drop geometry hidden below it.
func (t *Texture) SetSuperimpose(enabled bool) { t.superimpose = enabled }

// Pixmap returns the backing pixel buffer.
func (t *Texture) Pixmap() *Pixmap { return t.pixmap }

// ID returns the texture's unique identity.
func (t *Texture) ID() uint64 { return t.id }

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() drawpool.Point {
	if t.pixmap == nil {
		return drawpool.Point{}
	}
	return drawpool.Pt(float64(t.pixmap.Width()), float64(t.pixmap.Height()))
}

// IsEmpty reports whether the texture has no pixels.
func (t *Texture) IsEmpty() bool {
	return t.pixmap == nil || t.pixmap.Width() == 0 || t.pixmap.Height() == 0
}

// IsOpaque reports whether every texel is fully opaque.
func (t *Texture) IsOpaque() bool { return t.opaque }

// CanSuperimpose reports whether the texture may fully cover geometry
// beneath it.
func (t *Texture) CanSuperimpose() bool { return t.superimpose }
