package drawpool

// BlendEquation selects how submitted fragments combine with the target.
type BlendEquation uint8

const (
	// BlendAdd is the standard source-over equation.
	BlendAdd BlendEquation = iota

	// BlendMax keeps the per-channel maximum of source and destination.
	// Used for accumulating overlapping light sources.
	BlendMax
)

// String returns a string representation of the blend equation.
func (e BlendEquation) String() string {
	switch e {
	case BlendAdd:
		return "Add"
	case BlendMax:
		return "Max"
	}
	return "Unknown"
}

// CompositionMode selects how a framed pool's target (or a batch) is
// combined with the frame.
type CompositionMode uint8

const (
	// CompositionNormal is standard alpha compositing (source over).
	CompositionNormal CompositionMode = iota

	// CompositionMultiply multiplies source and destination colors.
	CompositionMultiply

	// CompositionAdd adds source to destination colors.
	CompositionAdd

	// CompositionLight modulates the destination by the source light map.
	// Used for compositing the light layer over the scene.
	CompositionLight
)

// String returns a string representation of the composition mode.
func (m CompositionMode) String() string {
	switch m {
	case CompositionNormal:
		return "Normal"
	case CompositionMultiply:
		return "Multiply"
	case CompositionAdd:
		return "Add"
	case CompositionLight:
		return "Light"
	}
	return "Unknown"
}

// RenderState captures everything that must match for two draw requests to
// share a batch: texture, color modulation, opacity, blend equation,
// composition mode, clip rectangle and shader program.
//
// RenderState is a value type with structural equality: two states with
// identical fields are interchangeable regardless of where they came from.
type RenderState struct {
	Texture         Texture
	Color           RGBA
	Opacity         float64
	BlendEquation   BlendEquation
	CompositionMode CompositionMode
	ClipRect        Rect
	ShaderProgram   string
}

// defaultRenderState returns the state every frame starts from.
func defaultRenderState() RenderState {
	return RenderState{Color: White, Opacity: 1}
}

// hash returns a stable 64-bit digest of the state for framed-pool change
// detection.
func (s RenderState) hash() uint64 {
	h := hashSeed
	if s.Texture != nil {
		h = hashCombine(h, s.Texture.ID())
	}
	h = hashFloat(h, s.Color.R)
	h = hashFloat(h, s.Color.G)
	h = hashFloat(h, s.Color.B)
	h = hashFloat(h, s.Color.A)
	h = hashFloat(h, s.Opacity)
	h = hashCombine(h, uint64(s.BlendEquation))
	h = hashCombine(h, uint64(s.CompositionMode))
	h = hashRect(h, s.ClipRect)
	return hashString(h, s.ShaderProgram)
}
