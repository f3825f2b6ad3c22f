package drawpool

// Texture is a handle to a texture owned by the rendering device.
//
// The engine never reads pixel data; it only needs identity (for batching
// and content hashing) and a few declared properties that drive the
// coalescing rules.
type Texture interface {
	// ID returns a process-unique identity for the texture. Two handles
	// with the same ID are interchangeable for batching purposes.
	ID() uint64

	// Size returns the natural size of the texture in pixels.
	Size() Point

	// IsEmpty returns true if the texture has no pixels. Draw requests
	// against empty textures are silently discarded.
	IsEmpty() bool

	// IsOpaque returns true if every texel is fully opaque.
	IsOpaque() bool

	// CanSuperimpose reports whether geometry drawn with this texture may
	// be treated as fully occluded when an opaque texture is later drawn
	// over the exact same destination.
	CanSuperimpose() bool
}
