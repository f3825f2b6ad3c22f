package drawpool

// DrawKind identifies the geometry carried by a DrawMethod.
type DrawKind uint8

const (
	// DrawFilledRect fills the destination rectangle with the state color.
	DrawFilledRect DrawKind = iota

	// DrawRepeatedFilledRect is a filled rectangle batched by repeated-fill
	// rules (whole-list state search instead of adjacency).
	DrawRepeatedFilledRect

	// DrawFilledTriangle fills the triangle A, B, C.
	DrawFilledTriangle

	// DrawTexturedRect maps the Src region of the state texture onto Dest.
	DrawTexturedRect

	// DrawRepeatedTexturedRect is a textured rectangle batched by
	// repeated-fill rules.
	DrawRepeatedTexturedRect

	// DrawUpsideDownTexturedRect maps Src onto Dest vertically flipped.
	DrawUpsideDownTexturedRect

	// DrawBoundingRect outlines Dest with a frame IntValue pixels thick.
	DrawBoundingRect

	// DrawFillCoords submits a caller-provided coordinate buffer as solid
	// geometry. IntValue carries the buffer's vertex hash.
	DrawFillCoords

	// DrawTextureCoords submits a caller-provided coordinate buffer with
	// texture coordinates. IntValue carries the buffer's vertex hash.
	DrawTextureCoords
)

// Topology describes how a batch's vertices are assembled.
type Topology uint8

const (
	// TopologyNone marks objects with no geometry (deferred actions).
	TopologyNone Topology = iota

	// TopologyTriangles assembles independent triangles.
	TopologyTriangles

	// TopologyTriangleStrip assembles a quad per four strip-ordered
	// vertices.
	TopologyTriangleStrip
)

// DrawMethod is one drawing request: a kind tag plus the geometry
// parameters that kind needs. Methods are immutable once created.
//
// IntValue is overloaded the way the wire format demands: the inner line
// width for DrawBoundingRect, and the source buffer's vertex hash for
// DrawFillCoords/DrawTextureCoords.
type DrawMethod struct {
	Kind     DrawKind
	Dest     Rect
	Src      Rect
	A, B, C  Point
	IntValue uint64
}

// cacheKey returns the method's contribution to a framed pool's content
// hash. It folds every field so any parameter change invalidates the
// cached target.
func (m DrawMethod) cacheKey() uint64 {
	h := hashCombine(hashSeed, uint64(m.Kind))
	h = hashRect(h, m.Dest)
	h = hashRect(h, m.Src)
	h = hashPoint(h, m.A)
	h = hashPoint(h, m.B)
	h = hashPoint(h, m.C)
	return hashCombine(h, m.IntValue)
}
