package drawpool

// CoordsBuffer is an append-only vertex container. Geometry is stored as
// flat x,y pairs; textured primitives additionally carry one u,v texture
// coordinate per vertex, in texture pixel space.
//
// A buffer cached on a DrawObject by a worker build is written once and
// only read afterwards, which is what makes it safe to share across the
// build goroutine and the later draw phase.
type CoordsBuffer struct {
	vertices  []float64
	texCoords []float64
	hash      uint64
}

// NewCoordsBuffer creates an empty coordinate buffer.
func NewCoordsBuffer() *CoordsBuffer {
	return &CoordsBuffer{hash: hashSeed}
}

// Clear removes all vertices without deallocating memory.
func (b *CoordsBuffer) Clear() {
	b.vertices = b.vertices[:0]
	b.texCoords = b.texCoords[:0]
	b.hash = hashSeed
}

// VertexCount returns the number of appended vertices.
func (b *CoordsBuffer) VertexCount() int {
	return len(b.vertices) / 2
}

// Vertices returns the raw vertex positions (x,y per vertex).
func (b *CoordsBuffer) Vertices() []float64 {
	return b.vertices
}

// TexCoords returns the raw texture coordinates (u,v per vertex), empty
// for untextured geometry.
func (b *CoordsBuffer) TexCoords() []float64 {
	return b.texCoords
}

// HasTexCoords returns true if the buffer carries texture coordinates.
func (b *CoordsBuffer) HasTexCoords() bool {
	return len(b.texCoords) > 0
}

// VertexHash returns an order-sensitive digest of every vertex appended so
// far. Identical append sequences always produce identical hashes.
func (b *CoordsBuffer) VertexHash() uint64 {
	return b.hash
}

func (b *CoordsBuffer) addVertex(x, y float64) {
	b.vertices = append(b.vertices, x, y)
	b.hash = hashFloat(hashFloat(b.hash, x), y)
}

func (b *CoordsBuffer) addTexCoord(u, v float64) {
	b.texCoords = append(b.texCoords, u, v)
	b.hash = hashFloat(hashFloat(b.hash, u), v)
}

// AddRect appends the rectangle as two solid triangles.
func (b *CoordsBuffer) AddRect(dest Rect) {
	if dest.IsEmpty() {
		return
	}
	b.addVertex(dest.X, dest.Y)
	b.addVertex(dest.Right(), dest.Y)
	b.addVertex(dest.X, dest.Bottom())
	b.addVertex(dest.Right(), dest.Y)
	b.addVertex(dest.Right(), dest.Bottom())
	b.addVertex(dest.X, dest.Bottom())
}

// AddTriangle appends one solid triangle.
func (b *CoordsBuffer) AddTriangle(a, p, c Point) {
	b.addVertex(a.X, a.Y)
	b.addVertex(p.X, p.Y)
	b.addVertex(c.X, c.Y)
}

// AddTexturedRect appends the rectangle as two textured triangles mapping
// src onto dest.
func (b *CoordsBuffer) AddTexturedRect(dest, src Rect) {
	b.addTexturedRect(dest, src, false)
}

// AddUpsideDownRect appends two textured triangles mapping src onto dest
// vertically flipped.
func (b *CoordsBuffer) AddUpsideDownRect(dest, src Rect) {
	b.addTexturedRect(dest, src, true)
}

func (b *CoordsBuffer) addTexturedRect(dest, src Rect, flip bool) {
	if dest.IsEmpty() || src.IsEmpty() {
		return
	}
	top, bottom := src.Y, src.Bottom()
	if flip {
		top, bottom = bottom, top
	}
	b.addVertex(dest.X, dest.Y)
	b.addTexCoord(src.X, top)
	b.addVertex(dest.Right(), dest.Y)
	b.addTexCoord(src.Right(), top)
	b.addVertex(dest.X, dest.Bottom())
	b.addTexCoord(src.X, bottom)
	b.addVertex(dest.Right(), dest.Y)
	b.addTexCoord(src.Right(), top)
	b.addVertex(dest.Right(), dest.Bottom())
	b.addTexCoord(src.Right(), bottom)
	b.addVertex(dest.X, dest.Bottom())
	b.addTexCoord(src.X, bottom)
}

// AddQuad appends the rectangle as four strip-ordered textured vertices.
func (b *CoordsBuffer) AddQuad(dest, src Rect) {
	b.addQuad(dest, src, false)
}

// AddUpsideDownQuad appends four strip-ordered vertices mapping src onto
// dest vertically flipped.
func (b *CoordsBuffer) AddUpsideDownQuad(dest, src Rect) {
	b.addQuad(dest, src, true)
}

func (b *CoordsBuffer) addQuad(dest, src Rect, flip bool) {
	if dest.IsEmpty() || src.IsEmpty() {
		return
	}
	top, bottom := src.Y, src.Bottom()
	if flip {
		top, bottom = bottom, top
	}
	b.addVertex(dest.X, dest.Y)
	b.addTexCoord(src.X, top)
	b.addVertex(dest.Right(), dest.Y)
	b.addTexCoord(src.Right(), top)
	b.addVertex(dest.X, dest.Bottom())
	b.addTexCoord(src.X, bottom)
	b.addVertex(dest.Right(), dest.Bottom())
	b.addTexCoord(src.Right(), bottom)
}

// AddBoundingRect appends a rectangular outline of the given inner line
// width as four solid edge strips. A width that would make the strips
// overlap degenerates to a filled rectangle.
func (b *CoordsBuffer) AddBoundingRect(dest Rect, innerLineWidth float64) {
	if dest.IsEmpty() || innerLineWidth <= 0 {
		return
	}
	w := innerLineWidth
	if 2*w >= dest.W || 2*w >= dest.H {
		b.AddRect(dest)
		return
	}
	b.AddRect(R(dest.X, dest.Y, dest.W, w))                          // top
	b.AddRect(R(dest.X, dest.Bottom()-w, dest.W, w))                 // bottom
	b.AddRect(R(dest.X, dest.Y+w, w, dest.H-2*w))                    // left
	b.AddRect(R(dest.Right()-w, dest.Y+w, w, dest.H-2*w))            // right
}
