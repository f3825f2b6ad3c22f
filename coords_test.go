package drawpool

import "testing"

func TestCoordsBufferVertexCounts(t *testing.T) {
	tests := []struct {
		name      string
		fill      func(*CoordsBuffer)
		vertices  int
		texCoords bool
	}{
		{"rect", func(b *CoordsBuffer) { b.AddRect(R(0, 0, 10, 10)) }, 6, false},
		{"triangle", func(b *CoordsBuffer) { b.AddTriangle(Pt(0, 0), Pt(10, 0), Pt(0, 10)) }, 3, false},
		{"textured rect", func(b *CoordsBuffer) { b.AddTexturedRect(R(0, 0, 10, 10), R(0, 0, 32, 32)) }, 6, true},
		{"upside down rect", func(b *CoordsBuffer) { b.AddUpsideDownRect(R(0, 0, 10, 10), R(0, 0, 32, 32)) }, 6, true},
		{"quad", func(b *CoordsBuffer) { b.AddQuad(R(0, 0, 10, 10), R(0, 0, 32, 32)) }, 4, true},
		{"bounding rect", func(b *CoordsBuffer) { b.AddBoundingRect(R(0, 0, 20, 20), 2) }, 24, false},
		{"empty rect", func(b *CoordsBuffer) { b.AddRect(R(0, 0, 0, 10)) }, 0, false},
		{"empty src", func(b *CoordsBuffer) { b.AddTexturedRect(R(0, 0, 10, 10), Rect{}) }, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewCoordsBuffer()
			tt.fill(b)
			if got := b.VertexCount(); got != tt.vertices {
				t.Errorf("VertexCount() = %d, want %d", got, tt.vertices)
			}
			if b.HasTexCoords() != tt.texCoords {
				t.Errorf("HasTexCoords() = %v, want %v", b.HasTexCoords(), tt.texCoords)
			}
		})
	}
}

func TestCoordsBufferHashDeterministic(t *testing.T) {
	a := NewCoordsBuffer()
	b := NewCoordsBuffer()
	a.AddRect(R(1, 2, 3, 4))
	a.AddTriangle(Pt(0, 0), Pt(5, 0), Pt(0, 5))
	b.AddRect(R(1, 2, 3, 4))
	b.AddTriangle(Pt(0, 0), Pt(5, 0), Pt(0, 5))

	if a.VertexHash() != b.VertexHash() {
		t.Fatal("identical append sequences produced different hashes")
	}
}

func TestCoordsBufferHashOrderSensitive(t *testing.T) {
	a := NewCoordsBuffer()
	b := NewCoordsBuffer()
	a.AddRect(R(0, 0, 10, 10))
	a.AddRect(R(20, 0, 10, 10))
	b.AddRect(R(20, 0, 10, 10))
	b.AddRect(R(0, 0, 10, 10))

	if a.VertexHash() == b.VertexHash() {
		t.Fatal("reordered appends produced the same hash")
	}
}

func TestCoordsBufferClear(t *testing.T) {
	b := NewCoordsBuffer()
	b.AddTexturedRect(R(0, 0, 10, 10), R(0, 0, 32, 32))
	b.Clear()

	if b.VertexCount() != 0 || b.HasTexCoords() {
		t.Fatal("Clear left vertices behind")
	}
	if b.VertexHash() != NewCoordsBuffer().VertexHash() {
		t.Fatal("cleared buffer hash differs from a fresh buffer")
	}
}

func TestBoundingRectDegeneratesToFill(t *testing.T) {
	outline := NewCoordsBuffer()
	outline.AddBoundingRect(R(0, 0, 10, 10), 5)

	filled := NewCoordsBuffer()
	filled.AddRect(R(0, 0, 10, 10))

	if outline.VertexHash() != filled.VertexHash() {
		t.Fatal("overlapping outline should degenerate to a filled rect")
	}
}

func TestUpsideDownRectFlipsVertically(t *testing.T) {
	b := NewCoordsBuffer()
	b.AddUpsideDownRect(R(0, 0, 10, 10), R(0, 0, 32, 32))

	uv := b.TexCoords()
	// First vertex is the top-left corner; its v must come from the
	// bottom of the source.
	if uv[1] != 32 {
		t.Fatalf("first v coordinate = %v, want 32", uv[1])
	}
}
