package drawpool

// DrawObject is one batched unit: a render state shared by an ordered
// sequence of draw methods, or a single deferred action.
//
// If Action is non-nil the object is a pure side-effecting step and the
// geometry path never runs. Buffer, when non-nil, holds the object's
// methods already replayed into vertices; it is written once (by a worker
// build or a caller) and only read afterwards.
type DrawObject struct {
	State    RenderState
	Methods  []DrawMethod
	Topology Topology
	Buffer   *CoordsBuffer
	Action   func()
}

// addCoords replays every method into the buffer. Raw-coords methods
// (DrawFillCoords, DrawTextureCoords) never reach this path: their objects
// always carry a caller-provided Buffer.
func (o *DrawObject) addCoords(buf *CoordsBuffer) {
	for _, m := range o.Methods {
		switch m.Kind {
		case DrawBoundingRect:
			buf.AddBoundingRect(m.Dest, float64(m.IntValue))
		case DrawFilledRect, DrawRepeatedFilledRect:
			buf.AddRect(m.Dest)
		case DrawFilledTriangle:
			buf.AddTriangle(m.A, m.B, m.C)
		case DrawTexturedRect, DrawRepeatedTexturedRect:
			if o.Topology == TopologyTriangles {
				buf.AddTexturedRect(m.Dest, m.Src)
			} else {
				buf.AddQuad(m.Dest, m.Src)
			}
		case DrawUpsideDownTexturedRect:
			if o.Topology == TopologyTriangles {
				buf.AddUpsideDownRect(m.Dest, m.Src)
			} else {
				buf.AddUpsideDownQuad(m.Dest, m.Src)
			}
		}
	}
}
