package drawpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func framedMapFrame(e *Engine, dest, src Rect, build func()) {
	e.Use(PoolMap, dest, src)
	build()
	e.Draw()
}

func TestCreateFramedPoolConfiguresTargets(t *testing.T) {
	e, _, buffers := newTestEngine()

	mapPool := e.CreateFramedPool(PoolMap)
	lightPool := e.CreateFramedPool(PoolLight)
	plain := e.CreatePool(PoolForeground)

	require.Len(t, *buffers, 2)
	assert.True(t, (*buffers)[0].blendDisabled)
	assert.Equal(t, CompositionLight, (*buffers)[1].composition)

	assert.True(t, mapPool.IsFramed())
	assert.True(t, lightPool.IsFramed())
	assert.False(t, plain.IsFramed())
	assert.Nil(t, plain.Framed())
}

func TestFramedUnchangedContentSkipsRerender(t *testing.T) {
	e, _, buffers := newTestEngine()
	e.CreateFramedPool(PoolMap)
	dest := R(0, 0, 800, 600)
	src := R(0, 0, 800, 600)

	build := func() {
		e.SetColor(RGB(1, 0, 0))
		e.AddFilledRect(R(0, 0, 10, 10))
		e.ResetColor()
	}

	framedMapFrame(e, dest, src, build)
	framedMapFrame(e, dest, src, build)

	fb := (*buffers)[0]
	// Rendered once, composited every frame.
	assert.Equal(t, 1, fb.binds)
	assert.Equal(t, 1, fb.releases)
	assert.Equal(t, 2, fb.draws)
	assert.Equal(t, dest, fb.lastDest)
	assert.Equal(t, src, fb.lastSrc)
}

func TestFramedChangedContentRerenders(t *testing.T) {
	e, _, buffers := newTestEngine()
	e.CreateFramedPool(PoolMap)

	framedMapFrame(e, Rect{}, Rect{}, func() {
		e.AddFilledRect(R(0, 0, 10, 10))
	})
	framedMapFrame(e, Rect{}, Rect{}, func() {
		e.SetColor(RGB(0, 0, 1))
		e.AddFilledRect(R(0, 0, 10, 10))
		e.ResetColor()
	})

	assert.Equal(t, 2, (*buffers)[0].binds)
}

func TestFramedOrderChangeRerenders(t *testing.T) {
	e, _, buffers := newTestEngine()
	e.CreateFramedPool(PoolMap)
	a, b := R(0, 0, 10, 10), R(20, 0, 10, 10)

	framedMapFrame(e, Rect{}, Rect{}, func() {
		e.AddFilledRect(a)
		e.SetColor(RGB(1, 0, 0))
		e.AddFilledRect(b)
		e.ResetColor()
	})
	framedMapFrame(e, Rect{}, Rect{}, func() {
		e.SetColor(RGB(1, 0, 0))
		e.AddFilledRect(b)
		e.ResetColor()
		e.AddFilledRect(a)
	})

	assert.Equal(t, 2, (*buffers)[0].binds)
}

func TestFramedEmptyFramesStayStable(t *testing.T) {
	e, _, buffers := newTestEngine()
	e.CreateFramedPool(PoolMap)

	framedMapFrame(e, Rect{}, Rect{}, func() {})
	framedMapFrame(e, Rect{}, Rect{}, func() {})

	fb := (*buffers)[0]
	assert.Equal(t, 0, fb.binds)
	assert.Equal(t, 2, fb.draws)
}

func TestFramedDisabledSkipsEverything(t *testing.T) {
	e, painter, buffers := newTestEngine()
	pool := e.CreateFramedPool(PoolMap)

	e.Use(PoolMap, Rect{}, Rect{})
	e.AddFilledRect(R(0, 0, 10, 10))
	pool.Framed().SetEnabled(false)
	e.Draw()

	fb := (*buffers)[0]
	assert.Equal(t, 0, fb.binds)
	assert.Equal(t, 0, fb.draws)
	assert.Empty(t, painter.submissions)

	// Re-enabling composites again; the pending content renders.
	pool.Framed().SetEnabled(true)
	e.Draw()
	assert.Equal(t, 1, fb.binds)
	assert.Equal(t, 1, fb.draws)
}

func TestFramedUndrawableTargetSkipped(t *testing.T) {
	e, _, buffers := newTestEngine()
	e.CreateFramedPool(PoolMap)
	(*buffers)[0].drawable = false

	framedMapFrame(e, Rect{}, Rect{}, func() {
		e.AddFilledRect(R(0, 0, 10, 10))
	})

	assert.Equal(t, 0, (*buffers)[0].binds)
	assert.Equal(t, 0, (*buffers)[0].draws)
}

func TestFramedResizeForcesRerender(t *testing.T) {
	e, _, buffers := newTestEngine()
	pool := e.CreateFramedPool(PoolMap)
	build := func() { e.AddFilledRect(R(0, 0, 10, 10)) }

	framedMapFrame(e, Rect{}, Rect{}, build)
	pool.Framed().Resize(Pt(1024, 768))
	framedMapFrame(e, Rect{}, Rect{}, build)

	fb := (*buffers)[0]
	assert.Equal(t, []Point{Pt(1024, 768)}, fb.resizes)
	assert.Equal(t, 2, fb.binds)
}

func TestFramedHooksWrapComposite(t *testing.T) {
	e, _, buffers := newTestEngine()
	pool := e.CreateFramedPool(PoolMap)
	fb := (*buffers)[0]

	var order []string
	pool.Framed().OnBeforeDraw(func() {
		order = append(order, "before")
		assert.Equal(t, 0, fb.draws)
	})
	pool.Framed().OnAfterDraw(func() {
		order = append(order, "after")
		assert.Equal(t, 1, fb.draws)
	})

	framedMapFrame(e, Rect{}, Rect{}, func() {
		e.AddFilledRect(R(0, 0, 10, 10))
	})

	assert.Equal(t, []string{"before", "after"}, order)
}

func TestFramedDrawIsolatesGlobalState(t *testing.T) {
	e, painter, _ := newTestEngine()
	e.CreateFramedPool(PoolMap)

	painter.state.Color = RGB(0, 1, 0)
	framedMapFrame(e, Rect{}, Rect{}, func() {
		e.SetColor(RGB(1, 0, 0))
		e.AddFilledRect(R(0, 0, 10, 10))
		e.ResetColor()
	})

	// The framed pass saved and restored the device state around itself.
	assert.Equal(t, RGB(0, 1, 0), painter.state.Color)
	assert.Empty(t, painter.saved)
}

func TestFramedObjectsRetainedAcrossFrames(t *testing.T) {
	e, _, _ := newTestEngine()
	pool := e.CreateFramedPool(PoolMap)

	framedMapFrame(e, Rect{}, Rect{}, func() {
		e.AddFilledRect(R(0, 0, 10, 10))
	})

	// Unlike plain pools, framed content survives the draw so an unchanged
	// next frame can still re-render after a Resize.
	assert.Equal(t, 1, pool.Len())
}

func TestFramedRectsUpdatedBySetters(t *testing.T) {
	e, _, buffers := newTestEngine()
	pool := e.CreateFramedPool(PoolMap)

	e.Use(PoolMap, R(0, 0, 10, 10), R(0, 0, 20, 20))
	e.AddFilledRect(R(0, 0, 5, 5))
	pool.Framed().SetDest(R(0, 0, 100, 100))
	pool.Framed().SetSrc(R(0, 0, 50, 50))
	e.Draw()

	fb := (*buffers)[0]
	assert.Equal(t, R(0, 0, 100, 100), fb.lastDest)
	assert.Equal(t, R(0, 0, 50, 50), fb.lastSrc)
}

func TestFramedSmoothPropagates(t *testing.T) {
	e, _, buffers := newTestEngine()
	pool := e.CreateFramedPool(PoolMap)

	pool.Framed().SetSmooth(true)
	assert.True(t, (*buffers)[0].smooth)
}
