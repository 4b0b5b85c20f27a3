package toolbar

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelcatchr/internal/annotate"
)

var screen = []image.Rectangle{image.Rect(0, 0, 1920, 1080)}

func TestComputeCentersBelowSelection(t *testing.T) {
	var p Placement
	size := image.Pt(400, 44)
	pos := p.Compute(image.Rect(100, 100, 700, 500), screen, size)
	assert.Equal(t, image.Pt(200, 510), pos)
	assert.True(t, p.Placed())
}

func TestComputeClampsToMonitor(t *testing.T) {
	var p Placement
	size := image.Pt(400, 44)

	pos := p.Compute(image.Rect(0, 100, 100, 200), screen, size)
	assert.Equal(t, 0, pos.X)

	pos = p.Compute(image.Rect(1850, 100, 1920, 200), screen, size)
	assert.Equal(t, 1920-400, pos.X)
}

func TestComputeFlipsAboveOnBottomOverflow(t *testing.T) {
	var p Placement
	size := image.Pt(400, 44)
	pos := p.Compute(image.Rect(100, 800, 700, 1060), screen, size)
	assert.Equal(t, 800-Gap-44, pos.Y)
}

func TestComputeClampsVerticallyWhenNoRoom(t *testing.T) {
	var p Placement
	size := image.Pt(400, 44)
	// 上下都放不下时翻到上方后再限制在屏幕内
	pos := p.Compute(image.Rect(0, 0, 1920, 1080), screen, size)
	assert.Equal(t, 0, pos.Y)
	assert.Equal(t, 760, pos.X)
}

func TestComputeUsesMonitorOfSelectionCenter(t *testing.T) {
	monitors := []image.Rectangle{
		image.Rect(0, 0, 1920, 1080),
		image.Rect(1920, 0, 3200, 1024),
	}
	var p Placement
	size := image.Pt(400, 44)
	// 中心落在第二块屏上，右边缘超出时限制在第二块屏内
	pos := p.Compute(image.Rect(3000, 100, 3200, 200), monitors, size)
	assert.Equal(t, 3200-400, pos.X)

	// 第二块屏比第一块矮
	pos = p.Compute(image.Rect(2000, 900, 2400, 1000), monitors, size)
	assert.Equal(t, 900-Gap-44, pos.Y)
}

func TestManualMoveStopsAutoPlacement(t *testing.T) {
	var p Placement
	p.MoveTo(image.Pt(5, 5))
	assert.True(t, p.ManuallyMoved())

	pos := p.Compute(image.Rect(100, 100, 700, 500), screen, image.Pt(400, 44))
	assert.Equal(t, image.Pt(5, 5), pos)

	// 选区换到别处也不再自动定位
	pos = p.Compute(image.Rect(900, 50, 1200, 300), screen, image.Pt(400, 44))
	assert.Equal(t, image.Pt(5, 5), pos)
	assert.True(t, p.Placed())
}

func TestLayoutFitsInsideBounds(t *testing.T) {
	origin := image.Pt(50, 60)
	bounds := Bounds(origin)
	buttons := Layout(origin)

	tools, colors, actions := 0, 0, 0
	for _, b := range buttons {
		assert.True(t, b.Rect.In(bounds), "button %v outside %v", b.Rect, bounds)
		switch b.Kind {
		case KindTool:
			tools++
		case KindColor:
			colors++
		case KindAction:
			actions++
		}
	}
	assert.Equal(t, len(ToolOrder), tools)
	assert.Equal(t, len(annotate.DefaultColors), colors)
	assert.Equal(t, 4, actions)
	assert.Equal(t, KindGrip, buttons[0].Kind)
	assert.Equal(t, bounds.Max.X-Padding, buttons[len(buttons)-1].Rect.Max.X)
}

func TestHitTest(t *testing.T) {
	origin := image.Pt(0, 0)
	buttons := Layout(origin)

	pen := buttons[1]
	require.Equal(t, annotate.ToolPen, pen.Tool)
	b, ok, inside := HitTest(origin, pen.Rect.Min.Add(image.Pt(3, 3)))
	assert.True(t, ok)
	assert.True(t, inside)
	assert.Equal(t, annotate.ToolPen, b.Tool)

	last := buttons[len(buttons)-1]
	b, ok, _ = HitTest(origin, last.Rect.Min)
	assert.True(t, ok)
	assert.Equal(t, ActionClose, b.Action)

	_, ok, inside = HitTest(origin, image.Pt(1, 1))
	assert.False(t, ok)
	assert.True(t, inside)

	_, _, inside = HitTest(origin, image.Pt(-5, 0))
	assert.False(t, inside)
}

func TestRenderSelectedTool(t *testing.T) {
	origin := image.Pt(10, 10)
	size := Size()
	dst := image.NewRGBA(image.Rect(0, 0, size.X+40, size.Y+40))
	Render(dst, origin, State{Tool: annotate.ToolRect, ColorIndex: 0})

	var rect Button
	for _, b := range Layout(origin) {
		if b.Kind == KindTool && b.Tool == annotate.ToolRect {
			rect = b
		}
	}
	// 选中工具的按钮角落是高亮色
	assert.Equal(t, colorSelected, dst.RGBAAt(rect.Rect.Min.X, rect.Rect.Min.Y))
}
