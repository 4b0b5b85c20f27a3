package session

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelcatchr/internal/annotate"
	"pixelcatchr/internal/capture"
	"pixelcatchr/internal/config"
	"pixelcatchr/internal/export"
	"pixelcatchr/internal/selection"
	"pixelcatchr/internal/toolbar"
)

type fakeSink struct {
	target string
	err    error
	images []image.Image
}

func (f *fakeSink) Export(img image.Image) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.images = append(f.images, img)
	return f.target, nil
}

func gray(r image.Rectangle, v uint8) *image.RGBA {
	img := image.NewRGBA(r)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func newTestSession(t *testing.T) (*Session, *fakeSink, *fakeSink) {
	t.Helper()
	desk := &capture.Desktop{
		Image: gray(image.Rect(0, 0, 1600, 600), 200),
		Monitors: []image.Rectangle{
			image.Rect(0, 0, 800, 600),
			image.Rect(800, 0, 1600, 600),
		},
	}
	settings := config.Defaults()
	settings.ShowDatetime = false

	file := &fakeSink{target: "/tmp/shot.png"}
	clip := &fakeSink{target: "clipboard"}
	s := New(desk, settings, Sinks{File: file, Clipboard: clip})
	s.SetClock(func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 0, time.Local) })
	return s, file, clip
}

func drag(s *Session, from, to image.Point) {
	s.Press(from)
	s.Move(from.Add(to).Div(2))
	s.Move(to)
	s.Release(to)
}

func buttonFor(t *testing.T, s *Session, match func(toolbar.Button) bool) image.Point {
	t.Helper()
	for _, b := range toolbar.Layout(s.paletteOrigin()) {
		if match(b) {
			return b.Rect.Min.Add(b.Rect.Size().Div(2))
		}
	}
	t.Fatal("button not found")
	return image.Point{}
}

func TestDragCommitsSelectionAndSaves(t *testing.T) {
	s, file, _ := newTestSession(t)
	drag(s, image.Pt(100, 100), image.Pt(300, 250))

	require.True(t, s.Committed())
	assert.Equal(t, image.Rect(100, 100, 300, 250), s.Selection())

	require.NoError(t, s.Save())
	require.Len(t, file.images, 1)
	assert.Equal(t, image.Rect(0, 0, 200, 150), file.images[0].Bounds())

	outcome, msg := s.Result()
	assert.Equal(t, Saved, outcome)
	assert.Equal(t, "Saved to /tmp/shot.png", msg)
	assert.True(t, s.Done())
}

func TestTinyDragReverts(t *testing.T) {
	s, _, _ := newTestSession(t)
	drag(s, image.Pt(100, 100), image.Pt(105, 200))
	assert.False(t, s.Committed())
	assert.True(t, s.Selection().Empty())
}

func TestAnnotationIsExportedInSelectionCoordinates(t *testing.T) {
	s, file, _ := newTestSession(t)
	drag(s, image.Pt(100, 100), image.Pt(300, 300))

	s.SetTool(annotate.ToolRect)
	drag(s, image.Pt(150, 150), image.Pt(200, 200))
	require.Len(t, s.Annotations(), 1)
	// 绘制标注不会改变选区
	assert.Equal(t, image.Rect(100, 100, 300, 300), s.Selection())

	require.NoError(t, s.Save())
	out := file.images[0].(*image.RGBA)
	assert.Equal(t, annotate.DefaultColors[0], out.RGBAAt(50, 70))
	assert.Equal(t, color.RGBA{200, 200, 200, 255}, out.RGBAAt(75, 75))
}

func TestPressOutsideSelectionRestartsAndClears(t *testing.T) {
	s, _, _ := newTestSession(t)
	drag(s, image.Pt(100, 100), image.Pt(300, 300))
	s.SetTool(annotate.ToolArrow)
	drag(s, image.Pt(120, 120), image.Pt(200, 200))
	require.Len(t, s.Annotations(), 1)

	s.SetTool(annotate.ToolNone)
	s.Press(image.Pt(500, 450))
	assert.Empty(t, s.Annotations())
	assert.Equal(t, selection.DraggingNew, s.Mode())
	s.Release(image.Pt(500, 450))
	assert.False(t, s.Committed())
}

func TestUndoShortcut(t *testing.T) {
	s, _, _ := newTestSession(t)
	drag(s, image.Pt(100, 100), image.Pt(300, 300))
	s.SetTool(annotate.ToolPen)
	drag(s, image.Pt(120, 120), image.Pt(150, 160))
	drag(s, image.Pt(130, 120), image.Pt(170, 160))
	require.Len(t, s.Annotations(), 2)

	s.Key(Key{Name: "z", Ctrl: true})
	assert.Len(t, s.Annotations(), 1)
	s.Key(Key{Name: "z", Ctrl: true})
	s.Key(Key{Name: "z", Ctrl: true})
	assert.Empty(t, s.Annotations())
	assert.False(t, s.Done())
}

func TestEscapeCancels(t *testing.T) {
	s, file, _ := newTestSession(t)
	drag(s, image.Pt(100, 100), image.Pt(300, 300))
	s.Key(Key{Name: "escape"})

	outcome, _ := s.Result()
	assert.Equal(t, Cancelled, outcome)
	assert.Empty(t, file.images)

	// 结束后输入被忽略
	s.Press(image.Pt(10, 10))
	assert.Equal(t, image.Rect(100, 100, 300, 300), s.Selection())
}

func TestCopyShortcutKeepsSessionOpen(t *testing.T) {
	s, _, clip := newTestSession(t)
	drag(s, image.Pt(100, 100), image.Pt(300, 300))

	s.Key(Key{Name: "c", Ctrl: true, Shift: true})
	assert.Empty(t, clip.images)

	s.Key(Key{Name: "c", Ctrl: true})
	require.Len(t, clip.images, 1)
	assert.False(t, s.Done())
	assert.Equal(t, "Copied to clipboard", s.Status())
}

func TestPaletteCopyButtonCloses(t *testing.T) {
	s, _, clip := newTestSession(t)
	drag(s, image.Pt(100, 100), image.Pt(300, 300))

	p := buttonFor(t, s, func(b toolbar.Button) bool { return b.Action == toolbar.ActionCopy })
	s.Press(p)
	s.Release(p)

	require.Len(t, clip.images, 1)
	outcome, msg := s.Result()
	assert.Equal(t, Copied, outcome)
	assert.Equal(t, "Copied to clipboard", msg)
}

func TestSinkFailureKeepsSessionOpen(t *testing.T) {
	s, file, _ := newTestSession(t)
	file.err = errors.New("disk full")
	drag(s, image.Pt(100, 100), image.Pt(300, 300))

	err := s.Save()
	require.Error(t, err)
	assert.False(t, s.Done())
	assert.Contains(t, s.Status(), "disk full")

	// 重试成功
	file.err = nil
	require.NoError(t, s.Save())
	assert.True(t, s.Done())
}

func TestExportFailureCallsBack(t *testing.T) {
	s, file, clip := newTestSession(t)
	var notes []string
	s.OnFailure(func(title, msg string) { notes = append(notes, title+": "+msg) })

	// 未选区只提示，不回调
	require.Error(t, s.Save())
	assert.Empty(t, notes)

	drag(s, image.Pt(100, 100), image.Pt(300, 300))
	file.err = errors.New("disk full")
	clip.err = errors.New("clipboard busy")
	require.Error(t, s.Save())
	require.Error(t, s.Copy(false))

	assert.Equal(t, []string{"Save failed: disk full", "Copy failed: clipboard busy"}, notes)
	assert.Equal(t, "Copy failed: clipboard busy", s.Status())
	assert.False(t, s.Done())
}

func TestDoubleClickFallsBackToPressWithTool(t *testing.T) {
	s, _, _ := newTestSession(t)
	drag(s, image.Pt(100, 100), image.Pt(300, 300))
	s.SetTool(annotate.ToolRect)

	assert.False(t, s.DoubleClick(image.Pt(150, 150)))
	// 调用方改为普通按下，标注照常绘制
	drag(s, image.Pt(150, 150), image.Pt(200, 200))
	require.Len(t, s.Annotations(), 1)
	assert.Equal(t, image.Rect(150, 150, 200, 200), s.Annotations()[0].(annotate.Rect).Rect)
	assert.Equal(t, image.Rect(100, 100, 300, 300), s.Selection())
}

func TestDoubleClickOutsideMonitorsIsNotConsumed(t *testing.T) {
	s, _, _ := newTestSession(t)
	assert.False(t, s.DoubleClick(image.Pt(2000, 2000)))
	assert.False(t, s.Committed())
}

func TestSaveWithoutSelection(t *testing.T) {
	s, _, _ := newTestSession(t)
	err := s.Save()
	assert.ErrorIs(t, err, export.ErrNoSelection)
	assert.Equal(t, "Select a region first", s.Status())
	assert.False(t, s.Done())
}

func TestPaletteToolButtonToggles(t *testing.T) {
	s, _, _ := newTestSession(t)
	drag(s, image.Pt(100, 100), image.Pt(300, 300))

	p := buttonFor(t, s, func(b toolbar.Button) bool {
		return b.Kind == toolbar.KindTool && b.Tool == annotate.ToolBlur
	})
	s.Press(p)
	s.Release(p)
	assert.Equal(t, annotate.ToolBlur, s.Tool())

	s.Press(p)
	s.Release(p)
	assert.Equal(t, annotate.ToolNone, s.Tool())

	c := buttonFor(t, s, func(b toolbar.Button) bool { return b.Kind == toolbar.KindColor && b.ColorIndex == 3 })
	s.Press(c)
	s.Release(c)
	assert.Equal(t, 3, s.Color())

	// 工具栏上的点击不影响选区
	assert.Equal(t, image.Rect(100, 100, 300, 300), s.Selection())
}

func TestPaletteDragIsSticky(t *testing.T) {
	s, _, _ := newTestSession(t)
	drag(s, image.Pt(100, 100), image.Pt(300, 300))

	origin := s.paletteOrigin()
	grip := buttonFor(t, s, func(b toolbar.Button) bool { return b.Kind == toolbar.KindGrip })
	s.Press(grip)
	s.Move(grip.Add(image.Pt(30, -20)))
	s.Release(grip.Add(image.Pt(30, -20)))

	moved := origin.Add(image.Pt(30, -20))
	assert.Equal(t, moved, s.paletteOrigin())

	// 移动选区后工具栏保持在用户放置的位置
	drag(s, image.Pt(200, 200), image.Pt(260, 200))
	assert.Equal(t, image.Rect(160, 100, 360, 300), s.Selection())
	assert.Equal(t, moved, s.paletteOrigin())
	// 重新框选和双击选中显示器同样不恢复自动定位
	drag(s, image.Pt(500, 400), image.Pt(700, 500))
	assert.Equal(t, image.Rect(500, 400, 700, 500), s.Selection())
	assert.Equal(t, moved, s.paletteOrigin())

	assert.True(t, s.DoubleClick(image.Pt(1000, 300)))
	assert.Equal(t, image.Rect(800, 0, 1600, 600), s.Selection())
	assert.Equal(t, moved, s.paletteOrigin())
}

func TestTextPromptAddsAndEdits(t *testing.T) {
	s, _, _ := newTestSession(t)
	drag(s, image.Pt(100, 100), image.Pt(300, 300))
	s.SetTool(annotate.ToolText)

	s.Press(image.Pt(150, 150))
	s.Release(image.Pt(150, 150))
	s.Key(Key{Name: "h", Rune: 'H', Shift: true})
	s.Key(Key{Name: "i", Rune: 'i'})
	s.Key(Key{Name: "enter"})

	anns := s.Annotations()
	require.Len(t, anns, 1)
	assert.Equal(t, annotate.Text{Content: "Hi", Pos: image.Pt(150, 150), Color: annotate.DefaultColors[0]}, anns[0])

	// 点击已有文本进入编辑，清空后提交保留原文
	s.Press(image.Pt(152, 152))
	s.Key(Key{Name: "backspace"})
	s.Key(Key{Name: "backspace"})
	s.Key(Key{Name: "enter"})
	anns = s.Annotations()
	require.Len(t, anns, 1)
	assert.Equal(t, "Hi", anns[0].(annotate.Text).Content)

	s.Press(image.Pt(152, 152))
	s.Key(Key{Name: "x", Rune: 'x'})
	s.Key(Key{Name: "escape"})
	assert.Equal(t, "Hi", s.Annotations()[0].(annotate.Text).Content)
	assert.False(t, s.Done(), "escape only closes the prompt")

	s.Press(image.Pt(152, 152))
	s.Key(Key{Name: "backspace"})
	s.Key(Key{Name: "o", Rune: 'o'})
	s.Key(Key{Name: "enter"})
	assert.Equal(t, "Ho", s.Annotations()[0].(annotate.Text).Content)
}

func TestEmptyTextPromptAddsNothing(t *testing.T) {
	s, _, _ := newTestSession(t)
	drag(s, image.Pt(100, 100), image.Pt(300, 300))
	s.SetTool(annotate.ToolText)
	s.Press(image.Pt(150, 150))
	s.Key(Key{Name: "enter"})
	assert.Empty(t, s.Annotations())
}

func TestDoubleClickSelectsMonitor(t *testing.T) {
	s, _, _ := newTestSession(t)
	drag(s, image.Pt(100, 100), image.Pt(300, 300))
	s.SetTool(annotate.ToolRect)
	drag(s, image.Pt(150, 150), image.Pt(200, 200))
	s.SetTool(annotate.ToolNone)

	s.DoubleClick(image.Pt(1000, 300))
	assert.Equal(t, image.Rect(800, 0, 1600, 600), s.Selection())
	assert.True(t, s.Committed())
	assert.Empty(t, s.Annotations())
}

func TestSelectAllSavesWholeDesktop(t *testing.T) {
	s, file, _ := newTestSession(t)
	s.SelectAll()
	require.NoError(t, s.Save())
	assert.Equal(t, image.Rect(0, 0, 1600, 600), file.images[0].Bounds())
}

func TestFrameDimsOutsideSelection(t *testing.T) {
	s, _, _ := newTestSession(t)
	drag(s, image.Pt(100, 100), image.Pt(300, 300))

	dst := image.NewRGBA(s.Desktop().Bounds())
	s.Frame(dst)

	// 200 * (255-100) / 255
	assert.Equal(t, uint8(121), dst.RGBAAt(1500, 500).R)
	assert.Equal(t, color.RGBA{200, 200, 200, 255}, dst.RGBAAt(150, 250))
}

func TestFrameWithoutSelectionDimsEverything(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Move(image.Pt(700, 300))

	dst := image.NewRGBA(s.Desktop().Bounds())
	s.Frame(dst)
	assert.Equal(t, uint8(121), dst.RGBAAt(1500, 100).R)
}
