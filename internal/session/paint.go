package session

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"pixelcatchr/internal/annotate"
	"pixelcatchr/internal/export"
	"pixelcatchr/internal/magnifier"
	"pixelcatchr/internal/raster"
	"pixelcatchr/internal/selection"
	"pixelcatchr/internal/toolbar"
)

var (
	accent      = color.RGBA{0x0A, 0x84, 0xFF, 0xFF}
	white       = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	labelBg     = color.RGBA{0x00, 0x00, 0x00, 0xB4}
	crossColor  = color.RGBA{0xFF, 0xFF, 0xFF, 0x8C}
	statusBg    = color.RGBA{0xB0, 0x20, 0x20, 0xE6}
)

// handleInner 手柄的可见大小，命中区域更大
const handleInner = 8

// Frame 绘制一帧。dst 使用桌面本地坐标，通常与桌面截图同样大小
func (s *Session) Frame(dst *image.RGBA) {
	sel := s.sel.Rect()

	draw.Draw(dst, dst.Bounds(), s.desk.Image, dst.Bounds().Min, draw.Src)
	s.paintDim(dst, sel)

	if s.tool == annotate.ToolNone && !sel.Empty() {
		s.paintSelectionFrame(dst, sel)
	}

	s.paintAnnotations(dst)
	if cur := s.model.Current(); cur != nil {
		annotate.Render(dst, cur)
	}

	s.paintOverlays(dst, sel)
}

// paintDim 选区以外的区域蒙上一层半透明黑色
func (s *Session) paintDim(dst *image.RGBA, hole image.Rectangle) {
	a := s.settings.OverlayOpacity
	if a <= 0 {
		return
	}
	mask := color.RGBA{0, 0, 0, uint8(min(a, 255))}
	b := dst.Bounds()
	if hole.Empty() {
		raster.FillRect(dst, b, mask)
		return
	}
	hole = hole.Intersect(b)
	raster.FillRect(dst, image.Rect(b.Min.X, b.Min.Y, b.Max.X, hole.Min.Y), mask)
	raster.FillRect(dst, image.Rect(b.Min.X, hole.Max.Y, b.Max.X, b.Max.Y), mask)
	raster.FillRect(dst, image.Rect(b.Min.X, hole.Min.Y, hole.Min.X, hole.Max.Y), mask)
	raster.FillRect(dst, image.Rect(hole.Max.X, hole.Min.Y, b.Max.X, hole.Max.Y), mask)
}

func (s *Session) paintSelectionFrame(dst *image.RGBA, sel image.Rectangle) {
	raster.OutlineRect(dst, sel.Inset(-1), accent)
	if !s.sel.Committed() {
		return
	}
	for _, h := range selection.HandleRects(sel) {
		c := image.Pt((h.Min.X+h.Max.X)/2, (h.Min.Y+h.Max.Y)/2)
		r := image.Rect(c.X-handleInner/2, c.Y-handleInner/2, c.X+handleInner/2, c.Y+handleInner/2)
		raster.FillRect(dst, r, white)
		raster.OutlineRect(dst, r, accent)
	}
}

// paintAnnotations 按插入顺序绘制标注，正在编辑的文本由输入框代替
func (s *Session) paintAnnotations(dst *image.RGBA) {
	skip := -1
	if s.prompt != nil {
		skip = s.prompt.index
	}
	for i, a := range s.model.Annotations() {
		if i == skip {
			continue
		}
		annotate.Render(dst, a)
	}
}

func (s *Session) paintOverlays(dst *image.RGBA, sel image.Rectangle) {
	selecting := !s.sel.Committed()

	if selecting {
		s.paintCrosshair(dst)
	}

	if s.settings.ShowCoords {
		g := s.cursor.Add(s.desk.Origin)
		raster.Label(dst, image.Pt(20, 30), fmt.Sprintf("X: %d Y: %d", g.X, g.Y), white, labelBg, 4)
		if !sel.Empty() {
			s.paintDimensions(dst, sel)
		}
	}

	if s.sel.Committed() && s.settings.ShowDatetime {
		export.DrawTimestamp(dst, sel.Min.Add(export.TimestampInset), s.now())
	}

	if selecting {
		magnifier.Render(dst, s.desk.Image, s.cursor, dst.Bounds())
	}

	if s.paletteVisible() {
		toolbar.Render(dst, s.paletteOrigin(), toolbar.State{
			Tool:       s.tool,
			ColorIndex: s.colorIndex,
			Hover:      s.cursor,
			CanUndo:    s.model.CanUndo(),
		})
	}

	if s.prompt != nil {
		s.paintPrompt(dst)
	}

	if s.status != "" {
		raster.Label(dst, image.Pt(20, 56), s.status, white, statusBg, 4)
	}
}

// paintCrosshair 选区确定之前的十字准线
func (s *Session) paintCrosshair(dst *image.RGBA) {
	b := dst.Bounds()
	c := s.cursor
	raster.FillRect(dst, image.Rect(b.Min.X, c.Y, b.Max.X, c.Y+1), crossColor)
	raster.FillRect(dst, image.Rect(c.X, b.Min.Y, c.X+1, c.Y), crossColor)
	raster.FillRect(dst, image.Rect(c.X, c.Y+1, c.X+1, b.Max.Y), crossColor)
}

// paintDimensions 选区上方的尺寸标签，放不下时移到选区内侧
func (s *Session) paintDimensions(dst *image.RGBA, sel image.Rectangle) {
	text := fmt.Sprintf("%d x %d px", sel.Dx(), sel.Dy())
	size := raster.MeasureText(text)
	pos := image.Pt(sel.Min.X+4, sel.Min.Y-size.Y-8)
	if pos.Y-4 < dst.Bounds().Min.Y {
		pos.Y = sel.Min.Y + 8
	}
	raster.Label(dst, pos, text, white, labelBg, 4)
}

func (s *Session) paintPrompt(dst *image.RGBA) {
	p := s.prompt
	text := p.text()
	size := raster.MeasureText(text)
	if size.Y == 0 {
		size.Y = raster.LineHeight()
	}
	box := image.Rectangle{Min: p.pos, Max: p.pos.Add(size)}.Inset(-annotate.TextPadding)
	raster.DashedRect(dst, box, white, 3, 3)
	if text != "" {
		raster.Text(dst, p.pos, text, p.color)
	}

	// 插入光标在最后一行末尾
	lines := 1
	last := text
	for i, r := range text {
		if r == '\n' {
			lines++
			last = text[i+1:]
		}
	}
	cx := p.pos.X + raster.MeasureText(last).X + 1
	cy := p.pos.Y + (lines-1)*raster.LineHeight()
	raster.FillRect(dst, image.Rect(cx, cy, cx+1, cy+raster.LineHeight()), p.color)
}
