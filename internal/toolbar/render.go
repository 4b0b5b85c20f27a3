package toolbar

import (
	"image"
	"image/color"

	"pixelcatchr/internal/annotate"
	"pixelcatchr/internal/raster"
)

// 工具栏配色（深色主题）
var (
	colorBg       = color.RGBA{0x3A, 0x3A, 0x3C, 0xF0}
	colorBorder   = color.RGBA{0x58, 0x58, 0x5A, 0xFF}
	colorShadow   = color.RGBA{0x18, 0x18, 0x18, 0x80}
	colorHover    = color.RGBA{0x4C, 0x4C, 0x4E, 0xFF}
	colorSelected = color.RGBA{0x0A, 0x84, 0xFF, 0xFF}
	colorIcon     = color.RGBA{0xE0, 0xE0, 0xE0, 0xFF}
	colorSave     = color.RGBA{0x34, 0xC7, 0x59, 0xFF}
	colorClose    = color.RGBA{0xFF, 0x3A, 0x3C, 0xFF}
	colorSep      = color.RGBA{0x55, 0x55, 0x55, 0xFF}
	colorWhite    = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

// State 绘制工具栏所需的状态
type State struct {
	Tool       annotate.Tool
	ColorIndex int
	Hover      image.Point // 鼠标位置，用于悬停高亮
	CanUndo    bool
}

// Render 在 origin 处绘制工具栏
func Render(dst *image.RGBA, origin image.Point, st State) {
	bounds := Bounds(origin)
	raster.FillRect(dst, bounds.Add(image.Pt(2, 2)), colorShadow)
	raster.FillRect(dst, bounds, colorBg)
	raster.OutlineRect(dst, bounds, colorBorder)

	buttons := Layout(origin)
	for i, b := range buttons {
		// 分组之间画分隔线
		if i > 0 && buttons[i-1].Kind != b.Kind {
			sx := (buttons[i-1].Rect.Max.X + b.Rect.Min.X) / 2
			raster.FillRect(dst, image.Rect(sx, bounds.Min.Y+Padding+4, sx+1, bounds.Max.Y-Padding-4), colorSep)
		}

		hovered := st.Hover.In(b.Rect)
		switch b.Kind {
		case KindGrip:
			drawGrip(dst, b.Rect)
		case KindTool:
			switch {
			case b.Tool == st.Tool:
				raster.FillRect(dst, b.Rect, colorSelected)
			case hovered:
				raster.FillRect(dst, b.Rect, colorHover)
			}
			drawToolIcon(dst, b.Rect, b.Tool)
		case KindColor:
			c := annotate.DefaultColors[b.ColorIndex]
			raster.FillRect(dst, b.Rect, c)
			raster.OutlineRect(dst, b.Rect, colorBorder)
			if b.ColorIndex == st.ColorIndex {
				raster.OutlineRect(dst, b.Rect.Inset(-2), colorWhite)
			}
		case KindAction:
			if hovered {
				raster.FillRect(dst, b.Rect, colorHover)
			}
			drawActionIcon(dst, b.Rect, b.Action, st.CanUndo)
		}
	}
}

func drawGrip(dst *image.RGBA, r image.Rectangle) {
	cx := (r.Min.X + r.Max.X) / 2
	for y := r.Min.Y + 8; y < r.Max.Y-6; y += 5 {
		raster.FillRect(dst, image.Rect(cx-3, y, cx-1, y+2), colorIcon)
		raster.FillRect(dst, image.Rect(cx+1, y, cx+3, y+2), colorIcon)
	}
}

// drawToolIcon 绘制工具图标
func drawToolIcon(dst *image.RGBA, r image.Rectangle, t annotate.Tool) {
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	const s = 8

	switch t {
	case annotate.ToolPen:
		raster.Polyline(dst, []image.Point{
			{cx - s, cy + 4}, {cx - 4, cy - 4}, {cx, cy + 2}, {cx + 4, cy - 5}, {cx + s, cy - 2},
		}, colorIcon, 2)
	case annotate.ToolHighlighter:
		hl := colorSave
		hl.A = annotate.HighlighterAlpha * 2
		raster.Line(dst, image.Pt(cx-s, cy+2), image.Pt(cx+s, cy-2), hl, 7)
	case annotate.ToolArrow:
		raster.Line(dst, image.Pt(cx-s, cy+s), image.Pt(cx+s, cy-s), colorIcon, 2)
		raster.Line(dst, image.Pt(cx+s, cy-s), image.Pt(cx+s-6, cy-s), colorIcon, 2)
		raster.Line(dst, image.Pt(cx+s, cy-s), image.Pt(cx+s, cy-s+6), colorIcon, 2)
	case annotate.ToolRect:
		raster.StrokeRect(dst, image.Rect(cx-s, cy-6, cx+s, cy+6), colorIcon, 2)
	case annotate.ToolText:
		sz := raster.MeasureText("A")
		raster.Text(dst, image.Pt(cx-sz.X/2, cy-sz.Y/2), "A", colorIcon)
	case annotate.ToolBlur:
		// 2x2 马赛克格子
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				c := colorIcon
				if (i+j)%2 == 1 {
					c.A = 110
				}
				x := cx - s + i*s
				y := cy - s + j*s
				raster.FillRect(dst, image.Rect(x, y, x+s, y+s), c)
			}
		}
	}
}

// drawActionIcon 绘制操作按钮图标
func drawActionIcon(dst *image.RGBA, r image.Rectangle, a Action, canUndo bool) {
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	const s = 7

	switch a {
	case ActionUndo:
		c := colorIcon
		if !canUndo {
			c.A = 90
		}
		raster.Line(dst, image.Pt(cx-s, cy), image.Pt(cx+s, cy), c, 2)
		raster.Line(dst, image.Pt(cx-s, cy), image.Pt(cx-s+5, cy-5), c, 2)
		raster.Line(dst, image.Pt(cx-s, cy), image.Pt(cx-s+5, cy+5), c, 2)
	case ActionSave:
		raster.Polyline(dst, []image.Point{{cx - s, cy}, {cx - 2, cy + 5}, {cx + s, cy - 5}}, colorSave, 3)
	case ActionCopy:
		raster.StrokeRect(dst, image.Rect(cx-s, cy-s, cx+3, cy+3), colorIcon, 2)
		raster.StrokeRect(dst, image.Rect(cx-3, cy-3, cx+s, cy+s), colorIcon, 2)
	case ActionClose:
		raster.Line(dst, image.Pt(cx-s, cy-s), image.Pt(cx+s, cy+s), colorClose, 3)
		raster.Line(dst, image.Pt(cx+s, cy-s), image.Pt(cx-s, cy+s), colorClose, 3)
	}
}
