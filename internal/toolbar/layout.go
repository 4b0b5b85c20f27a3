// Package toolbar 浮动工具栏：按钮布局、命中检测、绘制，以及相对选区的自动定位
package toolbar

import (
	"image"

	"pixelcatchr/internal/annotate"
)

// 布局尺寸
const (
	BtnSize    = 32 // 按钮大小
	BtnGap     = 3  // 按钮间距
	Padding    = 6  // 工具栏内边距
	SepWidth   = 10 // 分隔符宽度
	GripWidth  = 14 // 拖动把手宽度
	SwatchSize = 18 // 颜色块大小
	Height     = BtnSize + 2*Padding
	Gap        = 10 // 工具栏与选区的间距
)

// Kind 按钮类型
type Kind int

const (
	KindGrip Kind = iota
	KindTool
	KindColor
	KindAction
)

// Action 操作按钮
type Action int

const (
	ActionNone Action = iota
	ActionUndo
	ActionSave
	ActionCopy
	ActionClose
)

func (a Action) String() string {
	switch a {
	case ActionUndo:
		return "undo"
	case ActionSave:
		return "save"
	case ActionCopy:
		return "copy"
	case ActionClose:
		return "close"
	}
	return "none"
}

// Button 工具栏按钮
type Button struct {
	Rect       image.Rectangle
	Kind       Kind
	Tool       annotate.Tool
	ColorIndex int
	Action     Action
}

// ToolOrder 工具按钮的显示顺序
var ToolOrder = []annotate.Tool{
	annotate.ToolPen,
	annotate.ToolHighlighter,
	annotate.ToolArrow,
	annotate.ToolRect,
	annotate.ToolText,
	annotate.ToolBlur,
}

var actionOrder = []Action{ActionUndo, ActionSave, ActionCopy, ActionClose}

// Size 工具栏尺寸
func Size() image.Point {
	n := len(ToolOrder)
	w := Padding + GripWidth + SepWidth
	w += n*BtnSize + (n-1)*BtnGap + SepWidth
	w += len(annotate.DefaultColors)*(SwatchSize+BtnGap) - BtnGap + SepWidth
	w += len(actionOrder)*BtnSize + (len(actionOrder)-1)*BtnGap + Padding
	return image.Pt(w, Height)
}

// Layout 以 origin 为左上角计算所有按钮的位置
func Layout(origin image.Point) []Button {
	var buttons []Button
	x := origin.X + Padding
	y := origin.Y + Padding

	buttons = append(buttons, Button{
		Rect: image.Rect(x, y, x+GripWidth, y+BtnSize),
		Kind: KindGrip,
	})
	x += GripWidth + SepWidth

	for _, t := range ToolOrder {
		buttons = append(buttons, Button{
			Rect: image.Rect(x, y, x+BtnSize, y+BtnSize),
			Kind: KindTool,
			Tool: t,
		})
		x += BtnSize + BtnGap
	}
	x += SepWidth - BtnGap

	sy := y + (BtnSize-SwatchSize)/2
	for i := range annotate.DefaultColors {
		buttons = append(buttons, Button{
			Rect:       image.Rect(x, sy, x+SwatchSize, sy+SwatchSize),
			Kind:       KindColor,
			ColorIndex: i,
		})
		x += SwatchSize + BtnGap
	}
	x += SepWidth - BtnGap

	for _, a := range actionOrder {
		buttons = append(buttons, Button{
			Rect:   image.Rect(x, y, x+BtnSize, y+BtnSize),
			Kind:   KindAction,
			Action: a,
		})
		x += BtnSize + BtnGap
	}
	return buttons
}

// Bounds 以 origin 为左上角时工具栏占据的矩形
func Bounds(origin image.Point) image.Rectangle {
	return image.Rectangle{Min: origin, Max: origin.Add(Size())}
}

// HitTest 返回 p 下的按钮。落在工具栏空白处时返回 ok=false, inside=true
func HitTest(origin, p image.Point) (btn Button, ok bool, inside bool) {
	if !p.In(Bounds(origin)) {
		return Button{}, false, false
	}
	for _, b := range Layout(origin) {
		if p.In(b.Rect) {
			return b, true, true
		}
	}
	return Button{}, false, true
}
