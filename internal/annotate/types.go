package annotate

import (
	"image"
	"image/color"
	"math"

	"pixelcatchr/internal/raster"
)

// Tool 标注工具类型
type Tool int

const (
	ToolNone        Tool = iota // 未选择工具（选区可移动/缩放）
	ToolPen                     // 画笔
	ToolHighlighter             // 荧光笔
	ToolRect                    // 矩形
	ToolArrow                   // 箭头
	ToolText                    // 文本
	ToolBlur                    // 模糊/马赛克
	ToolCount                   // 工具总数（用于遍历）
)

// ToolName 工具显示名称
var ToolName = map[Tool]string{
	ToolNone:        "none",
	ToolPen:         "pen",
	ToolHighlighter: "highlighter",
	ToolRect:        "rect",
	ToolArrow:       "arrow",
	ToolText:        "text",
	ToolBlur:        "blur",
}

func (t Tool) String() string {
	if name, ok := ToolName[t]; ok {
		return name
	}
	return "unknown"
}

// 绘制参数
const (
	PenWidth         = 3
	HighlighterWidth = 24
	HighlighterAlpha = 80 // 约 31% 不透明度
	RectWidth        = 3
	ArrowWidth       = 3
	ArrowHeadSize    = 15
	ArrowHeadAngle   = math.Pi / 6
	TextPadding      = 4
	BlurFactor       = 10
)

// Annotation 标注。具体类型只能是本包中定义的几种，渲染时按类型分派
type Annotation interface {
	// Bounds 标注覆盖的大致范围
	Bounds() image.Rectangle
	annotation()
}

// Pen 自由画笔
type Pen struct {
	Points []image.Point
	Color  color.RGBA
}

// Highlighter 半透明荧光笔
type Highlighter struct {
	Points []image.Point
	Color  color.RGBA
}

// Rect 矩形框
type Rect struct {
	Rect  image.Rectangle
	Color color.RGBA
}

// Arrow 箭头，From 指向 To
type Arrow struct {
	From, To image.Point
	Color    color.RGBA
}

// Text 文本，Pos 为文字左上角
type Text struct {
	Content string
	Pos     image.Point
	Color   color.RGBA
}

// BlurPreview 拖拽模糊区域时的预览框，不会被提交
type BlurPreview struct {
	Rect image.Rectangle
}

// Image 固化的像素块（模糊结果），Pos 为左上角
type Image struct {
	Patch *image.RGBA
	Pos   image.Point
}

func (Pen) annotation()         {}
func (Highlighter) annotation() {}
func (Rect) annotation()        {}
func (Arrow) annotation()       {}
func (Text) annotation()        {}
func (BlurPreview) annotation() {}
func (Image) annotation()       {}

func (a Pen) Bounds() image.Rectangle         { return pathBounds(a.Points, PenWidth) }
func (a Highlighter) Bounds() image.Rectangle { return pathBounds(a.Points, HighlighterWidth) }
func (a Rect) Bounds() image.Rectangle        { return a.Rect.Inset(-RectWidth) }
func (a Arrow) Bounds() image.Rectangle {
	return image.Rectangle{Min: a.From, Max: a.To}.Canon().Inset(-ArrowHeadSize)
}
func (a Text) Bounds() image.Rectangle        { return textBox(a, raster.MeasureText) }
func (a BlurPreview) Bounds() image.Rectangle { return a.Rect }
func (a Image) Bounds() image.Rectangle {
	if a.Patch == nil {
		return image.Rectangle{}
	}
	return image.Rectangle{Min: a.Pos, Max: a.Pos.Add(a.Patch.Bounds().Size())}
}

// pathBounds 路径点的包围盒，按线宽向外扩展
func pathBounds(pts []image.Point, width int) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	pad := width/2 + 1
	return r.Inset(-pad)
}

// DefaultColors 预设颜色面板
var DefaultColors = []color.RGBA{
	{255, 0, 0, 255},     // 红色
	{0, 180, 0, 255},     // 绿色
	{0, 120, 255, 255},   // 蓝色
	{255, 200, 0, 255},   // 黄色
	{255, 128, 0, 255},   // 橙色
	{180, 0, 255, 255},   // 紫色
	{255, 255, 255, 255}, // 白色
	{0, 0, 0, 255},       // 黑色
}
