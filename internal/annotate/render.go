package annotate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"pixelcatchr/internal/raster"
)

var (
	previewFill   = color.RGBA{255, 255, 255, 50}
	previewBorder = color.RGBA{255, 255, 255, 255}
)

func defaultMeasure(s string) image.Point {
	return raster.MeasureText(s)
}

// RenderAll 按顺序把标注绘制到 img 上（直接修改 img）
func RenderAll(img *image.RGBA, annotations []Annotation) {
	for _, a := range annotations {
		Render(img, a)
	}
}

// Render 绘制单个标注，坐标与 img 的坐标系一致
func Render(img *image.RGBA, a Annotation) {
	switch a := a.(type) {
	case nil:
	case Pen:
		raster.Polyline(img, a.Points, a.Color, PenWidth)
	case Highlighter:
		raster.Polyline(img, a.Points, a.Color, HighlighterWidth)
	case Rect:
		raster.StrokeRect(img, a.Rect, a.Color, RectWidth)
	case Arrow:
		renderArrow(img, a)
	case Text:
		raster.Text(img, a.Pos, a.Content, a.Color)
	case BlurPreview:
		raster.FillRect(img, a.Rect, previewFill)
		raster.DashedRect(img, a.Rect, previewBorder, 4, 4)
	case Image:
		if a.Patch == nil {
			return
		}
		draw.Draw(img, a.Bounds(), a.Patch, a.Patch.Bounds().Min, draw.Src)
	default:
		panic(fmt.Sprintf("annotate: unhandled annotation type %T", a))
	}
}

// ---------- 箭头 ----------

func renderArrow(img *image.RGBA, a Arrow) {
	raster.Line(img, a.From, a.To, a.Color, ArrowWidth)

	left, right, ok := arrowHead(a.From, a.To)
	if !ok {
		return
	}
	raster.FillTriangle(img, a.To, left, right, a.Color)
	raster.StrokePolygon(img, []image.Point{a.To, left, right}, a.Color, ArrowWidth)
}

// arrowHead 计算箭头两翼顶点：从终点沿反方向偏转 ±ArrowHeadAngle，长度 ArrowHeadSize
func arrowHead(from, to image.Point) (image.Point, image.Point, bool) {
	dx := float64(to.X - from.X)
	dy := float64(to.Y - from.Y)
	if math.Hypot(dx, dy) < 1 {
		return image.Point{}, image.Point{}, false
	}
	theta := math.Atan2(dy, dx)
	wing := func(angle float64) image.Point {
		return image.Point{
			X: to.X - int(math.Round(ArrowHeadSize*math.Cos(angle))),
			Y: to.Y - int(math.Round(ArrowHeadSize*math.Sin(angle))),
		}
	}
	return wing(theta - ArrowHeadAngle), wing(theta + ArrowHeadAngle), true
}
