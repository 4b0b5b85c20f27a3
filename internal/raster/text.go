package raster

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Face 界面和标注共用的位图字体
var Face font.Face = basicfont.Face7x13

// LineHeight 单行文字高度
func LineHeight() int {
	return Face.Metrics().Height.Ceil()
}

// MeasureText 返回文字块（支持多行）的宽高
func MeasureText(s string) image.Point {
	lines := strings.Split(s, "\n")
	w := 0
	for _, line := range lines {
		w = max(w, font.MeasureString(Face, line).Ceil())
	}
	return image.Pt(w, len(lines)*LineHeight())
}

// Text 以 topLeft 为左上角绘制文字
func Text(img *image.RGBA, topLeft image.Point, s string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: Face,
	}
	ascent := Face.Metrics().Ascent.Ceil()
	for i, line := range strings.Split(s, "\n") {
		d.Dot = fixed.P(topLeft.X, topLeft.Y+ascent+i*LineHeight())
		d.DrawString(line)
	}
}

// TextBaseline 以基线坐标绘制单行文字，返回文字占据的矩形
func TextBaseline(img *image.RGBA, baseline image.Point, s string, c color.RGBA) image.Rectangle {
	m := Face.Metrics()
	top := image.Pt(baseline.X, baseline.Y-m.Ascent.Ceil())
	Text(img, top, s, c)
	size := MeasureText(s)
	return image.Rectangle{Min: top, Max: top.Add(size)}
}

// Label 在深色底块上绘制文字，底块为文字矩形向外扩展 pad 像素
func Label(img *image.RGBA, topLeft image.Point, s string, fg, bg color.RGBA, pad int) image.Rectangle {
	size := MeasureText(s)
	chip := image.Rectangle{Min: topLeft, Max: topLeft.Add(size)}.Inset(-pad)
	FillRect(img, chip, bg)
	Text(img, topLeft, s, fg)
	return chip
}
