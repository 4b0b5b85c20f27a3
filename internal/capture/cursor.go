package capture

import (
	"image"
	"image/color"

	"pixelcatchr/internal/raster"
)

// cursorGlyph 标准箭头指针轮廓，热点在 (0,0)
var cursorGlyph = []image.Point{
	{0, 0}, {0, 17}, {5, 12}, {9, 19}, {11, 18}, {7, 11}, {12, 11},
}

// DrawCursor 以 hotspot 为热点绘制白底黑边的箭头指针
func DrawCursor(img *image.RGBA, hotspot image.Point) {
	pts := make([]image.Point, len(cursorGlyph))
	for i, p := range cursorGlyph {
		pts[i] = p.Add(hotspot)
	}
	raster.FillPolygon(img, pts, color.RGBA{255, 255, 255, 255})
	raster.StrokePolygon(img, pts, color.RGBA{0, 0, 0, 255}, 1)
}
