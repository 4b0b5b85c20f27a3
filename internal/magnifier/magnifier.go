// Package magnifier 绘制跟随鼠标的放大镜
package magnifier

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"pixelcatchr/internal/raster"
)

const (
	Size   = 120         // 放大镜边长
	Zoom   = 5           // 放大倍数
	Source = Size / Zoom // 取样区域边长
	Offset = 20          // 与鼠标的距离
	Grid   = 5           // 辅助网格的格数
	Border = 2
)

var (
	gridColor   = color.RGBA{255, 255, 255, 60}
	centerColor = color.RGBA{255, 0, 0, 255}
	borderColor = color.RGBA{255, 255, 255, 255}
	outside     = color.RGBA{0, 0, 0, 255}
)

// Place 计算放大镜位置：默认在鼠标右下方，超出 viewport 时翻到另一侧
func Place(cursor image.Point, viewport image.Rectangle) image.Rectangle {
	x := cursor.X + Offset
	y := cursor.Y + Offset
	if x+Size > viewport.Max.X {
		x = cursor.X - Offset - Size
	}
	if y+Size > viewport.Max.Y {
		y = cursor.Y - Offset - Size
	}
	x = max(x, viewport.Min.X)
	y = max(y, viewport.Min.Y)
	return image.Rect(x, y, x+Size, y+Size)
}

// SourceRect 以鼠标为中心的取样区域
func SourceRect(cursor image.Point) image.Rectangle {
	half := Source / 2
	return image.Rect(cursor.X-half, cursor.Y-half, cursor.X-half+Source, cursor.Y-half+Source)
}

// Render 在 dst 上绘制 base 在 cursor 附近的放大图，返回放大镜所在矩形。
// 底图之外的像素显示为黑色
func Render(dst *image.RGBA, base image.Image, cursor image.Point, viewport image.Rectangle) image.Rectangle {
	loupe := Place(cursor, viewport)

	tile := image.NewRGBA(image.Rect(0, 0, Source, Source))
	draw.Draw(tile, tile.Bounds(), image.NewUniform(outside), image.Point{}, draw.Src)
	draw.Draw(tile, tile.Bounds(), base, SourceRect(cursor).Min, draw.Src)

	draw.NearestNeighbor.Scale(dst, loupe, tile, tile.Bounds(), draw.Src, nil)

	// 辅助网格
	cell := Size / Grid
	for i := 1; i < Grid; i++ {
		x := loupe.Min.X + i*cell
		y := loupe.Min.Y + i*cell
		raster.FillRect(dst, image.Rect(x, loupe.Min.Y, x+1, loupe.Max.Y), gridColor)
		raster.FillRect(dst, image.Rect(loupe.Min.X, y, loupe.Max.X, y+1), gridColor)
	}

	// 中心像素的红框
	c := loupe.Min.Add(image.Pt(Source/2*Zoom, Source/2*Zoom))
	raster.OutlineRect(dst, image.Rect(c.X, c.Y, c.X+Zoom, c.Y+Zoom), centerColor)

	// 白色边框
	for i := 0; i < Border; i++ {
		raster.OutlineRect(dst, loupe.Inset(i), borderColor)
	}
	return loupe
}
