package annotate

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
)

// Bake 把底图上 r 区域的像素缩小 BlurFactor 倍再放大回原尺寸，得到马赛克式的模糊块。
// r 会先被裁剪到底图范围内，裁剪后为空时返回 false
func Bake(base *image.RGBA, r image.Rectangle) (Image, bool) {
	if base == nil {
		return Image{}, false
	}
	r = r.Canon().Intersect(base.Bounds())
	if r.Empty() {
		return Image{}, false
	}

	w, h := r.Dx(), r.Dy()
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(src, src.Bounds(), base, r.Min, draw.Src)

	small := transform.Resize(src, max(1, w/BlurFactor), max(1, h/BlurFactor), transform.Linear)
	patch := transform.Resize(small, w, h, transform.Linear)

	return Image{Patch: patch, Pos: r.Min}, true
}
