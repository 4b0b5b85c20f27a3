// Package raster 提供基于 image.RGBA 的软件光栅化：抗锯齿粗线、折线、多边形、半透明混合和位图文字。
// 所有函数都遵循 img.Bounds().Min，可以直接在非零原点的图片上绘制（例如以桌面坐标建立的裁剪画布）。
package raster

import (
	"image"
	"image/color"
	"math"
)

// Blend 混合绘制像素（支持半透明），超出图片范围的像素被忽略
func Blend(img *image.RGBA, x, y int, c color.RGBA) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if c.A == 0 {
		return
	}

	off := img.PixOffset(x, y)
	if c.A == 255 {
		img.Pix[off+0] = c.R
		img.Pix[off+1] = c.G
		img.Pix[off+2] = c.B
		img.Pix[off+3] = 255
		return
	}

	srcA := uint32(c.A)
	invA := 255 - srcA
	img.Pix[off+0] = uint8((uint32(c.R)*srcA + uint32(img.Pix[off+0])*invA) / 255)
	img.Pix[off+1] = uint8((uint32(c.G)*srcA + uint32(img.Pix[off+1])*invA) / 255)
	img.Pix[off+2] = uint8((uint32(c.B)*srcA + uint32(img.Pix[off+2])*invA) / 255)
	img.Pix[off+3] = uint8(srcA + uint32(img.Pix[off+3])*invA/255)
}

// FillRect 用颜色 c 混合填充矩形
func FillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Canon().Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			Blend(img, x, y, c)
		}
	}
}

// StrokeRect 绘制矩形描边，线条中心落在矩形的最外一圈像素上
func StrokeRect(img *image.RGBA, r image.Rectangle, c color.RGBA, width int) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1
	Polyline(img, []image.Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}, c, width)
}

// OutlineRect 绘制 1px 实线矩形框（不抗锯齿）
func OutlineRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	DashedRect(img, r, c, 1, 0)
}

// DashedRect 绘制 1px 虚线矩形框，dash 为实线段长度，gap 为间隔
func DashedRect(img *image.RGBA, r image.Rectangle, c color.RGBA, dash, gap int) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	if dash <= 0 {
		dash = 4
	}
	period := dash + gap
	on := func(i int) bool { return period <= 0 || i%period < dash }

	x1, y1 := r.Max.X-1, r.Max.Y-1
	for x := r.Min.X; x <= x1; x++ {
		if on(x - r.Min.X) {
			Blend(img, x, r.Min.Y, c)
			Blend(img, x, y1, c)
		}
	}
	for y := r.Min.Y + 1; y < y1; y++ {
		if on(y - r.Min.Y) {
			Blend(img, r.Min.X, y, c)
			Blend(img, x1, y, c)
		}
	}
}

// Line 使用距离场抗锯齿绘制线段（圆头端点）
func Line(img *image.RGBA, p0, p1 image.Point, c color.RGBA, width int) {
	halfW := halfWidth(width)

	dx := float64(p1.X - p0.X)
	dy := float64(p1.Y - p0.Y)
	length := math.Hypot(dx, dy)
	if length < 0.5 {
		Disc(img, float64(p0.X), float64(p0.Y), halfW, c)
		return
	}

	box := image.Rectangle{Min: p0, Max: p1}.Canon().Inset(-(int(halfW) + 2))
	for py := box.Min.Y; py <= box.Max.Y; py++ {
		for px := box.Min.X; px <= box.Max.X; px++ {
			dist := segmentDist(float64(px), float64(py), p0, p1)
			aaPixel(img, px, py, c, coverage(dist, halfW))
		}
	}
}

// Polyline 绘制折线。每个像素取所有线段中的最大覆盖率后只混合一次，
// 半透明颜色（荧光笔）在线段重叠和转角处不会叠加变深
func Polyline(img *image.RGBA, pts []image.Point, c color.RGBA, width int) {
	if len(pts) == 0 {
		return
	}
	halfW := halfWidth(width)
	pad := int(halfW) + 2

	box := image.Rectangle{Min: pts[0], Max: pts[0].Add(image.Pt(1, 1))}
	for _, p := range pts[1:] {
		box = box.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	box = box.Inset(-pad).Intersect(img.Bounds())
	if box.Empty() {
		return
	}

	w, h := box.Dx(), box.Dy()
	mask := make([]float64, w*h)
	mark := func(a, b image.Point) {
		seg := image.Rectangle{Min: a, Max: b}.Canon().Inset(-pad).Intersect(box)
		for py := seg.Min.Y; py <= seg.Max.Y && py < box.Max.Y; py++ {
			for px := seg.Min.X; px <= seg.Max.X && px < box.Max.X; px++ {
				cov := coverage(segmentDist(float64(px), float64(py), a, b), halfW)
				i := (py-box.Min.Y)*w + (px - box.Min.X)
				if cov > mask[i] {
					mask[i] = cov
				}
			}
		}
	}

	if len(pts) == 1 {
		mark(pts[0], pts[0])
	}
	for i := 1; i < len(pts); i++ {
		mark(pts[i-1], pts[i])
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			aaPixel(img, box.Min.X+x, box.Min.Y+y, c, mask[y*w+x])
		}
	}
}

// Disc 绘制抗锯齿实心圆
func Disc(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	ri := int(r) + 2
	cxi, cyi := int(cx), int(cy)
	for py := cyi - ri; py <= cyi+ri; py++ {
		for px := cxi - ri; px <= cxi+ri; px++ {
			dist := math.Hypot(float64(px)-cx, float64(py)-cy)
			aaPixel(img, px, py, c, coverage(dist, r))
		}
	}
}

// FillTriangle 扫描线填充三角形（用于箭头）
func FillTriangle(img *image.RGBA, a, b, c image.Point, col color.RGBA) {
	FillPolygon(img, []image.Point{a, b, c}, col)
}

// FillPolygon 使用奇偶规则扫描线填充任意简单多边形
func FillPolygon(img *image.RGBA, pts []image.Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	var xs []int
	for y := minY; y <= maxY; y++ {
		xs = xs[:0]
		for i := range pts {
			xs = appendEdgeX(xs, y, pts[i], pts[(i+1)%len(pts)])
		}
		sortInts(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := xs[i]; x <= xs[i+1]; x++ {
				Blend(img, x, y, c)
			}
		}
	}
}

// StrokePolygon 绘制闭合多边形的描边
func StrokePolygon(img *image.RGBA, pts []image.Point, c color.RGBA, width int) {
	if len(pts) < 2 {
		return
	}
	closed := append(append([]image.Point(nil), pts...), pts[0])
	Polyline(img, closed, c, width)
}

// appendEdgeX 计算扫描线 y 与边 (a, b) 的交点 x。
// 区间取半开 [a.Y, b.Y)，顶点不会被两条边重复计数
func appendEdgeX(xs []int, y int, a, b image.Point) []int {
	if a.Y > b.Y {
		a, b = b, a
	}
	if a.Y == b.Y || y < a.Y || y >= b.Y {
		return xs
	}
	t := float64(y-a.Y) / float64(b.Y-a.Y)
	x := int(math.Round(float64(a.X) + t*float64(b.X-a.X)))
	return append(xs, x)
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

func halfWidth(width int) float64 {
	h := float64(width) / 2.0
	if h < 0.75 {
		h = 0.75
	}
	return h
}

// segmentDist 点到线段的距离
func segmentDist(px, py float64, a, b image.Point) float64 {
	ax, ay := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X)-ax, float64(b.Y)-ay
	vx, vy := px-ax, py-ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(vx, vy)
	}
	t := (vx*dx + vy*dy) / l2
	switch {
	case t <= 0:
		return math.Hypot(vx, vy)
	case t >= 1:
		return math.Hypot(px-float64(b.X), py-float64(b.Y))
	}
	return math.Hypot(vx-t*dx, vy-t*dy)
}

// coverage 根据像素中心到形状边缘的距离计算覆盖率 [0,1]
func coverage(dist, halfW float64) float64 {
	switch {
	case dist > halfW+0.5:
		return 0
	case dist <= halfW-0.5:
		return 1
	}
	return halfW + 0.5 - dist
}

func aaPixel(img *image.RGBA, x, y int, c color.RGBA, cov float64) {
	if cov <= 0 {
		return
	}
	if cov < 1 {
		c.A = uint8(float64(c.A) * cov)
	}
	Blend(img, x, y, c)
}
