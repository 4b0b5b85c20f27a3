// Package export 把选区裁剪、叠加标注和时间戳后交给文件或剪贴板
package export

import (
	"errors"
	"image"
	"image/color"
	"time"

	"golang.org/x/image/draw"

	"pixelcatchr/internal/annotate"
	"pixelcatchr/internal/capture"
	"pixelcatchr/internal/logger"
	"pixelcatchr/internal/raster"
)

// ErrNoSelection 选区为空或完全在底图之外
var ErrNoSelection = errors.New("no selection to export")

// TimestampLayout 时间戳格式
const TimestampLayout = "2006-01-02 15:04:05"

// TimestampInset 时间戳基线相对选区左上角的位置
var TimestampInset = image.Pt(10, 20)

// Options 渲染选项
type Options struct {
	ShowDatetime bool
	Now          time.Time
}

// Render 裁剪 base 到 sel，按顺序重放标注（标注使用桌面坐标），
// 可选地烧入时间戳。返回原点为 (0,0) 的新图片，base 不会被修改
func Render(base *image.RGBA, sel image.Rectangle, annotations []annotate.Annotation, opts Options) (*image.RGBA, error) {
	sel = sel.Canon().Intersect(base.Bounds())
	if sel.Empty() {
		return nil, ErrNoSelection
	}

	// 画布沿用桌面坐标，标注无需平移
	canvas := image.NewRGBA(sel)
	draw.Draw(canvas, sel, base, sel.Min, draw.Src)
	annotate.RenderAll(canvas, annotations)

	if opts.ShowDatetime {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		DrawTimestamp(canvas, sel.Min.Add(TimestampInset), now)
	}

	logger.WithComponent("export").Debug().
		Stringer("selection", sel).
		Int("annotations", len(annotations)).
		Bool("datetime", opts.ShowDatetime).
		Msg("rendered export image")

	return capture.CropImage(canvas, sel), nil
}

// DrawTimestamp 在 baseline 处绘制白色时间戳，底下是黑色底块。返回底块矩形
func DrawTimestamp(img *image.RGBA, baseline image.Point, now time.Time) image.Rectangle {
	text := now.Format(TimestampLayout)
	size := raster.MeasureText(text)
	h := raster.LineHeight()

	chip := image.Rect(baseline.X-4, baseline.Y-h+4, baseline.X-4+size.X+8, baseline.Y+4)
	raster.FillRect(img, chip, color.RGBA{0, 0, 0, 255})
	raster.TextBaseline(img, baseline, text, color.RGBA{255, 255, 255, 255})
	return chip
}
