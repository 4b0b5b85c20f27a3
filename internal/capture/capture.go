package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/rs/zerolog"

	"pixelcatchr/internal/logger"
)

var (
	// ErrNoMonitors 没有可用的显示器
	ErrNoMonitors = errors.New("capture: no active monitors")
	// ErrEmptyCapture 截图结果为空
	ErrEmptyCapture = errors.New("capture: empty desktop bitmap")
)

// ScreenSource 屏幕数据来源
type ScreenSource interface {
	// Monitors 返回所有活动显示器的矩形（全局坐标）
	Monitors() ([]image.Rectangle, error)

	// Grab 截取全局坐标下的矩形区域
	Grab(r image.Rectangle) (*image.RGBA, error)
}

// CursorLocator 查询鼠标位置（全局坐标），ok=false 表示当前平台不支持
type CursorLocator interface {
	CursorPosition() (image.Point, bool)
}

// Options 截图选项
type Options struct {
	DrawCursor bool // 是否把鼠标指针画进截图
}

// Desktop 一次截图得到的虚拟桌面。Image 的原点为 (0,0)，对应全局坐标 Origin
type Desktop struct {
	Image    *image.RGBA
	Origin   image.Point
	Monitors []image.Rectangle // 本地坐标
}

// Bounds 虚拟桌面在本地坐标中的范围
func (d *Desktop) Bounds() image.Rectangle {
	return d.Image.Bounds()
}

// ToLocal 全局坐标转换为桌面本地坐标
func (d *Desktop) ToLocal(global image.Point) image.Point {
	return global.Sub(d.Origin)
}

// MonitorAt 返回包含 p 的显示器矩形
func (d *Desktop) MonitorAt(p image.Point) (image.Rectangle, bool) {
	for _, m := range d.Monitors {
		if p.In(m) {
			return m, true
		}
	}
	return image.Rectangle{}, false
}

// Compositor 把多块显示器拼接成一张完整的虚拟桌面图片
type Compositor struct {
	src    ScreenSource
	cursor CursorLocator
	log    *zerolog.Logger
}

// NewCompositor 创建拼接器，cursor 可以为 nil
func NewCompositor(src ScreenSource, cursor CursorLocator) *Compositor {
	return &Compositor{
		src:    src,
		cursor: cursor,
		log:    logger.WithComponent("capture"),
	}
}

// Capture 截取整个虚拟桌面
func (c *Compositor) Capture(opts Options) (*Desktop, error) {
	monitors, err := c.src.Monitors()
	if err != nil {
		return nil, fmt.Errorf("enumerate monitors: %w", err)
	}
	if len(monitors) == 0 {
		return nil, ErrNoMonitors
	}

	union := image.Rectangle{}
	for _, m := range monitors {
		union = union.Union(m)
	}
	if union.Empty() {
		return nil, ErrEmptyCapture
	}

	desk := &Desktop{
		Image:  image.NewRGBA(image.Rect(0, 0, union.Dx(), union.Dy())),
		Origin: union.Min,
	}

	for i, m := range monitors {
		shot, err := c.src.Grab(m)
		if err != nil {
			return nil, fmt.Errorf("grab monitor %d: %w", i, err)
		}
		local := m.Sub(union.Min)
		draw.Draw(desk.Image, local, shot, shot.Bounds().Min, draw.Src)
		desk.Monitors = append(desk.Monitors, local)
	}

	if opts.DrawCursor && c.cursor != nil {
		if pos, ok := c.cursor.CursorPosition(); ok {
			DrawCursor(desk.Image, desk.ToLocal(pos))
		}
	}

	c.log.Debug().
		Int("monitors", len(monitors)).
		Str("desktop", union.String()).
		Msg("desktop captured")
	return desk, nil
}

// BytesPerPixel RGBA 格式每像素字节数
const BytesPerPixel = 4

// CropImage 裁剪图片，结果原点为 (0,0)。区域会先被限制在图片范围内
func CropImage(img *image.RGBA, region image.Rectangle) *image.RGBA {
	region = region.Canon().Intersect(img.Bounds())
	if region.Empty() {
		return image.NewRGBA(image.Rectangle{})
	}

	cropped := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))

	// 按行直接复制内存
	bytesPerRow := region.Dx() * BytesPerPixel
	for y := 0; y < region.Dy(); y++ {
		srcStart := img.PixOffset(region.Min.X, region.Min.Y+y)
		dstStart := y * cropped.Stride
		copy(cropped.Pix[dstStart:dstStart+bytesPerRow], img.Pix[srcStart:srcStart+bytesPerRow])
	}
	return cropped
}
