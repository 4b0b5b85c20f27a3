package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// ScreenshotSource 基于 kbinani/screenshot 的跨平台屏幕来源
type ScreenshotSource struct{}

// NewScreenshotSource 创建系统屏幕来源
func NewScreenshotSource() *ScreenshotSource {
	return &ScreenshotSource{}
}

// Monitors 实现 ScreenSource
func (ScreenshotSource) Monitors() ([]image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	out := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		if b.Empty() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// Grab 实现 ScreenSource
func (ScreenshotSource) Grab(r image.Rectangle) (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", r, err)
	}
	return img, nil
}
