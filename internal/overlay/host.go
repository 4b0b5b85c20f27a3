// Package overlay 用 shiny 窗口显示截图会话，并把鼠标键盘事件交给会话处理
package overlay

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"pixelcatchr/internal/logger"
	"pixelcatchr/internal/session"
)

// WindowTitle 覆盖层窗口标题
const WindowTitle = "PixelCatchr"

// cancelEvent ctx 取消时发给窗口的事件
type cancelEvent struct{}

// Host 使用 shiny 屏幕创建覆盖层窗口
type Host struct {
	scr screen.Screen
	log *zerolog.Logger
}

// NewHost 创建覆盖层宿主，scr 来自 driver.Main
func NewHost(scr screen.Screen) *Host {
	return &Host{scr: scr, log: logger.WithComponent("overlay")}
}

// Run 打开与虚拟桌面同样大小的窗口并处理事件，直到会话结束、窗口关闭或 ctx 取消
func (h *Host) Run(ctx context.Context, s *session.Session) error {
	bounds := s.Desktop().Bounds()
	w, err := h.scr.NewWindow(&screen.NewWindowOptions{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Title:  WindowTitle,
	})
	if err != nil {
		return fmt.Errorf("new window: %w", err)
	}
	defer w.Release()

	buf, err := h.scr.NewBuffer(bounds.Size())
	if err != nil {
		return fmt.Errorf("new buffer: %w", err)
	}
	defer buf.Release()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			w.Send(cancelEvent{})
		case <-done:
		}
	}()

	h.log.Debug().Stringer("bounds", bounds).Msg("overlay opened")

	var clicks clickTracker
	for !s.Done() {
		switch e := w.NextEvent().(type) {
		case cancelEvent:
			s.Cancel()
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				s.Cancel()
			}
		case size.Event:
			w.Send(paint.Event{})
		case paint.Event:
			s.Frame(buf.RGBA())
			w.Upload(image.Point{}, buf, buf.Bounds())
			w.Publish()
		case mouse.Event:
			if h.mouse(s, &clicks, e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if k, ok := toKey(e); ok {
				s.Key(k)
				w.Send(paint.Event{})
			}
		case error:
			h.log.Warn().Err(e).Msg("window error")
		}
	}

	outcome, _ := s.Result()
	h.log.Debug().Stringer("outcome", outcome).Msg("overlay closed")
	return nil
}

// mouse 分发鼠标事件，返回是否需要重绘
func (h *Host) mouse(s *session.Session, clicks *clickTracker, e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	switch e.Direction {
	case mouse.DirNone:
		s.Move(p)
		return true
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		if !clicks.press(p, time.Now()) || !s.DoubleClick(p) {
			s.Press(p)
		}
		return true
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		s.Release(p)
		return true
	}
	return false
}
