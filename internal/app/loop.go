// Package app 事件循环：唯一的 UI goroutine 串行处理截图请求和选项切换
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"pixelcatchr/internal/capture"
	"pixelcatchr/internal/config"
	"pixelcatchr/internal/logger"
	"pixelcatchr/internal/notify"
	"pixelcatchr/internal/session"
)

// QueueSize 事件队列长度，队列满时新事件被丢弃
const QueueSize = 16

// AppName 通知标题
const AppName = "PixelCatchr"

// Capturer 截取整个虚拟桌面
type Capturer interface {
	Capture(opts capture.Options) (*capture.Desktop, error)
}

// Settings 配置来源
type Settings interface {
	Snapshot() config.Settings
	Toggle(name string) (bool, error)
}

// Host 显示覆盖层并驱动会话，直到会话结束或 ctx 取消
type Host interface {
	Run(ctx context.Context, s *session.Session) error
}

// SinkFactory 根据会话的配置快照创建导出目标
type SinkFactory func(config.Settings) session.Sinks

// Deps 事件循环依赖
type Deps struct {
	Capturer Capturer
	Settings Settings
	Host     Host
	Notifier notify.Notifier
	Sinks    SinkFactory

	// OnToggle 选项切换后回调（例如同步托盘菜单的勾选状态），可以为 nil
	OnToggle func(name string, value bool)
}

// Loop 事件循环
type Loop struct {
	deps   Deps
	events chan Event
	log    *zerolog.Logger
}

// New 创建事件循环
func New(deps Deps) *Loop {
	if deps.Notifier == nil {
		deps.Notifier = notify.NewLogNotifier()
	}
	return &Loop{
		deps:   deps,
		events: make(chan Event, QueueSize),
		log:    logger.WithComponent("app"),
	}
}

// Post 投递事件，不阻塞。队列已满时丢弃并返回 false
func (l *Loop) Post(e Event) bool {
	select {
	case l.events <- e:
		return true
	default:
		l.log.Warn().Stringer("event", e.Kind).Msg("event queue full, dropping event")
		return false
	}
}

// Run 处理事件直到 ctx 取消
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info().Msg("event loop started")
	for {
		select {
		case <-ctx.Done():
			l.log.Info().Msg("event loop stopped")
			return ctx.Err()
		case e := <-l.events:
			l.handle(ctx, e)
		}
	}
}

// Handle 同步处理单个事件，供不启动常驻循环的一次性命令使用
func (l *Loop) Handle(ctx context.Context, e Event) {
	l.handle(ctx, e)
}

// handle 处理单个事件。任何 panic 都被记录并通知，不会终止循环
func (l *Loop) handle(ctx context.Context, e Event) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Interface("panic", r).Stringer("event", e.Kind).Msg("recovered from panic")
			l.notify("Unexpected error", fmt.Sprint(r))
		}
	}()

	switch e.Kind {
	case KindZoneCapture, KindFullCapture:
		err := l.capture(ctx, e.Kind == KindFullCapture)
		// 会话期间积压的截图请求全部丢弃
		l.drain()
		if err != nil && !errors.Is(err, context.Canceled) {
			l.log.Error().Err(err).Stringer("event", e.Kind).Msg("capture failed")
		}
	case KindToggle:
		l.toggle(e.Option)
	}
}

// capture 执行一次截图会话
func (l *Loop) capture(ctx context.Context, full bool) error {
	settings := l.deps.Settings.Snapshot()

	desk, err := l.deps.Capturer.Capture(capture.Options{DrawCursor: settings.CaptureCursor})
	if err != nil {
		l.notify("Capture failed", err.Error())
		return fmt.Errorf("capture desktop: %w", err)
	}

	s := session.New(desk, settings, l.deps.Sinks(settings))
	// 导出失败时会话保持打开，每次失败都发通知
	s.OnFailure(l.notify)

	if full {
		s.SelectAll()
		if err := s.Save(); err != nil {
			return err
		}
	} else if err := l.deps.Host.Run(ctx, s); err != nil {
		l.notify("Overlay failed", err.Error())
		return fmt.Errorf("run overlay: %w", err)
	}

	outcome, msg := s.Result()
	l.log.Info().Stringer("outcome", outcome).Str("result", msg).Bool("full", full).Msg("capture finished")
	if (outcome == session.Saved || outcome == session.Copied) && settings.ShowNotification {
		l.notify(AppName, msg)
	}
	return nil
}

// drain 丢弃排队的截图请求，选项切换照常处理
func (l *Loop) drain() {
	for {
		select {
		case e := <-l.events:
			if e.isCapture() {
				l.log.Debug().Stringer("event", e.Kind).Msg("discarding capture request queued during session")
				continue
			}
			l.toggle(e.Option)
		default:
			return
		}
	}
}

func (l *Loop) toggle(name string) {
	v, err := l.deps.Settings.Toggle(name)
	if err != nil {
		l.log.Error().Err(err).Str("option", name).Msg("toggle failed")
		if errors.Is(err, config.ErrUnknownOption) {
			return
		}
		l.notify("Settings", err.Error())
		return
	}
	if l.deps.OnToggle != nil {
		l.deps.OnToggle(name, v)
	}
}

func (l *Loop) notify(title, msg string) {
	if err := l.deps.Notifier.Show(title, msg); err != nil {
		l.log.Warn().Err(err).Msg("notification failed")
	}
}
