// Package notify 截图结果的一行提示
package notify

import (
	"pixelcatchr/internal/logger"
)

// Notifier 通知接口
type Notifier interface {
	Show(title, message string) error
}

// LogNotifier 没有系统通知时写入日志
type LogNotifier struct{}

// NewLogNotifier 创建日志通知器
func NewLogNotifier() Notifier {
	return LogNotifier{}
}

// Show 记录通知
func (LogNotifier) Show(title, message string) error {
	logger.WithComponent("notify").Info().Str("title", title).Msg(message)
	return nil
}
