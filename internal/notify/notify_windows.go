//go:build windows

package notify

import (
	"github.com/go-toast/toast"

	"pixelcatchr/internal/logger"
)

// ToastNotifier Windows 通知中心
type ToastNotifier struct {
	appID string
}

// NewNotifier 创建通知器
func NewNotifier(appID string) Notifier {
	return &ToastNotifier{appID: appID}
}

// Show 显示通知（异步，不阻塞事件循环）
func (n *ToastNotifier) Show(title, message string) error {
	go func() {
		notification := toast.Notification{
			AppID:   n.appID,
			Title:   title,
			Message: message,
		}
		if err := notification.Push(); err != nil {
			logger.WithComponent("notify").Warn().Err(err).Msg("toast failed")
		}
	}()
	return nil
}
