//go:build !windows

package notify

// NewNotifier 非 Windows 平台把通知写入日志
func NewNotifier(appID string) Notifier {
	return NewLogNotifier()
}
