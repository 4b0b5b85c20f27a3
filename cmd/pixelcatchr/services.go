package main

import (
	"os/exec"
	"runtime"
	"sync"

	"pixelcatchr/internal/app"
	"pixelcatchr/internal/capture"
	"pixelcatchr/internal/config"
	"pixelcatchr/internal/export"
	"pixelcatchr/internal/logger"
	"pixelcatchr/internal/notify"
	"pixelcatchr/internal/session"
)

var (
	clipOnce sync.Once
	clipSink *export.ClipboardSink
)

// sinks 每次会话按当时的配置生成保存目标，剪贴板全局共用一个
func sinks(s config.Settings) session.Sinks {
	clipOnce.Do(func() { clipSink = &export.ClipboardSink{} })
	return session.Sinks{
		File: &export.FileSink{
			Directory: s.SaveDirectory,
			Format:    s.ImageFormat,
			Pattern:   s.FilenamePattern,
			Quality:   s.JPEGQuality,
		},
		Clipboard: clipSink,
	}
}

// newLoop 组装事件循环，host 为 nil 时只能处理全屏截图
func newLoop(host app.Host, onToggle func(string, bool)) *app.Loop {
	return app.New(app.Deps{
		Capturer: capture.NewCompositor(capture.NewScreenshotSource(), capture.NewCursorLocator()),
		Settings: settings,
		Host:     host,
		Notifier: notify.NewNotifier(app.AppName),
		Sinks:    sinks,
		OnToggle: onToggle,
	})
}

// openSaveDir 用系统文件管理器打开保存目录
func openSaveDir() {
	dir := settings.Snapshot().SaveDirectory

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("explorer.exe", dir)
	case "darwin":
		cmd = exec.Command("open", dir)
	default:
		cmd = exec.Command("xdg-open", dir)
	}

	if err := cmd.Start(); err != nil {
		logger.WithComponent("main").Error().Err(err).Str("dir", dir).Msg("open save directory failed")
		return
	}
	go cmd.Wait()
}
