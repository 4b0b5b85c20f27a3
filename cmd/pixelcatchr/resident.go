package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"

	"pixelcatchr/internal/app"
	"pixelcatchr/internal/config"
	"pixelcatchr/internal/hotkey"
	"pixelcatchr/internal/logger"
	"pixelcatchr/internal/overlay"
	"pixelcatchr/internal/tray"
)

// runResident 常驻托盘，注册全局热键。shiny 占用主线程，托盘在单独的 goroutine 中运行
func runResident(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("main")
	s := settings.Snapshot()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	driver.Main(func(scr screen.Screen) {
		var t *tray.Tray
		loop := newLoop(overlay.NewHost(scr), func(name string, v bool) {
			if name == "show_datetime" && t != nil {
				t.SetDatetime(v)
			}
		})

		hk := hotkey.NewManager()
		defer hk.UnregisterAll()
		bind := func(name, combo string, e app.Event) {
			c, err := config.ParseCombo(combo)
			if err == nil {
				err = hk.Register(name, c, func() { loop.Post(e) })
			}
			if err != nil {
				// 热键被占用时仍可以通过托盘菜单截图
				log.Error().Err(err).Str("hotkey", combo).Str("action", name).Msg("register hotkey failed")
			}
		}
		bind("capture", s.HotkeyCapture, app.StartZoneCapture())
		bind("full", s.HotkeyFull, app.StartFullCapture())
		bind("datetime", s.HotkeyDatetime, app.ToggleOption("show_datetime"))

		t = tray.New(tray.Actions{
			ZoneCapture:    func() { loop.Post(app.StartZoneCapture()) },
			FullCapture:    func() { loop.Post(app.StartFullCapture()) },
			ToggleDatetime: func() { loop.Post(app.ToggleOption("show_datetime")) },
			OpenFolder:     openSaveDir,
			Quit:           stop,
		}, tray.Labels{
			ZoneHotkey:     s.HotkeyCapture,
			FullHotkey:     s.HotkeyFull,
			DatetimeHotkey: s.HotkeyDatetime,
		}, s.ShowDatetime)
		go t.Run()
		defer t.Quit()

		log.Info().
			Str("config", settings.Path()).
			Str("save_dir", s.SaveDirectory).
			Interface("hotkeys", hk.Names()).
			Msg(app.AppName + " started")

		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			runErr = err
		}
	})
	return runErr
}
