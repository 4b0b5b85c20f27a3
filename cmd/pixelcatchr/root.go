package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"pixelcatchr/internal/config"
	"pixelcatchr/internal/logger"
)

// Version 发布时通过 -ldflags 覆盖
var Version = "dev"

var (
	configFile string
	logLevel   string
	logPretty  bool
	logFile    string

	settings  *config.Manager
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "pixelcatchr",
	Short: "Region screenshot tool with annotation",
	Long: `PixelCatchr stays in the system tray and listens for global hotkeys.

Press the capture hotkey to freeze the desktop, drag a region, annotate it
with pen, highlighter, arrows, rectangles, text and blur, then save it to
disk or copy it to the clipboard.`,
	Example: `  # Run in the tray with hotkeys
  pixelcatchr

  # Capture the whole desktop once and exit
  pixelcatchr full

  # Toggle the timestamp stamp
  pixelcatchr config toggle show_datetime`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
	RunE:              runResident,
}

func init() {
	defaultPath, _ := config.DefaultPath()
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default "+defaultPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "pretty", false, "human readable console logs")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file")
}

// setup 加载配置并初始化日志，所有子命令共用
func setup(cmd *cobra.Command, args []string) error {
	mgr, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	settings = mgr

	level := logLevel
	if level == "" {
		level = mgr.Snapshot().LogLevel
	}
	if logFile != "" {
		logFile, _ = filepath.Abs(logFile)
	}
	logCloser, err = logger.Init(logger.Options{Level: level, Pretty: logPretty, File: logFile})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if logCloser != nil {
		logCloser.Close()
	}
}
