// Package logger 全局 zerolog 日志
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger 全局日志实例
var Logger zerolog.Logger

func init() {
	// 默认 info 级别输出到 stderr，Init 之后重新配置
	Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = Logger
}

// Options 日志配置
type Options struct {
	Level  string // debug, info, warn, error
	Pretty bool   // 控制台彩色输出
	File   string // 额外写入的日志文件，空表示不写文件
}

// ParseLevel 解析日志级别，无法识别时返回 info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init 按配置重建全局日志，返回需要在退出时关闭的文件（可能为 nil）
func Init(opts Options) (io.Closer, error) {
	zerolog.SetGlobalLevel(ParseLevel(opts.Level))

	var out io.Writer = os.Stderr
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	var closer io.Closer
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, err
		}
		out = zerolog.MultiLevelWriter(out, f)
		closer = f
	}

	Logger = zerolog.New(out).With().Timestamp().Caller().Logger()
	log.Logger = Logger
	return closer, nil
}

// WithComponent 返回带 component 字段的子日志
func WithComponent(component string) *zerolog.Logger {
	l := Logger.With().Str("component", component).Logger()
	return &l
}

// Nop 不输出任何内容的日志，测试用
func Nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
