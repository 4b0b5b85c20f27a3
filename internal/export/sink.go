package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"pixelcatchr/internal/logger"
)

// FallbackPattern 文件名模板无效时使用
const FallbackPattern = "%Y-%m-%d_%H-%M-%S"

// Sink 导出目标，返回给用户看的目标描述（文件路径或 "clipboard"）
type Sink interface {
	Export(img image.Image) (string, error)
}

// FileSink 保存到目录
type FileSink struct {
	Directory string
	Format    string // PNG, JPG, BMP
	Pattern   string // strftime 文件名模板
	Quality   int
	Now       func() time.Time
}

// FileName 用当前时间格式化文件名并强制加上与格式一致的扩展名
func (s *FileSink) FileName(now time.Time) (string, error) {
	ext, err := Extension(s.Format)
	if err != nil {
		return "", err
	}

	name := formatName(s.Pattern, now)
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	return name, nil
}

// formatName 格式化模板，结果为空或包含路径分隔符等非法字符时退回默认模板
func formatName(pattern string, now time.Time) string {
	name := strings.TrimSpace(strftime.Format(pattern, now))
	if name == "" || strings.ContainsAny(name, `/\:*?"<>|`) {
		return strftime.Format(FallbackPattern, now)
	}
	return name
}

// Export 保存图片，返回文件路径
func (s *FileSink) Export(img image.Image) (string, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	name, err := s.FileName(now)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Directory, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", s.Directory, err)
	}

	path, file, err := createUnique(filepath.Join(s.Directory, name))
	if err != nil {
		return "", err
	}

	if err := Encode(file, img, s.Format, s.Quality); err != nil {
		file.Close()
		os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	logger.WithComponent("export").Info().Str("path", path).Str("format", s.Format).Msg("image saved")
	return path, nil
}

// createUnique 创建文件，同名文件已存在时追加 _1、_2 …
func createUnique(path string) (string, *os.File, error) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	candidate := path
	for i := 1; ; i++ {
		f, err := os.OpenFile(candidate, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			return candidate, f, nil
		}
		if !os.IsExist(err) || i > 1000 {
			return "", nil, fmt.Errorf("create %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
}
