package export

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat 不支持的图片格式
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Extension 返回格式对应的扩展名（带点）
func Extension(format string) (string, error) {
	switch strings.ToUpper(format) {
	case "PNG":
		return ".png", nil
	case "JPG", "JPEG":
		return ".jpg", nil
	case "BMP":
		return ".bmp", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Encode 按格式编码图片。quality 只对 JPG 有效
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	var err error
	switch strings.ToUpper(format) {
	case "PNG":
		err = png.Encode(w, img)
	case "JPG", "JPEG":
		if quality < 1 || quality > 100 {
			quality = jpeg.DefaultQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case "BMP":
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", strings.ToLower(format), err)
	}
	return nil
}
