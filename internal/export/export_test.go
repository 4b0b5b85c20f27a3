package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"pixelcatchr/internal/annotate"
)

var fixedNow = time.Date(2024, 3, 5, 14, 7, 9, 0, time.Local)

func gradient(r image.Rectangle) *image.RGBA {
	img := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), uint8(x ^ y), 255})
		}
	}
	return img
}

func TestRenderWithoutExtrasIsExactCrop(t *testing.T) {
	base := gradient(image.Rect(0, 0, 200, 150))
	sel := image.Rect(30, 40, 130, 100)

	out, err := Render(base, sel, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 60), out.Bounds())
	for y := 0; y < 60; y++ {
		for x := 0; x < 100; x++ {
			require.Equal(t, base.RGBAAt(x+30, y+40), out.RGBAAt(x, y))
		}
	}
}

func TestRenderTranslatesAnnotations(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 200, 200))
	red := color.RGBA{255, 0, 0, 255}
	anns := []annotate.Annotation{
		annotate.Rect{Rect: image.Rect(60, 60, 90, 90), Color: red},
	}

	out, err := Render(base, image.Rect(50, 50, 150, 150), anns, Options{})
	require.NoError(t, err)
	// 桌面坐标 (60,75) 在裁剪后位于 (10,25)
	assert.Equal(t, red, out.RGBAAt(10, 25))
	assert.Equal(t, color.RGBA{}, out.RGBAAt(25, 25))
	// 底图不被修改
	assert.Equal(t, color.RGBA{}, base.RGBAAt(60, 75))
}

func TestRenderBurnsTimestamp(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 300, 200))
	for i := range base.Pix {
		base.Pix[i] = 200
	}
	out, err := Render(base, image.Rect(20, 20, 280, 180), nil, Options{ShowDatetime: true, Now: fixedNow})
	require.NoError(t, err)

	// 底块左上角在 (10-4, 20-13+4)
	black := color.RGBA{0, 0, 0, 255}
	assert.Equal(t, black, out.RGBAAt(6, 11))
	assert.Equal(t, black, out.RGBAAt(7, 23))

	white := 0
	for y := 11; y < 24; y++ {
		for x := 10; x < 10+19*7; x++ {
			if out.RGBAAt(x, y).R > 128 {
				white++
			}
		}
	}
	assert.Positive(t, white)
	assert.Equal(t, color.RGBA{200, 200, 200, 200}, out.RGBAAt(5, 11))
}

func TestRenderEmptySelection(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 10, 10))
	_, err := Render(base, image.Rectangle{}, nil, Options{})
	assert.ErrorIs(t, err, ErrNoSelection)
	_, err = Render(base, image.Rect(20, 20, 30, 30), nil, Options{})
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestDrawTimestampChip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 50))
	chip := DrawTimestamp(img, image.Pt(10, 20), fixedNow)
	assert.Equal(t, image.Rect(6, 11, 6+19*7+8, 24), chip)
}

func TestEncodeFormats(t *testing.T) {
	img := gradient(image.Rect(0, 0, 8, 8))
	for _, f := range []string{"PNG", "jpg", "JPEG", "bmp"} {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, img, f, 90), f)
		assert.Positive(t, buf.Len())
	}

	var buf bytes.Buffer
	assert.ErrorIs(t, Encode(&buf, img, "gif", 0), ErrUnsupportedFormat)
	_, err := Extension("tiff")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFileNameForcesExtension(t *testing.T) {
	tests := []struct {
		format, pattern, want string
	}{
		{"PNG", "%Y-%m-%d_%H-%M-%S", "2024-03-05_14-07-09.png"},
		{"JPG", "shot_%Y%m%d", "shot_20240305.jpg"},
		{"BMP", "cap.bmp", "cap.bmp"},
		{"PNG", "", "2024-03-05_14-07-09.png"},
		{"PNG", "%Y/%m", "2024-03-05_14-07-09.png"},
	}
	for _, tt := range tests {
		s := &FileSink{Format: tt.format, Pattern: tt.pattern}
		got, err := s.FileName(fixedNow)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.pattern)
	}
}

func TestFileSinkWritesDecodableImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := &FileSink{Directory: dir, Format: "PNG", Pattern: "cap", Now: func() time.Time { return fixedNow }}
	img := gradient(image.Rect(0, 0, 16, 9))

	path, err := s.Export(img)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cap.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	// 同名文件不覆盖
	second, err := s.Export(img)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cap_1.png"), second)
}

func TestFileSinkBMP(t *testing.T) {
	dir := t.TempDir()
	s := &FileSink{Directory: dir, Format: "BMP", Pattern: "x", Now: func() time.Time { return fixedNow }}
	path, err := s.Export(gradient(image.Rect(0, 0, 4, 4)))
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = bmp.Decode(f)
	assert.NoError(t, err)
}

func TestFileSinkUnsupportedFormat(t *testing.T) {
	s := &FileSink{Directory: t.TempDir(), Format: "webp"}
	_, err := s.Export(gradient(image.Rect(0, 0, 2, 2)))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
