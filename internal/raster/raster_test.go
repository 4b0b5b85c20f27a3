package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

func solid(r image.Rectangle, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestBlendRespectsBoundsOrigin(t *testing.T) {
	img := solid(image.Rect(100, 50, 110, 60), white)

	Blend(img, 100, 50, red)
	Blend(img, 0, 0, red) // 越界，忽略

	assert.Equal(t, red, img.RGBAAt(100, 50))
	assert.Equal(t, white, img.RGBAAt(101, 50))
}

func TestBlendHalfAlpha(t *testing.T) {
	img := solid(image.Rect(0, 0, 1, 1), color.RGBA{0, 0, 0, 255})
	Blend(img, 0, 0, color.RGBA{255, 255, 255, 128})

	got := img.RGBAAt(0, 0)
	assert.InDelta(t, 128, int(got.R), 1)
	assert.Equal(t, uint8(255), got.A)
}

func TestLineCoversEndpoints(t *testing.T) {
	img := solid(image.Rect(0, 0, 40, 40), white)
	Line(img, image.Pt(5, 5), image.Pt(30, 5), red, 3)

	assert.Equal(t, red, img.RGBAAt(5, 5))
	assert.Equal(t, red, img.RGBAAt(30, 5))
	assert.Equal(t, red, img.RGBAAt(17, 6))
	assert.Equal(t, white, img.RGBAAt(17, 10))
}

func TestPolylineTranslucentBlendsOnce(t *testing.T) {
	img := solid(image.Rect(0, 0, 60, 60), white)
	yellow := color.RGBA{255, 255, 0, 80}

	// 来回重叠的笔画
	Polyline(img, []image.Point{{10, 30}, {50, 30}, {10, 30}, {50, 30}}, yellow, 24)

	single := solid(image.Rect(0, 0, 1, 1), white)
	Blend(single, 0, 0, yellow)

	assert.Equal(t, single.RGBAAt(0, 0), img.RGBAAt(30, 30))
}

func TestFillPolygonSquare(t *testing.T) {
	img := solid(image.Rect(0, 0, 20, 20), white)
	FillPolygon(img, []image.Point{{2, 2}, {12, 2}, {12, 12}, {2, 12}}, red)

	assert.Equal(t, red, img.RGBAAt(7, 7))
	assert.Equal(t, white, img.RGBAAt(15, 15))
}

func TestDashedRectLeavesGaps(t *testing.T) {
	img := solid(image.Rect(0, 0, 40, 10), color.RGBA{0, 0, 0, 255})
	DashedRect(img, image.Rect(0, 0, 40, 10), white, 4, 4)

	assert.Equal(t, white, img.RGBAAt(0, 0))
	assert.Equal(t, white, img.RGBAAt(3, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(5, 0))
}

func TestMeasureText(t *testing.T) {
	size := MeasureText("Hi")
	assert.Equal(t, 14, size.X)
	assert.Equal(t, LineHeight(), size.Y)

	multi := MeasureText("a\nbbb")
	assert.Equal(t, 21, multi.X)
	assert.Equal(t, 2*LineHeight(), multi.Y)
}

func TestLabelDrawsChip(t *testing.T) {
	img := solid(image.Rect(0, 0, 100, 40), white)
	chip := Label(img, image.Pt(10, 10), "12", white, color.RGBA{0, 0, 0, 255}, 4)

	require.True(t, chip.In(img.Bounds()))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(chip.Min.X, chip.Min.Y))
}
