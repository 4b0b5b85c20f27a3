package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"runtime"

	"pixelcatchr/internal/raster"
)

const iconSize = 16

// getIcon Windows 托盘要求 ICO，其他平台使用 PNG
func getIcon() []byte {
	img := iconImage(iconSize)
	if runtime.GOOS == "windows" {
		return encodeICO(img)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// iconImage 蓝色圆底上的白色选区框和十字准星
func iconImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	raster.Disc(img, c, c, c, color.RGBA{0x0A, 0x84, 0xFF, 0xFF})

	white := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	q := size / 4
	raster.DashedRect(img, image.Rect(q, q, size-q, size-q), white, 2, 1)
	mid := size / 2
	raster.FillRect(img, image.Rect(mid-1, mid-1, mid+1, mid+1), white)
	return img
}

// encodeICO 单张 32 位图片的 ICO 文件：文件头、目录项、BITMAPINFOHEADER、
// 自下而上的 BGRA 像素和全零的 AND 掩码
func encodeICO(img *image.RGBA) []byte {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	maskRow := ((w + 31) / 32) * 4
	pixelBytes := w * h * 4
	dataSize := 40 + pixelBytes + maskRow*h

	var buf bytes.Buffer
	le := binary.LittleEndian

	// ICONDIR
	binary.Write(&buf, le, [3]uint16{0, 1, 1})
	// ICONDIRENTRY
	buf.Write([]byte{byte(w), byte(h), 0, 0})
	binary.Write(&buf, le, [2]uint16{1, 32})
	binary.Write(&buf, le, [2]uint32{uint32(dataSize), 6 + 16})
	// BITMAPINFOHEADER，高度包含 XOR 和 AND 两部分
	binary.Write(&buf, le, struct {
		Size          uint32
		Width, Height int32
		Planes, Bits  uint16
		Compression   uint32
		ImageSize     uint32
		XPPM, YPPM    int32
		Used, Import  uint32
	}{40, int32(w), int32(h * 2), 1, 32, 0, uint32(pixelBytes), 0, 0, 0, 0})

	for y := h - 1; y >= 0; y-- {
		for x := 0; x < w; x++ {
			c := img.RGBAAt(x, y)
			buf.Write([]byte{c.B, c.G, c.R, c.A})
		}
	}
	buf.Write(make([]byte, maskRow*h))
	return buf.Bytes()
}
