package tray

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestICOLayout(t *testing.T) {
	img := iconImage(iconSize)
	ico := encodeICO(img)

	// 6 字节文件头 + 16 字节目录项 + 40 字节位图头 + 像素 + 掩码
	require.Len(t, ico, 6+16+40+16*16*4+4*16)
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(ico[2:]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(ico[4:]))
	assert.Equal(t, byte(16), ico[6])
	assert.Equal(t, uint32(22), binary.LittleEndian.Uint32(ico[18:]))
	assert.Equal(t, int32(32), int32(binary.LittleEndian.Uint32(ico[22+8:])))

	// 第一行像素对应图片最底行，中心是不透明的蓝色圆
	first := 22 + 40
	bottom := img.RGBAAt(8, 15)
	assert.Equal(t, []byte{bottom.B, bottom.G, bottom.R, bottom.A}, ico[first+8*4:first+9*4])
}

func TestIconImage(t *testing.T) {
	img := iconImage(iconSize)
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).A, "corners are transparent")
	assert.Equal(t, uint8(255), img.RGBAAt(8, 8).A)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	assert.NotEmpty(t, getIcon())
}
