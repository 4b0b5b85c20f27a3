//go:build windows

package capture

import (
	"image"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos = user32.NewProc("GetCursorPos")
)

type point struct {
	X, Y int32
}

// win32Cursor 通过 GetCursorPos 查询鼠标位置（虚拟屏幕坐标）
type win32Cursor struct{}

// NewCursorLocator 创建当前平台的指针定位器
func NewCursorLocator() CursorLocator {
	return win32Cursor{}
}

// CursorPosition 实现 CursorLocator
func (win32Cursor) CursorPosition() (image.Point, bool) {
	var pt point
	r, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if r == 0 {
		return image.Point{}, false
	}
	return image.Pt(int(pt.X), int(pt.Y)), true
}
