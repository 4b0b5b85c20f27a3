//go:build windows

package main

import "golang.org/x/sys/windows"

// DPI 感知必须在任何窗口和截图调用之前设置，否则高分屏上的坐标会被缩放
func init() {
	user32 := windows.NewLazySystemDLL("user32.dll")

	// Windows 10 1703+：PER_MONITOR_AWARE_V2 = -4，失败再试 PER_MONITOR_AWARE = -3
	setCtx := user32.NewProc("SetProcessDpiAwarenessContext")
	if setCtx.Find() == nil {
		for _, ctx := range []uintptr{^uintptr(3), ^uintptr(2)} {
			if r, _, _ := setCtx.Call(ctx); r != 0 {
				return
			}
		}
	}

	// Windows 8.1+
	shcore := windows.NewLazySystemDLL("shcore.dll")
	awareness := shcore.NewProc("SetProcessDpiAwareness")
	if awareness.Find() == nil {
		if r, _, _ := awareness.Call(2); r == 0 { // PROCESS_PER_MONITOR_DPI_AWARE
			return
		}
		awareness.Call(1)
		return
	}

	user32.NewProc("SetProcessDPIAware").Call()
}
