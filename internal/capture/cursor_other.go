//go:build !linux && !windows

package capture

// NewCursorLocator 当前平台不支持查询指针，截图中不绘制鼠标
func NewCursorLocator() CursorLocator {
	return noCursor{}
}
