//go:build linux

package capture

import (
	"fmt"
	"image"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// X11Cursor 通过 X11 QueryPointer 查询鼠标位置
type X11Cursor struct {
	mu   sync.Mutex
	conn *xgb.Conn
	root xproto.Window
}

// NewCursorLocator 连接 X server。连接失败时返回的定位器始终报告不可用
func NewCursorLocator() CursorLocator {
	c, err := NewX11Cursor()
	if err != nil {
		return noCursor{}
	}
	return c
}

// NewX11Cursor 创建 X11 指针定位器
func NewX11Cursor() (*X11Cursor, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	setup := xproto.Setup(conn)
	return &X11Cursor{
		conn: conn,
		root: setup.DefaultScreen(conn).Root,
	}, nil
}

// CursorPosition 实现 CursorLocator
func (c *X11Cursor) CursorPosition() (image.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reply, err := xproto.QueryPointer(c.conn, c.root).Reply()
	if err != nil || reply == nil {
		return image.Point{}, false
	}
	return image.Pt(int(reply.RootX), int(reply.RootY)), true
}

// Close 关闭 X 连接
func (c *X11Cursor) Close() {
	c.conn.Close()
}
