package overlay

import (
	"fmt"
	"image"
	"time"

	"golang.org/x/mobile/event/key"

	"pixelcatchr/internal/session"
)

// 双击判定
const (
	DoubleClickInterval = 400 * time.Millisecond
	DoubleClickDistance = 4
)

// clickTracker 根据两次按下的时间和距离识别双击
type clickTracker struct {
	last  time.Time
	at    image.Point
	armed bool
}

// press 记录一次按下，返回是否构成双击。双击后重新计数，第三次按下不算双击
func (c *clickTracker) press(p image.Point, now time.Time) bool {
	d := p.Sub(c.at)
	double := c.armed &&
		now.Sub(c.last) <= DoubleClickInterval &&
		abs(d.X) <= DoubleClickDistance && abs(d.Y) <= DoubleClickDistance

	c.last, c.at = now, p
	c.armed = !double
	return double
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var namedCodes = map[key.Code]string{
	key.CodeEscape:          "escape",
	key.CodeReturnEnter:     "enter",
	key.CodeKeypadEnter:     "enter",
	key.CodeDeleteBackspace: "backspace",
	key.CodeDeleteForward:   "delete",
	key.CodeTab:             "tab",
	key.CodeSpacebar:        "space",
	key.CodeLeftArrow:       "left",
	key.CodeRightArrow:      "right",
	key.CodeUpArrow:         "up",
	key.CodeDownArrow:       "down",
}

// keyName 把 shiny 键码转换为与配置相同的小写键名
func keyName(c key.Code) string {
	switch {
	case c >= key.CodeA && c <= key.CodeZ:
		return string(rune('a' + int(c-key.CodeA)))
	case c >= key.Code1 && c <= key.Code9:
		return string(rune('1' + int(c-key.Code1)))
	case c == key.Code0:
		return "0"
	case c >= key.CodeF1 && c <= key.CodeF12:
		return fmt.Sprintf("f%d", int(c-key.CodeF1)+1)
	}
	return namedCodes[c]
}

// toKey 转换键盘事件，ok=false 表示应忽略（松开、无法识别）
func toKey(e key.Event) (session.Key, bool) {
	if e.Direction == key.DirRelease {
		return session.Key{}, false
	}
	k := session.Key{
		Name:  keyName(e.Code),
		Ctrl:  e.Modifiers&key.ModControl != 0,
		Alt:   e.Modifiers&key.ModAlt != 0,
		Shift: e.Modifiers&key.ModShift != 0,
		Super: e.Modifiers&key.ModMeta != 0,
	}
	if e.Rune > 0 {
		k.Rune = e.Rune
	}
	if k.Name == "" && k.Rune == 0 {
		return session.Key{}, false
	}
	return k, true
}
