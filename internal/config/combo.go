package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCombo 快捷键字符串无法解析
var ErrInvalidCombo = errors.New("invalid key combination")

// Combo 组合键，Key 为小写的主键名（a-z, 0-9, f1-f20, space 等）
type Combo struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Super bool
	Key   string
}

var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"option":  "alt",
	"shift":   "shift",
	"super":   "super",
	"win":     "super",
	"cmd":     "super",
	"command": "super",
	"meta":    "super",
}

var namedKeys = map[string]string{
	"space":  "space",
	"enter":  "enter",
	"return": "enter",
	"escape": "escape",
	"esc":    "escape",
	"tab":    "tab",
	"delete": "delete",
	"del":    "delete",
	"left":   "left",
	"right":  "right",
	"up":     "up",
	"down":   "down",
}

// ParseCombo 解析 "ctrl+shift+a" 形式的组合键，大小写不敏感
func ParseCombo(s string) (Combo, error) {
	var c Combo
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	for _, raw := range parts {
		part := strings.TrimSpace(raw)
		if part == "" {
			return Combo{}, fmt.Errorf("%w: %q", ErrInvalidCombo, s)
		}
		if mod, ok := modifierAliases[part]; ok {
			switch mod {
			case "ctrl":
				c.Ctrl = true
			case "alt":
				c.Alt = true
			case "shift":
				c.Shift = true
			case "super":
				c.Super = true
			}
			continue
		}
		if c.Key != "" {
			return Combo{}, fmt.Errorf("%w: %q has more than one key", ErrInvalidCombo, s)
		}
		key, ok := normalizeKey(part)
		if !ok {
			return Combo{}, fmt.Errorf("%w: unknown key %q", ErrInvalidCombo, part)
		}
		c.Key = key
	}
	if c.Key == "" {
		return Combo{}, fmt.Errorf("%w: %q has no key", ErrInvalidCombo, s)
	}
	return c, nil
}

func normalizeKey(k string) (string, bool) {
	if len(k) == 1 && (k[0] >= 'a' && k[0] <= 'z' || k[0] >= '0' && k[0] <= '9') {
		return k, true
	}
	if named, ok := namedKeys[k]; ok {
		return named, true
	}
	if strings.HasPrefix(k, "f") {
		var n int
		if _, err := fmt.Sscanf(k, "f%d", &n); err == nil && n >= 1 && n <= 20 && fmt.Sprintf("f%d", n) == k {
			return k, true
		}
	}
	return "", false
}

// String 规范形式，修饰键顺序固定为 ctrl+alt+shift+super
func (c Combo) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	if c.Super {
		parts = append(parts, "super")
	}
	return strings.Join(append(parts, c.Key), "+")
}

// Matches 判断按键事件是否与组合键完全一致（修饰键不能多也不能少）
func (c Combo) Matches(other Combo) bool {
	return c == other
}
