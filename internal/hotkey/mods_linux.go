//go:build linux

package hotkey

import (
	"golang.design/x/hotkey"

	"pixelcatchr/internal/config"
)

// X11 下 Alt 通常映射为 Mod1，Super 为 Mod4
func modifiers(c config.Combo) ([]hotkey.Modifier, error) {
	var mods []hotkey.Modifier
	if c.Ctrl {
		mods = append(mods, hotkey.ModCtrl)
	}
	if c.Alt {
		mods = append(mods, hotkey.Mod1)
	}
	if c.Shift {
		mods = append(mods, hotkey.ModShift)
	}
	if c.Super {
		mods = append(mods, hotkey.Mod4)
	}
	return mods, nil
}
