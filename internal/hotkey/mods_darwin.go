//go:build darwin

package hotkey

import (
	"golang.design/x/hotkey"

	"pixelcatchr/internal/config"
)

func modifiers(c config.Combo) ([]hotkey.Modifier, error) {
	var mods []hotkey.Modifier
	if c.Ctrl {
		mods = append(mods, hotkey.ModCtrl)
	}
	if c.Alt {
		mods = append(mods, hotkey.ModOption)
	}
	if c.Shift {
		mods = append(mods, hotkey.ModShift)
	}
	if c.Super {
		mods = append(mods, hotkey.ModCmd)
	}
	return mods, nil
}
