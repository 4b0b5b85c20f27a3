package session

import (
	"image"

	"pixelcatchr/internal/annotate"
	"pixelcatchr/internal/config"
	"pixelcatchr/internal/selection"
	"pixelcatchr/internal/toolbar"
)

// Key 键盘事件。Name 使用与配置相同的小写键名（"a", "1", "escape", "enter", "backspace" …）
type Key struct {
	Name  string
	Rune  rune
	Ctrl  bool
	Alt   bool
	Shift bool
	Super bool
}

// Combo 转换为组合键，用于和配置中的快捷键比较
func (k Key) Combo() config.Combo {
	return config.Combo{Ctrl: k.Ctrl, Alt: k.Alt, Shift: k.Shift, Super: k.Super, Key: k.Name}
}

// Press 鼠标左键按下（桌面本地坐标）
func (s *Session) Press(p image.Point) {
	if s.Done() {
		return
	}
	s.cursor = p

	if s.paletteVisible() {
		origin := s.paletteOrigin()
		if btn, ok, inside := toolbar.HitTest(origin, p); inside {
			if ok {
				s.pressButton(btn, p, origin)
			}
			return
		}
	}

	if s.sel.Committed() && s.tool == annotate.ToolText {
		s.openPrompt(p)
		return
	}
	s.commitPrompt()

	switch s.sel.Press(p, s.tool != annotate.ToolNone) {
	case selection.Reselected:
		s.model.Clear()
		s.log.Debug().Msg("selection restarted, annotations cleared")
	case selection.BeganDrawing:
		s.model.Begin(s.tool, annotate.DefaultColors[s.colorIndex], p)
	}
	s.pressed = true
}

// Move 鼠标移动。按住左键时拖拽，否则只更新悬停状态
func (s *Session) Move(p image.Point) {
	if s.Done() {
		return
	}
	s.cursor = p

	if s.paletteDrag {
		s.palette.MoveTo(p.Sub(s.dragOffset))
		return
	}
	if !s.pressed {
		s.sel.Hover(p, s.tool != annotate.ToolNone)
		return
	}
	if s.sel.Mode() == selection.Drawing {
		s.model.Update(p)
		return
	}
	s.sel.Move(p)
}

// Release 鼠标左键抬起
func (s *Session) Release(p image.Point) {
	if s.Done() {
		return
	}
	s.cursor = p

	if s.paletteDrag {
		s.paletteDrag = false
		return
	}
	if !s.pressed {
		return
	}
	s.pressed = false

	if s.sel.Mode() == selection.Drawing {
		s.model.Update(p)
		if a, ok := s.model.Commit(); ok {
			s.log.Debug().Type("kind", a).Stringer("bounds", a.Bounds()).Msg("annotation committed")
		}
	}
	if s.sel.Release(p) {
		s.log.Debug().Stringer("selection", s.sel.Rect()).Msg("selection committed")
	}
}

// DoubleClick 双击选中光标下的整块显示器（仅在未选择工具时）。
// 返回 false 表示双击不适用，调用方应把这次按下当作普通的 Press
func (s *Session) DoubleClick(p image.Point) bool {
	if s.Done() || s.tool != annotate.ToolNone || s.prompt != nil {
		return false
	}
	if s.paletteVisible() {
		if _, _, inside := toolbar.HitTest(s.paletteOrigin(), p); inside {
			return false
		}
	}

	prev := s.sel.Rect()
	if !s.sel.DoubleClick(p, s.desk.Monitors) {
		return false
	}
	s.pressed = false
	if s.sel.Rect() != prev {
		s.model.Clear()
		s.log.Debug().Stringer("monitor", s.sel.Rect()).Msg("monitor selected")
	}
	return true
}

// Key 键盘输入
func (s *Session) Key(k Key) {
	if s.Done() {
		return
	}
	if s.prompt != nil {
		s.promptKey(k)
		return
	}

	switch {
	case k.Name == "escape":
		s.Cancel()
	case k.Ctrl && !k.Alt && !k.Shift && k.Name == "z":
		s.Undo()
	case s.copyKey.Matches(k.Combo()):
		_ = s.Copy(false)
	}
}

func (s *Session) pressButton(b toolbar.Button, p, origin image.Point) {
	switch b.Kind {
	case toolbar.KindGrip:
		s.paletteDrag = true
		s.dragOffset = p.Sub(origin)
	case toolbar.KindTool:
		if s.tool == b.Tool {
			s.SetTool(annotate.ToolNone)
		} else {
			s.SetTool(b.Tool)
		}
	case toolbar.KindColor:
		s.SetColor(b.ColorIndex)
	case toolbar.KindAction:
		switch b.Action {
		case toolbar.ActionUndo:
			s.Undo()
		case toolbar.ActionSave:
			_ = s.Save()
		case toolbar.ActionCopy:
			_ = s.Copy(true)
		case toolbar.ActionClose:
			s.Cancel()
		}
	}
}

// paletteVisible 选区确认后且不在拖拽新选区时显示工具栏
func (s *Session) paletteVisible() bool {
	return s.sel.Committed() && s.sel.Mode() != selection.DraggingNew
}

// paletteOrigin 工具栏左上角，用户拖动过时保持不动
func (s *Session) paletteOrigin() image.Point {
	return s.palette.Compute(s.sel.Rect(), s.desk.Monitors, toolbar.Size())
}
