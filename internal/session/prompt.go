package session

import (
	"image"
	"image/color"
	"unicode"

	"pixelcatchr/internal/annotate"
)

// prompt 画布内的文本输入框。index >= 0 表示正在编辑已有文本
type prompt struct {
	pos   image.Point
	index int
	runes []rune
	color color.RGBA
}

func (p *prompt) text() string {
	return string(p.runes)
}

// openPrompt 在 p 处打开输入框；p 落在已有文本上时编辑那段文本
func (s *Session) openPrompt(p image.Point) {
	s.commitPrompt()

	if i, ok := s.model.HitTestText(p); ok {
		t, _ := s.model.TextAt(i)
		s.prompt = &prompt{pos: t.Pos, index: i, runes: []rune(t.Content), color: t.Color}
		return
	}
	s.prompt = &prompt{pos: p, index: -1, color: annotate.DefaultColors[s.colorIndex]}
}

// commitPrompt 提交输入的文本。空文本：新建时不产生标注，编辑时保留原文
func (s *Session) commitPrompt() {
	p := s.prompt
	if p == nil {
		return
	}
	s.prompt = nil

	content := p.text()
	if p.index >= 0 {
		if s.model.EditText(p.index, content) {
			s.log.Debug().Int("index", p.index).Msg("text edited")
		}
		return
	}
	if s.model.AddText(content, p.pos, p.color) {
		s.log.Debug().Stringer("pos", p.pos).Msg("text added")
	}
}

// promptKey 输入框获得焦点时处理按键
func (s *Session) promptKey(k Key) {
	p := s.prompt
	switch {
	case k.Name == "escape":
		s.prompt = nil
	case k.Name == "enter" && k.Shift:
		p.runes = append(p.runes, '\n')
	case k.Name == "enter":
		s.commitPrompt()
	case k.Name == "backspace":
		if n := len(p.runes); n > 0 {
			p.runes = p.runes[:n-1]
		}
	case k.Ctrl || k.Super:
		// 组合键不作为文字输入
	case k.Rune != 0 && unicode.IsPrint(k.Rune):
		p.runes = append(p.runes, k.Rune)
	}
}
