package annotate

import (
	"image"
	"image/color"
)

// MeasureFunc 测量文字块宽高
type MeasureFunc func(s string) image.Point

// Model 有序标注列表。插入顺序即绘制顺序，也是撤销顺序
type Model struct {
	items   []Annotation
	current Annotation // 正在绘制的标注

	tool   Tool
	anchor image.Point

	base    *image.RGBA // 模糊取样使用的底图
	measure MeasureFunc
}

// NewModel 创建标注模型。base 为桌面底图，measure 为 nil 时使用界面字体测量
func NewModel(base *image.RGBA, measure MeasureFunc) *Model {
	if measure == nil {
		measure = defaultMeasure
	}
	return &Model{base: base, measure: measure}
}

// Begin 以 tool 在 p 处开始一笔标注。文本工具没有拖拽阶段，返回 false
func (m *Model) Begin(tool Tool, c color.RGBA, p image.Point) bool {
	m.tool = tool
	m.anchor = p
	switch tool {
	case ToolPen:
		m.current = Pen{Points: []image.Point{p}, Color: c}
	case ToolHighlighter:
		hc := c
		hc.A = HighlighterAlpha
		m.current = Highlighter{Points: []image.Point{p}, Color: hc}
	case ToolRect:
		m.current = Rect{Rect: image.Rectangle{Min: p, Max: p}, Color: c}
	case ToolArrow:
		m.current = Arrow{From: p, To: p, Color: c}
	case ToolBlur:
		m.current = BlurPreview{Rect: image.Rectangle{Min: p, Max: p}}
	default:
		m.current = nil
		return false
	}
	return true
}

// Update 用当前鼠标位置更新进行中的标注
func (m *Model) Update(p image.Point) {
	switch a := m.current.(type) {
	case Pen:
		a.Points = append(a.Points, p)
		m.current = a
	case Highlighter:
		a.Points = append(a.Points, p)
		m.current = a
	case Rect:
		a.Rect = image.Rectangle{Min: m.anchor, Max: p}.Canon()
		m.current = a
	case Arrow:
		a.To = p
		m.current = a
	case BlurPreview:
		a.Rect = image.Rectangle{Min: m.anchor, Max: p}.Canon()
		m.current = a
	}
}

// Commit 结束进行中的标注并加入列表。面积为零的矩形/模糊和长度为零的箭头会被丢弃
func (m *Model) Commit() (Annotation, bool) {
	cur := m.current
	m.current = nil
	if cur == nil {
		return nil, false
	}

	switch a := cur.(type) {
	case Rect:
		if a.Rect.Empty() {
			return nil, false
		}
	case Arrow:
		if a.From == a.To {
			return nil, false
		}
	case BlurPreview:
		img, ok := Bake(m.base, a.Rect)
		if !ok {
			return nil, false
		}
		cur = img
	}

	m.items = append(m.items, cur)
	return cur, true
}

// Cancel 放弃进行中的标注
func (m *Model) Cancel() {
	m.current = nil
}

// Current 正在绘制的标注，没有时返回 nil
func (m *Model) Current() Annotation {
	return m.current
}

// Drawing 是否有进行中的标注
func (m *Model) Drawing() bool {
	return m.current != nil
}

// Undo 移除最后加入的标注，返回是否成功
func (m *Model) Undo() bool {
	if len(m.items) == 0 {
		return false
	}
	m.items[len(m.items)-1] = nil
	m.items = m.items[:len(m.items)-1]
	return true
}

// CanUndo 是否可以撤销
func (m *Model) CanUndo() bool {
	return len(m.items) > 0
}

// Annotations 返回当前所有标注的副本
func (m *Model) Annotations() []Annotation {
	out := make([]Annotation, len(m.items))
	copy(out, m.items)
	return out
}

// Len 已提交的标注数量
func (m *Model) Len() int {
	return len(m.items)
}

// Clear 清空所有标注
func (m *Model) Clear() {
	m.items = nil
	m.current = nil
}

// AddText 在 pos 处加入文本标注，空文本不产生标注
func (m *Model) AddText(content string, pos image.Point, c color.RGBA) bool {
	if content == "" {
		return false
	}
	m.items = append(m.items, Text{Content: content, Pos: pos, Color: c})
	return true
}

// HitTestText 返回 p 下最上层文本标注的下标
func (m *Model) HitTestText(p image.Point) (int, bool) {
	for i := len(m.items) - 1; i >= 0; i-- {
		t, ok := m.items[i].(Text)
		if !ok {
			continue
		}
		if p.In(textBox(t, m.measure)) {
			return i, true
		}
	}
	return -1, false
}

// TextAt 返回下标 i 处的文本标注
func (m *Model) TextAt(i int) (Text, bool) {
	if i < 0 || i >= len(m.items) {
		return Text{}, false
	}
	t, ok := m.items[i].(Text)
	return t, ok
}

// EditText 替换下标 i 处文本标注的内容，空内容保持原文不变
func (m *Model) EditText(i int, content string) bool {
	t, ok := m.TextAt(i)
	if !ok || content == "" {
		return false
	}
	t.Content = content
	m.items[i] = t
	return true
}

// textBox 文本标注的命中范围：文字大小四周各留 TextPadding
func textBox(t Text, measure MeasureFunc) image.Rectangle {
	size := measure(t.Content)
	r := image.Rectangle{Min: t.Pos, Max: t.Pos.Add(size)}
	return r.Inset(-TextPadding)
}
