package toolbar

import "image"

// Placement 工具栏位置。用户拖动过之后本次会话内不再自动定位
type Placement struct {
	pos    image.Point
	moved  bool
	placed bool
}

// Position 当前位置（左上角）
func (p *Placement) Position() image.Point {
	return p.pos
}

// Placed 是否已经计算过位置
func (p *Placement) Placed() bool {
	return p.placed
}

// ManuallyMoved 用户是否拖动过工具栏
func (p *Placement) ManuallyMoved() bool {
	return p.moved
}

// MoveTo 用户拖动工具栏到 pos，之后停止自动定位
func (p *Placement) MoveTo(pos image.Point) {
	p.pos = pos
	p.moved = true
	p.placed = true
}

// Compute 根据选区计算工具栏位置：水平居中在选区下方 Gap 处，
// 左右限制在选区中心所在的显示器内；下方放不下时翻到选区上方，最后再做一次垂直限制。
// 手动拖动过时保持原位置不变
func (p *Placement) Compute(sel image.Rectangle, monitors []image.Rectangle, size image.Point) image.Point {
	if p.moved {
		return p.pos
	}

	mon := monitorFor(sel, monitors)

	x := sel.Min.X + (sel.Dx()-size.X)/2
	y := sel.Max.Y + Gap

	if x+size.X > mon.Max.X {
		x = mon.Max.X - size.X
	}
	if x < mon.Min.X {
		x = mon.Min.X
	}

	if y+size.Y > mon.Max.Y {
		y = sel.Min.Y - Gap - size.Y
	}
	if y+size.Y > mon.Max.Y {
		y = mon.Max.Y - size.Y
	}
	if y < mon.Min.Y {
		y = mon.Min.Y
	}

	p.pos = image.Pt(x, y)
	p.placed = true
	return p.pos
}

// monitorFor 选区中心所在的显示器；中心不在任何显示器上时使用所有显示器的并集
func monitorFor(sel image.Rectangle, monitors []image.Rectangle) image.Rectangle {
	center := image.Pt((sel.Min.X+sel.Max.X)/2, (sel.Min.Y+sel.Max.Y)/2)
	var union image.Rectangle
	for _, m := range monitors {
		if center.In(m) {
			return m
		}
		union = union.Union(m)
	}
	if union.Empty() {
		return sel
	}
	return union
}
