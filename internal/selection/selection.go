// Package selection 实现截图选区的状态机：拖拽新建、八方向手柄缩放、整体移动、重新框选和双击选中整块显示器。
//
// 所有坐标都是桌面本地坐标。选区一旦确认，宽高都必须大于 MinSize，
// 不满足的拖拽会被丢弃并回到未选中状态。
package selection

import "image"

const (
	// MinSize 确认选区所需的最小边长（严格大于）
	MinSize = 10
	// HandleSize 手柄命中区域边长
	HandleSize = 16
)

// Mode 当前交互模式
type Mode int

const (
	Idle Mode = iota
	DraggingNew
	Resizing
	Moving
	Drawing
)

func (m Mode) String() string {
	switch m {
	case DraggingNew:
		return "dragging-new"
	case Resizing:
		return "resizing"
	case Moving:
		return "moving"
	case Drawing:
		return "drawing"
	}
	return "idle"
}

// Handle 选区命中位置
type Handle int

const (
	None Handle = iota
	TopLeft
	Top
	TopRight
	Right
	BottomRight
	Bottom
	BottomLeft
	Left
	Inside
)

var handleNames = [...]string{"none", "top-left", "top", "top-right", "right", "bottom-right", "bottom", "bottom-left", "left", "inside"}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return "unknown"
	}
	return handleNames[h]
}

// Action Press 的结果，告诉调用方需要做的附加处理
type Action int

const (
	// Ignored 按下没有引起状态变化
	Ignored Action = iota
	// BeganSelection 开始拖拽新选区
	BeganSelection
	// Reselected 在已有选区外按下，重新开始框选，调用方应清空标注
	Reselected
	// BeganDrawing 有工具激活，开始绘制标注
	BeganDrawing
	// BeganMove 开始移动选区
	BeganMove
	// BeganResize 开始拖拽手柄缩放
	BeganResize
)

// Machine 选区状态机
type Machine struct {
	rect      image.Rectangle
	committed bool

	mode   Mode
	handle Handle
	hover  Handle

	anchor    image.Point     // 新建选区的起点 / 移动缩放的按下点
	startRect image.Rectangle // 移动缩放开始时的选区

	bounds image.Rectangle // 移动选区时的限制范围，空表示不限制
}

// New 创建空状态机
func New() *Machine {
	return &Machine{}
}

// SetBounds 设置移动选区的限制范围（通常是整个虚拟桌面）
func (m *Machine) SetBounds(r image.Rectangle) {
	m.bounds = r.Canon()
}

// Rect 当前选区（拖拽中的临时选区或已确认的选区），未选中时为空矩形
func (m *Machine) Rect() image.Rectangle {
	return m.rect
}

// Committed 是否已有确认的选区
func (m *Machine) Committed() bool {
	return m.committed && !m.rect.Empty()
}

// Mode 当前交互模式
func (m *Machine) Mode() Mode {
	return m.mode
}

// ActiveHandle 缩放中使用的手柄
func (m *Machine) ActiveHandle() Handle {
	return m.handle
}

// Hovered 最近一次悬停命中的位置，用于选择鼠标指针样式
func (m *Machine) Hovered() Handle {
	return m.hover
}

// Press 处理鼠标左键按下。toolActive 表示当前是否选中了标注工具
func (m *Machine) Press(p image.Point, toolActive bool) Action {
	if !m.Committed() {
		m.beginNew(p)
		return BeganSelection
	}

	if toolActive {
		m.mode = Drawing
		return BeganDrawing
	}

	h := HitTest(m.rect, p)
	switch h {
	case None:
		m.beginNew(p)
		return Reselected
	case Inside:
		m.mode = Moving
	default:
		m.mode = Resizing
	}
	m.handle = h
	m.anchor = p
	m.startRect = m.rect
	if m.mode == Moving {
		return BeganMove
	}
	return BeganResize
}

func (m *Machine) beginNew(p image.Point) {
	m.committed = false
	m.mode = DraggingNew
	m.handle = None
	m.anchor = p
	m.rect = image.Rectangle{}
}

// Move 处理鼠标移动（按住左键时），返回选区是否变化
func (m *Machine) Move(p image.Point) bool {
	prev := m.rect
	switch m.mode {
	case DraggingNew:
		m.rect = image.Rectangle{Min: m.anchor, Max: p}.Canon()
	case Moving:
		m.rect = clampInto(m.startRect.Add(p.Sub(m.anchor)), m.bounds)
	case Resizing:
		r := ApplyResize(m.startRect, m.handle, p.Sub(m.anchor))
		// 小于最小尺寸的结果不接受，保持上一次的有效结果
		if r.Dx() > MinSize && r.Dy() > MinSize {
			m.rect = r
		}
	}
	return m.rect != prev
}

// Hover 处理未按键时的鼠标移动，只更新指针样式对应的命中位置
func (m *Machine) Hover(p image.Point, toolActive bool) Handle {
	m.hover = None
	if m.mode == Idle && m.Committed() && !toolActive {
		m.hover = HitTest(m.rect, p)
	}
	return m.hover
}

// Release 处理鼠标左键抬起，返回释放后是否存在确认的选区
func (m *Machine) Release(p image.Point) bool {
	switch m.mode {
	case DraggingNew:
		m.Move(p)
		if m.rect.Dx() > MinSize && m.rect.Dy() > MinSize {
			m.committed = true
		} else {
			m.committed = false
			m.rect = image.Rectangle{}
		}
	case Moving, Resizing:
		m.Move(p)
	}
	m.mode = Idle
	m.handle = None
	return m.Committed()
}

// Select 直接确认一个选区（双击显示器、全屏截图），不做最小尺寸检查
func (m *Machine) Select(r image.Rectangle) {
	r = r.Canon()
	m.rect = r
	m.committed = !r.Empty()
	m.mode = Idle
	m.handle = None
}

// DoubleClick 选中 p 所在的整块显示器
func (m *Machine) DoubleClick(p image.Point, monitors []image.Rectangle) bool {
	for _, mon := range monitors {
		if p.In(mon) {
			m.Select(mon)
			return true
		}
	}
	return false
}

// clampInto 平移 r 使其留在 bounds 内，r 比 bounds 大时对齐左上角
func clampInto(r, bounds image.Rectangle) image.Rectangle {
	if bounds.Empty() {
		return r
	}
	if r.Max.X > bounds.Max.X {
		r = r.Add(image.Pt(bounds.Max.X-r.Max.X, 0))
	}
	if r.Max.Y > bounds.Max.Y {
		r = r.Add(image.Pt(0, bounds.Max.Y-r.Max.Y))
	}
	if r.Min.X < bounds.Min.X {
		r = r.Add(image.Pt(bounds.Min.X-r.Min.X, 0))
	}
	if r.Min.Y < bounds.Min.Y {
		r = r.Add(image.Pt(0, bounds.Min.Y-r.Min.Y))
	}
	return r
}

// handleCenters 八个手柄的中心点，顺序与 Handle 常量一致（TopLeft 起顺时针）
func handleCenters(r image.Rectangle) [8]image.Point {
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	return [8]image.Point{
		{r.Min.X, r.Min.Y},
		{cx, r.Min.Y},
		{r.Max.X, r.Min.Y},
		{r.Max.X, cy},
		{r.Max.X, r.Max.Y},
		{cx, r.Max.Y},
		{r.Min.X, r.Max.Y},
		{r.Min.X, cy},
	}
}

// HandleRects 八个手柄的命中区域
func HandleRects(r image.Rectangle) [8]image.Rectangle {
	var out [8]image.Rectangle
	half := HandleSize / 2
	for i, c := range handleCenters(r) {
		out[i] = image.Rect(c.X-half, c.Y-half, c.X+half, c.Y+half)
	}
	return out
}

// HitTest 检测点落在哪个手柄上，都不命中时判断是否在选区内部
func HitTest(r image.Rectangle, p image.Point) Handle {
	if r.Empty() {
		return None
	}
	for i, hr := range HandleRects(r) {
		if p.In(hr) {
			return Handle(i + 1)
		}
	}
	if p.In(r) {
		return Inside
	}
	return None
}

// ApplyResize 根据手柄和拖拽位移计算新的选区并规范化
func ApplyResize(orig image.Rectangle, h Handle, d image.Point) image.Rectangle {
	r := orig
	switch h {
	case TopLeft:
		r.Min = r.Min.Add(d)
	case Top:
		r.Min.Y += d.Y
	case TopRight:
		r.Max.X += d.X
		r.Min.Y += d.Y
	case Right:
		r.Max.X += d.X
	case BottomRight:
		r.Max = r.Max.Add(d)
	case Bottom:
		r.Max.Y += d.Y
	case BottomLeft:
		r.Min.X += d.X
		r.Max.Y += d.Y
	case Left:
		r.Min.X += d.X
	case Inside:
		r = r.Add(d)
	}
	return r.Canon()
}
