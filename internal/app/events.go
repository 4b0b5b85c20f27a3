package app

// Kind 事件类型
type Kind int

const (
	KindZoneCapture Kind = iota
	KindFullCapture
	KindToggle
)

func (k Kind) String() string {
	switch k {
	case KindZoneCapture:
		return "zone-capture"
	case KindFullCapture:
		return "full-capture"
	case KindToggle:
		return "toggle"
	}
	return "unknown"
}

// Event 由热键、托盘等外部来源投递给事件循环
type Event struct {
	Kind   Kind
	Option string // KindToggle 时的选项名
}

// StartZoneCapture 框选截图
func StartZoneCapture() Event { return Event{Kind: KindZoneCapture} }

// StartFullCapture 全屏截图并直接保存
func StartFullCapture() Event { return Event{Kind: KindFullCapture} }

// ToggleOption 翻转布尔配置项
func ToggleOption(name string) Event { return Event{Kind: KindToggle, Option: name} }

func (e Event) isCapture() bool {
	return e.Kind == KindZoneCapture || e.Kind == KindFullCapture
}
