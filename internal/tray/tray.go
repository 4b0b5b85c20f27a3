// Package tray 系统托盘菜单
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"pixelcatchr/internal/logger"
)

// Actions 菜单项回调，未设置的项不会显示
type Actions struct {
	ZoneCapture    func()
	FullCapture    func()
	ToggleDatetime func()
	OpenFolder     func()
	Quit           func()
}

// Labels 菜单中显示的快捷键
type Labels struct {
	ZoneHotkey     string
	FullHotkey     string
	DatetimeHotkey string
}

// Tray 系统托盘
type Tray struct {
	actions  Actions
	labels   Labels

	mu       sync.Mutex
	datetime bool

	mDatetime *systray.MenuItem
	ready     chan struct{}
}

// New 创建系统托盘。datetime 为时间戳选项的初始状态
func New(actions Actions, labels Labels, datetime bool) *Tray {
	return &Tray{
		actions:  actions,
		labels:   labels,
		datetime: datetime,
		ready:    make(chan struct{}),
	}
}

// Run 运行系统托盘（阻塞直到 Quit）
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit 关闭托盘
func (t *Tray) Quit() {
	systray.Quit()
}

// SetDatetime 同步时间戳选项的勾选状态，可在任意 goroutine 调用
func (t *Tray) SetDatetime(on bool) {
	t.mu.Lock()
	t.datetime = on
	t.mu.Unlock()

	select {
	case <-t.ready:
	default:
		return
	}
	if on {
		t.mDatetime.Check()
	} else {
		t.mDatetime.Uncheck()
	}
}

func (t *Tray) onReady() {
	systray.SetIcon(getIcon())
	systray.SetTitle("PixelCatchr")
	systray.SetTooltip("PixelCatchr - capture and annotate")

	mZone := systray.AddMenuItem(withHotkey("Capture region", t.labels.ZoneHotkey), "Select a region to capture")
	mFull := systray.AddMenuItem(withHotkey("Capture full screen", t.labels.FullHotkey), "Save the whole desktop")
	systray.AddSeparator()
	t.mu.Lock()
	checked := t.datetime
	t.mu.Unlock()
	t.mDatetime = systray.AddMenuItemCheckbox(withHotkey("Show date/time", t.labels.DatetimeHotkey), "Burn a timestamp into captures", checked)
	mOpen := systray.AddMenuItem("Open save folder", "Open the folder screenshots are saved to")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit PixelCatchr")
	close(t.ready)

	logger.WithComponent("tray").Debug().Msg("tray ready")

	go func() {
		for {
			select {
			case <-mZone.ClickedCh:
				call(t.actions.ZoneCapture)
			case <-mFull.ClickedCh:
				call(t.actions.FullCapture)
			case <-t.mDatetime.ClickedCh:
				call(t.actions.ToggleDatetime)
			case <-mOpen.ClickedCh:
				call(t.actions.OpenFolder)
			case <-mQuit.ClickedCh:
				call(t.actions.Quit)
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
	logger.WithComponent("tray").Debug().Msg("tray exited")
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func withHotkey(title, hotkey string) string {
	if hotkey == "" {
		return title
	}
	return title + " (" + hotkey + ")"
}
