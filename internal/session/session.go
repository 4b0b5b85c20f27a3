// Package session 一次截图会话：把鼠标键盘输入转换为选区状态机和标注模型的操作，
// 负责绘制每一帧，并在保存/复制时调用导出流程
package session

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"

	"pixelcatchr/internal/annotate"
	"pixelcatchr/internal/capture"
	"pixelcatchr/internal/config"
	"pixelcatchr/internal/export"
	"pixelcatchr/internal/logger"
	"pixelcatchr/internal/selection"
	"pixelcatchr/internal/toolbar"
)

// Outcome 会话结果
type Outcome int

const (
	Open Outcome = iota
	Saved
	Copied
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Saved:
		return "saved"
	case Copied:
		return "copied"
	case Cancelled:
		return "cancelled"
	}
	return "open"
}

// Sinks 导出目标
type Sinks struct {
	File      export.Sink
	Clipboard export.Sink
}

// Session 截图会话。所有方法只能在 UI 线程调用
type Session struct {
	desk     *capture.Desktop
	settings config.Settings
	copyKey  config.Combo
	sinks    Sinks

	sel   *selection.Machine
	model *annotate.Model

	tool       annotate.Tool
	colorIndex int
	cursor     image.Point
	pressed    bool

	palette     toolbar.Placement
	paletteDrag bool
	dragOffset  image.Point

	prompt    *prompt
	status    string
	onFailure func(title, msg string)

	outcome Outcome
	message string

	now func() time.Time
	log *zerolog.Logger
}

// New 基于截好的桌面和配置快照创建会话
func New(desk *capture.Desktop, settings config.Settings, sinks Sinks) *Session {
	combo, err := config.ParseCombo(settings.CopyShortcut)
	if err != nil {
		combo, _ = config.ParseCombo(config.Defaults().CopyShortcut)
	}

	s := &Session{
		desk:     desk,
		settings: settings,
		copyKey:  combo,
		sinks:    sinks,
		sel:      selection.New(),
		model:    annotate.NewModel(desk.Image, nil),
		now:      time.Now,
		log:      logger.WithComponent("session"),
	}
	s.sel.SetBounds(desk.Bounds())
	s.log.Debug().
		Stringer("desktop", desk.Bounds()).
		Int("monitors", len(desk.Monitors)).
		Msg("session started")
	return s
}

// OnFailure 设置导出失败时的回调（例如发送系统通知）。未选区的提示只显示在状态栏
func (s *Session) OnFailure(fn func(title, msg string)) {
	s.onFailure = fn
}

// SetClock 替换时间来源（测试用）
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}

// Desktop 会话使用的桌面截图
func (s *Session) Desktop() *capture.Desktop {
	return s.desk
}

// Selection 当前选区
func (s *Session) Selection() image.Rectangle {
	return s.sel.Rect()
}

// Committed 是否已确认选区
func (s *Session) Committed() bool {
	return s.sel.Committed()
}

// Mode 选区状态机的模式
func (s *Session) Mode() selection.Mode {
	return s.sel.Mode()
}

// Tool 当前工具
func (s *Session) Tool() annotate.Tool {
	return s.tool
}

// SetTool 切换工具，会先提交正在输入的文本
func (s *Session) SetTool(t annotate.Tool) {
	s.commitPrompt()
	s.tool = t
}

// Color 当前颜色
func (s *Session) Color() int {
	return s.colorIndex
}

// SetColor 选择调色板中的颜色
func (s *Session) SetColor(i int) {
	if i < 0 || i >= len(annotate.DefaultColors) {
		return
	}
	s.colorIndex = i
	if s.prompt != nil {
		s.prompt.color = annotate.DefaultColors[i]
	}
}

// Annotations 已提交的标注
func (s *Session) Annotations() []annotate.Annotation {
	return s.model.Annotations()
}

// Status 覆盖层底部的状态信息（例如保存失败）
func (s *Session) Status() string {
	return s.status
}

// Done 会话是否已结束
func (s *Session) Done() bool {
	return s.outcome != Open
}

// Result 会话结果和给用户的一行提示
func (s *Session) Result() (Outcome, string) {
	return s.outcome, s.message
}

// SelectAll 选中整个虚拟桌面（全屏截图）
func (s *Session) SelectAll() {
	s.sel.Select(s.desk.Bounds())
	s.model.Clear()
}

// Cancel 放弃本次截图
func (s *Session) Cancel() {
	s.prompt = nil
	s.model.Cancel()
	s.finish(Cancelled, "")
}

// Undo 撤销最后一个标注
func (s *Session) Undo() bool {
	if s.prompt != nil || s.model.Drawing() {
		return false
	}
	return s.model.Undo()
}

// Render 生成导出用的最终图片
func (s *Session) Render() (*image.RGBA, error) {
	s.commitPrompt()
	if !s.sel.Committed() {
		return nil, export.ErrNoSelection
	}
	return export.Render(s.desk.Image, s.sel.Rect(), s.model.Annotations(), export.Options{
		ShowDatetime: s.settings.ShowDatetime,
		Now:          s.now(),
	})
}

// Save 保存到文件。成功后会话结束；失败时会话保持打开，错误显示在状态栏
func (s *Session) Save() error {
	path, err := s.exportTo(s.sinks.File, "Save")
	if err != nil {
		return err
	}
	s.finish(Saved, fmt.Sprintf("Saved to %s", path))
	return nil
}

// Copy 复制到剪贴板。closeAfter 为 false 时会话和工具栏保持打开
func (s *Session) Copy(closeAfter bool) error {
	if _, err := s.exportTo(s.sinks.Clipboard, "Copy"); err != nil {
		return err
	}
	msg := "Copied to clipboard"
	if closeAfter {
		s.finish(Copied, msg)
	} else {
		s.status = msg
	}
	return nil
}

func (s *Session) exportTo(sink export.Sink, action string) (string, error) {
	if sink == nil {
		err := fmt.Errorf("%s: no sink configured", action)
		s.fail(action, err)
		return "", err
	}
	img, err := s.Render()
	if err != nil {
		s.fail(action, err)
		return "", err
	}
	target, err := sink.Export(img)
	if err != nil {
		s.fail(action, err)
		return "", err
	}
	s.status = ""
	return target, nil
}

func (s *Session) fail(action string, err error) {
	s.log.Error().Err(err).Str("action", action).Msg("export failed")
	if errors.Is(err, export.ErrNoSelection) {
		s.status = "Select a region first"
		return
	}
	title := action + " failed"
	s.status = fmt.Sprintf("%s: %v", title, err)
	if s.onFailure != nil {
		s.onFailure(title, err.Error())
	}
}

func (s *Session) finish(o Outcome, msg string) {
	s.outcome = o
	s.message = msg
	s.log.Info().Stringer("outcome", o).Int("annotations", s.model.Len()).Msg("session finished")
}
