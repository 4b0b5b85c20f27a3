// Package hotkey 全局快捷键
package hotkey

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.design/x/hotkey"

	"pixelcatchr/internal/config"
	"pixelcatchr/internal/logger"
)

// ErrUnsupportedKey 当前平台无法注册的主键或修饰键
var ErrUnsupportedKey = errors.New("unsupported hotkey")

type binding struct {
	name  string
	combo config.Combo
	hk    *hotkey.Hotkey
	done  chan struct{}
}

// Manager 管理多个全局快捷键，每个快捷键一个监听 goroutine
type Manager struct {
	mu       sync.Mutex
	bindings []*binding
	log      *zerolog.Logger
}

// NewManager 创建热键管理器
func NewManager() *Manager {
	return &Manager{log: logger.WithComponent("hotkey")}
}

// Register 注册快捷键，按下时在监听 goroutine 中调用 fn
func (m *Manager) Register(name string, combo config.Combo, fn func()) error {
	mods, err := modifiers(combo)
	if err != nil {
		return err
	}
	key, err := keyCode(combo.Key)
	if err != nil {
		return err
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register %s (%s): %w", name, combo, err)
	}

	b := &binding{name: name, combo: combo, hk: hk, done: make(chan struct{})}
	m.mu.Lock()
	m.bindings = append(m.bindings, b)
	m.mu.Unlock()

	go m.listen(b, fn)

	m.log.Info().Str("name", name).Stringer("combo", combo).Msg("hotkey registered")
	return nil
}

func (m *Manager) listen(b *binding, fn func()) {
	for {
		select {
		case <-b.done:
			return
		case _, ok := <-b.hk.Keydown():
			if !ok {
				return
			}
			m.log.Debug().Str("name", b.name).Msg("hotkey pressed")
			fn()
		}
	}
}

// UnregisterAll 注销所有快捷键
func (m *Manager) UnregisterAll() {
	m.mu.Lock()
	bindings := m.bindings
	m.bindings = nil
	m.mu.Unlock()

	for _, b := range bindings {
		close(b.done)
		if err := b.hk.Unregister(); err != nil {
			m.log.Warn().Err(err).Str("name", b.name).Msg("unregister hotkey failed")
		}
	}
}

// Names 已注册的快捷键及其组合键
func (m *Manager) Names() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.bindings))
	for _, b := range m.bindings {
		out[b.name] = b.combo.String()
	}
	return out
}
