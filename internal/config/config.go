package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"pixelcatchr/internal/logger"
)

// ErrUnknownOption Toggle 收到的选项名不存在或不是布尔值
var ErrUnknownOption = errors.New("unknown option")

// EnvPrefix 环境变量前缀，例如 PIXELCATCHR_OVERLAY_OPACITY=150
const EnvPrefix = "PIXELCATCHR"

// 图片格式
const (
	FormatPNG = "PNG"
	FormatJPG = "JPG"
	FormatBMP = "BMP"
)

// DefaultPattern 默认文件名模板
const DefaultPattern = "%Y-%m-%d_%H-%M-%S"

// Settings 一次会话使用的配置快照。只包含值类型，复制后互不影响
type Settings struct {
	ShowDatetime     bool   `mapstructure:"show_datetime" yaml:"show_datetime"`
	ShowCoords       bool   `mapstructure:"show_coords" yaml:"show_coords"`
	CaptureCursor    bool   `mapstructure:"capture_cursor" yaml:"capture_cursor"`
	OverlayOpacity   int    `mapstructure:"overlay_opacity" yaml:"overlay_opacity"`
	ImageFormat      string `mapstructure:"image_format" yaml:"image_format"`
	FilenamePattern  string `mapstructure:"filename_pattern" yaml:"filename_pattern"`
	ShowNotification bool   `mapstructure:"show_notification" yaml:"show_notification"`
	CopyShortcut     string `mapstructure:"copy_shortcut" yaml:"copy_shortcut"`
	SaveDirectory    string `mapstructure:"save_directory" yaml:"save_directory"`
	JPEGQuality      int    `mapstructure:"jpeg_quality" yaml:"jpeg_quality"`
	HotkeyCapture    string `mapstructure:"hotkey_capture" yaml:"hotkey_capture"`
	HotkeyFull       string `mapstructure:"hotkey_full" yaml:"hotkey_full"`
	HotkeyDatetime   string `mapstructure:"hotkey_datetime" yaml:"hotkey_datetime"`
	LogLevel         string `mapstructure:"log_level" yaml:"log_level"`
}

// Defaults 默认配置
func Defaults() Settings {
	return Settings{
		ShowDatetime:     true,
		ShowCoords:       true,
		CaptureCursor:    false,
		OverlayOpacity:   100,
		ImageFormat:      FormatPNG,
		FilenamePattern:  DefaultPattern,
		ShowNotification: true,
		CopyShortcut:     "ctrl+c",
		SaveDirectory:    DefaultSaveDirectory(),
		JPEGQuality:      90,
		HotkeyCapture:    "ctrl+shift+1",
		HotkeyFull:       "ctrl+shift+2",
		HotkeyDatetime:   "alt+d",
		LogLevel:         "info",
	}
}

// DefaultSaveDirectory 图片目录（不存在时用主目录）下的 PixelCatchr
func DefaultSaveDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "PixelCatchr"
	}
	pictures := filepath.Join(home, "Pictures")
	if st, err := os.Stat(pictures); err == nil && st.IsDir() {
		return filepath.Join(pictures, "PixelCatchr")
	}
	return filepath.Join(home, "PixelCatchr")
}

// DefaultPath 配置文件默认路径
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "pixelcatchr", "config.yaml"), nil
}

// Validate 修正非法配置值，返回被修正的键
func (s *Settings) Validate() []string {
	d := Defaults()
	var fixed []string

	if s.OverlayOpacity < 0 {
		s.OverlayOpacity = 0
		fixed = append(fixed, "overlay_opacity")
	} else if s.OverlayOpacity > 255 {
		s.OverlayOpacity = 255
		fixed = append(fixed, "overlay_opacity")
	}

	switch strings.ToUpper(strings.TrimSpace(s.ImageFormat)) {
	case "PNG":
		s.ImageFormat = FormatPNG
	case "JPG", "JPEG":
		s.ImageFormat = FormatJPG
	case "BMP":
		s.ImageFormat = FormatBMP
	default:
		s.ImageFormat = d.ImageFormat
		fixed = append(fixed, "image_format")
	}

	if strings.TrimSpace(s.FilenamePattern) == "" || strings.ContainsAny(s.FilenamePattern, `/\`) {
		s.FilenamePattern = d.FilenamePattern
		fixed = append(fixed, "filename_pattern")
	}

	if s.JPEGQuality < 1 || s.JPEGQuality > 100 {
		s.JPEGQuality = d.JPEGQuality
		fixed = append(fixed, "jpeg_quality")
	}

	// 防止路径遍历
	if s.SaveDirectory == "" || strings.Contains(s.SaveDirectory, "..") {
		s.SaveDirectory = d.SaveDirectory
		fixed = append(fixed, "save_directory")
	} else {
		s.SaveDirectory = expandHome(s.SaveDirectory)
	}

	combos := []struct {
		key   string
		value *string
		def   string
	}{
		{"copy_shortcut", &s.CopyShortcut, d.CopyShortcut},
		{"hotkey_capture", &s.HotkeyCapture, d.HotkeyCapture},
		{"hotkey_full", &s.HotkeyFull, d.HotkeyFull},
		{"hotkey_datetime", &s.HotkeyDatetime, d.HotkeyDatetime},
	}
	for _, c := range combos {
		combo, err := ParseCombo(*c.value)
		if err != nil {
			*c.value = c.def
			fixed = append(fixed, c.key)
			continue
		}
		*c.value = combo.String()
	}

	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
		s.LogLevel = strings.ToLower(s.LogLevel)
	default:
		s.LogLevel = d.LogLevel
		fixed = append(fixed, "log_level")
	}

	return fixed
}

func expandHome(dir string) string {
	if strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, dir[1:])
		}
	}
	return dir
}

// toggles 可以被 Toggle 翻转的布尔选项
var toggles = map[string]func(*Settings) *bool{
	"show_datetime":     func(s *Settings) *bool { return &s.ShowDatetime },
	"show_coords":       func(s *Settings) *bool { return &s.ShowCoords },
	"capture_cursor":    func(s *Settings) *bool { return &s.CaptureCursor },
	"show_notification": func(s *Settings) *bool { return &s.ShowNotification },
}

// Manager 配置管理：viper 读取 YAML 与环境变量，修改后用 yaml.v3 写回
type Manager struct {
	path     string
	settings Settings
	mu       sync.RWMutex
}

// Load 加载配置。path 为空时使用默认路径；文件不存在时以默认值创建
func Load(path string) (*Manager, error) {
	log := logger.WithComponent("config")

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	loadDotEnv()

	m := &Manager{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Info().Str("path", path).Msg("Config file not found, creating new config")
		m.settings = Defaults()
		if err := m.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	s, err := read(path)
	if err != nil {
		return nil, err
	}
	if fixed := s.Validate(); len(fixed) > 0 {
		log.Warn().Strs("keys", fixed).Msg("Invalid config values replaced with defaults")
	}
	m.settings = s

	log.Info().
		Str("path", path).
		Str("format", s.ImageFormat).
		Str("save_directory", s.SaveDirectory).
		Msg("Config loaded")
	return m, nil
}

// read 用 viper 读取配置文件并叠加 PIXELCATCHR_ 环境变量
func read(path string) (Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v, Defaults())

	if err := v.ReadInConfig(); err != nil {
		return Settings{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return s, nil
}

// setDefaults 注册所有键的默认值，AutomaticEnv 只对已知的键生效
func setDefaults(v *viper.Viper, d Settings) {
	v.SetDefault("show_datetime", d.ShowDatetime)
	v.SetDefault("show_coords", d.ShowCoords)
	v.SetDefault("capture_cursor", d.CaptureCursor)
	v.SetDefault("overlay_opacity", d.OverlayOpacity)
	v.SetDefault("image_format", d.ImageFormat)
	v.SetDefault("filename_pattern", d.FilenamePattern)
	v.SetDefault("show_notification", d.ShowNotification)
	v.SetDefault("copy_shortcut", d.CopyShortcut)
	v.SetDefault("save_directory", d.SaveDirectory)
	v.SetDefault("jpeg_quality", d.JPEGQuality)
	v.SetDefault("hotkey_capture", d.HotkeyCapture)
	v.SetDefault("hotkey_full", d.HotkeyFull)
	v.SetDefault("hotkey_datetime", d.HotkeyDatetime)
	v.SetDefault("log_level", d.LogLevel)
}

// loadDotEnv 加载可执行文件旁边的 .env，已存在的环境变量不会被覆盖
func loadDotEnv() {
	exe, err := os.Executable()
	if err != nil {
		return
	}
	envPath := filepath.Join(filepath.Dir(exe), ".env")
	if _, err := os.Stat(envPath); err == nil {
		_ = godotenv.Load(envPath)
	}
}

// Path 配置文件路径
func (m *Manager) Path() string {
	return m.path
}

// Snapshot 返回当前配置的副本
func (m *Manager) Snapshot() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Toggle 翻转布尔选项并保存，返回新值
func (m *Manager) Toggle(name string) (bool, error) {
	field, ok := toggles[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}

	m.mu.Lock()
	p := field(&m.settings)
	*p = !*p
	value := *p
	m.mu.Unlock()

	logger.WithComponent("config").Info().Str("option", name).Bool("value", value).Msg("Option toggled")
	return value, m.Save()
}

// Toggles 可翻转的选项名
func Toggles() []string {
	return []string{"show_datetime", "show_coords", "capture_cursor", "show_notification"}
}

// Marshal 以 YAML 形式输出当前配置
func (m *Manager) Marshal() ([]byte, error) {
	s := m.Snapshot()
	return yaml.Marshal(&s)
}

// Save 保存配置
func (m *Manager) Save() error {
	data, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	logger.WithComponent("config").Debug().Str("path", m.path).Msg("Config saved")
	return nil
}
