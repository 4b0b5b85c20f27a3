package export

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"golang.design/x/clipboard"

	"pixelcatchr/internal/logger"
)

// ClipboardSink 以 PNG 形式写入系统剪贴板
type ClipboardSink struct {
	once    sync.Once
	initErr error
	mu      sync.Mutex
}

// Export 写入剪贴板
func (c *ClipboardSink) Export(img image.Image) (string, error) {
	c.once.Do(func() {
		c.initErr = clipboard.Init()
	})
	if c.initErr != nil {
		return "", fmt.Errorf("clipboard unavailable: %w", c.initErr)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, "PNG", 0); err != nil {
		return "", err
	}

	c.mu.Lock()
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	c.mu.Unlock()

	logger.WithComponent("export").Info().Int("bytes", buf.Len()).Msg("image copied to clipboard")
	return "clipboard", nil
}
