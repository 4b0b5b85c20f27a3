package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogNotifierNeverFails(t *testing.T) {
	assert.NoError(t, NewLogNotifier().Show("PixelCatchr", "Saved to /tmp/a.png"))
}
