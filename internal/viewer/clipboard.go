package viewer

import (
	"go.uber.org/zap"
	"golang.design/x/clipboard"

	"github.com/Faultbox/planetview/internal/logger"
	"github.com/Faultbox/planetview/pkg/sphere"
)

// coordClipboard copies coordinate readouts to the system clipboard.
// It is inert when no clipboard is available (headless, no X server).
type coordClipboard struct {
	ok bool
}

func newCoordClipboard() *coordClipboard {
	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", zap.Error(err))
		return &coordClipboard{}
	}
	return &coordClipboard{ok: true}
}

// Copy writes the coordinate's label text to the clipboard.
func (c *coordClipboard) Copy(coord sphere.AngularCoordinate) {
	if !c.ok {
		return
	}
	text := coord.String()
	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.Info("copied location", zap.String("text", text))
}
