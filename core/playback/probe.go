package playback

import (
	"github.com/trezcool/warsha/core"
)

// PixelProber is an offscreen 1×1 drawing surface supplied by the host
// platform (the canvas analog).
type PixelProber interface {
	DrawPixel(x, y int, rgba [4]uint8) error
	ReadPixel(x, y int) ([4]uint8, error)
}

// runProbe draws a time-varying pixel and reads it back once per mount. The
// point is to make canvas-grabbing tooling more conspicuous to itself, not to
// detect anything reliably; nothing consumes the result. Failures (e.g. a
// security exception on readback) are logged at debug and never surfaced.
func runProbe(prober PixelProber, logger core.Logger) {
	if prober == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && logger != nil {
			logger.Debug("playback: pixel probe panicked", r)
		}
	}()

	shade := uint8(nowFunc().UnixNano() / int64(1e6) % 251)
	if err := prober.DrawPixel(0, 0, [4]uint8{shade, shade, shade, 255}); err != nil {
		if logger != nil {
			logger.Debug("playback: pixel probe draw failed", err)
		}
		return
	}
	if _, err := prober.ReadPixel(0, 0); err != nil && logger != nil {
		logger.Debug("playback: pixel probe readback failed", err)
	}
}
