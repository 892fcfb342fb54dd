package playback

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrCaptureBlocked is what a capture caller gets while any protected
	// player is mounted.
	ErrCaptureBlocked = errors.New("display capture is unavailable while a protected player is active")
)

type (
	// CaptureFunc is the platform's display-capture entry point
	// (the getDisplayMedia analog).
	CaptureFunc func(ctx context.Context) error

	// Platform exposes the page-global display-capture slot the guard
	// overrides. The host owns the real implementation.
	Platform interface {
		DisplayCapture() CaptureFunc
		SetDisplayCapture(fn CaptureFunc)
	}
)

// captureGuard is the reference-counted capability guard over the platform's
// display-capture API. The override is installed exactly once when the count
// goes 0→1 and the original restored exactly once when it goes 1→0, so one
// session's unmount never strands or breaks another still-mounted session.
type captureGuard struct {
	platform Platform

	mu          sync.Mutex
	count       int
	original    CaptureFunc
	subscribers map[int]func()
	nextSub     int
}

func newCaptureGuard(platform Platform) *captureGuard {
	return &captureGuard{
		platform:    platform,
		subscribers: make(map[int]func()),
	}
}

// acquire registers a mounted session. onAttempt fires on every blocked
// capture attempt while the registration is held. The returned release is
// idempotent; with a nil platform the guard degrades to a no-op (protection
// is strictly best-effort).
func (g *captureGuard) acquire(onAttempt func()) (release func()) {
	if g.platform == nil {
		return func() {}
	}

	g.mu.Lock()
	if g.count == 0 {
		g.original = g.platform.DisplayCapture()
		g.platform.SetDisplayCapture(g.deny)
	}
	g.count++
	id := g.nextSub
	g.nextSub++
	g.subscribers[id] = onAttempt
	g.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			delete(g.subscribers, id)
			g.count--
			if g.count == 0 {
				g.platform.SetDisplayCapture(g.original)
				g.original = nil
			}
		})
	}
}

// deny is the installed override: reject the caller and tell every mounted
// session about the attempt.
func (g *captureGuard) deny(context.Context) error {
	g.mu.Lock()
	subs := make([]func(), 0, len(g.subscribers))
	for _, fn := range g.subscribers {
		if fn != nil {
			subs = append(subs, fn)
		}
	}
	g.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return ErrCaptureBlocked
}
