package playback

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/trezcool/warsha/core/lesson"
)

func TestInterceptInput(t *testing.T) {
	tests := []struct {
		name         string
		in           Input
		wantSuppress bool
		wantTamper   bool
	}{
		{name: "context menu", in: Input{Kind: InputContextMenu}, wantSuppress: true},
		{name: "print screen", in: Input{Kind: InputKeyDown, Key: "PrintScreen"}, wantSuppress: true, wantTamper: true},
		{name: "macos screenshot area", in: Input{Kind: InputKeyDown, Key: "4", Meta: true, Shift: true}, wantSuppress: true, wantTamper: true},
		{name: "macos screenshot full", in: Input{Kind: InputKeyDown, Key: "3", Meta: true, Shift: true}, wantSuppress: true, wantTamper: true},
		{name: "windows snip", in: Input{Kind: InputKeyDown, Key: "S", Meta: true, Shift: true}, wantSuppress: true, wantTamper: true},
		{name: "devtools F12", in: Input{Kind: InputKeyDown, Key: "F12"}, wantSuppress: true},
		{name: "devtools inspect", in: Input{Kind: InputKeyDown, Key: "I", Ctrl: true, Shift: true}, wantSuppress: true},
		{name: "devtools console", in: Input{Kind: InputKeyDown, Key: "j", Ctrl: true, Shift: true}, wantSuppress: true},
		{name: "inspect element", in: Input{Kind: InputKeyDown, Key: "C", Meta: true, Shift: true}, wantSuppress: true},
		{name: "save", in: Input{Kind: InputKeyDown, Key: "s", Ctrl: true}, wantSuppress: true},
		{name: "view source", in: Input{Kind: InputKeyDown, Key: "u", Ctrl: true}, wantSuppress: true},
		{name: "print", in: Input{Kind: InputKeyDown, Key: "p", Meta: true}, wantSuppress: true},
		{name: "plain letter", in: Input{Kind: InputKeyDown, Key: "k"}},
		{name: "space is the player's own", in: Input{Kind: InputKeyDown, Key: " "}},
		{name: "shifted letter no modifier", in: Input{Kind: InputKeyDown, Key: "S", Shift: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suppress, tamper := interceptInput(tt.in)
			if suppress != tt.wantSuppress {
				t.Errorf("interceptInput() suppress = %v, want %v", suppress, tt.wantSuppress)
			}
			if tamper != tt.wantTamper {
				t.Errorf("interceptInput() tamper = %v, want %v", tamper, tt.wantTamper)
			}
		})
	}
}

func TestTamperSignalAutoClears(t *testing.T) {
	mgr := NewManager(Options{TamperDwell: 10 * time.Millisecond})
	s := mgr.Open(testSource(), testViewer(), Meta{})
	defer mgr.Close(s.ID())

	v := s.HandleInput(Input{Kind: InputKeyDown, Key: "PrintScreen"})
	if !v.Suppress || !v.TamperRaised {
		t.Fatalf("HandleInput() verdict = %+v, want suppress+tamper", v)
	}
	if s.State() != StateBlocked {
		t.Fatalf("state after tamper = %v, want blocked", s.State())
	}
	if d := s.Descriptor(); !d.TamperSignal.Active || d.TamperSignal.RaisedAt.IsZero() {
		t.Errorf("tamper signal not populated: %+v", d.TamperSignal)
	}

	// auto-revert without any further caller action
	deadline := time.Now().Add(time.Second)
	for s.State() != StateMounted {
		if time.Now().After(deadline) {
			t.Fatal("tamper signal never auto-cleared")
		}
		time.Sleep(2 * time.Millisecond)
	}
	if d := s.Descriptor(); d.TamperSignal.Active {
		t.Errorf("tamper signal still active after auto-clear: %+v", d.TamperSignal)
	}
}

func TestTamperRestartsDwellWhileBlocked(t *testing.T) {
	var mu sync.Mutex
	var armed []func()
	afterFunc = func(_ time.Duration, fn func()) *time.Timer {
		mu.Lock()
		armed = append(armed, fn)
		mu.Unlock()
		return time.AfterFunc(time.Hour, func() {})
	}
	defer func() { afterFunc = time.AfterFunc }()

	mgr := NewManager(Options{})
	s := mgr.Open(testSource(), testViewer(), Meta{})
	defer mgr.Close(s.ID())

	s.HandleInput(Input{Kind: InputKeyDown, Key: "PrintScreen"})
	s.HandleInput(Input{Kind: InputKeyDown, Key: "PrintScreen"})

	mu.Lock()
	if len(armed) != 2 {
		mu.Unlock()
		t.Fatalf("dwell timers armed = %d, want 2", len(armed))
	}
	first, second := armed[0], armed[1]
	mu.Unlock()

	// the superseded timer firing must not clear an active block early...
	// (Stop already makes this unlikely; the state check makes it harmless)
	_ = first
	second()
	if s.State() != StateMounted {
		t.Errorf("state after dwell = %v, want mounted", s.State())
	}
	// ...and a stale fire after clearing stays a no-op
	first()
	if s.State() != StateMounted {
		t.Errorf("state after stale timer = %v, want mounted", s.State())
	}
}

func TestUnmountIdempotent(t *testing.T) {
	platform, originalCalls := newFakePlatform()
	mgr := NewManager(Options{Platform: platform})
	s := mgr.Open(testSource(), testViewer(), Meta{})

	s.Unmount()
	s.Unmount()
	mgr.Close(s.ID())
	mgr.Close(s.ID())

	if s.State() != StateUnmounted {
		t.Fatalf("state = %v, want unmounted", s.State())
	}
	// residue check: exactly one restore happened
	if err := platform.capture(nil); err != nil {
		t.Errorf("capture after unmounts failed: %v", err)
	}
	if *originalCalls != 1 {
		t.Errorf("original calls = %d, want 1", *originalCalls)
	}

	// nothing is intercepted anymore
	if v := s.HandleInput(Input{Kind: InputKeyDown, Key: "PrintScreen"}); v.Suppress || v.TamperRaised {
		t.Errorf("HandleInput() after unmount = %+v, want zero verdict", v)
	}
}

func TestUnmountWhileBlocked(t *testing.T) {
	mgr := NewManager(Options{TamperDwell: time.Hour})
	s := mgr.Open(testSource(), testViewer(), Meta{})

	s.HandleInput(Input{Kind: InputKeyDown, Key: "PrintScreen"})
	if s.State() != StateBlocked {
		t.Fatalf("state = %v, want blocked", s.State())
	}
	mgr.Close(s.ID())
	if s.State() != StateUnmounted {
		t.Errorf("state = %v, want unmounted", s.State())
	}
}

func TestDescriptor(t *testing.T) {
	mgr := NewManager(Options{})
	meta := Meta{WorkshopTitle: "Mixing Basics", LessonIndex: 3, LessonCount: 5}
	s := mgr.Open(testSource(), testViewer(), meta)
	defer mgr.Close(s.ID())

	d := s.Descriptor()
	if d.Display != DisplayPlayer {
		t.Errorf("display = %v, want player", d.Display)
	}
	if d.Source.Kind != lesson.KindHostedEmbed {
		t.Errorf("source kind = %v, want embed", d.Source.Kind)
	}
	if d.ViewerLabel != "Asha" {
		t.Errorf("viewer label = %q, want %q", d.ViewerLabel, "Asha")
	}
	if d.Watermark.Text != "Asha" || d.Watermark.Opacity <= 0 || d.Watermark.Opacity >= 1 {
		t.Errorf("watermark = %+v", d.Watermark)
	}
	if len(d.Watermark.Regions) != 2 {
		t.Errorf("watermark regions = %v, want 2 fixed regions", d.Watermark.Regions)
	}
	if d.Meta != meta {
		t.Errorf("meta = %+v, want %+v", d.Meta, meta)
	}
}

func TestUnrecognizedSourceMountsUnavailable(t *testing.T) {
	mgr := NewManager(Options{})
	s := mgr.Open(lesson.ResolveSource("not a url"), testViewer(), Meta{})
	defer mgr.Close(s.ID())

	d := s.Descriptor()
	if d.State != StateMounted {
		t.Errorf("state = %v, want mounted", d.State)
	}
	if d.Display != DisplayUnavailable {
		t.Errorf("display = %v, want unavailable", d.Display)
	}
	if d.Source.PlaybackURL != "" {
		t.Errorf("playback URL = %q, want empty", d.Source.PlaybackURL)
	}
}

type failingProber struct{}

func (failingProber) DrawPixel(int, int, [4]uint8) error { return errors.New("security exception") }
func (failingProber) ReadPixel(int, int) ([4]uint8, error) {
	return [4]uint8{}, errors.New("security exception")
}

type countingLogger struct {
	mu     sync.Mutex
	debugs int
}

func (l *countingLogger) Debug(string, ...interface{}) {
	l.mu.Lock()
	l.debugs++
	l.mu.Unlock()
}
func (l *countingLogger) Info(string, ...interface{})  {}
func (l *countingLogger) Warn(string, ...interface{})  {}
func (l *countingLogger) Error(string, ...interface{}) {}
func (l *countingLogger) Fatal(string, ...interface{}) {}

func TestProbeFailureOnlyLogged(t *testing.T) {
	logger := &countingLogger{}
	mgr := NewManager(Options{Prober: failingProber{}, Logger: logger})

	s := mgr.Open(testSource(), testViewer(), Meta{})
	defer mgr.Close(s.ID())

	if s.State() != StateMounted {
		t.Fatalf("state = %v, want mounted despite probe failure", s.State())
	}
	logger.mu.Lock()
	defer logger.mu.Unlock()
	if logger.debugs == 0 {
		t.Error("probe failure was not logged")
	}
}
