package playback

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/warsha/core"
	"github.com/trezcool/warsha/core/lesson"
	"github.com/trezcool/warsha/core/student"
)

// DefaultTamperDwell is how long a raised tamper signal blocks the surface
// before auto-clearing.
const DefaultTamperDwell = 3 * time.Second

var (
	nowFunc   = time.Now       // mockable
	afterFunc = time.AfterFunc // mockable
)

// State is a session's lifecycle state. Unmounted is terminal and only
// reached by an explicit unmount; there is no automatic timeout.
type State string

const (
	StateMounted   State = "mounted"
	StateBlocked   State = "blocked"
	StateUnmounted State = "unmounted"
)

// DisplayState is what the shell should render in the player slot.
type DisplayState string

const (
	DisplayPlayer      DisplayState = "player"
	DisplayUnavailable DisplayState = "unavailable" // unrecognized source
)

type (
	// Meta is display-only context about the lesson being played.
	Meta struct {
		WorkshopTitle string `json:"workshop_title"`
		LessonIndex   int    `json:"lesson_index"`
		LessonCount   int    `json:"lesson_count"`
	}

	// TamperSignal is ephemeral UI state; never persisted.
	TamperSignal struct {
		Active   bool      `json:"active"`
		RaisedAt time.Time `json:"raised_at,omitempty"`
	}

	// Event is a session state transition, for the shell's event stream.
	Event struct {
		SessionID string    `json:"session_id"`
		State     State     `json:"state"`
		At        time.Time `json:"at"`
	}

	// Descriptor is the session's renderable snapshot handed to the shell.
	Descriptor struct {
		ID           string        `json:"id"`
		State        State         `json:"state"`
		Display      DisplayState  `json:"display"`
		Source       lesson.Source `json:"source"`
		Watermark    Watermark     `json:"watermark"`
		Meta         Meta          `json:"meta"`
		ViewerLabel  string        `json:"viewer_label"`
		TamperSignal TamperSignal  `json:"tamper_signal"`
	}
)

// disposerList guarantees, by construction, that every side effect registered
// during protection install gets undone exactly once on unmount.
type disposerList struct {
	fns []func()
}

func (d *disposerList) add(fn func()) {
	d.fns = append(d.fns, fn)
}

func (d *disposerList) releaseAll() {
	// reverse order of registration
	for i := len(d.fns) - 1; i >= 0; i-- {
		d.fns[i]()
	}
	d.fns = nil
}

// Session is one mounted playback security monitor instance.
type Session struct {
	id        string
	source    lesson.Source
	viewer    student.Student
	meta      Meta
	watermark Watermark
	dwell     time.Duration
	logger    core.Logger
	notify    func(Event)

	mu         sync.Mutex
	state      State
	tamper     TamperSignal
	dwellTimer *time.Timer
	release    *disposerList
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Descriptor() Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()

	display := DisplayPlayer
	if s.source.Kind == lesson.KindUnrecognized {
		display = DisplayUnavailable
	}
	return Descriptor{
		ID:           s.id,
		State:        s.state,
		Display:      display,
		Source:       s.source,
		Watermark:    s.watermark,
		Meta:         s.meta,
		ViewerLabel:  s.viewer.DisplayLabel(),
		TamperSignal: s.tamper,
	}
}

// HandleInput feeds one input event through the interception table. After
// unmount nothing is intercepted anymore.
func (s *Session) HandleInput(in Input) Verdict {
	s.mu.Lock()
	if s.state == StateUnmounted {
		s.mu.Unlock()
		return Verdict{}
	}
	s.mu.Unlock()

	suppress, tamper := interceptInput(in)
	if tamper {
		s.raiseTamper()
	}
	return Verdict{Suppress: suppress, TamperRaised: tamper}
}

// raiseTamper blocks the surface and arms the auto-clear. Re-raising while
// blocked restarts the dwell; playback position state is never touched.
func (s *Session) raiseTamper() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateUnmounted {
		return
	}
	s.tamper = TamperSignal{Active: true, RaisedAt: nowFunc().UTC()}
	s.state = StateBlocked
	if s.dwellTimer != nil {
		s.dwellTimer.Stop()
	}
	s.dwellTimer = afterFunc(s.dwell, s.clearTamper)
	s.emit(StateBlocked)
}

// clearTamper auto-reverts a blocked surface; requires no caller action.
func (s *Session) clearTamper() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateBlocked {
		return
	}
	s.tamper = TamperSignal{}
	s.state = StateMounted
	s.emit(StateMounted)
}

// Unmount reverts every listener, interval and global override installed on
// mount, with no residue. Idempotent; safe before mount fully completed.
func (s *Session) Unmount() {
	s.mu.Lock()
	if s.state == StateUnmounted {
		s.mu.Unlock()
		return
	}
	s.state = StateUnmounted
	s.tamper = TamperSignal{}
	if s.dwellTimer != nil {
		s.dwellTimer.Stop()
		s.dwellTimer = nil
	}
	release := s.release
	s.release = nil
	s.emit(StateUnmounted)
	s.mu.Unlock()

	if release != nil {
		release.releaseAll()
	}
}

// emit must be called with s.mu held. The notify hook is invoked
// synchronously so consumers see transitions in the order they happened;
// the hook must not block (the ws hub buffers and drops, never stalls).
func (s *Session) emit(state State) {
	if s.notify == nil {
		return
	}
	s.notify(Event{SessionID: s.id, State: state, At: nowFunc().UTC()})
}

type (
	// Options configures a Manager. Everything is optional: absent platform
	// hooks degrade the matching protection to a no-op.
	Options struct {
		Platform    Platform
		Prober      PixelProber
		Logger      core.Logger
		TamperDwell time.Duration
	}

	// Manager owns the mounted sessions and the shared capture guard.
	Manager struct {
		opts   Options
		guard  *captureGuard
		notify func(Event)

		mu       sync.Mutex
		sessions map[string]*Session
	}
)

func NewManager(opts Options) *Manager {
	if opts.TamperDwell <= 0 {
		opts.TamperDwell = DefaultTamperDwell
	}
	return &Manager{
		opts:     opts,
		guard:    newCaptureGuard(opts.Platform),
		sessions: make(map[string]*Session),
	}
}

// SetNotify installs the session event consumer (e.g. the ws stream hub).
// Must be called before the first Open. The consumer runs on the emitting
// session's goroutine with its lock held and must return without blocking.
func (m *Manager) SetNotify(fn func(Event)) { m.notify = fn }

// Open mounts a monitor for a resolved source. It never fails: a protection
// that cannot be installed is logged and skipped, and an unrecognized source
// mounts in the unavailable display state. The video always gets to play.
func (m *Manager) Open(src lesson.Source, viewer student.Student, meta Meta) *Session {
	s := &Session{
		id:        uuid.New().String(),
		source:    src,
		viewer:    viewer,
		meta:      meta,
		watermark: watermarkFor(viewer.DisplayLabel()),
		dwell:     m.opts.TamperDwell,
		logger:    m.opts.Logger,
		notify:    m.notify,
		state:     StateMounted,
		release:   &disposerList{},
	}
	m.installProtections(s)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	s.mu.Lock()
	s.emit(StateMounted)
	s.mu.Unlock()
	return s
}

// installProtections is strictly best-effort and additive: any failure here
// is swallowed and playback proceeds unprotected.
func (m *Manager) installProtections(s *Session) {
	defer func() {
		if r := recover(); r != nil && m.opts.Logger != nil {
			m.opts.Logger.Warn("playback: installing protections failed; playback proceeds unprotected", r)
		}
	}()

	s.release.add(m.guard.acquire(s.raiseTamper))
	runProbe(m.opts.Prober, m.opts.Logger)
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close unmounts and forgets a session. Unknown IDs and repeated closes are
// no-ops.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Unmount()
	}
}

// CloseAll unmounts everything; used on server shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Unmount()
	}
}
