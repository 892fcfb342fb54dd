package playback

// InputKind mirrors the browser event kinds the monitor intercepts.
type InputKind string

const (
	InputKeyDown     InputKind = "keydown"
	InputContextMenu InputKind = "contextmenu"
)

// Input is one input event over the player surface, as reported by the shell.
type Input struct {
	Kind  InputKind `json:"kind"`
	Key   string    `json:"key,omitempty"`
	Ctrl  bool      `json:"ctrl,omitempty"`
	Shift bool      `json:"shift,omitempty"`
	Alt   bool      `json:"alt,omitempty"`
	Meta  bool      `json:"meta,omitempty"`
}

// Verdict is the monitor's decision on one input event. Suppression is
// best-effort input interception, not OS-level prevention.
type Verdict struct {
	Suppress     bool `json:"suppress"`
	TamperRaised bool `json:"tamper_raised"`
}

// interceptInput classifies an input event: whether its default action gets
// suppressed, and whether it raises a tamper signal. Tamper is reserved for
// the print-screen key and the OS screenshot shortcuts.
func interceptInput(in Input) (suppress, tamper bool) {
	if in.Kind == InputContextMenu {
		return true, false
	}
	if in.Kind != InputKeyDown {
		return false, false
	}

	switch in.Key {
	case "PrintScreen":
		return true, true
	case "F12":
		return true, false
	}

	// OS screenshot shortcuts: macOS Cmd+Shift+3/4/5, Windows Win+Shift+S
	if in.Meta && in.Shift {
		switch in.Key {
		case "3", "4", "5", "s", "S":
			return true, true
		}
	}

	mod := in.Ctrl || in.Meta

	// dev-tools shortcuts
	if mod && in.Shift {
		switch in.Key {
		case "i", "I", "j", "J", "c", "C":
			return true, false
		}
	}

	// save, view-source, print
	if mod {
		switch in.Key {
		case "s", "S", "u", "U", "p", "P":
			return true, false
		}
	}

	return false, false
}
