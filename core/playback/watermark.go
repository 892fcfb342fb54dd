package playback

// Region names a fixed placement of the watermark on the player surface.
type Region string

const (
	RegionUpperLeft  Region = "upper-left"
	RegionLowerRight Region = "lower-right"
)

// Watermark describes the deterrent overlay the renderer draws over the
// player: low-opacity, diagonally rotated, repeating viewer label. Purely
// decorative; it never affects input handling.
type Watermark struct {
	Text        string   `json:"text"`
	Opacity     float64  `json:"opacity"`
	RotationDeg float64  `json:"rotation_deg"`
	Repeat      bool     `json:"repeat"`
	Regions     []Region `json:"regions"`
}

func watermarkFor(label string) Watermark {
	return Watermark{
		Text:        label,
		Opacity:     0.12,
		RotationDeg: -30,
		Repeat:      true,
		Regions:     []Region{RegionUpperLeft, RegionLowerRight},
	}
}
