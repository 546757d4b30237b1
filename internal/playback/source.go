package playback

import (
	"image"

	"github.com/elektrokombinacija/swipedeck/internal/core"
)

// Source is one audio output slot.
type Source interface {
	Load(clip *core.Clip)
	Clip() *core.Clip
	Play()
	Pause()
	// Stop halts playback and rewinds to the start.
	Stop()
	SetVolume(v float64)
	Volume() float64
	SetPosition(seconds float64)
	Position() float64
	IsPlaying() bool
}

// Cover is the artwork animator the coordinator drives alongside playback.
type Cover interface {
	// Show replaces the artwork without a transition.
	Show(img image.Image)
	// CrossFade fades from the current artwork to img.
	CrossFade(img image.Image)
	// Start begins ambient motion from the original anchor.
	Start()
	// Stop eases back to the original anchor and ends ambient motion.
	Stop()
	// Resume blends from the in-flight pose into fresh ambient motion.
	Resume()
}
