package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/elektrokombinacija/swipedeck/internal/cover"
	"github.com/elektrokombinacija/swipedeck/internal/nav"
	"github.com/elektrokombinacija/swipedeck/internal/playback"
)

func seconds(v float64) *float64 { return &v }

// Default returns a three-section deck with synthesized tracks, runnable
// without any asset files.
func Default() *Config {
	n := nav.DefaultOptions()
	cv := cover.DefaultOptions()
	pb := playback.DefaultOptions()
	return &Config{
		Window: Window{Title: "swipedeck", Width: 1280, Height: 720},
		Audio:  Audio{Driver: "oto", SampleRate: 44100, Channels: 2},
		Playback: Playback{
			Crossfade:   pb.Crossfade,
			Fade:        pb.Fade,
			SettleDelay: pb.SettleDelay,
		},
		Navigator: Navigator{
			SwipeThreshold:    n.SwipeThreshold,
			SnapSpeed:         n.SnapSpeed,
			SnapPrecision:     n.SnapPrecision,
			LowMotionVelocity: n.LowMotionVelocity,
			GraceDelay:        n.GraceDelay,
			ScaleEffect:       n.ScaleEffect,
			ActiveScale:       n.ActiveScale,
			InactiveScale:     n.InactiveScale,
		},
		Cover: Cover{
			Enabled:        cv.Enabled,
			Speed:          cv.Speed,
			Movement:       cv.Movement,
			Scale:          cv.Scale,
			Transition:     cv.Transition,
			ReturnDuration: cv.ReturnDuration,
			BlendDuration:  cv.BlendDuration,
			Seed:           cv.Seed,
			Size:           320,
		},
		Splash: Splash{
			Duration: 5,
			Title:    "swipedeck",
			Enter:    Animation{Kind: "zoom", Duration: seconds(0.6)},
			Exit:     Animation{Kind: "fade", Duration: seconds(0.4)},
		},
		Sections: []Section{
			{
				Name: "welcome",
				Elements: []Element{
					{Name: "heading", Text: "Swipe to browse", X: 0.5, Y: 0.35, Size: 36,
						Animation: &Animation{Kind: "slide"}},
					{Name: "hint", Text: "drag left or right", X: 0.5, Y: 0.5, Size: 18,
						Animation: &Animation{Kind: "fade", Delay: 0.3}},
					{Name: "badge", Text: "♪", X: 0.5, Y: 0.65, Size: 48,
						Animation: &Animation{Kind: "elastic", Delay: 0.5}},
				},
			},
			{
				Name:   "player",
				Player: true,
				Elements: []Element{
					{Name: "artwork", Bind: BindCover, X: 0.3, Y: 0.45, Size: 320,
						Animation: &Animation{Kind: "pop"}},
					{Name: "title", Bind: BindTitle, X: 0.68, Y: 0.3, Size: 32,
						Animation: &Animation{Kind: "bounce"}},
					{Name: "artist", Bind: BindArtist, X: 0.68, Y: 0.4, Size: 20,
						Animation: &Animation{Kind: "fade", Delay: 0.1}},
					{Name: "album", Bind: BindAlbum, X: 0.68, Y: 0.47, Size: 16,
						Animation: &Animation{Kind: "fade", Delay: 0.2}},
					{Name: "elapsed", Bind: BindCurrentTime, X: 0.6, Y: 0.6, Size: 14,
						Animation: &Animation{Kind: "scale", Delay: 0.3}},
					{Name: "total", Bind: BindTotalTime, X: 0.76, Y: 0.6, Size: 14,
						Animation: &Animation{Kind: "scale", Delay: 0.3}},
				},
			},
			{
				Name: "credits",
				Elements: []Element{
					{Name: "made-with", Text: "Made with Gio", X: 0.5, Y: 0.3, Size: 28,
						Animation: &Animation{Kind: "flip"}},
					{Name: "audio", Text: "Audio by oto", X: 0.5, Y: 0.42, Size: 20,
						Animation: &Animation{Kind: "swing", Delay: 0.2}},
					{Name: "motion", Text: "Motion by gween", X: 0.5, Y: 0.52, Size: 20,
						Animation: &Animation{Kind: "rotate", Delay: 0.4, RotationAxis: []float64{0, 0, 1}}},
					{Name: "thanks", Text: "Thanks for listening", X: 0.5, Y: 0.66, Size: 24,
						Animation: &Animation{Kind: "slide", Delay: 0.6, SlideOffset: []float64{-400, 0, 0}}},
					{Name: "now-playing", Mirror: "title", X: 0.5, Y: 0.85, Size: 14},
				},
			},
		},
		Tracks: []Track{
			{Title: "Sine Rise", Artist: "Test Tones", Album: "Reference", Tone: 440, Seconds: 20, Selectable: true},
			{Title: "Fifth Above", Artist: "Test Tones", Album: "Reference", Tone: 660, Seconds: 20, Selectable: true},
			{Title: "Low Hum", Artist: "Test Tones", Album: "Reference", Tone: 220, Seconds: 20, Selectable: true},
		},
	}
}

func vec3(v []float64) (mgl64.Vec3, error) {
	if len(v) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("want 3 components, got %d", len(v))
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}
