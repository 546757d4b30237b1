// Package config loads the deck description: window, audio, paging, cover
// motion, sections with their animated elements, and the track catalog.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/elektrokombinacija/swipedeck/internal/animator"
	"github.com/elektrokombinacija/swipedeck/internal/cover"
	"github.com/elektrokombinacija/swipedeck/internal/nav"
	"github.com/elektrokombinacija/swipedeck/internal/playback"
)

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Audio struct {
	Driver     string `yaml:"driver"` // "oto" | "sim"
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
}

type Playback struct {
	Crossfade   float64 `yaml:"crossfade"`
	Fade        float64 `yaml:"fade"`
	SettleDelay float64 `yaml:"settle_delay"`
}

type Navigator struct {
	SwipeThreshold    float64 `yaml:"swipe_threshold"`
	SnapSpeed         float64 `yaml:"snap_speed"`
	SnapPrecision     float64 `yaml:"snap_precision"`
	LowMotionVelocity float64 `yaml:"low_motion_velocity"`
	GraceDelay        float64 `yaml:"grace_delay"`
	ScaleEffect       bool    `yaml:"scale_effect"`
	ActiveScale       float64 `yaml:"active_scale"`
	InactiveScale     float64 `yaml:"inactive_scale"`
}

type Cover struct {
	Enabled        bool    `yaml:"enabled"`
	Speed          float64 `yaml:"speed"`
	Movement       float64 `yaml:"movement"`
	Scale          float64 `yaml:"scale"`
	Transition     float64 `yaml:"transition"`
	ReturnDuration float64 `yaml:"return_duration"`
	BlendDuration  float64 `yaml:"blend_duration"`
	Seed           int64   `yaml:"seed"`
	Size           int     `yaml:"size"` // artwork edge in pixels
}

// Animation describes an element intro. Zero fields take the kind defaults.
type Animation struct {
	Kind            string    `yaml:"kind"`
	Duration        *float64  `yaml:"duration,omitempty"`
	Delay           float64   `yaml:"delay,omitempty"`
	SlideOffset     []float64 `yaml:"slide_offset,omitempty"`
	OvershootAmount float64   `yaml:"overshoot_amount,omitempty"`
	OvershootPoint  float64   `yaml:"overshoot_point,omitempty"`
	RotationAxis    []float64 `yaml:"rotation_axis,omitempty"`
	RotationDegrees float64   `yaml:"rotation_degrees,omitempty"`
}

// Bindings an element can display instead of its static text.
const (
	BindTitle       = "title"
	BindArtist      = "artist"
	BindAlbum       = "album"
	BindCurrentTime = "current_time"
	BindTotalTime   = "total_time"
	BindCover       = "cover"
)

type Element struct {
	Name      string     `yaml:"name"`
	Text      string     `yaml:"text,omitempty"`
	Bind      string     `yaml:"bind,omitempty"`
	Mirror    string     `yaml:"mirror,omitempty"` // name of an element whose text is copied each frame
	X         float64    `yaml:"x"`
	Y         float64    `yaml:"y"`
	Size      float64    `yaml:"size,omitempty"` // text size or artwork edge
	Animation *Animation `yaml:"animation,omitempty"`
}

type Section struct {
	Name     string    `yaml:"name"`
	Width    float64   `yaml:"width,omitempty"`
	Player   bool      `yaml:"player,omitempty"`
	Elements []Element `yaml:"elements"`
}

type Track struct {
	Title      string  `yaml:"title"`
	Artist     string  `yaml:"artist"`
	Album      string  `yaml:"album"`
	Cover      string  `yaml:"cover,omitempty"`
	PCM        string  `yaml:"pcm,omitempty"`
	Tone       float64 `yaml:"tone,omitempty"` // Hz, synthesized when PCM is empty
	Seconds    float64 `yaml:"seconds,omitempty"`
	Selectable bool    `yaml:"selectable"`
}

type Splash struct {
	Duration float64   `yaml:"duration"`
	Title    string    `yaml:"title"`
	Enter    Animation `yaml:"enter"`
	Exit     Animation `yaml:"exit"`
}

type Config struct {
	Window    Window    `yaml:"window"`
	Audio     Audio     `yaml:"audio"`
	Playback  Playback  `yaml:"playback"`
	Navigator Navigator `yaml:"navigator"`
	Cover     Cover     `yaml:"cover"`
	Splash    Splash    `yaml:"splash"`
	Sections  []Section `yaml:"sections"`
	Tracks    []Track   `yaml:"tracks"`

	// Dir resolves relative asset paths. Load sets it to the file's directory.
	Dir string `yaml:"-"`
}

// Load reads path over the defaults, so omitted keys keep their stock values.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.Dir = filepath.Dir(path)
	return c, nil
}

// Save writes c as YAML.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Resolve returns p relative to the config directory unless it is absolute.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	switch strings.ToLower(c.Audio.Driver) {
	case "oto", "sim":
	default:
		bad("audio.driver %q: want oto or sim", c.Audio.Driver)
	}
	if c.Audio.SampleRate <= 0 {
		bad("audio.sample_rate must be positive")
	}
	if c.Audio.Channels != 1 && c.Audio.Channels != 2 {
		bad("audio.channels %d: want 1 or 2", c.Audio.Channels)
	}
	if c.Playback.Crossfade < 0 || c.Playback.Fade < 0 || c.Playback.SettleDelay < 0 {
		bad("playback durations must not be negative")
	}
	if t := c.Navigator.SwipeThreshold; t <= 0 || t >= 1 {
		bad("navigator.swipe_threshold %v: want (0,1)", t)
	}
	if c.Navigator.SnapSpeed <= 0 {
		bad("navigator.snap_speed %v: want > 0", c.Navigator.SnapSpeed)
	}
	if c.Navigator.SnapPrecision < 0 {
		bad("navigator.snap_precision must not be negative")
	}
	if c.Navigator.ActiveScale <= 0 || c.Navigator.InactiveScale <= 0 {
		bad("navigator scales must be positive")
	}
	if len(c.Sections) == 0 {
		bad("at least one section is required")
	}
	for i, s := range c.Sections {
		for j, e := range s.Elements {
			if e.Animation == nil {
				continue
			}
			if _, err := e.Animation.Spec(); err != nil {
				bad("sections[%d].elements[%d] %q: %w", i, j, e.Name, err)
			}
		}
	}
	names := map[string]bool{}
	for _, s := range c.Sections {
		for _, e := range s.Elements {
			names[e.Name] = true
		}
	}
	for i, s := range c.Sections {
		for j, e := range s.Elements {
			if e.Mirror != "" && (e.Mirror == e.Name || !names[e.Mirror]) {
				bad("sections[%d].elements[%d] %q: mirror %q not found", i, j, e.Name, e.Mirror)
			}
		}
	}
	for i, t := range c.Tracks {
		if t.PCM == "" && t.Tone <= 0 {
			bad("tracks[%d] %q: needs pcm or tone", i, t.Title)
		}
	}
	if _, err := c.Splash.Enter.Spec(); err != nil {
		bad("splash.enter: %w", err)
	}
	if _, err := c.Splash.Exit.Spec(); err != nil {
		bad("splash.exit: %w", err)
	}
	return errors.Join(errs...)
}

// Spec converts the description to an animator spec.
func (a Animation) Spec() (animator.Spec, error) {
	kind, err := animator.ParseKind(a.Kind)
	if err != nil {
		return animator.Spec{}, err
	}
	s := animator.DefaultSpec(kind)
	if a.Duration != nil {
		s.Duration = *a.Duration
	}
	s.Delay = a.Delay
	if len(a.SlideOffset) > 0 {
		if s.SlideOffset, err = vec3(a.SlideOffset); err != nil {
			return animator.Spec{}, fmt.Errorf("slide_offset: %w", err)
		}
	}
	if a.OvershootAmount != 0 {
		s.OvershootAmount = a.OvershootAmount
	}
	if a.OvershootPoint != 0 {
		s.OvershootPoint = a.OvershootPoint
	}
	if len(a.RotationAxis) > 0 {
		if s.RotationAxis, err = vec3(a.RotationAxis); err != nil {
			return animator.Spec{}, fmt.Errorf("rotation_axis: %w", err)
		}
	}
	if a.RotationDegrees != 0 {
		s.RotationDegrees = a.RotationDegrees
	}
	return s, nil
}

func (p Playback) Options() playback.Options {
	return playback.Options{Crossfade: p.Crossfade, Fade: p.Fade, SettleDelay: p.SettleDelay}
}

func (n Navigator) Options(screenWidth float64) nav.Options {
	return nav.Options{
		ScreenWidth:       screenWidth,
		SwipeThreshold:    n.SwipeThreshold,
		SnapSpeed:         n.SnapSpeed,
		SnapPrecision:     n.SnapPrecision,
		LowMotionVelocity: n.LowMotionVelocity,
		GraceDelay:        n.GraceDelay,
		ScaleEffect:       n.ScaleEffect,
		ActiveScale:       n.ActiveScale,
		InactiveScale:     n.InactiveScale,
	}
}

func (c Cover) Options() cover.Options {
	o := cover.DefaultOptions()
	o.Enabled = c.Enabled
	o.Speed = c.Speed
	o.Movement = c.Movement
	o.Scale = c.Scale
	o.Transition = c.Transition
	o.ReturnDuration = c.ReturnDuration
	o.BlendDuration = c.BlendDuration
	o.Seed = c.Seed
	return o
}
