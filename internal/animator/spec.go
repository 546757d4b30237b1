// Package animator drives procedural transform and opacity animations on a
// single visual element.
package animator

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/elektrokombinacija/swipedeck/internal/easing"
)

// Kind selects the motion an animation performs.
type Kind int

const (
	Fade    Kind = iota // alpha 0 → 1
	Bounce              // scale with bounce easing
	Elastic             // scale with elastic overshoot
	Slide               // slide in from an offset with overshoot, fading in
	Scale               // plain scale up
	Rotate              // unrotate about an axis
	Flip                // unrotate about up with horizontal foreshortening
	Swing               // pendulum about an axis
	Zoom                // scale up while fading in
	Pop                 // scale up past 1.1 and settle
)

var kindNames = [...]string{"Fade", "Bounce", "Elastic", "Slide", "Scale", "Rotate", "Flip", "Swing", "Zoom", "Pop"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind by name, ignoring case.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	return Fade, fmt.Errorf("unknown animation kind %q", name)
}

// Easing returns the curve applied to normalized time for k.
func (k Kind) Easing() easing.Func {
	switch k {
	case Bounce:
		return easing.BounceOut
	case Elastic:
		return easing.ElasticOut
	case Swing:
		return easing.SwingOut
	case Pop:
		return easing.PopOut
	case Rotate, Flip:
		return easing.QuadOut
	default:
		return easing.Linear
	}
}

// exitEasing mirrors the enter curve so an exit starts where an enter ends.
func (k Kind) exitEasing() easing.Func {
	fn := k.Easing()
	return func(t float64) float64 {
		return 1 - fn(1-t)
	}
}

// Spec configures one animation.
type Spec struct {
	Kind     Kind
	Duration float64 // seconds
	Delay    float64 // seconds before the motion starts

	SlideOffset     mgl64.Vec3
	OvershootAmount float64
	OvershootPoint  float64

	RotationAxis    mgl64.Vec3
	RotationDegrees float64
}

// DefaultSpec returns the stock parameters for kind.
func DefaultSpec(kind Kind) Spec {
	return Spec{
		Kind:            kind,
		Duration:        0.5,
		SlideOffset:     mgl64.Vec3{0, -500, 0},
		OvershootAmount: 0.15,
		OvershootPoint:  0.7,
		RotationAxis:    mgl64.Vec3{0, 1, 0},
		RotationDegrees: 90,
	}
}
