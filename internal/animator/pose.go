package animator

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/easing"
)

var up = mgl64.Vec3{0, 1, 0}

// rotation returns orig rotated by degrees about axis in local space.
func rotation(orig mgl64.Quat, axis mgl64.Vec3, degrees float64) mgl64.Quat {
	if axis.Len() == 0 {
		axis = up
	}
	return orig.Mul(mgl64.QuatRotate(mgl64.DegToRad(degrees), axis.Normalize()))
}

// setHidden moves n to the state an enter animation starts from and an exit
// animation ends in.
func setHidden(n core.Node, s Spec, orig core.Transform) {
	switch s.Kind {
	case Fade:
		n.SetOpacity(0)
	case Bounce, Elastic, Scale, Pop:
		n.SetLocalScale(mgl64.Vec3{})
	case Slide:
		n.SetLocalPosition(orig.Position.Add(s.SlideOffset))
	case Rotate, Flip:
		n.SetLocalRotation(rotation(orig.Rotation, s.RotationAxis, s.RotationDegrees))
	case Swing:
		n.SetLocalRotation(rotation(orig.Rotation, s.RotationAxis, s.RotationDegrees/2))
	case Zoom:
		n.SetLocalScale(mgl64.Vec3{})
		n.SetOpacity(0)
	}
}

// restore writes the original snapshot back, fully opaque.
func restore(n core.Node, orig core.Transform) {
	n.SetOpacity(1)
	n.SetLocalScale(orig.Scale)
	n.SetLocalPosition(orig.Position)
	n.SetLocalRotation(orig.Rotation)
}

// apply writes the pose for eased progress v. When exiting, v runs the same
// curve backwards: 0 is fully shown and 1 fully hidden.
func apply(n core.Node, s Spec, orig core.Transform, v float64, exiting bool) {
	shown := v
	if exiting {
		shown = 1 - v
	}

	switch s.Kind {
	case Fade:
		n.SetOpacity(shown)

	case Bounce, Elastic, Scale:
		n.SetLocalScale(orig.Scale.Mul(shown))

	case Slide:
		k := easing.SlideOvershoot(shown, s.OvershootPoint, s.OvershootAmount)
		from := orig.Position.Add(s.SlideOffset)
		n.SetLocalPosition(from.Add(orig.Position.Sub(from).Mul(k)))
		n.SetOpacity(shown)

	case Rotate:
		n.SetLocalRotation(rotation(orig.Rotation, s.RotationAxis, s.RotationDegrees*(1-shown)))

	case Flip:
		angle := s.RotationDegrees * (1 - shown)
		n.SetLocalRotation(rotation(orig.Rotation, up, angle))
		fore := math.Abs(math.Cos(mgl64.DegToRad(angle)))
		n.SetLocalScale(mgl64.Vec3{orig.Scale.X() * fore, orig.Scale.Y(), orig.Scale.Z()})

	case Swing:
		angle := (s.RotationDegrees / 2) * math.Sin(v*math.Pi)
		if exiting {
			angle = -angle
		}
		n.SetLocalRotation(rotation(orig.Rotation, s.RotationAxis, angle))

	case Zoom:
		n.SetLocalScale(orig.Scale.Mul(shown))
		n.SetOpacity(shown)

	case Pop:
		n.SetLocalScale(orig.Scale.Mul(popMultiplier(v, exiting)))
	}
}

// popMultiplier ramps to 1 over the first 80% then overshoots to 1.1 and
// eases back. The exit variant plays the same shape in reverse.
func popMultiplier(v float64, exiting bool) float64 {
	if !exiting {
		if v < 0.8 {
			return v / 0.8
		}
		return 1 + 0.1*(1-(v-0.8)/0.2)
	}
	if v > 0.2 {
		return (1 - v) / 0.8
	}
	return 1 + 0.1*(1-v/0.2)
}
