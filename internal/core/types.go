// Package core defines the domain models shared by the animation and playback engine.
package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is the animatable state of a visual element.
type Transform struct {
	Alpha    float64
	Scale    mgl64.Vec3
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Identity returns an opaque, unit-scale transform at the origin.
func Identity() Transform {
	return Transform{
		Alpha:    1,
		Scale:    mgl64.Vec3{1, 1, 1},
		Rotation: mgl64.QuatIdent(),
	}
}

// ApproxEqual reports whether two transforms match within 1e-6.
func (t Transform) ApproxEqual(o Transform) bool {
	return t.ApproxEqualThreshold(o, 1e-6)
}

// ApproxEqualThreshold reports whether every component differs by at most eps.
func (t Transform) ApproxEqualThreshold(o Transform, eps float64) bool {
	if math.Abs(t.Alpha-o.Alpha) > eps || math.Abs(t.Rotation.W-o.Rotation.W) > eps {
		return false
	}
	for i := 0; i < 3; i++ {
		if math.Abs(t.Scale[i]-o.Scale[i]) > eps ||
			math.Abs(t.Position[i]-o.Position[i]) > eps ||
			math.Abs(t.Rotation.V[i]-o.Rotation.V[i]) > eps {
			return false
		}
	}
	return true
}

// Node is the rendering collaborator an animation writes into.
type Node interface {
	SetOpacity(v float64)
	SetLocalScale(v mgl64.Vec3)
	SetLocalPosition(v mgl64.Vec3)
	SetLocalRotation(q mgl64.Quat)
	// Snapshot returns the transform captured when the node was created.
	Snapshot() Transform
}

// Toggler is implemented by nodes that can be shown and hidden.
type Toggler interface {
	SetVisible(visible bool)
}

// Element is an in-memory Node. Renderers read Current each frame.
type Element struct {
	Name     string
	original Transform
	current  Transform
	visible  bool
}

// NewElement creates a visible element whose original snapshot is t.
func NewElement(name string, t Transform) *Element {
	return &Element{Name: name, original: t, current: t, visible: true}
}

func (e *Element) SetOpacity(v float64)          { e.current.Alpha = v }
func (e *Element) SetLocalScale(v mgl64.Vec3)    { e.current.Scale = v }
func (e *Element) SetLocalPosition(v mgl64.Vec3) { e.current.Position = v }
func (e *Element) SetLocalRotation(q mgl64.Quat) { e.current.Rotation = q }
func (e *Element) SetVisible(visible bool)       { e.visible = visible }

// Snapshot returns the original transform.
func (e *Element) Snapshot() Transform { return e.original }

// Current returns the transform as last written.
func (e *Element) Current() Transform { return e.current }

// Visible reports whether the element should be drawn.
func (e *Element) Visible() bool { return e.visible }

// Reset restores the original snapshot.
func (e *Element) Reset() { e.current = e.original }
