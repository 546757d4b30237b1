// Package easing maps normalized progress in [0,1] to eased progress.
//
// The standard curves delegate to gween's ease package. Results are not
// bounded to [0,1]: elastic and overshoot curves pass the target.
package easing

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Func maps normalized progress to eased progress.
type Func func(t float64) float64

// FromTween adapts a gween ease function evaluated over a unit range.
func FromTween(fn ease.TweenFunc) Func {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// Tween adapts f to gween's signature so it can drive a gween.Tween.
func (f Func) Tween() ease.TweenFunc {
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		return b + c*float32(f(float64(t/d)))
	}
}

// Linear returns t.
func Linear(t float64) float64 { return t }

// QuadOut decelerates: -t(t-2).
func QuadOut(t float64) float64 { return FromTween(ease.OutQuad)(t) }

// BounceOut is the standard four-segment bounce.
func BounceOut(t float64) float64 { return FromTween(ease.OutBounce)(t) }

// ElasticOut oscillates past 1 with period 0.3. It is exact at 0 and 1.
func ElasticOut(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	return FromTween(ease.OutElastic)(t)
}

// SwingOut is 0.5 - 0.5cos(tπ).
func SwingOut(t float64) float64 { return FromTween(ease.InOutSine)(t) }

// PopOut is a cubic ease-in to 0.5 followed by a cubic ease-out.
func PopOut(t float64) float64 { return FromTween(ease.InOutCubic)(t) }

// SlideOvershoot rises as (1+amount)*(t/p)^0.7, peaking at 1+amount at point
// p, then settles onto 1 with a decaying oscillation. Both branches meet at p.
// It is exact at 1.
func SlideOvershoot(t, point, amount float64) float64 {
	if t >= 1 {
		return 1
	}
	if point < 0 {
		point = 0
	}
	if t < point {
		return (1 + amount) * math.Pow(t/point, 0.7)
	}
	if point >= 1 {
		return 1 + amount
	}
	phase := (t - point) / (1 - point)
	return 1 + amount*math.Exp(-3*phase)*math.Cos(18*phase)
}

// SmoothStep is the Hermite interpolation between edge0 and edge1.
func SmoothStep(edge0, edge1, t float64) float64 {
	if edge1 == edge0 {
		if t < edge0 {
			return 0
		}
		return 1
	}
	x := Clamp01((t - edge0) / (edge1 - edge0))
	return x * x * (3 - 2*x)
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp interpolates from a to b without clamping t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
