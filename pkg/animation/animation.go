// Package animation evaluates timed transforms and produces one immutable
// scene snapshot per frame.
package animation

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidAnimation is returned for animations with unusable parameters
var ErrInvalidAnimation = errors.New("invalid animation")

// Animation is a timed translation, scale and rotation of a scene
// component. Rotations are in degrees about their own centres and are
// applied after the translation, in X, Y, Z order.
type Animation struct {
	Start       float64
	End         float64
	Translation core.Vec3
	Scale       float64 // Final size factor; 0 and 1 both leave the size alone

	RotationX       float64
	RotationCenterX core.Vec3
	RotationY       float64
	RotationCenterY core.Vec3
	RotationZ       float64
	RotationCenterZ core.Vec3
}

// NewTranslation moves a component by offset between start and end
func NewTranslation(start, end float64, offset core.Vec3) Animation {
	return Animation{Start: start, End: end, Translation: offset, Scale: 1}
}

// NewScale grows a component by factor between start and end
func NewScale(start, end, factor float64) Animation {
	return Animation{Start: start, End: end, Scale: factor}
}

// NewRotationX turns a component about the x axis through center
func NewRotationX(start, end, degrees float64, center core.Vec3) Animation {
	return Animation{Start: start, End: end, Scale: 1, RotationX: degrees, RotationCenterX: center}
}

// NewRotationY turns a component about the y axis through center
func NewRotationY(start, end, degrees float64, center core.Vec3) Animation {
	return Animation{Start: start, End: end, Scale: 1, RotationY: degrees, RotationCenterY: center}
}

// NewRotationZ turns a component about the z axis through center
func NewRotationZ(start, end, degrees float64, center core.Vec3) Animation {
	return Animation{Start: start, End: end, Scale: 1, RotationZ: degrees, RotationCenterZ: center}
}

// Validate rejects non-finite values and negative scales
func (a Animation) Validate() error {
	values := []float64{a.Start, a.End, a.Scale, a.RotationX, a.RotationY, a.RotationZ}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite value %g: %w", v, ErrInvalidAnimation)
		}
	}
	for _, v := range []core.Vec3{a.Translation, a.RotationCenterX, a.RotationCenterY, a.RotationCenterZ} {
		if !v.IsFinite() {
			return fmt.Errorf("non-finite vector %v: %w", v, ErrInvalidAnimation)
		}
	}
	if a.Scale < 0 {
		return fmt.Errorf("scale %g must not be negative: %w", a.Scale, ErrInvalidAnimation)
	}
	return nil
}

// Progress returns how far the animation has run at time t: 0 up to and
// including Start, 1 from End on, linear in between. An animation whose
// window is inverted never runs.
func (a Animation) Progress(t float64) float64 {
	switch {
	case a.Start > a.End:
		return 0
	case t <= a.Start:
		return 0
	case t >= a.End:
		return 1
	default:
		return (t - a.Start) / (a.End - a.Start)
	}
}

// matrix builds the homogeneous transform after the given progress
func (a Animation) matrix(progress float64) mgl64.Mat4 {
	move := a.Translation.Multiply(progress)
	m := mgl64.Translate3D(move.X, move.Y, move.Z)
	m = rotateAbout(mgl64.HomogRotate3DX(mgl64.DegToRad(a.RotationX*progress)), a.RotationCenterX).Mul4(m)
	m = rotateAbout(mgl64.HomogRotate3DY(mgl64.DegToRad(a.RotationY*progress)), a.RotationCenterY).Mul4(m)
	m = rotateAbout(mgl64.HomogRotate3DZ(mgl64.DegToRad(a.RotationZ*progress)), a.RotationCenterZ).Mul4(m)
	return m
}

// scaleFactor interpolates the size factor from 1 to Scale
func (a Animation) scaleFactor(progress float64) float64 {
	if a.Scale == 0 {
		return 1
	}
	return 1 + (a.Scale-1)*progress
}

func rotateAbout(rotation mgl64.Mat4, center core.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(center.X, center.Y, center.Z).
		Mul4(rotation).
		Mul4(mgl64.Translate3D(-center.X, -center.Y, -center.Z))
}

// Transform is the combined effect of a list of animations at one time
type Transform struct {
	matrix mgl64.Mat4
	scale  float64
}

// Identity leaves every component unchanged
func Identity() Transform {
	return Transform{matrix: mgl64.Ident4(), scale: 1}
}

// Evaluate composes the animations in order at time t. Later animations
// act on the result of earlier ones.
func Evaluate(animations []Animation, t float64) Transform {
	result := Identity()
	for _, a := range animations {
		progress := a.Progress(t)
		if progress == 0 {
			continue
		}
		result.matrix = a.matrix(progress).Mul4(result.matrix)
		result.scale *= a.scaleFactor(progress)
	}
	return result
}

// Point transforms a position
func (tr Transform) Point(p core.Vec3) core.Vec3 {
	v := tr.matrix.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return core.NewVec3(v[0], v[1], v[2])
}

// Direction transforms a vector, ignoring translation
func (tr Transform) Direction(d core.Vec3) core.Vec3 {
	v := tr.matrix.Mul4x1(mgl64.Vec4{d.X, d.Y, d.Z, 0})
	return core.NewVec3(v[0], v[1], v[2])
}

// Scale returns the accumulated size factor
func (tr Transform) Scale() float64 {
	return tr.scale
}
