package animation

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// AnimatedSphere is a sphere template plus the animations that move it
type AnimatedSphere struct {
	Sphere     geometry.Sphere
	Animations []Animation
}

// At returns a new sphere placed for time t
func (as AnimatedSphere) At(t float64) *geometry.Sphere {
	tr := Evaluate(as.Animations, t)
	return geometry.NewSphere(tr.Point(as.Sphere.Center), as.Sphere.Radius*tr.Scale(), as.Sphere.Material)
}

// AnimatedLight is a light template plus the animations that move it
type AnimatedLight struct {
	Light      lights.Light
	Animations []Animation
}

// At returns a new light placed for time t. Lights of a type the
// animation package does not know are returned unchanged when they have
// no animations.
func (al AnimatedLight) At(t float64) (lights.Light, error) {
	tr := Evaluate(al.Animations, t)

	switch l := al.Light.(type) {
	case *lights.PointLight:
		return lights.NewPointLight(tr.Point(l.Position), l.Emission), nil
	case *lights.SphereLight:
		return lights.NewSphereLight(tr.Point(l.Center), l.Radius*tr.Scale(), l.Emission, l.Samples), nil
	case *lights.QuadLight:
		// Scale about the middle of the rectangle, as spheres scale about theirs
		u := tr.Direction(l.U).Multiply(tr.Scale())
		v := tr.Direction(l.V).Multiply(tr.Scale())
		corner := tr.Point(l.Center()).Subtract(u.Add(v).Multiply(0.5))
		return lights.NewQuadLight(corner, u, v, l.Emission, l.Samples), nil
	default:
		if len(al.Animations) == 0 {
			return al.Light, nil
		}
		return nil, fmt.Errorf("cannot animate light of type %T: %w", al.Light, lights.ErrInvalidLight)
	}
}

// AnimatedScene is the template every frame's scene is built from. It is
// never modified by At, so frames can be produced in any order.
type AnimatedScene struct {
	Camera           geometry.CameraConfig
	CameraAnimations []Animation
	Ambient          core.Vec3
	Objects          []AnimatedSphere
	Lights           []AnimatedLight
}

// Static wraps a finished scene as a template without animations
func Static(sc *scene.Scene) *AnimatedScene {
	as := &AnimatedScene{
		Camera:  sc.Camera.Config(),
		Ambient: sc.Ambient,
		Objects: make([]AnimatedSphere, len(sc.Objects)),
		Lights:  make([]AnimatedLight, len(sc.Lights)),
	}
	for i, obj := range sc.Objects {
		as.Objects[i] = AnimatedSphere{Sphere: *obj}
	}
	for i, light := range sc.Lights {
		as.Lights[i] = AnimatedLight{Light: light}
	}
	return as
}

// Validate checks every animation in the template
func (as *AnimatedScene) Validate() error {
	for i, a := range as.CameraAnimations {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("camera animation %d: %w", i, err)
		}
	}
	for i, obj := range as.Objects {
		for j, a := range obj.Animations {
			if err := a.Validate(); err != nil {
				return fmt.Errorf("sphere %d animation %d: %w", i, j, err)
			}
		}
	}
	for i, light := range as.Lights {
		for j, a := range light.Animations {
			if err := a.Validate(); err != nil {
				return fmt.Errorf("light %d animation %d: %w", i, j, err)
			}
		}
	}
	return nil
}

// Animated reports whether anything in the scene moves
func (as *AnimatedScene) Animated() bool {
	if len(as.CameraAnimations) > 0 {
		return true
	}
	for _, obj := range as.Objects {
		if len(obj.Animations) > 0 {
			return true
		}
	}
	for _, light := range as.Lights {
		if len(light.Animations) > 0 {
			return true
		}
	}
	return false
}

// At builds the immutable scene snapshot for time t. Camera animations
// move the eye and the look-at point together and turn the up vector;
// scaling does not apply to the camera.
func (as *AnimatedScene) At(t float64) (*scene.Scene, error) {
	tr := Evaluate(as.CameraAnimations, t)
	config := as.Camera
	config.Center = tr.Point(as.Camera.Center)
	config.LookAt = tr.Point(as.Camera.LookAt)
	config.Up = tr.Direction(as.Camera.Up)

	camera, err := geometry.NewCamera(config)
	if err != nil {
		return nil, fmt.Errorf("camera at t=%g: %w", t, err)
	}

	objects := make([]*geometry.Sphere, len(as.Objects))
	for i, obj := range as.Objects {
		objects[i] = obj.At(t)
	}

	sceneLights := make([]lights.Light, len(as.Lights))
	for i, al := range as.Lights {
		light, err := al.At(t)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		sceneLights[i] = light
	}

	sc, err := scene.New(camera, sceneLights, objects, as.Ambient)
	if err != nil {
		return nil, fmt.Errorf("scene at t=%g: %w", t, err)
	}
	return sc, nil
}
