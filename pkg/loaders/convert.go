package loaders

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/animation"
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Build converts the file into an animated scene template. Errors name the
// offending entry by section and index.
func (f *SceneFile) Build() (*animation.AnimatedScene, error) {
	ambient, err := optionalVec("ambient", f.Ambient, core.Vec3{})
	if err != nil {
		return nil, err
	}

	camera, err := convertCamera(f.Camera)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	cameraAnimations, err := convertAnimations(f.Camera.Animations)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	template := &animation.AnimatedScene{
		Camera:           camera,
		CameraAnimations: cameraAnimations,
		Ambient:          ambient,
	}

	for i, section := range f.Spheres {
		sphere, err := convertSphere(section)
		if err != nil {
			return nil, fmt.Errorf("spheres[%d]: %w", i, err)
		}
		template.Objects = append(template.Objects, sphere)
	}

	for i, section := range f.Lights {
		light, err := convertLight(section)
		if err != nil {
			return nil, fmt.Errorf("lights[%d]: %w", i, err)
		}
		template.Lights = append(template.Lights, light)
	}

	if err := template.Validate(); err != nil {
		return nil, err
	}
	return template, nil
}

// TimelineOrDefault returns the file's timeline, or a single frame at time
// zero when the file has none
func (f *SceneFile) TimelineOrDefault() animation.Timeline {
	if f.Timeline == nil {
		return animation.SingleFrame()
	}
	return animation.Timeline{Start: f.Timeline.Start, End: f.Timeline.End, Frames: f.Timeline.Frames}
}

// ApplyRender copies the settings present in [render] onto config
func (f *SceneFile) ApplyRender(config *renderer.Config) error {
	r := f.Render
	if r.SamplesPerPixel != nil {
		config.SamplesPerPixel = *r.SamplesPerPixel
	}
	if r.MaxDepth != nil {
		config.MaxDepth = *r.MaxDepth
	}
	if r.Background != nil {
		background, err := vec("render.background", r.Background)
		if err != nil {
			return err
		}
		config.Background = background
	}
	if r.Seed != nil {
		if *r.Seed < 0 {
			return fmt.Errorf("render.seed %d must not be negative: %w", *r.Seed, ErrInvalidSceneFile)
		}
		config.Seed = uint64(*r.Seed)
	}
	if r.Partition != nil {
		config.Partition = renderer.Partition(*r.Partition)
	}
	if r.TileSize != nil {
		config.TileSize = *r.TileSize
	}
	if r.RayEpsilon != nil {
		config.RayEpsilon = *r.RayEpsilon
	}
	if r.ShadowEpsilon != nil {
		config.ShadowEpsilon = *r.ShadowEpsilon
	}
	if r.MaxDistance != nil {
		config.MaxDistance = *r.MaxDistance
	}
	if r.RussianRoulette != nil {
		config.RussianRoulette = *r.RussianRoulette
	}
	return nil
}

func convertCamera(c CameraSection) (geometry.CameraConfig, error) {
	center, err := optionalVec("center", c.Center, core.Vec3{})
	if err != nil {
		return geometry.CameraConfig{}, err
	}
	lookAt, err := optionalVec("look_at", c.LookAt, core.NewVec3(0, 0, -1))
	if err != nil {
		return geometry.CameraConfig{}, err
	}
	up, err := optionalVec("up", c.Up, core.NewVec3(0, 1, 0))
	if err != nil {
		return geometry.CameraConfig{}, err
	}

	config := geometry.CameraConfig{
		Center:        center,
		LookAt:        lookAt,
		Up:            up,
		Width:         c.Width,
		Height:        c.Height,
		VFov:          c.VFov,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
	}
	return config, config.Validate()
}

func convertSphere(s SphereSection) (animation.AnimatedSphere, error) {
	center, err := vec("center", s.Center)
	if err != nil {
		return animation.AnimatedSphere{}, err
	}
	mat, err := convertMaterial(s.Material)
	if err != nil {
		return animation.AnimatedSphere{}, fmt.Errorf("material: %w", err)
	}
	animations, err := convertAnimations(s.Animations)
	if err != nil {
		return animation.AnimatedSphere{}, err
	}

	sphere := geometry.NewSphere(center, s.Radius, mat)
	if err := sphere.Validate(); err != nil {
		return animation.AnimatedSphere{}, err
	}
	return animation.AnimatedSphere{Sphere: *sphere, Animations: animations}, nil
}

func convertMaterial(m MaterialSection) (material.Material, error) {
	var mat material.Material

	switch m.Type {
	case "diffuse", "lambertian":
		albedo, err := vec("albedo", m.Albedo)
		if err != nil {
			return nil, err
		}
		mat = material.NewDiffuse(albedo)
	case "reflective", "metal":
		albedo, err := vec("albedo", m.Albedo)
		if err != nil {
			return nil, err
		}
		mat = material.NewReflective(albedo, m.Fuzz)
	case "refractive", "dielectric":
		refractive := material.NewRefractive(m.IOR)
		if m.Tint != nil {
			tint, err := vec("tint", m.Tint)
			if err != nil {
				return nil, err
			}
			refractive.Tint = tint
		}
		mat = refractive
	case "phong", "hybrid":
		color, err := vec("color", m.Color)
		if err != nil {
			return nil, err
		}
		mat = material.NewPhong(color, m.Kd, m.Ks, m.Shininess, m.Ka)
	default:
		return nil, fmt.Errorf("unknown material type %q: %w", m.Type, material.ErrInvalidMaterial)
	}

	if err := mat.Validate(); err != nil {
		return nil, err
	}
	return mat, nil
}

func convertLight(l LightSection) (animation.AnimatedLight, error) {
	intensity, err := vec("intensity", l.Intensity)
	if err != nil {
		return animation.AnimatedLight{}, err
	}

	var light lights.Light
	switch l.Type {
	case "point":
		position, err := vec("position", l.Position)
		if err != nil {
			return animation.AnimatedLight{}, err
		}
		light = lights.NewPointLight(position, intensity)
	case "sphere":
		center, err := vec("center", l.Center)
		if err != nil {
			return animation.AnimatedLight{}, err
		}
		light = lights.NewSphereLight(center, l.Radius, intensity, samplesOrDefault(l.Samples))
	case "quad":
		corner, err := vec("corner", l.Corner)
		if err != nil {
			return animation.AnimatedLight{}, err
		}
		u, err := vec("u", l.U)
		if err != nil {
			return animation.AnimatedLight{}, err
		}
		v, err := vec("v", l.V)
		if err != nil {
			return animation.AnimatedLight{}, err
		}
		light = lights.NewQuadLight(corner, u, v, intensity, samplesOrDefault(l.Samples))
	default:
		return animation.AnimatedLight{}, fmt.Errorf("unknown light type %q: %w", l.Type, lights.ErrInvalidLight)
	}

	if err := light.Validate(); err != nil {
		return animation.AnimatedLight{}, err
	}

	animations, err := convertAnimations(l.Animations)
	if err != nil {
		return animation.AnimatedLight{}, err
	}
	return animation.AnimatedLight{Light: light, Animations: animations}, nil
}

// samplesOrDefault gives area lights one sample when the file omits the count
func samplesOrDefault(samples int) int {
	if samples == 0 {
		return 1
	}
	return samples
}

func convertAnimations(sections []AnimationSection) ([]animation.Animation, error) {
	var result []animation.Animation
	for i, s := range sections {
		a := animation.Animation{
			Start:     s.Start,
			End:       s.End,
			Scale:     s.Scale,
			RotationX: s.RotationX,
			RotationY: s.RotationY,
			RotationZ: s.RotationZ,
		}

		var err error
		fields := []struct {
			name   string
			values []float64
			target *core.Vec3
		}{
			{"translation", s.Translation, &a.Translation},
			{"rotation_center_x", s.RotationCenterX, &a.RotationCenterX},
			{"rotation_center_y", s.RotationCenterY, &a.RotationCenterY},
			{"rotation_center_z", s.RotationCenterZ, &a.RotationCenterZ},
		}
		for _, field := range fields {
			if *field.target, err = optionalVec(field.name, field.values, core.Vec3{}); err != nil {
				return nil, fmt.Errorf("animations[%d]: %w", i, err)
			}
		}

		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("animations[%d]: %w", i, err)
		}
		result = append(result, a)
	}
	return result, nil
}

// vec converts a required three-element array
func vec(name string, values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%s needs 3 components, got %d: %w", name, len(values), ErrInvalidSceneFile)
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

// optionalVec converts an array that may be absent
func optionalVec(name string, values []float64, fallback core.Vec3) (core.Vec3, error) {
	if values == nil {
		return fallback, nil
	}
	return vec(name, values)
}
