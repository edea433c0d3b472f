package scene

import (
	"sort"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// Builtin describes a scene compiled into the binary together with the
// render settings it looks good at
type Builtin struct {
	Name            string
	Description     string
	SamplesPerPixel int
	MaxDepth        int
	Build           func() (*Scene, error)
}

var builtins = map[string]Builtin{
	"single-sphere": {
		Name:            "single-sphere",
		Description:     "Red diffuse sphere under a point light",
		SamplesPerPixel: 1,
		MaxDepth:        0,
		Build:           NewSingleSphereScene,
	},
	"default": {
		Name:            "default",
		Description:     "One sphere of each material on a ground sphere with soft lights",
		SamplesPerPixel: 64,
		MaxDepth:        8,
		Build:           NewDefaultScene,
	},
	"sphere-room": {
		Name:            "sphere-room",
		Description:     "Phong sphere in a room of huge coloured wall spheres",
		SamplesPerPixel: 32,
		MaxDepth:        4,
		Build:           NewSphereRoomScene,
	},
	"sphere-grid": {
		Name:            "sphere-grid",
		Description:     "Grid of small spheres exercising the BVH",
		SamplesPerPixel: 16,
		MaxDepth:        4,
		Build:           NewSphereGridScene,
	},
}

// Lookup returns the built-in scene registered under name
func Lookup(name string) (Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}

// Builtins lists the built-in scenes sorted by name
func Builtins() []Builtin {
	list := make([]Builtin, 0, len(builtins))
	for _, b := range builtins {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// NewSingleSphereScene is a red diffuse sphere at (0,0,-5) lit from above
// by a white point light, seen from the origin looking down -z
func NewSingleSphereScene() (*Scene, error) {
	camera, err := geometry.NewCamera(geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		Width:  320,
		Height: 240,
		VFov:   40,
	})
	if err != nil {
		return nil, err
	}

	red := material.NewDiffuse(core.NewVec3(0.9, 0.1, 0.1))
	return New(
		camera,
		[]lights.Light{lights.NewPointLight(core.NewVec3(0, 5, -5), core.NewVec3(1, 1, 1).Multiply(60))},
		[]*geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, -5), 1, red)},
		core.Vec3{},
	)
}

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene() (*Scene, error) {
	camera, err := geometry.NewCamera(geometry.CameraConfig{
		Center:   core.NewVec3(0, 0.75, 2),
		LookAt:   core.NewVec3(0, 0.5, -1),
		Up:       core.NewVec3(0, 1, 0),
		Width:    400,
		Height:   225,
		VFov:     40,
		Aperture: 0.02,
	})
	if err != nil {
		return nil, err
	}

	ground := material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.25, 0.2))
	silver := material.NewReflective(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	gold := material.NewReflective(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewRefractive(1.5)
	plastic := material.NewPhong(core.NewVec3(0.1, 0.2, 0.5), 0.8, 0.5, 64, 0.2)

	objects := []*geometry.Sphere{
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, red),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, gold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.2), 0.25, silver),
		geometry.NewSphere(core.NewVec3(-0.5, 0.2, -0.3), 0.2, plastic),
	}

	sceneLights := []lights.Light{
		lights.NewSphereLight(core.NewVec3(2, 4, 1), 0.6, core.NewVec3(15, 14, 13), 8),
		lights.NewQuadLight(core.NewVec3(-2, 3, -2), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(4, 4, 5), 4),
	}

	return New(camera, sceneLights, objects, core.NewVec3(0.05, 0.05, 0.06))
}

// NewSphereRoomScene encloses a Phong sphere in four enormous coloured
// spheres that act as walls, lit by one spherical area light
func NewSphereRoomScene() (*Scene, error) {
	camera, err := geometry.NewCamera(geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 55),
		LookAt: core.NewVec3(0, 0, 54),
		Up:     core.NewVec3(0, 1, 0),
		Width:  500,
		Height: 500,
		VFov:   60,
	})
	if err != nil {
		return nil, err
	}

	objects := []*geometry.Sphere{
		geometry.NewSphere(core.NewVec3(0, 0, 0), 10, material.NewPhong(core.NewVec3(1, 1, 1), 0.9, 0.2, 20, 0.1)),
		geometry.NewSphere(core.NewVec3(0, 1000, 0), 940, material.NewDiffuse(core.NewVec3(1, 0, 0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1000), 940, material.NewDiffuse(core.NewVec3(0, 1, 0))),
		geometry.NewSphere(core.NewVec3(0, 0, 1000), 940, material.NewDiffuse(core.NewVec3(1, 1, 0))),
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 990, material.NewDiffuse(core.NewVec3(0, 0, 1))),
	}

	sceneLights := []lights.Light{
		lights.NewSphereLight(core.NewVec3(-30, 5, 45), 10, core.NewVec3(1, 1, 1).Multiply(15000), 16),
	}

	return New(camera, sceneLights, objects, core.NewVec3(0.1, 0.1, 0.1))
}

// NewSphereGridScene lays out a grid of small spheres with alternating
// materials on a ground sphere
func NewSphereGridScene() (*Scene, error) {
	camera, err := geometry.NewCamera(geometry.CameraConfig{
		Center: core.NewVec3(0, 6, 10),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		Width:  400,
		Height: 300,
		VFov:   45,
	})
	if err != nil {
		return nil, err
	}

	palette := []material.Material{
		material.NewDiffuse(core.NewVec3(0.8, 0.3, 0.3)),
		material.NewReflective(core.NewVec3(0.9, 0.9, 0.9), 0.05),
		material.NewPhong(core.NewVec3(0.2, 0.6, 0.9), 0.8, 0.4, 32, 0.1),
		material.NewRefractive(1.5),
	}

	const gridSize = 8
	objects := []*geometry.Sphere{
		geometry.NewSphere(core.NewVec3(0, -1000.3, 0), 1000, material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5))),
	}
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			center := core.NewVec3(float64(i)-float64(gridSize-1)/2, 0, float64(j)-float64(gridSize-1)/2)
			objects = append(objects, geometry.NewSphere(center, 0.3, palette[(i+j)%len(palette)]))
		}
	}

	sceneLights := []lights.Light{
		lights.NewQuadLight(core.NewVec3(-2, 8, -2), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), core.NewVec3(8, 8, 8), 9),
	}

	return New(camera, sceneLights, objects, core.NewVec3(0.05, 0.05, 0.05))
}
