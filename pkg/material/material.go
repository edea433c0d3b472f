package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// ErrInvalidMaterial is returned when a material's parameters are out of range
var ErrInvalidMaterial = errors.New("invalid material")

// Material is the closed set of surface models a sphere can carry:
// Diffuse, Reflective, Refractive and Phong. The set is sealed so the
// integrator can dispatch on it exhaustively with a type switch.
type Material interface {
	// Validate reports parameters that would produce non-physical or NaN output
	Validate() error

	// Name returns a short human readable label for logs
	Name() string

	sealed()
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation applied to the traced result
}

// Diffuse is an ideal Lambertian surface
type Diffuse struct {
	Albedo core.Vec3
}

// Reflective is a mirror. Fuzz in [0,1] perturbs the reflected direction,
// 0 gives a perfect mirror.
type Reflective struct {
	Albedo core.Vec3
	Fuzz   float64
}

// Refractive is a clear dielectric like glass or water
type Refractive struct {
	IOR  float64   // Index of refraction (e.g., 1.5 for glass)
	Tint core.Vec3 // Transmission color; zero means clear
}

// Phong is a local illumination surface: ambient + Lambertian diffuse +
// Phong highlight, with no indirect bounce.
type Phong struct {
	Color     core.Vec3 // Base color for the ambient and diffuse terms
	Kd        float64   // Diffuse coefficient
	Ks        float64   // Specular coefficient
	Shininess float64   // Specular exponent
	Ka        float64   // Ambient coefficient
}

// NewDiffuse creates a new diffuse material
func NewDiffuse(albedo core.Vec3) *Diffuse {
	return &Diffuse{Albedo: albedo}
}

// NewReflective creates a new reflective material
func NewReflective(albedo core.Vec3, fuzz float64) *Reflective {
	return &Reflective{Albedo: albedo, Fuzz: fuzz}
}

// NewRefractive creates a clear refractive material
func NewRefractive(ior float64) *Refractive {
	return &Refractive{IOR: ior, Tint: core.NewVec3(1, 1, 1)}
}

// NewPhong creates a new Phong material
func NewPhong(color core.Vec3, kd, ks, shininess, ka float64) *Phong {
	return &Phong{Color: color, Kd: kd, Ks: ks, Shininess: shininess, Ka: ka}
}

func (*Diffuse) sealed()    {}
func (*Reflective) sealed() {}
func (*Refractive) sealed() {}
func (*Phong) sealed()      {}

func (*Diffuse) Name() string    { return "diffuse" }
func (*Reflective) Name() string { return "reflective" }
func (*Refractive) Name() string { return "refractive" }
func (*Phong) Name() string      { return "phong" }

// Validate checks the albedo is a finite non-negative color
func (d *Diffuse) Validate() error {
	return validateColor("diffuse albedo", d.Albedo)
}

// Validate checks the albedo and that fuzz lies in [0,1]
func (r *Reflective) Validate() error {
	if err := validateColor("reflective albedo", r.Albedo); err != nil {
		return err
	}
	if math.IsNaN(r.Fuzz) || r.Fuzz < 0 || r.Fuzz > 1 {
		return fmt.Errorf("reflective fuzz %g outside [0,1]: %w", r.Fuzz, ErrInvalidMaterial)
	}
	return nil
}

// Validate checks the index of refraction is finite and positive
func (r *Refractive) Validate() error {
	if math.IsNaN(r.IOR) || math.IsInf(r.IOR, 0) || r.IOR <= 0 {
		return fmt.Errorf("refractive index %g must be positive: %w", r.IOR, ErrInvalidMaterial)
	}
	return validateColor("refractive tint", r.Tint)
}

// Validate checks every coefficient is finite and non-negative
func (p *Phong) Validate() error {
	if err := validateColor("phong color", p.Color); err != nil {
		return err
	}
	coefficients := []struct {
		name  string
		value float64
	}{
		{"kd", p.Kd}, {"ks", p.Ks}, {"shininess", p.Shininess}, {"ka", p.Ka},
	}
	for _, c := range coefficients {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) || c.value < 0 {
			return fmt.Errorf("phong %s %g must be non-negative: %w", c.name, c.value, ErrInvalidMaterial)
		}
	}
	return nil
}

func validateColor(name string, c core.Vec3) error {
	if !c.IsFinite() || c.MinComponent() < 0 {
		return fmt.Errorf("%s %v must be finite and non-negative: %w", name, c, ErrInvalidMaterial)
	}
	return nil
}

// Evaluate returns the Lambertian response albedo/π · cos θ for light arriving from toLight
func (d *Diffuse) Evaluate(normal, toLight core.Vec3) core.Vec3 {
	cosine := normal.Dot(toLight)
	if cosine <= 0 {
		return core.Vec3{}
	}
	return d.Albedo.Multiply(cosine / math.Pi)
}

// Scatter samples a cosine-weighted bounce direction. With cosine-weighted
// importance sampling the BRDF, cosine and PDF cancel to the albedo.
func (d *Diffuse) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	direction := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
	if direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   hit.SpawnRay(direction, rayIn.TMin, rayIn.TMax),
		Attenuation: d.Albedo,
	}, true
}

// Scatter reflects the incoming ray, perturbed by fuzz. Rays pushed below
// the surface are absorbed.
func (r *Reflective) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	direction := Reflect(rayIn.Direction.Normalize(), hit.Normal)

	if r.Fuzz > 0 {
		perturbation := core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(r.Fuzz)
		direction = direction.Add(perturbation).Normalize()
	}

	if direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   hit.SpawnRay(direction, rayIn.TMin, rayIn.TMax),
		Attenuation: r.Albedo,
	}, true
}

// Scatter picks reflection or transmission with probability given by
// Schlick's approximation. Total internal reflection always reflects.
func (r *Refractive) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	refractionRatio := r.IOR
	if hit.FrontFace {
		refractionRatio = 1.0 / r.IOR
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)

	direction, ok := Refract(unitDirection, hit.Normal, refractionRatio)
	if !ok || Schlick(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = Reflect(unitDirection, hit.Normal)
	}

	return ScatterResult{
		Scattered:   hit.SpawnRay(direction, rayIn.TMin, rayIn.TMax),
		Attenuation: r.attenuation(),
	}, true
}

func (r *Refractive) attenuation() core.Vec3 {
	if r.Tint.IsZero() {
		return core.NewVec3(1, 1, 1)
	}
	return r.Tint
}

// Ambient returns the ambient term Ka · Color · ambient
func (p *Phong) Ambient(ambient core.Vec3) core.Vec3 {
	return p.Color.MultiplyVec(ambient).Multiply(p.Ka)
}

// Evaluate returns the diffuse and specular response to unit irradiance from
// toLight, seen from toViewer. All directions point away from the surface.
func (p *Phong) Evaluate(normal, toLight, toViewer core.Vec3) core.Vec3 {
	cosine := normal.Dot(toLight)
	if cosine <= 0 {
		return core.Vec3{}
	}

	result := p.Color.Multiply(p.Kd * cosine)

	if p.Ks > 0 {
		reflected := Reflect(toLight.Negate(), normal)
		if rv := reflected.Dot(toViewer); rv > 0 {
			specular := p.Ks * math.Pow(rv, p.Shininess)
			result = result.Add(core.NewVec3(specular, specular, specular))
		}
	}

	return result
}
