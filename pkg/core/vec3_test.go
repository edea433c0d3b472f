package core

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Lerp midpoint", a.Lerp(b, 0.5), NewVec3(2.5, -1.5, 4.5)},
		{"Clamp", NewVec3(-1, 0.5, 3).Clamp(0, 1), NewVec3(0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const tolerance = 1e-12
			if tt.got.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0)
	if math.Abs(v.Length()-5) > 1e-12 {
		t.Errorf("Expected length 5, got %f", v.Length())
	}
	if math.Abs(v.LengthSquared()-25) > 1e-12 {
		t.Errorf("Expected squared length 25, got %f", v.LengthSquared())
	}
	if math.Abs(v.Normalize().Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Normalize().Length())
	}

	// The zero vector stays zero instead of producing NaN
	if zero := (Vec3{}).Normalize(); !zero.IsZero() {
		t.Errorf("Expected zero vector, got %v", zero)
	}
}

func TestVec3_CrossIsOrthogonal(t *testing.T) {
	a := NewVec3(3, 4, 0)
	b := NewVec3(-4, 5, 2)
	c := a.Cross(b)

	if math.Abs(c.Dot(a)) > 1e-12 || math.Abs(c.Dot(b)) > 1e-12 {
		t.Errorf("Cross product %v is not orthogonal to its inputs", c)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"finite", NewVec3(1, 2, 3), true},
		{"NaN", NewVec3(math.NaN(), 0, 0), false},
		{"positive infinity", NewVec3(0, math.Inf(1), 0), false},
		{"negative infinity", NewVec3(0, 0, math.Inf(-1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.IsFinite() != tt.expected {
				t.Errorf("IsFinite(%v) = %t, expected %t", tt.v, !tt.expected, tt.expected)
			}
		})
	}
}

func TestVec3_ComponentHelpers(t *testing.T) {
	v := NewVec3(0.2, 0.9, 0.4)
	if v.MaxComponent() != 0.9 {
		t.Errorf("Expected max component 0.9, got %f", v.MaxComponent())
	}
	if v.MinComponent() != 0.2 {
		t.Errorf("Expected min component 0.2, got %f", v.MinComponent())
	}

	white := NewVec3(1, 1, 1)
	if math.Abs(white.Luminance()-1) > 1e-12 {
		t.Errorf("Expected white luminance 1, got %f", white.Luminance())
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 0, -2))

	if math.Abs(ray.Direction.Length()-1) > 1e-12 {
		t.Fatalf("NewRay should normalize the direction, got %v", ray.Direction)
	}
	if ray.TMin != DefaultRayEpsilon || ray.TMax != DefaultMaxDistance {
		t.Errorf("Expected default range, got [%g, %g]", ray.TMin, ray.TMax)
	}

	point := ray.At(3)
	expected := NewVec3(1, 0, -3)
	if point.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, point)
	}
}
