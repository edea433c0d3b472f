package loaders

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidSceneFile is returned for scene files that parse but do not
// describe a usable scene
var ErrInvalidSceneFile = errors.New("invalid scene file")

// SceneFile is the raw content of a TOML scene description. Vectors are
// three-element arrays; optional render settings are pointers so that an
// absent key leaves the caller's default alone.
type SceneFile struct {
	Name        string           `toml:"name"`
	Description string           `toml:"description"`
	Ambient     []float64        `toml:"ambient"`
	Render      RenderSection    `toml:"render"`
	Camera      CameraSection    `toml:"camera"`
	Timeline    *TimelineSection `toml:"timeline"`
	Lights      []LightSection   `toml:"lights"`
	Spheres     []SphereSection  `toml:"spheres"`
}

// RenderSection holds the [render] table
type RenderSection struct {
	SamplesPerPixel *int      `toml:"samples_per_pixel"`
	MaxDepth        *int      `toml:"max_depth"`
	Background      []float64 `toml:"background"`
	Seed            *int64    `toml:"seed"`
	Partition       *string   `toml:"partition"`
	TileSize        *int      `toml:"tile_size"`
	RayEpsilon      *float64  `toml:"ray_epsilon"`
	ShadowEpsilon   *float64  `toml:"shadow_epsilon"`
	MaxDistance     *float64  `toml:"max_distance"`
	RussianRoulette *bool     `toml:"russian_roulette"`
}

// CameraSection holds the [camera] table
type CameraSection struct {
	Center        []float64          `toml:"center"`
	LookAt        []float64          `toml:"look_at"`
	Up            []float64          `toml:"up"`
	Width         int                `toml:"width"`
	Height        int                `toml:"height"`
	VFov          float64            `toml:"vfov"`
	Aperture      float64            `toml:"aperture"`
	FocusDistance float64            `toml:"focus_distance"`
	Animations    []AnimationSection `toml:"animations"`
}

// TimelineSection holds the [timeline] table
type TimelineSection struct {
	Start  float64 `toml:"start"`
	End    float64 `toml:"end"`
	Frames int     `toml:"frames"`
}

// LightSection is one [[lights]] entry. Which position fields apply
// depends on Type: point uses Position, sphere uses Center and Radius,
// quad uses Corner, U and V.
type LightSection struct {
	Type       string             `toml:"type"`
	Intensity  []float64          `toml:"intensity"`
	Samples    int                `toml:"samples"`
	Position   []float64          `toml:"position"`
	Center     []float64          `toml:"center"`
	Radius     float64            `toml:"radius"`
	Corner     []float64          `toml:"corner"`
	U          []float64          `toml:"u"`
	V          []float64          `toml:"v"`
	Animations []AnimationSection `toml:"animations"`
}

// SphereSection is one [[spheres]] entry
type SphereSection struct {
	Center     []float64          `toml:"center"`
	Radius     float64            `toml:"radius"`
	Material   MaterialSection    `toml:"material"`
	Animations []AnimationSection `toml:"animations"`
}

// MaterialSection is the material table nested in a sphere
type MaterialSection struct {
	Type      string    `toml:"type"`
	Albedo    []float64 `toml:"albedo"`
	Fuzz      float64   `toml:"fuzz"`
	IOR       float64   `toml:"ior"`
	Tint      []float64 `toml:"tint"`
	Color     []float64 `toml:"color"`
	Kd        float64   `toml:"kd"`
	Ks        float64   `toml:"ks"`
	Shininess float64   `toml:"shininess"`
	Ka        float64   `toml:"ka"`
}

// AnimationSection is one [[...animations]] entry
type AnimationSection struct {
	Start           float64   `toml:"start"`
	End             float64   `toml:"end"`
	Translation     []float64 `toml:"translation"`
	Scale           float64   `toml:"scale"`
	RotationX       float64   `toml:"rotation_x"`
	RotationCenterX []float64 `toml:"rotation_center_x"`
	RotationY       float64   `toml:"rotation_y"`
	RotationCenterY []float64 `toml:"rotation_center_y"`
	RotationZ       float64   `toml:"rotation_z"`
	RotationCenterZ []float64 `toml:"rotation_center_z"`
}

// ParseScene decodes a TOML scene description. Keys that do not belong to
// the format are reported as errors so typos do not silently fall back to
// defaults.
func ParseScene(data []byte) (*SceneFile, error) {
	var file SceneFile
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("unknown keys %s: %w", strings.Join(keys, ", "), ErrInvalidSceneFile)
	}

	return &file, nil
}

// LoadSceneFile reads and parses a scene file. Scenes without a name are
// named after the file.
func LoadSceneFile(filename string) (*SceneFile, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	file, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	if file.Name == "" {
		file.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return file, nil
}

// IsSceneFile reports whether a -scene argument names a file rather than a
// built-in scene
func IsSceneFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".toml")
}

// ListSceneFiles returns the scene files in dir sorted by path. A missing
// directory yields an empty list.
func ListSceneFiles(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// validateFilePath performs basic validation on a scene file path
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if !IsSceneFile(filepath.Clean(filename)) {
		return fmt.Errorf("invalid file type: only .toml files are allowed")
	}
	if len(filename) > 4096 {
		return fmt.Errorf("file path too long")
	}
	return nil
}
