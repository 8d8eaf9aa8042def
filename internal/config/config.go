// Package config handles demo configuration loading and management.
package config

// Config holds all demo settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Mesh       MeshConfig       `yaml:"mesh"`
	Camera     CameraConfig     `yaml:"camera"`
	Projection ProjectionConfig `yaml:"projection"`
	Lighting   LightingConfig   `yaml:"lighting"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string     `yaml:"title"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	Background [3]float32 `yaml:"background"`
}

// MeshConfig holds cylinder tessellation settings.
type MeshConfig struct {
	Sides  int `yaml:"sides"`  // Lines around the circumference
	Stacks int `yaml:"stacks"` // Vertical segments
}

// CameraConfig holds the initial orbit and the per-key step sizes.
// Angles are in degrees.
type CameraConfig struct {
	Azimuth       float32 `yaml:"azimuth"`
	Elevation     float32 `yaml:"elevation"`
	Distance      float32 `yaml:"distance"`
	AngleStep     float32 `yaml:"angle_step"`
	DistanceStep  float32 `yaml:"distance_step"`
	ClampDistance bool    `yaml:"clamp_distance"`
	MinDistance   float32 `yaml:"min_distance"`
}

// ProjectionConfig holds perspective projection settings.
type ProjectionConfig struct {
	FovY float32 `yaml:"fov_y"` // Degrees
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// LightingConfig holds light positions as homogeneous coordinates.
type LightingConfig struct {
	HeadLight  [4]float32 `yaml:"head_light"`  // Camera space
	WorldLight [4]float32 `yaml:"world_light"` // World space
	Shininess  float32    `yaml:"shininess"`
}

// ScreenshotConfig holds PNG output settings.
type ScreenshotConfig struct {
	OutputDir   string `yaml:"output_dir"`
	Prefix      string `yaml:"prefix"`
	Supersample int    `yaml:"supersample"` // Software renderer only
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config matching the reference demo.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Cylinders",
			Width:  500,
			Height: 500,
			VSync:  true,
		},
		Mesh: MeshConfig{
			Sides:  50,
			Stacks: 20,
		},
		Camera: CameraConfig{
			Azimuth:      -30,
			Elevation:    30,
			Distance:     5,
			AngleStep:    5,
			DistanceStep: 0.5,
		},
		Projection: ProjectionConfig{
			FovY: 60,
			Near: 0.01,
			Far:  20,
		},
		Lighting: LightingConfig{
			HeadLight:  [4]float32{0.5, 1, 0, 1},
			WorldLight: [4]float32{0.5, 1, 0, 1},
			Shininess:  30,
		},
		Screenshot: ScreenshotConfig{
			OutputDir:   "screenshots",
			Prefix:      "cylinders",
			Supersample: 2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
