package lightlab

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type CameraConfig struct {
	Fov      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
}

type OrbitConfig struct {
	RotateSpeed float32 `yaml:"rotate_speed"`
	ZoomSpeed   float32 `yaml:"zoom_speed"`
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
	Damping     float32 `yaml:"damping"`
}

// HeadlessConfig renders Frames frames into OutDir as PNGs instead of
// opening a window.
type HeadlessConfig struct {
	Enabled bool   `yaml:"enabled"`
	Frames  int    `yaml:"frames"`
	OutDir  string `yaml:"out_dir"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
}

type Config struct {
	Window       WindowConfig   `yaml:"window"`
	Debug        bool           `yaml:"debug"`
	Camera       CameraConfig   `yaml:"camera"`
	Orbit        OrbitConfig    `yaml:"orbit"`
	Selection    string         `yaml:"selection"`
	PanelScale   float32        `yaml:"panel_scale"`
	FontPath     string         `yaml:"font_path"`
	FontSize     float64        `yaml:"font_size"`
	ProfileEvery int            `yaml:"profile_every"`
	Headless     HeadlessConfig `yaml:"headless"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "lightlab"},
		Camera: CameraConfig{Fov: 75, Near: 0.1, Far: 1000, Position: [3]float32{0, 5, 10}},
		Orbit: OrbitConfig{
			RotateSpeed: 1,
			ZoomSpeed:   1,
			MinDistance: 1,
			MaxDistance: 200,
		},
		Selection:    string(SelectAll),
		PanelScale:   1,
		FontSize:     16,
		ProfileEvery: 300,
		Headless: HeadlessConfig{
			Frames: 1,
			OutDir: "frames",
			Width:  640,
			Height: 360,
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Keys missing from the
// file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

var ErrInvalidConfig = errors.New("invalid config")

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height))
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		errs = append(errs, fmt.Errorf("%w: camera fov %v", ErrInvalidConfig, c.Camera.Fov))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("%w: camera clip range %v..%v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far))
	}
	if c.Orbit.MinDistance < 0 || c.Orbit.MaxDistance < c.Orbit.MinDistance {
		errs = append(errs, fmt.Errorf("%w: orbit distance %v..%v", ErrInvalidConfig, c.Orbit.MinDistance, c.Orbit.MaxDistance))
	}
	if c.Orbit.Damping < 0 || c.Orbit.Damping >= 1 {
		errs = append(errs, fmt.Errorf("%w: orbit damping %v", ErrInvalidConfig, c.Orbit.Damping))
	}
	if _, err := ParseSelection(c.Selection); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}
	if c.Headless.Enabled && (c.Headless.Width <= 0 || c.Headless.Height <= 0 || c.Headless.Frames <= 0) {
		errs = append(errs, fmt.Errorf("%w: headless %dx%d x%d frames", ErrInvalidConfig,
			c.Headless.Width, c.Headless.Height, c.Headless.Frames))
	}
	return errors.Join(errs...)
}

// CameraDef turns the camera section into the scene's camera description.
func (c Config) CameraDef() CameraDef {
	return CameraDef{
		Fov:      c.Camera.Fov,
		Near:     c.Camera.Near,
		Far:      c.Camera.Far,
		Position: mgl32.Vec3(c.Camera.Position),
	}
}

func (c Config) OrbitControls() OrbitControls {
	o := NewOrbitControls(mgl32.Vec3{})
	o.RotateSpeed = c.Orbit.RotateSpeed
	o.ZoomSpeed = c.Orbit.ZoomSpeed
	o.MinDistance = c.Orbit.MinDistance
	o.MaxDistance = c.Orbit.MaxDistance
	o.DampingFactor = c.Orbit.Damping
	return o
}
