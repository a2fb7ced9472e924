// Package config loads the globe program's settings from defaults, an optional YAML file, and GLOBE_-prefixed
// environment variables, and can watch the file for changes.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/solarlune/globe/logger"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when loaded settings can't be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every setting of the globe program.
type Config struct {
	Window   WindowConfig   `mapstructure:"window"`
	Textures TextureConfig  `mapstructure:"textures"`
	Rotation RotationConfig `mapstructure:"rotation"`
	Lights   LightConfig    `mapstructure:"lights"`
	Camera   CameraConfig   `mapstructure:"camera"`
	Controls ControlsConfig `mapstructure:"controls"`
	Debug    DebugConfig    `mapstructure:"debug"`

	// WaitForTextures skips frames (no rotation, no rendering) until every texture has finished loading.
	WaitForTextures bool `mapstructure:"wait_for_textures"`
}

type WindowConfig struct {
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	Title     string `mapstructure:"title"`
	Resizable bool   `mapstructure:"resizable"`
}

// TextureConfig holds the texture paths, relative to the texture directory.
type TextureConfig struct {
	Dir    string `mapstructure:"dir"`
	Earth  string `mapstructure:"earth"`
	Bump   string `mapstructure:"bump"`
	Cloud  string `mapstructure:"cloud"`
	Galaxy string `mapstructure:"galaxy"`
}

// RotationConfig holds the Y rotation, in radians, each mesh turns by every frame.
type RotationConfig struct {
	Earth  float64 `mapstructure:"earth"`
	Cloud  float64 `mapstructure:"cloud"`
	Galaxy float64 `mapstructure:"galaxy"`
}

type LightConfig struct {
	AmbientColor     string    `mapstructure:"ambient_color"`
	AmbientIntensity float64   `mapstructure:"ambient_intensity"`
	PointColor       string    `mapstructure:"point_color"`
	PointIntensity   float64   `mapstructure:"point_intensity"`
	PointPosition    []float64 `mapstructure:"point_position"`
}

type CameraConfig struct {
	Fov  float64 `mapstructure:"fov"`
	Near float64 `mapstructure:"near"`
	Far  float64 `mapstructure:"far"`
	// MaxPixelRatio caps the device pixel ratio the renderer uses.
	MaxPixelRatio float64 `mapstructure:"max_pixel_ratio"`
}

type ControlsConfig struct {
	Damping       bool    `mapstructure:"damping"`
	DampingFactor float64 `mapstructure:"damping_factor"`
	MinDistance   float64 `mapstructure:"min_distance"`
	MaxDistance   float64 `mapstructure:"max_distance"`
}

type DebugConfig struct {
	ShowPanel bool   `mapstructure:"show_panel"`
	ExportDir string `mapstructure:"export_dir"`
}

func setDefaults(v *viper.Viper) {

	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 768)
	v.SetDefault("window.title", "Globe")
	v.SetDefault("window.resizable", true)

	v.SetDefault("textures.dir", ".")
	v.SetDefault("textures.earth", "textures/earthMap.jpg")
	v.SetDefault("textures.bump", "textures/mapBump.jpg")
	v.SetDefault("textures.cloud", "textures/cloudMap.png")
	v.SetDefault("textures.galaxy", "textures/galaxyMap.png")

	v.SetDefault("rotation.earth", -0.001)
	v.SetDefault("rotation.cloud", 0.0005)
	v.SetDefault("rotation.galaxy", -0.001)

	v.SetDefault("lights.ambient_color", "#ffffff")
	v.SetDefault("lights.ambient_intensity", 0.2)
	v.SetDefault("lights.point_color", "#ffffff")
	v.SetDefault("lights.point_intensity", 1.0)
	v.SetDefault("lights.point_position", []float64{5, 3, 8})

	v.SetDefault("camera.fov", 75.0)
	v.SetDefault("camera.near", 0.1)
	v.SetDefault("camera.far", 100.0)
	v.SetDefault("camera.max_pixel_ratio", 2.0)

	v.SetDefault("controls.damping", true)
	v.SetDefault("controls.damping_factor", 0.05)
	v.SetDefault("controls.min_distance", 2.0)
	v.SetDefault("controls.max_distance", 4.0)

	v.SetDefault("debug.show_panel", false)
	v.SetDefault("debug.export_dir", ".")

	v.SetDefault("wait_for_textures", false)

}

// Default returns the default settings.
func Default() *Config {
	cfg, err := NewLoader("").decode()
	if err != nil {
		// The defaults are fixed; failing to decode them is a programming error.
		panic(err)
	}
	return cfg
}

// Loader reads the Config and watches its file for changes.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader. If configFile is empty, a file named globe.yaml is searched for in the working
// directory and in $HOME/.globe; not finding one is fine, and the defaults are used.
func NewLoader(configFile string) *Loader {

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("globe")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".globe"))
		}
	}

	v.SetEnvPrefix("GLOBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}

}

// Load reads the config file (if any) and returns the resulting Config.
func (l *Loader) Load() (*Config, error) {

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		logger.Log.Debug("no config file found, using defaults")
	} else {
		logger.Log.WithField("file", l.v.ConfigFileUsed()).Info("config loaded")
	}

	return l.decode()

}

// Watch watches the config file for changes, sending each successfully reloaded Config on the returned channel.
// Updates that arrive while the previous one hasn't been received yet are dropped in favor of the newest.
// Watch does nothing useful if no config file was found by Load.
func (l *Loader) Watch() <-chan *Config {

	updates := make(chan *Config, 1)

	l.v.OnConfigChange(func(event fsnotify.Event) {

		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			return
		}

		cfg, err := l.decode()
		if err != nil {
			logger.Log.WithError(err).WithField("file", event.Name).Warn("ignoring config change")
			return
		}

		logger.Log.WithField("file", event.Name).Info("config reloaded")

		// Replace any update that hasn't been picked up yet.
		select {
		case <-updates:
		default:
		}
		updates <- cfg

	})

	l.v.WatchConfig()

	return updates

}

func (l *Loader) decode() (*Config, error) {

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil

}

// Validate returns an error wrapping ErrInvalidConfig if any setting is out of range.
func (cfg *Config) Validate() error {

	var errs []error

	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", cfg.Window.Width, cfg.Window.Height))
	}

	for name, rate := range map[string]float64{"earth": cfg.Rotation.Earth, "cloud": cfg.Rotation.Cloud, "galaxy": cfg.Rotation.Galaxy} {
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			errs = append(errs, fmt.Errorf("rotation.%s must be finite", name))
		}
	}

	if len(cfg.Lights.PointPosition) != 3 {
		errs = append(errs, fmt.Errorf("lights.point_position must have 3 components, not %d", len(cfg.Lights.PointPosition)))
	}

	if cfg.Lights.AmbientIntensity < 0 || cfg.Lights.PointIntensity < 0 {
		errs = append(errs, errors.New("light intensities can't be negative"))
	}

	if cfg.Camera.Fov <= 0 || cfg.Camera.Fov >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov %v must be between 0 and 180", cfg.Camera.Fov))
	}

	if cfg.Camera.Near <= 0 || cfg.Camera.Far <= cfg.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clipping planes %v / %v must satisfy 0 < near < far", cfg.Camera.Near, cfg.Camera.Far))
	}

	if cfg.Camera.MaxPixelRatio <= 0 {
		errs = append(errs, errors.New("camera.max_pixel_ratio must be positive"))
	}

	if cfg.Controls.MinDistance <= 0 || cfg.Controls.MaxDistance < cfg.Controls.MinDistance {
		errs = append(errs, fmt.Errorf("controls distance range [%v, %v] is invalid", cfg.Controls.MinDistance, cfg.Controls.MaxDistance))
	}

	if cfg.Controls.DampingFactor <= 0 || cfg.Controls.DampingFactor > 1 {
		errs = append(errs, fmt.Errorf("controls.damping_factor %v must be in (0, 1]", cfg.Controls.DampingFactor))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil

}
