package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config collects every tunable of the pipeline. All heuristic constants
// (threshold, kernel, bands, density cutoff) live here with defaults equal
// to the values the pipeline was originally tuned with, so a catalog can
// override them without touching the algorithm.
type Config struct {
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Segmenter SegmenterConfig `mapstructure:"segmenter"`
	Cleaner   CleanerConfig   `mapstructure:"cleaner"`
	Bands     BandsConfig     `mapstructure:"bands"`
	Filter    FilterConfig    `mapstructure:"filter"`
	Server    ServerConfig    `mapstructure:"server"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
	Notify    NotifyConfig    `mapstructure:"notify"`
}

type CatalogConfig struct {
	// Dir holds the source images, one "{style}-{detail}.png" per template.
	Dir string `mapstructure:"dir"`
	// MasksSubdir is created under Dir for the artifacts.
	MasksSubdir string           `mapstructure:"masks_subdir"`
	Templates   []TemplateConfig `mapstructure:"templates"`
}

// TemplateConfig is one catalog entry. Threshold and KernelSize override the
// pipeline-wide values when non-zero.
type TemplateConfig struct {
	Style      string `mapstructure:"style"`
	Detail     string `mapstructure:"detail"`
	Threshold  int    `mapstructure:"threshold"`
	KernelSize int    `mapstructure:"kernel_size"`
}

type SegmenterConfig struct {
	// Threshold is the near-white luminance cutoff; pixels strictly below
	// it are garment. Lower admits more pixels as foreground.
	Threshold int `mapstructure:"threshold"`
	// Adaptive derives the cutoff from the dominant backdrop color
	// instead of using Threshold directly.
	Adaptive bool `mapstructure:"adaptive"`
	// AdaptiveMargin is subtracted from the backdrop luminance when
	// Adaptive is on.
	AdaptiveMargin int `mapstructure:"adaptive_margin"`
}

type CleanerConfig struct {
	// KernelSize is the square structuring element edge for the
	// closing/opening cleanup. Larger cleans harder, erodes fine detail.
	KernelSize int `mapstructure:"kernel_size"`
}

// BandsConfig fixes the fractional-height split. TopBottomSplit separates
// the outer and lower garment so the two bands tile the image; the collar
// band sits inside the top band by design.
type BandsConfig struct {
	TopBottomSplit float64 `mapstructure:"top_bottom_split"`
	CollarFrom     float64 `mapstructure:"collar_from"`
	CollarTo       float64 `mapstructure:"collar_to"`
}

type FilterConfig struct {
	// BaseLayerMinDensity is the foreground fraction under which a
	// baseLayer mask is dropped as noise.
	BaseLayerMinDensity float64 `mapstructure:"base_layer_min_density"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type ScheduleConfig struct {
	// Spec is a cron expression for periodic batch re-runs in serve mode.
	// Empty disables scheduling.
	Spec string `mapstructure:"spec"`
}

type NotifyConfig struct {
	// WebhookURL receives the JSON batch report after every run. Empty
	// disables notification.
	WebhookURL string        `mapstructure:"webhook_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Load reads a YAML config file on top of the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// New loads config.yaml from the working directory, falling back to the
// defaults when the file is absent.
func New() *Config {
	cfg, err := Load("config.yaml")
	if err != nil {
		return Default()
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog.dir", "./catalog")
	v.SetDefault("catalog.masks_subdir", "masks")

	v.SetDefault("segmenter.threshold", 230)
	v.SetDefault("segmenter.adaptive", false)
	v.SetDefault("segmenter.adaptive_margin", 20)

	v.SetDefault("cleaner.kernel_size", 5)

	v.SetDefault("bands.top_bottom_split", 0.45)
	v.SetDefault("bands.collar_from", 0.05)
	v.SetDefault("bands.collar_to", 0.35)

	v.SetDefault("filter.base_layer_min_density", 0.01)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("schedule.spec", "")

	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.timeout", 10*time.Second)
}

// Default returns the built-in configuration, including the original
// four-template catalog.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Dir:         "./catalog",
			MasksSubdir: "masks",
			Templates: []TemplateConfig{
				{Style: "startup", Detail: "hoodie"},
				{Style: "startup", Detail: "polo"},
				{Style: "startup", Detail: "button_down"},
				{Style: "business", Detail: "casual"},
			},
		},
		Segmenter: SegmenterConfig{
			Threshold:      230,
			Adaptive:       false,
			AdaptiveMargin: 20,
		},
		Cleaner: CleanerConfig{
			KernelSize: 5,
		},
		Bands: BandsConfig{
			TopBottomSplit: 0.45,
			CollarFrom:     0.05,
			CollarTo:       0.35,
		},
		Filter: FilterConfig{
			BaseLayerMinDensity: 0.01,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			Mode:         "debug",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Notify: NotifyConfig{
			Timeout: 10 * time.Second,
		},
	}
}
