package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the top-level liveterm configuration
type Config struct {
	Listener ListenerConfig `mapstructure:"listener" yaml:"listener"`
	Writer   WriterConfig   `mapstructure:"writer" yaml:"writer"`
	Editor   EditorConfig   `mapstructure:"editor" yaml:"editor"`
	Plot     PlotConfig     `mapstructure:"plot" yaml:"plot"`
	Style    StyleConfig    `mapstructure:"style" yaml:"style"`
	Audio    AudioConfig    `mapstructure:"audio" yaml:"audio"`
	Spring   SpringConfig   `mapstructure:"spring" yaml:"spring"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// ListenerConfig controls the input activity
type ListenerConfig struct {
	EscapeHits int  `mapstructure:"escape_hits" yaml:"escape_hits"`
	ReadSize   int  `mapstructure:"read_size" yaml:"read_size"`
	Mouse      bool `mapstructure:"mouse" yaml:"mouse"`
}

// WriterConfig controls the render activity
type WriterConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
}

// EditorConfig controls the text editor
type EditorConfig struct {
	TabWidth   int  `mapstructure:"tab_width" yaml:"tab_width"`
	StatusLine bool `mapstructure:"status_line" yaml:"status_line"`
}

// PlotConfig seeds the plot editor
type PlotConfig struct {
	Steps  int    `mapstructure:"steps" yaml:"steps"`
	Domain string `mapstructure:"domain" yaml:"domain"`
	Output string `mapstructure:"output" yaml:"output"`
}

// StyleConfig selects the SGR color encoding
type StyleConfig struct {
	ColorMode string `mapstructure:"color_mode" yaml:"color_mode"`
}

// AudioConfig controls audible feedback
type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled" yaml:"enabled"`
	Volume  float64 `mapstructure:"volume" yaml:"volume"`
}

// SpringConfig tunes the spring toy
type SpringConfig struct {
	EscapeHits      int     `mapstructure:"escape_hits" yaml:"escape_hits"`
	Mass            float64 `mapstructure:"mass" yaml:"mass"`
	Stiffness       float64 `mapstructure:"stiffness" yaml:"stiffness"`
	Damping         float64 `mapstructure:"damping" yaml:"damping"`
	BlockColor      string  `mapstructure:"block_color" yaml:"block_color"`
	BackgroundColor string  `mapstructure:"background_color" yaml:"background_color"`
}

// LogConfig selects the log destination
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Listener: ListenerConfig{EscapeHits: 3, ReadSize: 20, Mouse: true},
		Writer:   WriterConfig{PollInterval: 10 * time.Millisecond},
		Editor:   EditorConfig{TabWidth: 4, StatusLine: true},
		Plot:     PlotConfig{Steps: 1000, Domain: "-1, 1"},
		Style:    StyleConfig{ColorMode: "auto"},
		Audio:    AudioConfig{Enabled: false, Volume: 0.5},
		Spring: SpringConfig{
			EscapeHits:      1,
			Mass:            1,
			Stiffness:       100,
			Damping:         0.01,
			BlockColor:      "gainsboro",
			BackgroundColor: "navy",
		},
		Log:      LogConfig{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/liveterm/config.yaml or the platform equivalent
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "locate config dir")
	}
	return filepath.Join(dir, "liveterm", "config.yaml"), nil
}

// Marshal renders cfg as YAML
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "marshal config")
	}
	return data, nil
}
