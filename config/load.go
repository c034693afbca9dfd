package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lixenwraith/liveterm/logx"
	"github.com/lixenwraith/liveterm/style"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. LIVETERM_LISTENER_ESCAPE_HITS
const EnvPrefix = "LIVETERM"

// Load reads configuration from path. An empty path uses DefaultPath and
// tolerates a missing file; an explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(configType(path))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listener.escape_hits", cfg.Listener.EscapeHits)
	v.SetDefault("listener.read_size", cfg.Listener.ReadSize)
	v.SetDefault("listener.mouse", cfg.Listener.Mouse)
	v.SetDefault("writer.poll_interval", cfg.Writer.PollInterval)
	v.SetDefault("editor.tab_width", cfg.Editor.TabWidth)
	v.SetDefault("editor.status_line", cfg.Editor.StatusLine)
	v.SetDefault("plot.steps", cfg.Plot.Steps)
	v.SetDefault("plot.domain", cfg.Plot.Domain)
	v.SetDefault("plot.output", cfg.Plot.Output)
	v.SetDefault("style.color_mode", cfg.Style.ColorMode)
	v.SetDefault("audio.enabled", cfg.Audio.Enabled)
	v.SetDefault("audio.volume", cfg.Audio.Volume)
	v.SetDefault("spring.escape_hits", cfg.Spring.EscapeHits)
	v.SetDefault("spring.mass", cfg.Spring.Mass)
	v.SetDefault("spring.stiffness", cfg.Spring.Stiffness)
	v.SetDefault("spring.damping", cfg.Spring.Damping)
	v.SetDefault("spring.block_color", cfg.Spring.BlockColor)
	v.SetDefault("spring.background_color", cfg.Spring.BackgroundColor)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.level", cfg.Log.Level)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	} else if explicit || !os.IsNotExist(err) {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// Validate rejects values the session cannot run with
func Validate(cfg Config) error {
	switch {
	case cfg.Listener.EscapeHits < 1:
		return errors.Errorf("listener.escape_hits must be at least 1, got %d", cfg.Listener.EscapeHits)
	case cfg.Listener.ReadSize < 6:
		return errors.Errorf("listener.read_size must hold a mouse report (6 bytes), got %d", cfg.Listener.ReadSize)
	case cfg.Writer.PollInterval <= 0:
		return errors.Errorf("writer.poll_interval must be positive, got %s", cfg.Writer.PollInterval)
	case cfg.Editor.TabWidth < 1:
		return errors.Errorf("editor.tab_width must be at least 1, got %d", cfg.Editor.TabWidth)
	case cfg.Plot.Steps < 2:
		return errors.Errorf("plot.steps must be at least 2, got %d", cfg.Plot.Steps)
	case cfg.Audio.Volume < 0 || cfg.Audio.Volume > 1:
		return errors.Errorf("audio.volume must be within [0, 1], got %g", cfg.Audio.Volume)
	case cfg.Spring.EscapeHits < 1:
		return errors.Errorf("spring.escape_hits must be at least 1, got %d", cfg.Spring.EscapeHits)
	case cfg.Spring.Mass <= 0 || cfg.Spring.Stiffness <= 0:
		return errors.Errorf("spring.mass and spring.stiffness must be positive, got %g and %g", cfg.Spring.Mass, cfg.Spring.Stiffness)
	case cfg.Spring.Damping < 0:
		return errors.Errorf("spring.damping must not be negative, got %g", cfg.Spring.Damping)
	case !logx.ValidLevel(cfg.Log.Level):
		return errors.Errorf("unsupported log.level %q", cfg.Log.Level)
	}
	if _, err := style.ParseMode(cfg.Style.ColorMode); err != nil {
		return errors.Wrap(err, "style.color_mode")
	}
	if _, err := style.Parse(cfg.Spring.BlockColor); err != nil {
		return errors.Wrap(err, "spring.block_color")
	}
	if _, err := style.Parse(cfg.Spring.BackgroundColor); err != nil {
		return errors.Wrap(err, "spring.background_color")
	}
	return nil
}

// ColorMode resolves style.color_mode, detecting from the environment for "auto"
func (c Config) ColorMode() style.ColorMode {
	m, err := style.ParseMode(c.Style.ColorMode)
	if err != nil {
		return style.DetectColorMode()
	}
	return m
}
