package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"termfm/internal/errors"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines the start directory, listing display, event timing, the file
// opener, logging and colours.
type Config struct {
	Directories struct {
		Default string `yaml:"default"` // Directory the browser starts in
	} `yaml:"directories"`
	Display struct {
		ShowHidden   bool     `yaml:"show_hidden"`   // List dotfiles
		Hide         []string `yaml:"hide"`          // Glob patterns left out of the listing
		PreviewLines int      `yaml:"preview_lines"` // Lines shown in the preview pane
	} `yaml:"display"`
	Events struct {
		TickMS int  `yaml:"tick_ms"` // Refresh tick in milliseconds
		Watch  bool `yaml:"watch"`   // Refresh the listing on filesystem events
	} `yaml:"events"`
	Open struct {
		Command string `yaml:"command"` // Program that opens files
	} `yaml:"open"`
	Log struct {
		File  string `yaml:"file"`  // Log file; empty means the cache directory
		Level string `yaml:"level"` // debug, info, warn or error
		JSON  bool   `yaml:"json"`  // JSON lines instead of key=value
	} `yaml:"log"`
	Theme struct {
		Name      string `yaml:"name"`      // Theme name (default, dark, light, monochrome)
		Listing   string `yaml:"listing"`   // Listing border
		Directory string `yaml:"directory"` // Directory names
		Highlight string `yaml:"highlight"` // Selected row background
		Preview   string `yaml:"preview"`   // Preview border
		Info      string `yaml:"info"`      // Info border
		Error     string `yaml:"error"`     // Error banner
	} `yaml:"theme"`
}

// Env holds the TERMFM_* environment overrides.
type Env struct {
	Debug    bool   `envconfig:"DEBUG"`
	LogFile  string `envconfig:"LOG_FILE"`
	StartDir string `envconfig:"START_DIR"`
	Opener   string `envconfig:"OPENER"`
}

// DefaultPath returns $XDG_CONFIG_HOME/termfm/config.yaml, falling back to
// ~/.config/termfm/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.NewConfigError("cannot locate config directory", "", errors.ConfigNotFound, err)
	}
	return filepath.Join(dir, "termfm", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// A named theme sets the colours first so explicit colours in the file
	// still win. Keys missing from the file keep their defaults.
	var probe struct {
		Theme struct {
			Name string `yaml:"name"`
		} `yaml:"theme"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	if probe.Theme.Name != "" {
		cfg.ApplyTheme(probe.Theme.Name)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv reads the TERMFM_* variables.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("termfm", &env); err != nil {
		return env, errors.NewConfigError("invalid environment", "TERMFM_*", errors.InvalidConfig, err)
	}
	return env, nil
}

// ApplyEnv overrides cfg with whatever env sets.
func (c *Config) ApplyEnv(env Env) {
	if env.Debug {
		c.Log.Level = "debug"
	}
	if env.LogFile != "" {
		c.Log.File = env.LogFile
	}
	if env.StartDir != "" {
		c.Directories.Default = env.StartDir
	}
	if env.Opener != "" {
		c.Open.Command = env.Opener
	}
}

func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Directories.Default = "" // Working directory

	cfg.Display.ShowHidden = true
	cfg.Display.Hide = []string{}
	cfg.Display.PreviewLines = 10

	cfg.Events.TickMS = 200
	cfg.Events.Watch = true

	cfg.Open.Command = "xdg-open"

	cfg.Log.Level = "info"

	cfg.ApplyTheme("default")
	return cfg
}

// New returns the default configuration.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}
	if c.Events.TickMS <= 0 {
		return errors.NewConfigError("tick must be positive", "events.tick_ms", errors.InvalidConfig, nil)
	}
	if c.Display.PreviewLines <= 0 {
		return errors.NewConfigError("preview lines must be positive", "display.preview_lines", errors.InvalidConfig, nil)
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return errors.NewConfigError("unknown log level "+c.Log.Level, "log.level", errors.InvalidConfig, nil)
	}
	if strings.TrimSpace(c.Open.Command) == "" {
		return errors.NewConfigError("opener is required", "open.command", errors.InvalidConfig, nil)
	}
	for i, p := range c.Display.Hide {
		if p == "" {
			return errors.NewConfigError("empty hide pattern", "display.hide["+strconv.Itoa(i)+"]", errors.InvalidConfig, nil)
		}
	}
	if c.Directories.Default != "" {
		info, err := os.Stat(c.Directories.Default)
		if err != nil {
			return errors.NewConfigError("cannot access default directory", "directories.default", errors.InvalidConfig, err)
		}
		if !info.IsDir() {
			return errors.NewConfigError("default directory is not a directory", "directories.default", errors.InvalidConfig, nil)
		}
	}
	return nil
}

var themes = map[string]map[string]string{
	"default": {
		"listing":   "3",  // Yellow
		"directory": "4",  // Blue
		"highlight": "3",  // Yellow
		"preview":   "12", // Light Blue
		"info":      "2",  // Green
		"error":     "1",  // Red
	},
	"dark": {
		"listing":   "214",
		"directory": "33",
		"highlight": "214",
		"preview":   "75",
		"info":      "78",
		"error":     "160",
	},
	"light": {
		"listing":   "136",
		"directory": "25",
		"highlight": "222",
		"preview":   "31",
		"info":      "28",
		"error":     "124",
	},
	"monochrome": {
		"listing":   "250",
		"directory": "255",
		"highlight": "250",
		"preview":   "245",
		"info":      "245",
		"error":     "255",
	},
}

// GetTheme returns the colours of the named theme, or the default theme.
func GetTheme(name string) map[string]string {
	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ApplyTheme sets the theme in the configuration.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Listing = theme["listing"]
	c.Theme.Directory = theme["directory"]
	c.Theme.Highlight = theme["highlight"]
	c.Theme.Preview = theme["preview"]
	c.Theme.Info = theme["info"]
	c.Theme.Error = theme["error"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
