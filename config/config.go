package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/expand"
)

const appName = "brandeck"

var (
	homePath       string
	configHomePath string
	dataHomePath   string
	stateHomePath  string
)

type Config struct {
	// Path to the .potx or .pptx template
	Template string `yaml:"template,omitempty" json:"template,omitempty"`
	// Directory where generated decks are written
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
	// Typography, colours, bullets and animation
	Style *Style `yaml:"style,omitempty" json:"style,omitempty"`
	// Symbolic slide type to template layout mapping
	Layouts map[string]*Layout `yaml:"layouts,omitempty" json:"layouts,omitempty"`
	// Placeholder index of the body on content layouts
	BodyPlaceholder *int `yaml:"bodyPlaceholder,omitempty" json:"bodyPlaceholder,omitempty"`
	// Layout keys whose animation is authored in the template
	Fixed []string `yaml:"fixed,omitempty" json:"fixed,omitempty"`
	// Layout keys content slides alternate between
	ContentVariants []string `yaml:"contentVariants,omitempty" json:"contentVariants,omitempty"`
	// Auto-generated agenda slide after the title slide
	Agenda *Agenda `yaml:"agenda,omitempty" json:"agenda,omitempty"`
	// Layout keys inserted after the title (and agenda) slide
	Opening []string `yaml:"opening,omitempty" json:"opening,omitempty"`
	// Closing slide and the layout keys inserted before it
	Closing *Closing `yaml:"closing,omitempty" json:"closing,omitempty"`
	// Command used by `brandeck export`
	Export *Export `yaml:"export,omitempty" json:"export,omitempty"`
	// Google Drive upload settings
	Upload *Upload `yaml:"upload,omitempty" json:"upload,omitempty"`
}

type Agenda struct {
	Enabled bool   `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Title   string `yaml:"title,omitempty" json:"title,omitempty"`
}

type Closing struct {
	Title  string   `yaml:"title,omitempty" json:"title,omitempty"`
	Before []string `yaml:"before,omitempty" json:"before,omitempty"`
}

type Export struct {
	Command string `yaml:"command,omitempty" json:"command,omitempty"`
}

type Upload struct {
	FolderID    string `yaml:"folderId,omitempty" json:"folderId,omitempty"`
	SharedDrive bool   `yaml:"sharedDrive,omitempty" json:"sharedDrive,omitempty"`
}

func init() {
	var err error
	homePath, err = os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}
}

// Load loads the configuration from the config file.
// It searches for config files in the following order:
// 1. $XDG_CONFIG_HOME/brandeck/config-{profile}.yml
// 2. $XDG_CONFIG_HOME/brandeck/config.yml
// If no config file is found, it returns the default Config.
func Load(profile string) (_ *Config, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			p := basePath + ext
			if _, err := os.Stat(p); err == nil {
				return LoadFile(p)
			}
		}
	}
	cfg := &Config{}
	cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads the configuration from path, expanding environment variables
// in the YAML before decoding. Unset fields take their default values.
func LoadFile(path string) (_ *Config, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Template != "" && !filepath.IsAbs(cfg.Template) && !strings.HasPrefix(cfg.Template, "~") {
		cfg.Template = filepath.Join(filepath.Dir(path), cfg.Template)
	}
	return cfg, nil
}

// Parse decodes and validates configuration YAML.
func Parse(b []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(expand.ExpandenvYAMLBytes(b), cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal config: %w", ErrConfig, err)
	}
	cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.FillDefaults()
	return cfg
}

// TemplatePath returns the template path with a leading ~ expanded.
func (c *Config) TemplatePath() string {
	return expandHome(c.Template)
}

// OutputDir returns the output directory with a leading ~ expanded.
func (c *Config) OutputDir() string {
	if c.Output == "" {
		return "."
	}
	return expandHome(c.Output)
}

// IsFixed reports whether slides using the layout key keep the template's animation.
func (c *Config) IsFixed(key string) bool {
	for _, k := range c.Fixed {
		if k == key {
			return true
		}
	}
	return false
}

// FillDefaults sets every unset field to its built-in value. It is
// idempotent and is applied by Load, LoadFile, Parse and Default.
func (c *Config) FillDefaults() {
	if c.Style == nil {
		c.Style = &Style{}
	}
	c.Style.fillDefaults()
	if len(c.Layouts) == 0 {
		c.Layouts = defaultLayouts()
	}
	if c.BodyPlaceholder == nil {
		idx := defaultBodyPlaceholder
		c.BodyPlaceholder = &idx
	}
	if c.Fixed == nil {
		c.Fixed = []string{LayoutAbout, LayoutCTA}
	}
	if len(c.ContentVariants) == 0 {
		c.ContentVariants = []string{LayoutContentWhite, LayoutContentPale}
	}
	if c.Agenda == nil {
		c.Agenda = &Agenda{}
	}
	if c.Agenda.Title == "" {
		c.Agenda.Title = "AGENDA"
	}
	if c.Closing == nil {
		c.Closing = &Closing{}
	}
	if c.Closing.Title == "" {
		c.Closing.Title = "THANK YOU"
	}
	if c.Export == nil {
		c.Export = &Export{}
	}
	if c.Export.Command == "" {
		c.Export.Command = defaultExportCommand
	}
	if c.Upload == nil {
		c.Upload = &Upload{}
	}
}

func expandHome(p string) string {
	if p == "~" {
		return homePath
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(homePath, p[2:])
	}
	return p
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, appName)
	} else {
		configHomePath = filepath.Join(homePath, ".config", appName)
	}
	return configHomePath
}

// DataHomePath returns the path to the data home directory.
func DataHomePath() string {
	if dataHomePath != "" {
		return dataHomePath
	}
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		dataHomePath = filepath.Join(v, appName)
	} else {
		dataHomePath = filepath.Join(homePath, ".local", "share", appName)
	}
	return dataHomePath
}

func StateHomePath() string {
	if stateHomePath != "" {
		return stateHomePath
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		stateHomePath = filepath.Join(v, appName)
	} else {
		stateHomePath = filepath.Join(homePath, ".local", "state", appName)
	}
	return stateHomePath
}
