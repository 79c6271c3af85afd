// Package config loads vncard.yaml and resolves the run settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dosanma1/vncard-cli/internal/logger"
	"github.com/dosanma1/vncard-cli/internal/output"
	"github.com/dosanma1/vncard-cli/internal/render"
	"github.com/dosanma1/vncard-cli/internal/source"
	"github.com/dosanma1/vncard-cli/pkg/xos"
)

// FileName is the config file looked up in the working directory.
const FileName = "vncard.yaml"

const (
	DefaultTemplate      = "template.png"
	DefaultOutputDir     = "out_names"
	DefaultHistory       = "out_names/names_log.txt"
	DefaultEndpointsFile = "api_sources.txt"
	DefaultNamesFile     = "students_1000.txt"
	DefaultCount         = 1
)

// Config represents the vncard.yaml configuration file.
type Config struct {
	Template string `yaml:"template" env:"TEMPLATE"`
	History  string `yaml:"history" env:"HISTORY"`
	Count    int    `yaml:"count" env:"COUNT"`
	// Seed makes a run reproducible. Nil draws a random seed.
	Seed *int64 `yaml:"seed,omitempty" env:"SEED"`
	Pad  bool   `yaml:"pad" env:"PAD"`

	Output  OutputConfig  `yaml:"output"`
	Sources SourcesConfig `yaml:"sources"`
	Render  RenderConfig  `yaml:"render"`
	Log     LogConfig     `yaml:"log"`
}

// OutputConfig holds where images go.
type OutputConfig struct {
	Dir string   `yaml:"dir" env:"OUTPUT_DIR"`
	S3  S3Config `yaml:"s3,omitempty"`
}

// S3Config holds the optional bucket mirror. An empty bucket disables it.
type S3Config struct {
	Bucket    string `yaml:"bucket,omitempty" env:"S3_BUCKET"`
	Region    string `yaml:"region,omitempty" env:"S3_REGION"`
	Endpoint  string `yaml:"endpoint,omitempty" env:"S3_ENDPOINT"`
	Prefix    string `yaml:"prefix,omitempty" env:"S3_PREFIX"`
	PathStyle bool   `yaml:"path_style,omitempty" env:"S3_PATH_STYLE"`
	// Static credentials. Empty keys use the default AWS credential chain.
	AccessKeyID     string `yaml:"access_key_id,omitempty" env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty" env:"S3_SECRET_ACCESS_KEY"`
}

// Enabled reports whether a bucket was configured.
func (s S3Config) Enabled() bool { return s.Bucket != "" }

// SinkConfig converts the settings for output.NewS3Sink.
func (s S3Config) SinkConfig() output.S3Config {
	return output.S3Config{
		Bucket:          s.Bucket,
		Region:          s.Region,
		Endpoint:        s.Endpoint,
		Prefix:          s.Prefix,
		PathStyle:       s.PathStyle,
		AccessKeyID:     s.AccessKeyID,
		SecretAccessKey: s.SecretAccessKey,
	}
}

// SourcesConfig selects and configures the name source.
type SourcesConfig struct {
	NamesFile     string `yaml:"names_file,omitempty" env:"NAMES_FILE"`
	APIURL        string `yaml:"api_url,omitempty" env:"API_URL"`
	AutoAPI       bool   `yaml:"auto_api,omitempty" env:"AUTO_API"`
	EndpointsFile string `yaml:"endpoints_file,omitempty" env:"ENDPOINTS_FILE"`
	Namefake      bool   `yaml:"namefake,omitempty" env:"NAMEFAKE"`
	Gemini        bool   `yaml:"gemini,omitempty" env:"GEMINI"`
	GeminiModel   string `yaml:"gemini_model,omitempty" env:"GEMINI_MODEL"`
	GeminiAPIKey  string `yaml:"gemini_api_key,omitempty" env:"GEMINI_API_KEY"`
}

// RenderConfig tunes text placement.
type RenderConfig struct {
	Fonts    []string   `yaml:"fonts,omitempty" env:"FONTS" envSeparator:","`
	BaseSize float64    `yaml:"base_size" env:"FONT_SIZE"`
	Box      render.Box `yaml:"box"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Template: DefaultTemplate,
		History:  DefaultHistory,
		Count:    DefaultCount,
		Output:   OutputConfig{Dir: DefaultOutputDir},
		Sources: SourcesConfig{
			EndpointsFile: DefaultEndpointsFile,
			GeminiModel:   source.DefaultGeminiModel,
		},
		Render: RenderConfig{
			Fonts:    append([]string(nil), render.DefaultFontPaths...),
			BaseSize: render.DefaultBaseSize,
			Box:      render.DefaultBox,
		},
		Log: LogConfig{Level: "info", Format: string(logger.FormatText)},
	}
}

// Load reads path on top of the defaults. A missing file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.applyDefaults()
	return config, nil
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(path string) (*Config, error) {
	config, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}

// Save writes the config to a file, keeping a .bak of any previous one.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := xos.WriteFileWithBackup(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Template == "" {
		return fmt.Errorf("template is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.History == "" {
		return fmt.Errorf("history is required")
	}
	if c.Count < 0 {
		return fmt.Errorf("count must be >= 0, got %d", c.Count)
	}
	if (c.Output.S3.AccessKeyID == "") != (c.Output.S3.SecretAccessKey == "") {
		return fmt.Errorf("output.s3 access_key_id and secret_access_key must be set together")
	}
	if c.Sources.APIURL != "" {
		u, err := url.Parse(c.Sources.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("sources.api_url must be an http(s) URL, got %q", c.Sources.APIURL)
		}
	}
	if c.Render.BaseSize < render.MinSize {
		return fmt.Errorf("render.base_size must be >= %d, got %g", render.MinSize, c.Render.BaseSize)
	}
	b := c.Render.Box
	if b.X < 0 || b.X >= 1 || b.Y < 0 || b.Y >= 1 {
		return fmt.Errorf("render.box x and y must be in [0, 1)")
	}
	if b.W <= 0 || b.W > 1 || b.H <= 0 || b.H > 1 {
		return fmt.Errorf("render.box w and h must be in (0, 1]")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logger.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	return nil
}

// applyDefaults fills fields a partial file left empty.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Template == "" {
		c.Template = d.Template
	}
	if c.History == "" {
		c.History = d.History
	}
	if c.Output.Dir == "" {
		c.Output.Dir = d.Output.Dir
	}
	if c.Sources.GeminiModel == "" {
		c.Sources.GeminiModel = d.Sources.GeminiModel
	}
	if len(c.Render.Fonts) == 0 {
		c.Render.Fonts = d.Render.Fonts
	}
	if c.Render.BaseSize == 0 {
		c.Render.BaseSize = d.Render.BaseSize
	}
	if c.Render.Box == (render.Box{}) {
		c.Render.Box = d.Render.Box
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// Selection reports which sources the configuration asks for.
func (c *Config) Selection() source.Selection {
	return source.Selection{
		Gemini:   c.Sources.Gemini,
		File:     c.Sources.NamesFile != "",
		URL:      c.Sources.APIURL != "",
		Auto:     c.Sources.AutoAPI,
		Namefake: c.Sources.Namefake,
	}
}
