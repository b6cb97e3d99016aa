package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"orslog/internal/app/errors"
)

// Config represents the application configuration
type Config struct {
	Logging struct {
		Level  string `yaml:"level" mapstructure:"level"`
		Format string `yaml:"format" mapstructure:"format"`
	} `yaml:"logging" mapstructure:"logging"`
	Transport Transport `yaml:"transport" mapstructure:"transport"`
	Viewer    Viewer    `yaml:"viewer" mapstructure:"viewer"`
	Publisher Publisher `yaml:"publisher" mapstructure:"publisher"`
	Watch     Watch     `yaml:"watch" mapstructure:"watch"`
	Reporting Reporting `yaml:"reporting" mapstructure:"reporting"`
	Version   int       `yaml:"version" mapstructure:"version"`
}

// Transport represents the local broadcast channel settings
type Transport struct {
	Topic       string        `yaml:"topic" mapstructure:"topic"`
	SocketDir   string        `yaml:"socket_dir" mapstructure:"socket_dir"`
	Buffer      int           `yaml:"buffer" mapstructure:"buffer"`
	DialTimeout time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
}

// Viewer represents the log viewer settings
type Viewer struct {
	MaxEntries int    `yaml:"max_entries" mapstructure:"max_entries"`
	ExportDir  string `yaml:"export_dir" mapstructure:"export_dir"`
}

// Publisher represents defaults used by the emitting side
type Publisher struct {
	Tag string `yaml:"tag" mapstructure:"tag"`
}

// Watch represents the file tailing producer settings
type Watch struct {
	Include  []string      `yaml:"include" mapstructure:"include"`
	Ignore   []string      `yaml:"ignore" mapstructure:"ignore"`
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// Reporting represents optional error reporting settings
type Reporting struct {
	DSN         string `yaml:"dsn" mapstructure:"dsn"`
	Environment string `yaml:"environment" mapstructure:"environment"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		Version: 1,
	}

	cfg.Logging.Level = LogLevel
	cfg.Logging.Format = LogFormat

	cfg.Transport.Topic = DefaultTopic
	cfg.Transport.SocketDir = SocketDir
	cfg.Transport.Buffer = TransportBufferSize
	cfg.Transport.DialTimeout = SocketDialTimeout

	cfg.Viewer.MaxEntries = MaxEntries
	cfg.Viewer.ExportDir = DefaultExportDir()

	cfg.Publisher.Tag = DefaultTag

	cfg.Watch.Include = []string{"**/*.log"}
	cfg.Watch.Debounce = WatchDebounce

	cfg.Reporting.Environment = "development"

	return cfg
}

// DefaultExportDir returns ~/Downloads/LogExports, falling back to the working directory
func DefaultExportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ExportDirName
	}

	return filepath.Join(home, DownloadsDirName, ExportDirName)
}

// Load loads the configuration from orslog.yaml, .env and ORSLOG_* variables
func Load() (*Config, error) {
	return LoadFrom(ConfigFile)
}

// LoadFrom loads the configuration from the given file path
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := godotenv.Load(EnvFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadConfig, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.ErrFailedToReadConfig
	}

	if err == nil {
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, errors.ErrFailedToParseConfig
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.ErrFailedToParseConfig
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// bindEnv registers the keys that may be overridden from the environment
func bindEnv(v *viper.Viper) {
	keys := []string{
		"logging.level",
		"logging.format",
		"transport.topic",
		"transport.socket_dir",
		"transport.buffer",
		"transport.dial_timeout",
		"viewer.max_entries",
		"viewer.export_dir",
		"publisher.tag",
		"reporting.dsn",
		"reporting.environment",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// ApplyDefaults fills empty values that have a sensible default
func (c *Config) ApplyDefaults() {
	if c.Transport.Topic == "" {
		c.Transport.Topic = DefaultTopic
	}

	if c.Transport.SocketDir == "" {
		c.Transport.SocketDir = SocketDir
	}

	if c.Transport.DialTimeout == 0 {
		c.Transport.DialTimeout = SocketDialTimeout
	}

	if c.Viewer.ExportDir == "" {
		c.Viewer.ExportDir = DefaultExportDir()
	}

	if c.Publisher.Tag == "" {
		c.Publisher.Tag = DefaultTag
	}

	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = WatchDebounce
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateTransport(); err != nil {
		return err
	}

	if err := c.validateViewer(); err != nil {
		return err
	}

	return nil
}

// validateTransport validates transport settings
func (c *Config) validateTransport() error {
	if c.Transport.Buffer <= 0 {
		return errors.ErrInvalidTransportBuffer
	}

	if strings.ContainsAny(c.Transport.Topic, `/\`) {
		return fmt.Errorf("%w: '%s'", errors.ErrInvalidTopic, c.Transport.Topic)
	}

	if c.Transport.DialTimeout < 0 {
		return errors.ErrInvalidDialTimeout
	}

	return nil
}

// validateViewer validates viewer settings
func (c *Config) validateViewer() error {
	if c.Viewer.MaxEntries < 0 {
		return errors.ErrInvalidMaxEntries
	}

	return nil
}
