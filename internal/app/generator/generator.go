//go:generate mockgen -source=generator.go -destination=generator_mock.go -package=generator
package generator

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"orslog/internal/app/errors"
	"orslog/internal/config"
	"orslog/internal/config/logger"
)

const header = "# orslog configuration, values may be overridden by ORSLOG_* environment variables\n"

// Options contains the values written into orslog.yaml
type Options struct {
	Path  string
	Topic string
	Tag   string
}

// DefaultOptions returns sensible defaults for generation
func DefaultOptions() Options {
	return Options{
		Path:  config.ConfigFile,
		Topic: config.DefaultTopic,
		Tag:   config.DefaultTag,
	}
}

// Generator defines the interface for generating orslog.yaml
type Generator interface {
	Generate(opts Options, force bool, dryRun bool) error
}

type generator struct {
	out io.Writer
	log logger.Logger
}

// NewGenerator creates a new generator instance
func NewGenerator(log logger.Logger) Generator {
	return &generator{
		out: os.Stdout,
		log: log,
	}
}

// Generate writes the default configuration, with the given overrides, as yaml
func (g *generator) Generate(opts Options, force bool, dryRun bool) error {
	if opts.Path == "" {
		opts.Path = config.ConfigFile
	}

	if !dryRun && !force {
		if _, err := os.Stat(opts.Path); err == nil {
			return fmt.Errorf("%w: %s, use --force to overwrite", errors.ErrConfigAlreadyExists, opts.Path)
		}
	}

	content, err := render(opts)
	if err != nil {
		return err
	}

	if dryRun {
		_, err := g.out.Write(content)
		return err
	}

	if err := os.WriteFile(opts.Path, content, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	g.log.Info().Msgf("Generated %s", opts.Path)

	return nil
}

func render(opts Options) ([]byte, error) {
	cfg := config.DefaultConfig()

	if opts.Topic != "" {
		cfg.Transport.Topic = opts.Topic
	}

	if opts.Tag != "" {
		cfg.Publisher.Tag = opts.Tag
	}

	var buf bytes.Buffer
	buf.WriteString(header)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	return buf.Bytes(), nil
}
