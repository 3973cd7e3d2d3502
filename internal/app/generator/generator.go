//go:generate mockgen -source=generator.go -destination=generator_mock.go -package=generator
package generator

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"lunatint/internal/app/atomicfile"
	"lunatint/internal/app/errors"
	"lunatint/internal/config"
	"lunatint/internal/config/logger"
)

const templatePath = "templates/lunatint.yaml.tmpl"

//go:embed templates/lunatint.yaml.tmpl
var templateFS embed.FS

// Options contains the values written into a starter config file
type Options struct {
	Path        string
	Workers     int
	Lightest    float64
	Darkest     float64
	Headroom    float64
	Gamma       float64
	DefaultStep int
	Duplicates  string
	NameFormat  string
	Debounce    time.Duration
}

// DefaultOptions returns the built-in defaults
func DefaultOptions() Options {
	return OptionsFrom(config.DefaultConfig(), config.FileName)
}

// OptionsFrom copies the tunable settings of cfg
func OptionsFrom(cfg *config.Config, path string) Options {
	return Options{
		Path:        path,
		Workers:     cfg.Concurrency.Workers,
		Lightest:    cfg.Ramp.Lightest,
		Darkest:     cfg.Ramp.Darkest,
		Headroom:    cfg.Ramp.Headroom,
		Gamma:       cfg.Ramp.Gamma,
		DefaultStep: cfg.Palette.DefaultStep,
		Duplicates:  cfg.Palette.Duplicates,
		NameFormat:  cfg.Document.NameFormat,
		Debounce:    cfg.Watch.Debounce,
	}
}

// Generator defines the interface for generating lunatint.yaml
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

// Generate renders the config template and writes it to opts.Path, or to stdout on a dry run
func (g *generator) Generate(opts Options, force bool, dryRun bool) error {
	if opts.Path == "" {
		opts.Path = config.FileName
	}

	if !dryRun && !force {
		if _, err := os.Stat(opts.Path); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", errors.ErrConfigExists, opts.Path)
		}
	}

	tmplContent, err := templateFS.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	tmpl, err := template.New("lunatint.yaml").Parse(string(tmplContent))
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, opts); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	if dryRun {
		_, err := g.out.Write(buf.Bytes())
		return err
	}

	if err := atomicfile.Write(opts.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	g.log.Info().Msgf("Generated %s", opts.Path)

	return nil
}
