// Package brandeck compiles declarative outlines into branded .pptx decks
// built from a PowerPoint template.
package brandeck

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/k1LoW/brandeck/config"
	"github.com/k1LoW/brandeck/outline"
	"github.com/k1LoW/brandeck/pptx"
	"github.com/k1LoW/errors"
)

// Generator compiles outlines with one configuration. It is safe for
// concurrent use; every call works on its own copy of the template.
type Generator struct {
	cfg      *config.Config
	template string
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Generator) error

func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		g.logger = logger
		return nil
	}
}

// WithTemplate overrides the template path of the configuration.
func WithTemplate(path string) Option {
	return func(g *Generator) error {
		g.template = path
		return nil
	}
}

// WithClock sets the clock used for default output names.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) error {
		g.now = now
		return nil
	}
}

// New returns a Generator. A nil cfg uses the built-in configuration and
// unset fields of cfg take their default values.
func New(cfg *config.Config, opts ...Option) (_ *Generator, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.FillDefaults()
	g := &Generator{
		cfg:      cfg,
		template: cfg.TemplatePath(),
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Config returns the configuration of the generator.
func (g *Generator) Config() *config.Config {
	return g.cfg
}

// OutputPath returns where Generate writes the deck for o when no output is given.
func (g *Generator) OutputPath(o *outline.Outline) string {
	return filepath.Join(g.cfg.OutputDir(), DefaultFilename(o.Title, g.now()))
}

// Open opens the template and checks the layout table against it.
func (g *Generator) Open() (_ *pptx.Presentation, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if g.template == "" {
		return nil, fmt.Errorf("%w: template is not configured", ErrConfig)
	}
	pres, err := pptx.Open(g.template)
	if err != nil {
		return nil, err
	}
	if err := g.checkTemplate(pres); err != nil {
		return nil, fmt.Errorf("%s: %w", g.template, err)
	}
	return pres, nil
}

// Compile plans o, opens the template and builds the deck in memory.
func (g *Generator) Compile(ctx context.Context, o *outline.Outline) (_ *pptx.Presentation, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	return g.compile(ctx, o, g.logger)
}

func (g *Generator) compile(ctx context.Context, o *outline.Outline, logger *slog.Logger) (*pptx.Presentation, error) {
	plan, err := g.Plan(o)
	if err != nil {
		return nil, err
	}
	for _, w := range o.Lint() {
		logger.Warn("content policy", slog.String("warning", w))
	}
	pres, err := g.Open()
	if err != nil {
		return nil, err
	}
	logger.Info("building deck", slog.String("title", o.Title), slog.Int("slides", len(plan)))
	if err := g.build(ctx, pres, plan, logger); err != nil {
		logger.Error("failed to build deck", slog.String("title", o.Title), slog.String("error", err.Error()))
		return nil, err
	}
	return pres, nil
}

// Build compiles o and writes the .pptx archive to w.
func (g *Generator) Build(ctx context.Context, o *outline.Outline, w io.Writer) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	pres, err := g.Compile(ctx, o)
	if err != nil {
		return err
	}
	buf := new(bytes.Buffer)
	if err := pres.Write(buf); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

// Generate compiles o and saves the deck to output, or to OutputPath(o) when
// output is empty. It returns the path written. Nothing is written when
// compilation fails.
func (g *Generator) Generate(ctx context.Context, o *outline.Outline, output string) (_ string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if output == "" {
		output = g.OutputPath(o)
	}
	logger := g.logger.With(slog.String("deck", output))
	pres, err := g.compile(ctx, o, logger)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		logger.Error("failed to save deck", slog.String("error", err.Error()))
		return "", err
	}
	if err := pres.Save(output); err != nil {
		logger.Error("failed to save deck", slog.String("error", err.Error()))
		return "", err
	}
	logger.Info("generated deck", slog.String("path", output), slog.Int("slides", len(pres.Slides())))
	return output, nil
}
