package brandeck

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/k1LoW/brandeck/outline"
	"github.com/k1LoW/errors"
	"golang.org/x/sync/errgroup"
)

// Job is one outline of a batch.
type Job struct {
	// Source names the outline in error messages, usually its file path.
	Source  string
	Outline *outline.Outline
	// Output is the deck path; empty uses the default output name.
	Output string
}

// GenerateAll generates every job concurrently. Each deck is built by one
// goroutine from its own copy of the template. The first failure cancels
// the jobs not yet finished and is returned.
func (g *Generator) GenerateAll(ctx context.Context, jobs []Job) (_ []string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	outputs := make([]string, len(jobs))
	seen := map[string]string{}
	for i, j := range jobs {
		out := j.Output
		if out == "" {
			out = g.OutputPath(j.Outline)
		}
		abs, err := filepath.Abs(out)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[abs]; ok {
			return nil, fmt.Errorf("%w: %s and %s would both be written to %s", ErrValidation, prev, j.Source, out)
		}
		seen[abs] = j.Source
		outputs[i] = out
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	paths := make([]string, len(jobs))
	for i, j := range jobs {
		eg.Go(func() error {
			p, err := g.Generate(ctx, j.Outline, outputs[i])
			if err != nil {
				return fmt.Errorf("%s: %w", j.Source, err)
			}
			paths[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
