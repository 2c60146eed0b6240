/*
Copyright © 2025 Ken'ichiro Oyama <k1lowxb@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/k1LoW/brandeck"
	"github.com/k1LoW/brandeck/outline"
	"github.com/k1LoW/errors"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	output       string
	templatePath string
	watch        bool
	sections     string
	openOutput   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [OUTLINE_FILE...]",
	Short: "generate decks from outline files",
	Long: `generate decks from outline files (.yml, .yaml, .json, .md).

Several outlines are generated concurrently. Without --output each deck is
written to the configured output directory as <YYYY-MM-DD>-<title>.pptx.`,
	Aliases: []string{"gen"},
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if output != "" && len(args) > 1 {
			return fmt.Errorf("--output can only be used with a single outline")
		}
		if sections != "" && len(args) > 1 {
			return fmt.Errorf("--sections can only be used with a single outline")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(true)
		opts := []brandeck.Option{brandeck.WithLogger(logger)}
		if templatePath != "" {
			opts = append(opts, brandeck.WithTemplate(templatePath))
		}
		g, err := brandeck.New(cfg, opts...)
		if err != nil {
			return err
		}
		paths, err := generate(ctx, g, args)
		if err != nil {
			return err
		}
		if openOutput {
			for _, p := range paths {
				if err := browser.OpenFile(p); err != nil {
					return err
				}
			}
		}
		if !watch {
			return nil
		}
		return watchOutlines(ctx, g, args, logger)
	},
}

func generate(ctx context.Context, g *brandeck.Generator, files []string) (_ []string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	jobs := make([]brandeck.Job, 0, len(files))
	for _, f := range files {
		o, err := outline.ParseFile(f)
		if err != nil {
			return nil, err
		}
		if sections != "" {
			indices, err := sectionsToIndices(sections, len(o.Sections))
			if err != nil {
				return nil, err
			}
			o, err = o.SelectSections(indices)
			if err != nil {
				return nil, err
			}
		}
		jobs = append(jobs, brandeck.Job{Source: f, Outline: o, Output: output})
	}
	return g.GenerateAll(ctx, jobs)
}

// watchOutlines regenerates an outline every time its file is written.
func watchOutlines(ctx context.Context, g *brandeck.Generator, files []string, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Editors replace files on save, so the directories are watched.
	targets := map[string]string{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		targets[abs] = f
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}
	logger.Info("watching outlines", slog.Int("files", len(files)))

	const debounce = 300 * time.Millisecond
	pending := map[string]struct{}{}
	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			f, ok := targets[abs]
			if !ok {
				continue
			}
			pending[f] = struct{}{}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("failed to watch outlines", slog.String("error", err.Error()))
		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for f := range pending {
				changed = append(changed, f)
			}
			clear(pending)
			if _, err := generate(ctx, g, changed); err != nil {
				// Keep watching; the next save may fix the outline.
				logger.Error("failed to regenerate deck", slog.String("error", err.Error()))
			}
		}
	}
}

// sectionsToIndices parses a section selection such as "1,3-4", "2-" or "-3"
// into 1-based section indices.
func sectionsToIndices(sel string, total int) ([]int, error) {
	if sel == "" {
		indices := make([]int, total)
		for i := range total {
			indices[i] = i + 1
		}
		return indices, nil
	}

	var result []int
	for _, part := range strings.Split(sel, ",") {
		part = strings.TrimSpace(part)
		if !strings.Contains(part, "-") {
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid section number: %s", part)
			}
			if n < 1 || n > total {
				return nil, fmt.Errorf("section number out of range: %d (total sections: %d)", n, total)
			}
			result = append(result, n)
			continue
		}
		start, end, _ := strings.Cut(part, "-")
		if strings.Contains(end, "-") {
			return nil, fmt.Errorf("invalid range format: %s", part)
		}
		from, to := 1, total
		var err error
		if start != "" {
			if from, err = strconv.Atoi(start); err != nil {
				return nil, fmt.Errorf("invalid section number: %s", start)
			}
		}
		if end != "" {
			if to, err = strconv.Atoi(end); err != nil {
				return nil, fmt.Errorf("invalid section number: %s", end)
			}
		}
		if from < 1 || from > total || to < 1 || to > total || from > to {
			return nil, fmt.Errorf("invalid section range: %s (total sections: %d)", part, total)
		}
		for i := from; i <= to; i++ {
			result = append(result, i)
		}
	}
	return result, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&output, "output", "o", "", "output file (single outline only)")
	generateCmd.Flags().StringVarP(&templatePath, "template", "t", "", "template file (.potx or .pptx), overrides the config")
	generateCmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when an outline changes")
	generateCmd.Flags().StringVarP(&sections, "sections", "s", "", "sections to generate, e.g. 1,3-4")
	generateCmd.Flags().BoolVarP(&openOutput, "open", "", false, "open the generated deck")
}
