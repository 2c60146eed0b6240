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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/k1LoW/brandeck/config"
	"github.com/k1LoW/brandeck/handler/dot"
	"github.com/k1LoW/brandeck/version"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/tail"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
)

var (
	profile    string
	configFile string
	verbose    bool
)

// tb keeps the latest JSON log lines for error.json.
var tb = tail.New(1000)

var rootCmd = &cobra.Command{
	Use:          "brandeck",
	Short:        "brandeck is a tool for compiling outlines into branded PowerPoint decks",
	Long:         `brandeck is a tool for compiling outlines written in YAML, JSON or Markdown into branded PowerPoint decks built from a template.`,
	SilenceUsage: true,
	Version:      fmt.Sprintf("%s (rev:%s)", version.Version, version.Revision),
}

type errorData struct {
	LatestLogs  []any     `json:"latest_logs"`
	StackTraces any       `json:"stack_traces"`
	CreatedAt   time.Time `json:"created_at"`
	Version     string    `json:"version"`
	Revision    string    `json:"revision"`
}

// https://www.googleapis.com/upload/drive/v3/files/xxxxxx
// https://docs.google.com/presentation/d/xxxxxx
var googleURLRe = regexp.MustCompile(`(https://(?:www.googleapis.com/(?:upload/)?drive/v3/files|docs.google.com/presentation/d)/)([^\?"/]+)`)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var latestLogs []any
		for _, line := range tb.Lines() {
			line = googleURLRe.ReplaceAllString(line, "${1}**********************")
			if strings.Contains(line, `"level":"DEBUG"`) && strings.Contains(line, `"request":`) {
				continue
			}
			var m map[string]any
			if err := json.Unmarshal([]byte(line), &m); err != nil {
				latestLogs = append(latestLogs, line)
			} else {
				latestLogs = append(latestLogs, m)
			}
		}
		d := &errorData{
			LatestLogs:  latestLogs,
			StackTraces: errors.StackTraces(err),
			CreatedAt:   time.Now(),
			Version:     version.Version,
			Revision:    version.Revision,
		}
		b, err := json.Marshal(d)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		} else {
			dumpPath := filepath.Join(config.StateHomePath(), "error.json")
			if err := os.MkdirAll(filepath.Dir(dumpPath), 0o700); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
			} else if err := os.WriteFile(dumpPath, b, 0o600); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "failed to write error.json to %s: %v\n", dumpPath, err)
			}
		}
		os.Exit(1)
	}
}

// loadConfig loads --config, or the profile configuration from the XDG config home.
func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}
	return config.Load(profile)
}

// newLogger fans out to the progress glyphs, the error.json buffer and,
// with --verbose, a text log on stderr.
func newLogger(progress bool) *slog.Logger {
	handlers := []slog.Handler{
		slog.NewJSONHandler(tb, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}
	if progress {
		handlers = append(handlers, dot.New(slog.NewTextHandler(io.Discard, nil)))
	}
	if verbose {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "", "", "profile name")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
