package brandeck

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/k1LoW/brandeck/template"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/exec"
)

const envExportPath = "BRANDECK_EXPORT_PATH"

// Export runs the configured export command for the deck at path.
// The command supports the template variables {{path}}, {{dir}}, {{stem}}
// and {{env.XXX}}, and also receives the deck path in BRANDECK_EXPORT_PATH.
// Standard output of the command is copied to w.
func (g *Generator) Export(ctx context.Context, path string, w io.Writer) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return err
	}
	env := template.EnvironToMap()
	env[envExportPath] = abs
	store := map[string]any{
		"path": abs,
		"dir":  filepath.Dir(abs),
		"stem": strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs)),
		"env":  env,
	}
	expanded, err := template.Expand(g.cfg.Export.Command, store)
	if err != nil {
		return fmt.Errorf("%w: failed to expand export command template: %w", ErrConfig, err)
	}
	c, args, err := buildCommand(expanded)
	if err != nil {
		return fmt.Errorf("failed to build export command: %w", err)
	}

	cmd := exec.CommandContext(ctx, c, args...)
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, envExportPath+"="+abs)
	var stderr bytes.Buffer
	cmd.Stdout = w
	cmd.Stderr = &stderr

	g.logger.Info("exporting deck", slog.String("path", abs), slog.String("command", expanded))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run export command: %w\nstderr: %s", err, stderr.String())
	}
	return nil
}

// buildCommand returns the shell and arguments that run cmdStr.
func buildCommand(cmdStr string) (string, []string, error) {
	shell, err := detectShell()
	if err != nil {
		return "", nil, err
	}
	return shell, []string{"-c", cmdStr}, nil
}

func detectShell() (string, error) {
	shells := []string{
		os.Getenv("SHELL"),
		"/bin/bash",
		"/bin/sh",
	}
	for _, shell := range shells {
		if shell == "" {
			continue
		}
		if _, err := os.Stat(shell); err == nil {
			return shell, nil
		}
	}
	return "", fmt.Errorf("failed to detect shell")
}
