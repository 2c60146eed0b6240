package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/k1LoW/brandeck/outline"
)

func TestScaffold(t *testing.T) {
	tests := []struct {
		file     string
		sections int
		slides   int
	}{
		{"deck.md", 2, 6},
		{"deck.yml", 2, 6},
		{"deck.yaml", 2, 6},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			b, err := scaffold(tt.file, "Kick-off")
			if err != nil {
				t.Fatal(err)
			}
			p := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(p, b, 0o600); err != nil {
				t.Fatal(err)
			}
			o, err := outline.ParseFile(p)
			if err != nil {
				t.Fatal(err)
			}
			if o.Title != "Kick-off" {
				t.Errorf("got title %q", o.Title)
			}
			if o.Subtitle != "Q1 update" {
				t.Errorf("got subtitle %q", o.Subtitle)
			}
			if got := len(o.Sections); got != tt.sections {
				t.Errorf("got %d sections, want %d", got, tt.sections)
			}
			if got := o.SlideCount(); got != tt.slides {
				t.Errorf("got %d slides, want %d", got, tt.slides)
			}
			if err := o.Validate(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestScaffoldInvalidTitle(t *testing.T) {
	if _, err := scaffold("deck.md", `say "hi"`); err == nil {
		t.Error("want error")
	}
}
