package brandeck

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/k1LoW/brandeck/outline"
	"github.com/k1LoW/brandeck/pptx"
)

func TestGenerateAll(t *testing.T) {
	g := newTestGenerator(t, nil)
	dir := t.TempDir()
	second := testOutline()
	second.Title = "Second"
	second.Sections = second.Sections[:1]
	jobs := []Job{
		{Source: "first.yml", Outline: testOutline(), Output: filepath.Join(dir, "first.pptx")},
		{Source: "second.yml", Outline: second},
	}
	paths, err := g.GenerateAll(context.Background(), jobs)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{8, 5}
	for i, p := range paths {
		pres, err := pptx.Open(p)
		if err != nil {
			t.Fatal(err)
		}
		if got := len(pres.Slides()); got != want[i] {
			t.Errorf("%s: got %d slides, want %d", p, got, want[i])
		}
	}
	if want := filepath.Join(g.cfg.Output, "2025-10-01-second.pptx"); paths[1] != want {
		t.Errorf("got %s, want %s", paths[1], want)
	}
}

func TestGenerateAllDuplicateOutput(t *testing.T) {
	g := newTestGenerator(t, nil)
	jobs := []Job{
		{Source: "a.yml", Outline: testOutline()},
		{Source: "b.yml", Outline: testOutline()},
	}
	if _, err := g.GenerateAll(context.Background(), jobs); !errors.Is(err, ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}

func TestGenerateAllFailure(t *testing.T) {
	g := newTestGenerator(t, nil)
	bad := &outline.Outline{Title: "bad", Sections: []*outline.Section{
		{Name: "s", Slides: []*outline.Slide{{Type: "card"}}},
	}}
	jobs := []Job{
		{Source: "good.yml", Outline: testOutline()},
		{Source: "bad.yml", Outline: bad},
	}
	if _, err := g.GenerateAll(context.Background(), jobs); !errors.Is(err, ErrConfig) {
		t.Errorf("got %v, want ErrConfig", err)
	}
}
