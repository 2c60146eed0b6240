package dot

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/fatih/color"
)

func TestHandle(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	buf := new(bytes.Buffer)
	logger := slog.New(New(slog.NewTextHandler(io.Discard, nil), WithWriter(buf)))
	logger.Info("building deck", slog.String("title", "t"))
	logger.Info("built slide", slog.Int("number", 1), slog.String("kind", "title"), slog.Bool("fixed", false))
	logger.Info("built slide", slog.Int("number", 2), slog.String("kind", "section"), slog.Bool("fixed", false))
	logger.With(slog.String("outline", "a.yml")).Info("built slide", slog.Int("number", 3), slog.String("kind", "layout"), slog.Bool("fixed", true))
	logger.Info("built slide", slog.Int("number", 4), slog.String("kind", "content"), slog.Bool("fixed", false))
	logger.Error("failed to build deck", slog.String("error", "boom"))
	logger.Info("generated deck", slog.String("path", "out.pptx"))

	if got, want := buf.String(), ".#*.! out.pptx\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHandleConcurrentDecks(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	buf := new(bytes.Buffer)
	logger := slog.New(New(slog.NewTextHandler(io.Discard, nil), WithWriter(buf)))
	a := logger.With(slog.String("deck", "a.pptx"))
	b := logger.With(slog.String("deck", "b.pptx"))
	c := logger.With(slog.String("deck", "c.pptx"))
	slide := func(l *slog.Logger, kind string) {
		l.Info("built slide", slog.String("kind", kind), slog.Bool("fixed", false))
	}

	slide(a, "title")
	slide(b, "title")
	slide(c, "title")
	slide(b, "section")
	slide(a, "section")
	b.Info("generated deck", slog.String("path", "b.pptx"))
	slide(c, "content")
	c.Error("failed to save deck", slog.String("error", "boom"))
	slide(a, "content")
	a.Info("generated deck", slog.String("path", "a.pptx"))

	want := ".#. a.pptx\n.# b.pptx\n..!\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHandleQueuedDeckGoesLive(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	buf := new(bytes.Buffer)
	logger := slog.New(New(slog.NewTextHandler(io.Discard, nil), WithWriter(buf)))
	a := logger.With(slog.String("deck", "a.pptx"))
	b := logger.With(slog.String("deck", "b.pptx"))

	a.Info("built slide", slog.String("kind", "title"))
	b.Info("built slide", slog.String("kind", "title"))
	a.Info("generated deck", slog.String("path", "a.pptx"))
	if got, want := buf.String(), ". a.pptx\n."; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	b.Info("built slide", slog.String("kind", "section"))
	b.Info("generated deck", slog.String("path", "b.pptx"))
	if got, want := buf.String(), ". a.pptx\n.# b.pptx\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
