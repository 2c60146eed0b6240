// Package dot renders generation progress as one glyph per slide.
//
// Loggers derived with a "deck" attribute get one line per deck. While
// several decks are built concurrently, the line of the first deck is drawn
// live and the others are buffered and written, in start order, once the
// lines before them are done.
package dot

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
)

var (
	yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

const deckKey = "deck"

var _ slog.Handler = (*dotHandler)(nil)

// line is the progress of one deck that is not drawn yet.
type line struct {
	buf  []byte
	done bool
}

// state is shared by the handlers derived with WithAttrs and WithGroup.
type state struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
	stdout  io.Writer
	// prefix is the line written so far, restored after the spinner stops.
	prefix []byte
	// active is the deck whose line is drawn live.
	active  string
	pending map[string]*line
	queue   []string
}

type dotHandler struct {
	handler slog.Handler
	deck    string
	*state
}

type Option func(*state)

// WithWriter writes glyphs to w instead of the colorable stdout.
func WithWriter(w io.Writer) Option {
	return func(s *state) {
		s.stdout = w
	}
}

func New(h slog.Handler, opts ...Option) slog.Handler {
	s := &state{
		stdout:  colorable.NewColorableStdout(),
		pending: map[string]*line{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(s.stdout), spinner.WithColor("yellow"))
	return &dotHandler{handler: h, state: s}
}

func (h *dotHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *dotHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if strings.HasPrefix(r.Message, "retrying") {
		if !h.spinner.Active() {
			h.spinner.Start()
		}
		return nil
	}
	if h.spinner.Active() {
		h.spinner.Stop()
		_, _ = h.stdout.Write(h.prefix)
	}

	deck := h.deck
	var kind, path string
	var fixed bool
	r.Attrs(func(attr slog.Attr) bool {
		switch attr.Key {
		case deckKey:
			deck = attr.Value.String()
		case "kind":
			kind = attr.Value.String()
		case "fixed":
			fixed = attr.Value.Bool()
		case "path":
			path = attr.Value.String()
		}
		return true
	})

	switch {
	case r.Message == "built slide":
		switch {
		case fixed:
			return h.write(deck, cyan("*"), false)
		case kind == "section":
			return h.write(deck, green("#"), false)
		default:
			return h.write(deck, yellow("."), false)
		}
	case strings.HasPrefix(r.Message, "failed to"):
		return h.write(deck, red("!"), deck != "")
	case r.Message == "generated deck":
		return h.write(deck, " "+path, true)
	}
	return nil
}

// write draws s on the line of deck. end finishes the line.
func (h *dotHandler) write(deck, s string, end bool) error {
	if deck == "" {
		if end {
			s += "\n"
		}
		return h.draw(s, end)
	}
	if h.active == "" {
		h.active = deck
	}
	if deck != h.active {
		l, ok := h.pending[deck]
		if !ok {
			l = &line{}
			h.pending[deck] = l
			h.queue = append(h.queue, deck)
		}
		l.buf = append(l.buf, s...)
		if end {
			l.buf = append(l.buf, '\n')
			l.done = true
		}
		return nil
	}
	if !end {
		return h.draw(s, false)
	}
	if err := h.draw(s+"\n", true); err != nil {
		return err
	}
	h.active = ""
	// Flush the buffered decks that are already done and make the next
	// unfinished one the live line.
	for len(h.queue) > 0 {
		next := h.queue[0]
		h.queue = slices.Delete(h.queue, 0, 1)
		l := h.pending[next]
		delete(h.pending, next)
		if err := h.draw(string(l.buf), l.done); err != nil {
			return err
		}
		if !l.done {
			h.active = next
			break
		}
	}
	return nil
}

// draw writes s to stdout and tracks the current line for the spinner.
func (h *dotHandler) draw(s string, endsLine bool) error {
	if _, err := io.WriteString(h.stdout, s); err != nil {
		return err
	}
	if endsLine {
		h.prefix = nil
		return nil
	}
	h.prefix = append(h.prefix, s...)
	return nil
}

func (h *dotHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	deck := h.deck
	for _, a := range attrs {
		if a.Key == deckKey {
			deck = a.Value.String()
		}
	}
	return &dotHandler{handler: h.handler.WithAttrs(attrs), deck: deck, state: h.state}
}

func (h *dotHandler) WithGroup(name string) slog.Handler {
	return &dotHandler{handler: h.handler.WithGroup(name), deck: h.deck, state: h.state}
}
