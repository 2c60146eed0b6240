package brandeck

import (
	"fmt"
	"strings"

	"github.com/k1LoW/brandeck/config"
	"github.com/k1LoW/brandeck/outline"
	"github.com/k1LoW/errors"
)

// SlideKind is the role of a slide in the compiled deck.
type SlideKind string

const (
	KindTitle    SlideKind = "title"
	KindAgenda   SlideKind = "agenda"
	KindSequence SlideKind = "sequence"
	KindSection  SlideKind = "section"
	KindContent  SlideKind = "content"
	KindQuote    SlideKind = "quote"
	KindLayout   SlideKind = "layout"
	KindClosing  SlideKind = "closing"
)

const noPlaceholder = -1

// PlannedSlide is one slide of a compile plan: the layout it is bound to and
// the text it receives. Plans are computed before the template is touched.
type PlannedSlide struct {
	Number int
	Kind   SlideKind
	// Layout is the layout key, Index the template layout index.
	Layout string
	Index  int
	Fixed  bool
	Light  bool
	// Section is the 1-based section index, 0 outside sections.
	Section  int
	Title    string
	Subtitle string
	Intro    string
	Bullets  []string

	titleIdx    int
	subtitleIdx int
	bodyIdx     int
	ref         string
}

func (ps *PlannedSlide) String() string {
	return ps.ref
}

type planner struct {
	cfg      *config.Config
	slides   []*PlannedSlide
	contents int
}

// Plan validates the outline and resolves every slide to a layout of the
// layout table. It fails before anything is built when a slide type or
// placeholder cannot be resolved.
func (g *Generator) Plan(o *outline.Outline) (_ []*PlannedSlide, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if err := o.Validate(); err != nil {
		return nil, err
	}
	p := &planner{cfg: g.cfg}
	if err := p.plan(o); err != nil {
		return nil, err
	}
	return p.slides, nil
}

func (p *planner) plan(o *outline.Outline) error {
	cfg := p.cfg
	if _, err := p.add(&PlannedSlide{Kind: KindTitle, Layout: config.LayoutTitle, Title: o.Title, Subtitle: o.Subtitle, ref: "title slide"}, true); err != nil {
		return err
	}
	if cfg.Agenda.Enabled {
		var names []string
		for _, s := range o.Sections {
			if s.HasHeader() {
				names = append(names, s.Name)
			}
		}
		if _, err := p.add(&PlannedSlide{Kind: KindAgenda, Layout: config.LayoutAgenda, Title: cfg.Agenda.Title, Subtitle: strings.Join(names, "\n"), ref: "agenda slide"}, true); err != nil {
			return err
		}
	}
	for _, key := range cfg.Opening {
		if _, err := p.add(&PlannedSlide{Kind: KindSequence, Layout: key, ref: fmt.Sprintf("opening slide %q", key)}, false); err != nil {
			return err
		}
	}
	for i, s := range o.Sections {
		if err := p.planSection(i+1, s); err != nil {
			return err
		}
	}
	for _, key := range cfg.Closing.Before {
		if _, err := p.add(&PlannedSlide{Kind: KindSequence, Layout: key, ref: fmt.Sprintf("closing slide %q", key)}, false); err != nil {
			return err
		}
	}
	_, err := p.add(&PlannedSlide{Kind: KindClosing, Layout: config.LayoutClosing, Title: p.cfg.Closing.Title, Subtitle: o.ClosingSubtitle, ref: "closing slide"}, true)
	return err
}

func (p *planner) planSection(n int, s *outline.Section) error {
	sref := fmt.Sprintf("section %d (%q)", n, s.Name)
	if s.HasHeader() {
		key := config.LayoutSection
		if s.HeaderMode() == outline.HeaderPale {
			key = config.LayoutSectionPale
		}
		ps, err := p.add(&PlannedSlide{Kind: KindSection, Layout: key, Section: n, Title: s.Name, Subtitle: s.Subtitle, ref: sref + " header"}, true)
		if err != nil {
			return err
		}
		ps.Fixed = false
	}
	for j, sl := range s.Slides {
		ref := fmt.Sprintf("%s slide %d", sref, j+1)
		if sl.Title != "" {
			ref += fmt.Sprintf(" (%q)", sl.Title)
		}
		ps := &PlannedSlide{Section: n, ref: ref}
		switch sl.Type {
		case outline.TypeContent:
			ps.Kind = KindContent
			ps.Layout = sl.Layout
			if ps.Layout == "" {
				variants := p.cfg.ContentVariants
				ps.Layout = variants[p.contents%len(variants)]
			}
			p.contents++
			ps.Title, ps.Subtitle = sl.Title, sl.Subtitle
			ps.Intro, ps.Bullets = sl.Intro, sl.Bullets
		case outline.TypeQuote:
			ps.Kind = KindQuote
			ps.Layout = config.LayoutQuote
			ps.Title, ps.Subtitle = sl.Quote, sl.Attribution
		default:
			ps.Kind = KindLayout
			ps.Layout = sl.Type
			ps.Title, ps.Subtitle = sl.Title, sl.Subtitle
		}
		withText := !(ps.Kind == KindLayout && p.cfg.IsFixed(ps.Layout))
		if _, err := p.add(ps, withText); err != nil {
			return err
		}
	}
	return nil
}

// add resolves the layout key and the placeholders of ps and appends it.
func (p *planner) add(ps *PlannedSlide, withText bool) (*PlannedSlide, error) {
	l, ok := p.cfg.Layouts[ps.Layout]
	if !ok || l == nil {
		return nil, fmt.Errorf("%w: %s: unknown slide type or layout %q (layouts: %s)", ErrConfig, ps.ref, ps.Layout, strings.Join(p.cfg.LayoutKeys(), ", "))
	}
	ps.Number = len(p.slides) + 1
	ps.Index = l.Index
	ps.Light = l.Light
	ps.Fixed = p.cfg.IsFixed(ps.Layout)
	ps.titleIdx, ps.subtitleIdx, ps.bodyIdx = noPlaceholder, noPlaceholder, noPlaceholder

	textPlaceholders := l.Placeholders
	if ps.Kind == KindContent {
		body := *p.cfg.BodyPlaceholder
		if !l.HasPlaceholder(body) {
			return nil, fmt.Errorf("%w: %s: layout %q does not declare body placeholder %d", ErrConfig, ps.ref, ps.Layout, body)
		}
		ps.bodyIdx = body
		textPlaceholders = nil
		for _, idx := range l.Placeholders {
			if idx != body {
				textPlaceholders = append(textPlaceholders, idx)
			}
		}
	}
	if withText {
		switch {
		case len(textPlaceholders) > 0:
			ps.titleIdx = textPlaceholders[0]
		case ps.Title != "":
			return nil, fmt.Errorf("%w: %s: layout %q declares no title placeholder", ErrConfig, ps.ref, ps.Layout)
		}
		switch {
		case len(textPlaceholders) > 1:
			ps.subtitleIdx = textPlaceholders[1]
		case ps.Subtitle != "":
			return nil, fmt.Errorf("%w: %s: layout %q declares no subtitle placeholder", ErrConfig, ps.ref, ps.Layout)
		}
	} else {
		ps.Title, ps.Subtitle = "", ""
	}
	p.slides = append(p.slides, ps)
	return ps, nil
}
