package brandeck

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/k1LoW/brandeck/pptx"
)

// checkTemplate validates the whole layout table against the layouts of the template.
func (g *Generator) checkTemplate(pres *pptx.Presentation) error {
	layouts := pres.Layouts()
	for _, key := range g.cfg.LayoutKeys() {
		l := g.cfg.Layouts[key]
		if l.Index >= len(layouts) {
			return fmt.Errorf("%w: layouts.%s: layout index %d not found in template (total layouts: %d)", ErrConfig, key, l.Index, len(layouts))
		}
		tl := layouts[l.Index]
		for _, idx := range l.Placeholders {
			if !tl.HasPlaceholder(idx) {
				return fmt.Errorf("%w: layouts.%s: placeholder %d not found on template layout %d (%q)", ErrConfig, key, idx, l.Index, tl.Name)
			}
		}
	}
	return nil
}

// build replaces the slides of pres with the planned slides.
func (g *Generator) build(ctx context.Context, pres *pptx.Presentation, plan []*PlannedSlide, logger *slog.Logger) error {
	style := g.cfg.Style
	layouts := pres.Layouts()
	pres.RemoveAllSlides()
	for _, ps := range plan {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := pres.AddSlide(layouts[ps.Index])
		if err != nil {
			return fmt.Errorf("%s: %w", ps.ref, err)
		}
		placeholder := func(idx int) (*pptx.Placeholder, error) {
			if idx == noPlaceholder {
				return nil, nil
			}
			ph, err := s.Placeholder(idx)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrConfig, ps.ref, err)
			}
			return ph, nil
		}
		title, err := placeholder(ps.titleIdx)
		if err != nil {
			return err
		}
		subtitle, err := placeholder(ps.subtitleIdx)
		if err != nil {
			return err
		}
		body, err := placeholder(ps.bodyIdx)
		if err != nil {
			return err
		}

		titleStyle, subtitleStyle := style.Title, style.Subtitle
		if ps.Kind == KindQuote {
			titleStyle, subtitleStyle = style.Quote, style.Attribution
		}
		if title != nil {
			formatText(title, ps.Title, ps.Light, style, titleStyle)
		}
		if subtitle != nil {
			formatText(subtitle, ps.Subtitle, ps.Light, style, subtitleStyle)
		}
		if body != nil {
			composeBody(body, ps.Intro, ps.Bullets, ps.Light, style)
		}
		n := annotate(s, ps.Fixed, style.Animation, title, subtitle, body)
		logger.Info("built slide",
			slog.Int("number", ps.Number),
			slog.String("kind", string(ps.Kind)),
			slog.String("layout", ps.Layout),
			slog.Bool("fixed", ps.Fixed),
			slog.Int("animations", n),
		)
	}
	return nil
}
