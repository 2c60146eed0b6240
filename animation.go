package brandeck

import (
	"github.com/k1LoW/brandeck/config"
	"github.com/k1LoW/brandeck/pptx"
)

// annotate adds click-triggered entrance effects: the title as one unit,
// subtitle and body one paragraph per click. Nil placeholders are skipped.
// Fixed slides keep the animation authored in the template.
func annotate(s *pptx.Slide, fixed bool, anim config.Animation, title, subtitle, body *pptx.Placeholder) int {
	if fixed {
		return 0
	}
	var builds []pptx.Build
	if title != nil {
		builds = append(builds, pptx.Build{ShapeID: title.ID})
	}
	for _, ph := range []*pptx.Placeholder{subtitle, body} {
		if ph == nil {
			continue
		}
		builds = append(builds, pptx.Build{ShapeID: ph.ID, Paragraphs: len(ph.Paragraphs())})
	}
	return s.AddClickEffects(pptx.Effect{
		PresetID: anim.PresetID,
		Filter:   anim.Effect,
		Duration: anim.Duration,
	}, builds...)
}
