package brandeck

import (
	"github.com/antchfx/xmlquery"
	"github.com/k1LoW/brandeck/config"
	"github.com/k1LoW/brandeck/pptx"
)

// composeBody writes the intro paragraph, a blank paragraph and one bullet
// paragraph per bullet, in that order.
func composeBody(ph *pptx.Placeholder, intro string, bullets []string, light bool, style *config.Style) {
	spacing := lineSpacing(style)
	plain := pptx.ParagraphProperties{LineSpacing: spacing}
	bullet := pptx.ParagraphProperties{
		LineSpacing: spacing,
		MarginLeft:  style.Bullet.MarginLeft,
		Indent:      style.Bullet.Indent,
		Bullet: &pptx.Bullet{
			Char:        style.Bullet.Char,
			Typeface:    style.Bullet.Font,
			PitchFamily: style.Bullet.PitchFamily,
			Charset:     style.Bullet.Charset,
		},
	}
	rp := runProperties(style, style.Body, light)

	ps := make([]*xmlquery.Node, 0, len(bullets)+2)
	ps = append(ps,
		pptx.NewParagraph(plain, applyCase(intro, style.Body.Case), rp),
		pptx.NewParagraph(plain, "", rp),
	)
	for _, b := range bullets {
		ps = append(ps, pptx.NewParagraph(bullet, applyCase(b, style.Body.Case), rp))
	}
	ph.SetParagraphs(ps...)
}
