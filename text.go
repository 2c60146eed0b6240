package brandeck

import (
	"math"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/k1LoW/brandeck/config"
	"github.com/k1LoW/brandeck/pptx"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func applyCase(s, c string) string {
	switch c {
	case config.CaseUpper:
		return cases.Upper(language.Und).String(s)
	case config.CaseLower:
		return cases.Lower(language.Und).String(s)
	case config.CaseTitle:
		return cases.Title(language.Und).String(s)
	}
	return s
}

func lineSpacing(style *config.Style) int {
	return int(math.Round(style.LineSpacing * 100000))
}

func runProperties(style *config.Style, ts config.TextStyle, light bool) pptx.RunProperties {
	return pptx.RunProperties{
		Size:     ts.Size * 100,
		Bold:     ts.Bold,
		Color:    style.ColorFor(light),
		Typeface: style.FontFamily,
	}
}

// formatText replaces the content of ph with text, one paragraph per line.
// Every paragraph gets the configured line spacing and every run the font,
// the colour for the background and the size when one is set.
func formatText(ph *pptx.Placeholder, text string, light bool, style *config.Style, ts config.TextStyle) {
	pp := pptx.ParagraphProperties{LineSpacing: lineSpacing(style)}
	rp := runProperties(style, ts, light)
	lines := strings.Split(applyCase(text, ts.Case), "\n")
	ps := make([]*xmlquery.Node, 0, len(lines))
	for _, line := range lines {
		ps = append(ps, pptx.NewParagraph(pp, line, rp))
	}
	ph.SetParagraphs(ps...)
}
