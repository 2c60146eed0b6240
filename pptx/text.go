package pptx

import (
	"strconv"

	"github.com/antchfx/xmlquery"
)

// RunProperties are written to a:rPr. Zero values inherit from the layout.
type RunProperties struct {
	// Size in hundredths of a point.
	Size     int
	Bold     bool
	Color    string
	Typeface string
}

// Bullet is a character bullet drawn from a symbol font.
type Bullet struct {
	Char        string
	Typeface    string
	PitchFamily int
	Charset     int
}

// ParagraphProperties are written to a:pPr. Zero values inherit from the layout.
type ParagraphProperties struct {
	// LineSpacing in thousandths of a percent; 120000 is 1.2 lines.
	LineSpacing int
	MarginLeft  int64
	Indent      int64
	Bullet      *Bullet
}

// NewParagraph builds an a:p with a single run. An empty text yields a
// paragraph with end-of-paragraph properties only.
func NewParagraph(pp ParagraphProperties, text string, rp RunProperties) *xmlquery.Node {
	p := newElement("a:p")
	xmlquery.AddChild(p, paragraphProperties(pp))
	if text == "" {
		xmlquery.AddChild(p, runProperties("a:endParaRPr", rp))
		return p
	}
	t := newElement("a:t")
	xmlquery.AddChild(t, newText(text))
	xmlquery.AddChild(p, el("a:r", nil, runProperties("a:rPr", rp), t))
	return p
}

func paragraphProperties(pp ParagraphProperties) *xmlquery.Node {
	pPr := newElement("a:pPr")
	if pp.MarginLeft != 0 {
		setAttr(pPr, "marL", strconv.FormatInt(pp.MarginLeft, 10))
	}
	if pp.Indent != 0 {
		setAttr(pPr, "indent", strconv.FormatInt(pp.Indent, 10))
	}
	if pp.LineSpacing > 0 {
		xmlquery.AddChild(pPr, el("a:lnSpc", nil, newElement("a:spcPct", "val", strconv.Itoa(pp.LineSpacing))))
	}
	if b := pp.Bullet; b != nil {
		xmlquery.AddChild(pPr, newElement("a:buFont",
			"typeface", b.Typeface,
			"pitchFamily", strconv.Itoa(b.PitchFamily),
			"charset", strconv.Itoa(b.Charset),
		))
		xmlquery.AddChild(pPr, newElement("a:buChar", "char", b.Char))
	}
	return pPr
}

func runProperties(name string, rp RunProperties) *xmlquery.Node {
	rPr := newElement(name)
	if rp.Size > 0 {
		setAttr(rPr, "sz", strconv.Itoa(rp.Size))
	}
	if rp.Bold {
		setAttr(rPr, "b", "1")
	}
	setAttr(rPr, "dirty", "0")
	if rp.Color != "" {
		xmlquery.AddChild(rPr, el("a:solidFill", nil, newElement("a:srgbClr", "val", rp.Color)))
	}
	if rp.Typeface != "" {
		xmlquery.AddChild(rPr, newElement("a:latin", "typeface", rp.Typeface))
	}
	return rPr
}
