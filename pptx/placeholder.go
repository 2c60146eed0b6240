package pptx

import (
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Placeholder types that slides do not inherit from their layout.
var layoutOnlyTypes = map[string]struct{}{
	"dt":     {},
	"ftr":    {},
	"sldNum": {},
}

// Placeholder types that get a text body when copied onto a slide.
var textTypes = map[string]struct{}{
	"title":    {},
	"ctrTitle": {},
	"subTitle": {},
	"body":     {},
	"obj":      {},
}

// Placeholder is a placeholder shape (p:sp with p:ph).
type Placeholder struct {
	// Idx is the placeholder index, 0 when not declared.
	Idx int
	// Type is the placeholder type, obj when not declared.
	Type string
	Name string
	// ID is the shape id (p:cNvPr/@id).
	ID int
	sp *xmlquery.Node
}

func newPlaceholder(sp *xmlquery.Node) *Placeholder {
	nvSpPr := child(sp, "p:nvSpPr")
	ph := child(child(nvSpPr, "p:nvPr"), "p:ph")
	if ph == nil {
		return nil
	}
	p := &Placeholder{
		Idx:  intAttr(ph, "idx", 0),
		Type: attr(ph, "type"),
		sp:   sp,
	}
	if p.Type == "" {
		p.Type = "obj"
	}
	if cNvPr := child(nvSpPr, "p:cNvPr"); cNvPr != nil {
		p.Name = attr(cNvPr, "name")
		p.ID = intAttr(cNvPr, "id", 0)
	}
	return p
}

func (ph *Placeholder) inherited() bool {
	_, ok := layoutOnlyTypes[ph.Type]
	return !ok
}

func (ph *Placeholder) cloneForSlide(id int) *xmlquery.Node {
	src := child(child(child(ph.sp, "p:nvSpPr"), "p:nvPr"), "p:ph")
	phNode := newElement("p:ph")
	for _, name := range []string{"type", "orient", "sz", "idx"} {
		if hasAttr(src, name) {
			setAttr(phNode, name, attr(src, name))
		}
	}
	sp := el("p:sp", nil,
		el("p:nvSpPr", nil,
			newElement("p:cNvPr", "id", strconv.Itoa(id), "name", ph.Name),
			el("p:cNvSpPr", nil, newElement("a:spLocks", "noGrp", "1")),
			el("p:nvPr", nil, phNode),
		),
		newElement("p:spPr"),
	)
	if _, ok := textTypes[ph.Type]; ok {
		xmlquery.AddChild(sp, el("p:txBody", nil,
			newElement("a:bodyPr"),
			newElement("a:lstStyle"),
			newElement("a:p"),
		))
	}
	return sp
}

// SetParagraphs replaces the paragraphs of the text body, creating the body when absent.
func (ph *Placeholder) SetParagraphs(ps ...*xmlquery.Node) {
	txBody := ensureChild(ph.sp, "p:txBody", spOrder)
	ensureChild(txBody, "a:bodyPr", txBodyOrder)
	for _, p := range children(txBody, "a:p") {
		xmlquery.RemoveFromTree(p)
	}
	if len(ps) == 0 {
		ps = append(ps, newElement("a:p"))
	}
	for _, p := range ps {
		xmlquery.AddChild(txBody, p)
	}
}

// Paragraphs returns the a:p elements of the text body.
func (ph *Placeholder) Paragraphs() []*xmlquery.Node {
	return children(child(ph.sp, "p:txBody"), "a:p")
}

// Text returns the text of the placeholder, one line per paragraph.
func (ph *Placeholder) Text() string {
	var lines []string
	for _, p := range ph.Paragraphs() {
		lines = append(lines, paragraphText(p))
	}
	return strings.Join(lines, "\n")
}

func paragraphText(p *xmlquery.Node) string {
	var sb strings.Builder
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case isElement(c, "a:r"), isElement(c, "a:fld"):
			if t := child(c, "a:t"); t != nil {
				sb.WriteString(textOf(t))
			}
		case isElement(c, "a:br"):
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
