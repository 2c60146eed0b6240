package pptx

import (
	"fmt"

	"github.com/antchfx/xmlquery"
)

const slideSkeleton = xmlHeader +
	`<p:sld xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `">` +
	`<p:cSld><p:spTree>` +
	`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>` +
	`</p:spTree></p:cSld>` +
	`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>` +
	`</p:sld>`

// Slide is a slide part bound to a layout.
type Slide struct {
	ID     int
	Path   string
	Layout *Layout
	relID  string
	doc    *xmlquery.Node
	rels   *Relationships
}

func (s *Slide) root() *xmlquery.Node {
	return documentElement(s.doc)
}

func (s *Slide) spTree() *xmlquery.Node {
	return child(child(s.root(), "p:cSld"), "p:spTree")
}

// Placeholders returns the placeholders of the slide in shape tree order.
func (s *Slide) Placeholders() []*Placeholder {
	return placeholders(s.spTree())
}

// Placeholder returns the placeholder with index idx.
func (s *Slide) Placeholder(idx int) (*Placeholder, error) {
	for _, ph := range s.Placeholders() {
		if ph.Idx == idx {
			return ph, nil
		}
	}
	return nil, fmt.Errorf("%w: idx %d on %s", ErrPlaceholderNotFound, idx, s.Path)
}

// XML returns the serialized slide part.
func (s *Slide) XML() []byte {
	return marshalXML(s.doc)
}
