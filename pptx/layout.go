package pptx

import (
	"github.com/antchfx/xmlquery"
)

// Layout is a slide layout of the first slide master.
type Layout struct {
	Index        int
	Name         string
	Path         string
	placeholders []*Placeholder
}

func loadLayout(pkg *Package, index int, name string) (*Layout, error) {
	doc, err := loadXML(pkg, name)
	if err != nil {
		return nil, err
	}
	cSld := child(documentElement(doc), "p:cSld")
	l := &Layout{
		Index:        index,
		Path:         name,
		placeholders: placeholders(child(cSld, "p:spTree")),
	}
	if cSld != nil {
		l.Name = attr(cSld, "name")
	}
	return l, nil
}

// Placeholders returns every placeholder of the layout in shape tree order.
func (l *Layout) Placeholders() []*Placeholder {
	return l.placeholders
}

// HasPlaceholder reports whether slides created from the layout get a
// placeholder with index idx.
func (l *Layout) HasPlaceholder(idx int) bool {
	for _, ph := range l.placeholders {
		if ph.Idx == idx && ph.inherited() {
			return true
		}
	}
	return false
}

func placeholders(tree *xmlquery.Node) []*Placeholder {
	var phs []*Placeholder
	for _, sp := range children(tree, "p:sp") {
		if ph := newPlaceholder(sp); ph != nil {
			phs = append(phs, ph)
		}
	}
	return phs
}
