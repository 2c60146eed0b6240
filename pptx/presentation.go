package pptx

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/antchfx/xmlquery"
)

const defaultPresentationPart = "ppt/presentation.xml"

// minSlideID is the smallest id PowerPoint accepts in p:sldId.
const minSlideID = 256

// Presentation is an opened presentation package. Templates are converted to
// presentations on open.
type Presentation struct {
	pkg     *Package
	path    string
	doc     *xmlquery.Node
	rels    *Relationships
	types   *contentTypes
	layouts []*Layout
	slides  []*Slide
}

// Open opens the presentation or template at path.
func Open(path string) (*Presentation, error) {
	pkg, err := OpenPackage(path)
	if err != nil {
		return nil, err
	}
	p, err := New(pkg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Read opens a presentation from r.
func Read(r io.ReaderAt, size int64) (*Presentation, error) {
	pkg, err := ReadPackage(r, size)
	if err != nil {
		return nil, err
	}
	return New(pkg)
}

// ReadBytes opens a presentation from b.
func ReadBytes(b []byte) (*Presentation, error) {
	return Read(bytes.NewReader(b), int64(len(b)))
}

// New loads the presentation stored in pkg. pkg is owned by the returned
// Presentation from then on.
func New(pkg *Package) (*Presentation, error) {
	b, err := pkg.Part(contentTypesPart)
	if err != nil {
		return nil, err
	}
	b, _ = convertContentTypes(b)
	types, err := parseContentTypes(b)
	if err != nil {
		return nil, err
	}
	p := &Presentation{pkg: pkg, types: types, path: defaultPresentationPart}

	rootRels, err := loadRels(pkg, "")
	if err != nil {
		return nil, err
	}
	if rels := rootRels.byType(relOfficeDocument); len(rels) > 0 {
		p.path = resolveTarget("", rels[0].Target)
	}
	if p.doc, err = loadXML(pkg, p.path); err != nil {
		return nil, err
	}
	if p.rels, err = loadRels(pkg, p.path); err != nil {
		return nil, err
	}
	if err := p.loadLayouts(); err != nil {
		return nil, err
	}
	if err := p.loadSlides(); err != nil {
		return nil, err
	}
	return p, nil
}

func loadXML(pkg *Package, name string) (*xmlquery.Node, error) {
	b, err := pkg.Part(name)
	if err != nil {
		return nil, err
	}
	doc, err := parseXML(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, name, err)
	}
	if documentElement(doc) == nil {
		return nil, fmt.Errorf("%w: %s: no root element", ErrFormat, name)
	}
	return doc, nil
}

func (p *Presentation) root() *xmlquery.Node {
	return documentElement(p.doc)
}

// loadLayouts reads the layouts of the first slide master in sldLayoutIdLst order.
func (p *Presentation) loadLayouts() error {
	masters := children(child(p.root(), "p:sldMasterIdLst"), "p:sldMasterId")
	if len(masters) == 0 {
		return fmt.Errorf("%w: %s has no slide master", ErrFormat, p.path)
	}
	rel := p.rels.byID(attr(masters[0], "r:id"))
	if rel == nil {
		return fmt.Errorf("%w: %s: slide master relationship %q not found", ErrFormat, p.path, attr(masters[0], "r:id"))
	}
	masterPath := resolveTarget(p.path, rel.Target)
	master, err := loadXML(p.pkg, masterPath)
	if err != nil {
		return err
	}
	masterRels, err := loadRels(p.pkg, masterPath)
	if err != nil {
		return err
	}
	lst := child(documentElement(master), "p:sldLayoutIdLst")
	for i, id := range children(lst, "p:sldLayoutId") {
		rel := masterRels.byID(attr(id, "r:id"))
		if rel == nil {
			return fmt.Errorf("%w: %s: layout relationship %q not found", ErrFormat, masterPath, attr(id, "r:id"))
		}
		l, err := loadLayout(p.pkg, i, resolveTarget(masterPath, rel.Target))
		if err != nil {
			return err
		}
		p.layouts = append(p.layouts, l)
	}
	return nil
}

func (p *Presentation) loadSlides() error {
	for _, id := range children(child(p.root(), "p:sldIdLst"), "p:sldId") {
		relID := attr(id, "r:id")
		rel := p.rels.byID(relID)
		if rel == nil {
			return fmt.Errorf("%w: %s: slide relationship %q not found", ErrFormat, p.path, relID)
		}
		s := &Slide{
			ID:    intAttr(id, "id", 0),
			Path:  resolveTarget(p.path, rel.Target),
			relID: relID,
		}
		var err error
		if s.doc, err = loadXML(p.pkg, s.Path); err != nil {
			return err
		}
		if s.rels, err = loadRels(p.pkg, s.Path); err != nil {
			return err
		}
		if rels := s.rels.byType(relSlideLayout); len(rels) > 0 {
			s.Layout = p.layoutByPath(resolveTarget(s.Path, rels[0].Target))
		}
		p.slides = append(p.slides, s)
	}
	return nil
}

func (p *Presentation) layoutByPath(name string) *Layout {
	for _, l := range p.layouts {
		if l.Path == name {
			return l
		}
	}
	return nil
}

// Layouts returns the layouts of the first slide master. Layout.Index is the
// position in this list.
func (p *Presentation) Layouts() []*Layout {
	return p.layouts
}

// Layout returns the layout at index.
func (p *Presentation) Layout(index int) (*Layout, error) {
	if index < 0 || index >= len(p.layouts) {
		return nil, fmt.Errorf("%w: layout index %d out of range (total layouts: %d)", ErrFormat, index, len(p.layouts))
	}
	return p.layouts[index], nil
}

// Slides returns the slides in presentation order.
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// RemoveAllSlides removes every slide together with its relationships,
// content type override, notes slides and section references.
func (p *Presentation) RemoveAllSlides() {
	ids := map[string]struct{}{}
	relIDs := map[string]struct{}{}
	for _, s := range p.slides {
		for _, rel := range s.rels.byType(relNotesSlide) {
			p.deletePart(resolveTarget(s.Path, rel.Target))
		}
		p.deletePart(s.Path)
		p.rels.remove(s.relID)
		ids[strconv.Itoa(s.ID)] = struct{}{}
		relIDs[s.relID] = struct{}{}
	}
	if lst := child(p.root(), "p:sldIdLst"); lst != nil {
		xmlquery.RemoveFromTree(lst)
	}
	for _, n := range xmlquery.Find(p.doc, "//*[local-name()='section']/*[local-name()='sldIdLst']/*[local-name()='sldId']") {
		if _, ok := ids[attr(n, "id")]; ok {
			xmlquery.RemoveFromTree(n)
		}
	}
	for _, n := range xmlquery.Find(p.doc, "//*[local-name()='custShow']/*[local-name()='sldLst']/*[local-name()='sld']") {
		if _, ok := relIDs[attr(n, "r:id")]; ok {
			xmlquery.RemoveFromTree(n)
		}
	}
	p.slides = nil
}

func (p *Presentation) deletePart(name string) {
	p.pkg.DeletePart(name)
	p.pkg.DeletePart(relsPath(name))
	p.types.removeOverride(name)
}

// AddSlide appends a slide bound to l. The slide gets a copy of every
// placeholder of the layout except date, footer and slide number.
func (p *Presentation) AddSlide(l *Layout) (*Slide, error) {
	if l == nil {
		return nil, fmt.Errorf("%w: no layout", ErrFormat)
	}
	doc, err := parseXML([]byte(slideSkeleton))
	if err != nil {
		return nil, err
	}
	s := &Slide{
		ID:     p.nextSlideID(),
		Path:   p.nextSlidePath(),
		Layout: l,
		doc:    doc,
		rels:   &Relationships{},
	}
	s.rels.add(relSlideLayout, relativeTarget(s.Path, l.Path))
	tree := s.spTree()
	id := 2
	for _, ph := range l.Placeholders() {
		if !ph.inherited() {
			continue
		}
		xmlquery.AddChild(tree, ph.cloneForSlide(id))
		id++
	}

	p.types.setOverride(s.Path, slideContentType)
	s.relID = p.rels.add(relSlide, relativeTarget(p.path, s.Path))
	lst := ensureChild(p.root(), "p:sldIdLst", presentationOrder)
	xmlquery.AddChild(lst, newElement("p:sldId", "id", strconv.Itoa(s.ID), "r:id", s.relID))
	p.slides = append(p.slides, s)
	return s, nil
}

func (p *Presentation) nextSlideID() int {
	max := minSlideID - 1
	for _, id := range children(child(p.root(), "p:sldIdLst"), "p:sldId") {
		if v := intAttr(id, "id", 0); v > max {
			max = v
		}
	}
	return max + 1
}

func (p *Presentation) nextSlidePath() string {
	used := map[string]struct{}{}
	for _, s := range p.slides {
		used[s.Path] = struct{}{}
	}
	for n := 1; ; n++ {
		name := fmt.Sprintf("ppt/slides/slide%d.xml", n)
		if _, ok := used[name]; ok || p.pkg.Has(name) {
			continue
		}
		return name
	}
}

func (p *Presentation) flush() error {
	for _, s := range p.slides {
		p.pkg.SetPart(s.Path, marshalXML(s.doc))
		b, err := s.rels.marshal()
		if err != nil {
			return err
		}
		p.pkg.SetPart(relsPath(s.Path), b)
	}
	p.pkg.SetPart(p.path, marshalXML(p.doc))
	b, err := p.rels.marshal()
	if err != nil {
		return err
	}
	p.pkg.SetPart(relsPath(p.path), b)
	b, err = p.types.marshal()
	if err != nil {
		return err
	}
	p.pkg.SetPart(contentTypesPart, b)
	return nil
}

// Write writes the presentation as a .pptx archive.
func (p *Presentation) Write(w io.Writer) error {
	if err := p.flush(); err != nil {
		return err
	}
	return p.pkg.Write(w)
}

// Save writes the presentation to path. The file appears only once it is complete.
func (p *Presentation) Save(path string) error {
	if err := p.flush(); err != nil {
		return err
	}
	return p.pkg.Save(path)
}
