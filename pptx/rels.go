package pptx

import (
	"encoding/xml"
	"fmt"
	"path"
	"strconv"
	"strings"
)

const (
	relBase           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	relOfficeDocument = relBase + "officeDocument"
	relSlide          = relBase + "slide"
	relSlideLayout    = relBase + "slideLayout"
	relSlideMaster    = relBase + "slideMaster"
	relNotesSlide     = relBase + "notesSlide"
)

type Relationships struct {
	XMLName xml.Name        `xml:"http://schemas.openxmlformats.org/package/2006/relationships Relationships"`
	Rels    []*Relationship `xml:"Relationship"`
}

type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

func parseRels(b []byte) (*Relationships, error) {
	rels := &Relationships{}
	if err := xml.Unmarshal(b, rels); err != nil {
		return nil, fmt.Errorf("%w: invalid relationships: %w", ErrFormat, err)
	}
	return rels, nil
}

// loadRels reads the relationships of the named part. A part without a
// relationships part has no relationships.
func loadRels(pkg *Package, partName string) (*Relationships, error) {
	name := relsPath(partName)
	if !pkg.Has(name) {
		return &Relationships{}, nil
	}
	b, err := pkg.Part(name)
	if err != nil {
		return nil, err
	}
	rels, err := parseRels(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rels, nil
}

func (r *Relationships) marshal() ([]byte, error) {
	b, err := xml.Marshal(r)
	if err != nil {
		return nil, err
	}
	return append([]byte(xmlHeader), b...), nil
}

func (r *Relationships) byID(id string) *Relationship {
	for _, rel := range r.Rels {
		if rel.ID == id {
			return rel
		}
	}
	return nil
}

func (r *Relationships) byType(typ string) []*Relationship {
	var rels []*Relationship
	for _, rel := range r.Rels {
		if rel.Type == typ {
			rels = append(rels, rel)
		}
	}
	return rels
}

// add appends a relationship with the next free rIdN and returns its id.
func (r *Relationships) add(typ, target string) string {
	max := 0
	for _, rel := range r.Rels {
		if n, err := strconv.Atoi(strings.TrimPrefix(rel.ID, "rId")); err == nil && n > max {
			max = n
		}
	}
	id := fmt.Sprintf("rId%d", max+1)
	r.Rels = append(r.Rels, &Relationship{ID: id, Type: typ, Target: target})
	return id
}

func (r *Relationships) remove(id string) {
	for i, rel := range r.Rels {
		if rel.ID == id {
			r.Rels = append(r.Rels[:i], r.Rels[i+1:]...)
			return
		}
	}
}

// relsPath returns the relationships part of partName: ppt/slides/slide1.xml
// has ppt/slides/_rels/slide1.xml.rels.
func relsPath(partName string) string {
	dir, file := path.Split(partName)
	return dir + "_rels/" + file + ".rels"
}

// resolveTarget resolves a relationship target against the directory of the source part.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(source), target)
}

// relativeTarget is the inverse of resolveTarget.
func relativeTarget(source, dest string) string {
	from := strings.Split(path.Dir(source), "/")
	to := strings.Split(dest, "/")
	i := 0
	for i < len(from) && i < len(to)-1 && from[i] == to[i] {
		i++
	}
	var parts []string
	for range from[i:] {
		parts = append(parts, "..")
	}
	parts = append(parts, to[i:]...)
	return strings.Join(parts, "/")
}
