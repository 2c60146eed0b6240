package pptx

import (
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/k1LoW/brandeck/pptx/pptxtest"
)

var dissolve = Effect{PresetID: 9, Filter: "dissolve", Duration: 500}

func timeNodeIDs(t *testing.T, s *Slide) map[string]int {
	t.Helper()
	ids := map[string]int{}
	for _, n := range xmlquery.Find(child(s.root(), "p:timing"), ".//*[local-name()='cTn']") {
		ids[n.SelectAttr("id")]++
	}
	for id, n := range ids {
		if n > 1 {
			t.Errorf("time node id %s used %d times", id, n)
		}
	}
	return ids
}

func TestAddClickEffects(t *testing.T) {
	p := openTemplate(t, pptxtest.Default())
	l, err := p.Layout(5)
	if err != nil {
		t.Fatal(err)
	}
	s, err := p.AddSlide(l)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.AddClickEffects(dissolve, Build{ShapeID: 2}, Build{ShapeID: 3, Paragraphs: 1}, Build{ShapeID: 4, Paragraphs: 3}); got != 5 {
		t.Errorf("got %d entries, want 5", got)
	}

	r := reopen(t, p)
	rs := r.Slides()[0]
	if got := rs.ClickEffects(); got != 5 {
		t.Errorf("got %d click effects, want 5", got)
	}
	ids := timeNodeIDs(t, rs)
	// tmRoot, mainSeq and five nodes per entry
	if len(ids) != 2+5*5 {
		t.Errorf("got %d time nodes, want %d", len(ids), 2+5*5)
	}
	bld := xmlquery.Find(rs.root(), "//*[local-name()='bldP']")
	if len(bld) != 3 {
		t.Fatalf("got %d bldP, want 3", len(bld))
	}
	if bld[0].SelectAttr("build") != "" || bld[2].SelectAttr("build") != "p" {
		t.Errorf("unexpected build attributes: %s", rs.XML())
	}
	rgs := xmlquery.Find(rs.root(), "//*[local-name()='animEffect']//*[local-name()='pRg']")
	if len(rgs) != 3 || rgs[2].SelectAttr("st") != "2" || rgs[2].SelectAttr("end") != "2" {
		t.Errorf("paragraph targets: %s", rs.XML())
	}
	for _, n := range xmlquery.Find(rs.root(), "//*[local-name()='animEffect']") {
		if n.SelectAttr("filter") != "dissolve" {
			t.Errorf("got filter %q", n.SelectAttr("filter"))
		}
	}
	var order []string
	for c := rs.root().FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			order = append(order, c.Data)
		}
	}
	if len(order) != 3 || order[2] != "timing" {
		t.Errorf("got child order %v", order)
	}
}

func TestAddClickEffectsKeepsExistingTiming(t *testing.T) {
	tmpl := pptxtest.Default()
	tmpl.Slides = []pptxtest.Slide{{Layout: 5, Title: "animated", Timing: true}}
	p := openTemplate(t, tmpl)
	s := p.Slides()[0]
	if got := s.ClickEffects(); got != 1 {
		t.Fatalf("got %d click effects, want 1", got)
	}
	if got := s.AddClickEffects(dissolve, Build{ShapeID: 2, Paragraphs: 2}); got != 2 {
		t.Errorf("got %d entries, want 2", got)
	}
	r := reopen(t, p)
	rs := r.Slides()[0]
	if got := rs.ClickEffects(); got != 3 {
		t.Errorf("got %d click effects, want 3", got)
	}
	ids := timeNodeIDs(t, rs)
	if len(ids) != 7+2*5 {
		t.Errorf("got %d time nodes, want %d", len(ids), 7+2*5)
	}
	first := xmlquery.FindOne(rs.root(), "//*[local-name()='cTn'][@nodeType='clickEffect']")
	if first.SelectAttr("id") != "5" || first.SelectAttr("presetID") != "10" {
		t.Errorf("existing effect changed: %s", rs.XML())
	}
	if got := len(xmlquery.Find(rs.root(), "//*[local-name()='seq']")); got != 1 {
		t.Errorf("got %d sequences, want 1", got)
	}
	if got := len(xmlquery.Find(rs.root(), "//*[local-name()='bldP']")); got != 1 {
		t.Errorf("got %d bldP, want 1", got)
	}
}

func TestAddClickEffectsNoBuilds(t *testing.T) {
	p := openTemplate(t, pptxtest.Default())
	l, err := p.Layout(4)
	if err != nil {
		t.Fatal(err)
	}
	s, err := p.AddSlide(l)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.AddClickEffects(dissolve); got != 0 {
		t.Errorf("got %d", got)
	}
	if child(s.root(), "p:timing") != nil {
		t.Error("timing must not be created without builds")
	}
}
