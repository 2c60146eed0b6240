package pptx

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/google/go-cmp/cmp"
	"github.com/k1LoW/brandeck/pptx/pptxtest"
)

func openTemplate(t *testing.T, tmpl *pptxtest.Template) *Presentation {
	t.Helper()
	b, err := tmpl.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	p, err := ReadBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func reopen(t *testing.T, p *Presentation) *Presentation {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := p.Write(buf); err != nil {
		t.Fatal(err)
	}
	r, err := ReadBytes(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestLayouts(t *testing.T) {
	p := openTemplate(t, pptxtest.Default())
	var names []string
	for i, l := range p.Layouts() {
		if l.Index != i {
			t.Errorf("layout %q: got index %d, want %d", l.Name, l.Index, i)
		}
		names = append(names, l.Name)
	}
	want := []string{"Title", "Agenda", "Section", "Section Pale", "About", "Content White", "Content Pale", "Quote", "CTA", "Thank You"}
	if diff := cmp.Diff(names, want); diff != "" {
		t.Error(diff)
	}

	l, err := p.Layout(5)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, ph := range l.Placeholders() {
		got = append(got, ph.Type)
	}
	if diff := cmp.Diff(got, []string{"title", "body", "body", "dt", "ftr", "sldNum"}); diff != "" {
		t.Error(diff)
	}
	for idx, want := range map[int]bool{0: true, 1: true, 13: true, 10: false, 11: false, 12: false, 2: false} {
		if got := l.HasPlaceholder(idx); got != want {
			t.Errorf("HasPlaceholder(%d) = %v, want %v", idx, got, want)
		}
	}
	if _, err := p.Layout(10); err == nil {
		t.Error("want error for out of range layout")
	}
}

func TestAddSlide(t *testing.T) {
	p := openTemplate(t, pptxtest.Default())
	content, err := p.Layout(5)
	if err != nil {
		t.Fatal(err)
	}
	title, err := p.Layout(0)
	if err != nil {
		t.Fatal(err)
	}
	s1, err := p.AddSlide(title)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := p.AddSlide(content)
	if err != nil {
		t.Fatal(err)
	}
	if s1.ID != 256 || s2.ID != 257 {
		t.Errorf("got slide ids %d, %d", s1.ID, s2.ID)
	}
	if s1.Path != "ppt/slides/slide1.xml" || s2.Path != "ppt/slides/slide2.xml" {
		t.Errorf("got slide paths %s, %s", s1.Path, s2.Path)
	}

	type ph struct {
		Idx  int
		Type string
		ID   int
	}
	var got []ph
	for _, p := range s2.Placeholders() {
		got = append(got, ph{p.Idx, p.Type, p.ID})
	}
	want := []ph{{0, "title", 2}, {1, "body", 3}, {13, "body", 4}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Error(diff)
	}
	if _, err := s2.Placeholder(10); err == nil {
		t.Error("date placeholder must not be copied")
	}

	r := reopen(t, p)
	if len(r.Slides()) != 2 {
		t.Fatalf("got %d slides, want 2", len(r.Slides()))
	}
	for i, want := range []int{0, 5} {
		s := r.Slides()[i]
		if s.Layout == nil || s.Layout.Index != want {
			t.Errorf("slide %d: got layout %v, want %d", i+1, s.Layout, want)
		}
	}
	ct := string(mustPart(t, r.pkg, contentTypesPart))
	if !strings.Contains(ct, `PartName="/ppt/slides/slide2.xml"`) {
		t.Errorf("slide content type missing: %s", ct)
	}
}

func TestRemoveAllSlides(t *testing.T) {
	tmpl := pptxtest.Default()
	tmpl.Sections = true
	tmpl.Slides = []pptxtest.Slide{
		{Layout: 0, Title: "old title", Notes: true},
		{Layout: 5, Title: "old content", Timing: true},
	}
	p := openTemplate(t, tmpl)
	if len(p.Slides()) != 2 {
		t.Fatalf("got %d slides, want 2", len(p.Slides()))
	}
	p.RemoveAllSlides()
	r := reopen(t, p)
	if len(r.Slides()) != 0 {
		t.Errorf("got %d slides, want 0", len(r.Slides()))
	}
	for _, name := range r.pkg.Names() {
		if strings.HasPrefix(name, "ppt/slides/") || strings.HasPrefix(name, "ppt/notesSlides/") {
			t.Errorf("part %s remains", name)
		}
	}
	ct := string(mustPart(t, r.pkg, contentTypesPart))
	if strings.Contains(ct, "slide1.xml") || strings.Contains(ct, "notesSlide") {
		t.Errorf("overrides remain: %s", ct)
	}
	pres := string(mustPart(t, r.pkg, "ppt/presentation.xml"))
	if strings.Contains(pres, "p14:sldId ") || strings.Contains(pres, "<p:sldId ") {
		t.Errorf("slide references remain: %s", pres)
	}
	if !strings.Contains(pres, "p14:section ") {
		t.Errorf("section must be kept: %s", pres)
	}
	rels := string(mustPart(t, r.pkg, "ppt/_rels/presentation.xml.rels"))
	if strings.Contains(rels, "slides/") {
		t.Errorf("slide relationships remain: %s", rels)
	}

	l, err := r.Layout(9)
	if err != nil {
		t.Fatal(err)
	}
	s, err := r.AddSlide(l)
	if err != nil {
		t.Fatal(err)
	}
	if s.ID != 256 || s.Path != "ppt/slides/slide1.xml" {
		t.Errorf("got id %d path %s", s.ID, s.Path)
	}
}

func TestSetParagraphsIllegalCharacters(t *testing.T) {
	p := openTemplate(t, pptxtest.Default())
	l, err := p.Layout(5)
	if err != nil {
		t.Fatal(err)
	}
	s, err := p.AddSlide(l)
	if err != nil {
		t.Fatal(err)
	}
	title, err := s.Placeholder(0)
	if err != nil {
		t.Fatal(err)
	}
	title.SetParagraphs(NewParagraph(ParagraphProperties{}, "Q3\vreview\x01 \xff\tend", RunProperties{}))

	r := reopen(t, p)
	got, err := r.Slides()[0].Placeholder(0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got.Text(), "Q3review \uFFFD\tend"); diff != "" {
		t.Error(diff)
	}
}

func TestSetParagraphs(t *testing.T) {
	p := openTemplate(t, pptxtest.Default())
	l, err := p.Layout(5)
	if err != nil {
		t.Fatal(err)
	}
	s, err := p.AddSlide(l)
	if err != nil {
		t.Fatal(err)
	}
	body, err := s.Placeholder(13)
	if err != nil {
		t.Fatal(err)
	}
	rp := RunProperties{Size: 2200, Color: "FFFFFF", Typeface: "Arial"}
	bullet := ParagraphProperties{
		LineSpacing: 120000,
		MarginLeft:  342900,
		Indent:      -342900,
		Bullet:      &Bullet{Char: "Ø", Typeface: "Wingdings", PitchFamily: 2, Charset: 2},
	}
	body.SetParagraphs(
		NewParagraph(ParagraphProperties{LineSpacing: 120000}, "Tom & Jerry <3", rp),
		NewParagraph(ParagraphProperties{LineSpacing: 120000}, "", rp),
		NewParagraph(bullet, "first", rp),
	)

	r := reopen(t, p)
	got, err := r.Slides()[0].Placeholder(13)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got.Text(), "Tom & Jerry <3\n\nfirst"); diff != "" {
		t.Error(diff)
	}
	ps := got.Paragraphs()
	if len(ps) != 3 {
		t.Fatalf("got %d paragraphs, want 3", len(ps))
	}
	buChar := xmlquery.FindOne(ps[2], ".//*[local-name()='buChar']")
	if buChar == nil || buChar.SelectAttr("char") != "Ø" {
		t.Errorf("bullet glyph missing: %s", s.XML())
	}
	pPr := xmlquery.FindOne(ps[2], "./*[local-name()='pPr']")
	if pPr.SelectAttr("marL") != "342900" || pPr.SelectAttr("indent") != "-342900" {
		t.Errorf("bullet geometry missing: %s", s.XML())
	}
	if xmlquery.FindOne(ps[0], ".//*[local-name()='buChar']") != nil {
		t.Error("intro must not have a bullet")
	}
	if xmlquery.FindOne(ps[1], "./*[local-name()='endParaRPr']") == nil {
		t.Error("blank paragraph must keep end-of-paragraph properties")
	}
	var order []string
	for _, n := range xmlquery.Find(pPr, "./*") {
		order = append(order, n.Data)
	}
	if diff := cmp.Diff(order, []string{"lnSpc", "buFont", "buChar"}); diff != "" {
		t.Error(diff)
	}
}

func mustPart(t *testing.T, pkg *Package, name string) []byte {
	t.Helper()
	b, err := pkg.Part(name)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSave(t *testing.T) {
	p := openTemplate(t, pptxtest.Default())
	l, err := p.Layout(0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.AddSlide(l); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "deck.pptx")
	if err := p.Save(path); err != nil {
		t.Fatal(err)
	}
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Slides()) != 1 {
		t.Errorf("got %d slides, want 1", len(r.Slides()))
	}
	ct := string(mustPart(t, r.pkg, contentTypesPart))
	if !strings.Contains(ct, pptxtest.PresentationContentType) {
		t.Errorf("saved template must be a presentation: %s", ct)
	}
}
