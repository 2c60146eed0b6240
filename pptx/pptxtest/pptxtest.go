// Package pptxtest builds minimal presentation templates for tests.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	nsDecl    = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	relBase   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	ctBase    = "application/vnd.openxmlformats-officedocument.presentationml."

	TemplateContentType     = ctBase + "template.main+xml"
	PresentationContentType = ctBase + "presentation.main+xml"
)

type Placeholder struct {
	// Type is written to p:ph/@type when not empty.
	Type string
	// Idx is written to p:ph/@idx when not 0.
	Idx  int
	Name string
}

type Layout struct {
	Name         string
	Placeholders []Placeholder
}

// Slide is an existing slide of the template.
type Slide struct {
	Layout int
	Title  string
	// Timing adds a main sequence with one click effect on the title (shape id 2).
	Timing bool
	Notes  bool
}

type Template struct {
	Layouts []Layout
	Slides  []Slide
	// Flavor declares the main part as a template (.potx) instead of a presentation.
	Flavor bool
	// Sections adds a section list referencing every slide.
	Sections bool
}

var footers = []Placeholder{
	{Type: "dt", Idx: 10, Name: "Date Placeholder"},
	{Type: "ftr", Idx: 11, Name: "Footer Placeholder"},
	{Type: "sldNum", Idx: 12, Name: "Slide Number Placeholder"},
}

// Default returns a template with the layouts brandeck expects by default:
// title, menu, section, section_pale, about, content_white, content_pale,
// quote, cta and thank_you at indices 0 to 9.
func Default() *Template {
	titleSub := func(name, titleType, subType string) Layout {
		return Layout{Name: name, Placeholders: append([]Placeholder{
			{Type: titleType, Name: "Title 1"},
			{Type: subType, Idx: 1, Name: "Subtitle 2"},
		}, footers...)}
	}
	content := func(name string) Layout {
		return Layout{Name: name, Placeholders: append([]Placeholder{
			{Type: "title", Name: "Title 1"},
			{Type: "body", Idx: 1, Name: "Subtitle 2"},
			{Type: "body", Idx: 13, Name: "Text Placeholder 3"},
		}, footers...)}
	}
	fixed := func(name string) Layout {
		return Layout{Name: name, Placeholders: append([]Placeholder{}, footers...)}
	}
	return &Template{
		Flavor: true,
		Layouts: []Layout{
			titleSub("Title", "ctrTitle", "subTitle"),
			titleSub("Agenda", "title", "body"),
			titleSub("Section", "title", "body"),
			titleSub("Section Pale", "title", "body"),
			fixed("About"),
			content("Content White"),
			content("Content Pale"),
			titleSub("Quote", "title", "body"),
			fixed("CTA"),
			titleSub("Thank You", "title", "body"),
		},
	}
}

// WriteFile writes the template to path.
func (t *Template) WriteFile(tb testing.TB, path string) {
	tb.Helper()
	b, err := t.Bytes()
	if err != nil {
		tb.Fatal(err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		tb.Fatal(err)
	}
}

// Bytes returns the template as a zip archive.
func (t *Template) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, p := range t.parts() {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(p.data)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type part struct {
	name string
	data string
}

func (t *Template) parts() []part {
	var (
		ct       strings.Builder
		presRels strings.Builder
		sldIDs   strings.Builder
		secIDs   strings.Builder
		parts    []part
	)
	mainType := PresentationContentType
	if t.Flavor {
		mainType = TemplateContentType
	}
	ct.WriteString(xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	ct.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	ct.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	fmt.Fprintf(&ct, `<Override PartName="/ppt/presentation.xml" ContentType="%s"/>`, mainType)
	fmt.Fprintf(&ct, `<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="%s"/>`, ctBase+"slideMaster+xml")

	presRels.WriteString(xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	fmt.Fprintf(&presRels, `<Relationship Id="rId1" Type="%sslideMaster" Target="slideMasters/slideMaster1.xml"/>`, relBase)

	var (
		layoutIDs  strings.Builder
		masterRels strings.Builder
	)
	masterRels.WriteString(xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for i, l := range t.Layouts {
		n := i + 1
		fmt.Fprintf(&ct, `<Override PartName="/ppt/slideLayouts/slideLayout%d.xml" ContentType="%s"/>`, n, ctBase+"slideLayout+xml")
		fmt.Fprintf(&layoutIDs, `<p:sldLayoutId id="%d" r:id="rId%d"/>`, 2147483648+n, n)
		fmt.Fprintf(&masterRels, `<Relationship Id="rId%d" Type="%sslideLayout" Target="../slideLayouts/slideLayout%d.xml"/>`, n, relBase, n)
		parts = append(parts,
			part{fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", n), layoutXML(l)},
			part{fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", n), relsXML(fmt.Sprintf(`<Relationship Id="rId1" Type="%sslideMaster" Target="../slideMasters/slideMaster1.xml"/>`, relBase))},
		)
	}
	masterRels.WriteString(`</Relationships>`)

	for i, s := range t.Slides {
		n := i + 1
		id := 255 + n
		fmt.Fprintf(&ct, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="%s"/>`, n, ctBase+"slide+xml")
		fmt.Fprintf(&presRels, `<Relationship Id="rId%d" Type="%sslide" Target="slides/slide%d.xml"/>`, n+1, relBase, n)
		fmt.Fprintf(&sldIDs, `<p:sldId id="%d" r:id="rId%d"/>`, id, n+1)
		fmt.Fprintf(&secIDs, `<p14:sldId id="%d"/>`, id)
		rels := fmt.Sprintf(`<Relationship Id="rId1" Type="%sslideLayout" Target="../slideLayouts/slideLayout%d.xml"/>`, relBase, s.Layout+1)
		if s.Notes {
			fmt.Fprintf(&ct, `<Override PartName="/ppt/notesSlides/notesSlide%d.xml" ContentType="%s"/>`, n, ctBase+"notesSlide+xml")
			rels += fmt.Sprintf(`<Relationship Id="rId2" Type="%snotesSlide" Target="../notesSlides/notesSlide%d.xml"/>`, relBase, n)
			parts = append(parts,
				part{fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n), xmlHeader + `<p:notes ` + nsDecl + `><p:cSld><p:spTree/></p:cSld></p:notes>`},
				part{fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", n), relsXML(fmt.Sprintf(`<Relationship Id="rId1" Type="%sslide" Target="../slides/slide%d.xml"/>`, relBase, n))},
			)
		}
		parts = append(parts,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML(s)},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), relsXML(rels)},
		)
	}
	ct.WriteString(`</Types>`)
	presRels.WriteString(`</Relationships>`)

	var pres strings.Builder
	pres.WriteString(xmlHeader + `<p:presentation ` + nsDecl + ` saveSubsetFonts="1">`)
	pres.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	if len(t.Slides) > 0 {
		pres.WriteString(`<p:sldIdLst>` + sldIDs.String() + `</p:sldIdLst>`)
	}
	pres.WriteString(`<p:sldSz cx="12192000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/>`)
	if t.Sections {
		pres.WriteString(`<p:extLst><p:ext uri="{521415D9-36F7-43E2-AB2F-B90AF26B5E84}">`)
		pres.WriteString(`<p14:sectionLst xmlns:p14="http://schemas.microsoft.com/office/powerpoint/2010/main">`)
		pres.WriteString(`<p14:section name="Default Section" id="{6E5B3B36-8B0C-4B44-9D1C-6E6B0E0A8C01}"><p14:sldIdLst>` + secIDs.String() + `</p14:sldIdLst></p14:section>`)
		pres.WriteString(`</p14:sectionLst></p:ext></p:extLst>`)
	}
	pres.WriteString(`</p:presentation>`)

	master := xmlHeader + `<p:sldMaster ` + nsDecl + `><p:cSld><p:spTree>` + groupProps +
		`</p:spTree></p:cSld>` +
		`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
		`<p:sldLayoutIdLst>` + layoutIDs.String() + `</p:sldLayoutIdLst></p:sldMaster>`

	return append([]part{
		{"[Content_Types].xml", ct.String()},
		{"_rels/.rels", relsXML(fmt.Sprintf(`<Relationship Id="rId1" Type="%sofficeDocument" Target="ppt/presentation.xml"/>`, relBase))},
		{"ppt/presentation.xml", pres.String()},
		{"ppt/_rels/presentation.xml.rels", presRels.String()},
		{"ppt/slideMasters/slideMaster1.xml", master},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRels.String()},
	}, parts...)
}

const groupProps = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`

func relsXML(rels string) string {
	return xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + rels + `</Relationships>`
}

func placeholderXML(id int, ph Placeholder, text string) string {
	attrs := ""
	if ph.Type != "" {
		attrs += fmt.Sprintf(` type="%s"`, ph.Type)
	}
	if ph.Idx != 0 {
		attrs += fmt.Sprintf(` idx="%d"`, ph.Idx)
	}
	name := ph.Name
	if name == "" {
		name = fmt.Sprintf("Placeholder %d", id)
	}
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph%s/></p:nvPr></p:nvSpPr><p:spPr/>`+
		`<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US"/><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`, id, name, attrs, text)
}

func layoutXML(l Layout) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, xmlHeader+`<p:sldLayout %s preserve="1"><p:cSld name="%s"><p:spTree>%s`, nsDecl, l.Name, groupProps)
	for i, ph := range l.Placeholders {
		sb.WriteString(placeholderXML(i+2, ph, "Click to edit"))
	}
	sb.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`)
	return sb.String()
}

// ExistingTiming is the timing tree of slides created with Slide.Timing.
const ExistingTiming = `<p:timing><p:tnLst><p:par><p:cTn id="1" dur="indefinite" restart="never" nodeType="tmRoot"><p:childTnLst>` +
	`<p:seq concurrent="1" nextAc="seek"><p:cTn id="2" dur="indefinite" nodeType="mainSeq"><p:childTnLst>` +
	`<p:par><p:cTn id="3" fill="hold"><p:stCondLst><p:cond delay="indefinite"/></p:stCondLst><p:childTnLst>` +
	`<p:par><p:cTn id="4" fill="hold"><p:stCondLst><p:cond delay="0"/></p:stCondLst><p:childTnLst>` +
	`<p:par><p:cTn id="5" presetID="10" presetClass="entr" presetSubtype="0" fill="hold" grpId="0" nodeType="clickEffect"><p:stCondLst><p:cond delay="0"/></p:stCondLst><p:childTnLst>` +
	`<p:set><p:cBhvr><p:cTn id="6" dur="1" fill="hold"><p:stCondLst><p:cond delay="0"/></p:stCondLst></p:cTn><p:tgtEl><p:spTgt spid="2"/></p:tgtEl><p:attrNameLst><p:attrName>style.visibility</p:attrName></p:attrNameLst></p:cBhvr><p:to><p:strVal val="visible"/></p:to></p:set>` +
	`<p:animEffect transition="in" filter="fade"><p:cBhvr><p:cTn id="7" dur="500"/><p:tgtEl><p:spTgt spid="2"/></p:tgtEl></p:cBhvr></p:animEffect>` +
	`</p:childTnLst></p:cTn></p:par></p:childTnLst></p:cTn></p:par></p:childTnLst></p:cTn></p:par>` +
	`</p:childTnLst></p:cTn><p:prevCondLst><p:cond evt="onPrev" delay="0"><p:tgtEl><p:sldTgt/></p:tgtEl></p:cond></p:prevCondLst>` +
	`<p:nextCondLst><p:cond evt="onNext" delay="0"><p:tgtEl><p:sldTgt/></p:tgtEl></p:cond></p:nextCondLst></p:seq>` +
	`</p:childTnLst></p:cTn></p:par></p:tnLst><p:bldLst><p:bldP spid="2" grpId="0"/></p:bldLst></p:timing>`

func slideXML(s Slide) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, xmlHeader+`<p:sld %s><p:cSld><p:spTree>%s`, nsDecl, groupProps)
	sb.WriteString(placeholderXML(2, Placeholder{Type: "title", Name: "Title 1"}, s.Title))
	sb.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	if s.Timing {
		sb.WriteString(ExistingTiming)
	}
	sb.WriteString(`</p:sld>`)
	return sb.String()
}
