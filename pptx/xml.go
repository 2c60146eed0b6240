package pptx

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

const (
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsP   = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP14 = "http://schemas.microsoft.com/office/powerpoint/2010/main"
	nsXML = "http://www.w3.org/XML/1998/namespace"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

var namespaces = map[string]string{
	"a":   nsA,
	"p":   nsP,
	"r":   nsR,
	"p14": nsP14,
}

// Child orders from the PresentationML and DrawingML schemas. Elements are
// inserted in front of the first existing sibling that must follow them.
var (
	sldOrder          = []string{"p:cSld", "p:clrMapOvr", "p:transition", "p:timing", "p:extLst"}
	presentationOrder = []string{"p:sldMasterIdLst", "p:notesMasterIdLst", "p:handoutMasterIdLst", "p:sldIdLst", "p:sldSz", "p:notesSz", "p:smartTags", "p:embeddedFontLst", "p:custShowLst", "p:photoAlbum", "p:custDataLst", "p:kinsoku", "p:defaultTextStyle", "p:modifyVerifier", "p:extLst"}
	spOrder           = []string{"p:nvSpPr", "p:spPr", "p:style", "p:txBody", "p:extLst"}
	txBodyOrder       = []string{"a:bodyPr", "a:lstStyle", "a:p"}
	timingOrder       = []string{"p:tnLst", "p:bldLst", "p:extLst"}
	cTnOrder          = []string{"p:stCondLst", "p:endCondLst", "p:endSync", "p:iterate", "p:childTnLst", "p:subTnLst"}
)

func parseXML(b []byte) (*xmlquery.Node, error) {
	return xmlquery.Parse(bytes.NewReader(b))
}

func splitName(name string) (string, string) {
	if prefix, local, ok := strings.Cut(name, ":"); ok {
		return prefix, local
	}
	return "", name
}

// newElement builds an element node. attrs are name/value pairs.
func newElement(name string, attrs ...string) *xmlquery.Node {
	prefix, local := splitName(name)
	n := &xmlquery.Node{
		Type:         xmlquery.ElementNode,
		Data:         local,
		Prefix:       prefix,
		NamespaceURI: namespaces[prefix],
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		setAttr(n, attrs[i], attrs[i+1])
	}
	return n
}

func newText(s string) *xmlquery.Node {
	return &xmlquery.Node{Type: xmlquery.TextNode, Data: s}
}

// el builds an element with children.
func el(name string, attrs []string, children ...*xmlquery.Node) *xmlquery.Node {
	n := newElement(name, attrs...)
	for _, c := range children {
		xmlquery.AddChild(n, c)
	}
	return n
}

func qname(n *xmlquery.Node) string {
	if n.Prefix == "" {
		return n.Data
	}
	return n.Prefix + ":" + n.Data
}

func isElement(n *xmlquery.Node, name string) bool {
	return n != nil && n.Type == xmlquery.ElementNode && qname(n) == name
}

func attr(n *xmlquery.Node, name string) string {
	prefix, local := splitName(name)
	for _, a := range n.Attr {
		if a.Name.Local == local && a.Name.Space == prefix {
			return a.Value
		}
	}
	return ""
}

func hasAttr(n *xmlquery.Node, name string) bool {
	prefix, local := splitName(name)
	for _, a := range n.Attr {
		if a.Name.Local == local && a.Name.Space == prefix {
			return true
		}
	}
	return false
}

func intAttr(n *xmlquery.Node, name string, def int) int {
	v := attr(n, name)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func setAttr(n *xmlquery.Node, name, value string) {
	prefix, local := splitName(name)
	for i, a := range n.Attr {
		if a.Name.Local == local && a.Name.Space == prefix {
			n.Attr[i].Value = value
			return
		}
	}
	n.Attr = append(n.Attr, xmlquery.Attr{Name: xml.Name{Space: prefix, Local: local}, Value: value})
}

// child and children accept a nil parent so lookups can be chained.
func child(n *xmlquery.Node, name string) *xmlquery.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, name) {
			return c
		}
	}
	return nil
}

func children(n *xmlquery.Node, name string) []*xmlquery.Node {
	if n == nil {
		return nil
	}
	var cs []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, name) {
			cs = append(cs, c)
		}
	}
	return cs
}

// documentElement returns the root element of a parsed part.
func documentElement(doc *xmlquery.Node) *xmlquery.Node {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

func insertBefore(ref, n *xmlquery.Node) {
	n.Parent = ref.Parent
	n.PrevSibling = ref.PrevSibling
	n.NextSibling = ref
	if ref.PrevSibling != nil {
		ref.PrevSibling.NextSibling = n
	} else {
		ref.Parent.FirstChild = n
	}
	ref.PrevSibling = n
}

// insertOrdered inserts n into parent keeping the schema order.
func insertOrdered(parent, n *xmlquery.Node, order []string) {
	pos := indexOf(order, qname(n))
	if pos >= 0 {
		for c := parent.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode {
				continue
			}
			if indexOf(order, qname(c)) > pos {
				insertBefore(c, n)
				return
			}
		}
	}
	xmlquery.AddChild(parent, n)
}

// ensureChild returns the named child of parent, creating it in schema order when absent.
func ensureChild(parent *xmlquery.Node, name string, order []string) *xmlquery.Node {
	if c := child(parent, name); c != nil {
		return c
	}
	c := newElement(name)
	insertOrdered(parent, c, order)
	return c
}

func indexOf(order []string, name string) int {
	for i, o := range order {
		if o == name {
			return i
		}
	}
	return -1
}

func cloneNode(n *xmlquery.Node) *xmlquery.Node {
	c := &xmlquery.Node{
		Type:         n.Type,
		Data:         n.Data,
		Prefix:       n.Prefix,
		NamespaceURI: n.NamespaceURI,
		Attr:         append([]xmlquery.Attr(nil), n.Attr...),
	}
	for cc := n.FirstChild; cc != nil; cc = cc.NextSibling {
		xmlquery.AddChild(c, cloneNode(cc))
	}
	return c
}

// textOf concatenates the text nodes under n.
func textOf(n *xmlquery.Node) string {
	var sb strings.Builder
	var walk func(*xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case xmlquery.TextNode, xmlquery.CharDataNode:
				sb.WriteString(c.Data)
			case xmlquery.ElementNode:
				walk(c)
			}
		}
	}
	walk(n)
	return sb.String()
}

// marshalXML serializes a parsed part keeping namespace prefixes as they are
// and writing childless elements as empty tags.
func marshalXML(doc *xmlquery.Node) []byte {
	var buf bytes.Buffer
	wroteDecl := false
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.DeclarationNode:
			writeDeclaration(&buf, c)
			wroteDecl = true
		case xmlquery.ElementNode:
			if !wroteDecl {
				buf.WriteString(xmlHeader)
				wroteDecl = true
			}
			writeNode(&buf, c)
		case xmlquery.CommentNode:
			writeNode(&buf, c)
		}
	}
	return buf.Bytes()
}

func writeDeclaration(buf *bytes.Buffer, n *xmlquery.Node) {
	if len(n.Attr) == 0 {
		buf.WriteString(xmlHeader)
		return
	}
	buf.WriteString("<?xml")
	for _, a := range n.Attr {
		buf.WriteString(" " + a.Name.Local + `="` + escapeAttr(a.Value) + `"`)
	}
	buf.WriteString("?>\n")
}

func writeNode(buf *bytes.Buffer, n *xmlquery.Node) {
	switch n.Type {
	case xmlquery.ElementNode:
		name := qname(n)
		buf.WriteString("<" + name)
		for _, a := range n.Attr {
			buf.WriteString(" " + attrName(a) + `="` + escapeAttr(a.Value) + `"`)
		}
		if n.FirstChild == nil {
			buf.WriteString("/>")
			return
		}
		buf.WriteString(">")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(buf, c)
		}
		buf.WriteString("</" + name + ">")
	case xmlquery.TextNode, xmlquery.CharDataNode:
		buf.WriteString(escapeText(n.Data))
	case xmlquery.CommentNode:
		buf.WriteString("<!--" + n.Data + "-->")
	}
}

func attrName(a xmlquery.Attr) string {
	switch a.Name.Space {
	case "":
		return a.Name.Local
	case nsXML:
		return "xml:" + a.Name.Local
	default:
		return a.Name.Space + ":" + a.Name.Local
	}
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;")
)

func escapeText(s string) string {
	return textEscaper.Replace(stripIllegal(s))
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(stripIllegal(s))
}

// stripIllegal drops characters outside the XML 1.0 character range and
// replaces invalid UTF-8 with U+FFFD.
func stripIllegal(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\r':
			return r
		case r < 0x20, r == 0xFFFE, r == 0xFFFF:
			return -1
		}
		return r
	}, s)
}
