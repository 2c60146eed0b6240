package outline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const fmSep = "---\n"

// Frontmatter holds the deck level fields of a Markdown outline.
type Frontmatter struct {
	Title            string         `yaml:"title,omitempty"`
	Subtitle         string         `yaml:"subtitle,omitempty"`
	ClosingSubtitle  string         `yaml:"closingSubtitle,omitempty"`
	ThankYouSubtitle string         `yaml:"thank_you_subtitle,omitempty"`
	Variables        map[string]any `yaml:"variables,omitempty"`
}

// sectionConfig and slideConfig are read from `<!-- {...} -->` comments
// following a heading.
type sectionConfig struct {
	Header HeaderMode `json:"header,omitempty"`
}

type slideConfig struct {
	Type   string `json:"type,omitempty"`
	Layout string `json:"layout,omitempty"`
}

var attributionPrefixes = []string{"—", "–", "--", "-", "~"}

var convertRep = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n")

// ParseMarkdown parses a Markdown outline.
//
//	# Section name          starts a section; the next paragraph is its subtitle
//	## Slide title          starts a content slide
//	### Slide subtitle
//	Intro paragraph.
//	- bullet
//	> quote                 makes the slide a quote slide; the next paragraph is the attribution
//
// Deck fields come from YAML frontmatter.
func ParseMarkdown(b []byte) (*Outline, error) {
	fm, body, err := splitFrontmatter(b)
	if err != nil {
		return nil, err
	}
	o := &Outline{}
	if fm != nil {
		o.Title = fm.Title
		o.Subtitle = fm.Subtitle
		o.ClosingSubtitle = fm.ClosingSubtitle
		if o.ClosingSubtitle == "" {
			o.ClosingSubtitle = fm.ThankYouSubtitle
		}
		o.Variables = fm.Variables
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(body))
	var (
		section *Section
		slide   *Slide
	)
	currentSection := func() *Section {
		if section == nil {
			// Slides before the first section heading go to a section without a header.
			section = &Section{Header: HeaderNone}
			o.Sections = append(o.Sections, section)
		}
		return section
	}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch v := n.(type) {
		case *ast.Heading:
			t := inlineText(v, body)
			switch v.Level {
			case 1:
				section = &Section{Name: t}
				o.Sections = append(o.Sections, section)
				slide = nil
			case 2:
				s := currentSection()
				slide = &Slide{Type: TypeContent, Title: t}
				s.Slides = append(s.Slides, slide)
			default:
				switch {
				case slide != nil:
					slide.Subtitle = t
				case section != nil:
					section.Subtitle = t
				}
			}
		case *ast.Paragraph:
			t := inlineText(v, body)
			switch {
			case slide != nil && slide.Type == TypeQuote && slide.Quote != "" && slide.Attribution == "":
				slide.Attribution = trimAttribution(t)
			case slide != nil && slide.Intro == "":
				slide.Intro = t
			case slide != nil:
				slide.Intro += " " + t
			case section != nil && section.Subtitle == "":
				section.Subtitle = t
			}
		case *ast.List:
			if slide == nil {
				continue
			}
			for item := v.FirstChild(); item != nil; item = item.NextSibling() {
				slide.Bullets = append(slide.Bullets, blockText(item, body))
			}
		case *ast.Blockquote:
			if slide == nil {
				continue
			}
			slide.Type = TypeQuote
			slide.Quote = blockText(v, body)
		case *ast.HTMLBlock:
			if v.HTMLBlockType != ast.HTMLBlockType2 {
				continue
			}
			raw := v.Lines().Value(body)
			if v.HasClosure() {
				raw = append(raw, v.ClosureLine.Value(body)...)
			}
			block := strings.TrimSpace(string(raw))
			block = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(block, "<!--"), "-->"))
			if err := applyComment(block, section, slide); err != nil {
				return nil, err
			}
		}
	}
	if err := o.Expand(); err != nil {
		return nil, err
	}
	return o, nil
}

func applyComment(block string, section *Section, slide *Slide) error {
	if !strings.HasPrefix(block, "{") {
		// plain comment
		return nil
	}
	switch {
	case slide != nil:
		cfg := &slideConfig{}
		if err := json.Unmarshal([]byte(block), cfg); err != nil {
			return fmt.Errorf("%w: invalid slide config %q: %w", ErrValidation, block, err)
		}
		if cfg.Type != "" {
			slide.Type = cfg.Type
		}
		slide.Layout = cfg.Layout
	case section != nil:
		cfg := &sectionConfig{}
		if err := json.Unmarshal([]byte(block), cfg); err != nil {
			return fmt.Errorf("%w: invalid section config %q: %w", ErrValidation, block, err)
		}
		section.Header = cfg.Header
	}
	return nil
}

func splitFrontmatter(b []byte) (*Frontmatter, []byte, error) {
	if !bytes.HasPrefix(b, []byte(fmSep)) {
		return nil, b, nil
	}
	stuffs := bytes.SplitN(b, []byte(fmSep), 3)
	if len(stuffs) != 3 {
		return nil, b, nil
	}
	fm := &Frontmatter{}
	if err := yaml.Unmarshal(stuffs[1], fm); err != nil {
		return nil, nil, fmt.Errorf("%w: failed to parse frontmatter: %w", ErrValidation, err)
	}
	return fm, stuffs[2], nil
}

func trimAttribution(s string) string {
	for _, p := range attributionPrefixes {
		if strings.HasPrefix(s, p) {
			return strings.TrimSpace(strings.TrimPrefix(s, p))
		}
	}
	return s
}

// blockText joins the text of the paragraphs under a container block.
func blockText(n ast.Node, src []byte) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			parts = append(parts, inlineText(c, src))
		default:
			if t := blockText(c, src); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, "\n")
}

// inlineText renders inline children as plain text. Emphasis and links keep their text only.
func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(src))
			switch {
			case v.HardLineBreak():
				sb.WriteString("\n")
			case v.SoftLineBreak():
				sb.WriteString(" ")
			}
		case *ast.String:
			sb.Write(v.Value)
		case *ast.AutoLink:
			sb.Write(v.Label(src))
		case *ast.RawHTML:
			for i := 0; i < v.Segments.Len(); i++ {
				seg := v.Segments.At(i)
				sb.WriteString(convertRep.Replace(string(seg.Value(src))))
			}
		default:
			sb.WriteString(inlineText(c, src))
		}
	}
	return strings.TrimSpace(convertRep.Replace(sb.String()))
}
