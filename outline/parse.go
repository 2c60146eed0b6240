package outline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/errors"
)

// rawOutline accepts the key names of earlier outline files as aliases.
type rawOutline struct {
	Title            string         `yaml:"title"`
	Subtitle         string         `yaml:"subtitle"`
	ClosingSubtitle  string         `yaml:"closingSubtitle"`
	ThankYouSubtitle string         `yaml:"thank_you_subtitle"`
	Variables        map[string]any `yaml:"variables"`
	Sections         []*rawSection  `yaml:"sections"`
}

type rawSection struct {
	Name        string     `yaml:"name"`
	Subtitle    string     `yaml:"subtitle"`
	Header      HeaderMode `yaml:"header"`
	SectionType HeaderMode `yaml:"section_type"`
	Slides      []*Slide   `yaml:"slides"`
}

// ParseFile parses an outline file. Files with a .md or .markdown extension
// are parsed as Markdown, everything else as YAML (which includes JSON).
func ParseFile(f string) (_ *Outline, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	var o *Outline
	switch strings.ToLower(filepath.Ext(f)) {
	case ".md", ".markdown":
		o, err = ParseMarkdown(b)
	default:
		o, err = Parse(b)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f, err)
	}
	return o, nil
}

// Parse parses a YAML or JSON outline and expands its variables.
func Parse(b []byte) (*Outline, error) {
	raw := &rawOutline{}
	if err := yaml.Unmarshal(b, raw); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal outline: %w", ErrValidation, err)
	}
	o := &Outline{
		Title:           raw.Title,
		Subtitle:        raw.Subtitle,
		ClosingSubtitle: raw.ClosingSubtitle,
		Variables:       raw.Variables,
	}
	if o.ClosingSubtitle == "" {
		o.ClosingSubtitle = raw.ThankYouSubtitle
	}
	for _, rs := range raw.Sections {
		if rs == nil {
			o.Sections = append(o.Sections, nil)
			continue
		}
		s := &Section{
			Name:     rs.Name,
			Subtitle: rs.Subtitle,
			Header:   rs.Header,
			Slides:   rs.Slides,
		}
		if s.Header == "" {
			s.Header = rs.SectionType
		}
		o.Sections = append(o.Sections, s)
	}
	if err := o.Expand(); err != nil {
		return nil, err
	}
	return o, nil
}
