// Package outline defines the declarative deck content (sections, slides,
// text and bullets) and parses it from YAML, JSON or Markdown.
package outline

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/k1LoW/brandeck/template"
)

// ErrValidation is returned for outlines the compiler cannot build.
var ErrValidation = errors.New("validation error")

// MaxBullets is the content policy for bullets per slide. Exceeding it is a
// lint warning, not an error.
const MaxBullets = 4

// HeaderMode selects the section header slide.
type HeaderMode string

const (
	HeaderBlue HeaderMode = "blue"
	HeaderPale HeaderMode = "pale"
	HeaderNone HeaderMode = "none"
)

// Slide types with dedicated formatting. Any other type names a layout key.
const (
	TypeContent = "content"
	TypeQuote   = "quote"
)

type Outline struct {
	Title           string         `yaml:"title" json:"title"`
	Subtitle        string         `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	ClosingSubtitle string         `yaml:"closingSubtitle,omitempty" json:"closingSubtitle,omitempty"`
	Variables       map[string]any `yaml:"variables,omitempty" json:"variables,omitempty"`
	Sections        []*Section     `yaml:"sections,omitempty" json:"sections,omitempty"`
}

type Section struct {
	Name     string     `yaml:"name" json:"name"`
	Subtitle string     `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Header   HeaderMode `yaml:"header,omitempty" json:"header,omitempty"`
	Slides   []*Slide   `yaml:"slides,omitempty" json:"slides,omitempty"`
}

type Slide struct {
	Type        string   `yaml:"type" json:"type"`
	Layout      string   `yaml:"layout,omitempty" json:"layout,omitempty"`
	Title       string   `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle    string   `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Intro       string   `yaml:"intro,omitempty" json:"intro,omitempty"`
	Bullets     []string `yaml:"bullets,omitempty" json:"bullets,omitempty"`
	Quote       string   `yaml:"quote,omitempty" json:"quote,omitempty"`
	Attribution string   `yaml:"attribution,omitempty" json:"attribution,omitempty"`
}

// HeaderMode returns the effective header mode; blue when unset.
func (s *Section) HeaderMode() HeaderMode {
	if s.Header == "" {
		return HeaderBlue
	}
	return s.Header
}

// HasHeader reports whether the section gets a header slide.
func (s *Section) HasHeader() bool {
	return s.HeaderMode() != HeaderNone
}

// SlideCount returns the number of slides the outline compiles to, excluding
// configured opening and closing sequences: title, section headers, slides
// and the closing slide.
func (o *Outline) SlideCount() int {
	n := 2
	for _, s := range o.Sections {
		if s.HasHeader() {
			n++
		}
		n += len(s.Slides)
	}
	return n
}

// Validate reports every problem that would stop the compiler.
func (o *Outline) Validate() error {
	var errs []error
	if o.Title == "" {
		errs = append(errs, fmt.Errorf("%w: title is required", ErrValidation))
	}
	if err := checkTexts(map[string]string{
		"title":           o.Title,
		"subtitle":        o.Subtitle,
		"closingSubtitle": o.ClosingSubtitle,
	}); err != nil {
		errs = append(errs, err)
	}
	for i, s := range o.Sections {
		if s == nil {
			errs = append(errs, fmt.Errorf("%w: section %d is empty", ErrValidation, i+1))
			continue
		}
		switch s.Header {
		case "", HeaderBlue, HeaderPale, HeaderNone:
		default:
			errs = append(errs, fmt.Errorf("%w: section %d (%q): unsupported header mode %q", ErrValidation, i+1, s.Name, s.Header))
		}
		if s.HasHeader() && s.Name == "" {
			errs = append(errs, fmt.Errorf("%w: section %d: name is required for a %s header", ErrValidation, i+1, s.HeaderMode()))
		}
		if err := checkTexts(map[string]string{"name": s.Name, "subtitle": s.Subtitle}); err != nil {
			errs = append(errs, fmt.Errorf("section %d (%q): %w", i+1, s.Name, err))
		}
		for j, sl := range s.Slides {
			if sl == nil {
				errs = append(errs, fmt.Errorf("%w: section %d (%q) slide %d is empty", ErrValidation, i+1, s.Name, j+1))
				continue
			}
			if err := sl.validate(); err != nil {
				errs = append(errs, fmt.Errorf("section %d (%q) slide %d: %w", i+1, s.Name, j+1, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (s *Slide) validate() error {
	texts := map[string]string{
		"title":       s.Title,
		"subtitle":    s.Subtitle,
		"intro":       s.Intro,
		"quote":       s.Quote,
		"attribution": s.Attribution,
	}
	for i, b := range s.Bullets {
		texts[fmt.Sprintf("bullet %d", i+1)] = b
	}
	if err := checkTexts(texts); err != nil {
		return err
	}
	switch s.Type {
	case "":
		return fmt.Errorf("%w: slide type is required", ErrValidation)
	case TypeContent:
		if s.Title == "" {
			return fmt.Errorf("%w: content slide requires a title", ErrValidation)
		}
	case TypeQuote:
		if s.Quote == "" {
			return fmt.Errorf("%w: quote slide requires quote text", ErrValidation)
		}
	}
	if s.Layout != "" && s.Type != TypeContent {
		return fmt.Errorf("%w: layout override is only supported for content slides, got type %q", ErrValidation, s.Type)
	}
	return nil
}

// checkTexts rejects text that cannot be written to a slide: invalid UTF-8
// and characters outside the XML 1.0 character range.
func checkTexts(texts map[string]string) error {
	fields := make([]string, 0, len(texts))
	for f := range texts {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	var errs []error
	for _, f := range fields {
		v := texts[f]
		if !utf8.ValidString(v) {
			errs = append(errs, fmt.Errorf("%w: %s is not valid UTF-8", ErrValidation, f))
			continue
		}
		for _, r := range v {
			if !isXMLChar(r) {
				errs = append(errs, fmt.Errorf("%w: %s contains illegal character %U", ErrValidation, f, r))
				break
			}
		}
	}
	return errors.Join(errs...)
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r < 0x20:
		return false
	case r == 0xFFFE, r == 0xFFFF:
		return false
	}
	return true
}

// Lint returns content policy warnings. They never stop generation.
func (o *Outline) Lint() []string {
	var warns []string
	for i, s := range o.Sections {
		if s == nil {
			continue
		}
		for j, sl := range s.Slides {
			if sl == nil || sl.Type != TypeContent {
				continue
			}
			if len(sl.Bullets) > MaxBullets {
				warns = append(warns, fmt.Sprintf("section %d (%q) slide %d (%q): %d bullets, at most %d recommended", i+1, s.Name, j+1, sl.Title, len(sl.Bullets), MaxBullets))
			}
			if sl.Intro == "" {
				warns = append(warns, fmt.Sprintf("section %d (%q) slide %d (%q): intro is empty", i+1, s.Name, j+1, sl.Title))
			}
		}
	}
	return warns
}

// SelectSections returns a copy of the outline keeping only the sections at
// the given 1-based indices, in the given order.
func (o *Outline) SelectSections(indices []int) (*Outline, error) {
	selected := *o
	selected.Sections = make([]*Section, 0, len(indices))
	for _, idx := range indices {
		if idx < 1 || idx > len(o.Sections) {
			return nil, fmt.Errorf("%w: section %d out of range (total sections: %d)", ErrValidation, idx, len(o.Sections))
		}
		selected.Sections = append(selected.Sections, o.Sections[idx-1])
	}
	return &selected, nil
}

// Expand substitutes {{expr}} in every text field using Variables.
func (o *Outline) Expand() error {
	if len(o.Variables) == 0 {
		return nil
	}
	store := make(map[string]any, len(o.Variables))
	for k, v := range o.Variables {
		store[k] = normalizeVariable(v)
	}
	var err error
	expand := func(s *string) {
		if err != nil {
			return
		}
		var expanded string
		expanded, err = template.Expand(*s, store)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrValidation, err)
			return
		}
		*s = expanded
	}
	expand(&o.Title)
	expand(&o.Subtitle)
	expand(&o.ClosingSubtitle)
	for _, s := range o.Sections {
		if s == nil {
			continue
		}
		expand(&s.Name)
		expand(&s.Subtitle)
		for _, sl := range s.Slides {
			if sl == nil {
				continue
			}
			expand(&sl.Title)
			expand(&sl.Subtitle)
			expand(&sl.Intro)
			for i := range sl.Bullets {
				expand(&sl.Bullets[i])
			}
			expand(&sl.Quote)
			expand(&sl.Attribution)
		}
	}
	return err
}

// normalizeVariable converts decoded YAML numbers to the types CEL arithmetic expects.
func normalizeVariable(v any) any {
	switch vv := v.(type) {
	case uint64:
		if vv <= math.MaxInt64 {
			return int64(vv)
		}
	case int:
		return int64(vv)
	case map[string]any:
		m := make(map[string]any, len(vv))
		for k, e := range vv {
			m[k] = normalizeVariable(e)
		}
		return m
	case []any:
		l := make([]any, len(vv))
		for i, e := range vv {
			l[i] = normalizeVariable(e)
		}
		return l
	}
	return v
}
