package outline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSlideCount(t *testing.T) {
	tests := []struct {
		name string
		o    *Outline
		want int
	}{
		{"empty", &Outline{Title: "t"}, 2},
		{
			"one section without header and one slide",
			&Outline{Title: "t", Sections: []*Section{
				{Header: HeaderNone, Slides: []*Slide{{Type: TypeContent, Title: "a"}}},
			}},
			3,
		},
		{
			"headers count unless none",
			&Outline{Title: "t", Sections: []*Section{
				{Name: "a", Slides: []*Slide{{Type: TypeContent, Title: "a"}, {Type: TypeQuote, Quote: "q"}}},
				{Name: "b", Header: HeaderPale},
				{Name: "c", Header: HeaderNone, Slides: []*Slide{{Type: TypeContent, Title: "c"}}},
			}},
			7,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.o.SlideCount(); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		o       *Outline
		wantErr bool
	}{
		{
			"valid",
			&Outline{Title: "t", Sections: []*Section{
				{Name: "s", Slides: []*Slide{{Type: TypeContent, Title: "a"}, {Type: TypeQuote, Quote: "q"}, {Type: "about"}}},
			}},
			false,
		},
		{"no title", &Outline{}, true},
		{"unsupported header", &Outline{Title: "t", Sections: []*Section{{Name: "s", Header: "red"}}}, true},
		{"header without name", &Outline{Title: "t", Sections: []*Section{{Header: HeaderPale}}}, true},
		{"nameless section without header", &Outline{Title: "t", Sections: []*Section{{Header: HeaderNone}}}, false},
		{"empty type", &Outline{Title: "t", Sections: []*Section{{Name: "s", Slides: []*Slide{{Title: "a"}}}}}, true},
		{"content without title", &Outline{Title: "t", Sections: []*Section{{Name: "s", Slides: []*Slide{{Type: TypeContent}}}}}, true},
		{"quote without quote", &Outline{Title: "t", Sections: []*Section{{Name: "s", Slides: []*Slide{{Type: TypeQuote}}}}}, true},
		{"layout on quote", &Outline{Title: "t", Sections: []*Section{{Name: "s", Slides: []*Slide{{Type: TypeQuote, Quote: "q", Layout: "content_pale"}}}}}, true},
		{"nil slide", &Outline{Title: "t", Sections: []*Section{{Name: "s", Slides: []*Slide{nil}}}}, true},
		{"control character in title", &Outline{Title: "Q3\vreview"}, true},
		{"control character in section name", &Outline{Title: "t", Sections: []*Section{{Name: "s\x00"}}}, true},
		{"control character in intro", &Outline{Title: "t", Sections: []*Section{{Name: "s", Slides: []*Slide{{Type: TypeContent, Title: "a", Intro: "bad\x01char"}}}}}, true},
		{"invalid UTF-8 in attribution", &Outline{Title: "t", Sections: []*Section{{Name: "s", Slides: []*Slide{{Type: TypeQuote, Quote: "q", Attribution: "\xff"}}}}}, true},
		{"tab and line breaks are allowed", &Outline{Title: "a\tb\r\nc", Sections: []*Section{{Name: "s", Slides: []*Slide{{Type: TypeContent, Title: "a", Bullets: []string{"x\ty"}}}}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.o.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("got %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestLint(t *testing.T) {
	o := &Outline{Title: "t", Sections: []*Section{
		{Name: "s", Slides: []*Slide{
			{Type: TypeContent, Title: "ok", Intro: "i", Bullets: []string{"1", "2", "3", "4"}},
			{Type: TypeContent, Title: "many", Intro: "i", Bullets: []string{"1", "2", "3", "4", "5"}},
			{Type: TypeContent, Title: "no intro"},
			{Type: TypeQuote, Quote: "q"},
		}},
	}}
	got := o.Lint()
	want := []string{
		`section 1 ("s") slide 2 ("many"): 5 bullets, at most 4 recommended`,
		`section 1 ("s") slide 3 ("no intro"): intro is empty`,
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Error(diff)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("lint warnings must not fail validation: %v", err)
	}

	withNil := &Outline{Title: "t", Sections: []*Section{nil, {Name: "s", Slides: []*Slide{{Type: TypeContent, Title: "x"}}}}}
	want = []string{`section 2 ("s") slide 1 ("x"): intro is empty`}
	if diff := cmp.Diff(withNil.Lint(), want); diff != "" {
		t.Error(diff)
	}
}

func TestSelectSections(t *testing.T) {
	o := &Outline{Title: "t", Sections: []*Section{{Name: "a"}, {Name: "b"}, {Name: "c"}}}
	tests := []struct {
		indices []int
		want    []string
		wantErr bool
	}{
		{[]int{1, 3}, []string{"a", "c"}, false},
		{[]int{3, 1}, []string{"c", "a"}, false},
		{[]int{}, []string{}, false},
		{[]int{4}, nil, true},
		{[]int{0}, nil, true},
	}
	for _, tt := range tests {
		got, err := o.SelectSections(tt.indices)
		if (err != nil) != tt.wantErr {
			t.Errorf("SelectSections(%v): got err %v, wantErr %v", tt.indices, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		names := []string{}
		for _, s := range got.Sections {
			names = append(names, s.Name)
		}
		if diff := cmp.Diff(names, tt.want); diff != "" {
			t.Errorf("SelectSections(%v): %s", tt.indices, diff)
		}
	}
	if len(o.Sections) != 3 {
		t.Error("SelectSections must not modify the outline")
	}
}

func TestParse(t *testing.T) {
	in := `title: Deck
thank_you_subtitle: bye
variables:
  name: Alice
  quarter: 2
sections:
  - name: "Hello {{name}}"
    section_type: pale
    slides:
      - type: content
        title: "Q{{quarter + 1}} plan"
        intro: intro
        bullets:
          - one
      - type: quote
        quote: q
        attribution: a
  - name: Plain
    header: none
    section_type: pale
`
	got, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	want := &Outline{
		Title:           "Deck",
		ClosingSubtitle: "bye",
		Variables:       got.Variables,
		Sections: []*Section{
			{
				Name:   "Hello Alice",
				Header: HeaderPale,
				Slides: []*Slide{
					{Type: TypeContent, Title: "Q3 plan", Intro: "intro", Bullets: []string{"one"}},
					{Type: TypeQuote, Quote: "q", Attribution: "a"},
				},
			},
			{Name: "Plain", Header: HeaderNone},
		},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Error(diff)
	}
}

func TestParseJSON(t *testing.T) {
	in := `{"title":"Deck","sections":[{"name":"s","slides":[{"type":"content","title":"a","bullets":["x","y"]}]}]}`
	got, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got.Sections[0].Slides[0].Bullets, []string{"x", "y"}); diff != "" {
		t.Error(diff)
	}
}

func TestParseUndefinedVariable(t *testing.T) {
	in := "title: \"{{missing}}\"\nvariables:\n  name: x\n"
	if _, err := Parse([]byte(in)); !errors.Is(err, ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "deck.yml")
	if err := os.WriteFile(yml, []byte("title: From YAML\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	md := filepath.Join(dir, "deck.md")
	if err := os.WriteFile(md, []byte("---\ntitle: From Markdown\n---\n\n## Slide\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	for f, want := range map[string]string{yml: "From YAML", md: "From Markdown"} {
		o, err := ParseFile(f)
		if err != nil {
			t.Fatal(err)
		}
		if o.Title != want {
			t.Errorf("%s: got %q, want %q", f, o.Title, want)
		}
	}
	if _, err := ParseFile(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("want error for missing file")
	}
}
