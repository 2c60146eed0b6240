package config

// Layout maps a symbolic slide type to a layout of the template.
// Index is the position of the layout in the first slide master and
// Placeholders are the placeholder indices the compiler may populate, in
// title, subtitle, body order.
type Layout struct {
	Index        int    `yaml:"index" json:"index"`
	Placeholders []int  `yaml:"placeholders,omitempty" json:"placeholders,omitempty"`
	Use          string `yaml:"use,omitempty" json:"use,omitempty"`
	Light        bool   `yaml:"light,omitempty" json:"light,omitempty"`
}

// Layout keys the compiler looks up by role.
const (
	LayoutTitle        = "title"
	LayoutAgenda       = "menu"
	LayoutSection      = "section"
	LayoutSectionPale  = "section_pale"
	LayoutAbout        = "about"
	LayoutContentWhite = "content_white"
	LayoutContentPale  = "content_pale"
	LayoutQuote        = "quote"
	LayoutCTA          = "cta"
	LayoutClosing      = "thank_you"
)

const (
	defaultBodyPlaceholder = 13
	defaultExportCommand   = "soffice --headless --convert-to pdf --outdir {{dir}} {{path}}"
)

func defaultLayouts() map[string]*Layout {
	return map[string]*Layout{
		LayoutTitle:        {Index: 0, Placeholders: []int{0, 1}, Use: "Opening title"},
		LayoutAgenda:       {Index: 1, Placeholders: []int{0, 1}, Use: "Agenda", Light: true},
		LayoutSection:      {Index: 2, Placeholders: []int{0, 1}, Use: "Section divider"},
		LayoutSectionPale:  {Index: 3, Placeholders: []int{0, 1}, Use: "Section divider (pale)", Light: true},
		LayoutAbout:        {Index: 4, Use: "About (fixed)"},
		LayoutContentWhite: {Index: 5, Placeholders: []int{0, 1, defaultBodyPlaceholder}, Use: "Body content (white)", Light: true},
		LayoutContentPale:  {Index: 6, Placeholders: []int{0, 1, defaultBodyPlaceholder}, Use: "Body content (pale)", Light: true},
		LayoutQuote:        {Index: 7, Placeholders: []int{0, 1}, Use: "Quote", Light: true},
		LayoutCTA:          {Index: 8, Use: "Call to action (fixed)"},
		LayoutClosing:      {Index: 9, Placeholders: []int{0, 1}, Use: "Closing"},
	}
}

// HasPlaceholder reports whether idx is declared for the layout.
func (l *Layout) HasPlaceholder(idx int) bool {
	for _, p := range l.Placeholders {
		if p == idx {
			return true
		}
	}
	return false
}
