package config

// Style holds the typography, colour, bullet and animation settings applied
// to every generated slide. It is read-only once loaded.
type Style struct {
	FontFamily  string  `yaml:"fontFamily,omitempty" json:"fontFamily,omitempty"`
	LineSpacing float64 `yaml:"lineSpacing,omitempty" json:"lineSpacing,omitempty"`
	// Hex colours without a leading #
	AccentColor string `yaml:"accentColor,omitempty" json:"accentColor,omitempty"`
	TextOnDark  string `yaml:"textOnDark,omitempty" json:"textOnDark,omitempty"`
	TextOnLight string `yaml:"textOnLight,omitempty" json:"textOnLight,omitempty"`

	Title       TextStyle `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle    TextStyle `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Body        TextStyle `yaml:"body,omitempty" json:"body,omitempty"`
	Quote       TextStyle `yaml:"quote,omitempty" json:"quote,omitempty"`
	Attribution TextStyle `yaml:"attribution,omitempty" json:"attribution,omitempty"`

	Bullet    Bullet    `yaml:"bullet,omitempty" json:"bullet,omitempty"`
	Animation Animation `yaml:"animation,omitempty" json:"animation,omitempty"`
}

// TextStyle is the per-element typography. A zero Size keeps the size inherited from the template.
type TextStyle struct {
	Size int    `yaml:"size,omitempty" json:"size,omitempty"` // points
	Case string `yaml:"case,omitempty" json:"case,omitempty"` // "", upper, lower or title
	Bold bool   `yaml:"bold,omitempty" json:"bold,omitempty"`
}

// Bullet is the bullet glyph and paragraph geometry. Lengths are EMU.
type Bullet struct {
	Char        string `yaml:"char,omitempty" json:"char,omitempty"`
	Font        string `yaml:"font,omitempty" json:"font,omitempty"`
	PitchFamily int    `yaml:"pitchFamily,omitempty" json:"pitchFamily,omitempty"`
	Charset     int    `yaml:"charset,omitempty" json:"charset,omitempty"`
	MarginLeft  int64  `yaml:"marginLeft,omitempty" json:"marginLeft,omitempty"`
	Indent      int64  `yaml:"indent,omitempty" json:"indent,omitempty"`
}

// Animation is the entrance effect added to text placeholders.
type Animation struct {
	Effect   string `yaml:"effect,omitempty" json:"effect,omitempty"`
	PresetID int    `yaml:"presetId,omitempty" json:"presetId,omitempty"`
	Duration int    `yaml:"duration,omitempty" json:"duration,omitempty"` // milliseconds
	Trigger  string `yaml:"trigger,omitempty" json:"trigger,omitempty"`
}

const (
	CaseNone  = ""
	CaseUpper = "upper"
	CaseLower = "lower"
	CaseTitle = "title"

	TriggerOnClick = "onClick"
)

const (
	defaultFontFamily    = "Arial"
	defaultLineSpacing   = 1.2
	defaultAccentColor   = "000000"
	defaultTextOnDark    = "FFFFFF"
	defaultBodySize      = 22
	defaultBulletChar    = "Ø" // arrow in Wingdings
	defaultBulletFont    = "Wingdings"
	defaultBulletPitch   = 2
	defaultBulletCharset = 2
	defaultBulletMargin  = 342900
	defaultEffect        = "dissolve"
	defaultPresetID      = 9
	defaultDuration      = 500
)

// ColorFor returns the text colour for a light or dark background.
func (s *Style) ColorFor(light bool) string {
	if light {
		return s.TextOnLight
	}
	return s.TextOnDark
}

func (s *Style) fillDefaults() {
	if s.FontFamily == "" {
		s.FontFamily = defaultFontFamily
	}
	if s.LineSpacing == 0 {
		s.LineSpacing = defaultLineSpacing
	}
	if s.AccentColor == "" {
		s.AccentColor = defaultAccentColor
	}
	if s.TextOnDark == "" {
		s.TextOnDark = defaultTextOnDark
	}
	if s.TextOnLight == "" {
		s.TextOnLight = s.AccentColor
	}
	if s.Body.Size == 0 {
		s.Body.Size = defaultBodySize
	}
	if s.Bullet.Char == "" {
		s.Bullet.Char = defaultBulletChar
	}
	if s.Bullet.Font == "" {
		s.Bullet.Font = defaultBulletFont
		s.Bullet.PitchFamily = defaultBulletPitch
		s.Bullet.Charset = defaultBulletCharset
	}
	if s.Bullet.MarginLeft == 0 {
		s.Bullet.MarginLeft = defaultBulletMargin
	}
	if s.Bullet.Indent == 0 {
		s.Bullet.Indent = -s.Bullet.MarginLeft
	}
	if s.Animation.Effect == "" {
		s.Animation.Effect = defaultEffect
	}
	if s.Animation.PresetID == 0 {
		s.Animation.PresetID = defaultPresetID
	}
	if s.Animation.Duration == 0 {
		s.Animation.Duration = defaultDuration
	}
	if s.Animation.Trigger == "" {
		s.Animation.Trigger = TriggerOnClick
	}
}
