package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sort"
)

// ErrConfig is returned for configuration mistakes: unknown layout keys,
// placeholder indices missing from a layout and malformed style values.
var ErrConfig = errors.New("config error")

var hexColorRe = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// Validate checks the configuration for internal consistency. Consistency
// with the template itself is checked when the template is loaded.
func (c *Config) Validate() error {
	if c.Style == nil || c.BodyPlaceholder == nil || c.Agenda == nil || c.Closing == nil || c.Export == nil || c.Upload == nil {
		return fmt.Errorf("%w: defaults are not filled, call FillDefaults before Validate", ErrConfig)
	}
	var errs []error
	s := c.Style
	for name, v := range map[string]string{
		"accentColor": s.AccentColor,
		"textOnDark":  s.TextOnDark,
		"textOnLight": s.TextOnLight,
	} {
		if !hexColorRe.MatchString(v) {
			errs = append(errs, fmt.Errorf("%w: style.%s: invalid hex colour %q", ErrConfig, name, v))
		}
	}
	if s.LineSpacing < 0 {
		errs = append(errs, fmt.Errorf("%w: style.lineSpacing must be positive: %v", ErrConfig, s.LineSpacing))
	}
	for name, ts := range map[string]TextStyle{
		"title":       s.Title,
		"subtitle":    s.Subtitle,
		"body":        s.Body,
		"quote":       s.Quote,
		"attribution": s.Attribution,
	} {
		switch ts.Case {
		case CaseNone, CaseUpper, CaseLower, CaseTitle:
		default:
			errs = append(errs, fmt.Errorf("%w: style.%s.case: unsupported case %q", ErrConfig, name, ts.Case))
		}
		if ts.Size < 0 {
			errs = append(errs, fmt.Errorf("%w: style.%s.size must not be negative: %d", ErrConfig, name, ts.Size))
		}
	}
	if s.Animation.Trigger != TriggerOnClick {
		errs = append(errs, fmt.Errorf("%w: style.animation.trigger: unsupported trigger %q", ErrConfig, s.Animation.Trigger))
	}
	if s.Animation.Duration < 0 {
		errs = append(errs, fmt.Errorf("%w: style.animation.duration must not be negative: %d", ErrConfig, s.Animation.Duration))
	}

	for _, key := range c.layoutKeys() {
		l := c.Layouts[key]
		if l == nil {
			errs = append(errs, fmt.Errorf("%w: layouts.%s is empty", ErrConfig, key))
			continue
		}
		if l.Index < 0 {
			errs = append(errs, fmt.Errorf("%w: layouts.%s: negative layout index %d", ErrConfig, key, l.Index))
		}
	}

	check := func(field, key string) {
		if _, ok := c.Layouts[key]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s: unknown layout key %q", ErrConfig, field, key))
		}
	}
	for _, key := range c.Fixed {
		check("fixed", key)
	}
	for _, key := range c.Opening {
		check("opening", key)
	}
	for _, key := range c.Closing.Before {
		check("closing.before", key)
	}
	for _, key := range c.ContentVariants {
		check("contentVariants", key)
		if l, ok := c.Layouts[key]; ok && l != nil && !l.HasPlaceholder(*c.BodyPlaceholder) {
			errs = append(errs, fmt.Errorf("%w: layouts.%s: body placeholder %d is not declared", ErrConfig, key, *c.BodyPlaceholder))
		}
	}
	if c.Agenda.Enabled {
		check("agenda", LayoutAgenda)
	}
	return errors.Join(errs...)
}

// LayoutKeys returns the layout keys in index order.
func (c *Config) LayoutKeys() []string {
	keys := c.layoutKeys()
	slices.SortStableFunc(keys, func(a, b string) int {
		la, lb := c.Layouts[a], c.Layouts[b]
		if la == nil || lb == nil {
			return 0
		}
		return la.Index - lb.Index
	})
	return keys
}

func (c *Config) layoutKeys() []string {
	keys := make([]string, 0, len(c.Layouts))
	for k := range c.Layouts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
