package brandeck

import (
	"github.com/k1LoW/brandeck/config"
	"github.com/k1LoW/brandeck/outline"
	"github.com/k1LoW/brandeck/pptx"
)

// Error kinds. Every error returned by this package wraps one of them when
// the cause is known, so callers can test with errors.Is.
var (
	// ErrConfig: unknown layout key, placeholder index absent from the
	// template or the layout table, malformed style.
	ErrConfig = config.ErrConfig
	// ErrFormat: invalid archive or missing part.
	ErrFormat = pptx.ErrFormat
	// ErrValidation: malformed outline.
	ErrValidation = outline.ErrValidation
)
