package brandeck

import (
	"testing"
	"time"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Quarterly Review", "quarterly-review"},
		{"  Hello,  World!! ", "hello-world"},
		{"Café Crème 2025", "cafe-creme-2025"},
		{"Q3 -- Results", "q3-results"},
		{"日本語", "deck"},
		{"", "deck"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slug(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultFilename(t *testing.T) {
	got := DefaultFilename("Kick-off", time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC))
	if want := "2025-01-02-kick-off.pptx"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
