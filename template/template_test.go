package template

import (
	"os"
	"testing"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		template string
		store    map[string]any
		want     string
		wantErr  bool
	}{
		{
			name:     "no placeholders",
			template: "QUARTERLY REVIEW",
			store:    nil,
			want:     "QUARTERLY REVIEW",
		},
		{
			name:     "outline variable",
			template: "Welcome to {{company}}",
			store:    map[string]any{"company": "Acme Corp"},
			want:     "Welcome to Acme Corp",
		},
		{
			name:     "several variables",
			template: "{{company}} {{year}} roadmap",
			store:    map[string]any{"company": "Acme", "year": 2026},
			want:     "Acme 2026 roadmap",
		},
		{
			name:     "export command",
			template: "soffice --headless --convert-to pdf --outdir {{dir}} {{path}}",
			store:    map[string]any{"dir": "/tmp/decks", "path": "/tmp/decks/2026-10-19-roadmap.pptx"},
			want:     "soffice --headless --convert-to pdf --outdir /tmp/decks /tmp/decks/2026-10-19-roadmap.pptx",
		},
		{
			name:     "env map",
			template: "{{env.HOME}}/decks",
			store:    map[string]any{"env": map[string]string{"HOME": "/home/user"}},
			want:     "/home/user/decks",
		},
		{
			name:     "ternary",
			template: `{{stem == "" ? "deck" : stem}}.pdf`,
			store:    map[string]any{"stem": ""},
			want:     "deck.pdf",
		},
		{
			name:     "arithmetic",
			template: "Q{{quarter + 1}}",
			store:    map[string]any{"quarter": 3},
			want:     "Q4",
		},
		{
			name:     "strings extension is not enabled",
			template: "{{title.upperAscii()}}",
			store:    map[string]any{"title": "agenda"},
			wantErr:  true,
		},
		{
			name:     "undefined variable",
			template: "{{undefined}}",
			store:    map[string]any{"other": "value"},
			wantErr:  true,
		},
		{
			name:     "invalid expression",
			template: "{{year == }}",
			store:    map[string]any{"year": 2026},
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.template, tt.store)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expand() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expand() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnvironToMap(t *testing.T) {
	t.Setenv("BRANDECK_TEST_VALUE", "a=b")
	env := EnvironToMap()
	if got := env["BRANDECK_TEST_VALUE"]; got != "a=b" {
		t.Errorf("EnvironToMap()[BRANDECK_TEST_VALUE] = %q, want %q", got, "a=b")
	}
	if _, ok := env["PATH"]; !ok && os.Getenv("PATH") != "" {
		t.Error("EnvironToMap() dropped PATH")
	}
}

func TestCreateCELEnv(t *testing.T) {
	store := map[string]any{
		"title":  "Roadmap",
		"year":   2026,
		"draft":  true,
		"env":    map[string]string{"HOME": "/home/user"},
		"extras": map[string]any{"owner": "platform"},
	}
	env, err := createCELEnv(store)
	if err != nil {
		t.Fatalf("createCELEnv() error = %v", err)
	}
	if _, issues := env.Compile(`title + " " + string(year)`); issues != nil && issues.Err() != nil {
		t.Errorf("failed to compile expression: %v", issues.Err())
	}
}
