package brandeck

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/k1LoW/brandeck/config"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

func TestUpload(t *testing.T) {
	var (
		mu   sync.Mutex
		body string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		body = string(b)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "abc123"})
	}))
	t.Cleanup(ts.Close)

	srv, err := drive.NewService(context.Background(), option.WithHTTPClient(ts.Client()), option.WithEndpoint(ts.URL+"/"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Upload.FolderID = "folder"
	u, err := NewUploader(context.Background(), cfg, WithDriveService(srv))
	if err != nil {
		t.Fatal(err)
	}
	deck := filepath.Join(t.TempDir(), "2025-10-01-review.pptx")
	if err := os.WriteFile(deck, []byte("pptx"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := u.Upload(context.Background(), deck)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "abc123" {
		t.Errorf("got id %q", got.ID)
	}
	if want := "https://docs.google.com/presentation/d/abc123/edit"; got.URL != want {
		t.Errorf("got url %q, want %q", got.URL, want)
	}
	mu.Lock()
	defer mu.Unlock()
	for _, want := range []string{googleSlidesMimeType, `"2025-10-01-review"`, `"folder"`} {
		if !strings.Contains(body, want) {
			t.Errorf("request body does not contain %s", want)
		}
	}
}
