package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/k1LoW/brandeck/pptx/pptxtest"
)

func TestConvertTemplate(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "brand.potx")
	pptxtest.Default().WriteFile(t, src)

	dst := filepath.Join(dir, "brand.pptx")
	converted, err := ConvertTemplate(src, dst)
	if err != nil {
		t.Fatal(err)
	}
	if !converted {
		t.Error("want template flavor to be converted")
	}
	ct := readContentTypes(t, dst)
	if strings.Contains(ct, pptxtest.TemplateContentType) {
		t.Errorf("template content type remains: %s", ct)
	}
	if !strings.Contains(ct, pptxtest.PresentationContentType) {
		t.Errorf("presentation content type missing: %s", ct)
	}

	again := filepath.Join(dir, "again.pptx")
	converted, err = ConvertTemplate(dst, again)
	if err != nil {
		t.Fatal(err)
	}
	if converted {
		t.Error("converting a presentation must be a no-op")
	}
	if got := readContentTypes(t, again); got != ct {
		t.Errorf("got %s, want %s", got, ct)
	}
	pkg, err := OpenPackage(again)
	if err != nil {
		t.Fatal(err)
	}
	orig, err := OpenPackage(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(pkg.Names()) != len(orig.Names()) {
		t.Errorf("got %d parts, want %d", len(pkg.Names()), len(orig.Names()))
	}
}

func TestConvertTemplateInvalid(t *testing.T) {
	dir := t.TempDir()
	notZip := filepath.Join(dir, "not.potx")
	if err := os.WriteFile(notZip, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}
	noTypes := filepath.Join(dir, "empty.potx")
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	if _, err := zw.Create("ppt/presentation.xml"); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(noTypes, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	for _, src := range []string{notZip, noTypes} {
		dst := filepath.Join(dir, "out.pptx")
		if _, err := ConvertTemplate(src, dst); !errors.Is(err, ErrFormat) {
			t.Errorf("%s: got %v, want ErrFormat", src, err)
		}
		if _, err := os.Stat(dst); !os.IsNotExist(err) {
			t.Errorf("%s: output must not be created", src)
		}
		if _, err := Open(src); !errors.Is(err, ErrFormat) {
			t.Errorf("%s: got %v, want ErrFormat", src, err)
		}
	}
}

func TestRelationshipTargets(t *testing.T) {
	tests := []struct {
		source string
		dest   string
		target string
	}{
		{"ppt/presentation.xml", "ppt/slides/slide1.xml", "slides/slide1.xml"},
		{"ppt/slides/slide1.xml", "ppt/slideLayouts/slideLayout2.xml", "../slideLayouts/slideLayout2.xml"},
		{"ppt/slideMasters/slideMaster1.xml", "ppt/slideLayouts/slideLayout1.xml", "../slideLayouts/slideLayout1.xml"},
	}
	for _, tt := range tests {
		if got := relativeTarget(tt.source, tt.dest); got != tt.target {
			t.Errorf("relativeTarget(%q, %q) = %q, want %q", tt.source, tt.dest, got, tt.target)
		}
		if got := resolveTarget(tt.source, tt.target); got != tt.dest {
			t.Errorf("resolveTarget(%q, %q) = %q, want %q", tt.source, tt.target, got, tt.dest)
		}
	}
	if got := resolveTarget("", "/ppt/presentation.xml"); got != "ppt/presentation.xml" {
		t.Errorf("got %q", got)
	}
	if got := relsPath("ppt/slides/slide1.xml"); got != "ppt/slides/_rels/slide1.xml.rels" {
		t.Errorf("got %q", got)
	}
	if got := relsPath(""); got != "_rels/.rels" {
		t.Errorf("got %q", got)
	}
}

func readContentTypes(t *testing.T, path string) string {
	t.Helper()
	pkg, err := OpenPackage(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := pkg.Part(contentTypesPart)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
