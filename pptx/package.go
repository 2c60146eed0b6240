// Package pptx reads, mutates and writes PresentationML packages (.pptx and .potx).
package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrFormat is returned for archives that are not well-formed presentation packages.
var ErrFormat = errors.New("format error")

// ErrPlaceholderNotFound is returned when a slide has no placeholder with the requested index.
var ErrPlaceholderNotFound = errors.New("placeholder not found")

const (
	contentTypesPart = "[Content_Types].xml"
	rootRelsPart     = "_rels/.rels"

	templateMainType     = "application/vnd.openxmlformats-officedocument.presentationml.template.main+xml"
	presentationMainType = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
)

type part struct {
	header zip.FileHeader
	data   []byte
}

// Package is an in-memory zip package. Part order is kept on write.
type Package struct {
	parts []*part
	index map[string]*part
}

// OpenPackage reads the package at path.
func OpenPackage(path string) (*Package, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pkg, err := ReadPackage(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pkg, nil
}

// ReadPackage reads a package from r.
func ReadPackage(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: not a zip archive: %w", ErrFormat, err)
	}
	pkg := &Package{index: map[string]*part{}}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, f.Name, err)
		}
		p := &part{header: f.FileHeader, data: b}
		pkg.parts = append(pkg.parts, p)
		pkg.index[f.Name] = p
	}
	if !pkg.Has(contentTypesPart) {
		return nil, fmt.Errorf("%w: missing %s", ErrFormat, contentTypesPart)
	}
	return pkg, nil
}

// Names returns the part names in archive order.
func (pkg *Package) Names() []string {
	names := make([]string, 0, len(pkg.parts))
	for _, p := range pkg.parts {
		names = append(names, p.header.Name)
	}
	return names
}

func (pkg *Package) Has(name string) bool {
	_, ok := pkg.index[name]
	return ok
}

// Part returns the content of the named part.
func (pkg *Package) Part(name string) ([]byte, error) {
	p, ok := pkg.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing part %s", ErrFormat, name)
	}
	return p.data, nil
}

// SetPart replaces or appends the named part.
func (pkg *Package) SetPart(name string, b []byte) {
	if p, ok := pkg.index[name]; ok {
		p.data = b
		return
	}
	p := &part{header: zip.FileHeader{Name: name, Method: zip.Deflate}, data: b}
	pkg.parts = append(pkg.parts, p)
	pkg.index[name] = p
}

func (pkg *Package) DeletePart(name string) {
	if _, ok := pkg.index[name]; !ok {
		return
	}
	delete(pkg.index, name)
	for i, p := range pkg.parts {
		if p.header.Name == name {
			pkg.parts = append(pkg.parts[:i], pkg.parts[i+1:]...)
			return
		}
	}
}

// Write writes the package as a zip archive.
func (pkg *Package) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, p := range pkg.parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.header.Name,
			Method:   zip.Deflate,
			Modified: p.header.Modified,
		})
		if err != nil {
			return err
		}
		if _, err := fw.Write(p.data); err != nil {
			return err
		}
	}
	return zw.Close()
}

// Save writes the package to path. Nothing is created at path unless the
// whole archive was written.
func (pkg *Package) Save(path string) error {
	return writeFileAtomic(path, pkg.Write)
}

// ConvertTemplate copies the package at src to dst, declaring the main part as
// a presentation instead of a template. Entries other than the content types
// part are copied without recompression. It reports whether the content type
// was rewritten; converting a presentation leaves it untouched.
func ConvertTemplate(src, dst string) (converted bool, err error) {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return false, fmt.Errorf("%w: %s: not a zip archive: %w", ErrFormat, src, err)
	}
	defer func() {
		_ = zr.Close()
	}()
	found := false
	for _, f := range zr.File {
		if f.Name == contentTypesPart {
			found = true
			break
		}
	}
	if !found {
		return false, fmt.Errorf("%w: %s: missing %s", ErrFormat, src, contentTypesPart)
	}
	err = writeFileAtomic(dst, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		for _, f := range zr.File {
			if f.Name != contentTypesPart {
				if err := zw.Copy(f); err != nil {
					return err
				}
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return err
			}
			b, err := io.ReadAll(rc)
			_ = rc.Close()
			if err != nil {
				return err
			}
			b, converted = convertContentTypes(b)
			fw, err := zw.CreateHeader(&zip.FileHeader{
				Name:     f.Name,
				Method:   zip.Deflate,
				Modified: f.Modified,
			})
			if err != nil {
				return err
			}
			if _, err := fw.Write(b); err != nil {
				return err
			}
		}
		return zw.Close()
	})
	if err != nil {
		return false, err
	}
	return converted, nil
}

func convertContentTypes(b []byte) ([]byte, bool) {
	if !bytes.Contains(b, []byte(templateMainType)) {
		return b, false
	}
	return bytes.ReplaceAll(b, []byte(templateMainType), []byte(presentationMainType)), true
}

func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()
	if err := write(f); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
