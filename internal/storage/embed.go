package storage

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"time"

	"github.com/starford/devcase/internal/checksum"
	"github.com/starford/devcase/internal/models"
)

// Embedded implements Provider over an fs.FS, typically an embed.FS compiled
// into the binary. It cannot be written.
type Embedded struct {
	fsys fs.FS
}

// NewEmbedded creates a read-only provider over fsys.
func NewEmbedded(fsys fs.FS) *Embedded {
	return &Embedded{fsys: fsys}
}

// List returns metadata for every data file under dir, sorted by path.
// Embedded files carry no modification time.
func (e *Embedded) List(dir string) ([]models.SourceFile, error) {
	if dir == "" {
		dir = "."
	}
	var out []models.SourceFile
	err := fs.WalkDir(e.fsys, dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !IsDataFile(d.Name()) {
			return nil
		}
		data, err := fs.ReadFile(e.fsys, p)
		if err != nil {
			return err
		}
		out = append(out, models.SourceFile{
			Path:      p,
			Checksum:  checksum.Sum(data),
			UpdatedAt: time.Time{},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list embedded: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Read returns the raw bytes of an embedded file.
func (e *Embedded) Read(p string) ([]byte, error) {
	data, err := fs.ReadFile(e.fsys, path.Clean(p))
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", p, err)
	}
	return data, nil
}

// Write always fails with ErrReadOnly.
func (e *Embedded) Write(p string, _ []byte) error {
	return fmt.Errorf("%w: %s", ErrReadOnly, p)
}
