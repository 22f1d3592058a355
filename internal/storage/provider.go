// Package storage defines where catalog data files are read from and where
// published artifacts are written to.
package storage

import (
	"errors"
	"strings"

	"github.com/starford/devcase/internal/models"
)

// ErrReadOnly is returned by Write on providers that cannot be written.
var ErrReadOnly = errors.New("storage: read-only provider")

// Provider is the interface for data directory operations.
type Provider interface {
	// List returns metadata for every data file (.yaml, .yml) under dir.
	List(dir string) ([]models.SourceFile, error)
	// Read returns the raw bytes of the file at path (relative to the root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to the root).
	Write(path string, content []byte) error
}

// IsDataFile reports whether name looks like a catalog data file.
func IsDataFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
