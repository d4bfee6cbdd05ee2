// Package importer parses bank statement files into import requests.
package importer

import (
	"io"

	"github.com/bankfold-dev/bankfold/internal/importing"
	"github.com/bankfold-dev/bankfold/internal/model"
)

// Parser converts one statement file format into a TransactionImport.
type Parser interface {
	Parse(r io.Reader) (importing.TransactionImport, error)
	CanParse(fileName string) bool
	Format() string
}

// Registry holds the known statement parsers.
type Registry struct {
	parsers []Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a parser. Registration order decides resolution
// priority.
func (r *Registry) Register(p Parser) {
	r.parsers = append(r.parsers, p)
}

// Resolve returns the first parser claiming the file.
func (r *Registry) Resolve(fileName string) (Parser, error) {
	for _, p := range r.parsers {
		if p.CanParse(fileName) {
			return p, nil
		}
	}
	return nil, model.ErrUnsupportedImportFileFormat
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&OFXParser{})
	return r
}
