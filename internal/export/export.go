package export

import (
	"context"
	"errors"

	"github.com/arbortabs/arbor/internal/tabs"
)

// Common errors
var (
	ErrInvalidCollection = errors.New("invalid collection")
	ErrExportFailed      = errors.New("export failed")
)

// Format represents a supported export format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Exporter defines the interface for rendering a tab collection to an
// external representation.
type Exporter interface {
	// Name returns the name of this exporter.
	Name() string

	// Format returns the format this exporter produces.
	Format() Format

	// FileExtension returns the file extension for exported files.
	FileExtension() string

	// Export renders the collection to the target format.
	Export(ctx context.Context, coll *tabs.Collection) ([]byte, error)
}

// Result contains the result of an export operation.
type Result struct {
	Content       []byte
	Format        Format
	FileExtension string
}

// Registry holds all registered exporters.
type Registry struct {
	exporters map[Format]Exporter
}

// NewRegistry creates a registry with the built-in exporters installed.
func NewRegistry() *Registry {
	r := &Registry{exporters: make(map[Format]Exporter)}
	r.Register(NewTextExporter())
	r.Register(NewJSONExporter())
	return r
}

// Register adds an exporter to the registry.
func (r *Registry) Register(exp Exporter) {
	r.exporters[exp.Format()] = exp
}

// Get returns an exporter by format.
func (r *Registry) Get(format Format) (Exporter, bool) {
	exp, ok := r.exporters[format]
	return exp, ok
}

// Export renders the collection using the specified format.
func (r *Registry) Export(ctx context.Context, format Format, coll *tabs.Collection) (*Result, error) {
	exp, ok := r.exporters[format]
	if !ok {
		return nil, ErrExportFailed
	}

	content, err := exp.Export(ctx, coll)
	if err != nil {
		return nil, err
	}

	return &Result{
		Content:       content,
		Format:        format,
		FileExtension: exp.FileExtension(),
	}, nil
}

// ListFormats returns all registered formats.
func (r *Registry) ListFormats() []Format {
	formats := make([]Format, 0, len(r.exporters))
	for f := range r.exporters {
		formats = append(formats, f)
	}
	return formats
}
