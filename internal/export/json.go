package export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/arbortabs/arbor/internal/tabs"
)

// JSONExporter renders a collection snapshot as indented JSON.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Name() string {
	return "JSON snapshot"
}

func (e *JSONExporter) Format() Format {
	return FormatJSON
}

func (e *JSONExporter) FileExtension() string {
	return ".json"
}

func (e *JSONExporter) Export(ctx context.Context, coll *tabs.Collection) ([]byte, error) {
	if coll == nil {
		return nil, ErrInvalidCollection
	}

	data, err := json.MarshalIndent(Capture(coll), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return append(data, '\n'), nil
}
