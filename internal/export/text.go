package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/arbortabs/arbor/internal/tabs"
)

// TextExporter renders a collection as an indented plain-text outline.
// Pinned tabs come first under their own heading; each tree node's anchor
// is marked with "+" and plain tabs with "-".
type TextExporter struct{}

// NewTextExporter creates a new text exporter.
func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

func (e *TextExporter) Name() string {
	return "text outline"
}

func (e *TextExporter) Format() Format {
	return FormatText
}

func (e *TextExporter) FileExtension() string {
	return ".txt"
}

func (e *TextExporter) Export(ctx context.Context, coll *tabs.Collection) ([]byte, error) {
	if coll == nil {
		return nil, ErrInvalidCollection
	}

	var sb strings.Builder

	if coll.PinnedCount() > 0 {
		sb.WriteString("Pinned\n")
		for _, t := range coll.Pinned().Tabs() {
			writeTabLine(&sb, 1, "-", t)
		}
	}

	sb.WriteString("Tabs\n")
	for _, entry := range coll.Children(coll.Root()) {
		writeEntry(&sb, coll, entry, 1)
	}

	return []byte(sb.String()), nil
}

func writeEntry(sb *strings.Builder, coll *tabs.Collection, e tabs.Entry, depth int) {
	switch e := e.(type) {
	case *tabs.Tab:
		writeTabLine(sb, depth, "-", e)
	case *tabs.TreeNode:
		writeTabLine(sb, depth, "+", e.Anchor())
		for _, ch := range coll.Children(e) {
			writeEntry(sb, coll, ch, depth+1)
		}
	}
}

func writeTabLine(sb *strings.Builder, depth int, marker string, t *tabs.Tab) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(marker)
	sb.WriteString(" ")
	sb.WriteString(t.Title())
	if t.URL() != "" {
		fmt.Fprintf(sb, " (%s)", t.URL())
	}
	if t.GroupTag() != "" {
		fmt.Fprintf(sb, " [%s]", t.GroupTag())
	}
	sb.WriteString("\n")
}
