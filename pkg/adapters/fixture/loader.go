// Package fixture reads baked graphs and selections from YAML or JSON documents.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/montage/internal/dto"
	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/ports"
	"gopkg.in/yaml.v3"
)

// Format of a document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf infers the format from a file extension, defaulting to YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Loader reads a document file on every load, so edits are picked up between calls.
type Loader struct {
	Path string
}

var (
	_ ports.GraphLoader     = (*Loader)(nil)
	_ ports.SelectionLoader = (*Loader)(nil)
)

// New creates a loader for the document at path.
func New(path string) *Loader {
	return &Loader{Path: path}
}

// LoadGraph implements ports.GraphLoader.
func (l *Loader) LoadGraph(ctx context.Context) (*domain.Graph, error) {
	doc, err := l.document()
	if err != nil {
		return nil, err
	}
	return doc.ToGraph()
}

// LoadSelection implements ports.SelectionLoader.
func (l *Loader) LoadSelection(ctx context.Context) (*domain.Selection, error) {
	doc, err := l.document()
	if err != nil {
		return nil, err
	}
	return doc.Selection, nil
}

func (l *Loader) document() (*dto.Document, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := decode(data, FormatOf(l.Path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	return doc, nil
}

// Parse decodes a document into its graph and optional selection.
func Parse(data []byte, format Format) (*domain.Graph, *domain.Selection, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, nil, err
	}
	g, err := doc.ToGraph()
	if err != nil {
		return nil, nil, err
	}
	return g, doc.Selection, nil
}

func decode(data []byte, format Format) (*dto.Document, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	}
	if raw == nil {
		return nil, fmt.Errorf("empty document")
	}
	return dto.Decode(raw)
}

// Encode writes a vertex (typically a synthesized transition) as a document.
func Encode(w io.Writer, v domain.Vertex, format Format) error {
	doc := dto.NewDocument(v, nil)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
}
