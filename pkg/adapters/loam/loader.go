// Package loam reads and publishes recorded graphs in a Loam document vault.
//
// A graph lives in one document. For Markdown the front matter holds the graph
// document (the same graph/selection keys the fixture format uses) and the body
// holds free-form notes; JSON and YAML documents are the graph document itself.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/montage/internal/dto"
	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/ports"
	"gopkg.in/yaml.v3"
)

// Open initializes the vault at dir. Readers should open it read-only so Loam
// never sandboxes or versions the directory.
func Open(dir string, readOnly bool) (core.Repository, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps integers out of float64.
	opts := []loam.Option{loam.WithStrict(true)}
	if readOnly {
		opts = append(opts, loam.WithReadOnly(true))
	} else {
		opts = append(opts, loam.WithVersioning(false), loam.WithForceTemp(false))
	}

	repo, err := loam.Init(absPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return repo, nil
}

// Loader adapts a Loam document to the GraphLoader interface.
type Loader struct {
	Repo core.Repository
	ID   string
}

var (
	_ ports.GraphLoader     = (*Loader)(nil)
	_ ports.SelectionLoader = (*Loader)(nil)
)

// New creates a loader for the document id. Loam resolves the extension.
func New(repo core.Repository, id string) *Loader {
	return &Loader{Repo: repo, ID: id}
}

// LoadGraph implements ports.GraphLoader.
func (l *Loader) LoadGraph(ctx context.Context) (*domain.Graph, error) {
	doc, err := l.document(ctx)
	if err != nil {
		return nil, err
	}
	return doc.ToGraph()
}

// LoadSelection implements ports.SelectionLoader.
func (l *Loader) LoadSelection(ctx context.Context) (*domain.Selection, error) {
	doc, err := l.document(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Selection, nil
}

// Notes returns the document body, which is empty for JSON and YAML documents.
func (l *Loader) Notes(ctx context.Context) (string, error) {
	doc, err := l.Repo.Get(ctx, l.ID)
	if err != nil {
		return "", fmt.Errorf("loam get failed for %s: %w", l.ID, err)
	}
	return strings.TrimSpace(doc.Content), nil
}

func (l *Loader) document(ctx context.Context) (*dto.Document, error) {
	doc, err := l.Repo.Get(ctx, l.ID)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", l.ID, err)
	}

	// Loam may add its own keys to the metadata; only ours are decoded.
	raw := map[string]any{"graph": doc.Metadata["graph"]}
	if sel, ok := doc.Metadata["selection"]; ok && sel != nil {
		raw["selection"] = sel
	}
	if raw["graph"] == nil {
		return nil, fmt.Errorf("%w: document %s has no graph", domain.ErrGraphNotFound, l.ID)
	}

	out, err := dto.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.ID, err)
	}
	return out, nil
}

// Publish saves a graph as the Markdown document <graph id>.md, with notes as its body.
func Publish(ctx context.Context, repo core.Repository, g *domain.Graph, sel *domain.Selection, notes string) error {
	front, err := yaml.Marshal(dto.NewDocument(g, sel))
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}

	var content strings.Builder
	content.WriteString("---\n")
	content.Write(front)
	content.WriteString("---\n")
	content.WriteString(notes)

	if err := repo.Save(ctx, core.Document{ID: g.ID() + ".md", Content: content.String()}); err != nil {
		return fmt.Errorf("loam save failed for %s: %w", g.ID(), err)
	}
	return nil
}
