// Package redis shares recorded graphs and synthesized transitions through Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/montage/internal/dto"
	"github.com/aretw0/montage/pkg/adapters/fixture"
	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Store keeps graph documents in Redis. Recorded graphs live under
// <prefix>graph:<id>, synthesized transitions under <prefix>transition:<id>,
// and a sorted set indexes the recorded graphs by expiry.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored documents.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "montage:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) graphKey(id string) string {
	return s.prefix + "graph:" + id
}

func (s *Store) transitionKey(id string) string {
	return s.prefix + "transition:" + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// SaveGraph publishes a recorded graph, with its optional selection.
func (s *Store) SaveGraph(ctx context.Context, g *domain.Graph, sel *domain.Selection) error {
	data, err := json.Marshal(dto.NewDocument(g, sel))
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.graphKey(g.ID()), data, s.ttl)

	// Score = expiry time; documents without TTL never leave the index.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: g.ID(),
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// SaveTransition stores the synthesized transition of the graph sourceID.
func (s *Store) SaveTransition(ctx context.Context, sourceID string, v domain.Vertex) error {
	data, err := json.Marshal(dto.NewDocument(v, nil))
	if err != nil {
		return fmt.Errorf("failed to marshal transition: %w", err)
	}
	if err := s.client.Set(ctx, s.transitionKey(sourceID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// LoadTransition returns the stored transition document of sourceID, as JSON.
func (s *Store) LoadTransition(ctx context.Context, sourceID string) ([]byte, error) {
	return s.get(ctx, s.transitionKey(sourceID), sourceID)
}

// Graph returns a loader for the recorded graph id.
func (s *Store) Graph(id string) *Loader {
	return &Loader{store: s, id: id}
}

// Delete removes a recorded graph and its transition.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.graphKey(id), s.transitionKey(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns the ids of the recorded graphs that have not expired.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())

	// Lazy Cleanup: Remove expired ids from the index
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired graphs: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list graphs: %w", err)
	}
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) get(ctx context.Context, key, id string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%w: %s", domain.ErrGraphNotFound, id)
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, nil
}

// Loader reads one recorded graph from a Store on every load.
type Loader struct {
	store *Store
	id    string
}

var (
	_ ports.GraphLoader     = (*Loader)(nil)
	_ ports.SelectionLoader = (*Loader)(nil)
)

// LoadGraph implements ports.GraphLoader.
func (l *Loader) LoadGraph(ctx context.Context) (*domain.Graph, error) {
	g, _, err := l.load(ctx)
	return g, err
}

// LoadSelection implements ports.SelectionLoader.
func (l *Loader) LoadSelection(ctx context.Context) (*domain.Selection, error) {
	_, sel, err := l.load(ctx)
	return sel, err
}

func (l *Loader) load(ctx context.Context) (*domain.Graph, *domain.Selection, error) {
	data, err := l.store.get(ctx, l.store.graphKey(l.id), l.id)
	if err != nil {
		return nil, nil, err
	}
	g, sel, err := fixture.Parse(data, fixture.FormatJSON)
	if err != nil {
		return nil, nil, fmt.Errorf("graph %s: %w", l.id, err)
	}
	return g, sel, nil
}
