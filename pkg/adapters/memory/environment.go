package memory

import (
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/aretw0/montage/pkg/domain"
)

// heapSegment prefixes locations allocated for data added without a location.
const heapSegment = "heap"

// Environment implements domain.Environment and domain.PathRegistry in memory.
// Safe for concurrent use.
type Environment struct {
	mu    sync.RWMutex
	data  map[string]*domain.Datum
	order []string
	paths map[string]*domain.Path
	next  int
}

var (
	_ domain.Environment  = (*Environment)(nil)
	_ domain.PathRegistry = (*Environment)(nil)
)

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		data:  make(map[string]*domain.Datum),
		paths: make(map[string]*domain.Path),
	}
}

// FromSnapshot creates an environment holding a copy of every datum in the snapshot.
func FromSnapshot(s *domain.Snapshot) (*Environment, error) {
	env := NewEnvironment()
	if s == nil {
		return env, nil
	}
	for i := range s.Data {
		if _, err := env.AddDataAt(s.Data[i].Location, s.Data[i].Clone()); err != nil {
			return nil, err
		}
	}
	return env, nil
}

// ResolvePath returns the stored datum at a location or with an identity path.
func (e *Environment) ResolvePath(path domain.Location) (*domain.Datum, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if id, ok := path.IsIDPath(); ok {
		if d, found := e.data[id]; found {
			return d, nil
		}
		return nil, fmt.Errorf("%w: id %s", domain.ErrDataNotFound, id)
	}
	for _, id := range e.order {
		if d := e.data[id]; d.Location.Equal(path) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: location %s", domain.ErrDataNotFound, path)
}

// AddDataAt stores the datum, replacing whatever lived at that location.
func (e *Environment) AddDataAt(location domain.Location, datum *domain.Datum) (domain.Location, error) {
	if datum == nil {
		return nil, fmt.Errorf("cannot add nil datum")
	}
	if datum.ID == "" {
		return nil, fmt.Errorf("cannot add datum without id")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(location) == 0 {
		location = domain.Location{heapSegment, strconv.Itoa(e.next)}
		e.next++
	}
	for _, id := range e.order {
		if id != datum.ID && e.data[id].Location.Equal(location) {
			e.removeLocked(id)
			break
		}
	}

	datum.Location = slices.Clone(location)
	if _, exists := e.data[datum.ID]; !exists {
		e.order = append(e.order, datum.ID)
	}
	e.data[datum.ID] = datum
	return slices.Clone(location), nil
}

// CloneData returns an independent copy.
func (e *Environment) CloneData(datum *domain.Datum) *domain.Datum {
	return datum.Clone()
}

// MemoryLocation returns where the datum is currently stored.
func (e *Environment) MemoryLocation(datum *domain.Datum) (domain.Location, bool) {
	if datum == nil {
		return nil, false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()

	d, ok := e.data[datum.ID]
	if !ok {
		return nil, false
	}
	return slices.Clone(d.Location), true
}

// Remove deletes a datum by id.
func (e *Environment) Remove(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removeLocked(id)
}

func (e *Environment) removeLocked(id string) {
	delete(e.data, id)
	e.order = slices.DeleteFunc(e.order, func(s string) bool { return s == id })
}

// Snapshot captures the current memory, in insertion order.
func (e *Environment) Snapshot() *domain.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := &domain.Snapshot{Data: make([]domain.Datum, 0, len(e.order))}
	for _, id := range e.order {
		s.Data = append(s.Data, *e.data[id].Clone())
	}
	return s
}

// AddPath registers a render path.
func (e *Environment) AddPath(p *domain.Path) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paths[p.ID] = p
}

// LookupPath returns the path with the given id, or nil.
func (e *Environment) LookupPath(id string) *domain.Path {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.paths[id]
}

// RemovePath unregisters a render path.
func (e *Environment) RemovePath(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.paths, id)
}

// Paths returns the ids of every active path, sorted.
func (e *Environment) Paths() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := make([]string, 0, len(e.paths))
	for id := range e.paths {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
