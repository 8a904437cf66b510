package domain

import (
	"slices"
	"strings"
)

// idPrefix marks a Location that resolves data by identity rather than by address.
const idPrefix = "@"

// Location is a resolvable address in the simulated memory, one segment per step.
type Location []string

// IDPath returns the symbolic path that resolves a datum by its identity.
func IDPath(id string) Location {
	return Location{idPrefix + id}
}

// IsIDPath reports whether the location is an identity path and returns the id.
func (l Location) IsIDPath() (string, bool) {
	if len(l) != 1 || !strings.HasPrefix(l[0], idPrefix) {
		return "", false
	}
	return strings.TrimPrefix(l[0], idPrefix), true
}

// Equal compares two locations segment by segment.
func (l Location) Equal(other Location) bool {
	return slices.Equal(l, other)
}

func (l Location) String() string {
	if len(l) == 0 {
		return "<unplaced>"
	}
	return strings.Join(l, ".")
}

// AnimationData references a piece of simulated memory.
// Identity is the ID; Location is only a hint, recomputed lazily during playback
// since memory moves while animations run.
type AnimationData struct {
	ID       string   `json:"id" yaml:"id"`
	Location Location `json:"location,omitempty" yaml:"location,omitempty"`
}

// SameDatum reports whether both references denote the same logical datum.
func (d AnimationData) SameDatum(other AnimationData) bool {
	return d.ID == other.ID
}

// DataRef is a convenience constructor used by builders and tests.
func DataRef(id string, location ...string) *AnimationData {
	return &AnimationData{ID: id, Location: Location(location)}
}

// CompactData drops nil references and dereferences the rest.
func CompactData(refs []*AnimationData) []AnimationData {
	out := make([]AnimationData, 0, len(refs))
	for _, r := range refs {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// DataKind classifies the value stored in a Datum.
type DataKind string

const (
	DataLiteral   DataKind = "literal"
	DataArray     DataKind = "array"
	DataReference DataKind = "reference"
)

// Datum is a value living in the simulated memory.
type Datum struct {
	ID       string   `json:"id" yaml:"id"`
	Kind     DataKind `json:"kind" yaml:"kind"`
	Location Location `json:"location,omitempty" yaml:"location,omitempty"`
	Value    any      `json:"value,omitempty" yaml:"value,omitempty"`
}

// Ref returns the AnimationData reference for this datum.
func (d *Datum) Ref() AnimationData {
	return AnimationData{ID: d.ID, Location: slices.Clone(d.Location)}
}

// Clone returns a deep copy of the datum. Array values are copied element-wise.
func (d *Datum) Clone() *Datum {
	if d == nil {
		return nil
	}
	c := *d
	c.Location = slices.Clone(d.Location)
	if arr, ok := d.Value.([]any); ok {
		c.Value = slices.Clone(arr)
	}
	return &c
}

// Snapshot captures the relevant memory state before or after a vertex runs.
// The order of Data is meaningful: it defines the order of trace roots.
type Snapshot struct {
	Data []Datum `json:"data" yaml:"data"`
}

// Values returns the references of every datum, in snapshot order.
func (s *Snapshot) Values() []AnimationData {
	if s == nil {
		return nil
	}
	out := make([]AnimationData, 0, len(s.Data))
	for i := range s.Data {
		out = append(out, s.Data[i].Ref())
	}
	return out
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := &Snapshot{Data: make([]Datum, 0, len(s.Data))}
	for i := range s.Data {
		c.Data = append(c.Data, *s.Data[i].Clone())
	}
	return c
}
