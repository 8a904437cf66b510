package domain

// Environment is the capability interface of the simulated memory.
// The engine never implements storage itself; primitives only go through these calls.
type Environment interface {
	// ResolvePath returns the datum at a location. Identity paths (see IDPath)
	// resolve by ID wherever the datum currently lives.
	ResolvePath(path Location) (*Datum, error)

	// AddDataAt stores a datum at a location and returns where it was placed.
	// An empty location lets the environment pick a free slot.
	AddDataAt(location Location, datum *Datum) (Location, error)

	// CloneData returns an independent copy of a datum.
	CloneData(datum *Datum) *Datum

	// MemoryLocation returns the current location of a datum, if it is stored.
	MemoryLocation(datum *Datum) (Location, bool)
}

// PathKind identifies the visual path a primitive drives.
type PathKind string

const (
	PathMovement      PathKind = "Movement"
	PathPlacement     PathKind = "Placement"
	PathCreation      PathKind = "Create"
	PathArrayCreation PathKind = "CreateArray"
	PathReference     PathKind = "CreateReference"
	PathBinding       PathKind = "CreateVariable"
)

// Path is the render-side progress of one primitive. It carries no memory semantics.
type Path struct {
	ID       string
	Kind     PathKind
	From     []Location
	To       Location
	Progress float64
}

// PathRegistry is implemented by environments that track active render paths.
// Primitives register paths only when the environment supports it.
type PathRegistry interface {
	AddPath(path *Path)
	LookupPath(id string) *Path
	RemovePath(id string)
}
