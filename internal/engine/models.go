package engine

import "routescout/internal/airline"

// DefaultResultsPerBase is how many ranked routes are kept per base.
const DefaultResultsPerBase = 10

// OwnedAircraft is one entry in the operator's fleet list. Exactly one of
// ModelID and NameFragment is meaningful: a positive ModelID matches by id,
// otherwise NameFragment matches by normalized substring.
type OwnedAircraft struct {
	ModelID      int
	NameFragment string
}

// Base is a home airport used as a scan origin. Excluded lists airport ids
// skipped when scanning from this base only; the same airport may be
// excluded here and still scanned from another base.
type Base struct {
	IATA      string
	AirportID int
	Excluded  map[int]bool
}

// Snapshot is the immutable per-run configuration handed to the scanner.
// The scanner never mutates it; callers own the underlying slices and maps.
type Snapshot struct {
	Bases []Base
	Fleet []OwnedAircraft
	// DestinationCap truncates the candidate list to the first N reference
	// airports (0 = no cap). Used to bound run cost on large servers.
	DestinationCap int
	// LoadFactor is the assumed passenger load, 0..1. Zero means full load.
	LoadFactor float64
	Verbose    bool
}

// RouteScore is one ranked scan result: the best owned aircraft for the
// pair and its weekly profit per frequency unit.
type RouteScore struct {
	FromAirportID int
	FromIATA      string
	FromCity      string
	ToAirportID   int
	ToIATA        string
	ToCity        string
	Score         int
	AircraftName  string
}

// Reference holds the per-run lookup tables built from the reference lists.
type Reference struct {
	Airports    []airline.Airport
	AirportByID map[int]airline.Airport
	SpecByID    map[int]airline.ModelSpec
}

// NewReference indexes the raw reference lists.
func NewReference(airports []airline.Airport, specs []airline.ModelSpec) *Reference {
	ref := &Reference{
		Airports:    airports,
		AirportByID: make(map[int]airline.Airport, len(airports)),
		SpecByID:    make(map[int]airline.ModelSpec, len(specs)),
	}
	for _, a := range airports {
		ref.AirportByID[a.ID] = a
	}
	for _, s := range specs {
		ref.SpecByID[s.ID] = s
	}
	return ref
}
