package services

// EnrichmentState tells how the value of an Enrichment was obtained.
type EnrichmentState int

const (
	// Absent means there was nothing to fetch or nothing matched.
	Absent EnrichmentState = iota
	// Present means the secondary fetch succeeded.
	Present
	// Defaulted means the fetch failed and a default was substituted.
	Defaulted
)

func (s EnrichmentState) String() string {
	switch s {
	case Present:
		return "present"
	case Defaulted:
		return "defaulted"
	default:
		return "absent"
	}
}

// Enrichment is the outcome of a secondary fetch: one whose failure does not
// fail the page it belongs to. Err is set only when State is Defaulted.
type Enrichment[T any] struct {
	State EnrichmentState
	Value T
	Err   error
}

func Enriched[T any](v T) Enrichment[T] {
	return Enrichment[T]{State: Present, Value: v}
}

func NotEnriched[T any]() Enrichment[T] {
	return Enrichment[T]{State: Absent}
}

func DefaultedTo[T any](v T, err error) Enrichment[T] {
	return Enrichment[T]{State: Defaulted, Value: v, Err: err}
}

// Get returns the value and whether it came from a successful fetch.
func (e Enrichment[T]) Get() (T, bool) {
	return e.Value, e.State == Present
}
