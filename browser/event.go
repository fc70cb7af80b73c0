package browser

import "github.com/quietmesh/mdnsd/service"

// EventKind distinguishes a service coming up from a service going down.
type EventKind int

const (
	// Up indicates a service was newly discovered, or an existing service
	// gained a subtype.
	Up EventKind = iota

	// Down indicates a service's goodbye was observed and it was removed.
	Down
)

// Event is emitted by a Browser whenever a remote service transitions.
//
// See spec.md §4.D, "State machine — per remote service".
type Event struct {
	Kind    EventKind
	Service *service.Service
}
