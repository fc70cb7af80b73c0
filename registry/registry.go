// Package registry implements the lifecycle layer for published services:
// announce, goodbye, and teardown against a Responder's record table.
//
// See spec.md §4.C.
package registry

import (
	"context"
	"sync"

	"github.com/miekg/dns"

	"github.com/quietmesh/mdnsd/responder"
	"github.com/quietmesh/mdnsd/service"
)

// entry pairs a published service with the exact records it contributed to
// the Responder's table, so they can be withdrawn symmetrically.
type entry struct {
	service *service.Service
	records []dns.RR
}

// Registry is a thin lifecycle manager layered over a Responder.
type Registry struct {
	responder *responder.Responder

	mu      sync.Mutex
	entries []*entry
}

// New returns a Registry that publishes services into r's record table.
func New(r *responder.Responder) *Registry {
	return &Registry{responder: r}
}

// Publish constructs a service descriptor from opts, materializes its
// records, registers them with the Responder, and multicasts them as an
// unsolicited announcement.
//
// See spec.md §4.C, "publish".
func (reg *Registry) Publish(ctx context.Context, opts service.Service) (*service.Service, error) {
	svc, err := service.New(opts)
	if err != nil {
		return nil, err
	}

	records, err := service.RecordsFor(svc)
	if err != nil {
		return nil, err
	}

	if err := reg.responder.Register(ctx, records...); err != nil {
		return nil, err
	}

	if err := reg.responder.Announce(ctx, records); err != nil {
		return nil, err
	}

	svc.Published = true

	reg.mu.Lock()
	reg.entries = append(reg.entries, &entry{svc, records})
	reg.mu.Unlock()

	return svc, nil
}

// UnpublishAll withdraws every currently-published service: a goodbye
// announcement (the service-enumeration, type and subtype PTRs with TTL
// rewritten to zero) followed by unregistering its records from the Responder. done, if
// non-nil, fires once every service has been withdrawn.
//
// See spec.md §4.C, "unpublishAll".
func (reg *Registry) UnpublishAll(ctx context.Context, done func()) error {
	reg.mu.Lock()
	entries := reg.entries
	reg.entries = nil
	reg.mu.Unlock()

	for _, e := range entries {
		goodbye := service.GoodbyeRecords(e.service)

		if err := reg.responder.Announce(ctx, goodbye); err != nil {
			return err
		}

		if err := reg.responder.Unregister(ctx, e.records...); err != nil {
			return err
		}

		e.service.Published = false
	}

	if done != nil {
		done()
	}

	return nil
}

// Destroy fire-and-forget unpublishes every service. Release of the
// Responder's transport listeners is the caller's responsibility, via
// cancellation of the context passed to Responder.Run.
//
// See spec.md §4.C, "destroy".
func (reg *Registry) Destroy(ctx context.Context) {
	go func() {
		_ = reg.UnpublishAll(ctx, nil)
	}()
}
