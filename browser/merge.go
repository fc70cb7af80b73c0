package browser

import (
	"strings"

	"github.com/quietmesh/mdnsd/service"
)

// normalizeFQDN produces the map key used for DNS-equal fqdn comparisons.
func normalizeFQDN(fqdn string) string {
	return strings.ToLower(strings.TrimSuffix(fqdn, "."))
}

// merge folds a reconstructed candidate into services()/serviceMap(), per
// spec.md §4.D, "Merge".
func (b *Browser) merge(candidate *service.Service) {
	key := normalizeFQDN(candidate.FQDN())

	idx, known := b.serviceMap[key]
	if !known {
		b.services = append(b.services, candidate)
		b.serviceMap[key] = len(b.services) - 1
		b.emit(Up, candidate)
		return
	}

	if len(candidate.Subtypes) == 0 {
		return
	}

	existing := b.services[idx]
	newSubtype := candidate.Subtypes[0]

	for _, s := range existing.Subtypes {
		if s == newSubtype {
			return
		}
	}

	existing.Subtypes = append(existing.Subtypes, newSubtype)
	b.emit(Up, existing)
}

// removeService implements spec.md §4.D, "Removal semantics": find the
// first service with a DNS-equal fqdn, splice it out, and emit down(). A
// missing fqdn is a no-op.
func (b *Browser) removeService(fqdn string) {
	key := normalizeFQDN(fqdn)

	idx, known := b.serviceMap[key]
	if !known {
		return
	}

	svc := b.services[idx]
	b.services = append(b.services[:idx], b.services[idx+1:]...)
	delete(b.serviceMap, key)

	for i := idx; i < len(b.services); i++ {
		b.serviceMap[normalizeFQDN(b.services[i].FQDN())] = i
	}

	b.emit(Down, svc)
}

// emit sends an event on the buffered events channel, blocking while the
// buffer is full. Callers must keep Events() drained for the browser's loop
// to make progress.
func (b *Browser) emit(kind EventKind, svc *service.Service) {
	b.events <- Event{Kind: kind, Service: svc}
}
