package browser

import (
	"context"

	"github.com/miekg/dns"

	"github.com/quietmesh/mdnsd/names"
	"github.com/quietmesh/mdnsd/transport"
)

// handleResponseCommand implements the Browser's response-handling
// algorithm.
//
// See spec.md §4.D, "Response handling algorithm".
type handleResponseCommand struct {
	Message *dns.Msg
	Source  transport.Endpoint
}

func (c *handleResponseCommand) Execute(ctx context.Context, b *Browser) error {
	all := append(append([]dns.RR{}, c.Message.Answer...), c.Message.Extra...)

	// step 1: wildcard discovery. A PTR answer's data names a type this
	// browser has not yet been tracking; start tracking it and query for it.
	if b.wildcard {
		for _, r := range c.Message.Answer {
			ptr, ok := r.(*dns.PTR)
			if !ok {
				continue
			}

			key := normalizeFQDN(ptr.Ptr)
			if b.nameMap[key] {
				continue
			}

			b.nameMap[key] = true
			b.names = append(b.names, ptr.Ptr)
			if err := b.query(ptr.Ptr); err != nil {
				return err
			}
		}
	}

	live := make([]dns.RR, 0, len(all))
	for _, r := range all {
		if r.Header().Ttl > 0 {
			live = append(live, r)
		}
	}

	trackedNames := make([]string, 0, len(b.nameMap))
	for n := range b.nameMap {
		trackedNames = append(trackedNames, n)
	}

	for _, name := range trackedNames {
		// step 2a: goodbye sweep, before any additions for this name.
		for _, r := range all {
			ptr, ok := r.(*dns.PTR)
			if !ok || ptr.Header().Ttl != 0 {
				continue
			}

			if names.Equal(ptr.Header().Name, name) {
				b.removeService(ptr.Ptr)
			}
		}

		// step 2b/2c: reconstruct and merge candidates for this name.
		for _, r := range live {
			ptr, ok := r.(*dns.PTR)
			if !ok || !names.Equal(ptr.Header().Name, name) {
				continue
			}

			candidate := buildCandidate(ptr, live, c.Source.Address)
			if candidate == nil {
				continue
			}

			b.merge(candidate)
		}
	}

	return nil
}
