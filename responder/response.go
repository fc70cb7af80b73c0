package responder

import (
	"context"

	"github.com/miekg/dns"

	"github.com/quietmesh/mdnsd/transport"
)

// handleResponse is a Responder command that observes a multicast response
// that some other responder (or this one) sent.
//
// Defending against conflicting records sent by a peer requires probing and
// conflict resolution (RFC 6762 §8), which spec.md §1 explicitly places out
// of scope, so this is a no-op.
type handleResponse struct {
	Packet  *transport.InboundPacket
	Message *dns.Msg
}

func (c *handleResponse) Execute(ctx context.Context, r *Responder) error {
	defer c.Packet.Close()
	return nil
}
