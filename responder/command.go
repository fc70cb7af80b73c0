package responder

import (
	"context"

	"github.com/miekg/dns"

	"github.com/quietmesh/mdnsd/transport"
)

// registerCommand adds records to the responder's table.
type registerCommand struct {
	Records []dns.RR
}

func (c *registerCommand) Execute(ctx context.Context, r *Responder) error {
	r.table.register(c.Records...)
	return nil
}

// unregisterCommand removes records from the responder's table.
type unregisterCommand struct {
	Records []dns.RR
}

func (c *unregisterCommand) Execute(ctx context.Context, r *Responder) error {
	r.table.unregister(c.Records...)
	return nil
}

// registerTransportCommand records a transport as active once its listener
// has joined the multicast group, so that announcements can be sent over it.
type registerTransportCommand struct {
	Transport transport.Transport
}

func (c *registerTransportCommand) Execute(ctx context.Context, r *Responder) error {
	r.transports = append(r.transports, c.Transport)
	return nil
}

// announceCommand multicasts an unsolicited response over every active
// transport.
type announceCommand struct {
	Records []dns.RR
}

func (c *announceCommand) Execute(ctx context.Context, r *Responder) error {
	if len(c.Records) == 0 {
		return nil
	}

	m := &dns.Msg{}
	m.Response = true
	m.Authoritative = true
	m.Compress = true
	m.Answer = c.Records

	for _, t := range r.transports {
		if err := transport.SendMessage(t, r.iface, m); err != nil {
			return err
		}
	}

	return nil
}
