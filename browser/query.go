package browser

import (
	"context"

	"github.com/miekg/dns"

	"github.com/quietmesh/mdnsd/transport"
)

// newPTRQuery builds a one-question mDNS query for the given name.
func newPTRQuery(name string) *dns.Msg {
	m := &dns.Msg{}
	m.Id = dns.Id()
	m.Opcode = dns.OpcodeQuery
	m.Compress = true
	m.Question = []dns.Question{
		{Name: dns.Fqdn(name), Qtype: dns.TypePTR, Qclass: dns.ClassINET},
	}

	return m
}

// queryAllCommand re-issues the PTR query for every name in names().
//
// See spec.md §4.D, "start" and "update".
type queryAllCommand struct{}

func (c *queryAllCommand) Execute(ctx context.Context, b *Browser) error {
	for _, name := range b.names {
		if err := b.query(name); err != nil {
			return err
		}
	}

	return nil
}

// queryOneCommand issues a PTR query for a single name, used by the
// wildcard discovery loop.
type queryOneCommand struct {
	Name string
}

func (c *queryOneCommand) Execute(ctx context.Context, b *Browser) error {
	return b.query(c.Name)
}

// query multicasts a PTR query for name over every transport the browser has
// joined the multicast group on.
func (b *Browser) query(name string) error {
	m := newPTRQuery(name)

	for _, t := range b.transports {
		if err := transport.SendMessage(t, b.iface, m); err != nil {
			return err
		}
	}

	return nil
}

// registerTransportCommand records a transport as active once its listener
// has joined the multicast group.
type registerTransportCommand struct {
	Transport transport.Transport
}

func (c *registerTransportCommand) Execute(ctx context.Context, b *Browser) error {
	b.transports = append(b.transports, c.Transport)
	return nil
}
