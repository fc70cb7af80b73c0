// Package transport implements the UDP multicast transport that carries mDNS
// queries and responses, per RFC 6762 §3 ("IP TTL, Multicast Loopback
// Configuration") and §11 (port 5353).
//
// It plays the role of the "Transport" collaborator from spec.md §6: the
// Responder, Registry, and Browser consume it through the small query/respond
// interface at the bottom of this file, never touching sockets directly.
package transport

import (
	"net"

	"github.com/miekg/dns"
)

// Port is the mDNS port number.
//
// See spec.md §6 ("Constants").
const Port = 5353

// Transport is a single address-family (IPv4 or IPv6) multicast UDP
// transport.
type Transport interface {
	// Listen joins the mDNS multicast group on the given interface and
	// begins accepting reads.
	Listen(iface *net.Interface) error

	// Read reads the next packet from the transport, blocking until one
	// arrives or the transport is closed.
	Read() (*InboundPacket, error)

	// Write sends a packet via the transport.
	Write(*OutboundPacket) error

	// Group returns the multicast group address for this transport.
	Group() *net.UDPAddr

	// Close closes the transport, unblocking any pending Read.
	Close() error
}

// SendResponse sends a DNS message as a response to an inbound packet. It
// returns false without sending anything if m carries no questions or
// records.
func SendResponse(in *InboundPacket, to *net.UDPAddr, m *dns.Msg) (bool, error) {
	if len(m.Question) == 0 &&
		len(m.Answer) == 0 &&
		len(m.Ns) == 0 &&
		len(m.Extra) == 0 {
		return false, nil
	}

	out, err := NewOutboundPacket(
		Endpoint{
			InterfaceIndex: in.Source.InterfaceIndex,
			Address:        to,
		},
		m,
	)
	if err != nil {
		return false, err
	}
	defer out.Close()

	return true, in.Transport.Write(out)
}

// SendUnicastResponse sends a DNS message as a unicast response to an inbound
// packet's source.
func SendUnicastResponse(in *InboundPacket, m *dns.Msg) (bool, error) {
	return SendResponse(in, in.Source.Address, m)
}

// SendMulticastResponse sends a DNS message as a response to the mDNS
// multicast group.
func SendMulticastResponse(in *InboundPacket, m *dns.Msg) (bool, error) {
	return SendResponse(in, in.Transport.Group(), m)
}

// SendMessage multicasts an arbitrary DNS message (query or unsolicited
// response) to the transport's group address.
func SendMessage(t Transport, iface *net.Interface, m *dns.Msg) error {
	out, err := NewOutboundPacket(
		Endpoint{
			InterfaceIndex: iface.Index,
			Address:        t.Group(),
		},
		m,
	)
	if err != nil {
		return err
	}
	defer out.Close()

	return t.Write(out)
}
