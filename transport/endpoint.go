package transport

import "net"

// Endpoint is the origin or destination of a packet.
type Endpoint struct {
	InterfaceIndex int
	Address        *net.UDPAddr
}

// IsLegacy returns true if this endpoint belongs to a "legacy" querier: one
// that does not implement the full mDNS specification and expects a
// standard unicast response rather than a multicast one.
//
// See RFC 6762 §6.7.
func (ep *Endpoint) IsLegacy() bool {
	return ep.Address.Port != Port
}
