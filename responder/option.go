package responder

import (
	"net"

	"github.com/dogmatiq/dodeca/logging"
)

// Option applies an option to a Responder constructed by New().
type Option func(*Responder) error

// UseLogger sets the logger used by the responder.
func UseLogger(l logging.Logger) Option {
	return func(r *Responder) error {
		r.logger = l
		return nil
	}
}

// UseInterface sets the network interface the responder listens on.
//
// If this option is not provided, the responder chooses the interface used
// to reach the internet.
func UseInterface(iface net.Interface) Option {
	return func(r *Responder) error {
		r.iface = &iface
		return nil
	}
}

// DisableIPv4 prevents the responder from listening for IPv4 traffic.
func DisableIPv4(r *Responder) error {
	r.disableIPv4 = true
	return nil
}

// DisableIPv6 prevents the responder from listening for IPv6 traffic.
func DisableIPv6(r *Responder) error {
	r.disableIPv6 = true
	return nil
}
