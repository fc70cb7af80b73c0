package browser

import (
	"net"

	"github.com/dogmatiq/dodeca/logging"
)

// Option applies an option to a Browser constructed by New().
type Option func(*Browser) error

// UseLogger sets the logger used by the browser.
func UseLogger(l logging.Logger) Option {
	return func(b *Browser) error {
		b.logger = l
		return nil
	}
}

// UseInterface sets the network interface the browser listens and queries
// on. If not provided, the browser chooses the interface used to reach the
// internet.
func UseInterface(iface net.Interface) Option {
	return func(b *Browser) error {
		b.iface = &iface
		return nil
	}
}

// DisableIPv4 prevents the browser from querying over IPv4.
func DisableIPv4(b *Browser) error {
	b.disableIPv4 = true
	return nil
}

// DisableIPv6 prevents the browser from querying over IPv6.
func DisableIPv6(b *Browser) error {
	b.disableIPv6 = true
	return nil
}
