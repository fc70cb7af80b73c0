package transport

import (
	"net"

	"github.com/dogmatiq/dodeca/logging"
)

// packetConn contains the methods common to *ipv4.PacketConn and
// *ipv6.PacketConn needed to join a multicast group on a single interface.
type packetConn interface {
	JoinGroup(*net.Interface, net.Addr) error
}

// joinGroup joins the mDNS multicast group on the given interface. A failure
// is logged and returned; the caller's Listen fails with it.
func joinGroup(pc packetConn, group net.IP, iface *net.Interface, logger logging.Logger) error {
	addr := &net.UDPAddr{IP: group}

	if err := pc.JoinGroup(iface, addr); err != nil {
		logJoinFailure(logger, group, iface, err)
		return err
	}

	return nil
}
