package transport

import (
	"net"

	"github.com/dogmatiq/dodeca/logging"
)

func logListening(logger logging.Logger, addr *net.UDPAddr, iface *net.Interface) {
	logging.Log(logger, "listening for mDNS traffic on %s (%s)", addr, iface.Name)
}

func logListenError(logger logging.Logger, addr *net.UDPAddr, err error) {
	logging.Log(logger, "unable to listen for mDNS traffic on %s: %s", addr, err)
}

func logReadError(logger logging.Logger, addr *net.UDPAddr, err error) {
	logging.Log(logger, "unable to read mDNS packet via %s: %s", addr, err)
}

func logWriteError(logger logging.Logger, dest, group *net.UDPAddr, err error) {
	logging.Log(logger, "unable to send mDNS packet to %s via %s: %s", dest, group, err)
}

func logJoinFailure(logger logging.Logger, group net.IP, iface *net.Interface, err error) {
	logging.Log(logger, "unable to join the %s multicast group on %s: %s", group, iface.Name, err)
}
