package transport

import (
	"net"

	"github.com/dogmatiq/dodeca/logging"
	ipvx "golang.org/x/net/ipv4"
)

var (
	// IPv4Group is the multicast group used for mDNS over IPv4.
	//
	// See RFC 6762 §3.
	IPv4Group = net.ParseIP("224.0.0.251")

	// IPv4GroupAddress is the address to which mDNS queries and responses
	// are sent when using IPv4.
	IPv4GroupAddress = &net.UDPAddr{IP: IPv4Group, Port: Port}

	// IPv4ListenAddress is the address the transport binds to. The bind
	// address is deliberately not the multicast group address, so that
	// group membership can be controlled precisely per interface.
	IPv4ListenAddress = &net.UDPAddr{IP: net.ParseIP("224.0.0.0"), Port: Port}
)

// IPv4Transport is an IPv4-based mDNS UDP transport.
type IPv4Transport struct {
	Logger logging.Logger

	pc *ipvx.PacketConn
}

// Listen starts listening for UDP packets and joins the mDNS multicast group
// on the given interface.
func (t *IPv4Transport) Listen(iface *net.Interface) error {
	addr := IPv4ListenAddress
	conn, err := net.ListenUDP("udp4", addr)
	if err != nil {
		logListenError(t.Logger, addr, err)
		return err
	}

	t.pc = ipvx.NewPacketConn(conn)
	if err := t.pc.SetControlMessage(ipvx.FlagInterface, true); err != nil {
		t.pc.Close()
		logListenError(t.Logger, addr, err)
		return err
	}

	if err := joinGroup(t.pc, IPv4Group, iface, t.Logger); err != nil {
		t.pc.Close()
		return err
	}

	logListening(t.Logger, addr, iface)

	return nil
}

// Read reads the next packet from the transport.
func (t *IPv4Transport) Read() (*InboundPacket, error) {
	buf := getBuffer()

	n, cm, src, err := t.pc.ReadFrom(buf)
	if err != nil {
		putBuffer(buf)
		logReadError(t.Logger, t.Group(), err)
		return nil, err
	}

	buf = buf[:n]

	return &InboundPacket{
		Transport: t,
		Source: Endpoint{
			InterfaceIndex: cm.IfIndex,
			Address:        src.(*net.UDPAddr),
		},
		Data: buf,
	}, nil
}

// Write sends a packet via the transport.
func (t *IPv4Transport) Write(p *OutboundPacket) error {
	if _, err := t.pc.WriteTo(
		p.Data,
		&ipvx.ControlMessage{IfIndex: p.Destination.InterfaceIndex},
		p.Destination.Address,
	); err != nil {
		logWriteError(t.Logger, p.Destination.Address, t.Group(), err)
		return err
	}

	return nil
}

// Group returns the multicast group address for this transport.
func (t *IPv4Transport) Group() *net.UDPAddr {
	return IPv4GroupAddress
}

// Close closes the transport, unblocking any pending Read.
func (t *IPv4Transport) Close() error {
	return t.pc.Close()
}
