// Package hostaddrs enumerates this host's non-internal network addresses.
//
// It plays the role of the "host info provider" that spec.md §1 calls out as
// an external collaborator: discovery of local non-loopback IPv4/IPv6
// addresses used to populate A/AAAA records when a published service does
// not specify explicit addresses.
package hostaddrs

import "net"

// Addresses is the set of non-internal IPv4 and IPv6 addresses bound to this
// host, in stable (net.Interfaces order, then address order) iteration
// order so that record construction is deterministic.
type Addresses struct {
	IPv4 []net.IP
	IPv6 []net.IP
}

// Enumerate returns every non-internal (non-loopback) address bound to any
// network interface on this host.
func Enumerate() (Addresses, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return Addresses{}, err
	}

	var addrs Addresses

	for _, iface := range ifaces {
		ifAddrs, err := iface.Addrs()
		if err != nil {
			// a single misbehaving interface should not prevent publishing
			// using the addresses of every other interface.
			continue
		}

		for _, a := range ifAddrs {
			ipNet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}

			ip := ipNet.IP
			if ip.IsLoopback() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
				continue
			}

			if v4 := ip.To4(); v4 != nil {
				addrs.IPv4 = append(addrs.IPv4, v4)
			} else {
				addrs.IPv6 = append(addrs.IPv6, ip)
			}
		}
	}

	return addrs, nil
}
