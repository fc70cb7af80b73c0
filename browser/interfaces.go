package browser

import (
	"errors"
	"net"
)

// internetInterface returns the network interface used to reach the
// internet, used as a default when no interface is explicitly configured.
func internetInterface() (net.Interface, error) {
	candidates, err := net.Interfaces()
	if err != nil {
		return net.Interface{}, err
	}

	con, err := net.Dial("udp4", "8.8.8.8:53")
	if err != nil {
		return net.Interface{}, err
	}
	defer con.Close()

	ip := con.LocalAddr().(*net.UDPAddr).IP

	for _, i := range candidates {
		addrs, err := i.Addrs()
		if err != nil {
			continue
		}

		for _, a := range addrs {
			if ipn, ok := a.(*net.IPNet); ok && ipn.IP.Equal(ip) {
				return i, nil
			}
		}
	}

	return net.Interface{}, errors.New("could not find internet network interface")
}
