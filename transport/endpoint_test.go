package transport_test

import (
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/quietmesh/mdnsd/transport"
)

var _ = Describe("Endpoint.IsLegacy", func() {
	It("is false for an address on the mDNS port", func() {
		ep := transport.Endpoint{
			Address: &net.UDPAddr{IP: net.ParseIP("192.168.1.1"), Port: transport.Port},
		}
		Expect(ep.IsLegacy()).To(BeFalse())
	})

	It("is true for an address on any other port", func() {
		ep := transport.Endpoint{
			Address: &net.UDPAddr{IP: net.ParseIP("192.168.1.1"), Port: 12345},
		}
		Expect(ep.IsLegacy()).To(BeTrue())
	})
})
