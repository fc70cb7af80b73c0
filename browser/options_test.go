package browser

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("deriveNames", func() {
	It("enters wildcard mode when no type is configured", func() {
		names, wildcard := deriveNames(Options{})

		Expect(wildcard).To(BeTrue())
		Expect(names).To(Equal([]string{"_services._dns-sd._udp.local"}))
	})

	It("derives a single bare-type domain from Type/Protocol", func() {
		names, wildcard := deriveNames(Options{Type: "http"})

		Expect(wildcard).To(BeFalse())
		Expect(names).To(Equal([]string{"_http._tcp.local"}))
	})

	It("defaults the protocol to tcp", func() {
		names, _ := deriveNames(Options{Type: "http", Protocol: ""})
		Expect(names).To(Equal([]string{"_http._tcp.local"}))
	})

	It("honors an explicit protocol", func() {
		names, _ := deriveNames(Options{Type: "ipp", Protocol: "udp"})
		Expect(names).To(Equal([]string{"_ipp._udp.local"}))
	})

	It("derives one query per subtype instead of the bare type", func() {
		names, wildcard := deriveNames(Options{
			Type:     "http",
			Subtypes: []string{"printer", "scanner"},
		})

		Expect(wildcard).To(BeFalse())
		Expect(names).To(Equal([]string{
			"_printer._sub._http._tcp.local",
			"_scanner._sub._http._tcp.local",
		}))
	})

	It("derives names for an explicit multi-type list", func() {
		names, wildcard := deriveNames(Options{
			Types: []TypeQuery{
				{Type: "http"},
				{Type: "ipp", Protocol: "udp", Subtypes: []string{"printer"}},
			},
		})

		Expect(wildcard).To(BeFalse())
		Expect(names).To(Equal([]string{
			"_http._tcp.local",
			"_printer._sub._ipp._udp.local",
		}))
	})

	It("prefers Types over a single Type when both are set", func() {
		names, _ := deriveNames(Options{
			Types: []TypeQuery{{Type: "ipp"}},
			Type:  "http",
		})

		Expect(names).To(Equal([]string{"_ipp._tcp.local"}))
	})
})
