package browser

import (
	"net"

	"github.com/miekg/dns"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func samplePTR() *dns.PTR {
	return &dns.PTR{
		Hdr: dns.RR_Header{Name: "_http._tcp.local.", Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: 120},
		Ptr: "Foo Bar._http._tcp.local.",
	}
}

func sampleSRV() *dns.SRV {
	return &dns.SRV{
		Hdr:    dns.RR_Header{Name: "Foo Bar._http._tcp.local.", Rrtype: dns.TypeSRV, Class: dns.ClassINET, Ttl: 120},
		Target: "host.local.",
		Port:   8080,
	}
}

func sampleTXT() *dns.TXT {
	return &dns.TXT{
		Hdr: dns.RR_Header{Name: "Foo Bar._http._tcp.local.", Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: 4500},
		Txt: []string{"foo=bar"},
	}
}

func sampleA() *dns.A {
	return &dns.A{
		Hdr: dns.RR_Header{Name: "host.local.", Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 120},
		A:   net.ParseIP("192.168.1.1").To4(),
	}
}

var _ = Describe("buildCandidate", func() {
	It("reconstructs a full service descriptor from the correlated records", func() {
		live := []dns.RR{sampleSRV(), sampleTXT(), sampleA()}

		svc := buildCandidate(samplePTR(), live, nil)

		Expect(svc).NotTo(BeNil())
		Expect(svc.Name).To(Equal("Foo Bar"))
		Expect(svc.Type).To(Equal("http"))
		Expect(svc.Protocol).To(Equal("tcp"))
		Expect(svc.Host).To(Equal("host.local."))
		Expect(svc.Port).To(BeEquivalentTo(8080))
		Expect(svc.TXT).To(Equal(map[string]string{"foo": "bar"}))
		Expect(svc.Addresses.IPv4).To(HaveLen(1))
		Expect(svc.Addresses.IPv4[0].String()).To(Equal("192.168.1.1"))
	})

	It("discards the candidate when no SRV record matches the PTR target", func() {
		svc := buildCandidate(samplePTR(), []dns.RR{sampleTXT()}, nil)
		Expect(svc).To(BeNil())
	})

	It("leaves TXT nil and Addresses nil when neither is present", func() {
		svc := buildCandidate(samplePTR(), []dns.RR{sampleSRV()}, nil)

		Expect(svc).NotTo(BeNil())
		Expect(svc.TXT).To(BeNil())
		Expect(svc.Addresses).To(BeNil())
	})

	It("records the referer address", func() {
		referer := &net.UDPAddr{IP: net.ParseIP("10.0.0.5"), Port: 5353}
		svc := buildCandidate(samplePTR(), []dns.RR{sampleSRV()}, referer)

		Expect(svc.Referer).To(Equal(referer))
	})

	It("detects a subtype from a longer PTR name than the stringified-type domain", func() {
		ptr := &dns.PTR{
			Hdr: dns.RR_Header{Name: "_printer._sub._http._tcp.local.", Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: 120},
			Ptr: "Foo Bar._http._tcp.local.",
		}

		svc := buildCandidate(ptr, []dns.RR{sampleSRV()}, nil)

		Expect(svc).NotTo(BeNil())
		Expect(svc.Subtypes).To(Equal([]string{"printer"}))
	})

	It("does not set a subtype for a bare type PTR", func() {
		svc := buildCandidate(samplePTR(), []dns.RR{sampleSRV()}, nil)
		Expect(svc.Subtypes).To(BeEmpty())
	})
})

var _ = Describe("typeAndProtocolFromFQDN", func() {
	It("splits the type, protocol, and type domain from an instance fqdn", func() {
		typ, protocol, domain := typeAndProtocolFromFQDN("Foo Bar._http._tcp.local.")

		Expect(typ).To(Equal("http"))
		Expect(protocol).To(Equal("tcp"))
		Expect(domain).To(Equal("_http._tcp.local"))
	})
})

var _ = Describe("labelCount", func() {
	It("counts dot-separated labels, ignoring a trailing dot", func() {
		Expect(labelCount("_http._tcp.local.")).To(Equal(3))
		Expect(labelCount("_printer._sub._http._tcp.local.")).To(Equal(5))
	})
})
