package browser

import (
	"context"
	"net"

	"github.com/miekg/dns"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/quietmesh/mdnsd/transport"
)

var _ = Describe("handleResponseCommand", func() {
	var b *Browser

	BeforeEach(func() {
		b = &Browser{
			serviceMap: map[string]int{},
			events:     make(chan Event, 16),
			nameMap: map[string]bool{
				"_http._tcp.local": true,
			},
		}
	})

	It("merges a candidate reconstructed from a live PTR/SRV/TXT/A set", func() {
		m := &dns.Msg{}
		m.Response = true
		m.Answer = []dns.RR{samplePTR()}
		m.Extra = []dns.RR{sampleSRV(), sampleTXT(), sampleA()}

		cmd := &handleResponseCommand{Message: m, Source: transport.Endpoint{}}
		Expect(cmd.Execute(context.Background(), b)).To(Succeed())

		Expect(b.services).To(HaveLen(1))

		ev := <-b.events
		Expect(ev.Kind).To(Equal(Up))
		Expect(ev.Service.Name).To(Equal("Foo Bar"))
	})

	It("removes a service on a goodbye (TTL=0) PTR, after it was previously merged", func() {
		up := &dns.Msg{}
		up.Response = true
		up.Answer = []dns.RR{samplePTR()}
		up.Extra = []dns.RR{sampleSRV(), sampleTXT(), sampleA()}

		Expect((&handleResponseCommand{Message: up}).Execute(context.Background(), b)).To(Succeed())
		<-b.events // drain the Up event

		goodbye := samplePTR()
		goodbye.Hdr.Ttl = 0

		down := &dns.Msg{}
		down.Response = true
		down.Answer = []dns.RR{goodbye}

		Expect((&handleResponseCommand{Message: down}).Execute(context.Background(), b)).To(Succeed())

		Expect(b.services).To(BeEmpty())

		ev := <-b.events
		Expect(ev.Kind).To(Equal(Down))
	})

	It("does not merge a PTR for a name that is not being tracked", func() {
		untracked := samplePTR()
		untracked.Hdr.Name = "_ipp._tcp.local."

		m := &dns.Msg{}
		m.Response = true
		m.Answer = []dns.RR{untracked}
		m.Extra = []dns.RR{sampleSRV()}

		Expect((&handleResponseCommand{Message: m}).Execute(context.Background(), b)).To(Succeed())

		Expect(b.services).To(BeEmpty())
		Consistently(b.events).ShouldNot(Receive())
	})
})

// recordingTransport is a Transport double that counts outbound packets.
type recordingTransport struct {
	sent int
}

func (t *recordingTransport) Listen(*net.Interface) error             { return nil }
func (t *recordingTransport) Read() (*transport.InboundPacket, error) { return nil, nil }
func (t *recordingTransport) Write(*transport.OutboundPacket) error   { t.sent++; return nil }
func (t *recordingTransport) Group() *net.UDPAddr                     { return transport.IPv4GroupAddress }
func (t *recordingTransport) Close() error                            { return nil }

var _ = Describe("handleResponseCommand, wildcard discovery", func() {
	It("starts tracking a newly-seen type and re-queries for it", func() {
		rt := &recordingTransport{}
		b := &Browser{
			wildcard:   true,
			serviceMap: map[string]int{},
			nameMap:    map[string]bool{},
			events:     make(chan Event, 16),
			iface:      &net.Interface{},
			transports: []transport.Transport{rt},
		}

		enumPTR := &dns.PTR{
			Hdr: dns.RR_Header{Name: "_services._dns-sd._udp.local.", Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: 28800},
			Ptr: "_http._tcp.local.",
		}

		m := &dns.Msg{}
		m.Response = true
		m.Answer = []dns.RR{enumPTR}

		Expect((&handleResponseCommand{Message: m}).Execute(context.Background(), b)).To(Succeed())

		Expect(b.nameMap).To(HaveKeyWithValue("_http._tcp.local", true))
		Expect(rt.sent).To(Equal(1))
	})

	It("does not re-query a type already being tracked", func() {
		rt := &recordingTransport{}
		b := &Browser{
			wildcard:   true,
			serviceMap: map[string]int{},
			nameMap:    map[string]bool{"_http._tcp.local": true},
			events:     make(chan Event, 16),
			iface:      &net.Interface{},
			transports: []transport.Transport{rt},
		}

		enumPTR := &dns.PTR{
			Hdr: dns.RR_Header{Name: "_services._dns-sd._udp.local.", Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: 28800},
			Ptr: "_http._tcp.local.",
		}

		m := &dns.Msg{}
		m.Response = true
		m.Answer = []dns.RR{enumPTR}

		Expect((&handleResponseCommand{Message: m}).Execute(context.Background(), b)).To(Succeed())

		Expect(b.nameMap).To(HaveLen(1))
		Expect(rt.sent).To(Equal(0))
	})
})
