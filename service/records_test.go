package service_test

import (
	"net"

	"github.com/miekg/dns"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/quietmesh/mdnsd/service"
)

var _ = Describe("RecordsFor", func() {
	var s *service.Service

	BeforeEach(func() {
		var err error
		s, err = service.New(service.Service{
			Name: "Foo Bar",
			Type: "http",
			Host: "foo.local",
			Port: 3000,
			Addresses: &service.Addresses{
				IPv4: []net.IP{net.ParseIP("192.168.1.1")},
			},
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("materializes the record graph in the documented order", func() {
		records, err := service.RecordsFor(s)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(5))

		ptrEnum, ok := records[0].(*dns.PTR)
		Expect(ok).To(BeTrue())
		Expect(ptrEnum.Hdr.Name).To(Equal("_services._dns-sd._udp.local."))
		Expect(ptrEnum.Ptr).To(Equal("_http._tcp.local."))
		Expect(ptrEnum.Hdr.Ttl).To(BeEquivalentTo(service.TTLServiceEnumPTR))

		ptrType, ok := records[1].(*dns.PTR)
		Expect(ok).To(BeTrue())
		Expect(ptrType.Hdr.Name).To(Equal("_http._tcp.local."))
		Expect(ptrType.Ptr).To(Equal("Foo Bar._http._tcp.local."))

		srv, ok := records[2].(*dns.SRV)
		Expect(ok).To(BeTrue())
		Expect(srv.Hdr.Name).To(Equal("Foo Bar._http._tcp.local."))
		Expect(srv.Port).To(BeEquivalentTo(3000))
		Expect(srv.Target).To(Equal("foo.local."))

		txt, ok := records[3].(*dns.TXT)
		Expect(ok).To(BeTrue())
		Expect(txt.Hdr.Name).To(Equal("Foo Bar._http._tcp.local."))
		Expect(txt.Txt).To(Equal([]string{""}))

		a, ok := records[4].(*dns.A)
		Expect(ok).To(BeTrue())
		Expect(a.Hdr.Name).To(Equal("foo.local."))
		Expect(a.A.String()).To(Equal("192.168.1.1"))
	})

	It("does not set the cache-flush bit by default", func() {
		records, err := service.RecordsFor(s)
		Expect(err).NotTo(HaveOccurred())

		srv := records[2].(*dns.SRV)
		Expect(srv.Hdr.Class & (1 << 15)).To(BeEquivalentTo(0))
	})

	It("sets the cache-flush bit on SRV/TXT/address records when Flush is set", func() {
		s.Flush = true

		records, err := service.RecordsFor(s)
		Expect(err).NotTo(HaveOccurred())

		srv := records[2].(*dns.SRV)
		Expect(srv.Hdr.Class & (1 << 15)).NotTo(BeEquivalentTo(0))

		a := records[4].(*dns.A)
		Expect(a.Hdr.Class & (1 << 15)).NotTo(BeEquivalentTo(0))

		ptrType := records[1].(*dns.PTR)
		Expect(ptrType.Hdr.Class & (1 << 15)).To(BeEquivalentTo(0))
	})

	It("appends one subtype PTR per descriptor subtype, in order", func() {
		s.Subtypes = []string{"printer", "scanner"}

		records, err := service.RecordsFor(s)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(7))

		sub1 := records[4].(*dns.PTR)
		Expect(sub1.Hdr.Name).To(Equal("_printer._sub._http._tcp.local."))
		Expect(sub1.Ptr).To(Equal("Foo Bar._http._tcp.local."))

		sub2 := records[5].(*dns.PTR)
		Expect(sub2.Hdr.Name).To(Equal("_scanner._sub._http._tcp.local."))
	})
})

var _ = Describe("GoodbyeRecords", func() {
	It("rewrites the PTR TTLs to zero", func() {
		s, err := service.New(service.Service{
			Name: "Foo Bar",
			Type: "http",
			Port: 3000,
		})
		Expect(err).NotTo(HaveOccurred())

		records := service.GoodbyeRecords(s)
		Expect(records).To(HaveLen(2))

		for _, r := range records {
			ptr, ok := r.(*dns.PTR)
			Expect(ok).To(BeTrue())
			Expect(ptr.Hdr.Ttl).To(BeEquivalentTo(0))
		}
	})

	It("includes a goodbye PTR per subtype", func() {
		s, err := service.New(service.Service{
			Name:     "Foo Bar",
			Type:     "http",
			Port:     3000,
			Subtypes: []string{"printer"},
		})
		Expect(err).NotTo(HaveOccurred())

		records := service.GoodbyeRecords(s)
		Expect(records).To(HaveLen(3))

		sub := records[2].(*dns.PTR)
		Expect(sub.Hdr.Name).To(Equal("_printer._sub._http._tcp.local."))
		Expect(sub.Hdr.Ttl).To(BeEquivalentTo(0))
	})
})
