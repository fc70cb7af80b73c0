package service

import (
	"github.com/miekg/dns"
)

// TTL constants for each DNS-SD record kind.
//
// See spec.md §6 ("Constants").
const (
	TTLServiceEnumPTR = 28800
	TTLTypePTR        = 28800
	TTLSubtypePTR     = 28800
	TTLSRV            = 120
	TTLTXT            = 4500
	TTLAddress        = 120

	// TTLGoodbye is the TTL used to announce imminent shutdown of a service.
	TTLGoodbye = 0
)

// RecordsFor materializes the ordered list of DNS-SD resource records for a
// published service.
//
// The order is deterministic and observable in tests: service-enumeration
// PTR, type PTR, SRV, TXT, subtype PTRs (in descriptor order), then A/AAAA
// records in host-interface iteration order.
//
// See spec.md §3 ("Record graph") and §4.A ("Records materialization").
func RecordsFor(s *Service) ([]dns.RR, error) {
	fqdn := dns.Fqdn(s.FQDN())
	instanceEnum := dns.Fqdn(s.InstanceEnumDomain())
	target := dns.Fqdn(s.Host)

	flush := uint16(dns.ClassINET)
	if s.Flush {
		flush |= 1 << 15
	}

	records := []dns.RR{
		&dns.PTR{
			Hdr: dns.RR_Header{
				Name:   dns.Fqdn(TypeEnumDomain()),
				Rrtype: dns.TypePTR,
				Class:  dns.ClassINET,
				Ttl:    TTLServiceEnumPTR,
			},
			Ptr: instanceEnum,
		},
		&dns.PTR{
			Hdr: dns.RR_Header{
				Name:   instanceEnum,
				Rrtype: dns.TypePTR,
				Class:  dns.ClassINET,
				Ttl:    TTLTypePTR,
			},
			Ptr: fqdn,
		},
		&dns.SRV{
			Hdr: dns.RR_Header{
				Name:   fqdn,
				Rrtype: dns.TypeSRV,
				Class:  flush,
				Ttl:    TTLSRV,
			},
			Priority: 0,
			Weight:   0,
			Port:     s.Port,
			Target:   target,
		},
		&dns.TXT{
			Hdr: dns.RR_Header{
				Name:   fqdn,
				Rrtype: dns.TypeTXT,
				Class:  flush,
				Ttl:    TTLTXT,
			},
			Txt: EncodeTXT(s.TXT),
		},
	}

	for _, sub := range s.Subtypes {
		records = append(records, &dns.PTR{
			Hdr: dns.RR_Header{
				Name:   dns.Fqdn(s.SubtypeEnumDomain(sub)),
				Rrtype: dns.TypePTR,
				Class:  dns.ClassINET,
				Ttl:    TTLSubtypePTR,
			},
			Ptr: fqdn,
		})
	}

	addrs, err := s.resolveAddresses()
	if err != nil {
		return nil, err
	}

	for _, ip := range addrs.IPv4 {
		records = append(records, &dns.A{
			Hdr: dns.RR_Header{
				Name:   target,
				Rrtype: dns.TypeA,
				Class:  flush,
				Ttl:    TTLAddress,
			},
			A: ip,
		})
	}

	for _, ip := range addrs.IPv6 {
		records = append(records, &dns.AAAA{
			Hdr: dns.RR_Header{
				Name:   target,
				Rrtype: dns.TypeAAAA,
				Class:  flush,
				Ttl:    TTLAddress,
			},
			AAAA: ip,
		})
	}

	return records, nil
}

// GoodbyeRecords returns the PTR records that announce a service's imminent
// withdrawal: the same service-enumeration, type and subtype PTRs, with TTL
// rewritten to zero.
//
// See spec.md §4.C ("unpublishAll").
func GoodbyeRecords(s *Service) []dns.RR {
	fqdn := dns.Fqdn(s.FQDN())
	instanceEnum := dns.Fqdn(s.InstanceEnumDomain())

	records := []dns.RR{
		&dns.PTR{
			Hdr: dns.RR_Header{
				Name:   dns.Fqdn(TypeEnumDomain()),
				Rrtype: dns.TypePTR,
				Class:  dns.ClassINET,
				Ttl:    TTLGoodbye,
			},
			Ptr: instanceEnum,
		},
		&dns.PTR{
			Hdr: dns.RR_Header{
				Name:   instanceEnum,
				Rrtype: dns.TypePTR,
				Class:  dns.ClassINET,
				Ttl:    TTLGoodbye,
			},
			Ptr: fqdn,
		},
	}

	for _, sub := range s.Subtypes {
		records = append(records, &dns.PTR{
			Hdr: dns.RR_Header{
				Name:   dns.Fqdn(s.SubtypeEnumDomain(sub)),
				Rrtype: dns.TypePTR,
				Class:  dns.ClassINET,
				Ttl:    TTLGoodbye,
			},
			Ptr: fqdn,
		})
	}

	return records
}
