package browser

import (
	"net"
	"strings"

	"github.com/miekg/dns"

	"github.com/quietmesh/mdnsd/names"
	"github.com/quietmesh/mdnsd/service"
)

// buildCandidate reconstructs a Service Descriptor for a single PTR answer,
// correlating it against the SRV/TXT/A/AAAA records of the same packet.
//
// It returns nil if no SRV record matches the PTR's target, per spec.md
// §4.D, "If no SRV was found ... discard the candidate."
func buildCandidate(ptr *dns.PTR, live []dns.RR, referer *net.UDPAddr) *service.Service {
	var srv *dns.SRV
	for _, r := range live {
		if candidate, ok := r.(*dns.SRV); ok && names.Equal(candidate.Header().Name, ptr.Ptr) {
			srv = candidate
			break
		}
	}

	if srv == nil {
		return nil
	}

	fqdn := srv.Header().Name
	instance, _, _ := strings.Cut(strings.TrimSuffix(fqdn, "."), ".")

	typ, protocol, typeDomain := typeAndProtocolFromFQDN(fqdn)

	svc := &service.Service{
		Name:     instance,
		Type:     typ,
		Protocol: protocol,
		Host:     srv.Target,
		Port:     srv.Port,
		Referer:  referer,
	}

	if labelCount(ptr.Header().Name) > labelCount(typeDomain) {
		first, _, _ := strings.Cut(strings.TrimSuffix(ptr.Header().Name, "."), ".")
		svc.Subtypes = []string{strings.TrimPrefix(first, "_")}
	}

	for _, r := range live {
		if txt, ok := r.(*dns.TXT); ok && names.Equal(txt.Header().Name, fqdn) {
			svc.TXT = service.DecodeTXT(txt.Txt)
			break
		}
	}

	var addrs service.Addresses
	for _, r := range live {
		switch a := r.(type) {
		case *dns.A:
			if names.Equal(a.Header().Name, svc.Host) {
				addrs.IPv4 = append(addrs.IPv4, a.A)
			}
		case *dns.AAAA:
			if names.Equal(a.Header().Name, svc.Host) {
				addrs.IPv6 = append(addrs.IPv6, a.AAAA)
			}
		}
	}
	if len(addrs.IPv4) > 0 || len(addrs.IPv6) > 0 {
		svc.Addresses = &addrs
	}

	return svc
}

// typeAndProtocolFromFQDN recovers the type and protocol labels from an
// instance fqdn ("<instance>.<stringified type>.local"), and returns the
// stringified-type domain ("<stringified type>.local") those labels came
// from, for use in subtype-presence detection.
func typeAndProtocolFromFQDN(fqdn string) (typ, protocol, typeDomain string) {
	labels := strings.Split(strings.TrimSuffix(fqdn, "."), ".")
	if len(labels) < 3 {
		return "", "", ""
	}

	middle := labels[1 : len(labels)-1]
	typeDomain = strings.Join(middle, ".") + "." + labels[len(labels)-1]

	typ, protocol, _ = service.ParseStringifiedType(strings.Join(middle, "."))
	return typ, protocol, typeDomain
}

// labelCount returns the number of dot-separated labels in name.
func labelCount(name string) int {
	return len(strings.Split(strings.TrimSuffix(name, "."), "."))
}
