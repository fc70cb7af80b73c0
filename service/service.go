// Package service implements the DNS-SD "Service Descriptor" — the value
// object that describes one advertised or discovered service instance and
// knows how to materialize its DNS-SD record set.
//
// See spec.md §3 (Data Model) and §4.A (Service Descriptor).
package service

import (
	"net"
	"os"
	"strings"

	"github.com/quietmesh/mdnsd/internal/hostaddrs"
)

// TLD is the domain suffix used for all discovery operations.
//
// See spec.md §6 ("Constants").
const TLD = "local"

// Addresses is an explicit set of addresses to advertise for a service. When
// a Service's Addresses field is nil, all non-internal host addresses are
// used instead (spec.md §4.A, "Address enumeration policy").
type Addresses struct {
	IPv4 []net.IP
	IPv6 []net.IP
}

// Service is a DNS-SD service instance, either one this process is
// advertising, or one discovered on the link by a Browser.
//
// See spec.md §3.
type Service struct {
	// Name is the instance's human-readable label, e.g. "Foo Bar". Required.
	Name string

	// Type is the application protocol, unprefixed, e.g. "http" or "ipp".
	// Required.
	Type string

	// Protocol is "tcp" or "udp". Defaults to "tcp".
	Protocol string

	// Host is the target hostname used in the SRV record. Defaults to the
	// local hostname.
	Host string

	// Port is the TCP/UDP port the service listens on. Required, 1..65535.
	Port uint16

	// Subtypes is an optional ordered list of subtype labels.
	Subtypes []string

	// TXT is an optional set of key/value pairs encoded into the TXT RDATA.
	TXT map[string]string

	// Addresses is an optional explicit address set. When nil, all
	// non-internal host addresses are used.
	Addresses *Addresses

	// Flush is the cache-flush bit propagated into published records.
	Flush bool

	// Published reports whether the Registry has emitted the initial
	// announcement for this service.
	Published bool

	// Referer is, for services discovered by a Browser, the source address
	// of the response that first introduced the service. It is nil for
	// locally-published services.
	Referer *net.UDPAddr
}

// New constructs a Service, validating required fields and filling in
// defaults.
//
// It returns a *MissingFieldError if Name, Type, or Port is absent.
func New(opts Service) (*Service, error) {
	s := opts

	if s.Name == "" {
		return nil, &MissingFieldError{Field: "name"}
	}

	if s.Type == "" {
		return nil, &MissingFieldError{Field: "type"}
	}

	if s.Port == 0 {
		return nil, &MissingFieldError{Field: "port"}
	}

	if s.Protocol == "" {
		s.Protocol = "tcp"
	}

	if s.Host == "" {
		h, err := os.Hostname()
		if err != nil {
			return nil, err
		}
		s.Host = h + "." + TLD
	}

	return &s, nil
}

// StringifiedType returns the "_<type>._<protocol>" form of the service type,
// e.g. "_http._tcp".
//
// See spec.md §3, "Stringified type rule".
func (s *Service) StringifiedType() string {
	return "_" + s.Type + "._" + s.Protocol
}

// TypeEnumDomain returns the domain queried to perform "service type
// enumeration" within the .local domain.
func TypeEnumDomain() string {
	return "_services._dns-sd._udp." + TLD
}

// InstanceEnumDomain returns the domain queried to perform "service instance
// enumeration" (browse) for this service's type.
func (s *Service) InstanceEnumDomain() string {
	return s.StringifiedType() + "." + TLD
}

// SubtypeEnumDomain returns the domain queried to perform selective instance
// enumeration for the given subtype of this service's type.
func (s *Service) SubtypeEnumDomain(subtype string) string {
	return "_" + subtype + "._sub." + s.InstanceEnumDomain()
}

// FQDN returns the service's fully-qualified instance name:
// "<name>.<stringified type>.local".
//
// See spec.md §3, "fqdn" and §8 scenario 1.
func (s *Service) FQDN() string {
	return s.Name + "." + s.InstanceEnumDomain()
}

// resolveAddresses returns the addresses to advertise for this service,
// applying the address enumeration policy from spec.md §4.A.
func (s *Service) resolveAddresses() (Addresses, error) {
	if s.Addresses != nil {
		return *s.Addresses, nil
	}

	a, err := hostaddrs.Enumerate()
	if err != nil {
		return Addresses{}, err
	}

	return Addresses{IPv4: a.IPv4, IPv6: a.IPv6}, nil
}

// ParseStringifiedType splits a "_<type>._<protocol>" label pair back into
// its type and protocol components.
//
// See the Browser's candidate-reconstruction algorithm, spec.md §4.D.
func ParseStringifiedType(s string) (typ, protocol string, ok bool) {
	labels := strings.Split(strings.TrimSuffix(s, "."), ".")
	if len(labels) != 2 {
		return "", "", false
	}

	typ = strings.TrimPrefix(labels[0], "_")
	protocol = strings.TrimPrefix(labels[1], "_")

	if typ == labels[0] || protocol == labels[1] {
		// one of the labels was missing its leading underscore.
		return "", "", false
	}

	return typ, protocol, true
}
