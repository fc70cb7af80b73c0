package responder

import (
	"context"
	"strings"

	"github.com/miekg/dns"

	"github.com/quietmesh/mdnsd/names"
	"github.com/quietmesh/mdnsd/transport"
)

// handleQuery is a Responder command that answers an inbound mDNS query.
//
// See spec.md §4.B, "Answer derivation rules".
type handleQuery struct {
	Packet  *transport.InboundPacket
	Message *dns.Msg
}

func (c *handleQuery) Execute(ctx context.Context, r *Responder) error {
	defer c.Packet.Close()

	legacy := c.Packet.Source.IsLegacy()

	res := dns.Msg{}
	res.SetReply(c.Message)
	res.Question = nil
	res.Authoritative = true
	res.Compress = true
	if !legacy {
		res.Id = 0
	}

	for _, q := range c.Message.Question {
		answers, additionals := r.table.answer(q)
		res.Answer = append(res.Answer, answers...)
		res.Extra = append(res.Extra, additionals...)
	}

	if len(res.Answer) == 0 {
		// spec.md §4.B rule 5: no answers, no response.
		return nil
	}

	if legacy {
		_, err := transport.SendUnicastResponse(c.Packet, &res)
		return err
	}

	_, err := transport.SendMulticastResponse(c.Packet, &res)
	return err
}

// answer implements the rules in spec.md §4.B, "Answer derivation rules".
func (t table) answer(q dns.Question) (answers, additionals []dns.RR) {
	// rule 1: ANY spans every bucket in the table and never carries
	// additionals.
	if q.Qtype == dns.TypeANY {
		for _, r := range t.bucketFor(dns.TypeANY) {
			if nameMatches(q.Name, r.Header().Name) {
				answers = append(answers, r)
			}
		}
		return answers, nil
	}

	// rule 2: otherwise the bucket for the exact qtype.
	for _, r := range t.bucketFor(q.Qtype) {
		if nameMatches(q.Name, r.Header().Name) {
			answers = append(answers, r)
		}
	}

	// rule 4: additionals chain PTR -> SRV/TXT -> A/AAAA.
	for _, a := range answers {
		ptr, ok := a.(*dns.PTR)
		if !ok {
			continue
		}

		for _, srv := range t.bucketFor(dns.TypeSRV) {
			if names.Equal(srv.Header().Name, ptr.Ptr) {
				additionals = append(additionals, srv)
			}
		}

		for _, txt := range t.bucketFor(dns.TypeTXT) {
			if names.Equal(txt.Header().Name, ptr.Ptr) {
				additionals = append(additionals, txt)
			}
		}
	}

	srvAdditionals := append([]dns.RR(nil), additionals...)
	for _, extra := range srvAdditionals {
		srv, ok := extra.(*dns.SRV)
		if !ok {
			continue
		}

		for _, a := range t.bucketFor(dns.TypeA) {
			if names.Equal(a.Header().Name, srv.Target) {
				additionals = append(additionals, a)
			}
		}

		for _, aaaa := range t.bucketFor(dns.TypeAAAA) {
			if names.Equal(aaaa.Header().Name, srv.Target) {
				additionals = append(additionals, aaaa)
			}
		}
	}

	return answers, additionals
}

// nameMatches implements spec.md §4.B rule 3: a dotted question name is
// matched verbatim; a bare (single-label) question name matches only the
// first label of the record name.
func nameMatches(question, record string) bool {
	question = strings.TrimSuffix(question, ".")

	if strings.Contains(question, ".") {
		return names.Equal(question, record)
	}

	first, _, _ := strings.Cut(strings.TrimSuffix(record, "."), ".")
	return strings.EqualFold(question, first)
}
