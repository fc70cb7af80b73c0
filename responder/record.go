package responder

import (
	"github.com/miekg/dns"

	"github.com/quietmesh/mdnsd/names"
)

// table is the authoritative record table: records grouped by their DNS
// resource record type.
//
// See spec.md §4.B, "State".
type table map[uint16][]dns.RR

// register adds records to the table, dropping any that duplicate an
// existing record under (type, name, data).
func (t table) register(records ...dns.RR) {
	for _, r := range records {
		rtype := r.Header().Rrtype
		bucket := t[rtype]

		if containsRecord(bucket, r) {
			continue
		}

		t[rtype] = append(bucket, r)
	}
}

// unregister removes every record matching (type, name) for each of the
// given records. Absent records are a no-op.
func (t table) unregister(records ...dns.RR) {
	for _, r := range records {
		rtype := r.Header().Rrtype
		bucket := t[rtype]
		if len(bucket) == 0 {
			continue
		}

		kept := bucket[:0]
		for _, existing := range bucket {
			if !names.Equal(existing.Header().Name, r.Header().Name) {
				kept = append(kept, existing)
			}
		}

		if len(kept) == 0 {
			delete(t, rtype)
		} else {
			t[rtype] = kept
		}
	}
}

// containsRecord reports whether bucket already holds a record matching r's
// name and data.
func containsRecord(bucket []dns.RR, r dns.RR) bool {
	for _, existing := range bucket {
		if names.Equal(existing.Header().Name, r.Header().Name) && recordDataEqual(existing, r) {
			return true
		}
	}

	return false
}

// recordDataEqual compares two records of the same type for equal RDATA,
// ignoring TTL and the cache-flush bit, neither of which is part of a
// record's "data" for deduplication purposes.
func recordDataEqual(a, b dns.RR) bool {
	na := dns.Copy(a)
	nb := dns.Copy(b)

	na.Header().Ttl = 0
	nb.Header().Ttl = 0
	na.Header().Class &^= 1 << 15
	nb.Header().Class &^= 1 << 15

	return na.String() == nb.String()
}

// bucketFor returns the records in the table for an exact qtype, or every
// record in the table (across all types) when qtype is dns.TypeANY.
func (t table) bucketFor(qtype uint16) []dns.RR {
	if qtype == dns.TypeANY {
		var all []dns.RR
		for _, bucket := range t {
			all = append(all, bucket...)
		}
		return all
	}

	return t[qtype]
}
