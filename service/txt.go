package service

import (
	"sort"
	"strings"
)

// EncodeTXT converts a TXT key/value mapping into the ordered list of
// DNS character-strings that make up a TXT record's RDATA, per
// RFC 6763 §6.
//
// Keys are emitted in sorted order so that record construction is
// deterministic. A nil or empty map encodes to a single empty string, which
// miekg/dns packs as the single zero-length character-string RFC 6763 §6.1
// requires when a service has no attributes.
func EncodeTXT(pairs map[string]string) []string {
	if len(pairs) == 0 {
		return []string{""}
	}

	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		v := pairs[k]
		if v == "" {
			out = append(out, k)
			continue
		}
		out = append(out, k+"="+v)
	}

	return out
}

// DecodeTXT parses the character-strings of a TXT record's RDATA back into a
// key/value mapping. Entries with no "=" are treated as boolean flags and
// decode to an empty-string value, per RFC 6763 §6.4.
//
// A single empty entry (the RFC 6763 §6.1 "no data" encoding) decodes to a
// nil map.
func DecodeTXT(pairs []string) map[string]string {
	if len(pairs) == 0 || (len(pairs) == 1 && pairs[0] == "") {
		return nil
	}

	m := make(map[string]string, len(pairs))

	for _, p := range pairs {
		if p == "" {
			continue
		}

		if i := strings.IndexByte(p, '='); i != -1 {
			m[p[:i]] = p[i+1:]
		} else {
			m[p] = ""
		}
	}

	return m
}
