package browser

import "github.com/quietmesh/mdnsd/service"

// TypeQuery names one application type (and, optionally, a set of its
// subtypes) to browse for.
type TypeQuery struct {
	// Type is the application protocol, unprefixed, e.g. "http".
	Type string

	// Protocol is "tcp" or "udp". Defaults to "tcp".
	Protocol string

	// Subtypes, if non-empty, restricts the browse to instances advertising
	// each named subtype (one query per subtype, not one query for the bare
	// type).
	Subtypes []string
}

// Options configures a Browser.
//
// See spec.md §4.D, "Configuration".
type Options struct {
	// Types, if non-empty, is an explicit list of types (and optional
	// subtypes) to browse for.
	Types []TypeQuery

	// Type, Protocol, and Subtypes configure a single-type browse; ignored
	// if Types is non-empty.
	Type     string
	Protocol string
	Subtypes []string
}

// deriveNames computes the fixed PTR query-name vector and wildcard flag for
// a set of Options, per spec.md §4.D, "Configuration".
func deriveNames(opts Options) (names []string, wildcard bool) {
	queries := opts.Types

	if len(queries) == 0 && opts.Type != "" {
		queries = []TypeQuery{{
			Type:     opts.Type,
			Protocol: opts.Protocol,
			Subtypes: opts.Subtypes,
		}}
	}

	if len(queries) == 0 {
		return []string{service.TypeEnumDomain()}, true
	}

	for _, q := range queries {
		protocol := q.Protocol
		if protocol == "" {
			protocol = "tcp"
		}

		domain := "_" + q.Type + "._" + protocol + "." + service.TLD

		if len(q.Subtypes) == 0 {
			names = append(names, domain)
			continue
		}

		for _, sub := range q.Subtypes {
			names = append(names, "_"+sub+"._sub."+domain)
		}
	}

	return names, false
}
