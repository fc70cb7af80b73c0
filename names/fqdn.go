package names

import (
	"errors"
	"fmt"
	"strings"
)

// FQDN is a fully-qualified internet domain name.
type FQDN string

// MustParseFQDN parses n as an FQDN. It panics if n is invalid.
func MustParseFQDN(n string) FQDN {
	v := FQDN(n)
	if err := v.Validate(); err != nil {
		panic(err)
	}
	return v
}

// IsQualified returns true.
func (n FQDN) IsQualified() bool {
	return true
}

// Qualify returns n unchanged.
func (n FQDN) Qualify(FQDN) FQDN {
	return n
}

// Labels returns the DNS labels that form this name.
// It panics if the name is not valid.
func (n FQDN) Labels() []Label {
	s := n.String()
	var labels []Label

	for {
		i := strings.Index(s, ".")
		if i == -1 {
			return labels
		}

		labels = append(labels, Label(s[:i]))
		s = s[i+1:]
	}
}

// Split splits the first label from the name.
// If the name only has a single label, tail is nil.
// It panics if the name is not valid.
func (n FQDN) Split() (head Label, tail Name) {
	s := n.String()
	i := strings.Index(s, ".")

	head = Label(s[:i])

	if i != len(s)-1 {
		tail = FQDN(s[i+1:])
	}

	return
}

// Join returns a name produced by concatenating this name with s.
// It panics because an FQDN is already fully qualified.
func (n FQDN) Join(s Name) Name {
	panic(fmt.Sprintf(
		"can not join '%s' to '%s', left-hand-side is already fully-qualified",
		n,
		s,
	))
}

// Validate returns nil if the name is valid.
func (n FQDN) Validate() error {
	if n == "" {
		return errors.New("fully-qualified name must not be empty")
	}

	if n[0] == '.' {
		return fmt.Errorf("fully-qualified name '%s' is invalid, unexpected leading dot", n)
	}

	if n[len(n)-1] != '.' {
		return fmt.Errorf("fully-qualified name '%s' is invalid, missing trailing dot", n)
	}

	return nil
}

// String returns a representation of the name as used by DNS systems.
// It panics if the name is not valid.
func (n FQDN) String() string {
	if err := n.Validate(); err != nil {
		panic(err)
	}

	return string(n)
}

// DNSString is an alias of String(), named to make call sites that build
// wire-format dns.RR names read clearly.
func (n FQDN) DNSString() string {
	return n.String()
}

// IsWithin returns true if n is equal to, or a descendant of, parent.
func (n FQDN) IsWithin(parent FQDN) bool {
	self := strings.ToLower(strings.TrimSuffix(n.String(), "."))
	p := strings.ToLower(strings.TrimSuffix(parent.String(), "."))

	if self == p {
		return true
	}

	return strings.HasSuffix(self, "."+p)
}

// EqualFQDN returns true if n and other are DNS-equal (case-insensitive).
func (n FQDN) EqualFQDN(other FQDN) bool {
	return Equal(string(n), string(other))
}
