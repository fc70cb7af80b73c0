package names

import (
	"errors"
	"fmt"
	"strings"
)

// Host is the name of an internet host. Host names do not contain any dots.
type Host string

// ParseHost parses n as a host name.
func ParseHost(n string) (Host, error) {
	v := Host(n)
	return v, v.Validate()
}

// MustParseHost parses n as a Host. It panics if n is invalid.
func MustParseHost(n string) Host {
	v, err := ParseHost(n)
	if err != nil {
		panic(err)
	}
	return v
}

// IsQualified returns false.
func (n Host) IsQualified() bool {
	return false
}

// Qualify returns a fully-qualified domain name produced by "qualifying"
// this name with f.
func (n Host) Qualify(f FQDN) FQDN {
	return MustParseFQDN(string(n) + "." + string(f))
}

// Labels returns the DNS labels that form this name.
func (n Host) Labels() []Label {
	return []Label{Label(n)}
}

// Split splits the "hostname" from the name. A Host has no dots, so tail is
// always nil.
func (n Host) Split() (head Label, tail Name) {
	head = Label(n)
	return
}

// Join returns a name produced by concatenating this name with s.
func (n Host) Join(s Name) Name {
	return MustParse(n.String() + "." + s.String())
}

// Validate returns nil if the name is valid.
func (n Host) Validate() error {
	if n == "" {
		return errors.New("hostname must not be empty")
	}

	if strings.Contains(string(n), ".") {
		return fmt.Errorf("hostname '%s' is invalid, contains unexpected dots", n)
	}

	return nil
}

// String returns a human-readable representation of the name.
func (n Host) String() string {
	return string(n)
}
