package names_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/quietmesh/mdnsd/names"
)

var _ = Describe("Parse", func() {
	It("parses a single label", func() {
		n, err := names.Parse("foo")
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeAssignableToTypeOf(names.Label("")))
		Expect(n.IsQualified()).To(BeFalse())
	})

	It("parses an unqualified multi-label name", func() {
		n, err := names.Parse("_http._tcp")
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeAssignableToTypeOf(names.UDN("")))
		Expect(n.IsQualified()).To(BeFalse())
	})

	It("parses a fully-qualified name", func() {
		n, err := names.Parse("_http._tcp.local.")
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeAssignableToTypeOf(names.FQDN("")))
		Expect(n.IsQualified()).To(BeTrue())
	})

	It("rejects an invalid name", func() {
		_, err := names.Parse("")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Equal", func() {
	It("compares names case-insensitively", func() {
		Expect(names.Equal("Foo.Local", "foo.local")).To(BeTrue())
	})

	It("ignores a trailing dot on either side", func() {
		Expect(names.Equal("foo.local.", "foo.local")).To(BeTrue())
		Expect(names.Equal("foo.local", "foo.local.")).To(BeTrue())
	})

	It("distinguishes different names", func() {
		Expect(names.Equal("foo.local", "bar.local")).To(BeFalse())
	})
})
