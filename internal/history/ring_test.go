package history

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestHistory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "History Suite")
}

var _ = Describe("Ring", func() {
	var ring *Ring

	BeforeEach(func() {
		ring = NewRing(3)
	})

	It("returns names most recent first", func() {
		ring.Add("milk")
		ring.Add("eggs")
		ring.Add("bread")

		Expect(ring.Recent("", 10)).To(Equal([]string{"bread", "eggs", "milk"}))
	})

	It("evicts the oldest entry once full", func() {
		ring.Add("milk")
		ring.Add("eggs")
		ring.Add("bread")
		ring.Add("butter")

		Expect(ring.Len()).To(Equal(3))
		Expect(ring.Recent("", 10)).To(Equal([]string{"butter", "bread", "eggs"}))
	})

	It("moves a re-added name to the front without duplicating", func() {
		ring.Add("milk")
		ring.Add("eggs")
		ring.Add("milk")

		Expect(ring.Len()).To(Equal(2))
		Expect(ring.Recent("", 10)).To(Equal([]string{"milk", "eggs"}))
	})

	It("deduplicates case-insensitively but keeps the latest casing", func() {
		ring.Add("Milk")
		ring.Add("milk")

		Expect(ring.Len()).To(Equal(1))
		Expect(ring.Recent("", 10)).To(Equal([]string{"milk"}))
	})

	It("filters by prefix case-insensitively", func() {
		ring.Add("milk")
		ring.Add("eggs")
		ring.Add("mustard")

		Expect(ring.Recent("MI", 10)).To(Equal([]string{"milk"}))
		Expect(ring.Recent("m", 10)).To(Equal([]string{"mustard", "milk"}))
	})

	It("caps the number of results", func() {
		ring.Add("milk")
		ring.Add("eggs")
		ring.Add("bread")

		Expect(ring.Recent("", 2)).To(HaveLen(2))
	})

	It("ignores blank names", func() {
		ring.Add("  ")
		Expect(ring.Len()).To(BeZero())
	})

	It("raises a capacity below one to one", func() {
		tiny := NewRing(0)
		tiny.Add("milk")
		tiny.Add("eggs")

		Expect(tiny.Len()).To(Equal(1))
		Expect(tiny.Recent("", 10)).To(Equal([]string{"eggs"}))
	})
})
