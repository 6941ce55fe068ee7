package storeformat

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/chamchi6619/pantry-core/internal/entity"
)

func TestStoreformat(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Storeformat Suite")
}

func textLine(text string) entity.ParsedLine {
	return entity.ParsedLine{Text: text}
}

func priceLine(v float64) entity.ParsedLine {
	return entity.ParsedLine{Price: &v}
}

var _ = Describe("IsGarbage", func() {
	DescribeTable("flagging boilerplate",
		func(text string) {
			Expect(IsGarbage(text)).To(BeTrue())
		},
		Entry("thank-you footer", "THANK YOU FOR SHOPPING"),
		Entry("self checkout", "SELF-CHECKOUT LANE 4"),
		Entry("store number", "STORE #1234"),
		Entry("cashier line", "CASHIER: ALEX"),
		Entry("phone number", "(555) 123-4567"),
		Entry("street address", "123 Main ST"),
		Entry("survey URL", "TAKE OUR SURVEY AT www.example.com"),
		Entry("member number", "MEMBER # 48291"),
		Entry("timestamp", "14:32"),
		Entry("separator run", "=========="),
		Entry("transaction number", "TRANS # 004821"),
		Entry("scanner streak", "IIIIIIIIII"),
		Entry("blank", "   "),
	)

	DescribeTable("keeping real content",
		func(text string) {
			Expect(IsGarbage(text)).To(BeFalse())
		},
		Entry("item name", "ORG SPINACH"),
		Entry("merchant name", "COSTCO WHOLESALE"),
		Entry("total label", "GRAND TOTAL"),
		Entry("item with digits", "MILK 2% GAL"),
	)
})

var _ = Describe("CorrectName", func() {
	DescribeTable("expanding abbreviations and fixing OCR slips",
		func(in, want string) {
			Expect(CorrectName(in)).To(Equal(want))
		},
		Entry("abbreviation", "ORG SPINACH", "ORGANIC SPINACH"),
		Entry("ocr slip", "ORG SPINAC", "ORGANIC SPINACH"),
		Entry("multi-word expansion", "KS CHKN BREAST", "KIRKLAND SIGNATURE CHICKEN BREAST"),
		Entry("unknown tokens untouched", "GALA APPLES", "GALA APPLES"),
		Entry("mixed", "WHL MLK GAL", "WHOLE MILK GAL"),
	)
})

var _ = Describe("DetectLayout", func() {
	It("detects the three-line family", func() {
		lines := []entity.ParsedLine{
			textLine("96716"),
			textLine("ORG SPINACH"),
			priceLine(4.99),
			textLine("30669"),
			textLine("KS CHKN BREAST"),
			priceLine(12.49),
		}
		Expect(DetectLayout(lines)).To(Equal(LayoutThreeLine))
	})

	It("detects the two-line family", func() {
		lines := []entity.ParsedLine{
			textLine("1234567 MILK 2% GAL"),
			priceLine(3.49),
			textLine("7654321 WHEAT BREAD"),
			priceLine(2.99),
		}
		Expect(DetectLayout(lines)).To(Equal(LayoutTwoLine))
	})

	It("treats name-and-price receipts as inline", func() {
		v1, v2 := 3.49, 2.99
		lines := []entity.ParsedLine{
			{Text: "MILK 2% GAL", Price: &v1},
			{Text: "WHEAT BREAD", Price: &v2},
		}
		Expect(DetectLayout(lines)).To(Equal(LayoutInline))
	})

	It("counts a signature through an interposed amount-off line", func() {
		lines := []entity.ParsedLine{
			textLine("96716"),
			textLine("ORG SPINACH"),
			textLine("$1.50 OFF"),
			priceLine(3.49),
		}
		Expect(DetectLayout(lines)).To(Equal(LayoutThreeLine))
	})

	It("ignores garbage when sampling", func() {
		lines := []entity.ParsedLine{
			textLine("=========="),
			textLine("THANK YOU FOR SHOPPING"),
			textLine("96716"),
			textLine("ORG SPINACH"),
			priceLine(4.99),
		}
		Expect(DetectLayout(lines)).To(Equal(LayoutThreeLine))
	})
})

var _ = Describe("strategies", func() {
	Describe("two-line", func() {
		It("pairs a code-name line with the next price-only line", func() {
			items, candidates := ForLayout(LayoutTwoLine).Extract([]entity.ParsedLine{
				textLine("1234567 MILK 2% GAL"),
				priceLine(3.49),
				textLine("7654321 ORG SPINAC"),
				priceLine(4.99),
			})

			Expect(candidates).To(Equal(2))
			Expect(items).To(HaveLen(2))
			Expect(items[0].RawName).To(Equal("MILK 2% GAL"))
			Expect(items[0].PriceTotal).To(BeNumerically("~", 3.49, 1e-9))
			Expect(items[1].RawName).To(Equal("ORGANIC SPINACH"))
		})

		It("counts an unpaired candidate without inventing a price", func() {
			items, candidates := ForLayout(LayoutTwoLine).Extract([]entity.ParsedLine{
				textLine("1234567 MILK 2% GAL"),
				textLine("SOMETHING ELSE"),
			})

			Expect(candidates).To(Equal(1))
			Expect(items).To(BeEmpty())
		})
	})

	Describe("three-line", func() {
		It("walks code, name and price triplets", func() {
			items, candidates := ForLayout(LayoutThreeLine).Extract([]entity.ParsedLine{
				textLine("96716"),
				textLine("ORG SPINACH"),
				priceLine(4.99),
				textLine("30669"),
				textLine("KS CHKN BREAST"),
				priceLine(12.49),
			})

			Expect(candidates).To(Equal(2))
			Expect(items).To(HaveLen(2))
			Expect(items[0].RawName).To(Equal("ORGANIC SPINACH"))
			Expect(items[1].RawName).To(Equal("KIRKLAND SIGNATURE CHICKEN BREAST"))
			Expect(items[1].PriceTotal).To(BeNumerically("~", 12.49, 1e-9))
		})

		It("skips an interposed amount-off line", func() {
			items, _ := ForLayout(LayoutThreeLine).Extract([]entity.ParsedLine{
				textLine("96716"),
				textLine("ORG SPINACH"),
				textLine("$1.50 OFF"),
				priceLine(3.49),
			})

			Expect(items).To(HaveLen(1))
			Expect(items[0].PriceTotal).To(BeNumerically("~", 3.49, 1e-9))
		})

		It("skips negative price lines", func() {
			items, _ := ForLayout(LayoutThreeLine).Extract([]entity.ParsedLine{
				textLine("96716"),
				textLine("ORG SPINACH"),
				priceLine(-4.99),
			})

			Expect(items).To(BeEmpty())
		})
	})

	It("returns no strategy for inline receipts", func() {
		Expect(ForLayout(LayoutInline)).To(BeNil())
	})
})
