package assemble

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/chamchi6619/pantry-core/internal/entity"
	"github.com/chamchi6619/pantry-core/internal/locale"
)

func TestAssemble(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Assemble Suite")
}

func block(text string, line uint32, x float32) entity.OcrBlock {
	return entity.OcrBlock{
		Text:      text,
		BBox:      entity.BBox{X: x, Y: float32(line) * 20, W: 80, H: 14},
		LineIndex: line,
	}
}

var _ = Describe("Assemble", func() {
	var norm *locale.Normalizer

	BeforeEach(func() {
		norm = locale.New("en-US")
	})

	When("a line carries a name block and a price block", func() {
		It("pairs the rightmost price token with the line", func() {
			lines := Assemble([]entity.OcrBlock{
				block("MILK 2% GAL", 0, 0),
				block("3.49", 0, 200),
			}, norm)

			Expect(lines).To(HaveLen(1))
			Expect(lines[0].Text).To(Equal("MILK 2% GAL"))
			Expect(lines[0].PriceText).To(Equal("3.49"))
			Expect(lines[0].Price).To(HaveValue(BeNumerically("~", 3.49, 1e-9)))
		})
	})

	When("blocks arrive out of reading order", func() {
		It("orders lines by index and blocks left to right", func() {
			lines := Assemble([]entity.OcrBlock{
				block("5.99", 1, 200),
				block("BREAD", 1, 0),
				block("MILK", 0, 0),
				block("3.49", 0, 200),
			}, norm)

			Expect(lines).To(HaveLen(2))
			Expect(lines[0].Text).To(Equal("MILK"))
			Expect(lines[1].Text).To(Equal("BREAD"))
			Expect(lines[1].Price).To(HaveValue(BeNumerically("~", 5.99, 1e-9)))
		})
	})

	When("the whole line was merged into a single block", func() {
		It("splits the trailing price token from the text", func() {
			lines := Assemble([]entity.OcrBlock{
				block("TOTAL $45.67", 0, 0),
			}, norm)

			Expect(lines).To(HaveLen(1))
			Expect(lines[0].Text).To(Equal("TOTAL"))
			Expect(lines[0].PriceText).To(Equal("$45.67"))
			Expect(lines[0].Price).To(HaveValue(BeNumerically("~", 45.67, 1e-9)))
		})
	})

	When("a line carries several numeric tokens", func() {
		It("prefers the rightmost matching token", func() {
			lines := Assemble([]entity.OcrBlock{
				block("ITEM 12", 0, 0),
				block("2.99", 0, 150),
				block("5.49", 0, 250),
			}, norm)

			Expect(lines[0].Price).To(HaveValue(BeNumerically("~", 5.49, 1e-9)))
			Expect(lines[0].Text).To(Equal("ITEM 12 2.99"))
		})
	})

	When("a weighted produce line appears", func() {
		It("multiplies quantity by unit price", func() {
			lines := Assemble([]entity.OcrBlock{
				block("BANANAS", 0, 0),
				block("2.45 @ 0.69", 0, 120),
			}, norm)

			Expect(lines[0].Text).To(Equal("BANANAS"))
			Expect(lines[0].PriceText).To(Equal("2.45 @ 0.69"))
			Expect(lines[0].Price).To(HaveValue(BeNumerically("~", 1.69, 1e-9)))
		})
	})

	When("a negative token appears", func() {
		It("reads a parenthesized amount as negative", func() {
			lines := Assemble([]entity.OcrBlock{
				block("MFR COUPON", 0, 0),
				block("(1.50)", 0, 120),
			}, norm)

			Expect(lines[0].Price).To(HaveValue(BeNumerically("~", -1.50, 1e-9)))
		})

		It("reads a trailing-minus amount as negative", func() {
			lines := Assemble([]entity.OcrBlock{
				block("STORE DISCOUNT", 0, 0),
				block("2.00-", 0, 120),
			}, norm)

			Expect(lines[0].Price).To(HaveValue(BeNumerically("~", -2.00, 1e-9)))
		})

		It("negates a coupon amount printed without a sign", func() {
			lines := Assemble([]entity.OcrBlock{
				block("COUPON 1.50", 0, 0),
			}, norm)

			Expect(lines[0].Price).To(HaveValue(BeNumerically("~", -1.50, 1e-9)))
		})
	})

	When("a percent-off token appears", func() {
		It("pairs the token but carries no absolute amount", func() {
			lines := Assemble([]entity.OcrBlock{
				block("MEMBER SPECIAL", 0, 0),
				block("20% OFF", 0, 120),
			}, norm)

			Expect(lines[0].PriceText).To(Equal("20% OFF"))
			Expect(lines[0].Price).To(BeNil())
		})
	})

	When("a line has no numeric token", func() {
		It("yields the line with a nil price", func() {
			lines := Assemble([]entity.OcrBlock{
				block("THANK YOU FOR SHOPPING", 0, 0),
			}, norm)

			Expect(lines[0].Text).To(Equal("THANK YOU FOR SHOPPING"))
			Expect(lines[0].Price).To(BeNil())
			Expect(lines[0].PriceText).To(BeEmpty())
		})
	})

	When("using a comma-decimal locale", func() {
		It("reads the European grouped form", func() {
			lines := Assemble([]entity.OcrBlock{
				block("SUMME", 0, 0),
				block("1.234,56", 0, 120),
			}, locale.New("de-DE"))

			Expect(lines[0].Price).To(HaveValue(BeNumerically("~", 1234.56, 1e-9)))
		})
	})
})
