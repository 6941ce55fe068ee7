package heuristics

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/chamchi6619/pantry-core/internal/entity"
	"github.com/chamchi6619/pantry-core/internal/locale"
)

func TestHeuristics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Heuristics Suite")
}

func block(text string, line uint32, x float32) entity.OcrBlock {
	return entity.OcrBlock{
		Text:      text,
		BBox:      entity.BBox{X: x, Y: float32(line) * 20, W: 80, H: 14},
		LineIndex: line,
	}
}

// inlineReceipt is a clean single-column receipt that reconciles exactly:
// 3.49 + 5.99 + 1.69 = 11.17, plus 0.98 tax = 12.15.
func inlineReceipt() []entity.OcrBlock {
	return []entity.OcrBlock{
		block("COSTCO WHOLESALE", 0, 0),
		block("09/25/25", 1, 0),
		block("MILK", 2, 0), block("3.49", 2, 200),
		block("EGGS", 3, 0), block("5.99", 3, 200),
		block("BANANAS", 4, 0), block("2.45 @ 0.69", 4, 120),
		block("SUBTOTAL", 5, 0), block("11.17", 5, 200),
		block("TAX", 6, 0), block("0.98", 6, 200),
		block("TOTAL", 7, 0), block("$12.15", 7, 200),
	}
}

var _ = Describe("Engine", func() {
	var engine *Engine

	BeforeEach(func() {
		engine = NewEngine(locale.New("en-US"), nil)
	})

	When("parsing a clean inline receipt", func() {
		var res entity.HeuristicsResult

		JustBeforeEach(func() {
			res = engine.ParseReceipt(inlineReceipt())
		})

		It("finds the merchant at the top", func() {
			Expect(res.Merchant).To(Equal("COSTCO WHOLESALE"))
		})

		It("normalizes the date", func() {
			Expect(res.Date).To(Equal("2025-09-25"))
		})

		It("extracts every item with its price", func() {
			Expect(res.Items).To(HaveLen(3))
			Expect(res.Items[0].RawName).To(Equal("MILK"))
			Expect(res.Items[0].PriceTotal).To(BeNumerically("~", 3.49, 1e-9))
		})

		It("expands the weighted produce line", func() {
			banana := res.Items[2]
			Expect(banana.RawName).To(Equal("BANANAS"))
			Expect(banana.Qty).To(BeNumerically("~", 2.45, 1e-9))
			Expect(banana.Unit).To(Equal("lb"))
			Expect(banana.PriceTotal).To(BeNumerically("~", 1.69, 1e-9))
		})

		It("prefers the printed subtotal", func() {
			Expect(res.Subtotal).To(HaveValue(BeNumerically("~", 11.17, 1e-9)))
		})

		It("captures tax and total", func() {
			Expect(res.Tax).To(HaveValue(BeNumerically("~", 0.98, 1e-9)))
			Expect(res.Total).To(HaveValue(BeNumerically("~", 12.15, 1e-9)))
		})

		It("reconciles within tolerance", func() {
			Expect(res.Reconciliation.Ok).To(BeTrue())
			Expect(res.Reconciliation.Delta).To(HaveValue(BeNumerically("~", 0, 1e-9)))
		})

		It("detects the currency from the symbol", func() {
			Expect(res.CurrencyCode).To(Equal("USD"))
		})

		It("pairs every candidate line", func() {
			Expect(res.LinesPairedRatio).To(BeNumerically("~", 1.0, 1e-6))
		})

		It("scores full confidence and bypasses the fallback extractor", func() {
			Expect(res.Confidence).To(BeNumerically("~", 1.0, 1e-6))
			Expect(res.NeedsReview).To(BeFalse())
			Expect(res.ShouldSkipLLM).To(BeTrue())
		})
	})

	When("parsing a three-line receipt", func() {
		It("extracts items through the multi-line strategy", func() {
			res := engine.ParseReceipt([]entity.OcrBlock{
				block("TRADER JOES", 0, 0),
				block("09/25/25", 1, 0),
				block("96716", 2, 0),
				block("ORG SPINAC", 3, 0),
				block("4.99", 4, 200),
				block("30669", 5, 0),
				block("KS CHKN BREAST", 6, 0),
				block("12.49", 7, 200),
				block("TOTAL", 8, 0), block("17.48", 8, 200),
			})

			Expect(res.Items).To(HaveLen(2))
			Expect(res.Items[0].RawName).To(Equal("ORGANIC SPINACH"))
			Expect(res.Items[1].RawName).To(Equal("KIRKLAND SIGNATURE CHICKEN BREAST"))
			Expect(res.Total).To(HaveValue(BeNumerically("~", 17.48, 1e-9)))
			Expect(res.Reconciliation.Ok).To(BeTrue())
		})
	})

	When("the receipt is empty", func() {
		It("returns an empty result flagged for review", func() {
			res := engine.ParseReceipt(nil)

			Expect(res.Items).To(BeEmpty())
			Expect(res.Discounts).To(BeEmpty())
			Expect(res.Merchant).To(BeEmpty())
			Expect(res.NeedsReview).To(BeTrue())
			Expect(res.ShouldSkipLLM).To(BeFalse())
		})
	})

	When("the total is missing", func() {
		It("degrades instead of failing", func() {
			res := engine.ParseReceipt([]entity.OcrBlock{
				block("CORNER MART", 0, 0),
				block("MILK", 1, 0), block("3.49", 1, 200),
			})

			Expect(res.Total).To(BeNil())
			Expect(res.Reconciliation.Ok).To(BeFalse())
			Expect(res.NeedsReview).To(BeTrue())
			Expect(res.ShouldSkipLLM).To(BeFalse())
		})
	})

	When("garbage surrounds the items", func() {
		It("keeps store chatter out of items and merchant", func() {
			res := engine.ParseReceipt([]entity.OcrBlock{
				block("==========", 0, 0),
				block("SAFEWAY", 1, 0),
				block("STORE #1234", 2, 0),
				block("MILK", 3, 0), block("3.49", 3, 200),
				block("THANK YOU FOR SHOPPING", 4, 0),
				block("TOTAL", 5, 0), block("3.49", 5, 200),
			})

			Expect(res.Merchant).To(Equal("SAFEWAY"))
			Expect(res.Items).To(HaveLen(1))
			Expect(res.Items[0].RawName).To(Equal("MILK"))
		})
	})
})

var _ = Describe("gating policy", func() {
	ptr := func(v float64) *float64 { return &v }

	strong := func() entity.HeuristicsResult {
		return entity.HeuristicsResult{
			Merchant:         "SAFEWAY",
			Date:             "2025-09-25",
			Total:            ptr(45.67),
			Reconciliation:   entity.ReconciliationResult{Ok: true},
			LinesPairedRatio: 0.9,
		}
	}

	It("skips the fallback extractor only when every signal holds", func() {
		r := strong()
		r.Confidence = Score(r)
		Expect(ShouldSkipLLM(r)).To(BeTrue())
	})

	It("refuses to skip when reconciliation failed", func() {
		r := strong()
		r.Reconciliation.Ok = false
		r.Confidence = Score(r)
		Expect(ShouldSkipLLM(r)).To(BeFalse())
	})

	It("refuses to skip when too few lines paired", func() {
		r := strong()
		r.LinesPairedRatio = 0.6
		r.Confidence = Score(r)
		Expect(ShouldSkipLLM(r)).To(BeFalse())
	})

	It("refuses to skip without a merchant", func() {
		r := strong()
		r.Merchant = ""
		r.Confidence = Score(r)
		Expect(ShouldSkipLLM(r)).To(BeFalse())
	})

	It("flags low-ratio parses for review even when reconciled", func() {
		r := strong()
		r.LinesPairedRatio = 0.4
		r.Confidence = Score(r)
		Expect(NeedsReview(r)).To(BeTrue())
	})

	It("accepts a strong parse without review", func() {
		r := strong()
		r.Confidence = Score(r)
		Expect(NeedsReview(r)).To(BeFalse())
	})
})
