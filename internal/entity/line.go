package entity

// ParsedLine is one logical receipt line after block assembly, paired with
// its most plausible trailing price token. Never mutated after creation.
type ParsedLine struct {
	Text      string   `json:"text"`
	PriceText string   `json:"price_text,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	LineIndex uint32   `json:"line_index"`
	IsItem    bool     `json:"is_item"`
}

// ParsedItem is one purchased item. For weighted items PriceTotal is
// Qty*PriceEach up to floating rounding; PriceTotal is never negative.
type ParsedItem struct {
	RawName    string   `json:"raw_name"`
	Qty        float64  `json:"qty"`
	Unit       string   `json:"unit"`
	PriceEach  *float64 `json:"price_each,omitempty"`
	PriceTotal float64  `json:"price_total"`
	Confidence float32  `json:"confidence"`
}

// DiscountKind labels the flavor of a deduction line.
type DiscountKind string

const (
	DiscountCoupon   DiscountKind = "COUPON"
	DiscountDiscount DiscountKind = "DISCOUNT"
	DiscountSavings  DiscountKind = "SAVINGS"
	DiscountOther    DiscountKind = "OTHER"
)

// DiscountLine is a deduction. Amount is always a positive magnitude; the
// sign is structural (discounts subtract from the subtotal).
type DiscountLine struct {
	RawText string       `json:"raw_text"`
	Amount  float64      `json:"amount"`
	Kind    DiscountKind `json:"kind"`
}
