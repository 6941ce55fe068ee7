package entity

// BBox is the bounding box of an OCR fragment, in source-image pixels.
type BBox struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	W float32 `json:"w"`
	H float32 `json:"h"`
}

// OcrBlock is one recognized text fragment as produced by the OCR provider.
// Blocks are immutable inputs; this core never mutates them.
type OcrBlock struct {
	Text       string   `json:"text"`
	BBox       BBox     `json:"bbox"`
	LineIndex  uint32   `json:"line_index"`
	Confidence *float32 `json:"confidence,omitempty"`
}
