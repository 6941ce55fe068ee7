package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/chamchi6619/pantry-core/internal/entity"
	"github.com/chamchi6619/pantry-core/internal/heuristics"
	"github.com/chamchi6619/pantry-core/internal/locale"
)

type parseReceiptRequest struct {
	Locale string            `json:"locale,omitempty"`
	Blocks []entity.OcrBlock `json:"blocks"`
}

// handleParseReceipt runs the deterministic pipeline over one receipt's
// blocks. A fresh engine per request keeps the call pure; the normalizer
// is the only construction cost.
func (s *Service) handleParseReceipt(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	var req parseReceiptRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	tag := req.Locale
	if tag == "" {
		tag = s.locale
	}

	engine := heuristics.NewEngine(locale.New(tag), s.logger)
	res := engine.ParseReceipt(req.Blocks)

	s.logger.Info("parse.ok",
		"request_id", requestIDFrom(r.Context()),
		"locale", tag,
		"blocks", len(req.Blocks),
		"items", len(res.Items),
		"confidence", res.Confidence,
		"needs_review", res.NeedsReview,
		"skip_llm", res.ShouldSkipLLM,
	)
	s.writeJSON(w, http.StatusOK, res)
}
