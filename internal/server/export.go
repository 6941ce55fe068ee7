package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chamchi6619/pantry-core/internal/heuristics"
	"github.com/chamchi6619/pantry-core/internal/locale"
)

// handleExportReceipt parses a block stream and returns the result as an
// XLSX workbook instead of JSON. Same input contract as the parse
// endpoint.
func (s *Service) handleExportReceipt(w http.ResponseWriter, r *http.Request) {
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

	out, err := s.exporter.ReceiptXLSX(res)
	if err != nil {
		s.logger.Error("export failed", "request_id", requestIDFrom(r.Context()), "error", err)
		s.writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	name := fmt.Sprintf("receipt-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		s.logger.Error("export write failed", "request_id", requestIDFrom(r.Context()), "error", err)
	}
}
