// Package export produces XLSX workbooks from parsed receipts.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/chamchi6619/pantry-core/internal/entity"
)

// Service turns a HeuristicsResult into XLSX bytes.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ReceiptXLSX returns a workbook with a summary sheet plus one row per
// line item and per discount.
func (s *Service) ReceiptXLSX(res entity.HeuristicsResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Receipt"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	summary := [][2]any{
		{"Merchant", res.Merchant},
		{"Date", res.Date},
		{"Currency", res.CurrencyCode},
		{"Subtotal", moneyOrEmpty(res.Subtotal)},
		{"Tax", moneyOrEmpty(res.Tax)},
		{"Tip", moneyOrEmpty(res.Tip)},
		{"Total", moneyOrEmpty(res.Total)},
		{"Reconciled", res.Reconciliation.Ok},
		{"Confidence", res.Confidence},
		{"Needs Review", res.NeedsReview},
	}
	for i, kv := range summary {
		write(1, i+1, kv[0])
		write(2, i+1, kv[1])
	}

	row := len(summary) + 2
	headers := []string{"Item", "Qty", "Unit", "Unit Price", "Line Total"}
	for i, h := range headers {
		write(i+1, row, h)
	}
	row++
	for _, it := range res.Items {
		write(1, row, it.RawName)
		write(2, row, it.Qty)
		write(3, row, it.Unit)
		write(4, row, moneyOrEmpty(it.PriceEach))
		write(5, row, fmt.Sprintf("%.2f", it.PriceTotal))
		row++
	}
	for _, d := range res.Discounts {
		write(1, row, d.RawText)
		write(3, row, string(d.Kind))
		write(5, row, fmt.Sprintf("-%.2f", d.Amount))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "B", "C", 10)
	_ = f.SetColWidth(sheet, "D", "E", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"items", len(res.Items),
		"discounts", len(res.Discounts),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func moneyOrEmpty(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *p)
}
