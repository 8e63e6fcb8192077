package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/iho/txengine/internal/domain"
)

// Writer writes account reports as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// Write emits the header followed by one row per report and flushes.
func (w *Writer) Write(ctx context.Context, reports []domain.AccountReport) error {
	if err := w.csv.Write(domain.ReportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, report := range reports {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.csv.Write(report.Record()); err != nil {
			return fmt.Errorf("write client %d: %w", report.Client, err)
		}
	}

	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}
