package export

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"pricewatch-engine/internal/domain"
	"pricewatch-engine/internal/view"
)

// WriteModelsXLSX writes the currently visible model list, one row per
// model, prices already per 1M tokens.
func WriteModelsXLSX(models []domain.ProcessedModel, w io.Writer) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"id", "name", "provider",
		"input_price_per_1m", "output_price_per_1m",
		"context_window", "modality",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, m := range models {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, m.ID)
		set(2, m.Name)
		set(3, m.Provider)
		set(4, m.InputPrice)
		set(5, m.OutputPrice)
		set(6, m.ContextWindow)
		set(7, m.Modality)
	}

	return f.Write(w)
}

// WriteConsultationsXLSX writes the currently visible consultations.
// Unknown budgets stay empty cells, not zeros.
func WriteConsultationsXLSX(items []domain.Consultation, w io.Writer) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"reference", "title", "organisme",
		"budget", "budget_label", "magnitude",
		"deadline", "status", "category", "tags",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, c := range items {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, c.Reference)
		set(2, c.Title)
		set(3, c.Organisme)
		set(4, derefBudget(c.Budget))
		set(5, view.FormatBudget(c.Budget))
		set(6, string(view.BudgetMagnitude(c.Budget)))
		set(7, c.Deadline.Format(time.RFC3339))
		set(8, domain.StatusLabel(c.Status))
		set(9, c.Category)
		set(10, joinTags(c.Tags))
	}

	return f.Write(w)
}

// SaveTo writes via write into dir/name, creating dir as needed.
func SaveTo(dir, name string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := write(out); err != nil {
		_ = out.Close()
		return "", err
	}
	return path, out.Close()
}

func derefBudget(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func joinTags(tags []string) string {
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}
