package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"pricewatch-engine/internal/domain"
)

func TestWriteModelsXLSX(t *testing.T) {
	models := []domain.ProcessedModel{
		{ID: "openai/gpt-4o", Name: "GPT-4o", Provider: "Openai", InputPrice: 2.5, OutputPrice: 10, ContextWindow: 128000, Modality: "text+image->text"},
		{ID: "mistralai/mistral-7b", Name: "Mistral 7B", Provider: "Mistralai", InputPrice: 0, OutputPrice: 0, ContextWindow: 32768, Modality: "text->text"},
	}

	var buf bytes.Buffer
	if err := WriteModelsXLSX(models, &buf); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows=%d want 3", len(rows))
	}
	if rows[0][0] != "id" || rows[0][3] != "input_price_per_1m" {
		t.Fatalf("header: %v", rows[0])
	}
	if rows[1][0] != "openai/gpt-4o" || rows[2][1] != "Mistral 7B" {
		t.Fatalf("data: %v / %v", rows[1], rows[2])
	}
}

func TestWriteConsultationsXLSX(t *testing.T) {
	b := 48_000_000.0
	items := []domain.Consultation{
		{Reference: "AO-001", Title: "Panneaux solaires", Organisme: "Ministère", Budget: &b, Deadline: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Status: domain.StatusNouveau, Category: "Travaux", Tags: []string{"Énergie", "Infrastructure"}},
		{Reference: "AO-003", Title: "Maintenance", Organisme: "CHU", Budget: nil, Deadline: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Status: domain.StatusEnCours, Category: "Services"},
	}

	var buf bytes.Buffer
	if err := WriteConsultationsXLSX(items, &buf); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows=%d want 3", len(rows))
	}
	if rows[1][4] != "48M DH" {
		t.Fatalf("budget_label: %q", rows[1][4])
	}
	// Unknown budget: empty cell, labelled "Budget à confirmer".
	if len(rows[2]) > 3 && rows[2][3] != "" {
		t.Fatalf("nil budget cell: %q", rows[2][3])
	}
	if rows[2][4] != "Budget à confirmer" {
		t.Fatalf("nil budget label: %q", rows[2][4])
	}
	if rows[1][9] != "Énergie, Infrastructure" {
		t.Fatalf("tags: %q", rows[1][9])
	}
}
