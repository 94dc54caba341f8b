package writer

import (
	"testing"
	"time"

	"github.com/faturalab/statement-scanner/internal/models"
)

func sampleResult() *models.ExtractionResult {
	return &models.ExtractionResult{
		Transactions: []models.Transaction{
			{
				Date:        time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
				Description: "UBER TRIP",
				ValueCents:  1500,
				Keyword:     "uber",
				Source:      models.RawLine{Page: 1, Line: 3, Text: "05/03 UBER TRIP 15,00"},
			},
			{
				Date:        time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC),
				Description: "99 CORRIDA",
				ValueCents:  1250,
				Keyword:     "99",
				Source:      models.RawLine{Page: 2, Line: 1, Text: "07/03 99 CORRIDA 12,50"},
			},
		},
		Subtotals:       map[models.Keyword]int64{"uber": 1500, "99": 1250},
		KeywordOrder:    []models.Keyword{"uber", "99"},
		GrandTotalCents: 2750,
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents    int64
		expected string
	}{
		{123456, "1234,56"},
		{-1000, "-10,00"},
		{1500, "15,00"},
		{1, "0,01"},
		{0, "0,00"},
		{-5, "-0,05"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := FormatCents(tt.cents, models.BRLocale())
			if got != tt.expected {
				t.Errorf("FormatCents(%d): got %q, want %q", tt.cents, got, tt.expected)
			}
		})
	}
}

func TestToTable(t *testing.T) {
	table := ToTable(sampleResult(), Options{Locale: models.BRLocale()})

	if len(table.Columns) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(table.Columns))
	}
	// 2 transactions + 2 subtotals + 1 grand total
	if len(table.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(table.Rows))
	}

	first := table.Rows[0]
	if first[0] != "2024-03-05" || first[1] != "UBER TRIP" || first[2] != "uber" || first[3] != "15,00" {
		t.Errorf("first row: %v", first)
	}

	// Subtotal rows come in registry order, then the grand total.
	if table.Rows[2][1] != "Subtotal" || table.Rows[2][2] != "uber" || table.Rows[2][3] != "15,00" {
		t.Errorf("uber subtotal row: %v", table.Rows[2])
	}
	if table.Rows[3][2] != "99" || table.Rows[3][3] != "12,50" {
		t.Errorf("99 subtotal row: %v", table.Rows[3])
	}
	last := table.Rows[4]
	if last[1] != "Total geral" || last[3] != "27,50" {
		t.Errorf("grand total row: %v", last)
	}
}

func TestToTableLocaleDates(t *testing.T) {
	table := ToTable(sampleResult(), Options{LocaleDates: true, Locale: models.BRLocale()})
	if table.Rows[0][0] != "05/03/2024" {
		t.Errorf("locale date: got %q, want %q", table.Rows[0][0], "05/03/2024")
	}
}
