package writer

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/faturalab/statement-scanner/internal/models"
)

func TestXLSXWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &XLSXWriter{Opts: Options{LocaleDates: true, Locale: models.BRLocale()}}
	if err := w.Write(&buf, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Lancamentos" || sheets[1] != "Resumo" {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	// Header row of the transactions sheet.
	if v, _ := f.GetCellValue("Lancamentos", "A1"); v != "App/Termo" {
		t.Errorf("A1: got %q", v)
	}
	if v, _ := f.GetCellValue("Lancamentos", "C2"); v != "UBER TRIP" {
		t.Errorf("C2: got %q", v)
	}
	if v, _ := f.GetCellValue("Lancamentos", "B2"); v != "05/03/2024" {
		t.Errorf("B2: got %q", v)
	}
	if v, _ := f.GetCellValue("Lancamentos", "E3"); v != "2" {
		t.Errorf("E3 (page): got %q", v)
	}

	// Summary sheet: keyword rows then TOTAL GERAL.
	if v, _ := f.GetCellValue("Resumo", "A2"); v != "uber" {
		t.Errorf("Resumo A2: got %q", v)
	}
	if v, _ := f.GetCellValue("Resumo", "A4"); v != "TOTAL GERAL" {
		t.Errorf("Resumo A4: got %q", v)
	}
}

func TestXLSXWriter_EmptyResult(t *testing.T) {
	res := &models.ExtractionResult{
		Subtotals:    map[models.Keyword]int64{"uber": 0},
		KeywordOrder: []models.Keyword{"uber"},
	}

	var buf bytes.Buffer
	w := &XLSXWriter{Opts: Options{Locale: models.BRLocale()}}
	if err := w.Write(&buf, res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	// Registered keywords show up in the summary even with no matches.
	if v, _ := f.GetCellValue("Resumo", "A2"); v != "uber" {
		t.Errorf("Resumo A2: got %q", v)
	}
}
