package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/faturalab/statement-scanner/internal/models"
)

const (
	sheetTransactions = "Lancamentos"
	sheetSummary      = "Resumo"

	// BRL accounting format, negatives in red.
	brlNumFmt = `"R$" #,##0.00;[Red]-"R$" #,##0.00`

	maxColWidth = 60
)

// XLSXWriter renders an ExtractionResult as a two-sheet workbook:
// Lancamentos with one row per transaction, Resumo with per-keyword
// totals and the grand total.
type XLSXWriter struct {
	Opts Options
}

// WriteToFile writes the workbook to the given path.
func (w *XLSXWriter) WriteToFile(path string, res *models.ExtractionResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, res)
}

// Write writes the workbook to the given writer.
func (w *XLSXWriter) Write(out io.Writer, res *models.ExtractionResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetTransactions); err != nil {
		return fmt.Errorf("failed to name transactions sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"EEEEEE"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to build header style: %w", err)
	}

	numFmt := brlNumFmt
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("failed to build money style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to build bold style: %w", err)
	}
	boldMoneyStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return fmt.Errorf("failed to build bold money style: %w", err)
	}

	if err := w.writeTransactions(f, res, headerStyle, moneyStyle); err != nil {
		return err
	}
	if err := w.writeSummary(f, res, headerStyle, moneyStyle, boldStyle, boldMoneyStyle); err != nil {
		return err
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) writeTransactions(f *excelize.File, res *models.ExtractionResult, headerStyle, moneyStyle int) error {
	headers := []string{"App/Termo", "Data", "Descrição", "Valor (R$)", "Página"}
	widths := make([]int, len(headers))

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetTransactions, cell, h); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
		widths[col] = len(h)
	}
	if err := f.SetCellStyle(sheetTransactions, "A1", "E1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	for i, txn := range res.Transactions {
		row := i + 2
		values := []any{
			string(txn.Keyword),
			formatDate(txn.Date, w.Opts),
			txn.Description,
			// Cents stay exact up to the display format applied below.
			float64(txn.ValueCents) / 100,
			txn.Source.Page,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetTransactions, cell, v); err != nil {
				return fmt.Errorf("failed to write transaction cell: %w", err)
			}
			if n := len(fmt.Sprint(v)); n > widths[col] {
				widths[col] = n
			}
		}

		valueCell, _ := excelize.CoordinatesToCellName(4, row)
		if err := f.SetCellStyle(sheetTransactions, valueCell, valueCell, moneyStyle); err != nil {
			return fmt.Errorf("failed to style value cell: %w", err)
		}
	}

	return autosizeColumns(f, sheetTransactions, widths)
}

func (w *XLSXWriter) writeSummary(f *excelize.File, res *models.ExtractionResult, headerStyle, moneyStyle, boldStyle, boldMoneyStyle int) error {
	widths := []int{len("Termo"), len("Total (R$)")}

	if err := f.SetCellValue(sheetSummary, "A1", "Termo"); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	if err := f.SetCellValue(sheetSummary, "B1", "Total (R$)"); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("failed to style summary header: %w", err)
	}

	row := 2
	for _, kw := range res.KeywordOrder {
		termCell, _ := excelize.CoordinatesToCellName(1, row)
		totalCell, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(sheetSummary, termCell, string(kw)); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
		if err := f.SetCellValue(sheetSummary, totalCell, float64(res.Subtotals[kw])/100); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
		if err := f.SetCellStyle(sheetSummary, totalCell, totalCell, moneyStyle); err != nil {
			return fmt.Errorf("failed to style summary row: %w", err)
		}
		if len(kw) > widths[0] {
			widths[0] = len(kw)
		}
		row++
	}

	termCell, _ := excelize.CoordinatesToCellName(1, row)
	totalCell, _ := excelize.CoordinatesToCellName(2, row)
	if err := f.SetCellValue(sheetSummary, termCell, "TOTAL GERAL"); err != nil {
		return fmt.Errorf("failed to write grand total: %w", err)
	}
	if err := f.SetCellValue(sheetSummary, totalCell, float64(res.GrandTotalCents)/100); err != nil {
		return fmt.Errorf("failed to write grand total: %w", err)
	}
	if err := f.SetCellStyle(sheetSummary, termCell, termCell, boldStyle); err != nil {
		return fmt.Errorf("failed to style grand total: %w", err)
	}
	if err := f.SetCellStyle(sheetSummary, totalCell, totalCell, boldMoneyStyle); err != nil {
		return fmt.Errorf("failed to style grand total: %w", err)
	}

	return autosizeColumns(f, sheetSummary, widths)
}

func autosizeColumns(f *excelize.File, sheet string, widths []int) error {
	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve column name: %w", err)
		}
		width := float64(w + 2)
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}
	return nil
}
