// Package writer renders extraction results into tabular output
// formats. ToTable is the pure core; the CSV and XLSX writers serialize
// its rows without re-rounding anything.
package writer

import (
	"fmt"
	"time"

	"github.com/faturalab/statement-scanner/internal/models"
)

// Options controls row formatting. The zero value emits ISO 8601 dates
// and needs a Locale only for the value separator.
type Options struct {
	// LocaleDates switches the date column from ISO 8601 to the
	// locale's day-first (or month-first) slash format.
	LocaleDates bool
	Locale      models.Locale
}

// Table is a flat row set: fixed columns, one row per transaction,
// then one summary row per keyword subtotal and a grand-total row.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Labels used in the summary rows.
const (
	subtotalLabel   = "Subtotal"
	grandTotalLabel = "Total geral"
)

// ToTable renders the result as a flat row set. Pure: no I/O, no
// mutation of the result. Column order and presence are fixed:
// date, description, keyword, value.
func ToTable(res *models.ExtractionResult, opts Options) Table {
	t := Table{
		Columns: []string{"Data", "Descrição", "Termo", "Valor"},
		Rows:    make([][]string, 0, len(res.Transactions)+len(res.KeywordOrder)+1),
	}

	for _, txn := range res.Transactions {
		t.Rows = append(t.Rows, []string{
			formatDate(txn.Date, opts),
			txn.Description,
			string(txn.Keyword),
			FormatCents(txn.ValueCents, opts.Locale),
		})
	}

	for _, kw := range res.KeywordOrder {
		t.Rows = append(t.Rows, []string{
			"", subtotalLabel, string(kw),
			FormatCents(res.Subtotals[kw], opts.Locale),
		})
	}

	t.Rows = append(t.Rows, []string{
		"", grandTotalLabel, "",
		FormatCents(res.GrandTotalCents, opts.Locale),
	})

	return t
}

// FormatCents renders an integer cent count as a decimal string with
// exactly two fractional digits and the locale's decimal separator:
// 123456 -> "1234,56", -1000 -> "-10,00".
func FormatCents(cents int64, loc models.Locale) string {
	sep := loc.DecimalSep
	if sep == 0 {
		sep = '.'
	}
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d%c%02d", sign, cents/100, sep, cents%100)
}

func formatDate(d time.Time, opts Options) string {
	if !opts.LocaleDates {
		return d.Format("2006-01-02")
	}
	if opts.Locale.DateOrder == "MDY" {
		return d.Format("01/02/2006")
	}
	return d.Format("02/01/2006")
}
