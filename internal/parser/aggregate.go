package parser

import (
	"sort"

	"github.com/faturalab/statement-scanner/internal/models"
)

// aggregate walks the matched transactions once, in encounter order,
// accumulating per-keyword subtotals and the grand total in integer
// cents. Every keyword in the run snapshot gets a subtotal entry, zero
// included, so reports always show all registered terms.
func aggregate(txns []models.Transaction, keys []models.Keyword) *models.ExtractionResult {
	subtotals := make(map[models.Keyword]int64, len(keys))
	order := make([]models.Keyword, len(keys))
	for i, k := range keys {
		subtotals[k] = 0
		order[i] = k
	}

	var grand int64
	for _, t := range txns {
		subtotals[t.Keyword] += t.ValueCents
		grand += t.ValueCents
	}

	return &models.ExtractionResult{
		Transactions:    txns,
		Subtotals:       subtotals,
		KeywordOrder:    order,
		GrandTotalCents: grand,
	}
}

// SortByDate returns a copy of txns in ascending date order, original
// statement order preserved within equal dates. Pure post-processing;
// result order from a run is always statement encounter order.
func SortByDate(txns []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txns))
	copy(out, txns)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
