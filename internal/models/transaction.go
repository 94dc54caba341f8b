package models

import "time"

// Keyword is a registered search term in normalized form
// (lower-cased, accents stripped). Registry insertion order
// is the display and report order.
type Keyword string

// RawLine is one logical statement line after continuation
// merging, with its source position for traceability.
type RawLine struct {
	Page int    `json:"page"` // 1-based
	Line int    `json:"line"` // 1-based within the page
	Text string `json:"text"`
}

// Transaction represents a single classified statement line item.
// Value is an integer count of minor currency units (cents) so that
// decimal currency text never passes through binary floating point.
type Transaction struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	ValueCents  int64     `json:"valueCents"`
	Keyword     Keyword   `json:"keyword"`
	Source      RawLine   `json:"source"`
}

// ExtractionResult is the outcome of one extraction run.
// Invariant: GrandTotalCents == sum of Subtotals == sum of transaction values.
type ExtractionResult struct {
	Transactions []Transaction     `json:"transactions"`
	Subtotals    map[Keyword]int64 `json:"subtotals"`
	// KeywordOrder lists the run's keyword snapshot in registry order,
	// so report rows come out stable regardless of map iteration.
	KeywordOrder    []Keyword `json:"keywordOrder"`
	GrandTotalCents int64     `json:"grandTotalCents"`
}

// Diagnostics counts lines an extraction run excluded.
type Diagnostics struct {
	// DiscardedLines failed date/value/description parsing.
	DiscardedLines int `json:"discardedLines"`
	// UnmatchedLines parsed cleanly but matched no registered keyword.
	UnmatchedLines int `json:"unmatchedLines"`
}

// Locale describes the statement's number and date conventions.
type Locale struct {
	DecimalSep   rune   `json:"decimalSep"`
	ThousandsSep rune   `json:"thousandsSep"`
	DateOrder    string `json:"dateOrder"` // "DMY" or "MDY"
}

// RunConfig is the per-run extraction configuration. The reference
// period is the statement's closing month/year and supplies the year
// for dates given only as day/month.
type RunConfig struct {
	ReferenceYear  int        `json:"referenceYear"`
	ReferenceMonth time.Month `json:"referenceMonth"`
	Locale         Locale     `json:"locale"`
}

// BRLocale is the Brazilian credit-card statement convention:
// comma decimals, dot thousands, day-first dates.
func BRLocale() Locale {
	return Locale{DecimalSep: ',', ThousandsSep: '.', DateOrder: "DMY"}
}
