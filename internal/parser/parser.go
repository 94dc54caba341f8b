// Package parser implements the extraction engine: it turns raw
// per-page statement text into a validated list of keyword-classified
// transactions with exact integer-cent totals.
package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/faturalab/statement-scanner/internal/models"
)

// Parser runs extractions against one keyword snapshot and one run
// configuration. A run is single-threaded and shares no mutable state
// with other runs; build a new Parser per run.
type Parser struct {
	cfg     models.RunConfig
	fields  *fieldSet
	matcher *keywordMatcher
}

// New builds a Parser for the given run configuration and keyword
// snapshot (normalized, in registry order, as Registry.List returns).
func New(cfg models.RunConfig, keys []models.Keyword) *Parser {
	return &Parser{
		cfg:     cfg,
		fields:  newFieldSet(cfg),
		matcher: newKeywordMatcher(keys),
	}
}

// Parse extracts classified transactions from the ordered page texts.
//
// Per-line parse failures and non-matching lines are recovered locally
// and only counted in Diagnostics. A nil result is returned exactly for
// run-fatal conditions: an exceeded deadline or an empty document,
// never a partial table, which would misstate the grand total.
func (p *Parser) Parse(ctx context.Context, pages []string) (*models.ExtractionResult, models.Diagnostics, error) {
	var diag models.Diagnostics

	if err := ctx.Err(); err != nil {
		return nil, diag, fmt.Errorf("%w: %v", models.ErrExtractionTimeout, err)
	}
	if !hasText(pages) {
		return nil, diag, models.ErrEmptyDocument
	}

	var txns []models.Transaction
	for _, rl := range p.segment(pages) {
		date, description, cents, err := p.fields.extractFields(rl)
		if err != nil {
			diag.DiscardedLines++
			continue
		}

		kw, ok := p.matcher.match(description)
		if !ok {
			diag.UnmatchedLines++
			continue
		}

		txns = append(txns, models.Transaction{
			Date:        date,
			Description: description,
			ValueCents:  cents,
			Keyword:     kw,
			Source:      rl,
		})
	}

	return aggregate(txns, p.matcher.keys), diag, nil
}

func hasText(pages []string) bool {
	for _, page := range pages {
		if strings.TrimSpace(page) != "" {
			return true
		}
	}
	return false
}
