package parser

import (
	"testing"

	"github.com/faturalab/statement-scanner/internal/models"
)

func TestSegmentContinuation(t *testing.T) {
	p := New(testConfig(), nil)

	page := "05/03 UBER TRIP 15,00\n" +
		"VIAGEM CENTRO SP\n" +
		"06/03 SUPERMERCADO 200,00"

	lines := p.segment([]string{page})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}

	// The continuation splices in before the value token so the
	// description keeps it.
	if lines[0].Text != "05/03 UBER TRIP VIAGEM CENTRO SP 15,00" {
		t.Errorf("merged head: got %q", lines[0].Text)
	}
	if lines[0].Page != 1 || lines[0].Line != 1 {
		t.Errorf("head position: got page %d line %d", lines[0].Page, lines[0].Line)
	}
	if lines[1].Text != "06/03 SUPERMERCADO 200,00" {
		t.Errorf("second head: got %q", lines[1].Text)
	}
}

func TestSegmentContinuationReachesDescription(t *testing.T) {
	p := New(testConfig(), []models.Keyword{"centro"})

	page := "05/03 UBER TRIP 15,00\nVIAGEM CENTRO SP"
	res, _, err := p.Parse(t.Context(), []string{page})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(res.Transactions))
	}
	if res.Transactions[0].Description != "UBER TRIP VIAGEM CENTRO SP" {
		t.Errorf("description: got %q", res.Transactions[0].Description)
	}
}

func TestSegmentDropsBoilerplate(t *testing.T) {
	p := New(testConfig(), nil)

	page := "RESUMO DA FATURA\n" +
		"Data Descricao Valor\n" +
		"05/03 UBER TRIP 15,00\n" +
		"TOTAL DA FATURA 1.500,00\n" +
		"Limite de crédito 5.000,00"

	lines := p.segment([]string{page})
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %v", len(lines), lines)
	}
	if lines[0].Text != "05/03 UBER TRIP 15,00" {
		t.Errorf("got %q", lines[0].Text)
	}
}

func TestSegmentKeepsAmbiguousLines(t *testing.T) {
	p := New(testConfig(), nil)

	// No date token, so not a head, but not provably boilerplate
	// either. It stays a candidate for field extraction to reject.
	lines := p.segment([]string{"ANUIDADE DIFERENCIADA 25,00"})
	if len(lines) != 1 {
		t.Fatalf("expected ambiguous line kept, got %d lines", len(lines))
	}
}

func TestSegmentPageNumbering(t *testing.T) {
	p := New(testConfig(), nil)

	lines := p.segment([]string{
		"05/03 UBER TRIP 15,00",
		"07/03 99 CORRIDA 12,50",
	})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Page != 1 || lines[1].Page != 2 {
		t.Errorf("pages: got %d and %d, want 1 and 2", lines[0].Page, lines[1].Page)
	}
}
