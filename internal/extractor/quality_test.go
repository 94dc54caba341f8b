package extractor

import (
	"strings"
	"testing"
)

func TestTextQuality(t *testing.T) {
	tests := []struct {
		name    string
		pages   []string
		minimum float64
		maximum float64
	}{
		{"clean statement text", []string{"05/03 UBER TRIP 15,00\nTotal da fatura 1.500,00"}, 0.95, 1.0},
		{"accented portuguese", []string{"Cartão de crédito - lançamentos do período"}, 0.9, 1.0},
		{"binary garbage", []string{"\x80\x81\x82�����"}, 0, 0.3},
		{"empty", nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := textQuality(tt.pages)
			if q < tt.minimum || q > tt.maximum {
				t.Errorf("quality %f outside [%f, %f]", q, tt.minimum, tt.maximum)
			}
		})
	}
}

func TestIsReadableText(t *testing.T) {
	statement := "FATURA DO CARTÃO\n05/03 UBER TRIP 15,00\nTotal da fatura 1.500,00\nVencimento 10/04"

	if !isReadableText([]string{statement}) {
		t.Error("real statement text rejected")
	}
	if isReadableText([]string{"short"}) {
		t.Error("too-short text accepted")
	}

	// Readable characters but no recognizable statement vocabulary.
	noise := strings.Repeat("xyzzy plugh qwerty ", 10)
	if isReadableText([]string{noise}) {
		t.Error("vocabulary-free text accepted")
	}
}
