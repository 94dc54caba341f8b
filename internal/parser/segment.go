package parser

import (
	"strings"

	"github.com/faturalab/statement-scanner/internal/keywords"
	"github.com/faturalab/statement-scanner/internal/models"
)

// boilerplateMarkers identify statement furniture that is never a
// transaction: section headers, page totals, card metadata. The list is
// fixed (not the user registry) and deliberately conservative: an
// ambiguous line is kept and left to field extraction to reject.
// Compared against the accent-stripped, lower-cased line.
var boilerplateMarkers = []string{
	"resumo da fatura",
	"total da fatura",
	"total desta fatura",
	"saldo anterior",
	"saldo da fatura anterior",
	"limite de credito",
	"limite total",
	"data de vencimento",
	"vencimento da fatura",
	"pagamento minimo",
	"demonstrativo",
	"lancamentos no cartao",
	"data descricao valor",
	"pagina ",
	"central de atendimento",
	"sac ",
}

func isBoilerplate(line string) bool {
	normalized := keywords.Normalize(line)
	for _, marker := range boilerplateMarkers {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}

// segment turns raw page text into candidate transaction lines.
//
// A line is a transaction head when it carries a value token preceded
// by a date token. A non-empty line immediately following a head that
// carries neither token is a wrapped continuation and is folded into
// the head's text with a single space. Everything else non-empty and
// non-boilerplate stays a candidate on its own; field extraction will
// discard what does not parse.
func (p *Parser) segment(pages []string) []models.RawLine {
	var out []models.RawLine

	for pageIdx, page := range pages {
		lastWasHead := false

		for lineIdx, raw := range strings.Split(page, "\n") {
			line := collapseWhitespace(raw)
			if line == "" {
				lastWasHead = false
				continue
			}
			if isBoilerplate(line) {
				lastWasHead = false
				continue
			}

			dateLoc := p.fields.datePat.FindStringIndex(line)
			valueLoc := lastValueIndex(p.fields, line)
			isHead := dateLoc != nil && valueLoc != nil && dateLoc[0] < valueLoc[0]

			if isHead {
				out = append(out, models.RawLine{
					Page: pageIdx + 1,
					Line: lineIdx + 1,
					Text: line,
				})
				lastWasHead = true
				continue
			}

			if lastWasHead && dateLoc == nil && valueLoc == nil {
				// Wrapped continuation of the previous head. Spliced in
				// ahead of the head's value token so it lands in the
				// description, which reads strictly up to that token.
				head := &out[len(out)-1]
				if vl := lastValueIndex(p.fields, head.Text); vl != nil {
					head.Text = head.Text[:vl[0]] + line + " " + head.Text[vl[0]:]
				} else {
					head.Text += " " + line
				}
				continue
			}

			out = append(out, models.RawLine{
				Page: pageIdx + 1,
				Line: lineIdx + 1,
				Text: line,
			})
			lastWasHead = false
		}
	}

	return out
}

func lastValueIndex(fs *fieldSet, line string) []int {
	locs := fs.valuePat.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return nil
	}
	return locs[len(locs)-1]
}
