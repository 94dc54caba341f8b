package extractor

import (
	"strings"
	"unicode"
)

// commonWords appear in virtually all Brazilian card statements,
// accent-stripped. Extracted text containing none of them is treated
// as garbage from a broken font encoding.
var commonWords = []string{
	"fatura", "cartao", "total", "vencimento", "pagamento", "lancamento",
	"limite", "data", "valor", "compra", "parcela", "saldo", "credito",
	"titular", "pagina",
}

// readableLetters beyond ASCII that legitimate pt-BR statement text
// uses. Kept as an explicit set: accepting all of unicode.IsLetter
// would also pass the mojibake that identity-encoded fonts produce.
const readableAccents = "áàâãéêíóôõúüçÁÀÂÃÉÊÍÓÔÕÚÜÇ"

// textQuality returns the ratio of plausible statement characters to
// total characters, 0.0-1.0.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				strings.ContainsRune(".,-/:;()'\"$%&@#!?+=*\t", r) ||
				strings.ContainsRune(readableAccents, r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func containsCommonWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	// Cheap accent strip for the comparison: the word list is already bare.
	replacer := strings.NewReplacer(
		"á", "a", "à", "a", "â", "a", "ã", "a",
		"é", "e", "ê", "e", "í", "i",
		"ó", "o", "ô", "o", "õ", "o",
		"ú", "u", "ü", "u", "ç", "c",
	)
	combined = replacer.Replace(combined)
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// isReadableText gates every extraction method's output: enough text,
// mostly readable characters, and at least one recognizable statement
// word.
func isReadableText(pages []string) bool {
	if totalTextLen(pages) <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsCommonWords(pages)
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
