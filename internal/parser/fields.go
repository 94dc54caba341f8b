package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/faturalab/statement-scanner/internal/models"
)

// fieldSet holds the locale-compiled token patterns for one run.
type fieldSet struct {
	cfg      models.RunConfig
	datePat  *regexp.Regexp
	valuePat *regexp.Regexp
}

// Dates on Brazilian card statements: 05/03 or 05/03/2024. A two-digit
// year also appears on some issuers and is read as 20xx.
var datePattern = regexp.MustCompile(`\b(\d{2})/(\d{2})(?:/(\d{2}|\d{4}))?\b`)

func newFieldSet(cfg models.RunConfig) *fieldSet {
	return &fieldSet{
		cfg:      cfg,
		datePat:  datePattern,
		valuePat: valuePattern(cfg.Locale),
	}
}

// valuePattern compiles the currency token pattern for the locale:
// optional sign, optional thousands grouping, mandatory decimal
// separator with exactly two fractional digits. For BR: 12,34 | 1.234,56 | -10,00.
func valuePattern(loc models.Locale) *regexp.Regexp {
	thou := regexp.QuoteMeta(string(loc.ThousandsSep))
	dec := regexp.QuoteMeta(string(loc.DecimalSep))
	return regexp.MustCompile(`-?(?:\d{1,3}(?:` + thou + `\d{3})+|\d+)` + dec + `\d{2}\b`)
}

// extractFields parses one candidate line into its structured parts.
// Any failure means the line is not a transaction; the caller excludes
// it and counts it, nothing is ever defaulted.
func (fs *fieldSet) extractFields(rl models.RawLine) (date time.Time, description string, cents int64, err error) {
	dateLoc := fs.datePat.FindStringSubmatchIndex(rl.Text)
	if dateLoc == nil {
		return time.Time{}, "", 0, fmt.Errorf("%w: %q", models.ErrDateParse, rl.Text)
	}
	date, err = fs.resolveDate(rl.Text, dateLoc)
	if err != nil {
		return time.Time{}, "", 0, err
	}

	valueLocs := fs.valuePat.FindAllStringIndex(rl.Text, -1)
	if len(valueLocs) == 0 {
		return time.Time{}, "", 0, fmt.Errorf("%w: %q", models.ErrValueParse, rl.Text)
	}
	// The transaction value is conventionally the last amount on the line.
	valueLoc := valueLocs[len(valueLocs)-1]
	cents, err = parseCents(rl.Text[valueLoc[0]:valueLoc[1]], fs.cfg.Locale)
	if err != nil {
		return time.Time{}, "", 0, err
	}

	// Description is strictly between the date token and the value token.
	start, end := dateLoc[1], valueLoc[0]
	if start > end {
		start = end
	}
	description = collapseWhitespace(rl.Text[start:end])
	if description == "" {
		return time.Time{}, "", 0, fmt.Errorf("%w: %q", models.ErrEmptyDescription, rl.Text)
	}

	return date, description, cents, nil
}

// resolveDate turns the matched date token into a full calendar date.
// When the token carries no year, the statement's reference period
// supplies it; a month after the closing month belongs to the previous
// year (a January statement lists December purchases).
func (fs *fieldSet) resolveDate(line string, loc []int) (time.Time, error) {
	token := line[loc[0]:loc[1]]

	first, _ := strconv.Atoi(line[loc[2]:loc[3]])
	second, _ := strconv.Atoi(line[loc[4]:loc[5]])

	day, month := first, second
	if fs.cfg.Locale.DateOrder == "MDY" {
		day, month = second, first
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: %q", models.ErrDateParse, token)
	}

	year := fs.cfg.ReferenceYear
	if loc[6] >= 0 {
		year, _ = strconv.Atoi(line[loc[6]:loc[7]])
		if year < 100 {
			year += 2000
		}
	} else if time.Month(month) > fs.cfg.ReferenceMonth {
		year--
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range days (31/02 becomes 02/03);
	// a shifted result means the token was not a real calendar date.
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("%w: %q", models.ErrDateParse, token)
	}
	return d, nil
}

// parseCents converts a locale currency token to an exact integer cent
// count: "1.234,56" -> 123456. The token has already matched valuePattern,
// so it carries exactly two fractional digits.
func parseCents(token string, loc models.Locale) (int64, error) {
	s := strings.ReplaceAll(token, string(loc.ThousandsSep), "")
	s = strings.Replace(s, string(loc.DecimalSep), ".", 1)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", models.ErrValueParse, token)
	}
	return d.Shift(2).IntPart(), nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
