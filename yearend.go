package koinly

import (
	"log"
	"regexp"
	"strings"
)

var (
	yearEndTitleRe = regexp.MustCompile(`(?i)End of Year Balances`)

	// Two header generations are in the wild: the plain
	// "Asset Amount Price Value[ Cost]" layout and the localized
	// "Asset Quantity Cost (BRL) Value (BRL) Description" one.
	yearEndHeaderRe = regexp.MustCompile(`(?i)Asset\s+(?:Amount\s+Price\s+Value(?:\s+Cost)?|Quantity\s+Cost\s*\(BRL\)\s+Value\s*\(BRL\)\s+Description)`)

	yearEndTotalRe  = regexp.MustCompile(`(?im)^\s*Total\b`)
	nextSectionRe   = regexp.MustCompile(`(?i)Balances per Wallet|Transactions`)
	parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)`)
	priceSuffixRe   = regexp.MustCompile(`(?i)\s*@\s*R?\$?\s*[\d.,]+\s+per\s+\S+\s*$`)
	// the quantity group accepts a sign so corrupt negative lines are
	// rejected explicitly rather than falling through as unrecognized
	yearEndLineRe = regexp.MustCompile(`^(.+?)\s+(-?[\d.,]+)\s+(?:R\$\s*)?(-?\(?\d[\d.,]*\)?)\s+(?:R\$\s*)?(-?\(?\d[\d.,]*\)?)\s*(.*)$`)
)

// ParseYearEnd extracts the "End of Year Balances" section.
//
// The section is bounded by its title, one of the accepted header lines, and
// a closing "Total" line (falling back to the next known section, then end of
// document). Every line in between is matched against the record pattern;
// lines that don't match are logged and skipped, never fatal.
//
// When the section or any records cannot be found the built-in example
// dataset is substituted (flagged via UsedFallback) unless opts.NoFallback
// is set, in which case the result is simply empty.
func ParseYearEnd(text string, opts Options) (YearEndResult, error) {
	title := yearEndTitleRe.FindStringIndex(text)
	if title == nil {
		log.Printf("warning: 'End of Year Balances' section not found")
		return yearEndFallback(opts), nil
	}

	after := text[title[1]:]
	header := yearEndHeaderRe.FindStringIndex(after)
	if header == nil {
		log.Printf("warning: year-end column header not found after section title")
		return yearEndFallback(opts), nil
	}
	body := after[header[1]:]

	// Closing boundary: a "Total" line, else the next known section, else
	// the end of the document.
	end := len(body)
	if total := yearEndTotalRe.FindStringIndex(body); total != nil {
		end = total[0]
	} else if next := nextSectionRe.FindStringIndex(body); next != nil {
		end = next[0]
	}
	body = body[:end]

	records := make(map[string]YearEndRecord)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "total") || strings.HasPrefix(lower, "asset") {
			continue
		}

		m := yearEndLineRe.FindStringSubmatch(line)
		if m == nil {
			if len(line) > 5 && strings.ContainsFunc(line, isLetter) {
				log.Printf("skipping unrecognized year-end line: %q", line)
			}
			continue
		}

		asset := cleanAssetName(m[1])
		if asset == "" {
			continue
		}
		quantity := ParseDecimal(m[2])
		if quantity.IsNegative() {
			log.Printf("rejecting corrupt year-end line (negative quantity): %q", line)
			continue
		}
		cost := ParseMoney(m[3])
		value := ParseMoney(m[4])

		rec := YearEndRecord{
			Asset:       asset,
			Quantity:    quantity,
			Cost:        cost,
			Value:       value,
			Description: strings.TrimSpace(m[5]),
		}
		if !quantity.IsZero() {
			rec.Price = value.Div(quantity)
		}
		records[asset] = rec
	}

	if len(records) == 0 {
		log.Printf("warning: no year-end records recovered")
		return yearEndFallback(opts), nil
	}
	return YearEndResult{Records: records}, nil
}

func yearEndFallback(opts Options) YearEndResult {
	if opts.NoFallback {
		return YearEndResult{Records: map[string]YearEndRecord{}}
	}
	log.Printf("warning: substituting built-in example year-end dataset")
	return YearEndResult{Records: sampleYearEnd(), UsedFallback: true}
}

// cleanAssetName strips parenthetical annotations and "@ price per SYM"
// suffixes from an asset field.
func cleanAssetName(s string) string {
	s = priceSuffixRe.ReplaceAllString(s, "")
	s = parentheticalRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// baseSymbol returns the bare ticker of an asset field: the part before the
// first space or parenthesis.
func baseSymbol(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " ("); i > 0 {
		s = s[:i]
	}
	return s
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
