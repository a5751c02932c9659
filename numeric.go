package koinly

import (
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal normalizes a textual number token into an exact decimal value.
//
// Tokens come straight out of extracted PDF text, so the format is anything
// but uniform: "R$1.234,56", "1,234.56", "(200,00)", "0.50000000", "$40".
// Disambiguation rule: when both '.' and ',' appear, whichever appears last
// is the decimal separator. A lone ',' is a decimal separator. Parentheses
// denote a negative value. Empty or separator-only tokens are zero.
//
// A malformed token is normalized to zero with a warning, never an error:
// a single bad cell must not abort a whole section.
func ParseDecimal(token string) Quantity {
	cleaned, ok := normalizeNumber(token)
	if !ok {
		return Q(0)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		log.Printf("warning: unreadable numeric token %q, using 0", token)
		return Q(0)
	}
	return Q(d)
}

// ParseMoney is ParseDecimal for BRL amounts.
func ParseMoney(token string) Money {
	return BRL(ParseDecimal(token).Decimal())
}

// normalizeNumber reduces token to the canonical "-1234.56" form.
// The boolean is false when the token reduces to nothing, which callers
// treat as zero.
func normalizeNumber(token string) (string, bool) {
	s := strings.TrimSpace(token)
	if s == "" {
		return "", false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		negative = true
	}

	// Resolve the decimal separator: last of '.' and ',' wins, a lone ','
	// is decimal, a lone '.' keeps its usual meaning.
	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')
	sep := byte('.')
	if lastComma > lastDot {
		sep = ','
	}

	var b strings.Builder
	seenSep := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == sep && !seenSep && i == max(lastDot, lastComma):
			// only the final occurrence of the resolved separator counts
			b.WriteByte('.')
			seenSep = true
		}
		// currency glyphs, signs, grouping separators and stray characters
		// are dropped
	}

	cleaned := b.String()
	if cleaned == "" || cleaned == "." {
		return "", false
	}
	if negative {
		cleaned = "-" + cleaned
	}
	return cleaned, true
}
