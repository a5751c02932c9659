package koinly

import (
	"path/filepath"
	"strings"
)

// CustodyKind classifies where a wallet group's assets are held.
type CustodyKind int

const (
	Unknown CustodyKind = iota
	Exchange
	WalletBrand
	Network
)

func (k CustodyKind) String() string {
	switch k {
	case Exchange:
		return "exchange"
	case WalletBrand:
		return "wallet"
	case Network:
		return "network"
	default:
		return "unknown"
	}
}

// YearEndRecord is the per-asset aggregate snapshot at the close of the
// reporting period, read from the "End of Year Balances" section.
type YearEndRecord struct {
	Asset       string
	Quantity    Quantity
	Price       Money
	Value       Money
	Cost        Money
	Description string
}

// YearEndResult carries the parsed year-end records and whether the built-in
// example dataset was substituted because the section could not be parsed.
// Callers must be able to tell real data from placeholder data.
type YearEndResult struct {
	Records      map[string]YearEndRecord
	UsedFallback bool
}

// AssetHolding is one asset line inside a wallet group.
type AssetHolding struct {
	Asset     string
	Amount    Quantity
	AmountRaw string // the token as printed in the report
	Price     *Money // nil when the line carried no unit price
	Value     Money

	// ReportedCost is the per-asset cost read from a Cost column
	// (new-format documents only).
	ReportedCost *Money

	// AttributedCost is filled by AttributeCosts. nil means no cost basis
	// could be derived; the exporter renders a placeholder, never zero.
	AttributedCost *Money

	// Disclosure is filled by GenerateDisclosures.
	Disclosure string
}

// Symbol returns the bare ticker, without parenthetical annotations.
// "BTC (Bitcoin)" -> "BTC".
func (h *AssetHolding) Symbol() string {
	return baseSymbol(h.Asset)
}

// WalletGroup is one custody location and its holdings.
type WalletGroup struct {
	RawTitle    string
	DisplayName string
	Kind        CustodyKind
	Custodian   string // exchange or wallet brand name, empty otherwise
	NetworkName string // blockchain name, empty when not identified
	Address     string

	// HasCostColumn records whether this wallet's header exposed a per-asset
	// Cost column (new document format).
	HasCostColumn bool

	// ReportedTotalCost is the wallet-level "Total cost at <date>" line,
	// when present.
	ReportedTotalCost *Money

	Holdings []*AssetHolding
}

// TotalValue is the sum of the holdings' values.
func (g *WalletGroup) TotalValue() Money {
	total := BRL(0)
	for _, h := range g.Holdings {
		total = total.Add(h.Value)
	}
	return total
}

// Report is the fully parsed document, ready for export.
type Report struct {
	Name string // input file stem, used for output naming and year fallback
	Year int

	YearEnd         YearEndResult
	Wallets         []*WalletGroup
	WalletsFallback bool
}

// Options tunes document processing.
type Options struct {
	// NoFallback disables the built-in example datasets: a document whose
	// sections cannot be parsed becomes an error instead.
	NoFallback bool

	// Year forces the reporting year. Zero derives it from the document.
	Year int
}

// ProcessText runs the full pipeline over the extracted text of one report:
// year derivation, both section parsers, cost attribution and disclosure
// generation. name is the input file name (or stem), used as a year source
// of last resort.
func ProcessText(name, text string, opts Options) (*Report, error) {
	r := &Report{Name: stem(name)}

	r.Year = opts.Year
	if r.Year == 0 {
		r.Year = deriveYear(text, name)
	}

	yearEnd, err := ParseYearEnd(text, opts)
	if err != nil {
		return nil, err
	}
	r.YearEnd = yearEnd

	wallets, usedFallback, err := ParseWallets(text, opts)
	if err != nil {
		return nil, err
	}
	r.Wallets = wallets
	r.WalletsFallback = usedFallback

	AttributeCosts(r)
	GenerateDisclosures(r)
	return r, nil
}

// stem strips directory and extension from an input file name.
func stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
