package koinly

import (
	"log"
	"strings"
)

// AttributeCosts assigns a cost basis to every holding of the report.
//
// Priority per holding:
//  1. the cost reported directly by the document (Cost column wallets);
//  2. the asset's year-end cost, prorated by the holding's share of the
//     asset's year-end value;
//  3. the portfolio-wide cost, prorated by the holding's share of the whole
//     portfolio's year-end value (assets missing from the year-end table);
//  4. nothing: AttributedCost stays nil and the exporter prints an explicit
//     placeholder. A fabricated zero would misreport an unknown cost as a
//     zero-cost asset.
func AttributeCosts(r *Report) {
	overallValue, overallCost := BRL(0), BRL(0)
	for _, rec := range r.YearEnd.Records {
		overallValue = overallValue.Add(rec.Value)
		overallCost = overallCost.Add(rec.Cost)
	}

	for _, g := range r.Wallets {
		for _, h := range g.Holdings {
			if g.HasCostColumn && h.ReportedCost != nil {
				h.AttributedCost = h.ReportedCost
				continue
			}

			if rec, ok := matchYearEnd(r.YearEnd.Records, h.Asset); ok && rec.Value.IsPositive() {
				cost := rec.Cost.Prorate(h.Value, rec.Value)
				h.AttributedCost = &cost
				continue
			}

			// Asset absent from the year-end table (or with non-positive
			// value there): fall back to the wallet's share of the overall
			// portfolio. Observed behavior of the source documents' tooling;
			// it can disagree with per-asset accounting.
			if overallValue.IsPositive() {
				cost := overallCost.Prorate(h.Value, overallValue)
				h.AttributedCost = &cost
				continue
			}

			log.Printf("warning: no cost basis for %s in %q, needs manual verification", h.Asset, g.DisplayName)
		}
	}
}

// matchYearEnd finds the year-end record for an asset field from a wallet
// row. The two sections do not always spell assets the same way, so the
// lookup is a ladder: exact (case-insensitive), then bare symbol against
// bare symbol, then the "@ ... per SYM" hint in the record description.
func matchYearEnd(records map[string]YearEndRecord, asset string) (YearEndRecord, bool) {
	lower := strings.ToLower(asset)
	for key, rec := range records {
		if strings.ToLower(key) == lower {
			return rec, true
		}
	}

	symbol := strings.ToLower(baseSymbol(asset))
	for key, rec := range records {
		if strings.ToLower(baseSymbol(key)) == symbol {
			return rec, true
		}
	}

	suffix := " per " + lower
	for _, rec := range records {
		if strings.HasSuffix(strings.ToLower(strings.TrimSpace(rec.Description)), suffix) {
			return rec, true
		}
	}
	return YearEndRecord{}, false
}
