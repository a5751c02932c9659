// Package renderer turns parsed reports into markdown, for terminal preview.
package renderer

import (
	"fmt"
	"sort"
	"strings"

	koinly "koinly2irpf"
)

// YearEndMarkdown renders the year-end balances as a markdown table.
func YearEndMarkdown(r *koinly.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# End of Year Balances (%d)\n\n", r.Year)
	if r.YearEnd.UsedFallback {
		fmt.Fprintln(&b, "> Section not found in the document, showing the built-in example dataset.")
		fmt.Fprintln(&b)
	}
	fmt.Fprintln(&b, "| Asset | Quantity | Price | Value | Cost |")
	fmt.Fprintln(&b, "|:---|--:|--:|--:|--:|")

	for _, rec := range sortedRecords(r.YearEnd.Records) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			rec.Asset,
			rec.Quantity.Comma(),
			rec.Price,
			rec.Value,
			rec.Cost,
		)
	}
	return b.String()
}

// WalletsMarkdown renders every wallet group with its holdings and attributed
// costs.
func WalletsMarkdown(r *koinly.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Balances per Wallet\n\n")
	if r.WalletsFallback {
		fmt.Fprintln(&b, "> Section not found in the document, showing the built-in example dataset.")
		fmt.Fprintln(&b)
	}

	for _, g := range r.Wallets {
		fmt.Fprintf(&b, "## %s\n\n", g.DisplayName)
		fmt.Fprintf(&b, "- custody: %s", g.Kind)
		if g.Custodian != "" {
			fmt.Fprintf(&b, " (%s)", g.Custodian)
		}
		fmt.Fprintln(&b)
		if g.NetworkName != "" {
			fmt.Fprintf(&b, "- network: %s\n", g.NetworkName)
		}
		if g.Address != "" {
			fmt.Fprintf(&b, "- address: %s\n", g.Address)
		}
		fmt.Fprintf(&b, "- total value: %s\n\n", g.TotalValue())

		fmt.Fprintln(&b, "| Asset | Amount | Value | Cost |")
		fmt.Fprintln(&b, "|:---|--:|--:|--:|")
		for _, h := range g.Holdings {
			cost := "?"
			if h.AttributedCost != nil {
				cost = h.AttributedCost.String()
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", h.Asset, h.Amount.Comma(), h.Value, cost)
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}

// RowsMarkdown renders the exact rows the CSV export will contain.
func RowsMarkdown(r *koinly.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Declaration rows\n\n")
	fmt.Fprintf(&b, "| Ticker | Qtd | Custo R$ 31/12/%d | Discriminação |\n", r.Year)
	fmt.Fprintln(&b, "|:---|--:|--:|:---|")
	for _, g := range r.Wallets {
		for _, h := range g.Holdings {
			cost := "?"
			if h.AttributedCost != nil {
				cost = h.AttributedCost.DeclarationString()
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				strings.ToUpper(h.Symbol()), h.Amount.Comma(), cost, h.Disclosure)
		}
	}
	return b.String()
}

// ReportMarkdown renders the full preview: both sections plus the final rows.
func ReportMarkdown(r *koinly.Report) string {
	return YearEndMarkdown(r) + "\n" + WalletsMarkdown(r) + "\n" + RowsMarkdown(r)
}

// PriceChecksMarkdown renders market price deviations. threshold flags rows
// whose deviation exceeds it.
func PriceChecksMarkdown(checks []koinly.PriceCheck, threshold float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Price check\n\n")
	fmt.Fprintln(&b, "| Asset | Document | Market | Deviation | |")
	fmt.Fprintln(&b, "|:---|--:|--:|--:|:---:|")
	for _, c := range checks {
		if c.Err != nil {
			fmt.Fprintf(&b, "| %s | %s | lookup failed | | ⚠ |\n", c.Symbol, c.Reported)
			continue
		}
		flag := " "
		if c.Deviation > threshold {
			flag = "⚠"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %.1f%% | %s |\n",
			c.Symbol, c.Reported, c.Market, 100*c.Deviation, flag)
	}
	return b.String()
}

func sortedRecords(records map[string]koinly.YearEndRecord) []koinly.YearEndRecord {
	recs := make([]koinly.YearEndRecord, 0, len(records))
	for _, rec := range records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Asset < recs[j].Asset })
	return recs
}
