package koinly

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var yearRe = regexp.MustCompile(`\b(20\d{2})\b`)

// deriveYear finds the reporting year: first in the opening lines of the
// document, then in the file name, finally the current year with a warning.
func deriveYear(text, name string) int {
	head := text
	if lines := strings.SplitN(text, "\n", 6); len(lines) == 6 {
		head = strings.Join(lines[:5], "\n")
	}
	for _, source := range []string{head, name} {
		if m := yearRe.FindStringSubmatch(source); m != nil {
			year, _ := strconv.Atoi(m[1])
			return year
		}
	}
	year := time.Now().Year()
	log.Printf("warning: reporting year not found in document or file name, assuming %d", year)
	return year
}

// GenerateDisclosures fills every holding's Disclosure with the declaration
// sentence for the "Discriminação" field, in Portuguese and upper case:
//
//	SALDO DE 0,5 BTC CUSTODIADO NA EXCHANGE BINANCE EM 31/12/2024.
//	SALDO DE 5 BNB CUSTODIADO NA CARTEIRA METAMASK NA REDE BSC EM 31/12/2024.
//
// Self-custody wallets name the brand and, when identified, the network and a
// truncated address. Unclassified wallets fall back to the cleaned title.
func GenerateDisclosures(r *Report) {
	for _, g := range r.Wallets {
		for _, h := range g.Holdings {
			h.Disclosure = disclosure(g, h, r.Year)
		}
	}
}

func disclosure(g *WalletGroup, h *AssetHolding, year int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SALDO DE %s %s CUSTODIADO ", h.Amount.Comma(), strings.ToUpper(h.Symbol()))

	switch g.Kind {
	case Exchange:
		fmt.Fprintf(&b, "NA EXCHANGE %s", g.Custodian)
	case WalletBrand:
		fmt.Fprintf(&b, "NA CARTEIRA %s", g.Custodian)
		if g.NetworkName != "" {
			fmt.Fprintf(&b, " NA REDE %s", g.NetworkName)
		}
	case Network:
		fmt.Fprintf(&b, "NA CARTEIRA %s NA REDE %s", strings.ToUpper(g.DisplayName), g.NetworkName)
	default:
		fmt.Fprintf(&b, "NA CARTEIRA %s", strings.ToUpper(g.DisplayName))
	}

	if g.Kind != Exchange && g.Address != "" {
		fmt.Fprintf(&b, " %s", strings.ToUpper(shortAddress(g.Address)))
	}

	fmt.Fprintf(&b, " EM 31/12/%d.", year)
	return b.String()
}
