package koinly

import (
	"strings"
	"testing"
)

// fullDocument is a minimal but complete extracted report: both sections, a
// year in the head, old-format wallet tables without a Cost column.
const fullDocument = `Portfolio Tax Report 2024
Generated for test

End of Year Balances
Asset Quantity Cost (BRL) Value (BRL) Description
BTC 0.50000000 150.000,00 200.000,00 @ R$400.000,00 per BTC
ETH 5.00000000 8.000,00 10.000,00 @ R$2.000,00 per ETH
Total 158.000,00 210.000,00

Balances per Wallet

Binance
Currency Amount Price Value
BTC 0.05000000 R$400.000,00 R$20.000,00
Total wallet value at 31/12/2024: R$20.000,00

Ledger - Ethereum
Wallet address: 0xabc123def456
Currency Amount Price Value
ETH 2.00000000 R$2.000,00 R$4.000,00
Total wallet value at 31/12/2024: R$4.000,00
`

func TestProcessText(t *testing.T) {
	r, err := ProcessText("koinly-report.pdf", fullDocument, Options{NoFallback: true})
	if err != nil {
		t.Fatalf("ProcessText() failed: %v", err)
	}

	if r.Name != "koinly-report" {
		t.Errorf("Name = %q, want koinly-report", r.Name)
	}
	if r.Year != 2024 {
		t.Errorf("Year = %d, want 2024", r.Year)
	}
	if r.YearEnd.UsedFallback || r.WalletsFallback {
		t.Error("fallback flags set on a parseable document")
	}
	if len(r.Wallets) != 2 {
		t.Fatalf("got %d wallets, want 2", len(r.Wallets))
	}

	btc := r.Wallets[0].Holdings[0]
	// 20.000 of BTC's 200.000 year-end value carries 10% of the 150.000 cost
	if btc.AttributedCost == nil || !btc.AttributedCost.Equal(BRL(15000)) {
		t.Errorf("BTC cost = %v, want R$15.000,00", btc.AttributedCost)
	}
	want := "SALDO DE 0,05 BTC CUSTODIADO NA EXCHANGE BINANCE EM 31/12/2024."
	if btc.Disclosure != want {
		t.Errorf("BTC disclosure = %q, want %q", btc.Disclosure, want)
	}

	eth := r.Wallets[1].Holdings[0]
	// 4.000 of ETH's 10.000 year-end value carries 40% of the 8.000 cost
	if eth.AttributedCost == nil || !eth.AttributedCost.Equal(BRL(3200)) {
		t.Errorf("ETH cost = %v, want R$3.200,00", eth.AttributedCost)
	}
	// the truncated address follows the custody phrase bare, no label
	wantETH := "SALDO DE 2 ETH CUSTODIADO NA CARTEIRA LEDGER NA REDE ETHEREUM 0XABC12... EM 31/12/2024."
	if eth.Disclosure != wantETH {
		t.Errorf("ETH disclosure = %q, want %q", eth.Disclosure, wantETH)
	}
}

func TestProcessTextForcedYear(t *testing.T) {
	r, err := ProcessText("koinly-report.pdf", fullDocument, Options{NoFallback: true, Year: 2020})
	if err != nil {
		t.Fatalf("ProcessText() failed: %v", err)
	}
	if r.Year != 2020 {
		t.Errorf("Year = %d, want the forced 2020", r.Year)
	}
	if !strings.HasSuffix(r.Wallets[0].Holdings[0].Disclosure, "EM 31/12/2020.") {
		t.Errorf("disclosure year not forced: %q", r.Wallets[0].Holdings[0].Disclosure)
	}
}

func TestProcessTextMissingWallets(t *testing.T) {
	_, err := ProcessText("x.pdf", "End of Year Balances\nAsset Quantity Cost (BRL) Value (BRL) Description\nBTC 1 1 1\nTotal", Options{NoFallback: true})
	if err == nil {
		t.Fatal("want an error when the wallet section is missing and fallback is disabled")
	}
}

func TestStem(t *testing.T) {
	testCases := []struct{ in, want string }{
		{"report.pdf", "report"},
		{"/tmp/koinly-2024.pdf", "koinly-2024"},
		{"noext", "noext"},
	}
	for _, tc := range testCases {
		if got := stem(tc.in); got != tc.want {
			t.Errorf("stem(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
