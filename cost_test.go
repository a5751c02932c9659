package koinly

import "testing"

// setupCostTest builds a report with a year-end table and wallets covering
// the attribution ladder.
func setupCostTest(t *testing.T) *Report {
	t.Helper()

	r := &Report{
		Name: "report-2024",
		Year: 2024,
		YearEnd: YearEndResult{Records: map[string]YearEndRecord{
			"BTC": {Asset: "BTC", Quantity: Q(0.5), Price: BRL(400000), Value: BRL(200000), Cost: BRL(150000)},
			"ETH": {Asset: "ETH", Quantity: Q(5), Price: BRL(2000), Value: BRL(10000), Cost: BRL(8000)},
		}},
	}

	reported := BRL(1234.56)
	r.Wallets = []*WalletGroup{
		{
			DisplayName: "Binance", Kind: Exchange, Custodian: "BINANCE",
			Holdings: []*AssetHolding{
				// 10% of BTC's year-end value
				{Asset: "BTC", Amount: Q(0.05), Value: BRL(20000)},
				// unknown asset, gets the portfolio-wide proportion
				{Asset: "DOGE", Amount: Q(1000), Value: BRL(2100)},
			},
		},
		{
			DisplayName: "Ledger", Kind: WalletBrand, Custodian: "LEDGER",
			HasCostColumn: true,
			Holdings: []*AssetHolding{
				// reported cost wins over any proportion
				{Asset: "ETH", Amount: Q(1), Value: BRL(2000), ReportedCost: &reported},
			},
		},
	}
	return r
}

func TestAttributeCosts(t *testing.T) {
	r := setupCostTest(t)
	AttributeCosts(r)

	btc := r.Wallets[0].Holdings[0]
	// 20.000 / 200.000 of the 150.000 year-end cost
	if btc.AttributedCost == nil || !btc.AttributedCost.Equal(BRL(15000)) {
		t.Errorf("BTC cost = %v, want R$15.000,00", btc.AttributedCost)
	}

	doge := r.Wallets[0].Holdings[1]
	// 2.100 / 210.000 of the 158.000 overall cost
	if doge.AttributedCost == nil || !doge.AttributedCost.Equal(BRL(1580)) {
		t.Errorf("DOGE cost = %v, want R$1.580,00", doge.AttributedCost)
	}

	eth := r.Wallets[1].Holdings[0]
	if eth.AttributedCost == nil || !eth.AttributedCost.Equal(BRL(1234.56)) {
		t.Errorf("ETH cost = %v, want the reported R$1.234,56", eth.AttributedCost)
	}
}

func TestAttributeCostsNoBasis(t *testing.T) {
	// empty year-end table, no cost column: nothing to attribute
	r := &Report{
		YearEnd: YearEndResult{Records: map[string]YearEndRecord{}},
		Wallets: []*WalletGroup{{
			DisplayName: "Binance",
			Holdings:    []*AssetHolding{{Asset: "BTC", Amount: Q(1), Value: BRL(100)}},
		}},
	}
	AttributeCosts(r)
	if got := r.Wallets[0].Holdings[0].AttributedCost; got != nil {
		t.Errorf("AttributedCost = %v, want nil (a missing basis is never zero)", got)
	}
}

func TestAttributeCostsConservation(t *testing.T) {
	// when wallets exactly cover the year-end balances, the attributed costs
	// must add up to the year-end costs
	r := &Report{
		YearEnd: YearEndResult{Records: map[string]YearEndRecord{
			"BTC": {Asset: "BTC", Quantity: Q(1), Value: BRL(100000), Cost: BRL(60000)},
		}},
		Wallets: []*WalletGroup{
			{Holdings: []*AssetHolding{{Asset: "BTC", Amount: Q(0.25), Value: BRL(25000)}}},
			{Holdings: []*AssetHolding{{Asset: "BTC", Amount: Q(0.75), Value: BRL(75000)}}},
		},
	}
	AttributeCosts(r)

	total := BRL(0)
	for _, g := range r.Wallets {
		for _, h := range g.Holdings {
			if h.AttributedCost == nil {
				t.Fatalf("missing cost for %s", h.Asset)
			}
			total = total.Add(*h.AttributedCost)
		}
	}
	if !total.Equal(BRL(60000)) {
		t.Errorf("attributed total = %s, want R$60.000,00", total)
	}
}

func TestMatchYearEnd(t *testing.T) {
	records := map[string]YearEndRecord{
		"BTC":           {Asset: "BTC", Cost: BRL(1)},
		"ETH (Ether)":   {Asset: "ETH (Ether)", Cost: BRL(2)},
		"Solana legacy": {Asset: "Solana legacy", Cost: BRL(3), Description: "@ R$500,00 per SOL"},
	}

	testCases := []struct {
		name  string
		asset string
		want  Money
		ok    bool
	}{
		{name: "Exact", asset: "BTC", want: BRL(1), ok: true},
		{name: "Case insensitive", asset: "btc", want: BRL(1), ok: true},
		{name: "Bare symbol vs annotated", asset: "ETH", want: BRL(2), ok: true},
		{name: "Description hint", asset: "SOL", want: BRL(3), ok: true},
		{name: "Miss", asset: "XRP", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, ok := matchYearEnd(records, tc.asset)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && !rec.Cost.Equal(tc.want) {
				t.Errorf("matched cost = %s, want %s", rec.Cost, tc.want)
			}
		})
	}
}
