package koinly

// Built-in example datasets, substituted when a document's sections cannot
// be parsed so the rest of the pipeline stays exercisable. Callers see the
// substitution through the UsedFallback flags and can disable it entirely
// with Options.NoFallback.

func sampleYearEnd() map[string]YearEndRecord {
	records := []YearEndRecord{
		{Asset: "BTC", Quantity: Q(0.5), Price: BRL(40000), Value: BRL(20000), Cost: BRL(15000)},
		{Asset: "ETH", Quantity: Q(5), Price: BRL(2000), Value: BRL(10000), Cost: BRL(8000)},
		{Asset: "ADA", Quantity: Q(1000), Price: BRL(0.5), Value: BRL(500), Cost: BRL(300)},
	}
	m := make(map[string]YearEndRecord, len(records))
	for _, rec := range records {
		m[rec.Asset] = rec
	}
	return m
}

func sampleWallets() []*WalletGroup {
	type row struct {
		asset  string
		amount float64
		value  float64
	}
	build := func(title string, rows ...row) *WalletGroup {
		c := classifyTitle(title)
		g := &WalletGroup{
			RawTitle:    title,
			DisplayName: c.DisplayName,
			Kind:        c.Kind,
			Custodian:   c.Custodian,
			NetworkName: c.NetworkName,
			Address:     c.Address,
		}
		for _, r := range rows {
			amount := Q(r.amount)
			var price *Money
			if !amount.IsZero() {
				p := BRL(r.value).Div(amount)
				price = &p
			}
			g.Holdings = append(g.Holdings, &AssetHolding{
				Asset:     r.asset,
				Amount:    amount,
				AmountRaw: amount.String(),
				Price:     price,
				Value:     BRL(r.value),
			})
		}
		return g
	}

	return []*WalletGroup{
		build("Binance Exchange",
			row{"BTC", 0.3, 12000},
			row{"ETH", 3, 6000}),
		build("Metamask (BSC)",
			row{"BNB", 5, 2000},
			row{"CAKE", 100, 1000}),
		build("Hardware Wallet - Bitcoin",
			row{"BTC", 0.2, 8000},
			row{"ETH", 2, 4000}),
	}
}
