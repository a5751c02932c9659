package koinly

import "testing"

func TestClassifyTitle(t *testing.T) {
	testCases := []struct {
		name    string
		title   string
		kind    CustodyKind
		cust    string
		network string
		display string
	}{
		{
			name:    "Exchange",
			title:   "Binance",
			kind:    Exchange,
			cust:    "BINANCE",
			display: "Binance",
		},
		{
			name:    "Brazilian exchange",
			title:   "Mercado Bitcoin",
			kind:    Exchange,
			cust:    "MERCADO BITCOIN",
			display: "Mercado Bitcoin",
		},
		{
			// BSC wallets must never be classified as the Binance exchange
			name:    "BSC beats Binance",
			title:   "Binance Smart Chain",
			kind:    Network,
			network: "BSC",
			display: "Binance Smart Chain",
		},
		{
			name:    "BSC keyword in brand title",
			title:   "Metamask (BSC)",
			kind:    Network,
			network: "BSC",
			display: "Metamask",
		},
		{
			name:    "Brand with network",
			title:   "Ledger - Ethereum",
			kind:    WalletBrand,
			cust:    "LEDGER",
			network: "ETHEREUM",
			display: "Ledger - Ethereum",
		},
		{
			// "atom" must not match inside "Atomic"
			name:    "Brand without network",
			title:   "Atomic Wallet",
			kind:    WalletBrand,
			cust:    "ATOMIC WALLET",
			display: "Atomic Wallet",
		},
		{
			name:    "Bare network",
			title:   "Bitcoin",
			kind:    Network,
			network: "BITCOIN",
			display: "Bitcoin",
		},
		{
			name:    "Unknown",
			title:   "My Custom Vault",
			kind:    Unknown,
			display: "My Custom Vault",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyTitle(tc.title)
			if got.Kind != tc.kind {
				t.Errorf("kind = %s, want %s", got.Kind, tc.kind)
			}
			if got.Custodian != tc.cust {
				t.Errorf("custodian = %q, want %q", got.Custodian, tc.cust)
			}
			if got.NetworkName != tc.network {
				t.Errorf("network = %q, want %q", got.NetworkName, tc.network)
			}
			if got.DisplayName != tc.display {
				t.Errorf("display = %q, want %q", got.DisplayName, tc.display)
			}
		})
	}
}

func TestClassifyTitleAddress(t *testing.T) {
	got := classifyTitle("Metamask - 0xAbC1234567")
	if got.Kind != WalletBrand {
		t.Errorf("kind = %s, want wallet", got.Kind)
	}
	if got.Address != "0xAbC1234567" {
		t.Errorf("address = %q, want the 0x fragment", got.Address)
	}
	if got.DisplayName != "Metamask" {
		t.Errorf("display = %q, want Metamask (address stripped)", got.DisplayName)
	}
}

func TestShortAddress(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"0xAbC1234567", "0xAbC12..."},
		{"bc1", "bc1"},
		{"0xAb...89", "0xAb...89"},
	}
	for _, tc := range testCases {
		if got := shortAddress(tc.in); got != tc.want {
			t.Errorf("shortAddress(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
