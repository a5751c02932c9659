package koinly

import (
	"testing"
	"time"
)

func TestDisclosure(t *testing.T) {
	testCases := []struct {
		name   string
		group  *WalletGroup
		amount Quantity
		asset  string
		want   string
	}{
		{
			name:   "Exchange",
			group:  &WalletGroup{Kind: Exchange, Custodian: "BINANCE", DisplayName: "Binance"},
			amount: Q(0.5),
			asset:  "BTC",
			want:   "SALDO DE 0,5 BTC CUSTODIADO NA EXCHANGE BINANCE EM 31/12/2024.",
		},
		{
			name:   "Brand with network and address",
			group:  &WalletGroup{Kind: WalletBrand, Custodian: "LEDGER", DisplayName: "Ledger", NetworkName: "ETHEREUM", Address: "0xAbC1234567"},
			amount: Q(2),
			asset:  "ETH",
			want:   "SALDO DE 2 ETH CUSTODIADO NA CARTEIRA LEDGER NA REDE ETHEREUM 0XABC12... EM 31/12/2024.",
		},
		{
			name:   "Network",
			group:  &WalletGroup{Kind: Network, DisplayName: "Metamask", NetworkName: "BSC"},
			amount: Q(5),
			asset:  "BNB",
			want:   "SALDO DE 5 BNB CUSTODIADO NA CARTEIRA METAMASK NA REDE BSC EM 31/12/2024.",
		},
		{
			name:   "Unknown custody",
			group:  &WalletGroup{Kind: Unknown, DisplayName: "My Custom Vault"},
			amount: Q(100),
			asset:  "ADA (Cardano)",
			want:   "SALDO DE 100 ADA CUSTODIADO NA CARTEIRA MY CUSTOM VAULT EM 31/12/2024.",
		},
		{
			// the exchange custodies the keys, an address would be misleading
			name:   "Exchange hides address",
			group:  &WalletGroup{Kind: Exchange, Custodian: "KRAKEN", DisplayName: "Kraken", Address: "0xAbC1234567"},
			amount: Q(1),
			asset:  "BTC",
			want:   "SALDO DE 1 BTC CUSTODIADO NA EXCHANGE KRAKEN EM 31/12/2024.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := &AssetHolding{Asset: tc.asset, Amount: tc.amount}
			if got := disclosure(tc.group, h, 2024); got != tc.want {
				t.Errorf("disclosure() =\n  %q\nwant\n  %q", got, tc.want)
			}
		})
	}
}

func TestGenerateDisclosures(t *testing.T) {
	r := &Report{
		Year: 2023,
		Wallets: []*WalletGroup{{
			Kind: Exchange, Custodian: "BINANCE", DisplayName: "Binance",
			Holdings: []*AssetHolding{{Asset: "BTC", Amount: Q(1)}},
		}},
	}
	GenerateDisclosures(r)
	want := "SALDO DE 1 BTC CUSTODIADO NA EXCHANGE BINANCE EM 31/12/2023."
	if got := r.Wallets[0].Holdings[0].Disclosure; got != want {
		t.Errorf("Disclosure = %q, want %q", got, want)
	}
}

func TestGenerateDisclosuresEmptyReport(t *testing.T) {
	GenerateDisclosures(&Report{})
	GenerateDisclosures(&Report{Wallets: []*WalletGroup{{}}})
}

func TestDeriveYear(t *testing.T) {
	testCases := []struct {
		name string
		text string
		file string
		want int
	}{
		{
			name: "From document head",
			text: "Portfolio Tax Report\n2024\nSome Exchange\n",
			file: "report.pdf",
			want: 2024,
		},
		{
			name: "From file name",
			text: "no year in sight\n",
			file: "koinly-2022.pdf",
			want: 2022,
		},
		{
			name: "Document beats file name",
			text: "Tax Report 2021\n",
			file: "report-2022.pdf",
			want: 2021,
		},
		{
			name: "Nothing found",
			text: "nothing\n",
			file: "report.pdf",
			want: time.Now().Year(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := deriveYear(tc.text, tc.file); got != tc.want {
				t.Errorf("deriveYear() = %d, want %d", got, tc.want)
			}
		})
	}
}
