package koinly

import (
	_ "embed"
	"encoding/json"
	"regexp"
	"strings"
)

// Known custodian names are data, not code: the tables ship as embedded
// JSON so they can be extended without touching the classification logic.

//go:embed tables.json
var tablesJSON []byte

type custodianTables struct {
	Exchanges    []string `json:"exchanges"`
	WalletBrands []string `json:"wallet_brands"`
	Blockchains  []string `json:"blockchains"`
}

var tables = loadTables()

// Short chain names like "atom", "base" or "sei" would substring-match
// inside unrelated words ("Atomic Wallet"), so blockchain lookups are
// whole-word matches.
var blockchainRes = compileChainMatchers()

func loadTables() custodianTables {
	var t custodianTables
	if err := json.Unmarshal(tablesJSON, &t); err != nil {
		panic("invalid embedded tables.json: " + err.Error())
	}
	return t
}

type chainMatcher struct {
	name string
	re   *regexp.Regexp
}

func compileChainMatchers() []chainMatcher {
	matchers := make([]chainMatcher, 0, len(tables.Blockchains))
	for _, chain := range tables.Blockchains {
		matchers = append(matchers, chainMatcher{
			name: chain,
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(chain) + `\b`),
		})
	}
	return matchers
}

// A title containing any of these is a Binance-Smart-Chain wallet, never the
// Binance exchange, no matter what else it contains.
var bscKeywordRe = regexp.MustCompile(`(?i)\b(binance smart chain|bnb chain|bsc)\b`)

// Address shapes recognized in titles and "Wallet address:" lines.
var addressRes = []*regexp.Regexp{
	regexp.MustCompile(`0x[0-9a-fA-F]{4,}`),                      // EVM
	regexp.MustCompile(`(?i)\b[xyz]pub[1-9A-HJ-NP-Za-km-z]{4,}`), // extended public keys
	regexp.MustCompile(`\bbc1[0-9a-zA-Z]{4,}`),                   // Bitcoin SegWit
	regexp.MustCompile(`\b[13][1-9A-HJ-NP-Za-km-z]{25,34}\b`),    // Bitcoin legacy
}

// Classification is the custody verdict for one wallet title.
type Classification struct {
	Kind        CustodyKind
	Custodian   string // canonical exchange or brand name (upper case)
	NetworkName string // blockchain name (upper case), when identified
	DisplayName string
	Address     string
}

// classifyTitle decides how a wallet title is custodied.
//
// Priority: the BSC rule first (it overrides the Binance exchange match),
// then known exchanges, then wallet brands, then blockchains, then Unknown.
func classifyTitle(title string) Classification {
	c := Classification{
		DisplayName: cleanWalletName(title),
		Address:     extractAddress(title),
	}
	lower := strings.ToLower(title)

	if bscKeywordRe.MatchString(title) {
		c.Kind = Network
		c.NetworkName = "BSC"
		return c
	}

	for _, ex := range tables.Exchanges {
		if strings.Contains(lower, ex) {
			c.Kind = Exchange
			c.Custodian = strings.ToUpper(ex)
			return c
		}
	}

	for _, brand := range tables.WalletBrands {
		if strings.Contains(lower, brand) {
			c.Kind = WalletBrand
			c.Custodian = strings.ToUpper(brand)
			c.NetworkName = networkFromTitle(title)
			return c
		}
	}

	if network := networkFromTitle(title); network != "" {
		c.Kind = Network
		c.NetworkName = network
		return c
	}

	c.Kind = Unknown
	return c
}

// networkFromTitle looks for a known blockchain name, either anywhere in the
// title or in a " - Network" suffix segment.
func networkFromTitle(title string) string {
	lower := strings.ToLower(title)
	for _, chain := range blockchainRes {
		if chain.name == "bitcoin" && strings.Contains(lower, "mercado bitcoin") {
			// "Mercado Bitcoin" is an exchange name, not the Bitcoin chain
			continue
		}
		if chain.re.MatchString(title) {
			return strings.ToUpper(chain.name)
		}
	}
	for _, segment := range strings.Split(title, " - ")[1:] {
		segment = strings.TrimSpace(parentheticalRe.ReplaceAllString(segment, ""))
		for _, chain := range blockchainRes {
			if chain.re.MatchString(segment) {
				return strings.ToUpper(chain.name)
			}
		}
	}
	return ""
}

// extractAddress finds the first recognizable address fragment in s.
func extractAddress(s string) string {
	for _, re := range addressRes {
		if m := re.FindString(s); m != "" {
			return m
		}
	}
	return ""
}

var (
	titlePrefixRe  = regexp.MustCompile(`(?i)^(wallet address:|exchange:)\s*`)
	addressTailRe  = regexp.MustCompile(`\s*-\s*(0x[0-9a-fA-F]+|[1-9A-HJ-NP-Za-km-z]{10,}|bc1[0-9a-zA-Z]+|[0-9a-zA-Z]{4,}\.\.\.[0-9a-zA-Z]{2,})\s*$`)
	tickerSuffixRe = regexp.MustCompile(`(\S)\s*\([^)]*\)\s*$`)
)

// cleanWalletName reduces a raw wallet title to a displayable custodian
// name: known prefixes, trailing address fragments and parenthetical
// tickers are stripped.
func cleanWalletName(title string) string {
	name := strings.TrimSpace(title)
	name = titlePrefixRe.ReplaceAllString(name, "")
	for {
		stripped := addressTailRe.ReplaceAllString(name, "")
		if stripped == name {
			break
		}
		name = stripped
	}
	name = tickerSuffixRe.ReplaceAllString(name, "$1")
	name = strings.TrimRight(name, " -")
	name = strings.TrimSpace(name)
	if name == "" {
		return strings.TrimSpace(title)
	}
	return name
}

// shortAddress truncates an address to a short recognizable prefix plus
// ellipsis, the form used in disclosure lines.
func shortAddress(addr string) string {
	if addr == "" {
		return ""
	}
	if prefix, _, ok := strings.Cut(addr, "..."); ok {
		if len(prefix) <= 7 {
			return addr
		}
		return prefix[:7] + "..."
	}
	if len(addr) > 7 {
		return addr[:7] + "..."
	}
	return addr
}
