package koinly

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Live BRL prices from the CoinGecko simple-price endpoint, used to sanity
// check the prices read from a document against the market.

// coingeckoIDs maps common tickers to CoinGecko asset identifiers. Tickers
// not listed here simply cannot be checked.
var coingeckoIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"ADA":   "cardano",
	"XRP":   "ripple",
	"DOT":   "polkadot",
	"DOGE":  "dogecoin",
	"AVAX":  "avalanche-2",
	"MATIC": "matic-network",
	"LTC":   "litecoin",
	"LINK":  "chainlink",
	"ATOM":  "cosmos",
	"XLM":   "stellar",
	"ALGO":  "algorand",
	"CAKE":  "pancakeswap-token",
	"USDT":  "tether",
	"USDC":  "usd-coin",
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}

// latestBRLPrice fetches the current BRL price of one CoinGecko asset id.
func latestBRLPrice(client *http.Client, id string) (float64, error) {
	addr := "https://api.coingecko.com/api/v3/simple/price?vs_currencies=brl&ids=" + id
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error retrieving %q: %w", id, err)
	}
	path := "$." + id + ".brl"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %q %w", id, path, err)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer, so keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing %q: %q not a float: %v", id, path, jval)
	}
	return val, nil
}

// PriceCheck compares one asset's document price against the market.
type PriceCheck struct {
	Symbol    string
	Reported  Money
	Market    Money
	Deviation float64 // fraction, 0.10 means the document is 10% off
	Err       error   // lookup failure for this asset
}

// CheckPrices fetches current market prices for every year-end asset with a
// known CoinGecko id and reports how far the document's prices deviate.
// Assets without a mapping are silently skipped; per-asset lookup failures
// are reported in the result, not fatal.
func CheckPrices(client *http.Client, r *Report) []PriceCheck {
	if client == nil {
		client = new(http.Client)
	}

	var checks []PriceCheck
	for _, rec := range r.YearEnd.Records {
		symbol := strings.ToUpper(baseSymbol(rec.Asset))
		id, ok := coingeckoIDs[symbol]
		if !ok {
			continue
		}
		check := PriceCheck{Symbol: symbol, Reported: rec.Price}
		val, err := latestBRLPrice(client, id)
		if err != nil {
			check.Err = err
			checks = append(checks, check)
			continue
		}
		check.Market = BRL(val)
		if reported := rec.Price.AsFloat(); reported > 0 && val > 0 {
			dev := (reported - val) / val
			if dev < 0 {
				dev = -dev
			}
			check.Deviation = dev
		}
		checks = append(checks, check)
	}

	sort.Slice(checks, func(i, j int) bool { return checks[i].Symbol < checks[j].Symbol })
	return checks
}
