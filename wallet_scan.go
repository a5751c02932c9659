package koinly

import (
	"errors"
	"log"
	"regexp"
	"strings"
)

// errNoWalletSection aborts a document whose wallet section is missing when
// fallback data is disabled.
var errNoWalletSection = errors.New("'Balances per Wallet' section not found")

// The "Balances per Wallet" section is a loose stream of title lines, column
// headers, asset rows, address lines and total lines. It is parsed by a
// single-pass stateful scanner: every line is classified into an event, in
// strict priority order, and applied to the scanner state. Asset rows and
// header lines are checked before the permissive title pattern, otherwise a
// data row would open a bogus wallet.

var (
	walletSectionRe = regexp.MustCompile(`(?i)Balances per Wallet`)

	walletTotalCostRe  = regexp.MustCompile(`(?i)^Total cost at [^:]*:\s*R?\$?\s*([\d.,]+)`)
	walletHeaderRe     = regexp.MustCompile(`(?i)^\s*Currency\s+Amount\s+Price\s+Value(\s+Cost)?\s*$`)
	walletAddressRe    = regexp.MustCompile(`(?i)^Wallet address:\s*(.+)$`)
	walletTotalValueRe = regexp.MustCompile(`(?i)^Total wallet value at`)

	// One asset row: ticker, amount, price, value, optional cost, optional
	// "@ ... per X" tail. Prices may or may not carry the R$ glyph.
	holdingLineRe = regexp.MustCompile(`^([A-Z0-9][A-Za-z0-9/#.\-]*(?:\s*\([^)]+\))?)\s+([\d.,]+)\s+(?:R\$\s*)?(\(?-?[\d.,]+\)?)\s+(?:R\$\s*)?(\(?-?[\d.,]+\)?)(?:\s+(?:R\$\s*)?(\(?-?\d[\d.,]*\)?))?(?:\s+@.*)?\s*$`)

	// Permissive wallet title: an uppercase/alnum first token, then free
	// text, optionally "- Network" and/or "- address" segments.
	walletTitleRe = regexp.MustCompile(`^[A-Z0-9][\w .#()\-]*$`)
)

// scanEvent is the classification of one line of the wallet section.
type scanEvent int

const (
	eventNoise scanEvent = iota
	eventTotalCost
	eventHolding
	eventHeader
	eventAddress
	eventTotalValue
	eventTitle
)

// walletScanner holds the current wallet context of the line scan.
type walletScanner struct {
	groups  []*WalletGroup
	current *WalletGroup

	// headerSeen gates asset rows: a row is only trusted once the current
	// wallet printed its column header.
	headerSeen bool
	costColumn bool

	// pendingAddress caches a "Wallet address:" line for association with
	// the current or next wallet title.
	pendingAddress string
}

// ParseWallets extracts the "Balances per Wallet" section into wallet
// groups. A document without the section marker degrades to the built-in
// example dataset (usedFallback true) unless opts.NoFallback makes that an
// error.
func ParseWallets(text string, opts Options) (groups []*WalletGroup, usedFallback bool, err error) {
	marker := walletSectionRe.FindStringIndex(text)
	if marker == nil {
		if opts.NoFallback {
			return nil, false, errNoWalletSection
		}
		log.Printf("warning: 'Balances per Wallet' section not found, substituting built-in example wallets")
		return sampleWallets(), true, nil
	}

	s := &walletScanner{}
	for _, line := range strings.Split(text[marker[1]:], "\n") {
		s.step(strings.TrimSpace(line))
	}
	return s.groups, false, nil
}

// step classifies one line and applies it to the scanner state, returning
// the event for testability. Classification is in strict priority order;
// first match wins.
func (s *walletScanner) step(line string) scanEvent {
	if line == "" {
		return eventNoise
	}

	if m := walletTotalCostRe.FindStringSubmatch(line); m != nil {
		cost := ParseMoney(m[1])
		if s.current != nil {
			s.current.ReportedTotalCost = &cost
		}
		return eventTotalCost
	}

	if m := walletHeaderRe.FindStringSubmatch(line); m != nil {
		s.headerSeen = true
		s.costColumn = m[1] != ""
		if s.current != nil {
			s.current.HasCostColumn = s.costColumn
		}
		return eventHeader
	}

	if m := holdingLineRe.FindStringSubmatch(line); m != nil && s.headerSeen {
		s.appendHolding(line, m)
		return eventHolding
	}

	if m := walletAddressRe.FindStringSubmatch(line); m != nil {
		addr := strings.TrimSpace(m[1])
		s.pendingAddress = addr
		if s.current != nil && s.current.Address == "" {
			s.current.Address = addr
		}
		return eventAddress
	}

	if walletTotalValueRe.MatchString(line) {
		// current wallet is complete; the next header belongs to a new one
		s.headerSeen = false
		return eventTotalValue
	}

	if s.isTitle(line) {
		s.openWallet(line)
		return eventTitle
	}

	log.Printf("skipping unrecognized wallet-section line: %q", line)
	return eventNoise
}

// isTitle reports whether line is a plausible wallet title. A title must
// not look like an asset row, which the loose pattern would otherwise also
// accept.
func (s *walletScanner) isTitle(line string) bool {
	if !walletTitleRe.MatchString(line) {
		return false
	}
	if holdingLineRe.MatchString(line) {
		return false
	}
	if strings.HasPrefix(line, "R$") || strings.HasPrefix(line, "Total") {
		return false
	}
	return strings.ContainsFunc(line, isLetter)
}

// openWallet starts a new wallet group unless the title repeats the current
// wallet's raw title (reports repeat titles across page breaks). Raw titles
// are compared: two wallets may clean to the same display name while their
// address fragments tell them apart.
func (s *walletScanner) openWallet(title string) {
	if s.current != nil && title == s.current.RawTitle {
		// repeated title: at most adopt a cached address
		if s.pendingAddress != "" && s.current.Address == "" {
			s.current.Address = s.pendingAddress
			s.pendingAddress = ""
		}
		return
	}

	c := classifyTitle(title)
	g := &WalletGroup{
		RawTitle:    title,
		DisplayName: c.DisplayName,
		Kind:        c.Kind,
		Custodian:   c.Custodian,
		NetworkName: c.NetworkName,
		Address:     c.Address,
	}
	if g.Address == "" && s.pendingAddress != "" {
		g.Address = s.pendingAddress
		s.pendingAddress = ""
	}
	s.groups = append(s.groups, g)
	s.current = g
	s.headerSeen = false
	s.costColumn = false
}

// appendHolding turns a matched asset row into an AssetHolding on the
// current wallet. An asset row with no open wallet is a data-integrity
// signal: it is attached to the most recently opened group and logged,
// never silently dropped.
func (s *walletScanner) appendHolding(line string, m []string) {
	h := &AssetHolding{
		Asset:     cleanAssetName(m[1]),
		Amount:    ParseDecimal(m[2]),
		AmountRaw: m[2],
		Value:     ParseMoney(m[4]),
	}
	price := ParseMoney(m[3])
	h.Price = &price
	if s.costColumn && m[5] != "" {
		cost := ParseMoney(m[5])
		h.ReportedCost = &cost
	}

	target := s.current
	if target == nil {
		if len(s.groups) == 0 {
			log.Printf("warning: asset row before any wallet title, opening synthetic wallet: %q", line)
			s.openWallet("Unknown Wallet")
			target = s.current
		} else {
			target = s.groups[len(s.groups)-1]
			log.Printf("warning: asset row with no current wallet, attaching to %q: %q", target.DisplayName, line)
		}
	}
	target.Holdings = append(target.Holdings, h)
}
