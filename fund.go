package fondos

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Fund is an investment vehicle identified by its ISIN, denominated in one
// currency. Immutable once referenced by lots.
type Fund struct {
	ISIN     string
	Name     string
	Alias    string // short display name, falls back to Name
	Manager  string
	Currency string
	Risk     int  // risk class as published by the manager, 1..7
	Active   bool // still quoted and open to subscriptions
}

// DisplayName returns the alias, or the full name when no alias is set.
func (f *Fund) DisplayName() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// Account is a broker-held container of lots for one fund. Created once,
// never mutated.
type Account struct {
	ID     string // broker account number
	ISIN   string
	Broker string

	fund *Fund
	lots []*Lot // in creation order

	// opMu serializes mutating operations touching this account. It is
	// acquired before the ledger arena lock and held for the whole
	// operation, so FIFO allocation sees a stable set of lots.
	opMu sync.Mutex
}

// Fund returns the fund this account subscribes to.
func (a *Account) Fund() *Fund { return a.fund }

// AddFund declares a fund in the catalog.
func (l *Ledger) AddFund(f Fund) error {
	if f.ISIN == "" {
		return fmt.Errorf("fund ISIN is missing")
	}
	if f.Currency == "" {
		f.Currency = "EUR"
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.funds[f.ISIN]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFund, f.ISIN)
	}
	l.funds[f.ISIN] = &f
	return nil
}

// Fund returns the fund declared with this ISIN, or nil if unknown.
func (l *Ledger) Fund(isin string) *Fund {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.funds[isin]
}

// Funds returns all declared funds, sorted by ISIN.
func (l *Ledger) Funds() []*Fund {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sortedFunds()
}

func (l *Ledger) sortedFunds() []*Fund {
	funds := make([]*Fund, 0, len(l.funds))
	for _, f := range l.funds {
		funds = append(funds, f)
	}
	slices.SortFunc(funds, func(a, b *Fund) int { return strings.Compare(a.ISIN, b.ISIN) })
	return funds
}

// FundCurrency returns the currency a fund is denominated in. It is a
// presentation helper only; no computation in this package depends on it.
func (l *Ledger) FundCurrency(isin string) (string, error) {
	f := l.Fund(isin)
	if f == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownFund, isin)
	}
	return f.Currency, nil
}

// AddAccount opens a broker account for a declared fund.
func (l *Ledger) AddAccount(id, isin, broker string) (*Account, error) {
	if id == "" {
		return nil, fmt.Errorf("account id is missing")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fund, ok := l.funds[isin]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFund, isin)
	}
	if _, ok := l.accounts[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, id)
	}
	a := &Account{ID: id, ISIN: isin, Broker: broker, fund: fund}
	l.accounts[id] = a
	return a, nil
}

// Account returns the account opened with this id, or nil if unknown.
func (l *Ledger) Account(id string) *Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.accounts[id]
}

// Accounts returns all opened accounts, sorted by id.
func (l *Ledger) Accounts() []*Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sortedAccounts()
}

func (l *Ledger) sortedAccounts() []*Account {
	accounts := make([]*Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		accounts = append(accounts, a)
	}
	slices.SortFunc(accounts, func(a, b *Account) int { return strings.Compare(a.ID, b.ID) })
	return accounts
}
