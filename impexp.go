package fondos

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jmsanchez/fondos/date"
)

// Bulk import of pipe-separated records, one per line. Lines starting with
// '#' and blank lines are skipped. Empty fields mean "not supplied"; trailing
// empty fields may be omitted entirely.

// forEachRecord feeds the split fields of every data line to fn, wrapping
// errors with the line number.
func forEachRecord(r io.Reader, fn func(fields []string) error) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		txt := strings.TrimSpace(scanner.Text())
		if txt == "" || strings.HasPrefix(txt, "#") {
			continue
		}
		fields := strings.Split(txt, "|")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if err := fn(fields); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cannot read records: %w", err)
	}
	return nil
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func parseDateField(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}

func parseUnitsField(s string) (*Units, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid unit count %q: %w", s, err)
	}
	u := U(d)
	return &u, nil
}

func parseMoneyField(s, currency string) (*Money, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	m := M(d, currency)
	return &m, nil
}

// ImportFunds reads fund declarations:
//
//	isin|name|alias|manager|scraper|risk|active|currency
//
// The scraper field named the quote source in older data files and is
// ignored. Currency defaults to EUR.
func (l *Ledger) ImportFunds(r io.Reader) error {
	return forEachRecord(r, func(fields []string) error {
		f := Fund{
			ISIN:     field(fields, 0),
			Name:     field(fields, 1),
			Alias:    field(fields, 2),
			Manager:  field(fields, 3),
			Currency: field(fields, 7),
		}
		if s := field(fields, 5); s != "" {
			risk, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("invalid risk class %q: %w", s, err)
			}
			f.Risk = risk
		}
		if s := field(fields, 6); s != "" {
			active, err := strconv.ParseBool(s)
			if err != nil {
				return fmt.Errorf("invalid active flag %q: %w", s, err)
			}
			f.Active = active
		}
		return l.AddFund(f)
	})
}

// ImportAccounts reads broker accounts:
//
//	id|isin|broker
func (l *Ledger) ImportAccounts(r io.Reader) error {
	return forEachRecord(r, func(fields []string) error {
		_, err := l.AddAccount(field(fields, 0), field(fields, 1), field(fields, 2))
		return err
	})
}

// ImportQuotes reads fund unit values:
//
//	isin|date|price
func (l *Ledger) ImportQuotes(r io.Reader) error {
	return forEachRecord(r, func(fields []string) error {
		isin := field(fields, 0)
		day, err := parseDateField(field(fields, 1))
		if err != nil {
			return err
		}
		cur, err := l.FundCurrency(isin)
		if err != nil {
			return err
		}
		price, err := parseMoneyField(field(fields, 2), cur)
		if err != nil {
			return err
		}
		if price == nil {
			return fmt.Errorf("quote value is missing")
		}
		_, err = l.PutQuote(isin, day, *price)
		return err
	})
}

// ImportSubscriptions reads purchases:
//
//	account|date|cost|units
//
// Either cost or units may be empty; the missing one is derived from the
// quote of that date, now or when it arrives.
func (l *Ledger) ImportSubscriptions(r io.Reader) error {
	return forEachRecord(r, func(fields []string) error {
		accountID := field(fields, 0)
		account := l.Account(accountID)
		if account == nil {
			return fmt.Errorf("%w: %s", ErrUnknownAccount, accountID)
		}
		day, err := parseDateField(field(fields, 1))
		if err != nil {
			return err
		}
		cost, err := parseMoneyField(field(fields, 2), account.fund.Currency)
		if err != nil {
			return err
		}
		units, err := parseUnitsField(field(fields, 3))
		if err != nil {
			return err
		}
		_, err = l.CreateLot(accountID, day, units, cost, nil)
		return err
	})
}

// ImportRedemptions reads account-level sales:
//
//	account|date|units|amount|comment
//
// Exactly one of units and amount must be given; the sale is split over the
// account's lots oldest investment first.
func (l *Ledger) ImportRedemptions(r io.Reader) error {
	return forEachRecord(r, func(fields []string) error {
		accountID := field(fields, 0)
		account := l.Account(accountID)
		if account == nil {
			return fmt.Errorf("%w: %s", ErrUnknownAccount, accountID)
		}
		day, err := parseDateField(field(fields, 1))
		if err != nil {
			return err
		}
		units, err := parseUnitsField(field(fields, 2))
		if err != nil {
			return err
		}
		amount, err := parseMoneyField(field(fields, 3), account.fund.Currency)
		if err != nil {
			return err
		}
		order, err := l.CreateOrder(nil, day, field(fields, 4))
		if err != nil {
			return err
		}
		_, err = l.AllocateSale(accountID, order, units, amount)
		return err
	})
}

// ImportTransfers reads account-level transfers:
//
//	source|date|destination|destDate|units|amount|comment
//
// Exactly one of units and amount must be given. An empty destDate settles
// the destination on the sale date.
func (l *Ledger) ImportTransfers(r io.Reader) error {
	return forEachRecord(r, func(fields []string) error {
		accountID := field(fields, 0)
		account := l.Account(accountID)
		if account == nil {
			return fmt.Errorf("%w: %s", ErrUnknownAccount, accountID)
		}
		day, err := parseDateField(field(fields, 1))
		if err != nil {
			return err
		}
		destID := field(fields, 2)
		destDate, err := parseDateField(field(fields, 3))
		if err != nil {
			return err
		}
		units, err := parseUnitsField(field(fields, 4))
		if err != nil {
			return err
		}
		amount, err := parseMoneyField(field(fields, 5), account.fund.Currency)
		if err != nil {
			return err
		}
		order, err := l.CreateOrder(nil, day, field(fields, 6))
		if err != nil {
			return err
		}
		_, err = l.AllocateTransfer(accountID, order, units, amount, destID, destDate)
		return err
	})
}
