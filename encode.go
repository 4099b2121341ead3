package fondos

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/jmsanchez/fondos/date"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// CommandType discriminates the lines of the ledger log.
type CommandType string

const (
	CmdFund      CommandType = "declare-fund"
	CmdAccount   CommandType = "open-account"
	CmdQuote     CommandType = "quote"
	CmdOrder     CommandType = "order"
	CmdSubscribe CommandType = "subscribe"
	CmdSell      CommandType = "sell"
)

// The ledger is persisted as a command log: one JSON object per line, each a
// call to one of the public operations, in an order that replays cleanly.
// Quotes are written before lots and disposals, so replay resolves exactly
// what the live ledger had resolved; values still pending stay pending.
//
// Transfers need no command of their own: they replay as a sell followed by
// a subscribe carrying the selling disposal's id as origin.

// EncodeLedger writes the whole ledger as a JSONL command log. The output is
// canonical: encoding the decoded log reproduces it byte for byte.
func EncodeLedger(w io.Writer, l *Ledger) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, f := range l.sortedFunds() {
		var jw jsonObjectWriter
		jw.Append("command", CmdFund)
		jw.Append("isin", f.ISIN)
		jw.Optional("name", f.Name)
		jw.Optional("alias", f.Alias)
		jw.Optional("manager", f.Manager)
		jw.Append("currency", f.Currency)
		if f.Risk > 0 {
			jw.Append("risk", f.Risk)
		}
		jw.Append("active", f.Active)
		if err := writeLine(w, jw); err != nil {
			return err
		}
	}
	for _, a := range l.sortedAccounts() {
		var jw jsonObjectWriter
		jw.Append("command", CmdAccount)
		jw.Append("id", a.ID)
		jw.Append("isin", a.ISIN)
		jw.Optional("broker", a.Broker)
		if err := writeLine(w, jw); err != nil {
			return err
		}
	}
	for _, f := range l.sortedFunds() {
		hist := l.quotes[f.ISIN]
		if hist == nil {
			continue
		}
		for on, price := range hist.Values() {
			var jw jsonObjectWriter
			jw.Append("command", CmdQuote)
			jw.Append("isin", f.ISIN)
			jw.Append("on", on)
			jw.Append("price", price.Decimal())
			if err := writeLine(w, jw); err != nil {
				return err
			}
		}
	}
	for id := 1; id <= l.lastOrder; id++ {
		o, ok := l.orders[id]
		if !ok {
			continue
		}
		var jw jsonObjectWriter
		jw.Append("command", CmdOrder)
		jw.Append("id", o.id)
		jw.Append("on", o.date)
		jw.Optional("comment", o.comment)
		if err := writeLine(w, jw); err != nil {
			return err
		}
	}

	// Lots and disposals reference each other through transfer chains, so
	// they are interleaved: before a lot funded by disposal j, every
	// disposal up to j is written. Disposal ids only grow along a chain,
	// so the merge never needs a disposal whose lot is still unwritten.
	written := 0
	flushDisposals := func(upto int) error {
		for ; written < upto; written++ {
			d := l.disposals[written]
			var jw jsonObjectWriter
			jw.Append("command", CmdSell)
			jw.Append("lot", d.lot.id)
			jw.Append("order", d.order.id)
			jw.Append("units", d.units.Decimal())
			if d.hasProceeds {
				jw.Append("proceeds", d.proceeds.Decimal())
			}
			if err := writeLine(w, jw); err != nil {
				return err
			}
		}
		return nil
	}
	for _, s := range l.lots {
		if s.origin != nil {
			if err := flushDisposals(s.origin.id); err != nil {
				return err
			}
		}
		var jw jsonObjectWriter
		jw.Append("command", CmdSubscribe)
		jw.Append("account", s.account.ID)
		jw.Append("on", s.tradeDate)
		if s.hasUnits {
			jw.Append("units", s.units.Decimal())
		}
		if s.hasCost {
			jw.Append("cost", s.cost.Decimal())
		}
		if s.origin != nil {
			jw.Append("origin", s.origin.id)
		}
		if err := writeLine(w, jw); err != nil {
			return err
		}
	}
	return flushDisposals(len(l.disposals))
}

func writeLine(w io.Writer, jw jsonObjectWriter) error {
	data, err := json.Marshal(&jw)
	if err != nil {
		return fmt.Errorf("cannot marshal command: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write command: %w", err)
	}
	return nil
}

// DecodeLedger replays a JSONL command log into a fresh ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	l := NewLedger()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		if err := decodeCommand(l, raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read ledger log: %w", err)
	}
	return l, nil
}

func decodeCommand(l *Ledger, raw []byte) error {
	var identifier struct {
		Command CommandType `json:"command"`
	}
	if err := json.Unmarshal(raw, &identifier); err != nil {
		return fmt.Errorf("cannot identify command in %q: %w", string(raw), err)
	}

	switch identifier.Command {
	case CmdFund:
		var cmd struct {
			ISIN     string `json:"isin"`
			Name     string `json:"name"`
			Alias    string `json:"alias"`
			Manager  string `json:"manager"`
			Currency string `json:"currency"`
			Risk     int    `json:"risk"`
			Active   bool   `json:"active"`
		}
		if err := json.Unmarshal(raw, &cmd); err != nil {
			return err
		}
		return l.AddFund(Fund{
			ISIN:     cmd.ISIN,
			Name:     cmd.Name,
			Alias:    cmd.Alias,
			Manager:  cmd.Manager,
			Currency: cmd.Currency,
			Risk:     cmd.Risk,
			Active:   cmd.Active,
		})

	case CmdAccount:
		var cmd struct {
			ID     string `json:"id"`
			ISIN   string `json:"isin"`
			Broker string `json:"broker"`
		}
		if err := json.Unmarshal(raw, &cmd); err != nil {
			return err
		}
		_, err := l.AddAccount(cmd.ID, cmd.ISIN, cmd.Broker)
		return err

	case CmdQuote:
		var cmd struct {
			ISIN  string          `json:"isin"`
			On    date.Date       `json:"on"`
			Price decimal.Decimal `json:"price"`
		}
		if err := json.Unmarshal(raw, &cmd); err != nil {
			return err
		}
		cur, err := l.FundCurrency(cmd.ISIN)
		if err != nil {
			return err
		}
		_, err = l.PutQuote(cmd.ISIN, cmd.On, M(cmd.Price, cur))
		return err

	case CmdOrder:
		var cmd struct {
			ID      int       `json:"id"`
			On      date.Date `json:"on"`
			Comment string    `json:"comment"`
		}
		if err := json.Unmarshal(raw, &cmd); err != nil {
			return err
		}
		_, err := l.CreateOrder(&cmd.ID, cmd.On, cmd.Comment)
		return err

	case CmdSubscribe:
		var cmd struct {
			Account string           `json:"account"`
			On      date.Date        `json:"on"`
			Units   *decimal.Decimal `json:"units"`
			Cost    *decimal.Decimal `json:"cost"`
			Origin  int              `json:"origin"`
		}
		if err := json.Unmarshal(raw, &cmd); err != nil {
			return err
		}
		var origin *Disposal
		if cmd.Origin > 0 {
			if origin = l.Disposal(cmd.Origin); origin == nil {
				return fmt.Errorf("unknown origin disposal %d", cmd.Origin)
			}
		}
		var units *Units
		if cmd.Units != nil {
			u := U(*cmd.Units)
			units = &u
		}
		var cost *Money
		if cmd.Cost != nil {
			account := l.Account(cmd.Account)
			if account == nil {
				return fmt.Errorf("%w: %s", ErrUnknownAccount, cmd.Account)
			}
			c := M(*cmd.Cost, account.fund.Currency)
			cost = &c
		}
		_, err := l.CreateLot(cmd.Account, cmd.On, units, cost, origin)
		return err

	case CmdSell:
		var cmd struct {
			Lot      int              `json:"lot"`
			Order    int              `json:"order"`
			Units    decimal.Decimal  `json:"units"`
			Proceeds *decimal.Decimal `json:"proceeds"`
		}
		if err := json.Unmarshal(raw, &cmd); err != nil {
			return err
		}
		lot := l.Lot(cmd.Lot)
		if lot == nil {
			return fmt.Errorf("unknown lot %d", cmd.Lot)
		}
		order := l.Order(cmd.Order)
		if order == nil {
			return fmt.Errorf("unknown order %d", cmd.Order)
		}
		units := U(cmd.Units)
		var proceeds *Money
		if cmd.Proceeds != nil {
			p := M(*cmd.Proceeds, lot.account.fund.Currency)
			proceeds = &p
		}
		_, err := l.CreateDisposal(lot, order, &units, proceeds)
		return err

	default:
		return fmt.Errorf("unknown command %q", identifier.Command)
	}
}
