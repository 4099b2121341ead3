package fondos

import "errors"

// Validation failures surfaced synchronously by ledger operations. None of
// them is retried internally: an operation either completes or fails outright
// without mutating the ledger.
var (
	// ErrInvalidLot reports a lot whose cost and unit count are both absent
	// and cannot be derived from any recorded quote.
	ErrInvalidLot = errors.New("lot cost and units are unresolvable")

	// ErrInsufficientUnits reports an oversell, at lot or account level.
	ErrInsufficientUnits = errors.New("insufficient units")

	// ErrOversoldLot reports a sale against a lot whose unit count has not
	// been resolved yet.
	ErrOversoldLot = errors.New("lot units not resolved yet")

	// ErrAmbiguousAllocation reports an account-level request carrying both,
	// or neither, of total units and total amount.
	ErrAmbiguousAllocation = errors.New("exactly one of total units or total amount must be given")

	// ErrInvalidTransferDate reports a transfer whose destination date
	// precedes the sale date.
	ErrInvalidTransferDate = errors.New("destination date before sale date")

	// ErrDuplicateOrder reports a caller-supplied order id that conflicts
	// with an existing order.
	ErrDuplicateOrder = errors.New("conflicting order")

	// ErrDuplicateQuote reports a second value for the same fund and date.
	ErrDuplicateQuote = errors.New("quote already recorded")
)

// Catalog failures.
var (
	ErrUnknownFund      = errors.New("unknown fund")
	ErrUnknownAccount   = errors.New("unknown account")
	ErrDuplicateFund    = errors.New("fund already declared")
	ErrDuplicateAccount = errors.New("account already opened")
)
