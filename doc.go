// Package fondos implements a lot-based ledger for personal investment-fund
// holdings. Purchases of fund units are recorded as lots in broker accounts;
// sales are matched against lots in strict FIFO order by investment date, and
// fund-to-fund transfers preserve the original investment date for tax
// purposes.
//
// The core functionalities include:
//   - Lot Ledger: creating lots whose cost or unit count may be resolved
//     lazily from a quote once it becomes available.
//   - Disposal Engine: recording sales against individual lots with strict
//     remaining-quantity enforcement.
//   - Aggregation Allocator: decomposing an account-level sale or transfer
//     request into per-lot operations, oldest investment first, pro-rating
//     monetary amounts.
//   - Transfer Orchestrator: composing a disposal with the creation of a
//     destination lot funded by its proceeds.
//   - Lineage and Evolution: reconstructing the full chain of any investment
//     from its original new-money lot, and resampling its valuation at fixed
//     calendar intervals.
//
// This package serves as the foundational logic for the `fondos` command-line
// tool. Amounts are exact decimals: unit counts carry five decimals (with a
// truncation bias so holdings are never overstated) and monetary amounts two.
package fondos
