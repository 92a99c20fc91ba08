package billing

import "github.com/shopspring/decimal"

// Ledger maps a fee ID to the total amount paid against it, restricted to
// completed payments. A fee missing from the ledger has simply never been
// paid; lookups must go through PaidFor which defaults to zero.
type Ledger map[string]decimal.Decimal

// BuildLedger indexes completed payments by fee. Summation is commutative
// so the result does not depend on the input order.
func BuildLedger(payments []Payment) Ledger {
	ledger := make(Ledger, len(payments))
	for _, p := range payments {
		if p.Status != StatusCompleted {
			continue
		}
		ledger[p.FeeID] = ledger[p.FeeID].Add(p.Amount)
	}
	return ledger
}

// PaidFor returns the completed-payment total for a fee, zero if none.
func (l Ledger) PaidFor(feeID string) decimal.Decimal {
	return l[feeID]
}

// Total sums the ledger. Since the ledger only ever contains completed
// payments tied to the student's fees, this equals the student's total paid.
func (l Ledger) Total() decimal.Decimal {
	var total decimal.Decimal
	for _, amt := range l {
		total = total.Add(amt)
	}
	return total
}

// Summarize derives the aggregate scalars from a fee set and its ledger.
// Outstanding is floored at zero on overpayment; Progress is zero-guarded
// but deliberately not clamped above 100 (per-line progress is, see
// BuildBreakdowns).
func Summarize(fees []Fee, ledger Ledger) Summary {
	var totalFees decimal.Decimal
	for _, fee := range fees {
		totalFees = totalFees.Add(fee.Amount)
	}
	totalPaid := ledger.Total()

	outstanding := totalFees.Sub(totalPaid)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}

	var progress float64
	if totalFees.IsPositive() {
		progress, _ = totalPaid.Div(totalFees).Mul(decimal.NewFromInt(100)).Float64()
	}

	return Summary{
		TotalFees:   totalFees,
		TotalPaid:   totalPaid,
		Outstanding: outstanding,
		Progress:    progress,
	}
}

// outstandingFor returns the fee's unpaid remainder, floored at zero.
func outstandingFor(fee Fee, ledger Ledger) decimal.Decimal {
	due := fee.Amount.Sub(ledger.PaidFor(fee.ID))
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}
