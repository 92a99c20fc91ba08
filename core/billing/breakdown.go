package billing

import (
	"github.com/shopspring/decimal"

	"github.com/elimuhq/elimu/core/course"
)

// BuildBreakdowns produces one CourseBreakdown per enrollment.
//
// Fees are matched to a course by string equality of the semester label,
// not by a fee→course reference: two courses sharing a semester label see
// the same fee lines in each of their breakdowns. Whether that is a
// deliberate model (one tuition line covering every course of a semester)
// or a gap is unresolved upstream; the behavior is kept as-is for
// compatibility with the existing fee data.
//
// The fees slice is assumed pre-scoped to the enrollments' student.
// This is a full recompute; call it again whenever fees, enrollments or
// the ledger change.
func BuildBreakdowns(enrollments []course.Enrollment, fees []Fee, ledger Ledger) []CourseBreakdown {
	breakdowns := make([]CourseBreakdown, 0, len(enrollments))
	for _, enr := range enrollments {
		var totalCost, totalPaid decimal.Decimal
		var lines []FeeLine

		for _, fee := range fees {
			if fee.Semester != enr.Course.Semester {
				continue
			}
			paid := ledger.PaidFor(fee.ID)
			totalCost = totalCost.Add(fee.Amount)
			totalPaid = totalPaid.Add(paid)
			lines = append(lines, feeLine(fee, paid))
		}

		remaining := totalCost.Sub(totalPaid)
		breakdowns = append(breakdowns, CourseBreakdown{
			Enrollment: enr,
			Lines:      lines,
			TotalCost:  totalCost,
			TotalPaid:  totalPaid,
			Remaining:  remaining,
			Settled:    !remaining.IsPositive(),
		})
	}
	return breakdowns
}

// feeLine annotates one fee with its paid state. Line progress is clamped
// to [0, 100] even on overpayment.
func feeLine(fee Fee, paid decimal.Decimal) FeeLine {
	var progress float64
	if fee.Amount.IsPositive() {
		progress, _ = paid.Div(fee.Amount).Mul(decimal.NewFromInt(100)).Float64()
		if progress > 100 {
			progress = 100
		}
	}
	return FeeLine{
		Fee:       fee,
		Paid:      paid,
		Progress:  progress,
		IsPaid:    paid.GreaterThanOrEqual(fee.Amount),
		IsPartial: paid.IsPositive() && paid.LessThan(fee.Amount),
	}
}
