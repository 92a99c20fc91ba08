package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/elimuhq/elimu/core/course"
)

// Payment statuses. Only completed payments count toward paid totals.
// A pending payment may later be completed by the provider's settlement
// callback; failed payments originate upstream and are only ever read here.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Fee is an amount owed by one student for one semester/line item.
// A fee is immutable once created; settling it happens through payments only.
type Fee struct {
	ID           string          `json:"id"`
	StudentID    string          `json:"student_id"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      time.Time       `json:"due_date"`
	Semester     string          `json:"semester"`
	AcademicYear string          `json:"academic_year"`
	Description  string          `json:"description"`
}

// Payment is a transaction record against exactly one fee.
type Payment struct {
	ID             string          `json:"id"`
	FeeID          string          `json:"fee_id"`
	StudentID      string          `json:"student_id"`
	Amount         decimal.Decimal `json:"amount"`
	PaidAt         time.Time       `json:"paid_at"` // UTC
	Method         string          `json:"payment_method"`
	Status         string          `json:"status"`
	TransactionRef string          `json:"transaction_ref"`
}

// Method is a payment channel from the static catalog.
// Instant channels settle immediately; the others settle out-of-band.
type Method struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Instant bool   `json:"instant"`
}

var Methods = []Method{
	{Key: "mobile-money", Name: "Mobile Money", Instant: true},
	{Key: "bank-transfer", Name: "Bank Transfer", Instant: false},
	{Key: "bank-branch", Name: "Bank Branch", Instant: false},
	{Key: "online-portal", Name: "Online Portal", Instant: true},
}

// MethodByKey resolves a channel key against the catalog.
func MethodByKey(key string) (Method, bool) {
	for _, m := range Methods {
		if m.Key == key {
			return m, true
		}
	}
	return Method{}, false
}

// Summary holds the aggregate scalars over a student's full fee set.
// Progress is a percentage; it may exceed 100 on overpayment.
type Summary struct {
	TotalFees   decimal.Decimal `json:"total_fees"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Progress    float64         `json:"payment_progress"`
}

// FeeLine is one fee within a course breakdown, annotated with its paid
// amount. Unlike Summary.Progress, a line's Progress is clamped to 100.
type FeeLine struct {
	Fee       Fee             `json:"fee"`
	Paid      decimal.Decimal `json:"paid"`
	Progress  float64         `json:"progress"`
	IsPaid    bool            `json:"is_paid"`
	IsPartial bool            `json:"is_partial"`
}

// CourseBreakdown is the per-enrollment fee view.
type CourseBreakdown struct {
	Enrollment course.Enrollment `json:"enrollment"`
	Lines      []FeeLine         `json:"semester_fees"`
	TotalCost  decimal.Decimal   `json:"total_cost"`
	TotalPaid  decimal.Decimal   `json:"total_paid"`
	Remaining  decimal.Decimal   `json:"remaining"`
	Settled    bool              `json:"settled"`
}

// Statement is the full derived view model for one student: the raw
// snapshot plus every aggregate computed from it. It has no independent
// lifecycle; it is rebuilt wholesale whenever the snapshot changes.
type Statement struct {
	Fees        []Fee               `json:"fees"`
	Payments    []Payment           `json:"payments"`
	Enrollments []course.Enrollment `json:"enrollments"`
	Summary     Summary             `json:"summary"`
	Breakdowns  []CourseBreakdown   `json:"course_breakdowns"`
}

// PaymentRequest is the payload for initiating a payment.
type PaymentRequest struct {
	Method string `json:"method" validate:"required"`
}
