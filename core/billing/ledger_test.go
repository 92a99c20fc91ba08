package billing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func amt(t *testing.T, val string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(val)
	if err != nil {
		t.Fatalf("decimal.NewFromString(%q) failed: %v", val, err)
	}
	return d
}

func TestBuildLedger(t *testing.T) {
	payments := []Payment{
		{FeeID: "fee1", Amount: amt(t, "100"), Status: StatusCompleted},
		{FeeID: "fee1", Amount: amt(t, "50.50"), Status: StatusCompleted},
		{FeeID: "fee1", Amount: amt(t, "999"), Status: StatusPending}, // ignored
		{FeeID: "fee2", Amount: amt(t, "200"), Status: StatusCompleted},
		{FeeID: "fee2", Amount: amt(t, "75"), Status: StatusFailed}, // ignored
	}

	ledger := BuildLedger(payments)

	tests := []struct {
		name  string
		feeID string
		want  string
	}{
		{name: "several completed payments are summed", feeID: "fee1", want: "150.50"},
		{name: "pending and failed payments do not count", feeID: "fee2", want: "200"},
		{name: "unknown fee defaults to zero", feeID: "fee3", want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ledger.PaidFor(tt.feeID); !got.Equal(amt(t, tt.want)) {
				t.Errorf("PaidFor() = %s, want %s", got, tt.want)
			}
		})
	}

	// summation is commutative; reversing the input changes nothing
	reversed := make([]Payment, 0, len(payments))
	for i := len(payments) - 1; i >= 0; i-- {
		reversed = append(reversed, payments[i])
	}
	revLedger := BuildLedger(reversed)
	for feeID, want := range ledger {
		if got := revLedger.PaidFor(feeID); !got.Equal(want) {
			t.Errorf("reversed PaidFor(%s) = %s, want %s", feeID, got, want)
		}
	}

	if got, want := ledger.Total(), amt(t, "350.50"); !got.Equal(want) {
		t.Errorf("Total() = %s, want %s", got, want)
	}
}

func TestSummarize(t *testing.T) {
	fees := []Fee{
		{ID: "fee1", Amount: amt(t, "1000")},
		{ID: "fee2", Amount: amt(t, "500")},
	}

	tests := []struct {
		name            string
		fees            []Fee
		payments        []Payment
		wantTotalFees   string
		wantTotalPaid   string
		wantOutstanding string
		wantProgress    float64
	}{
		{
			name:            "no payments",
			fees:            fees,
			wantTotalFees:   "1500",
			wantTotalPaid:   "0",
			wantOutstanding: "1500",
			wantProgress:    0,
		},
		{
			name: "partial payment",
			fees: fees,
			payments: []Payment{
				{FeeID: "fee1", Amount: amt(t, "375"), Status: StatusCompleted},
			},
			wantTotalFees:   "1500",
			wantTotalPaid:   "375",
			wantOutstanding: "1125",
			wantProgress:    25,
		},
		{
			name: "pending payments do not move the needle",
			fees: fees,
			payments: []Payment{
				{FeeID: "fee1", Amount: amt(t, "1500"), Status: StatusPending},
			},
			wantTotalFees:   "1500",
			wantTotalPaid:   "0",
			wantOutstanding: "1500",
			wantProgress:    0,
		},
		{
			name: "overpayment floors outstanding at zero but not progress",
			fees: fees,
			payments: []Payment{
				{FeeID: "fee1", Amount: amt(t, "1000"), Status: StatusCompleted},
				{FeeID: "fee2", Amount: amt(t, "800"), Status: StatusCompleted},
			},
			wantTotalFees:   "1500",
			wantTotalPaid:   "1800",
			wantOutstanding: "0",
			wantProgress:    120,
		},
		{
			name:            "no fees at all",
			wantTotalFees:   "0",
			wantTotalPaid:   "0",
			wantOutstanding: "0",
			wantProgress:    0, // zero-guarded, no division by zero
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.fees, BuildLedger(tt.payments))

			if !got.TotalFees.Equal(amt(t, tt.wantTotalFees)) {
				t.Errorf("TotalFees = %s, want %s", got.TotalFees, tt.wantTotalFees)
			}
			if !got.TotalPaid.Equal(amt(t, tt.wantTotalPaid)) {
				t.Errorf("TotalPaid = %s, want %s", got.TotalPaid, tt.wantTotalPaid)
			}
			if !got.Outstanding.Equal(amt(t, tt.wantOutstanding)) {
				t.Errorf("Outstanding = %s, want %s", got.Outstanding, tt.wantOutstanding)
			}
			if got.Progress != tt.wantProgress {
				t.Errorf("Progress = %v, want %v", got.Progress, tt.wantProgress)
			}
		})
	}
}

func TestMethodByKey(t *testing.T) {
	tests := []struct {
		key         string
		wantOK      bool
		wantInstant bool
	}{
		{key: "mobile-money", wantOK: true, wantInstant: true},
		{key: "online-portal", wantOK: true, wantInstant: true},
		{key: "bank-transfer", wantOK: true, wantInstant: false},
		{key: "bank-branch", wantOK: true, wantInstant: false},
		{key: "crypto", wantOK: false},
		{key: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, ok := MethodByKey(tt.key)
			if ok != tt.wantOK {
				t.Fatalf("MethodByKey() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && m.Instant != tt.wantInstant {
				t.Errorf("Instant = %v, want %v", m.Instant, tt.wantInstant)
			}
		})
	}
}
