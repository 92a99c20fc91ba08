package billing

import (
	"testing"

	"github.com/elimuhq/elimu/core/course"
)

func TestBuildBreakdowns(t *testing.T) {
	enrollments := []course.Enrollment{
		{ID: "enr1", Course: course.Course{ID: "crs1", Title: "Algorithms", Semester: "Semester 1"}},
		{ID: "enr2", Course: course.Course{ID: "crs2", Title: "Databases", Semester: "Semester 1"}},
		{ID: "enr3", Course: course.Course{ID: "crs3", Title: "Networks", Semester: "Semester 2"}},
	}
	fees := []Fee{
		{ID: "fee1", Amount: amt(t, "1000"), Semester: "Semester 1"},
		{ID: "fee2", Amount: amt(t, "400"), Semester: "Semester 2"},
		{ID: "fee3", Amount: amt(t, "999"), Semester: "Semester 3"}, // no matching course
	}
	ledger := BuildLedger([]Payment{
		{FeeID: "fee1", Amount: amt(t, "250"), Status: StatusCompleted},
		{FeeID: "fee2", Amount: amt(t, "400"), Status: StatusCompleted},
	})

	breakdowns := BuildBreakdowns(enrollments, fees, ledger)
	if len(breakdowns) != len(enrollments) {
		t.Fatalf("len(breakdowns) = %d, want %d", len(breakdowns), len(enrollments))
	}

	// fees join on the semester label: both Semester 1 courses see fee1
	for _, i := range []int{0, 1} {
		bd := breakdowns[i]
		if len(bd.Lines) != 1 || bd.Lines[0].Fee.ID != "fee1" {
			t.Fatalf("breakdowns[%d].Lines = %+v, want fee1 only", i, bd.Lines)
		}
		if !bd.TotalCost.Equal(amt(t, "1000")) {
			t.Errorf("breakdowns[%d].TotalCost = %s, want 1000", i, bd.TotalCost)
		}
		if !bd.TotalPaid.Equal(amt(t, "250")) {
			t.Errorf("breakdowns[%d].TotalPaid = %s, want 250", i, bd.TotalPaid)
		}
		if !bd.Remaining.Equal(amt(t, "750")) {
			t.Errorf("breakdowns[%d].Remaining = %s, want 750", i, bd.Remaining)
		}
		if bd.Settled {
			t.Errorf("breakdowns[%d].Settled = true, want false", i)
		}
	}

	// fully paid semester
	bd := breakdowns[2]
	if len(bd.Lines) != 1 || bd.Lines[0].Fee.ID != "fee2" {
		t.Fatalf("breakdowns[2].Lines = %+v, want fee2 only", bd.Lines)
	}
	if !bd.Remaining.Equal(amt(t, "0")) {
		t.Errorf("breakdowns[2].Remaining = %s, want 0", bd.Remaining)
	}
	if !bd.Settled {
		t.Error("breakdowns[2].Settled = false, want true")
	}
}

func TestBuildBreakdowns_noFees(t *testing.T) {
	enrollments := []course.Enrollment{
		{ID: "enr1", Course: course.Course{ID: "crs1", Semester: "Semester 1"}},
	}

	breakdowns := BuildBreakdowns(enrollments, nil, Ledger{})
	if len(breakdowns) != 1 {
		t.Fatalf("len(breakdowns) = %d, want 1", len(breakdowns))
	}
	bd := breakdowns[0]
	if len(bd.Lines) != 0 {
		t.Errorf("Lines = %+v, want none", bd.Lines)
	}
	if !bd.Settled {
		t.Error("Settled = false, want true") // nothing owed
	}
}

func Test_feeLine(t *testing.T) {
	fee := Fee{ID: "fee1", Amount: amt(t, "1000")}

	tests := []struct {
		name         string
		paid         string
		wantProgress float64
		wantPaid     bool
		wantPartial  bool
	}{
		{name: "unpaid", paid: "0", wantProgress: 0},
		{name: "partial", paid: "250", wantProgress: 25, wantPartial: true},
		{name: "paid in full", paid: "1000", wantProgress: 100, wantPaid: true},
		{name: "overpaid clamps to 100", paid: "1200", wantProgress: 100, wantPaid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := feeLine(fee, amt(t, tt.paid))

			if line.Progress != tt.wantProgress {
				t.Errorf("Progress = %v, want %v", line.Progress, tt.wantProgress)
			}
			if line.IsPaid != tt.wantPaid {
				t.Errorf("IsPaid = %v, want %v", line.IsPaid, tt.wantPaid)
			}
			if line.IsPartial != tt.wantPartial {
				t.Errorf("IsPartial = %v, want %v", line.IsPartial, tt.wantPartial)
			}
		})
	}

	t.Run("zero-amount fee has zero progress", func(t *testing.T) {
		line := feeLine(Fee{ID: "fee0", Amount: amt(t, "0")}, amt(t, "0"))
		if line.Progress != 0 {
			t.Errorf("Progress = %v, want 0", line.Progress)
		}
		if !line.IsPaid {
			t.Error("IsPaid = false, want true") // nothing left to pay
		}
	})
}
