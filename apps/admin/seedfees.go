package main

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elimuhq/elimu/core"
	"github.com/elimuhq/elimu/core/billing"
)

// seedFee creates a billing.Fee for a student.
func (cli *commandLine) seedFee(studentID, amount, due, semester, year, description string) error {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	if amt.IsNegative() {
		return errors.New("amount must not be negative")
	}
	dueDate, err := time.Parse("2006-01-02", due)
	if err != nil {
		return err
	}

	fee := billing.Fee{
		StudentID:    core.CleanString(studentID, true /* lower */),
		Amount:       amt,
		DueDate:      dueDate.UTC(),
		Semester:     core.CleanString(semester),
		AcademicYear: core.CleanString(year),
		Description:  core.CleanString(description),
	}
	if _, err := cli.feeRepo.CreateFee(context.Background(), fee); err != nil {
		return err
	}
	return nil
}
