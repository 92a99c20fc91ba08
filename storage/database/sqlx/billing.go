package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/elimuhq/elimu/core/billing"
)

type feeRow struct {
	ID           string          `db:"id"`
	StudentID    string          `db:"student_id"`
	Amount       decimal.Decimal `db:"amount"`
	DueDate      time.Time       `db:"due_date"`
	Semester     string          `db:"semester"`
	AcademicYear string          `db:"academic_year"`
	Description  string          `db:"description"`
}

type paymentRow struct {
	ID             string          `db:"id"`
	FeeID          string          `db:"fee_id"`
	StudentID      string          `db:"student_id"`
	Amount         decimal.Decimal `db:"amount"`
	PaidAt         time.Time       `db:"paid_at"`
	Method         string          `db:"payment_method"`
	Status         string          `db:"status"`
	TransactionRef string          `db:"transaction_ref"`
}

type billingRepository struct {
	db *sqlx.DB
}

var _ billing.Repository = (*billingRepository)(nil) // interface compliance check

func NewBillingRepository(db *sqlx.DB) *billingRepository {
	return &billingRepository{db: db}
}

func (repo billingRepository) unrowFee(row feeRow) billing.Fee {
	return billing.Fee{
		ID:           row.ID,
		StudentID:    row.StudentID,
		Amount:       row.Amount,
		DueDate:      row.DueDate,
		Semester:     row.Semester,
		AcademicYear: row.AcademicYear,
		Description:  row.Description,
	}
}

func (repo billingRepository) unrowPayment(row paymentRow) billing.Payment {
	return billing.Payment{
		ID:             row.ID,
		FeeID:          row.FeeID,
		StudentID:      row.StudentID,
		Amount:         row.Amount,
		PaidAt:         row.PaidAt,
		Method:         row.Method,
		Status:         row.Status,
		TransactionRef: row.TransactionRef,
	}
}

func (repo billingRepository) QueryFees(ctx context.Context, studentID string) ([]billing.Fee, error) {
	var rows []feeRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM fee WHERE student_id = $1 ORDER BY due_date DESC`,
		studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying fees")
	}
	fees := make([]billing.Fee, 0, len(rows))
	for _, row := range rows {
		fees = append(fees, repo.unrowFee(row))
	}
	return fees, nil
}

func (repo billingRepository) QueryPayments(ctx context.Context, studentID string) ([]billing.Payment, error) {
	var rows []paymentRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM payment WHERE student_id = $1 ORDER BY paid_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying payments")
	}
	payments := make([]billing.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, repo.unrowPayment(row))
	}
	return payments, nil
}

func (repo billingRepository) CreatePayment(ctx context.Context, pmt billing.Payment) (billing.Payment, error) {
	pmt.ID = uuid.New().String()
	if pmt.PaidAt.IsZero() {
		pmt.PaidAt = time.Now().UTC()
	}
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO payment (id, fee_id, student_id, amount, paid_at, payment_method, status, transaction_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		pmt.ID, pmt.FeeID, pmt.StudentID, pmt.Amount, pmt.PaidAt.UTC(), pmt.Method, pmt.Status, pmt.TransactionRef,
	)
	if err != nil {
		return billing.Payment{}, errors.Wrap(err, "inserting payment")
	}
	return pmt, nil
}

// CreateFee is used by the admin CLI to seed fee lines.
func (repo billingRepository) CreateFee(ctx context.Context, fee billing.Fee) (billing.Fee, error) {
	fee.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO fee (id, student_id, amount, due_date, semester, academic_year, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		fee.ID, fee.StudentID, fee.Amount, fee.DueDate, fee.Semester, fee.AcademicYear, fee.Description,
	)
	if err != nil {
		return billing.Fee{}, errors.Wrap(err, "inserting fee")
	}
	return fee, nil
}
