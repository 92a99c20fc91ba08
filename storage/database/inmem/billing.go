package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/elimuhq/elimu/core/billing"
)

type billingRepository struct {
	db *DB
}

var _ billing.Repository = (*billingRepository)(nil) // interface compliance check

func NewBillingRepository(db *DB) *billingRepository {
	return &billingRepository{db: db}
}

func (repo *billingRepository) QueryFees(ctx context.Context, studentID string) ([]billing.Fee, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	fees := make([]billing.Fee, 0)
	for _, fee := range repo.db.fees {
		if fee.StudentID == studentID {
			fees = append(fees, *fee)
		}
	}
	sort.Slice(fees, func(i, j int) bool { return fees[i].DueDate.After(fees[j].DueDate) })
	return fees, nil
}

func (repo *billingRepository) QueryPayments(ctx context.Context, studentID string) ([]billing.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	payments := make([]billing.Payment, 0)
	for _, pmt := range repo.db.payments {
		if pmt.StudentID == studentID {
			payments = append(payments, *pmt)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].PaidAt.After(payments[j].PaidAt) })
	return payments, nil
}

func (repo *billingRepository) CreatePayment(ctx context.Context, pmt billing.Payment) (billing.Payment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	pmt.ID = uuid.New().String()
	if pmt.PaidAt.IsZero() {
		pmt.PaidAt = time.Now().UTC()
	}
	repo.db.payments[pmt.ID] = &pmt
	return pmt, nil
}

// CreateFee is a fixture helper for tests and local seeding.
func (repo *billingRepository) CreateFee(ctx context.Context, fee billing.Fee) (billing.Fee, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	fee.ID = uuid.New().String()
	repo.db.fees[fee.ID] = &fee
	return fee, nil
}
