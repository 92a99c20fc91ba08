package billing

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/mail"
	"time"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/elimuhq/elimu/core"
	"github.com/elimuhq/elimu/core/course"
	"github.com/elimuhq/elimu/core/user"
)

var (
	// NowFunc and RandIntFunc are mockable in tests.
	NowFunc     = time.Now
	RandIntFunc = rand.Intn

	// errors
	ErrUnknownMethod        = errors.New("unknown payment method")
	ErrNoOutstandingBalance = errors.New("all fees are settled; there is nothing to pay")
	ErrNothingToPay         = errors.New("the selected fee has no outstanding amount")
)

type (
	Repository interface {
		// QueryFees returns the student's fees ordered by dueDate descending.
		QueryFees(ctx context.Context, studentID string) ([]Fee, error)
		// QueryPayments returns the student's payments ordered by paidAt descending.
		QueryPayments(ctx context.Context, studentID string) ([]Payment, error)
		// CreatePayment persists a new payment and returns it with
		// server-assigned fields (ID, PaidAt) filled in.
		CreatePayment(ctx context.Context, pmt Payment) (Payment, error)
	}

	// EnrollmentLister is the slice of course.Repository the statement
	// assembly needs.
	EnrollmentLister interface {
		QueryEnrollments(ctx context.Context, studentID string) ([]course.Enrollment, error)
	}

	Service struct {
		repo     Repository
		enrRepo  EnrollmentLister
		mailSvc  core.EmailService
		notifier core.Notifier
		conf     *core.Config
	}
)

func NewService(repo Repository, enrRepo EnrollmentLister, mailSvc core.EmailService, notifier core.Notifier, conf *core.Config) *Service {
	return &Service{
		repo:     repo,
		enrRepo:  enrRepo,
		mailSvc:  mailSvc,
		notifier: notifier,
		conf:     conf,
	}
}

// Statement fetches the student's fees, payments and enrollments
// concurrently, then derives every aggregate from the joined snapshot.
// The three reads have no ordering guarantee between them; the errgroup
// barrier ensures no aggregate is ever computed from a partial snapshot.
func (svc *Service) Statement(ctx context.Context, studentID string) (Statement, error) {
	var (
		fees        []Fee
		payments    []Payment
		enrollments []course.Enrollment
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		fees, err = svc.repo.QueryFees(ctx, studentID)
		return pkgerrors.Wrap(err, "querying fees")
	})
	g.Go(func() (err error) {
		payments, err = svc.repo.QueryPayments(ctx, studentID)
		return pkgerrors.Wrap(err, "querying payments")
	})
	g.Go(func() (err error) {
		enrollments, err = svc.enrRepo.QueryEnrollments(ctx, studentID)
		return pkgerrors.Wrap(err, "querying enrollments")
	})
	if err := g.Wait(); err != nil {
		return Statement{}, err
	}

	return assembleStatement(fees, payments, enrollments), nil
}

func assembleStatement(fees []Fee, payments []Payment, enrollments []course.Enrollment) Statement {
	ledger := BuildLedger(payments)
	return Statement{
		Fees:        fees,
		Payments:    payments,
		Enrollments: enrollments,
		Summary:     Summarize(fees, ledger),
		Breakdowns:  BuildBreakdowns(enrollments, fees, ledger),
	}
}

// InitiatePayment settles the next outstanding fee through the given
// payment channel:
// the first fee (due date descending) with an outstanding amount is
// selected, the full remainder is charged, and the payment is persisted
// as completed for instant channels or pending otherwise. Nothing is
// mutated if the insert fails.
func (svc *Service) InitiatePayment(ctx context.Context, student user.User, methodKey string) (Payment, error) {
	method, ok := MethodByKey(methodKey)
	if !ok {
		return Payment{}, core.NewValidationError(
			ErrUnknownMethod, core.FieldError{Field: "method", Error: ErrUnknownMethod.Error()})
	}

	fees, err := svc.repo.QueryFees(ctx, student.ID)
	if err != nil {
		return Payment{}, pkgerrors.Wrap(err, "querying fees")
	}
	payments, err := svc.repo.QueryPayments(ctx, student.ID)
	if err != nil {
		return Payment{}, pkgerrors.Wrap(err, "querying payments")
	}
	ledger := BuildLedger(payments)

	target, found := selectTargetFee(fees, ledger)
	if !found {
		return Payment{}, ErrNoOutstandingBalance
	}
	amount := outstandingFor(target, ledger)
	if !amount.IsPositive() { // selectTargetFee should preclude this
		return Payment{}, ErrNothingToPay
	}

	status := StatusPending
	if method.Instant {
		status = StatusCompleted
	}
	pmt := Payment{
		FeeID:          target.ID,
		StudentID:      student.ID,
		Amount:         amount,
		PaidAt:         NowFunc().UTC(),
		Method:         method.Name,
		Status:         status,
		TransactionRef: newTransactionRef(method.Key),
	}

	pmt, err = svc.repo.CreatePayment(ctx, pmt)
	if err != nil {
		return Payment{}, pkgerrors.Wrap(err, "creating payment")
	}

	svc.notifyPayment(student, pmt)
	return pmt, nil
}

// selectTargetFee picks the first fee, in the caller-supplied order, that
// still has an outstanding amount.
func selectTargetFee(fees []Fee, ledger Ledger) (Fee, bool) {
	for _, fee := range fees {
		if outstandingFor(fee, ledger).IsPositive() {
			return fee, true
		}
	}
	return Fee{}, false
}

// newTransactionRef synthesizes a human-readable reference. Uniqueness is
// best-effort; collisions are not checked.
func newTransactionRef(methodKey string) string {
	return fmt.Sprintf("PAY-%s-%d-%d", methodKey, NowFunc().Unix(), 100+RandIntFunc(900))
}

func (svc *Service) notifyPayment(student user.User, pmt Payment) {
	msg := fmt.Sprintf("Payment of %s %s via %s (%s)",
		svc.conf.Currency, pmt.Amount.StringFixed(2), pmt.Method, pmt.TransactionRef)
	if pmt.Status == StatusPending {
		msg += " is awaiting settlement"
	}

	if svc.notifier != nil {
		level := core.NoticeSuccess
		if pmt.Status == StatusPending {
			level = core.NoticeInfo
		}
		svc.notifier.Notify(student.ID, core.Notice{Level: level, Message: msg})
	}

	if svc.mailSvc != nil && student.Email != "" {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: student.Name, Address: student.Email}},
			Subject: "Payment receipt " + pmt.TransactionRef,
			BodyStr: msg,
		})
	}
}
