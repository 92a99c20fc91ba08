package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elimuhq/elimu/core/billing"
	"github.com/elimuhq/elimu/core/course"
	"github.com/elimuhq/elimu/core/user"
)

type (
	courseCreator interface {
		CreateCourse(ctx context.Context, crs course.Course) (course.Course, error)
	}
	enrollmentCreator interface {
		CreateEnrollment(ctx context.Context, enr course.Enrollment) (course.Enrollment, error)
	}
	feeCreator interface {
		CreateFee(ctx context.Context, fee billing.Fee) (billing.Fee, error)
	}
	paymentCreator interface {
		CreatePayment(ctx context.Context, pmt billing.Payment) (billing.Payment, error)
	}
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	usr.SetActive(isActive)
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateCourse(
	t *testing.T,
	repo courseCreator,
	title, code string,
	credits int,
	semester, year string,
) course.Course {
	t.Helper()

	crs, err := repo.CreateCourse(context.Background(), course.Course{
		Title:    title,
		Code:     code,
		Credits:  credits,
		Semester: semester,
		Year:     year,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateEnrollment(
	t *testing.T,
	repo enrollmentCreator,
	studentID string,
	crs course.Course,
) course.Enrollment {
	t.Helper()

	enr, err := repo.CreateEnrollment(context.Background(), course.Enrollment{
		StudentID:  studentID,
		CourseID:   crs.ID,
		Status:     course.StatusActive,
		EnrolledAt: time.Now().UTC(),
		Course:     crs,
	})
	if err != nil {
		t.Fatalf("CreateEnrollment() failed: %v", err)
	}
	return enr
}

func CreateFee(
	t *testing.T,
	repo feeCreator,
	studentID, amount string,
	dueDate time.Time,
	semester, year string,
) billing.Fee {
	t.Helper()

	fee, err := repo.CreateFee(context.Background(), billing.Fee{
		StudentID:    studentID,
		Amount:       Amount(t, amount),
		DueDate:      dueDate.UTC(),
		Semester:     semester,
		AcademicYear: year,
	})
	if err != nil {
		t.Fatalf("CreateFee() failed: %v", err)
	}
	return fee
}

func CreatePayment(
	t *testing.T,
	repo paymentCreator,
	fee billing.Fee,
	amount, method, status string,
	paidAt ...time.Time,
) billing.Payment {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(paidAt) > 0 {
		tstamp = paidAt[0].UTC()
	}
	pmt, err := repo.CreatePayment(context.Background(), billing.Payment{
		FeeID:     fee.ID,
		StudentID: fee.StudentID,
		Amount:    Amount(t, amount),
		PaidAt:    tstamp,
		Method:    method,
		Status:    status,
	})
	if err != nil {
		t.Fatalf("CreatePayment() failed: %v", err)
	}
	return pmt
}

// Amount parses a decimal string or fails the test.
func Amount(t *testing.T, val string) decimal.Decimal {
	t.Helper()

	amt, err := decimal.NewFromString(val)
	if err != nil {
		t.Fatalf("Amount(%q) failed: %v", val, err)
	}
	return amt
}
