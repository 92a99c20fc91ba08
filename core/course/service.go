package course

import (
	"context"
	"errors"
	"time"

	"github.com/elimuhq/elimu/core"
)

var (
	// errors
	ErrNotFound        = errors.New("course not found")
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this course")
)

type (
	Repository interface {
		QueryCourses(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		// QueryEnrollments returns the student's enrollments with the Course
		// embedded, ordered by enrolledAt descending.
		QueryEnrollments(ctx context.Context, studentID string) ([]Enrollment, error)
		CreateEnrollment(ctx context.Context, enr Enrollment) (Enrollment, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryCourses(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Course, error) {
	return svc.repo.QueryCourses(ctx, filter, ordering)
}

func (svc *Service) GetCourse(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) QueryEnrollments(ctx context.Context, studentID string) ([]Enrollment, error) {
	return svc.repo.QueryEnrollments(ctx, studentID)
}

// Enroll registers studentID into the course. Duplicate enrollments are
// rejected as a field error on course_id.
func (svc *Service) Enroll(ctx context.Context, studentID string, ne NewEnrollment) (Enrollment, error) {
	crs, err := svc.repo.GetCourseByID(ctx, ne.CourseID)
	if err != nil {
		return Enrollment{}, err
	}

	existing, err := svc.repo.QueryEnrollments(ctx, studentID)
	if err != nil {
		return Enrollment{}, err
	}
	for _, enr := range existing {
		if enr.CourseID == crs.ID && enr.Status != StatusDropped {
			return Enrollment{}, core.NewValidationError(
				ErrAlreadyEnrolled, core.FieldError{Field: "course_id", Error: ErrAlreadyEnrolled.Error()})
		}
	}

	enr := Enrollment{
		StudentID:  studentID,
		CourseID:   crs.ID,
		Status:     StatusActive,
		EnrolledAt: time.Now().UTC(),
		Course:     crs,
	}
	return svc.repo.CreateEnrollment(ctx, enr)
}
