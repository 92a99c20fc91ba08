package academics

import (
	"context"
	"time"

	"github.com/elimuhq/elimu/core/course"
)

// Grade is one scored course result for a student.
type Grade struct {
	ID           string        `json:"id"`
	StudentID    string        `json:"student_id"`
	Course       course.Course `json:"course"`
	Score        float64       `json:"score"` // 0-100
	Semester     string        `json:"semester"`
	AcademicYear string        `json:"academic_year"`
	GradedAt     time.Time     `json:"graded_at"` // UTC
}

// TermResult is the derived per-term view: credit-weighted GPA over the
// term's graded courses. Recomputed from the grade snapshot on demand.
type TermResult struct {
	Semester     string  `json:"semester"`
	AcademicYear string  `json:"academic_year"`
	GPA          float64 `json:"gpa"`
	Credits      int     `json:"credits"`
	Courses      int     `json:"courses"`
}

// Transcript is the full derived academic view for one student.
type Transcript struct {
	Grades []Grade      `json:"grades"`
	Terms  []TermResult `json:"terms"`
	CGPA   float64      `json:"cgpa"`
}

type (
	Repository interface {
		// QueryGrades returns the student's grades ordered by gradedAt descending.
		QueryGrades(ctx context.Context, studentID string) ([]Grade, error)
		CreateGrade(ctx context.Context, grd Grade) (Grade, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryGrades(ctx context.Context, studentID string) ([]Grade, error) {
	return svc.repo.QueryGrades(ctx, studentID)
}

// Transcript fetches the student's grades and derives term GPAs and CGPA.
func (svc *Service) Transcript(ctx context.Context, studentID string) (Transcript, error) {
	grades, err := svc.repo.QueryGrades(ctx, studentID)
	if err != nil {
		return Transcript{}, err
	}
	return Transcript{
		Grades: grades,
		Terms:  TermResults(grades),
		CGPA:   CGPA(grades),
	}, nil
}

func (svc *Service) RecordGrade(ctx context.Context, grd Grade) (Grade, error) {
	if grd.GradedAt.IsZero() {
		grd.GradedAt = time.Now().UTC()
	}
	return svc.repo.CreateGrade(ctx, grd)
}
