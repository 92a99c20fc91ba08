package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/elimuhq/elimu/core/academics"
)

type gradeRow struct {
	ID           string    `db:"id"`
	StudentID    string    `db:"student_id"`
	Score        float64   `db:"score"`
	Semester     string    `db:"semester"`
	AcademicYear string    `db:"academic_year"`
	GradedAt     time.Time `db:"graded_at"`

	Course courseRow `db:"course"`
}

type academicsRepository struct {
	db *sqlx.DB
}

var _ academics.Repository = (*academicsRepository)(nil) // interface compliance check

func NewAcademicsRepository(db *sqlx.DB) *academicsRepository {
	return &academicsRepository{db: db}
}

func (repo academicsRepository) unrow(row gradeRow) academics.Grade {
	crsRepo := courseRepository{}
	return academics.Grade{
		ID:           row.ID,
		StudentID:    row.StudentID,
		Course:       crsRepo.unrowCourse(row.Course),
		Score:        row.Score,
		Semester:     row.Semester,
		AcademicYear: row.AcademicYear,
		GradedAt:     row.GradedAt,
	}
}

func (repo academicsRepository) QueryGrades(ctx context.Context, studentID string) ([]academics.Grade, error) {
	var rows []gradeRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT g.id, g.student_id, g.score, g.semester, g.academic_year, g.graded_at,
		       c.id AS "course.id", c.title AS "course.title", c.code AS "course.code",
		       c.credits AS "course.credits", c.semester AS "course.semester", c.year AS "course.year"
		FROM grade g
		         JOIN course c ON c.id = g.course_id
		WHERE g.student_id = $1
		ORDER BY g.graded_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}
	grades := make([]academics.Grade, 0, len(rows))
	for _, row := range rows {
		grades = append(grades, repo.unrow(row))
	}
	return grades, nil
}

func (repo academicsRepository) CreateGrade(ctx context.Context, grd academics.Grade) (academics.Grade, error) {
	grd.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO grade (id, student_id, course_id, score, semester, academic_year, graded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		grd.ID, grd.StudentID, grd.Course.ID, grd.Score, grd.Semester, grd.AcademicYear, grd.GradedAt.UTC(),
	)
	if err != nil {
		return academics.Grade{}, errors.Wrap(err, "inserting grade")
	}
	return grd, nil
}
