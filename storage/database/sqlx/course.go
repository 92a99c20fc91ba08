package sqlxrepos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/elimuhq/elimu/core"
	"github.com/elimuhq/elimu/core/course"
)

type courseRow struct {
	ID       string `db:"id"`
	Title    string `db:"title"`
	Code     string `db:"code"`
	Credits  int    `db:"credits"`
	Semester string `db:"semester"`
	Year     string `db:"year"`
}

type enrollmentRow struct {
	ID         string    `db:"id"`
	StudentID  string    `db:"student_id"`
	CourseID   string    `db:"course_id"`
	Status     string    `db:"status"`
	EnrolledAt time.Time `db:"enrolled_at"`

	Course courseRow `db:"course"`
}

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) unrowCourse(row courseRow) course.Course {
	return course.Course{
		ID:       row.ID,
		Title:    row.Title,
		Code:     row.Code,
		Credits:  row.Credits,
		Semester: row.Semester,
		Year:     row.Year,
	}
}

func (repo courseRepository) unrowEnrollment(row enrollmentRow) course.Enrollment {
	return course.Enrollment{
		ID:         row.ID,
		StudentID:  row.StudentID,
		CourseID:   row.CourseID,
		Status:     row.Status,
		EnrolledAt: row.EnrolledAt,
		Course:     repo.unrowCourse(row.Course),
	}
}

func (repo courseRepository) QueryCourses(ctx context.Context, filter *course.QueryFilter, ordering []core.DBOrdering) ([]course.Course, error) {
	query := `SELECT * FROM course`
	var conds []string
	var args []interface{}

	if filter != nil {
		if filter.Search != "" {
			args = append(args, "%"+filter.Search+"%")
			conds = append(conds, "(title ILIKE $1 OR code ILIKE $1)")
		}
		if filter.Semester != "" {
			args = append(args, filter.Semester)
			conds = append(conds, "semester = $"+itoa(len(args)))
		}
		if filter.Year != "" {
			args = append(args, filter.Year)
			conds = append(conds, "year = $"+itoa(len(args)))
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	if len(ordering) > 0 {
		orderList := make([]string, 0, len(ordering))
		for _, ord := range ordering {
			orderList = append(orderList, ord.String())
		}
		query += " ORDER BY " + strings.Join(orderList, ", ")
	} else {
		query += " ORDER BY code ASC"
	}

	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, repo.unrowCourse(row))
	}
	return courses, nil
}

func (repo courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	if _, err := uuid.Parse(id); err != nil {
		return course.Course{}, course.ErrNotFound
	}
	var row courseRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM course WHERE id = $1`, id); err != nil {
		return course.Course{}, trapNoRowsErrAs(err, course.ErrNotFound, "finding course")
	}
	return repo.unrowCourse(row), nil
}

func (repo courseRepository) QueryEnrollments(ctx context.Context, studentID string) ([]course.Enrollment, error) {
	var rows []enrollmentRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT e.id, e.student_id, e.course_id, e.status, e.enrolled_at,
		       c.id AS "course.id", c.title AS "course.title", c.code AS "course.code",
		       c.credits AS "course.credits", c.semester AS "course.semester", c.year AS "course.year"
		FROM enrollment e
		         JOIN course c ON c.id = e.course_id
		WHERE e.student_id = $1
		ORDER BY e.enrolled_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying enrollments")
	}
	enrollments := make([]course.Enrollment, 0, len(rows))
	for _, row := range rows {
		enrollments = append(enrollments, repo.unrowEnrollment(row))
	}
	return enrollments, nil
}

func (repo courseRepository) CreateEnrollment(ctx context.Context, enr course.Enrollment) (course.Enrollment, error) {
	enr.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO enrollment (id, student_id, course_id, status, enrolled_at)
		VALUES ($1, $2, $3, $4, $5)`,
		enr.ID, enr.StudentID, enr.CourseID, enr.Status, enr.EnrolledAt.UTC(),
	)
	if err != nil {
		return course.Enrollment{}, errors.Wrap(err, "inserting enrollment")
	}
	return enr, nil
}
