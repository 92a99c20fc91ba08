package course

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/elimuhq/elimu/core"
)

// Enrollment statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusDropped   = "dropped"
)

type Course struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Code     string `json:"code"`
	Credits  int    `json:"credits"`
	Semester string `json:"semester"`
	Year     string `json:"year"`
}

// Enrollment links a student to a course. The embedded Course is always
// populated by repositories so consumers never re-fetch it.
type Enrollment struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	CourseID   string    `json:"course_id"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolled_at"` // UTC
	Course     Course    `json:"course"`
}

// NewEnrollment contains information needed to enroll a student in a course.
type NewEnrollment struct {
	CourseID string `json:"course_id" validate:"required,uuid4"`
}

func (ne *NewEnrollment) Validate(validate *validator.Validate) error {
	ne.CourseID = core.CleanString(ne.CourseID, true /* lower */)
	return validate.Struct(ne)
}

type QueryFilter struct {
	Search   string `query:"search"`
	Semester string `query:"semester"`
	Year     string `query:"year"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Semester == "" && qf.Year == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Semester = core.CleanString(qf.Semester)
	qf.Year = core.CleanString(qf.Year)
}

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.RegisterCustomTranslation(validate, translator, "uuid4", "must be a valid identifier")
}
