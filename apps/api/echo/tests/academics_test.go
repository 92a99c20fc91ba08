package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/elimuhq/elimu/core/academics"
	"github.com/elimuhq/elimu/core/course"
	"github.com/elimuhq/elimu/core/user"
	testutil "github.com/elimuhq/elimu/tests"
)

func createGrade(t *testing.T, studentID string, crs course.Course, score float64) academics.Grade {
	t.Helper()

	grd, err := acadRepo.CreateGrade(context.Background(), academics.Grade{
		StudentID:    studentID,
		Course:       crs,
		Score:        score,
		Semester:     crs.Semester,
		AcademicYear: crs.Year,
		GradedAt:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createGrade() failed: %v", err)
	}
	return grd
}

func Test_academicsApi(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Jane", "janedoe", "jane@test.ug", "", user.StudentRoles, true)
	lecturer := testutil.CreateUser(t, usrRepo, "John", "johndoe", "john@test.ug", "", user.LecturerRoles, true)

	algo := testutil.CreateCourse(t, crsRepo, "Algorithms", "CS201", 4, "Semester 1", "2025/2026")
	db := testutil.CreateCourse(t, crsRepo, "Databases", "CS202", 2, "Semester 1", "2025/2026")
	createGrade(t, student.ID, algo, 85) // A, 5.0
	createGrade(t, student.ID, db, 62)   // C, 3.0

	t.Run("Auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/academics/gpa")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("Students only", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/academics/grades", getToken(t, lecturer))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		}, rec)
	})

	t.Run("Get grades", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/academics/grades", getToken(t, student))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var grades []academics.Grade
		if err := json.Unmarshal(rec.Body.Bytes(), &grades); err != nil {
			t.Fatalf("unmarshalling grades: %v", err)
		}
		if len(grades) != 2 {
			t.Errorf("len(grades) = %d, want 2", len(grades))
		}
	})

	t.Run("Get transcript", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/academics/gpa", getToken(t, student))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var transcript academics.Transcript
		if err := json.Unmarshal(rec.Body.Bytes(), &transcript); err != nil {
			t.Fatalf("unmarshalling transcript: %v", err)
		}

		wantCGPA := (5.0*4 + 3.0*2) / 6
		if transcript.CGPA != wantCGPA {
			t.Errorf("CGPA = %v, want %v", transcript.CGPA, wantCGPA)
		}
		if len(transcript.Terms) != 1 {
			t.Fatalf("len(Terms) = %d, want 1", len(transcript.Terms))
		}
		term := transcript.Terms[0]
		if term.Courses != 2 || term.Credits != 6 {
			t.Errorf("term = %+v, want 2 courses / 6 credits", term)
		}
	})
}
