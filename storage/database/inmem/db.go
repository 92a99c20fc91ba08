package inmemdb

import (
	"sync"

	"github.com/elimuhq/elimu/core/academics"
	"github.com/elimuhq/elimu/core/billing"
	"github.com/elimuhq/elimu/core/course"
	"github.com/elimuhq/elimu/core/user"
)

// DB is an in-memory record store, used by tests and local development.
// Each table is guarded by the shared lock; repositories hold a *DB.
type DB struct {
	sync.RWMutex

	users       map[string]*user.User
	courses     map[string]*course.Course
	enrollments map[string]*course.Enrollment
	fees        map[string]*billing.Fee
	payments    map[string]*billing.Payment
	grades      map[string]*academics.Grade
}

func Open() *DB {
	return &DB{
		users:       make(map[string]*user.User),
		courses:     make(map[string]*course.Course),
		enrollments: make(map[string]*course.Enrollment),
		fees:        make(map[string]*billing.Fee),
		payments:    make(map[string]*billing.Payment),
		grades:      make(map[string]*academics.Grade),
	}
}

// Reset empties every table.
func (db *DB) Reset() {
	db.Lock()
	defer db.Unlock()
	db.users = make(map[string]*user.User)
	db.courses = make(map[string]*course.Course)
	db.enrollments = make(map[string]*course.Enrollment)
	db.fees = make(map[string]*billing.Fee)
	db.payments = make(map[string]*billing.Payment)
	db.grades = make(map[string]*academics.Grade)
}
