package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/elimuhq/elimu/core/academics"
)

type academicsRepository struct {
	db *DB
}

var _ academics.Repository = (*academicsRepository)(nil) // interface compliance check

func NewAcademicsRepository(db *DB) *academicsRepository {
	return &academicsRepository{db: db}
}

func (repo *academicsRepository) QueryGrades(ctx context.Context, studentID string) ([]academics.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	grades := make([]academics.Grade, 0)
	for _, grd := range repo.db.grades {
		if grd.StudentID == studentID {
			grades = append(grades, *grd)
		}
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].GradedAt.After(grades[j].GradedAt) })
	return grades, nil
}

func (repo *academicsRepository) CreateGrade(ctx context.Context, grd academics.Grade) (academics.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	grd.ID = uuid.New().String()
	repo.db.grades[grd.ID] = &grd
	return grd, nil
}
