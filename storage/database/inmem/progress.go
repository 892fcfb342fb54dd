package inmem

import (
	"context"
	"sync"

	"github.com/trezcool/warsha/core/progress"
)

type progressKey struct {
	studentID  string
	workshopID string
}

// progressRepository is an in-memory progress.Repository for tests and local dev.
type progressRepository struct {
	mutex sync.RWMutex
	recs  map[progressKey]*progress.Record
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository() *progressRepository {
	return &progressRepository{
		recs: make(map[progressKey]*progress.Record),
	}
}

func (repo *progressRepository) GetProgress(_ context.Context, studentID, workshopID string) (progress.Record, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	if rec, ok := repo.recs[progressKey{studentID, workshopID}]; ok {
		cp := *rec
		cp.CompletedLessonIDs = append([]string(nil), rec.CompletedLessonIDs...)
		return cp, nil
	}
	return progress.Record{}, progress.ErrNotFound
}

func (repo *progressRepository) UpsertProgress(_ context.Context, rec progress.Record) (progress.Record, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	cp := rec
	cp.CompletedLessonIDs = append([]string(nil), rec.CompletedLessonIDs...)
	repo.recs[progressKey{rec.StudentID, rec.WorkshopID}] = &cp
	return rec, nil
}
