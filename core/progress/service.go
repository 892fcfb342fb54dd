package progress

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/warsha/core/lesson"
)

var nowFunc = time.Now // mockable

type Service struct {
	repo      Repository
	lessonSvc *lesson.Service
}

func NewService(repo Repository, lessonSvc *lesson.Service) *Service {
	return &Service{repo: repo, lessonSvc: lessonSvc}
}

// MarkComplete records `lessonID` as completed for (studentID, workshopID).
// Idempotent: marking an already-completed lesson does not grow the set but
// still succeeds and bumps UpdatedAt (the store's cache-invalidation marker).
// A storage failure is returned to the caller; the completion is never
// silently dropped.
func (svc *Service) MarkComplete(ctx context.Context, studentID, workshopID, lessonID string) (Record, error) {
	now := nowFunc().UTC()

	rec, err := svc.repo.GetProgress(ctx, studentID, workshopID)
	switch errors.Cause(err) {
	case nil:
	case ErrNotFound:
		// lazily created on first completion
		rec = Record{
			StudentID:          studentID,
			WorkshopID:         workshopID,
			CompletedLessonIDs: []string{},
			CreatedAt:          now,
		}
	default:
		return Record{}, errors.Wrap(err, "reading progress")
	}

	if !rec.Completed(lessonID) {
		rec.CompletedLessonIDs = append(rec.CompletedLessonIDs, lessonID)
	}
	rec.UpdatedAt = now

	rec, err = svc.repo.UpsertProgress(ctx, rec)
	if err != nil {
		return Record{}, errors.Wrap(err, "writing progress")
	}
	return rec, nil
}

// Get returns the record for (studentID, workshopID); an absent record is an
// empty ledger, not an error.
func (svc *Service) Get(ctx context.Context, studentID, workshopID string) (Record, error) {
	rec, err := svc.repo.GetProgress(ctx, studentID, workshopID)
	switch errors.Cause(err) {
	case nil:
		return rec, nil
	case ErrNotFound:
		return Record{StudentID: studentID, WorkshopID: workshopID}, nil
	default:
		return Record{}, errors.Wrap(err, "reading progress")
	}
}

// WorkshopCompletion computes the student's completion percentage against the
// workshop's current lesson collection.
func (svc *Service) WorkshopCompletion(ctx context.Context, studentID, workshopID string) (int, error) {
	rec, err := svc.Get(ctx, studentID, workshopID)
	if err != nil {
		return 0, err
	}
	lessons, err := svc.lessonSvc.WorkshopLessons(ctx, workshopID)
	if err != nil {
		return 0, errors.Wrap(err, "reading workshop lessons")
	}
	return CompletionPercentage(rec.CompletedLessonIDs, lesson.IDs(lessons)), nil
}

// CompletionPercentage is |completed ∩ current| / |current| as a rounded
// percent. Completed lessons no longer in the current collection do not
// count (a removed lesson must not inflate the result past 100); an empty
// current collection is 0, never a division by zero.
func CompletionPercentage(completed, current []string) int {
	if len(current) == 0 {
		return 0
	}
	set := make(map[string]bool, len(completed))
	for _, id := range completed {
		set[id] = true
	}
	var done int
	for _, id := range current {
		if set[id] {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(current)) * 100))
}
