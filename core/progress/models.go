package progress

import (
	"context"
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound = errors.New("progress record not found")
)

type (
	// Record is the durable per-student-per-workshop completion ledger entry.
	// One record per (student, workshop), not one per lesson: reads stay a
	// single fetch and repeated completion marking stays a trivial set insert.
	Record struct {
		StudentID          string    `json:"student_id"`
		WorkshopID         string    `json:"workshop_id"`
		CompletedLessonIDs []string  `json:"completed_lesson_ids"`
		CreatedAt          time.Time `json:"created_at"`
		UpdatedAt          time.Time `json:"updated_at"`
	}

	Repository interface {
		GetProgress(ctx context.Context, studentID, workshopID string) (Record, error)
		// UpsertProgress writes the whole record; creates it if absent.
		UpsertProgress(ctx context.Context, rec Record) (Record, error)
	}
)

// Completed reports whether `lessonID` is in the record's completed set.
func (r Record) Completed(lessonID string) bool {
	for _, id := range r.CompletedLessonIDs {
		if id == lessonID {
			return true
		}
	}
	return false
}
