package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/warsha/core/progress"
)

type dbProgress struct {
	StudentID          string         `db:"student_id"`
	WorkshopID         string         `db:"workshop_id"`
	CompletedLessonIDs pq.StringArray `db:"completed_lesson_ids"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func (p dbProgress) model() progress.Record {
	return progress.Record{
		StudentID:          p.StudentID,
		WorkshopID:         p.WorkshopID,
		CompletedLessonIDs: []string(p.CompletedLessonIDs),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{db: sqlx.NewDb(db, "postgres")}
}

func (repo progressRepository) GetProgress(ctx context.Context, studentID, workshopID string) (progress.Record, error) {
	var rec dbProgress
	err := repo.db.GetContext(ctx, &rec,
		`SELECT * FROM progress WHERE student_id = $1 AND workshop_id = $2`,
		studentID, workshopID,
	)
	if err != nil {
		return progress.Record{}, trapNoRowsErr(err, progress.ErrNotFound, "getting progress")
	}
	return rec.model(), nil
}

// UpsertProgress writes the whole ledger row. Last write wins at the field
// level; acceptable because the only mutation is idempotent set-insertion.
func (repo progressRepository) UpsertProgress(ctx context.Context, rec progress.Record) (progress.Record, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO progress (student_id, workshop_id, completed_lesson_ids, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (student_id, workshop_id)
		 DO UPDATE SET completed_lesson_ids = EXCLUDED.completed_lesson_ids, updated_at = EXCLUDED.updated_at`,
		rec.StudentID, rec.WorkshopID, pq.StringArray(rec.CompletedLessonIDs), rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return progress.Record{}, errors.Wrap(err, "upserting progress")
	}
	return rec, nil
}
