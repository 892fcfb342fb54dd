package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/warsha/core"
	"github.com/trezcool/warsha/core/lesson"
)

type dbWorkshop struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type dbLesson struct {
	ID              string    `db:"id"`
	WorkshopID      string    `db:"workshop_id"`
	Title           string    `db:"title"`
	SourceURL       string    `db:"source_url"`
	DurationMinutes int       `db:"duration_minutes"`
	Position        int       `db:"position"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (l dbLesson) model() lesson.Lesson {
	return lesson.Lesson{
		ID:              l.ID,
		WorkshopID:      l.WorkshopID,
		Title:           l.Title,
		SourceURL:       l.SourceURL,
		DurationMinutes: l.DurationMinutes,
		Position:        l.Position,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

type lessonRepository struct {
	db *sqlx.DB
}

var _ lesson.Repository = (*lessonRepository)(nil) // interface compliance check

func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{db: sqlx.NewDb(db, "postgres")}
}

// trapNoRowsErr maps psql "no rows" err to the domain not-found error
func trapNoRowsErr(err, notFound error, msg string) error {
	if err == sql.ErrNoRows {
		return notFound
	}
	return errors.Wrap(err, msg)
}

func (repo lessonRepository) CreateWorkshop(ctx context.Context, wsh lesson.Workshop) (lesson.Workshop, error) {
	if wsh.ID == "" {
		wsh.ID = uuid.New().String()
	}
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO workshop (id, title, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		wsh.ID, wsh.Title, wsh.CreatedAt, wsh.UpdatedAt,
	)
	if err != nil {
		return lesson.Workshop{}, errors.Wrap(err, "inserting workshop")
	}
	return wsh, nil
}

func (repo lessonRepository) GetWorkshopByID(ctx context.Context, id string) (lesson.Workshop, error) {
	var wsh dbWorkshop
	err := repo.db.GetContext(ctx, &wsh, `SELECT * FROM workshop WHERE id = $1`, id)
	if err != nil {
		return lesson.Workshop{}, trapNoRowsErr(err, lesson.ErrWorkshopNotFound, "getting workshop by ID")
	}
	return lesson.Workshop{ID: wsh.ID, Title: wsh.Title, CreatedAt: wsh.CreatedAt, UpdatedAt: wsh.UpdatedAt}, nil
}

func (repo lessonRepository) CreateLesson(ctx context.Context, les lesson.Lesson) (lesson.Lesson, error) {
	if les.ID == "" {
		les.ID = uuid.New().String()
	}
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO lesson (id, workshop_id, title, source_url, duration_minutes, position, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		les.ID, les.WorkshopID, les.Title, les.SourceURL, les.DurationMinutes, les.Position, les.CreatedAt, les.UpdatedAt,
	)
	if err != nil {
		return lesson.Lesson{}, errors.Wrap(err, "inserting lesson")
	}
	return les, nil
}

func (repo lessonRepository) GetLessonByID(ctx context.Context, id string) (lesson.Lesson, error) {
	var les dbLesson
	err := repo.db.GetContext(ctx, &les, `SELECT * FROM lesson WHERE id = $1`, id)
	if err != nil {
		return lesson.Lesson{}, trapNoRowsErr(err, lesson.ErrNotFound, "getting lesson by ID")
	}
	return les.model(), nil
}

// orderBy whitelists orderable columns; anything else falls back to position.
func orderBy(ordering []core.DBOrdering) string {
	allowed := map[string]bool{"position": true, "title": true, "created_at": true, "duration_minutes": true}
	ord := core.DBOrdering{Field: "position", Ascending: true}
	if len(ordering) > 0 && allowed[ordering[0].Field] {
		ord = ordering[0]
	}
	return fmt.Sprintf("ORDER BY %s", ord)
}

func (repo lessonRepository) QueryWorkshopLessons(ctx context.Context, workshopID string, ordering ...core.DBOrdering) ([]lesson.Lesson, error) {
	var rows []dbLesson
	q := `SELECT * FROM lesson WHERE workshop_id = $1 ` + orderBy(ordering)
	if err := repo.db.SelectContext(ctx, &rows, q, workshopID); err != nil {
		return nil, errors.Wrap(err, "querying workshop lessons")
	}
	lessons := make([]lesson.Lesson, 0, len(rows))
	for _, row := range rows {
		lessons = append(lessons, row.model())
	}
	return lessons, nil
}

func (repo lessonRepository) UpdateLesson(ctx context.Context, les lesson.Lesson) (lesson.Lesson, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE lesson
		 SET title = $2, source_url = $3, duration_minutes = $4, position = $5, updated_at = $6
		 WHERE id = $1`,
		les.ID, les.Title, les.SourceURL, les.DurationMinutes, les.Position, les.UpdatedAt,
	)
	if err != nil {
		return lesson.Lesson{}, errors.Wrap(err, "updating lesson")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return lesson.Lesson{}, lesson.ErrNotFound
	}
	return les, nil
}

func (repo lessonRepository) DeleteLessonsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM lesson WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building lesson delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting lessons")
	}
	return nil
}
