package lesson

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/warsha/core"
)

var (
	// errors
	ErrNotFound         = errors.New("lesson not found")
	ErrWorkshopNotFound = errors.New("workshop not found")
)

type (
	// Workshop is a paid course; lessons hang off it by ID.
	Workshop struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	Lesson struct {
		ID              string    `json:"id"`
		WorkshopID      string    `json:"workshop_id"`
		Title           string    `json:"title"`
		SourceURL       string    `json:"source_url"`
		DurationMinutes int       `json:"duration_minutes"`
		Position        int       `json:"position"`
		CreatedAt       time.Time `json:"created_at"`
		UpdatedAt       time.Time `json:"updated_at"`
	}

	Repository interface {
		CreateWorkshop(ctx context.Context, wsh Workshop) (Workshop, error)
		GetWorkshopByID(ctx context.Context, id string) (Workshop, error)
		CreateLesson(ctx context.Context, les Lesson) (Lesson, error)
		GetLessonByID(ctx context.Context, id string) (Lesson, error)
		// QueryWorkshopLessons returns a workshop's lessons; default ordering is by position.
		QueryWorkshopLessons(ctx context.Context, workshopID string, ordering ...core.DBOrdering) ([]Lesson, error)
		UpdateLesson(ctx context.Context, les Lesson) (Lesson, error)
		DeleteLessonsByID(ctx context.Context, ids ...string) error
	}
)

// NewLesson contains information needed to create a new Lesson.
type NewLesson struct {
	WorkshopID      string `json:"workshop_id" validate:"required"`
	Title           string `json:"title" validate:"required"`
	SourceURL       string `json:"source_url" validate:"required,url"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,min=0"`
	Position        int    `json:"position" validate:"omitempty,min=0"`
}

func (nl *NewLesson) Validate(validate *validator.Validate) error {
	nl.WorkshopID = core.CleanString(nl.WorkshopID)
	nl.Title = core.CleanString(nl.Title)
	nl.SourceURL = core.CleanString(nl.SourceURL)
	return validate.Struct(nl)
}

// UpdateLesson defines what information may be provided to modify an existing Lesson.
type UpdateLesson struct {
	Title           string `json:"title"`
	SourceURL       string `json:"source_url" validate:"omitempty,url"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,min=0"`
	Position        int    `json:"position" validate:"omitempty,min=0"`
}

func (ul *UpdateLesson) Validate(validate *validator.Validate) error {
	ul.Title = core.CleanString(ul.Title)
	ul.SourceURL = core.CleanString(ul.SourceURL)
	return validate.Struct(ul)
}

// IDs extracts the lesson IDs of a slice, preserving order.
func IDs(lessons []Lesson) []string {
	ids := make([]string, 0, len(lessons))
	for _, les := range lessons {
		ids = append(ids, les.ID)
	}
	return ids
}
