package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/warsha/core/lesson"
)

func CreateWorkshop(t *testing.T, repo lesson.Repository, title string) lesson.Workshop {
	t.Helper()

	now := time.Now().UTC()
	wsh, err := repo.CreateWorkshop(context.Background(), lesson.Workshop{
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateWorkshop() failed: %v", err)
	}
	return wsh
}

func CreateLesson(
	t *testing.T,
	repo lesson.Repository,
	workshopID, title, sourceURL string,
	position int,
	duration ...int,
) lesson.Lesson {
	t.Helper()

	var mins int
	if len(duration) > 0 {
		mins = duration[0]
	}
	now := time.Now().UTC()
	les, err := repo.CreateLesson(context.Background(), lesson.Lesson{
		WorkshopID:      workshopID,
		Title:           title,
		SourceURL:       sourceURL,
		DurationMinutes: mins,
		Position:        position,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		t.Fatalf("CreateLesson() failed: %v", err)
	}
	return les
}
