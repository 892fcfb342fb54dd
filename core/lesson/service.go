package lesson

import (
	"context"
	"time"

	"github.com/trezcool/warsha/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CreateWorkshop(ctx context.Context, title string) (Workshop, error) {
	now := time.Now().UTC()
	wsh := Workshop{
		Title:     core.CleanString(title),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateWorkshop(ctx, wsh)
}

func (svc *Service) GetWorkshop(ctx context.Context, id string) (Workshop, error) {
	return svc.repo.GetWorkshopByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nl NewLesson) (Lesson, error) {
	if _, err := svc.repo.GetWorkshopByID(ctx, nl.WorkshopID); err != nil {
		return Lesson{}, err
	}
	now := time.Now().UTC()
	les := Lesson{
		WorkshopID:      nl.WorkshopID,
		Title:           nl.Title,
		SourceURL:       nl.SourceURL,
		DurationMinutes: nl.DurationMinutes,
		Position:        nl.Position,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return svc.repo.CreateLesson(ctx, les)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Lesson, error) {
	return svc.repo.GetLessonByID(ctx, id)
}

// WorkshopLessons returns a workshop's current lesson collection ordered by position.
func (svc *Service) WorkshopLessons(ctx context.Context, workshopID string, ordering ...core.DBOrdering) ([]Lesson, error) {
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "position", Ascending: true}}
	}
	return svc.repo.QueryWorkshopLessons(ctx, workshopID, ordering...)
}

func (svc *Service) Update(ctx context.Context, id string, ul UpdateLesson) (Lesson, error) {
	les, err := svc.repo.GetLessonByID(ctx, id)
	if err != nil {
		return Lesson{}, err
	}
	if ul.Title != "" {
		les.Title = ul.Title
	}
	if ul.SourceURL != "" {
		les.SourceURL = ul.SourceURL
	}
	if ul.DurationMinutes != 0 {
		les.DurationMinutes = ul.DurationMinutes
	}
	if ul.Position != 0 {
		les.Position = ul.Position
	}
	les.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateLesson(ctx, les)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteLessonsByID(ctx, ids...)
}
