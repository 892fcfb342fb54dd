package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/warsha/core"
	"github.com/trezcool/warsha/core/lesson"
)

// lessonRepository is an in-memory lesson.Repository for tests and local dev.
type lessonRepository struct {
	mutex     sync.RWMutex
	workshops map[string]*lesson.Workshop
	lessons   map[string]*lesson.Lesson
}

var _ lesson.Repository = (*lessonRepository)(nil) // interface compliance check

func NewLessonRepository() *lessonRepository {
	return &lessonRepository{
		workshops: make(map[string]*lesson.Workshop),
		lessons:   make(map[string]*lesson.Lesson),
	}
}

func (repo *lessonRepository) CreateWorkshop(_ context.Context, wsh lesson.Workshop) (lesson.Workshop, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	if wsh.ID == "" {
		wsh.ID = uuid.New().String()
	}
	repo.workshops[wsh.ID] = &wsh
	return wsh, nil
}

func (repo *lessonRepository) GetWorkshopByID(_ context.Context, id string) (lesson.Workshop, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	if wsh, ok := repo.workshops[id]; ok {
		return *wsh, nil
	}
	return lesson.Workshop{}, lesson.ErrWorkshopNotFound
}

func (repo *lessonRepository) CreateLesson(_ context.Context, les lesson.Lesson) (lesson.Lesson, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	if les.ID == "" {
		les.ID = uuid.New().String()
	}
	repo.lessons[les.ID] = &les
	return les, nil
}

func (repo *lessonRepository) GetLessonByID(_ context.Context, id string) (lesson.Lesson, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	if les, ok := repo.lessons[id]; ok {
		return *les, nil
	}
	return lesson.Lesson{}, lesson.ErrNotFound
}

func (repo *lessonRepository) QueryWorkshopLessons(_ context.Context, workshopID string, ordering ...core.DBOrdering) ([]lesson.Lesson, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	lessons := make([]lesson.Lesson, 0)
	for _, les := range repo.lessons {
		if les.WorkshopID == workshopID {
			lessons = append(lessons, *les)
		}
	}

	descending := len(ordering) > 0 && !ordering[0].Ascending
	sort.Slice(lessons, func(i, j int) bool {
		if descending {
			i, j = j, i
		}
		if lessons[i].Position != lessons[j].Position {
			return lessons[i].Position < lessons[j].Position
		}
		return lessons[i].CreatedAt.Before(lessons[j].CreatedAt)
	})
	return lessons, nil
}

func (repo *lessonRepository) UpdateLesson(_ context.Context, les lesson.Lesson) (lesson.Lesson, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	if _, ok := repo.lessons[les.ID]; !ok {
		return lesson.Lesson{}, lesson.ErrNotFound
	}
	repo.lessons[les.ID] = &les
	return les, nil
}

func (repo *lessonRepository) DeleteLessonsByID(_ context.Context, ids ...string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for _, id := range ids {
		delete(repo.lessons, id)
	}
	return nil
}
