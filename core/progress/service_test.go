package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/trezcool/warsha/core"
	"github.com/trezcool/warsha/core/lesson"
)

type mockRepo struct {
	recs    map[string]Record // studentID+"/"+workshopID
	failGet error
	failPut error
}

func newMockRepo() *mockRepo {
	return &mockRepo{recs: make(map[string]Record)}
}

func (r *mockRepo) GetProgress(_ context.Context, studentID, workshopID string) (Record, error) {
	if r.failGet != nil {
		return Record{}, r.failGet
	}
	rec, ok := r.recs[studentID+"/"+workshopID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *mockRepo) UpsertProgress(_ context.Context, rec Record) (Record, error) {
	if r.failPut != nil {
		return Record{}, r.failPut
	}
	r.recs[rec.StudentID+"/"+rec.WorkshopID] = rec
	return rec, nil
}

type mockLessonRepo struct {
	lessons []lesson.Lesson
}

func (r *mockLessonRepo) CreateWorkshop(_ context.Context, wsh lesson.Workshop) (lesson.Workshop, error) {
	return wsh, nil
}
func (r *mockLessonRepo) GetWorkshopByID(_ context.Context, id string) (lesson.Workshop, error) {
	return lesson.Workshop{ID: id}, nil
}
func (r *mockLessonRepo) CreateLesson(_ context.Context, les lesson.Lesson) (lesson.Lesson, error) {
	return les, nil
}
func (r *mockLessonRepo) GetLessonByID(_ context.Context, id string) (lesson.Lesson, error) {
	return lesson.Lesson{}, lesson.ErrNotFound
}
func (r *mockLessonRepo) QueryWorkshopLessons(_ context.Context, workshopID string, _ ...core.DBOrdering) ([]lesson.Lesson, error) {
	return r.lessons, nil
}
func (r *mockLessonRepo) UpdateLesson(_ context.Context, les lesson.Lesson) (lesson.Lesson, error) {
	return les, nil
}
func (r *mockLessonRepo) DeleteLessonsByID(_ context.Context, ids ...string) error { return nil }

func TestMarkCompleteIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := NewService(repo, lesson.NewService(&mockLessonRepo{}))

	rec, err := svc.MarkComplete(ctx, "student1", "workshopX", "lesson3")
	if err != nil {
		t.Fatalf("MarkComplete() failed: %v", err)
	}
	if len(rec.CompletedLessonIDs) != 1 {
		t.Fatalf("CompletedLessonIDs = %v, want 1 entry", rec.CompletedLessonIDs)
	}
	firstUpdate := rec.UpdatedAt

	nowFunc = func() time.Time { return time.Now().Add(time.Minute) }
	defer func() { nowFunc = time.Now }()

	// duplicate marking must succeed without growing the set
	rec, err = svc.MarkComplete(ctx, "student1", "workshopX", "lesson3")
	if err != nil {
		t.Fatalf("MarkComplete() duplicate failed: %v", err)
	}
	if len(rec.CompletedLessonIDs) != 1 {
		t.Errorf("CompletedLessonIDs = %v, want set of size 1", rec.CompletedLessonIDs)
	}
	if !rec.UpdatedAt.After(firstUpdate) {
		t.Errorf("UpdatedAt not bumped on duplicate marking: %v <= %v", rec.UpdatedAt, firstUpdate)
	}
}

func TestMarkCompleteReadYourWrites(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	lessonRepo := &mockLessonRepo{lessons: []lesson.Lesson{
		{ID: "lesson1"}, {ID: "lesson2"}, {ID: "lesson3"}, {ID: "lesson4"}, {ID: "lesson5"},
	}}
	svc := NewService(repo, lesson.NewService(lessonRepo))

	if _, err := svc.MarkComplete(ctx, "student1", "workshopX", "lesson3"); err != nil {
		t.Fatalf("MarkComplete() failed: %v", err)
	}
	pct, err := svc.WorkshopCompletion(ctx, "student1", "workshopX")
	if err != nil {
		t.Fatalf("WorkshopCompletion() failed: %v", err)
	}
	if pct != 20 {
		t.Errorf("WorkshopCompletion() = %d%%, want 20%%", pct)
	}
}

func TestMarkCompleteStorageFailure(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	repo.failPut = errors.New("store unavailable")
	svc := NewService(repo, lesson.NewService(&mockLessonRepo{}))

	if _, err := svc.MarkComplete(ctx, "student1", "workshopX", "lesson1"); err == nil {
		t.Fatal("MarkComplete() did not report the failed write")
	}
}

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		name      string
		completed []string
		current   []string
		want      int
	}{
		{name: "empty everything", want: 0},
		{name: "empty current never divides by zero", completed: []string{"a"}, want: 0},
		{name: "none completed", current: []string{"a", "b"}, want: 0},
		{name: "one of five", completed: []string{"c"}, current: []string{"a", "b", "c", "d", "e"}, want: 20},
		{name: "one of three rounds", completed: []string{"a"}, current: []string{"a", "b", "c"}, want: 33},
		{name: "two of three rounds", completed: []string{"a", "b"}, current: []string{"a", "b", "c"}, want: 67},
		{name: "all completed", completed: []string{"a", "b"}, current: []string{"a", "b"}, want: 100},
		{name: "removed lesson never inflates", completed: []string{"a", "b"}, current: []string{"a"}, want: 100},
		{name: "duplicates in completed ignored", completed: []string{"a", "a"}, current: []string{"a", "b"}, want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionPercentage(tt.completed, tt.current); got != tt.want {
				t.Errorf("CompletionPercentage() = %d, want %d", got, tt.want)
			}
		})
	}
}
