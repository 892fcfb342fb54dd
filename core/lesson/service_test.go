package lesson

import (
	"context"
	"testing"

	"github.com/trezcool/warsha/core"
)

type mockRepo struct {
	workshops map[string]Workshop
	lessons   map[string]Lesson
	nextID    int
}

var _ Repository = (*mockRepo)(nil)

func newMockRepo() *mockRepo {
	return &mockRepo{
		workshops: make(map[string]Workshop),
		lessons:   make(map[string]Lesson),
	}
}

func (m *mockRepo) id() string {
	m.nextID++
	return string(rune('a' + m.nextID - 1))
}

func (m *mockRepo) CreateWorkshop(_ context.Context, wsh Workshop) (Workshop, error) {
	wsh.ID = m.id()
	m.workshops[wsh.ID] = wsh
	return wsh, nil
}

func (m *mockRepo) GetWorkshopByID(_ context.Context, id string) (Workshop, error) {
	if wsh, ok := m.workshops[id]; ok {
		return wsh, nil
	}
	return Workshop{}, ErrWorkshopNotFound
}

func (m *mockRepo) CreateLesson(_ context.Context, les Lesson) (Lesson, error) {
	les.ID = m.id()
	m.lessons[les.ID] = les
	return les, nil
}

func (m *mockRepo) GetLessonByID(_ context.Context, id string) (Lesson, error) {
	if les, ok := m.lessons[id]; ok {
		return les, nil
	}
	return Lesson{}, ErrNotFound
}

func (m *mockRepo) QueryWorkshopLessons(_ context.Context, workshopID string, _ ...core.DBOrdering) ([]Lesson, error) {
	var lessons []Lesson
	for _, les := range m.lessons {
		if les.WorkshopID == workshopID {
			lessons = append(lessons, les)
		}
	}
	return lessons, nil
}

func (m *mockRepo) UpdateLesson(_ context.Context, les Lesson) (Lesson, error) {
	if _, ok := m.lessons[les.ID]; !ok {
		return Lesson{}, ErrNotFound
	}
	m.lessons[les.ID] = les
	return les, nil
}

func (m *mockRepo) DeleteLessonsByID(_ context.Context, ids ...string) error {
	for _, id := range ids {
		delete(m.lessons, id)
	}
	return nil
}

func TestService_Create_requiresWorkshop(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, NewLesson{WorkshopID: "nope", Title: "Intro", SourceURL: "https://youtu.be/x"}); err != ErrWorkshopNotFound {
		t.Errorf("Create() error = %v, want %v", err, ErrWorkshopNotFound)
	}

	wsh, err := svc.CreateWorkshop(ctx, "Pottery")
	if err != nil {
		t.Fatalf("CreateWorkshop() failed: %v", err)
	}
	les, err := svc.Create(ctx, NewLesson{WorkshopID: wsh.ID, Title: "Intro", SourceURL: "https://youtu.be/x", Position: 1})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if les.ID == "" || les.CreatedAt.IsZero() || les.UpdatedAt.IsZero() {
		t.Errorf("Create() returned incomplete lesson: %+v", les)
	}
}

func TestService_Update_partial(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	wsh, _ := svc.CreateWorkshop(ctx, "Pottery")
	les, _ := svc.Create(ctx, NewLesson{WorkshopID: wsh.ID, Title: "Intro", SourceURL: "https://youtu.be/x", DurationMinutes: 10, Position: 1})

	got, err := svc.Update(ctx, les.ID, UpdateLesson{Title: "Welcome"})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if got.Title != "Welcome" {
		t.Errorf("Title = %s, want Welcome", got.Title)
	}
	// untouched fields survive a partial update
	if got.SourceURL != les.SourceURL || got.DurationMinutes != 10 || got.Position != 1 {
		t.Errorf("Update() clobbered fields: %+v", got)
	}
	if !got.UpdatedAt.After(les.UpdatedAt) {
		t.Errorf("UpdatedAt not bumped: %v", got.UpdatedAt)
	}

	if _, err := svc.Update(ctx, "nope", UpdateLesson{Title: "x"}); err != ErrNotFound {
		t.Errorf("Update() error = %v, want %v", err, ErrNotFound)
	}
}

func TestUpdateLesson_Validate(t *testing.T) {
	ul := UpdateLesson{SourceURL: "not a url"}
	if err := ul.Validate(core.Validate); err == nil {
		t.Error("Validate() accepted a malformed source URL")
	}

	// all fields optional; an empty update is a no-op, not an error
	empty := UpdateLesson{}
	if err := empty.Validate(core.Validate); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	wsh, _ := svc.CreateWorkshop(ctx, "Pottery")
	les1, _ := svc.Create(ctx, NewLesson{WorkshopID: wsh.ID, Title: "Intro", SourceURL: "https://youtu.be/x", Position: 1})
	les2, _ := svc.Create(ctx, NewLesson{WorkshopID: wsh.ID, Title: "Clay", SourceURL: "https://youtu.be/y", Position: 2})

	if err := svc.Delete(ctx, les1.ID, les2.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, les1.ID); err != ErrNotFound {
		t.Errorf("GetByID() error = %v, want %v", err, ErrNotFound)
	}
}
