package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/warsha/core"
	"github.com/trezcool/warsha/core/lesson"
)

func (cli *commandLine) addWorkshop(title string) error {
	wsh, err := cli.lessonSvc.CreateWorkshop(context.Background(), title)
	if err != nil {
		return err
	}
	logger.Printf("workshop %q created: %s", wsh.Title, wsh.ID)
	return nil
}

func (cli *commandLine) addLesson(workshopID, title, url string, duration, position int) error {
	ctx := context.Background()
	nl := lesson.NewLesson{
		WorkshopID:      workshopID,
		Title:           title,
		SourceURL:       url,
		DurationMinutes: duration,
		Position:        position,
	}
	if err := nl.Validate(core.Validate); err != nil {
		return err
	}
	les, err := cli.lessonSvc.Create(ctx, nl)
	if err != nil {
		return err
	}

	src := lesson.ResolveSource(les.SourceURL)
	if src.Kind == lesson.KindUnrecognized {
		logger.Printf("warning: source URL %q is not recognized; the lesson will render as unavailable", les.SourceURL)
	}
	logger.Printf("lesson %q added to workshop %s: %s", les.Title, les.WorkshopID, les.ID)
	return nil
}

// seed creates a demo workshop with a handful of lessons, for local dev.
func (cli *commandLine) seed() error {
	ctx := context.Background()
	wsh, err := cli.lessonSvc.CreateWorkshop(ctx, "Demo Workshop")
	if err != nil {
		return err
	}

	seedLessons := []lesson.NewLesson{
		{WorkshopID: wsh.ID, Title: "Welcome", SourceURL: "https://youtu.be/dQw4w9WgXcQ", DurationMinutes: 4, Position: 1},
		{WorkshopID: wsh.ID, Title: "Getting set up", SourceURL: "https://www.youtube.com/watch?v=jNQXAC9IVRw", DurationMinutes: 12, Position: 2},
		{WorkshopID: wsh.ID, Title: "Bonus material", SourceURL: "https://cdn.example.com/bonus.mp4", DurationMinutes: 25, Position: 3},
	}
	for _, nl := range seedLessons {
		if _, err := cli.lessonSvc.Create(ctx, nl); err != nil {
			return errors.Wrapf(err, "seeding lesson %q", nl.Title)
		}
	}
	logger.Printf("demo workshop seeded: %s", wsh.ID)
	return nil
}
