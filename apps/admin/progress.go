package main

import (
	"context"
	"strings"
)

// progress prints a student's ledger for a workshop, for support inspection.
func (cli *commandLine) progress(studentID, workshopID string) error {
	ctx := context.Background()

	rec, err := cli.progressSvc.Get(ctx, studentID, workshopID)
	if err != nil {
		return err
	}
	pct, err := cli.progressSvc.WorkshopCompletion(ctx, studentID, workshopID)
	if err != nil {
		return err
	}

	if len(rec.CompletedLessonIDs) == 0 {
		logger.Printf("student %s has not completed any lesson in workshop %s", studentID, workshopID)
	} else {
		logger.Printf("completed lessons: %s", strings.Join(rec.CompletedLessonIDs, ", "))
	}
	logger.Printf("workshop completion: %d%%", pct)
	return nil
}
