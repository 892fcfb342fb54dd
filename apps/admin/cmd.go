package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/trezcool/warsha/apps"
	"github.com/trezcool/warsha/core/lesson"
	"github.com/trezcool/warsha/core/progress"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db          *sql.DB
	lessonSvc   *lesson.Service
	progressSvc *progress.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [args] - run a database migration command (up, down, status, ...)")
	fmt.Println("  addworkshop -title TITLE - create a workshop")
	fmt.Println("  addlesson -workshop ID -title TITLE -url URL [-duration MIN] [-position POS] - add a lesson to a workshop")
	fmt.Println("  seed - create a demo workshop with a few lessons")
	fmt.Println("  progress -student ID -workshop ID - show a student's completion for a workshop")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addWorkshopCmd := flag.NewFlagSet("addworkshop", flag.ExitOnError)
	addWorkshopTitle := addWorkshopCmd.String("title", "", "The workshop's title.")

	addLessonCmd := flag.NewFlagSet("addlesson", flag.ExitOnError)
	addLessonWorkshop := addLessonCmd.String("workshop", "", "The workshop's ID.")
	addLessonTitle := addLessonCmd.String("title", "", "The lesson's title.")
	addLessonURL := addLessonCmd.String("url", "", "The lesson's video source URL.")
	addLessonDuration := addLessonCmd.Int("duration", 0, "The lesson's duration in minutes.")
	addLessonPosition := addLessonCmd.Int("position", 0, "The lesson's position within the workshop.")

	progressCmd := flag.NewFlagSet("progress", flag.ExitOnError)
	progressStudent := progressCmd.String("student", "", "The student's ID.")
	progressWorkshop := progressCmd.String("workshop", "", "The workshop's ID.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "addworkshop":
		if err := addWorkshopCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addWorkshopTitle == "" {
			addWorkshopCmd.Usage()
			return errHelp
		}
		return cli.addWorkshop(*addWorkshopTitle)
	case "addlesson":
		if err := addLessonCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addLessonWorkshop == "" || *addLessonTitle == "" || *addLessonURL == "" {
			addLessonCmd.Usage()
			return errHelp
		}
		if *addLessonDuration < 0 {
			return apps.NewArgumentError("duration must not be negative")
		}
		if *addLessonPosition < 0 {
			return apps.NewArgumentError("position must not be negative")
		}
		return cli.addLesson(*addLessonWorkshop, *addLessonTitle, *addLessonURL, *addLessonDuration, *addLessonPosition)
	case "seed":
		return cli.seed()
	case "progress":
		if err := progressCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *progressStudent == "" || *progressWorkshop == "" {
			progressCmd.Usage()
			return errHelp
		}
		return cli.progress(*progressStudent, *progressWorkshop)
	default:
		cli.printUsage()
		return errHelp
	}
}
