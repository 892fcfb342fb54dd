package main

import (
	"log"
	"os"

	"github.com/trezcool/warsha/core"
	"github.com/trezcool/warsha/core/lesson"
	"github.com/trezcool/warsha/core/progress"
	"github.com/trezcool/warsha/storage/database"
	sqlxrepos "github.com/trezcool/warsha/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	// start CLI
	lessonSvc := lesson.NewService(sqlxrepos.NewLessonRepository(db))
	cli := commandLine{
		db:          db,
		lessonSvc:   lessonSvc,
		progressSvc: progress.NewService(sqlxrepos.NewProgressRepository(db), lessonSvc),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
