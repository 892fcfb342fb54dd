package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/trezcool/warsha/apps/api/echo"
	"github.com/trezcool/warsha/core"
	"github.com/trezcool/warsha/core/lesson"
	"github.com/trezcool/warsha/core/playback"
	"github.com/trezcool/warsha/core/progress"
	emailsvc "github.com/trezcool/warsha/services/email"
	logsvc "github.com/trezcool/warsha/services/logger"
	"github.com/trezcool/warsha/storage/database"
	sqlxrepos "github.com/trezcool/warsha/storage/database/sqlx"
)

func main() {
	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		core.Conf,
	)
	logger.Enable(!core.Conf.Debug)

	if err := run(logger); err != nil {
		logger.Fatal(fmt.Sprintf("running server: %v", err), err)
	}
}

func run(logger core.Logger) error {
	logger.Info(fmt.Sprintf("Application initializing : version %q", core.Conf.Build))
	defer logger.Info("Application stopped")

	// set up DB
	db, err := database.Open(core.Conf)
	if err != nil {
		return err
	}
	defer db.Close()

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	lessonSvc := lesson.NewService(sqlxrepos.NewLessonRepository(db))
	progressSvc := progress.NewService(sqlxrepos.NewProgressRepository(db), lessonSvc)
	playbackMgr := playback.NewManager(playback.Options{
		Logger:      logger,
		TamperDwell: core.Conf.Playback.TamperDwell,
	})

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(
		&echoapi.Options{
			Addr:        core.Conf.Server.Addr(),
			LessonSvc:   lessonSvc,
			ProgressSvc: progressSvc,
			PlaybackMgr: playbackMgr,
			EmailSvc:    mailSvc,
			Logger:      logger,
		},
		shutdown,
	)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("API listening on %s", core.Conf.Server.Addr()))
		serverErrors <- server.Start()
	}()

	select {
	case err = <-serverErrors:
		return err

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		if err = server.Stop(ctx); err != nil {
			return err
		}
	}
	return nil
}
