package echoapi

import (
	"context"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/warsha/core"
	"github.com/trezcool/warsha/core/lesson"
	"github.com/trezcool/warsha/core/playback"
	"github.com/trezcool/warsha/core/progress"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		LessonSvc   *lesson.Service
		ProgressSvc *progress.Service
		PlaybackMgr *playback.Manager
		EmailSvc    core.EmailService
		Logger      core.Logger
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options, shutdown chan os.Signal) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: shutdown,
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.SignalShutdown)
	s.app.Debug = core.Conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerLessonAPI(v1, jwt, s.opts.LessonSvc)
	registerProgressAPI(v1, jwt, s.opts.ProgressSvc)
	registerPlaybackAPI(v1, jwt, s.opts)
	registerContactAPI(v1, s.opts.EmailSvc)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Addr)
}

func (s *server) Stop(ctx context.Context) error {
	s.opts.PlaybackMgr.CloseAll()
	return s.app.Shutdown(ctx)
}

// SignalShutdown sends a SIGTERM down the shutdown channel to gracefully
// stop the Server when an unrecoverable error is caught.
func (s *server) SignalShutdown() {
	s.shutdown <- os.Interrupt
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+core.Conf.AppName+" API!")
}
