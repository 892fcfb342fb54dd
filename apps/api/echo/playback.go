package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/warsha/core/lesson"
	"github.com/trezcool/warsha/core/playback"
	"github.com/trezcool/warsha/core/progress"
)

type playbackApi struct {
	mgr         *playback.Manager
	lessonSvc   *lesson.Service
	progressSvc *progress.Service
	hub         *streamHub
}

func registerPlaybackAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := playbackApi{
		mgr:         opts.PlaybackMgr,
		lessonSvc:   opts.LessonSvc,
		progressSvc: opts.ProgressSvc,
		hub:         newStreamHub(opts.Logger),
	}
	api.mgr.SetNotify(api.hub.broadcast)

	sg := g.Group("/playback/sessions", jwt)
	sg.POST("", api.open)
	sg.POST("/:id/events", api.handleEvent)
	sg.DELETE("/:id", api.close)
	sg.GET("/:id/stream", api.stream)
}

type (
	OpenSessionRequest struct {
		LessonID string `json:"lesson_id" validate:"required"`
	}

	OpenSessionResponse struct {
		playback.Descriptor
		CompletionPercentage int `json:"completion_percentage"`
	}

	EventResponse struct {
		playback.Verdict
		State playback.State `json:"state"`
	}
)

// Handlers

// open mounts a playback session for a lesson. Opening a lesson counts as
// completing it; the ledger write happens before the descriptor is returned
// so the response percentage reflects it.
func (api *playbackApi) open(ctx echo.Context) error {
	viewer, err := getContextStudent(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}

	var data OpenSessionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to OpenSessionRequest")
	}

	lsn, err := api.lessonSvc.GetByID(ctx.Request().Context(), data.LessonID)
	if err != nil {
		if errors.Cause(err) == lesson.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding lesson by ID")
	}
	wrk, err := api.lessonSvc.GetWorkshop(ctx.Request().Context(), lsn.WorkshopID)
	if err != nil {
		return errors.Wrap(err, "finding workshop by ID")
	}
	siblings, err := api.lessonSvc.WorkshopLessons(ctx.Request().Context(), lsn.WorkshopID)
	if err != nil {
		return errors.Wrap(err, "querying workshop lessons")
	}

	meta := playback.Meta{
		WorkshopTitle: wrk.Title,
		LessonIndex:   lessonIndex(siblings, lsn.ID),
		LessonCount:   len(siblings),
	}

	// the ledger write happens before any protection hook is installed, so a
	// failed open never leaves a session (or the capture override) behind
	if _, err := api.progressSvc.MarkComplete(ctx.Request().Context(), viewer.ID, lsn.WorkshopID, lsn.ID); err != nil {
		return errors.Wrap(err, "marking lesson complete")
	}
	pct, err := api.progressSvc.WorkshopCompletion(ctx.Request().Context(), viewer.ID, lsn.WorkshopID)
	if err != nil {
		return errors.Wrap(err, "computing workshop completion")
	}

	src := lesson.ResolveSource(lsn.SourceURL)
	sess := api.mgr.Open(src, viewer, meta)

	return ctx.JSON(http.StatusCreated, OpenSessionResponse{
		Descriptor:           sess.Descriptor(),
		CompletionPercentage: pct,
	})
}

func (api *playbackApi) handleEvent(ctx echo.Context) error {
	sess, ok := api.mgr.Get(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}

	var in playback.Input
	if err := ctx.Bind(&in); err != nil {
		return errors.Wrap(err, "binding to Input")
	}

	verdict := sess.HandleInput(in)
	return ctx.JSON(http.StatusOK, EventResponse{
		Verdict: verdict,
		State:   sess.State(),
	})
}

func (api *playbackApi) close(ctx echo.Context) error {
	// idempotent; closing an unknown or already closed session is a no-op
	api.mgr.Close(ctx.Param("id"))
	return ctx.NoContent(http.StatusNoContent)
}

func lessonIndex(lessons []lesson.Lesson, id string) int {
	for i, lsn := range lessons {
		if lsn.ID == id {
			return i + 1
		}
	}
	return 0
}
