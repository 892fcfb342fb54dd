package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/warsha/core/progress"
)

type progressApi struct {
	svc *progress.Service
}

func registerProgressAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *progress.Service) {
	api := progressApi{svc: svc}

	wg := g.Group("/workshops", jwt)
	wg.GET("/:id/progress", api.retrieve)
}

type ProgressResponse struct {
	WorkshopID           string   `json:"workshop_id"`
	CompletedLessonIDs   []string `json:"completed_lesson_ids"`
	CompletionPercentage int      `json:"completion_percentage"`
}

// Handlers

func (api *progressApi) retrieve(ctx echo.Context) error {
	viewer, err := getContextStudent(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}

	wid := ctx.Param("id")
	rec, err := api.svc.Get(ctx.Request().Context(), viewer.ID, wid)
	if err != nil {
		return errors.Wrap(err, "reading progress")
	}
	pct, err := api.svc.WorkshopCompletion(ctx.Request().Context(), viewer.ID, wid)
	if err != nil {
		return errors.Wrap(err, "computing workshop completion")
	}

	completed := rec.CompletedLessonIDs
	if completed == nil {
		completed = []string{}
	}
	return ctx.JSON(http.StatusOK, ProgressResponse{
		WorkshopID:           wid,
		CompletedLessonIDs:   completed,
		CompletionPercentage: pct,
	})
}
