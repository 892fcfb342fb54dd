package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/warsha/core/lesson"
)

type lessonApi struct {
	svc *lesson.Service
}

func registerLessonAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *lesson.Service) {
	api := lessonApi{svc: svc}

	wg := g.Group("/workshops", jwt)
	wg.GET("/:id/lessons", api.queryLessons)
}

// Handlers

func (api *lessonApi) queryLessons(ctx echo.Context) error {
	wid := ctx.Param("id")
	if _, err := api.svc.GetWorkshop(ctx.Request().Context(), wid); err != nil {
		if errors.Cause(err) == lesson.ErrWorkshopNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding workshop by ID")
	}

	var ord Ordering
	ord.Bind(ctx)

	lessons, err := api.svc.WorkshopLessons(ctx.Request().Context(), wid, ord.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying workshop lessons")
	}
	return ctx.JSON(http.StatusOK, lessons)
}
