package echoapi

import (
	"fmt"
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/warsha/core"
)

type contactApi struct {
	svc core.EmailService
}

// registerContactAPI wires the marketing contact form relay. Un-authed on
// purpose; prospects are not students yet.
func registerContactAPI(g *echo.Group, svc core.EmailService) {
	api := contactApi{svc: svc}
	g.POST("/contact", api.send)
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

func (cr *ContactRequest) Validate() error {
	cr.Name = core.CleanString(cr.Name)
	cr.Email = core.CleanString(cr.Email, true)
	cr.Message = core.CleanString(cr.Message)
	return core.Validate.Struct(cr)
}

// Handlers

func (api *contactApi) send(ctx echo.Context) error {
	var data ContactRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ContactRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	api.svc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: core.Conf.ContactEmail}},
		Subject: "Contact form: " + data.Name,
		BodyStr: fmt.Sprintf("From: %s <%s>\n\n%s", data.Name, data.Email, data.Message),
	})
	return ctx.NoContent(http.StatusAccepted)
}
