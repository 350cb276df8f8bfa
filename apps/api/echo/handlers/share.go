package handlers

import (
	"io"
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/share"
)

type shareApi struct {
	service *share.Service
}

func RegisterShareAPI(g *echo.Group, svc *share.Service) {
	api := shareApi{service: svc}

	dg := g.Group("/classes/:id/share")
	dg.GET("/url", api.shareURL)
	dg.GET("/json", api.shareJSON)
	dg.GET("/text", api.shareText)
	dg.POST("/email", api.shareEmail)

	g.POST("/import/share", api.importShared)
	g.GET("/backup", api.backupExport)
	g.POST("/backup", api.backupImport)
}

// Handlers

func (api *shareApi) shareURL(ctx echo.Context) error {
	url, err := api.service.ShareURL(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"url": url})
}

func (api *shareApi) shareJSON(ctx echo.Context) error {
	p, err := api.service.Export(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *shareApi) shareText(ctx echo.Context) error {
	text, err := api.service.PlainText(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.String(http.StatusOK, text)
}

type shareEmailRequest struct {
	To []string `json:"to" validate:"required,min=1,dive,email"`
}

func (r *shareEmailRequest) Validate() error { return core.Validate.Struct(r) }

func (api *shareApi) shareEmail(ctx echo.Context) error {
	data := new(shareEmailRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	to := make([]mail.Address, 0, len(data.To))
	for _, addr := range data.To {
		to = append(to, mail.Address{Address: addr})
	}
	if err := api.service.EmailShare(ctx.Param("id"), to); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusAccepted)
}

// importShared consumes the body as a raw ?share= parameter value and
// imports the class it carries.
func (api *shareApi) importShared(ctx echo.Context) error {
	raw, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return err
	}
	p, err := api.service.DecodeParam(string(raw))
	if err != nil {
		return err
	}
	cls, err := api.service.Import(p)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *shareApi) backupExport(ctx echo.Context) error {
	b, err := api.service.ExportBackup()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *shareApi) backupImport(ctx echo.Context) error {
	raw, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return err
	}
	b, err := api.service.ImportBackup(raw)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"classes": len(b.Classes),
		"courses": len(b.Courses),
		"files":   len(b.Files),
	})
}
