package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/file"
)

type fileApi struct {
	service *file.Service
}

func RegisterFileAPI(g *echo.Group, svc *file.Service) {
	api := fileApi{service: svc}

	fg := g.Group("/files")
	fg.POST("", api.fileUpload)

	dg := fg.Group("/:id")
	dg.GET("", api.fileRetrieve)
	dg.GET("/meta", api.fileMeta)
	dg.DELETE("", api.fileDestroy)
}

// Handlers

func (api *fileApi) fileUpload(ctx echo.Context) error {
	data := new(file.NewFile)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	f, err := api.service.Put(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, f)
}

func (api *fileApi) fileRetrieve(ctx echo.Context) error {
	f, err := api.service.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, f)
}

// fileMeta returns the metadata projection without the blob data.
func (api *fileApi) fileMeta(ctx echo.Context) error {
	f, err := api.service.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, f.Ref())
}

func (api *fileApi) fileDestroy(ctx echo.Context) error {
	if err := api.service.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
