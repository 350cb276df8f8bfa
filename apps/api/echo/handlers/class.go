package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/class"
)

type classApi struct {
	service *class.Service
}

func RegisterClassAPI(g *echo.Group, svc *class.Service) {
	api := classApi{service: svc}

	cg := g.Group("/classes")
	cg.POST("", api.classCreate)
	cg.GET("", api.classQuery)
	cg.GET("/stats", api.classStats)

	dg := cg.Group("/:id")
	dg.GET("", api.classRetrieve)
	dg.PUT("", api.classUpdate)
	dg.DELETE("", api.classDestroy)
}

// Handlers

func (api *classApi) classCreate(ctx echo.Context) error {
	data := new(class.NewClass)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	cls, err := api.service.Create(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cls)
}

// classQuery lists classes, optionally scoped to a course (?course=) and
// filtered by a search term (?search=).
func (api *classApi) classQuery(ctx echo.Context) error {
	courseID := ctx.QueryParam("course")
	search := ctx.QueryParam("search")

	var classes []class.Class
	var err error
	switch {
	case search != "":
		classes, err = api.service.Search(courseID, search)
	case courseID != "":
		classes, err = api.service.ListByCourse(courseID)
	default:
		classes, err = api.service.List()
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) classStats(ctx echo.Context) error {
	stats, err := api.service.Stats()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *classApi) classRetrieve(ctx echo.Context) error {
	cls, err := api.service.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) classUpdate(ctx echo.Context) error {
	data := new(class.UpdateClass)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	cls, err := api.service.Update(ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) classDestroy(ctx echo.Context) error {
	if err := api.service.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
