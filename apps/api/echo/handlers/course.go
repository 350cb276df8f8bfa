package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/course"
)

type courseApi struct {
	service *course.Service
}

func RegisterCourseAPI(g *echo.Group, svc *course.Service) {
	api := courseApi{service: svc}

	cg := g.Group("/courses")
	cg.POST("", api.courseCreate)
	cg.GET("", api.courseList)

	dg := cg.Group("/:id")
	dg.GET("", api.courseRetrieve)
	dg.PUT("", api.courseUpdate)
	dg.DELETE("", api.courseDestroy)
}

// Handlers

func (api *courseApi) courseCreate(ctx echo.Context) error {
	data := new(course.NewCourse)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	crs, err := api.service.Create(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) courseList(ctx echo.Context) error {
	courses, err := api.service.List()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) courseRetrieve(ctx echo.Context) error {
	crs, err := api.service.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) courseUpdate(ctx echo.Context) error {
	data := new(course.UpdateCourse)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	crs, err := api.service.Update(ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) courseDestroy(ctx echo.Context) error {
	res, err := api.service.Delete(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}
