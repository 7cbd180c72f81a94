package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/coursekit/coursekit/internal/course"
	"github.com/coursekit/coursekit/internal/course/service"
	"github.com/coursekit/coursekit/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// NotFoundMessage is the body of every 404 returned for an unknown course id.
const NotFoundMessage = "The course with the given ID was not found."

func RegisterCourseRoutes(r gin.IRouter, svc service.Service) {
	r.GET("/api/courses", func(c *gin.Context) {
		list, err := svc.List()
		if err != nil {
			fail(c, "list", err)
			return
		}
		observe("list", "ok")
		c.JSON(http.StatusOK, list)
	})

	r.GET("/api/courses/:id", func(c *gin.Context) {
		id, ok := course.ParseID(c.Param("id"))
		if !ok {
			fail(c, "get", service.ErrNotFound)
			return
		}
		crs, err := svc.Get(id)
		if err != nil {
			fail(c, "get", err)
			return
		}
		observe("get", "ok")
		c.JSON(http.StatusOK, crs)
	})

	r.POST("/api/courses", func(c *gin.Context) {
		body, err := readBody(c)
		if err != nil {
			badBody(c, "create", err)
			return
		}
		crs, err := svc.Create(body)
		if err != nil {
			fail(c, "create", err)
			return
		}
		observe("create", "ok")
		c.JSON(http.StatusOK, crs)
	})

	r.PUT("/api/courses/:id", func(c *gin.Context) {
		id, ok := course.ParseID(c.Param("id"))
		if !ok {
			fail(c, "update", service.ErrNotFound)
			return
		}
		body, err := readBody(c)
		if err != nil {
			badBody(c, "update", err)
			return
		}
		crs, err := svc.Update(id, body)
		if err != nil {
			fail(c, "update", err)
			return
		}
		observe("update", "ok")
		c.JSON(http.StatusOK, crs)
	})

	r.DELETE("/api/courses/:id", func(c *gin.Context) {
		id, ok := course.ParseID(c.Param("id"))
		if !ok {
			fail(c, "delete", service.ErrNotFound)
			return
		}
		crs, err := svc.Delete(id)
		if err != nil {
			fail(c, "delete", err)
			return
		}
		observe("delete", "ok")
		c.JSON(http.StatusOK, crs)
	})
}

// readBody decodes a JSON or form-encoded body into a plain map. Any other
// content type, or no body at all, yields an empty map.
func readBody(c *gin.Context) (map[string]any, error) {
	body := map[string]any{}
	switch c.ContentType() {
	case binding.MIMEJSON:
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case binding.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return nil, err
		}
		for k, v := range c.Request.PostForm {
			if len(v) > 0 {
				body[k] = v[0]
			}
		}
	}
	return body, nil
}

// fail maps service errors to a status and a plain-text body.
func fail(c *gin.Context, op string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		observe(op, "not_found")
		c.String(http.StatusNotFound, NotFoundMessage)
	case errors.As(err, &verr):
		observe(op, "invalid")
		c.String(http.StatusBadRequest, verr.Error())
	default:
		observe(op, "error")
		c.String(http.StatusInternalServerError, err.Error())
	}
}

func badBody(c *gin.Context, op string, err error) {
	observe(op, "invalid")
	c.String(http.StatusBadRequest, "Invalid request body: "+err.Error())
}

func observe(op, outcome string) {
	metrics.CourseOperations.WithLabelValues(op, outcome).Inc()
}
