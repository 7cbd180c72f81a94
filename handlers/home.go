package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterHome registers the plain-text greeting served at the root path.
func RegisterHome(r gin.IRouter) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello World!!!")
	})
}
