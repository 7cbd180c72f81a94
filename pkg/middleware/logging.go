package middleware

import (
	"strconv"
	"time"

	"github.com/coursekit/coursekit/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AccessLog writes one line per request once the response is done:
// METHOD URL STATUS LENGTH - RESPONSE_TIME ms
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		size := "-"
		if n := c.Writer.Size(); n >= 0 {
			size = strconv.Itoa(n)
		}
		ms := float64(time.Since(start).Microseconds()) / 1000
		logger.Infof("%s %s %d %s - %.3f ms", c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), size, ms)
	}
}

// Logging marks every request that enters the pipeline.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.Printf("Logging...")
		c.Next()
	}
}
