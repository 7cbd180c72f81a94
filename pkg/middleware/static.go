package middleware

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// Static serves files from dir for GET and HEAD requests whose path names an
// existing regular file. Any other request continues down the pipeline.
func Static(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}
		rel := path.Clean("/" + c.Request.URL.Path)
		if rel == "/" {
			c.Next()
			return
		}
		full := filepath.Join(dir, filepath.FromSlash(rel))
		fi, err := os.Stat(full)
		if err != nil || !fi.Mode().IsRegular() {
			c.Next()
			return
		}
		c.File(full)
		c.Abort()
	}
}
