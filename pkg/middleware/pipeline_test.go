package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coursekit/coursekit/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(orig) })
	return &buf
}

func TestBuild_Order(t *testing.T) {
	p := Build(Options{StaticDir: "public", AccessLog: true, RateLimit: RateLimitOptions{Enabled: true, RPS: 1, Burst: 1}})
	require.Equal(t, []string{"recovery", "static", "security-headers", "request-log", "logging", "authenticate", "rate-limit"}, p.Names())
	require.Len(t, p.Handlers(), len(p))

	minimal := Build(Options{})
	require.Equal(t, []string{"recovery", "security-headers", "logging", "authenticate"}, minimal.Names())
}

func TestPipeline_RunsStagesBeforeHandler(t *testing.T) {
	buf := captureLogs(t)

	g := gin.New()
	g.Use(Build(Options{AccessLog: true}).Handlers()...)
	g.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, "done") })

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x?q=1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))

	out := buf.String()
	logging := strings.Index(out, "Logging...")
	auth := strings.Index(out, "Authenticating...")
	require.True(t, logging >= 0 && auth > logging, "stages logged out of order: %q", out)
	assert.Contains(t, out, "GET /x?q=1 200 4 - ")
}

func TestAuthenticate_PassesThrough(t *testing.T) {
	captureLogs(t)
	g := gin.New()
	g.GET("/", Authenticate(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestStatic_ServesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("static body"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	g := gin.New()
	g.Use(Static(dir))
	g.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "root") })
	g.NoRoute(func(c *gin.Context) { c.String(http.StatusNotFound, "missing") })

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readme.txt", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "static body", w.Body.String())

	// root path and directories fall through to the router
	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "root", w.Body.String())

	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sub", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/readme.txt", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}
