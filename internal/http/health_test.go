package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database and library are ok", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		controller := NewHealthController(db, testCatalog(), "1.0.0")
		router := gin.New()
		router.GET("/health", controller.Status)

		w := doRequest(t, router, "GET", "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		response := decode[HealthResponse](t, w)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, "ok", response.Checks["library"])
		assert.NotEmpty(t, response.Time)
	})

	t.Run("reports not configured dependencies", func(t *testing.T) {
		controller := NewHealthController(nil, nil, "1.0.0")
		router := gin.New()
		router.GET("/health", controller.Status)

		w := doRequest(t, router, "GET", "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		response := decode[HealthResponse](t, w)
		assert.Equal(t, "not configured", response.Checks["database"])
		assert.Equal(t, "not configured", response.Checks["library"])
	})

	t.Run("returns unhealthy when library cannot load", func(t *testing.T) {
		controller := NewHealthController(nil, failingCatalog(), "1.0.0")
		router := gin.New()
		router.GET("/health", controller.Status)

		w := doRequest(t, router, "GET", "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		response := decode[HealthResponse](t, w)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["library"], "error")
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		require.NoError(t, db.Close())

		controller := NewHealthController(db, testCatalog(), "1.0.0")
		router := gin.New()
		router.GET("/health", controller.Status)

		w := doRequest(t, router, "GET", "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		response := decode[HealthResponse](t, w)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
	})
}
