package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/claritybreak/internal/database"
	"github.com/mrlokans/claritybreak/internal/entities"
	"github.com/mrlokans/claritybreak/internal/library"
)

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

type loaderFunc func(ctx context.Context) (*entities.Library, error)

func (f loaderFunc) Load(ctx context.Context) (*entities.Library, error) { return f(ctx) }

func testLibrary() *entities.Library {
	return &entities.Library{Categories: []entities.Category{
		{ID: "science", Title: "The Science", Icon: entities.IconScience, Articles: []entities.Article{
			{ID: "thc-basics", Title: "THC basics", Content: "How THC binds to CB1.", Tags: []string{"science"}, Featured: true},
			{ID: "tolerance", Title: "How tolerance works", Content: "Receptors downregulate.", Tags: []string{"science", "health"}},
		}},
		{ID: "checklist", Title: "Checklist", Icon: "unknown-icon", Articles: []entities.Article{
			{ID: "day-1", Title: "Day 1", Content: "Hydrate and sleep early.", Tags: []string{"checklist"}, Featured: true},
		}},
	}}
}

func testCatalog() *library.Catalog {
	lib := testLibrary()
	return library.NewCatalog(loaderFunc(func(ctx context.Context) (*entities.Library, error) {
		return lib, nil
	}))
}

func failingCatalog() *library.Catalog {
	return library.NewCatalog(loaderFunc(func(ctx context.Context) (*entities.Library, error) {
		return nil, &library.LoadError{Kind: library.LoadErrorMissing, Source: "library.json", Err: errors.New("no such file")}
	}))
}

func doRequest(t *testing.T, router http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
