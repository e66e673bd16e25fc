package property

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propnest/propnest/internal/logging"
	"github.com/propnest/propnest/internal/middleware"
)

func setupPropertyApp(t *testing.T) *fiber.App {
	t.Helper()
	h := NewHandler(NewService(NewMemoryRepository()))
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(logging.Discard())})
	g := app.Group("/properties")
	g.Get("/", h.List)
	g.Get("/paged", h.Paged)
	g.Get("/search", h.Search)
	g.Get("/:id", h.Get)
	g.Post("/", h.Create)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
	return app
}

func send(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestHandlerCRUD(t *testing.T) {
	app := setupPropertyApp(t)

	status, raw := send(t, app, http.MethodPost, "/properties",
		`{"address":"123 Main St","price":250000,"size":120,"description":"Beautiful house"}`)
	require.Equal(t, http.StatusOK, status, string(raw))
	created := decode[Property](t, raw)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "123 Main St", created.Address)

	status, raw = send(t, app, http.MethodGet, "/properties/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created, decode[Property](t, raw))

	status, raw = send(t, app, http.MethodPut, "/properties/1", `{"price":300000}`)
	require.Equal(t, http.StatusOK, status, string(raw))
	updated := decode[Property](t, raw)
	assert.Equal(t, 300000.0, updated.Price)
	assert.Equal(t, created.Address, updated.Address)
	assert.Equal(t, created.Size, updated.Size)

	status, raw = send(t, app, http.MethodGet, "/properties", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []Property{updated}, decode[[]Property](t, raw))

	status, _ = send(t, app, http.MethodDelete, "/properties/1", "")
	require.Equal(t, http.StatusNoContent, status)
	status, _ = send(t, app, http.MethodDelete, "/properties/1", "")
	require.Equal(t, http.StatusNoContent, status)

	status, raw = send(t, app, http.MethodGet, "/properties/1", "")
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, map[string]string{"error": "resource not found"}, decode[map[string]string](t, raw))

	status, raw = send(t, app, http.MethodGet, "/properties", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestHandlerRejectsBadInput(t *testing.T) {
	app := setupPropertyApp(t)

	cases := []struct {
		method, target, body string
		status               int
	}{
		{http.MethodGet, "/properties/abc", "", http.StatusBadRequest},
		{http.MethodPost, "/properties", `{"address":`, http.StatusBadRequest},
		{http.MethodPost, "/properties", `{"address":"","price":1,"size":1}`, http.StatusBadRequest},
		{http.MethodPost, "/properties", `{"address":"a","price":-1,"size":1}`, http.StatusBadRequest},
		{http.MethodPut, "/properties/7", `{"price":1}`, http.StatusNotFound},
		{http.MethodGet, "/properties/search?minPrice=cheap", "", http.StatusBadRequest},
		{http.MethodGet, "/properties/search?maxSize=NaN", "", http.StatusBadRequest},
		{http.MethodGet, "/properties/paged?page=-1", "", http.StatusBadRequest},
		{http.MethodGet, "/properties/paged?size=0", "", http.StatusBadRequest},
		{http.MethodGet, "/properties/paged?size=ten", "", http.StatusBadRequest},
	}
	for _, tc := range cases {
		status, raw := send(t, app, tc.method, tc.target, tc.body)
		assert.Equal(t, tc.status, status, "%s %s: %s", tc.method, tc.target, raw)
		assert.Contains(t, string(raw), `"error"`)
	}
}

func TestHandlerPagedAndSearch(t *testing.T) {
	app := setupPropertyApp(t)
	for _, body := range []string{
		`{"address":"123 Main St","price":250000,"size":120}`,
		`{"address":"45 Elm Avenue","price":100000,"size":80}`,
		`{"address":"9 Main Road","price":350000,"size":200}`,
	} {
		status, raw := send(t, app, http.MethodPost, "/properties", body)
		require.Equal(t, http.StatusOK, status, string(raw))
	}

	status, raw := send(t, app, http.MethodGet, "/properties/paged?page=1&size=2", "")
	require.Equal(t, http.StatusOK, status)
	page := decode[Page](t, raw)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Size)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "9 Main Road", page.Content[0].Address)

	status, raw = send(t, app, http.MethodGet, "/properties/paged", "")
	require.Equal(t, http.StatusOK, status)
	page = decode[Page](t, raw)
	assert.Equal(t, DefaultPageSize, page.Size)
	assert.Len(t, page.Content, 3)

	status, raw = send(t, app, http.MethodGet, "/properties/paged?page=100000000000000000&size=100", "")
	require.Equal(t, http.StatusOK, status, string(raw))
	page = decode[Page](t, raw)
	assert.Empty(t, page.Content)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)

	status, raw = send(t, app, http.MethodGet, "/properties/search?address=main&minPrice=200000&maxPrice=300000", "")
	require.Equal(t, http.StatusOK, status)
	found := decode[[]Property](t, raw)
	require.Len(t, found, 1)
	assert.Equal(t, "123 Main St", found[0].Address)

	status, raw = send(t, app, http.MethodGet, "/properties/search?minPrice=400000", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))
}
