package season

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (chi.Router, *memoryRepo) {
	t.Helper()
	repo := newMemoryRepo()
	handler := NewHandler(slog.Default(), newTestService(repo))
	r := chi.NewRouter()
	r.Route("/seasons", handler.MountRoutes)
	return r, repo
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestUpdateSeasonBlankEndDateClearsIt(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/seasons", map[string]any{
		"season_name": "Spring 2025",
		"start_date":  "2025-02-01",
		"end_date":    "2025-06-30",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Season
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))
	require.NotNil(t, created.EndDate)

	rec = doJSON(t, router, http.MethodPut, "/seasons/"+created.ID, map[string]any{
		"end_date": "",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated Season
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &updated))
	require.Nil(t, updated.EndDate)
}

func TestUpdateSeasonOmittedEndDateKeepsIt(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/seasons", map[string]any{
		"season_name": "Spring 2025",
		"start_date":  "2025-02-01",
		"end_date":    "2025-06-30",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Season
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))

	rec = doJSON(t, router, http.MethodPut, "/seasons/"+created.ID, map[string]any{
		"season_name": "Spring 2025 (revised)",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated Season
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &updated))
	require.NotNil(t, updated.EndDate)
	require.Equal(t, "Spring 2025 (revised)", updated.Name)
}

func TestUpdateSeasonBadEndDateFormat(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/seasons", map[string]any{
		"season_name": "Spring 2025",
		"start_date":  "2025-02-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Season
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))

	rec = doJSON(t, router, http.MethodPut, "/seasons/"+created.ID, map[string]any{
		"end_date": "30/06/2025",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "end_date must be in YYYY-MM-DD format", decodeEnvelope(t, rec).Message)
}
