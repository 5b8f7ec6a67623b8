package partner

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
	r.Route("/partners", handler.MountRoutes)
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

func TestCreatePartnerEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/partners", map[string]any{
		"partner_code": "NV001",
		"partner_name": "Nguyen Van An",
		"type":         "WORKER",
		"phone":        "0901234567",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	require.Equal(t, "Partner created successfully", env.Message)

	var created Partner
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Equal(t, "NV001", created.Code)
	require.NotEmpty(t, created.ID)
}

func TestCreatePartnerValidationError(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/partners", map[string]any{
		"partner_name": "Nguyen Van An",
		"type":         "WORKER",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.False(t, env.Success)
	require.Equal(t, "partner_code is required", env.Message)
}

func TestCreatePartnerDuplicateCodeGets400(t *testing.T) {
	router, _ := newTestRouter(t)

	body := map[string]any{
		"partner_code": "NV001",
		"partner_name": "Nguyen Van An",
		"type":         "WORKER",
	}
	rec := doJSON(t, router, http.MethodPost, "/partners", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/partners", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.False(t, env.Success)
	require.Equal(t, "Partner code 'NV001' already exists", env.Message)
}

func TestGetPartnerNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/partners/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	env := decodeEnvelope(t, rec)
	require.False(t, env.Success)
	require.Equal(t, "Partner with ID 'does-not-exist' not found", env.Message)
}

func TestListPartnersReturnsEmptyArray(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/partners", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestDeletePartnerEndpoint(t *testing.T) {
	router, repo := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/partners", map[string]any{
		"partner_code": "NV001",
		"partner_name": "An",
		"type":         "WORKER",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	var created Partner
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec = doJSON(t, router, http.MethodDelete, "/partners/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	require.True(t, env.Success)
	require.Equal(t, "Partner deleted successfully", env.Message)
	require.Empty(t, repo.partners)
}
