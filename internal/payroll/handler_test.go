package payroll

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (chi.Router, *memoryRepo) {
	t.Helper()
	repo := newMemoryRepo()
	handler := NewHandler(slog.Default(), newTestService(repo))
	r := chi.NewRouter()
	r.Route("/payrolls", handler.MountRoutes)
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

func TestUpdateStatusEndpointPaysWithDate(t *testing.T) {
	router, repo := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/payrolls", map[string]any{
		"partner_id":   "p1",
		"total_amount": 600,
		"final_amount": 500,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Payroll
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))

	rec = doJSON(t, router, http.MethodPut, "/payrolls/"+created.ID+"/status", map[string]any{
		"status":       "PAID",
		"payment_date": "2025-04-15",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var paid Payroll
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &paid))
	require.Equal(t, StatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)
	require.True(t, paid.PaymentDate.Equal(time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)))

	require.Len(t, repo.payments, 1)
}

func TestUpdateStatusEndpointBadDateFormat(t *testing.T) {
	router, repo := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/payrolls", map[string]any{
		"partner_id":   "p1",
		"final_amount": 500,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Payroll
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))

	rec = doJSON(t, router, http.MethodPut, "/payrolls/"+created.ID+"/status", map[string]any{
		"status":       "PAID",
		"payment_date": "15/04/2025",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "payment_date must be in YYYY-MM-DD format", decodeEnvelope(t, rec).Message)
	require.Empty(t, repo.payments)
}

func TestUpdateStatusEndpointUnknownStatus(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/payrolls/any/status", map[string]any{
		"status": "SETTLED",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, decodeEnvelope(t, rec).Success)
}
