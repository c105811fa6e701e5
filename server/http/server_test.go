package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	s := New(":0", func() bool { return false })

	rec := get(t, s.Handler(), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestReadyzBeforeInitialization(t *testing.T) {
	s := New(":0", func() bool { return false })

	rec := get(t, s.Handler(), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "initializing", rec.Body.String())
}

func TestReadyzAfterInitialization(t *testing.T) {
	ready := false
	s := New(":0", func() bool { return ready })

	assert.Equal(t, http.StatusServiceUnavailable, get(t, s.Handler(), "/readyz").Code)

	ready = true
	rec := get(t, s.Handler(), "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", rec.Body.String())
}

func TestNilReadyFunc(t *testing.T) {
	s := New(":0", nil)

	assert.Equal(t, http.StatusServiceUnavailable, get(t, s.Handler(), "/readyz").Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := New(":0", func() bool { return true })

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
