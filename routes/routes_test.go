package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"clinicvoice/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ok(c *gin.Context) { c.String(http.StatusOK, c.FullPath()) }

func deny(c *gin.Context) { c.AbortWithStatus(http.StatusForbidden) }

func newBundle() *handlers.HandlerBundle {
	return &handlers.HandlerBundle{
		Index:            ok,
		InboundCall:      ok,
		ProcessSpeech:    ok,
		CallStatus:       ok,
		MakeCall:         ok,
		ListAppointments: ok,
	}
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newBundle())

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/"},
		{http.MethodPost, "/voice"},
		{http.MethodPost, "/process"},
		{http.MethodPost, "/status"},
		{http.MethodPost, "/make_call"},
		{http.MethodGet, "/api/appointments"},
		{http.MethodGet, "/health"},
	} {
		w := serve(r, tc.method, tc.path)
		assert.Equal(t, http.StatusOK, w.Code, tc.path)
	}
}

func TestGuardsApplyToTheirGroups(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hb := newBundle()
	hb.WebhookGuard = deny
	r := gin.New()
	RegisterRoutes(r, hb)

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodPost, "/voice").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodPost, "/process").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/make_call").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/").Code)

	hb = newBundle()
	hb.APIAuth = deny
	r = gin.New()
	RegisterRoutes(r, hb)

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodPost, "/make_call").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/api/appointments").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/voice").Code)
}
