package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouterAPIHandler(t *testing.T, config *Config) *APIHandler {
	t.Helper()
	logger := zap.NewNop()
	bs, err := NewBookService(logger, config, NewMockClocker(), NewMemoryBookStorage(logger))
	require.NoError(t, err)
	as := NewAuthService(logger,
		NewMemoryCredentialStorage(logger, DefaultSeedUsers()),
		NewMemoryTokenRegistry(logger, NewMockClocker()),
	)
	return NewAPIHandler(logger, config, &Statistics{started: NewMockClocker().Now()}, NewMockClocker(), NewMockUIDHandler("abc", true), bs, as)
}

// TestSetupAuthRoutes ensures all expected identity endpoints are implemented.
func TestSetupAuthRoutes(t *testing.T) {
	testCases := []struct {
		name        string
		request     *http.Request
		implemented bool
	}{
		{
			"index endpoint",
			httptest.NewRequest(http.MethodGet, "/", nil),
			true,
		},
		{
			"status endpoint",
			httptest.NewRequest(http.MethodGet, "/status", nil),
			true,
		},
		{
			"health endpoint",
			httptest.NewRequest(http.MethodGet, "/health", nil),
			true,
		},
		{
			"signup endpoint",
			httptest.NewRequest(http.MethodPost, "/signup", nil),
			true,
		},
		{
			"login endpoint",
			httptest.NewRequest(http.MethodPost, "/login", nil),
			true,
		},
		{
			"signup rejects get",
			httptest.NewRequest(http.MethodGet, "/signup", nil),
			false,
		},
		{
			"unknown identity endpoint",
			httptest.NewRequest(http.MethodPost, "/logout", nil),
			false,
		},
	}

	api := newTestRouterAPIHandler(t, &Config{})
	router := httprouter.New()
	m := &MiddlewareMap{public: (&Middlewares{}).Chain, protected: (&Middlewares{}).Chain, ops: (&Middlewares{}).Chain}
	api.SetupAuthRoutes(router, m)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tc.request)
			if tc.implemented {
				assert.NotEqual(t, 404, w.Code)
			} else {
				assert.Equal(t, 404, w.Code)
			}
		})
	}
}

// TestSetupBookRoutes ensures all expected book endpoints are implemented.
func TestSetupBookRoutes(t *testing.T) {
	testCases := []struct {
		name        string
		request     *http.Request
		implemented bool
	}{
		{
			"create book endpoint",
			httptest.NewRequest(http.MethodPost, "/v1/books", nil),
			true,
		},
		{
			"fetch all books endpoint",
			httptest.NewRequest(http.MethodGet, "/v1/books", nil),
			true,
		},
		{
			"fetch all books endpoint with slash",
			httptest.NewRequest(http.MethodGet, "/v1/books/", nil),
			true,
		},
		{
			"fetch single book endpoint",
			httptest.NewRequest(http.MethodGet, "/v1/books/1", nil),
			true,
		},
		{
			"update book endpoint",
			httptest.NewRequest(http.MethodPut, "/v1/books/1", nil),
			true,
		},
		{
			"delete book endpoint",
			httptest.NewRequest(http.MethodDelete, "/v1/books/1", nil),
			true,
		},
		{
			"invalid api endpoint",
			httptest.NewRequest(http.MethodGet, "/v1", nil),
			false,
		},
		{
			"invalid books endpoint",
			httptest.NewRequest(http.MethodGet, "/books", nil),
			false,
		},
	}

	api := newTestRouterAPIHandler(t, &Config{})
	router := httprouter.New()
	m := &MiddlewareMap{public: (&Middlewares{}).Chain, protected: (&Middlewares{}).Chain, ops: (&Middlewares{}).Chain}
	api.SetupBookRoutes(router, m)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tc.request)
			if tc.implemented {
				assert.NotEqual(t, 404, w.Code)
			} else {
				assert.Equal(t, 404, w.Code)
			}
		})
	}
}

// TestSetupOpsRoutes ensures all expected operations endpoints are implemented.
func TestSetupOpsRoutes(t *testing.T) {
	testCases := []struct {
		name        string
		request     *http.Request
		implemented bool
	}{
		{
			"fetch configs endpoint",
			httptest.NewRequest(http.MethodGet, "/ops/configs", nil),
			true,
		},
		{
			"fetch stats endpoint",
			httptest.NewRequest(http.MethodGet, "/ops/stats", nil),
			true,
		},
		{
			"maintenance mode endpoint",
			httptest.NewRequest(http.MethodGet, "/ops/maintenance", nil),
			true,
		},
		{
			"invalid ops endpoint",
			httptest.NewRequest(http.MethodGet, "/ops", nil),
			false,
		},
		{
			"unknown ops endpoint",
			httptest.NewRequest(http.MethodGet, "/ops/unknown", nil),
			false,
		},
		{
			"disabled profiler endpoint",
			httptest.NewRequest(http.MethodGet, "/ops/debug/pprof/", nil),
			false,
		},
	}

	api := newTestRouterAPIHandler(t, &Config{ProfilerEndpointsEnable: false})
	router := httprouter.New()
	m := &MiddlewareMap{public: (&Middlewares{}).Chain, protected: (&Middlewares{}).Chain, ops: (&Middlewares{}).Chain}
	api.SetupOpsRoutes(router, m)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tc.request)
			if tc.implemented {
				assert.NotEqual(t, 404, w.Code)
			} else {
				assert.Equal(t, 404, w.Code)
			}
		})
	}
}

// TestSetupRoutes ensures the ops endpoints are mounted on demand only.
func TestSetupRoutes(t *testing.T) {
	testCases := []struct {
		name               string
		OpsEndpointsEnable bool
		request            *http.Request
		implemented        bool
	}{
		{
			"ops disable:fetch configs endpoint",
			false,
			httptest.NewRequest(http.MethodGet, "/ops/configs", nil),
			false,
		},
		{
			"ops enable:fetch configs endpoint",
			true,
			httptest.NewRequest(http.MethodGet, "/ops/configs", nil),
			true,
		},
		{
			"ops disable:create book endpoint",
			false,
			httptest.NewRequest(http.MethodPost, "/v1/books", nil),
			true,
		},
		{
			"ops enable:create book endpoint",
			true,
			httptest.NewRequest(http.MethodPost, "/v1/books", nil),
			true,
		},
		{
			"ops disable:login endpoint",
			false,
			httptest.NewRequest(http.MethodPost, "/login", nil),
			true,
		},
	}

	config := &Config{OpsEndpointsEnable: false, ProfilerEndpointsEnable: false}
	api := newTestRouterAPIHandler(t, config)
	m := &MiddlewareMap{public: (&Middlewares{}).Chain, protected: (&Middlewares{}).Chain, ops: (&Middlewares{}).Chain}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := httprouter.New()
			config.OpsEndpointsEnable = tc.OpsEndpointsEnable
			api.SetupRoutes(router, m)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tc.request)
			if tc.implemented {
				assert.NotEqual(t, 404, w.Code)
			} else {
				assert.Equal(t, 404, w.Code)
			}
		})
	}
}

// TestSetupRoutes_NotFound ensures exact status code and json response body when a user requests an inexistant route.
func TestSetupRoutes_NotFound(t *testing.T) {
	api := newTestRouterAPIHandler(t, &Config{})
	m := &MiddlewareMap{public: (&Middlewares{}).Chain, protected: (&Middlewares{}).Chain, ops: (&Middlewares{}).Chain}
	router := httprouter.New()
	api.SetupRoutes(router, m)
	r := httptest.NewRequest(http.MethodGet, "/x/books/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	expected := `{"requestid":"r:abc", "message":"route does not exist", "path":"GET /x/books/"}`
	assert.JSONEq(t, expected, string(data))
}

// TestSetupRoutes_AuthGate exercises the full middleware stacks over
// the router: reads stay open while every mutating book call needs a
// previously issued bearer token.
func TestSetupRoutes_AuthGate(t *testing.T) {
	api := newTestRouterAPIHandler(t, &Config{})
	public, protected, ops := api.MiddlewaresStacks()
	m := &MiddlewareMap{public: public.Chain, protected: protected.Chain, ops: ops.Chain}
	router := httprouter.New()
	api.SetupRoutes(router, m)

	payload := []byte(`{"title":"Gated book", "description":"d", "author":"a", "price":10.5}`)

	t.Run("should fail: create without token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should fail: delete with garbage token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodDelete, "/v1/books/1", nil)
		r.Header.Set(AuthorizationHeader, "Bearer not-issued")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should pass: reads stay public", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should pass: create with issued token", func(t *testing.T) {
		token, err := api.authService.Login(context.TODO(), "shiv@gmail.com", "shiv@123")
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBuffer(payload))
		r.Header.Set(AuthorizationHeader, BearerScheme+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
