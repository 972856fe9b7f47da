// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/studydeck/internal/api"
	"github.com/taibuivan/studydeck/internal/platform/config"
	requestutil "github.com/taibuivan/studydeck/internal/platform/request"
	"github.com/taibuivan/studydeck/internal/platform/respond"
	"github.com/taibuivan/studydeck/internal/platform/sec"
)

type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	switch token {
	case "member":
		return &sec.AuthClaims{UserID: "user-1", Role: string(sec.RoleMember)}, nil
	case "admin":
		return &sec.AuthClaims{UserID: "user-9", Role: string(sec.RoleAdmin)}, nil
	}
	return nil, errors.New("invalid token")
}

// whoami echoes the principal of the request.
type whoami struct{}

func (whoami) Register(router chi.Router) {
	router.Get("/whoami", func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, userID)
	})
}

func newTestRouter(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	cfg := &config.Config{ServerPort: "0", Environment: "test"}
	return api.NewRouter(ctx, cfg, logger, stubVerifier{}, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Group:     whoami{},
	})
}

func TestRouter_Authentication(t *testing.T) {
	router := newTestRouter(t, api.HealthDependencies{})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"bad_scheme", "Basic abc", http.StatusUnauthorized},
		{"invalid_token", "Bearer nope", http.StatusUnauthorized},
		{"member", "Bearer member", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_PrincipalReachesHandler(t *testing.T) {
	router := newTestRouter(t, api.HealthDependencies{})

	request := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	request.Header.Set("Authorization", "Bearer member")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":"user-1"}`, recorder.Body.String())
}

func TestHealth_Probes(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		deps       api.HealthDependencies
		wantStatus int
		wantState  string
	}{
		{"ready", api.HealthDependencies{DatabaseName: "postgres", CheckDatabase: healthy}, http.StatusOK, "ready"},
		{"ready_with_ledger", api.HealthDependencies{DatabaseName: "mongo", CheckDatabase: healthy, CheckLedger: healthy}, http.StatusOK, "ready"},
		{"database_down", api.HealthDependencies{DatabaseName: "postgres", CheckDatabase: broken}, http.StatusServiceUnavailable, "degraded"},
		{"ledger_down", api.HealthDependencies{DatabaseName: "postgres", CheckDatabase: healthy, CheckLedger: broken}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, tt.deps)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.wantStatus, recorder.Code)

			var body struct {
				Data struct {
					Status string `json:"status"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantState, body.Data.Status)

			recorder = httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, http.StatusOK, recorder.Code)
		})
	}
}
