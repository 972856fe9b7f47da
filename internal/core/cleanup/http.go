// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cleanup

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/studydeck/internal/platform/constants"
	"github.com/taibuivan/studydeck/internal/platform/middleware"
	"github.com/taibuivan/studydeck/internal/platform/respond"
	"github.com/taibuivan/studydeck/internal/platform/sec"
)

// Handler exposes the sweeper to operators.
type Handler struct {
	sweeper *Sweeper
}

// NewHandler constructs a new cleanup [Handler].
func NewHandler(sweeper *Sweeper) *Handler {
	return &Handler{sweeper: sweeper}
}

// Register mounts the admin endpoints on router.
func (handler *Handler) Register(router chi.Router) {
	router.With(middleware.RequireRole(sec.RoleAdmin)).Post("/admin/cleanup/sweep", handler.sweep)
}

/*
POST /api/v1/admin/cleanup/sweep.

Description: Replays pending dependent deletes of partially deleted groups.

Response:
  - 200: SweepReport
  - 401: Authentication required
  - 403: Admin role required
*/
func (handler *Handler) sweep(writer http.ResponseWriter, request *http.Request) {

	// The sweep outlives the request deadline but not the sweep budget.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(request.Context()), constants.SweepTimeout)
	defer cancel()

	report, err := handler.sweeper.Sweep(ctx)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}
