// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package group

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/studydeck/internal/core/content"
	requestutil "github.com/taibuivan/studydeck/internal/platform/request"
	"github.com/taibuivan/studydeck/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for group operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new group [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the group endpoints. The caller applies authentication.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/groups", handler.listGroups)
	router.Post("/groups", handler.createGroup)
	router.Get("/groups/{groupID}", handler.getGroup)
	router.Patch("/groups/{groupID}", handler.updateGroup)
	router.Delete("/groups/{groupID}", handler.deleteGroup)
}

// deleteEnvelope carries the deleted group and the dependent step outcomes.
type deleteEnvelope struct {
	Data    *Group         `json:"data"`
	Cascade content.Report `json:"cascade"`
}

// # Group Endpoints

/*
GET /api/v1/groups.

Description: Lists the caller's groups in creation order.

Request:
  - page: int (0-indexed)
  - limit: int (1..100)

Response:
  - 200: []Group: Paginated list
  - 400: Invalid pagination parameters
*/
func (handler *Handler) listGroups(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params, err := requestutil.Pagination(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.ListGroups(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Items, page.Meta())
}

/*
GET /api/v1/groups/{groupID}.

Response:
  - 200: Group
  - 400: Malformed identifier
  - 404: Group not found
*/
func (handler *Handler) getGroup(writer http.ResponseWriter, request *http.Request) {
	groupID, err := requestutil.UUIDParam(request, FieldGroupID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	group, err := handler.service.GetGroup(request.Context(), groupID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, group)
}

/*
POST /api/v1/groups.

Description: Creates a group owned by the caller.

Request (Body):
  - name: string (required)
  - description: string

Response:
  - 201: Group: Created object
  - 400: Invalid JSON or validation failure
*/
func (handler *Handler) createGroup(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	group := &Group{Name: input.Name, Description: input.Description}
	if err := handler.service.CreateGroup(request.Context(), group, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, group)
}

/*
PATCH /api/v1/groups/{groupID}.

Description: Updates name and/or description of an owned group.

Response:
  - 200: Group: Updated entity
  - 400: Invalid JSON, validation failure or malformed identifier
  - 404: Group not found or not owned
*/
func (handler *Handler) updateGroup(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	groupID, err := requestutil.UUIDParam(request, FieldGroupID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	group, err := handler.service.UpdateGroup(request.Context(), groupID, userID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, group)
}

/*
DELETE /api/v1/groups/{groupID}.

Description: Deletes an owned group with all of its cards and tags.
A dependent step that fails is reported as pending; the group stays deleted.

Response:
  - 200: {data: Group, cascade: {steps: [...]}}
  - 400: Malformed identifier
  - 404: Group not found or not owned
*/
func (handler *Handler) deleteGroup(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	groupID, err := requestutil.UUIDParam(request, FieldGroupID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	group, report, err := handler.service.DeleteGroup(request.Context(), groupID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, deleteEnvelope{Data: group, Cascade: report})
}
