// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/studydeck/internal/platform/request"
	"github.com/taibuivan/studydeck/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Register(router chi.Router) {
	router.Get("/groups/{groupID}/tags", handler.listTags)
	router.Post("/tags", handler.createTag)
	router.Get("/tags/{tagID}", handler.getTag)
	router.Delete("/tags/{tagID}", handler.deleteTag)
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	groupID, err := requestutil.UUIDParam(request, FieldGroupParam)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params, err := requestutil.Pagination(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.ListTags(request.Context(), groupID, requestutil.TagNames(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, page.Items, page.Meta())
}

func (handler *Handler) getTag(writer http.ResponseWriter, request *http.Request) {
	tagID, err := requestutil.UUIDParam(request, FieldTagID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.service.GetTag(request.Context(), tagID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tag)
}

func (handler *Handler) createTag(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		GroupID     string `json:"group_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag := &Tag{GroupID: input.GroupID, Name: input.Name, Description: input.Description}
	if err := handler.service.CreateTag(request.Context(), tag, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, tag)
}

func (handler *Handler) deleteTag(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tagID, err := requestutil.UUIDParam(request, FieldTagID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTag(request.Context(), tagID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
