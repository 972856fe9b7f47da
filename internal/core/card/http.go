// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package card

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/studydeck/internal/platform/request"
	"github.com/taibuivan/studydeck/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for card operations and the quiz.
type Handler struct {
	service *Service
}

// NewHandler constructs a new card [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the card endpoints. The caller applies authentication.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/groups/{groupID}/cards", handler.listCards)
	router.Get("/groups/{groupID}/quiz", handler.quiz)
	router.Post("/cards", handler.createCard)
	router.Get("/cards/{cardID}", handler.getCard)
	router.Patch("/cards/{cardID}", handler.updateCard)
	router.Delete("/cards/{cardID}", handler.deleteCard)
}

// quizEnvelope carries the drawn card (or null) and the match count.
type quizEnvelope struct {
	Data  *Card `json:"data"`
	Total int   `json:"total"`
}

// createInput is the accepted body of POST /cards.
type createInput struct {
	GroupID    string     `json:"group_id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	References References `json:"references"`
	Tags       []Tag      `json:"tags"`
}

// # Card Endpoints

/*
GET /api/v1/groups/{groupID}/cards.

Description: Lists the cards of a group in creation order.

Request:
  - page: int (0-indexed)
  - limit: int (1..100)
  - tag: string (repeatable; also tags=a,b)

Response:
  - 200: []Card: Paginated list
  - 400: Invalid pagination parameters or malformed identifier
*/
func (handler *Handler) listCards(writer http.ResponseWriter, request *http.Request) {
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

	page, err := handler.service.ListCards(request.Context(), groupID, requestutil.TagNames(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Items, page.Meta())
}

/*
GET /api/v1/groups/{groupID}/quiz.

Description: Draws one random card, optionally among those carrying any of the tags.

Request:
  - tag: string (repeatable; also tags=a,b and tagNames)

Response:
  - 200: {data: Card|null, total: int}
  - 400: Malformed identifier
*/
func (handler *Handler) quiz(writer http.ResponseWriter, request *http.Request) {
	groupID, err := requestutil.UUIDParam(request, FieldGroupParam)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	card, total, err := handler.service.Quiz(request.Context(), groupID, requestutil.TagNames(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, quizEnvelope{Data: card, Total: total})
}

/*
GET /api/v1/cards/{cardID}.

Response:
  - 200: Card
  - 400: Malformed identifier
  - 404: Card not found
*/
func (handler *Handler) getCard(writer http.ResponseWriter, request *http.Request) {
	cardID, err := requestutil.UUIDParam(request, FieldCardID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	card, err := handler.service.GetCard(request.Context(), cardID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, card)
}

/*
POST /api/v1/cards.

Description: Creates a card in a group owned by the caller.

Request (Body):
  - group_id: string (required)
  - question: string (required)
  - answer: string (required)
  - references: []{type, ...}
  - tags: []{name, description}

Response:
  - 201: Card: Created object
  - 400: Invalid JSON, unknown reference type or validation failure
  - 404: Group not found or not owned
*/
func (handler *Handler) createCard(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	card := &Card{
		GroupID:    input.GroupID,
		Question:   input.Question,
		Answer:     input.Answer,
		References: input.References,
		Tags:       input.Tags,
	}
	if err := handler.service.CreateCard(request.Context(), card, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, card)
}

/*
PATCH /api/v1/cards/{cardID}.

Description: Replaces any subset of question, answer, references and tags.

Response:
  - 200: Card: Updated entity
  - 400: Invalid JSON, validation failure or malformed identifier
  - 404: Card not found or group not owned
*/
func (handler *Handler) updateCard(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cardID, err := requestutil.UUIDParam(request, FieldCardID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	card, err := handler.service.UpdateCard(request.Context(), cardID, userID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, card)
}

/*
DELETE /api/v1/cards/{cardID}.

Response:
  - 204: Deleted
  - 400: Malformed identifier
  - 404: Card not found or group not owned
*/
func (handler *Handler) deleteCard(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cardID, err := requestutil.UUIDParam(request, FieldCardID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCard(request.Context(), cardID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
