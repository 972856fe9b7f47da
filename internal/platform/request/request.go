// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/studydeck/internal/platform/apperr"
	"github.com/taibuivan/studydeck/internal/platform/ctxutil"
	"github.com/taibuivan/studydeck/internal/platform/sec"
	"github.com/taibuivan/studydeck/internal/platform/validate"
	"github.com/taibuivan/studydeck/pkg/pagination"
	"github.com/taibuivan/studydeck/pkg/query"
	"github.com/taibuivan/studydeck/pkg/uuid"
)

// Query parameters accepted by tag-filtered endpoints.
const (
	ParamTag      = "tag"
	ParamTags     = "tags"
	ParamTagNames = "tagNames"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: the decoder's [apperr.AppError] if a custom unmarshaler raised one,
    validate.ErrInvalidJSON for any other decoding failure, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		var appError *apperr.AppError
		if errors.As(err, &appError) {
			return appError
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
UUIDParam retrieves a named URL parameter and rejects it unless it is a UUID.

Returns:
  - string: the identifier
  - error: apperr.MalformedID naming the parameter
*/
func UUIDParam(request *http.Request, name string) (string, error) {
	id := ID(request, name)
	if !uuid.Valid(id) {
		return "", apperr.MalformedID(name)
	}
	return id, nil
}

/*
Pagination parses the page/limit window from the query string.

A rejected parameter becomes a 400 naming the offending field.
*/
func Pagination(request *http.Request) (pagination.Params, error) {
	params, err := pagination.FromRequest(request)
	if err != nil {
		var paramError *pagination.ParamError
		if errors.As(err, &paramError) {
			return pagination.Params{}, apperr.ValidationError("Invalid pagination parameters", apperr.FieldError{
				Field:   paramError.Field,
				Message: paramError.Reason,
			})
		}
		return pagination.Params{}, apperr.ValidationError("Invalid pagination parameters")
	}
	return params, nil
}

/*
TagNames collects tag filter values from ?tag=a&tag=b, ?tags=a,b and the
legacy ?tagNames=a&tagNames=b form.
*/
func TagNames(request *http.Request) []string {
	values := request.URL.Query()
	return query.Strings(values[ParamTag], values[ParamTags], values[ParamTagNames])
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get user claims
	claims := Claims(request)

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.

Returns:
  - string: User ID (the owner of anything the request creates)
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}

	return claims.UserID, nil
}
