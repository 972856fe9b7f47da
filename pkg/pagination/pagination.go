// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
//
// # Parameter Policy
//
// Pages are 0-indexed. Absent or empty parameters take [DefaultPage] and
// [DefaultLimit]. Present parameters are parsed strictly: a non-numeric or
// negative page, a page past [MaxPage], or a limit outside [1, MaxLimit], is rejected with a
// [*ParamError] rather than silently coerced.
package pagination

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (0-indexed).
	DefaultPage = 0
	// MaxPage keeps page*limit within int for every accepted limit.
	MaxPage = math.MaxInt / MaxLimit

	// FieldPage and FieldLimit are the query parameter names.
	FieldPage  = "page"
	FieldLimit = "limit"
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Default returns the parameters used when a request supplies none.
func Default() Params {
	return Params{Page: DefaultPage, Limit: DefaultLimit}
}

// Offset returns the number of items skipped before this page.
func (p Params) Offset() int {
	return p.Page * p.Limit
}

// Valid reports whether the parameters describe a real window.
func (p Params) Valid() bool {
	return p.Page >= 0 && p.Limit > 0 && p.Page <= math.MaxInt/p.Limit
}

// ParamError describes a rejected pagination parameter.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("pagination: %s %s", e.Field, e.Reason)
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
func FromRequest(r *http.Request) (Params, error) {
	return Parse(r.URL.Query())
}

// Parse applies the parameter policy to a set of query values.
func Parse(values url.Values) (Params, error) {
	page, err := parseIntParam(values, FieldPage, DefaultPage)
	if err != nil {
		return Params{}, err
	}

	limit, err := parseIntParam(values, FieldLimit, DefaultLimit)
	if err != nil {
		return Params{}, err
	}

	if page < 0 {
		return Params{}, &ParamError{Field: FieldPage, Reason: "must not be negative"}
	}

	if page > MaxPage {
		return Params{}, &ParamError{Field: FieldPage, Reason: fmt.Sprintf("must not exceed %d", MaxPage)}
	}

	if limit < 1 || limit > MaxLimit {
		return Params{}, &ParamError{Field: FieldLimit, Reason: fmt.Sprintf("must be between 1 and %d", MaxLimit)}
	}

	return Params{Page: page, Limit: limit}, nil
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(values url.Values, key string, defaultVal int) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return defaultVal, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ParamError{Field: key, Reason: "must be an integer"}
	}

	return n, nil
}
