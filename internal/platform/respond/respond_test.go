// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/studydeck/internal/platform/apperr"
	"github.com/taibuivan/studydeck/internal/platform/respond"
	"github.com/taibuivan/studydeck/pkg/pagination"
)

/*
TestPaginated_FlatEnvelope verifies that page metadata sits beside the data.
*/
func TestPaginated_FlatEnvelope(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Paginated(recorder, []string{"a", "b"}, pagination.NewMeta(1, 2, 5))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, []any{"a", "b"}, body["data"])
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 2, body["limit"])
	assert.EqualValues(t, 5, body["total"])
	assert.EqualValues(t, 3, body["total_pages"])
}

/*
TestError_Mapping checks status codes for classified and unclassified errors.
*/
func TestError_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not_found", apperr.NotFound("Group"), http.StatusNotFound, apperr.CodeNotFound},
		{"malformed_id", apperr.MalformedID("id"), http.StatusBadRequest, apperr.CodeValidation},
		{"storage_unavailable", apperr.StorageUnavailable(errors.New("dial")), http.StatusServiceUnavailable, apperr.CodeServiceUnavailable},
		{"plain_error", errors.New("boom"), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantCode, envelope.Code)
			assert.NotEmpty(t, envelope.Error)
		})
	}
}
