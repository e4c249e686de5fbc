package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/DocChat/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlers_NotInitialised(t *testing.T) {
	require.Nil(t, handlerInstance)

	routes := map[string]http.HandlerFunc{
		"create":   CreateSessionHandler,
		"get":      GetSessionHandler,
		"delete":   DeleteSessionHandler,
		"document": PostDocumentHandler,
		"ask":      AskHandler,
		"status":   GetStatusHandler,
	}
	for name, h := range routes {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodPost, "/", nil))

			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			var res api.JobResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
			require.NotNil(t, res.Error)
			assert.Equal(t, http.StatusServiceUnavailable, res.Error.Code)
		})
	}
}

func TestValidateContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := httptest.NewRecorder()
	assert.False(t, validateContext(rec, ctx))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUnreadableUpload(t *testing.T) {
	cause := errors.New("unexpected EOF")
	_, err := io.ReadAll(unreadableUpload{err: cause})
	assert.ErrorIs(t, err, cause)
}
