package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

func newTestSession(t *testing.T, h http.HandlerFunc) *Session {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	s, err := New(types.Config{APIURL: srv.URL + "/2.0/", Token: " secret ", UserAgent: "boxsdk-test"})
	require.NoError(t, err)
	return s
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(types.Config{APIURL: "not a url"})
	assert.ErrorIs(t, err, types.ErrAPIURLInvalid)
}

func TestSession_APIURLTrimsSlash(t *testing.T) {
	s, err := New(types.Config{APIURL: "http://localhost:1/2.0/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1/2.0", s.APIURL())
}

func TestSession_PostSendsJSONAndHeaders(t *testing.T) {
	var gotBody map[string]any
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2.0/comments", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "boxsdk-test", r.Header.Get("User-Agent"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"type":"comment","id":"7"}`)
	})

	var out map[string]any
	err := s.Post(context.Background(), s.APIURL()+"/comments", map[string]any{"message": "hi"}, &out)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": "hi"}, gotBody)
	assert.Equal(t, "7", out["id"])
}

func TestSession_ResolvesRelativePath(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2.0/comments/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, s.Delete(context.Background(), "/comments/9"))
}

func TestSession_GetEncodesQuery(t *testing.T) {
	type fields struct {
		Fields string `url:"fields,omitempty"`
	}
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "message,item", r.URL.Query().Get("fields"))
		_, _ = io.WriteString(w, `{"id":"1"}`)
	})

	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, s.Get(context.Background(), s.APIURL()+"/comments/1", fields{Fields: "message,item"}, &out))
	assert.Equal(t, "1", out.ID)
}

func TestSession_GetWithEmptyQuery(t *testing.T) {
	type fields struct {
		Fields string `url:"fields,omitempty"`
	}
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = io.WriteString(w, `{}`)
	})
	require.NoError(t, s.Get(context.Background(), s.APIURL()+"/comments/1", fields{}, nil))
}

func TestSession_APIError(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"type":"error","status":404,"code":"not_found","message":"Not Found","request_id":"abc"}`)
	})

	err := s.Put(context.Background(), s.APIURL()+"/comments/1", map[string]any{"message": "x"}, nil)
	require.Error(t, err)

	var apiErr *types.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "not_found", apiErr.Code)
	assert.Equal(t, "Not Found", apiErr.Message)
	assert.Equal(t, "abc", apiErr.RequestID)
	assert.Equal(t, http.MethodPut, apiErr.Method)
	assert.True(t, types.IsStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "http 404 not_found: Not Found")
}

func TestSession_APIErrorPlainBody(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Box-Request-Id", "req-1")
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	err := s.Get(context.Background(), s.APIURL()+"/comments/1", nil, nil)
	var apiErr *types.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream exploded", apiErr.Message)
	assert.Equal(t, "req-1", apiErr.RequestID)
}

func TestSession_TransportErrorUnchanged(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Get(ctx, s.APIURL()+"/comments/1", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	var apiErr *types.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestSession_NoTokenNoAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s, err := New(types.Config{APIURL: srv.URL})
	require.NoError(t, err)
	require.NoError(t, s.Delete(context.Background(), srv.URL+"/x"))
}
