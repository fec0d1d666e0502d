package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/client/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newStore(t *testing.T, token string) *tokenstore.MemoryStore {
	t.Helper()
	s := tokenstore.NewMemoryStore()
	if token != "" {
		require.NoError(t, s.Set(context.Background(), token, time.Hour))
	}
	return s
}

func TestHTTPClient_AttachesBearerWhenTokenStored(t *testing.T) {
	var gotAuth, gotID, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(AuthorizationHeader)
		gotID = r.Header.Get(RequestIDHeader)
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, newStore(t, "t1"))
	require.NoError(t, err)

	var out map[string]string
	require.NoError(t, c.Get(context.Background(), "/config", &out))
	assert.Equal(t, "Bearer t1", gotAuth)
	assert.NotEmpty(t, gotID)
	assert.Equal(t, "/api/config", gotPath)
	assert.Equal(t, "ok", out["message"])
}

func TestHTTPClient_NoTokenSendsUnauthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(AuthorizationHeader)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL+"/", newStore(t, ""))
	require.NoError(t, err)

	require.NoError(t, c.Delete(context.Background(), "/credentials/1", nil))
	assert.Empty(t, gotAuth)
}

func TestHTTPClient_401ClearsTokenAndRunsHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"token expired"}`))
	}))
	defer srv.Close()

	store := newStore(t, "t1")
	hookCalls := 0
	c, err := NewHTTPClient(srv.URL, store, WithUnauthorizedHandler(func(context.Context) { hookCalls++ }))
	require.NoError(t, err)

	err = c.Get(context.Background(), "/credentials/my-credentials", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, KindUnauthorized, KindOf(err))
	assert.Equal(t, 1, hookCalls)

	_, ok, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "token must be cleared")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "token expired", apiErr.Message)
}

func TestHTTPClient_LateHookRegistration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, newStore(t, "t1"))
	require.NoError(t, err)

	called := false
	c.SetUnauthorizedHandler(func(context.Context) { called = true })

	err = c.Post(context.Background(), "/auth/verify-token", map[string]string{"token": "t1"}, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, called)
}

func TestHTTPClient_StatusKinds(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
		wantErr  error
		fields   map[string]string
	}{
		{"forbidden", http.StatusForbidden, `{"error":"Admin access required"}`, KindForbidden, ErrForbidden, nil},
		{"not found", http.StatusNotFound, ``, KindNotFound, ErrNotFound, nil},
		{"validation map", http.StatusBadRequest, `{"error":"invalid","fields":{"email":"must be a valid email address"}}`,
			KindValidation, ErrValidation, map[string]string{"email": "must be a valid email address"}},
		{"validation list", http.StatusBadRequest, `{"message":"invalid","errors":["a","b"]}`,
			KindValidation, ErrValidation, map[string]string{"": "a; b"}},
		{"server", http.StatusInternalServerError, `oops`, KindServer, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			store := newStore(t, "t1")
			c, err := NewHTTPClient(srv.URL, store, WithUnauthorizedHandler(func(context.Context) {
				t.Fatal("hook must not run for non-401 responses")
			}))
			require.NoError(t, err)

			err = c.Get(context.Background(), "/x", nil)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.fields, FieldErrors(err))

			_, ok, _ := store.Get(context.Background())
			assert.True(t, ok, "token survives non-401 errors")
		})
	}
}

func TestHTTPClient_NetworkFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, newStore(t, ""))
	require.NoError(t, err)

	err = c.Get(context.Background(), "/config", nil)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestHTTPClient_RefusesTokenOverPlainHTTP(t *testing.T) {
	sent := false
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		sent = true
		return nil, errors.New("unreachable")
	})}

	c, err := NewHTTPClient("http://tracker.example.com", newStore(t, "t1"), WithHTTPClient(hc))
	require.NoError(t, err)

	err = c.Get(context.Background(), "/credentials/my-credentials", nil)
	assert.ErrorIs(t, err, ErrInsecureTransport)
	assert.False(t, sent, "nothing may be sent")

	c, err = NewHTTPClient("http://tracker.example.com", newStore(t, "t1"), WithHTTPClient(hc), WithAllowInsecure(true))
	require.NoError(t, err)
	err = c.Get(context.Background(), "/credentials/my-credentials", nil)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, sent)
}

func TestHTTPClient_AnonymousPlainHTTPIsAllowed(t *testing.T) {
	var gotURL string
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       http.NoBody,
			Header:     http.Header{},
			Request:    r,
		}, nil
	})}

	c, err := NewHTTPClient("http://tracker.example.com/base", newStore(t, ""), WithHTTPClient(hc))
	require.NoError(t, err)
	require.NoError(t, c.Get(context.Background(), "/config", nil))
	assert.Equal(t, "http://tracker.example.com/base/api/config", gotURL)
}

func TestNewHTTPClient_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://x", "http://", "::"} {
		_, err := NewHTTPClient(raw, newStore(t, ""))
		assert.Error(t, err, raw)
	}
	_, err := NewHTTPClient("https://x", nil)
	assert.Error(t, err)
}
