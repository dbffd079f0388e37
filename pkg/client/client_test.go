package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenServer struct {
	mu           sync.Mutex
	validAccess  string
	validRefresh string
	refreshCalls int32
	profileCalls int32
	refuseAll    bool
	refreshDelay time.Duration
}

func (ts *tokenServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ts.refreshCalls, 1)
		if ts.refreshDelay > 0 {
			time.Sleep(ts.refreshDelay)
		}

		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		ts.mu.Lock()
		defer ts.mu.Unlock()
		if ts.refuseAll || body.RefreshToken != ts.validRefresh {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Invalid refresh token"})
			return
		}

		ts.validAccess = ts.validAccess + "+"
		ts.validRefresh = ts.validRefresh + "+"
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"accessToken":  ts.validAccess,
				"refreshToken": ts.validRefresh,
			},
		})
	})

	mux.HandleFunc("/api/v1/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ts.profileCalls, 1)

		ts.mu.Lock()
		valid := "Bearer " + ts.validAccess
		refuse := ts.refuseAll
		ts.mu.Unlock()

		if refuse || r.Header.Get("Authorization") != valid {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Invalid or expired token"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"id": "u1", "email": "a@b.c", "role": "viewer"},
		})
	})

	return mux
}

func TestRefreshAndRetryOn401(t *testing.T) {
	ts := &tokenServer{validAccess: "fresh", validRefresh: "r1"}
	srv := httptest.NewServer(ts.handler())
	defer srv.Close()

	c := New(srv.URL)
	c.SetTokens("stale", "r1")

	user, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	assert.EqualValues(t, 1, atomic.LoadInt32(&ts.refreshCalls))
	assert.EqualValues(t, 2, atomic.LoadInt32(&ts.profileCalls))

	access, refresh := c.Tokens()
	assert.Equal(t, "fresh+", access)
	assert.Equal(t, "r1+", refresh)
}

func TestNoRetryWhenFirstAttemptSucceeds(t *testing.T) {
	ts := &tokenServer{validAccess: "good", validRefresh: "r1"}
	srv := httptest.NewServer(ts.handler())
	defer srv.Close()

	c := New(srv.URL)
	c.SetTokens("good", "r1")

	_, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 0, atomic.LoadInt32(&ts.refreshCalls))
	assert.EqualValues(t, 1, atomic.LoadInt32(&ts.profileCalls))
}

func TestSecond401DoesNotRefreshAgain(t *testing.T) {
	mux := http.NewServeMux()
	var refreshCalls, profileCalls int32
	mux.HandleFunc("/api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"accessToken": "a2", "refreshToken": "r2"},
		})
	})
	mux.HandleFunc("/api/v1/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&profileCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "still no"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	c.SetTokens("a1", "r1")

	_, err := c.Profile(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	// one refresh, two profile attempts, then give up
	assert.EqualValues(t, 1, atomic.LoadInt32(&refreshCalls))
	assert.EqualValues(t, 2, atomic.LoadInt32(&profileCalls))
}

func TestRefreshFailureClearsCredentials(t *testing.T) {
	ts := &tokenServer{validAccess: "fresh", validRefresh: "other", refuseAll: false}
	srv := httptest.NewServer(ts.handler())
	defer srv.Close()

	c := New(srv.URL)
	c.SetTokens("stale", "wrong")

	_, err := c.Profile(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSessionExpired))

	access, refresh := c.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestConcurrent401sCoalesceIntoOneRefresh(t *testing.T) {
	ts := &tokenServer{validAccess: "fresh", validRefresh: "r1", refreshDelay: 50 * time.Millisecond}
	srv := httptest.NewServer(ts.handler())
	defer srv.Close()

	c := New(srv.URL)
	c.SetTokens("stale", "r1")

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Profile(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "worker %d", i)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&ts.refreshCalls))
}

func TestAnonymous401IsNotRetried(t *testing.T) {
	ts := &tokenServer{validAccess: "fresh", validRefresh: "r1"}
	srv := httptest.NewServer(ts.handler())
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Profile(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.EqualValues(t, 0, atomic.LoadInt32(&ts.refreshCalls))
	assert.EqualValues(t, 1, atomic.LoadInt32(&ts.profileCalls))
}
