package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// ErrSessionExpired is returned once a 401 could not be healed by a token
// refresh. The stored credentials are cleared before it surfaces.
var ErrSessionExpired = errors.New("session expired, login required")

// credentialStore guards the token pair. The transport reads it per request
// and the refresh path replaces both tokens in one write.
type credentialStore struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func (s *credentialStore) get() (access, refresh string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *credentialStore) set(access, refresh string) {
	s.mu.Lock()
	s.accessToken = access
	s.refreshToken = refresh
	s.mu.Unlock()
}

func (s *credentialStore) clear() {
	s.set("", "")
}

// authTransport injects the bearer token and retries exactly once after a
// 401 by refreshing the pair. Concurrent 401s share a single in-flight
// refresh; the refresh call itself goes through a bare http.Client so it can
// never recurse into this transport.
type authTransport struct {
	base       http.RoundTripper
	creds      *credentialStore
	refreshURL string

	refreshMu sync.Mutex
	inflight  chan struct{}
	lastErr   error
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	access, _ := t.creds.get()

	// Buffer the body up front so the request can be replayed on retry.
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, err
		}
	}

	resp, err := t.send(req, access, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || access == "" {
		return resp, nil
	}
	resp.Body.Close()

	if err := t.refresh(access); err != nil {
		return nil, err
	}

	newAccess, _ := t.creds.get()
	return t.send(req, newAccess, body)
}

func (t *authTransport) send(req *http.Request, access string, body []byte) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if body != nil {
		clone.Body = io.NopCloser(bytes.NewReader(body))
		clone.ContentLength = int64(len(body))
	}
	if access != "" {
		clone.Header.Set("Authorization", "Bearer "+access)
	}
	return t.base.RoundTrip(clone)
}

// refresh exchanges the refresh token for a new pair. staleAccess is the
// access token the caller failed with; if the stored token has already moved
// past it another goroutine refreshed first and no network call is needed.
func (t *authTransport) refresh(staleAccess string) error {
	t.refreshMu.Lock()

	current, refreshToken := t.creds.get()
	if current != staleAccess && current != "" {
		t.refreshMu.Unlock()
		return nil
	}
	if refreshToken == "" {
		t.refreshMu.Unlock()
		return ErrSessionExpired
	}

	if t.inflight != nil {
		wait := t.inflight
		t.refreshMu.Unlock()
		<-wait
		t.refreshMu.Lock()
		err := t.lastErr
		t.refreshMu.Unlock()
		return err
	}

	done := make(chan struct{})
	t.inflight = done
	t.refreshMu.Unlock()

	err := t.doRefresh(refreshToken)

	t.refreshMu.Lock()
	t.lastErr = err
	t.inflight = nil
	close(done)
	t.refreshMu.Unlock()

	return err
}

func (t *authTransport) doRefresh(refreshToken string) error {
	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, t.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := (&http.Client{Transport: t.base}).Do(req)
	if err != nil {
		t.creds.clear()
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.creds.clear()
		return ErrSessionExpired
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.creds.clear()
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	var auth authPayload
	if err := json.Unmarshal(env.Data, &auth); err != nil || auth.AccessToken == "" {
		t.creds.clear()
		return ErrSessionExpired
	}

	t.creds.set(auth.AccessToken, auth.RefreshToken)
	return nil
}
