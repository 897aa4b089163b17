package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/farewatch/internal/credential"
	"github.com/dharmasatrya/farewatch/internal/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type tokenServer struct {
	*httptest.Server
	calls  atomic.Int32
	status int
	body   string
	delay  time.Duration
}

func newTokenServer(t *testing.T) *tokenServer {
	t.Helper()
	ts := &tokenServer{
		status: http.StatusOK,
		body:   `{"type":"amadeusOAuth2Token","access_token":"fresh-token","token_type":"Bearer","expires_in":1799}`,
	}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, tokenEndpoint, r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "id", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret", r.PostForm.Get("client_secret"))

		if ts.delay > 0 {
			time.Sleep(ts.delay)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(ts.status)
		_, _ = w.Write([]byte(ts.body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newManager(ts *tokenServer, store credential.Store, clock *fakeClock) *Manager {
	return NewManager(Config{BaseURL: ts.URL, ClientID: "id", ClientSecret: "secret"}, store, WithClock(clock.Now))
}

func TestManager_ExchangeAndReuse(t *testing.T) {
	ts := newTokenServer(t)
	store := credential.NewMemoryStore()
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := newManager(ts, store, clock)
	ctx := context.Background()

	tok, err := m.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", tok)

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", persisted.Token)
	assert.Equal(t, clock.Now().Add(1799*time.Second), persisted.ExpiresAt)

	for i := 0; i < 5; i++ {
		clock.Advance(5 * time.Minute)
		tok, err = m.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", tok)
	}
	assert.EqualValues(t, 1, ts.calls.Load())
}

func TestManager_ReexchangesAtExpiry(t *testing.T) {
	ts := newTokenServer(t)
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := newManager(ts, credential.NewMemoryStore(), clock)

	_, err := m.Token(context.Background())
	require.NoError(t, err)

	// exactly at expiresAt the credential is no longer usable
	clock.Advance(1799 * time.Second)
	_, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, ts.calls.Load())
}

func TestManager_AdoptsPersistedCredential(t *testing.T) {
	ts := newTokenServer(t)
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := credential.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), models.Credential{
		Token:     "persisted",
		ExpiresAt: clock.Now().Add(10 * time.Minute),
	}))

	m := newManager(ts, store, clock)
	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "persisted", tok)
	assert.EqualValues(t, 0, ts.calls.Load())
}

func TestManager_EvictsExpiredPersistedCredential(t *testing.T) {
	ts := newTokenServer(t)
	ts.status = http.StatusUnauthorized
	ts.body = `{"error":"invalid_client"}`

	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := credential.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), models.Credential{
		Token:     "stale",
		ExpiresAt: clock.Now().Add(-time.Second),
	}))

	m := newManager(ts, store, clock)
	_, err := m.Token(context.Background())
	require.Error(t, err)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, credential.ErrNotFound)
}

func TestManager_Rejected(t *testing.T) {
	ts := newTokenServer(t)
	ts.status = http.StatusUnauthorized
	ts.body = `{"error":"invalid_client"}`
	m := newManager(ts, nil, &fakeClock{now: time.Now()})

	_, err := m.Token(context.Background())

	var authErr *models.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
	assert.Equal(t, "Unauthorized", authErr.StatusText)
}

func TestManager_MalformedResponse(t *testing.T) {
	cases := map[string]string{
		"not json":      `<html>`,
		"missing token": `{"expires_in":1799}`,
		"missing ttl":   `{"access_token":"x"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			ts := newTokenServer(t)
			ts.body = body
			m := newManager(ts, nil, &fakeClock{now: time.Now()})

			_, err := m.Token(context.Background())
			var authErr *models.AuthenticationError
			require.ErrorAs(t, err, &authErr)
			assert.Contains(t, authErr.Error(), "malformed")
		})
	}
}

func TestManager_MissingConfiguration(t *testing.T) {
	ts := newTokenServer(t)
	m := NewManager(Config{BaseURL: ts.URL}, nil)

	_, err := m.Token(context.Background())

	var cfgErr *models.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{"client id", "client secret"}, cfgErr.Missing)

	var authErr *models.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
	assert.EqualValues(t, 0, ts.calls.Load())
}

func TestManager_NetworkFailure(t *testing.T) {
	ts := newTokenServer(t)
	ts.Close()
	m := newManager(ts, nil, &fakeClock{now: time.Now()})

	_, err := m.Token(context.Background())

	var netErr *models.NetworkError
	require.ErrorAs(t, err, &netErr)
	var authErr *models.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}

type failingStore struct{}

var _ credential.Store = failingStore{}

func (failingStore) Load(context.Context) (models.Credential, error) {
	return models.Credential{}, errors.New("disk on fire")
}
func (failingStore) Save(context.Context, models.Credential) error { return errors.New("disk on fire") }
func (failingStore) Evict(context.Context) error                   { return errors.New("disk on fire") }

func TestManager_StoreFailuresAreNotFatal(t *testing.T) {
	ts := newTokenServer(t)
	m := newManager(ts, failingStore{}, &fakeClock{now: time.Now()})

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", tok)

	_, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, ts.calls.Load())
}

func TestManager_ConcurrentCallersShareExchange(t *testing.T) {
	ts := newTokenServer(t)
	ts.delay = 50 * time.Millisecond
	m := newManager(ts, credential.NewMemoryStore(), &fakeClock{now: time.Now()})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, err := m.Token(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "fresh-token", tok)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, ts.calls.Load())
}

func TestManager_SharedExchangeOutlivesFirstCallerDeadline(t *testing.T) {
	ts := newTokenServer(t)
	ts.delay = 200 * time.Millisecond
	m := newManager(ts, credential.NewMemoryStore(), &fakeClock{now: time.Now()})

	shortCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	firstErr := make(chan error, 1)
	go func() {
		_, err := m.Token(shortCtx)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return ts.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", tok)

	assert.ErrorIs(t, <-firstErr, context.DeadlineExceeded)
	assert.EqualValues(t, 1, ts.calls.Load())
}

func TestManager_CallerGivesUpOnOwnCancellation(t *testing.T) {
	ts := newTokenServer(t)
	ts.delay = 200 * time.Millisecond
	m := newManager(ts, credential.NewMemoryStore(), &fakeClock{now: time.Now()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Token(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// the detached exchange still completes and is reused
	require.Eventually(t, func() bool {
		tok, ok := m.cached()
		return ok && tok == "fresh-token"
	}, time.Second, 10*time.Millisecond)
	assert.EqualValues(t, 1, ts.calls.Load())
}

func TestManager_Invalidate(t *testing.T) {
	ts := newTokenServer(t)
	store := credential.NewMemoryStore()
	m := newManager(ts, store, &fakeClock{now: time.Now()})

	_, err := m.Token(context.Background())
	require.NoError(t, err)

	m.Invalidate(context.Background())
	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, credential.ErrNotFound)

	_, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, ts.calls.Load())
}
