// Package auth owns the provider access token: it reuses a live one, adopts a
// persisted one, or performs a client-credentials exchange.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/dharmasatrya/farewatch/internal/credential"
	"github.com/dharmasatrya/farewatch/internal/models"
	"github.com/dharmasatrya/farewatch/internal/ratelimit"
)

const (
	tokenEndpoint = "/v1/security/oauth2/token"

	// exchangeTimeout bounds a shared exchange once no caller's deadline applies.
	exchangeTimeout = 30 * time.Second
)

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type Manager struct {
	cfg        Config
	store      credential.Store
	httpClient *http.Client
	limiter    *ratelimit.EndpointLimiter
	logger     *zap.Logger
	now        func() time.Time

	mu      sync.Mutex
	current *models.Credential
	group   singleflight.Group
}

type Option func(*Manager)

func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) { m.httpClient = c }
}

func WithLimiter(l *ratelimit.EndpointLimiter) Option {
	return func(m *Manager) { m.limiter = l }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(cfg Config, store credential.Store, opts ...Option) *Manager {
	m := &Manager{
		cfg:        cfg,
		store:      store,
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = credential.NewMemoryStore()
	}
	return m
}

// Token returns a bearer token that is valid at the time of the call.
// Concurrent callers that find no valid token share a single exchange. The
// shared exchange is detached from any one caller's cancellation; each caller
// stops waiting only when its own ctx is done.
func (m *Manager) Token(ctx context.Context) (string, error) {
	if tok, ok := m.cached(); ok {
		return tok, nil
	}

	ch := m.group.DoChan("token", func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), exchangeTimeout)
		defer cancel()

		if tok, ok := m.cached(); ok {
			return tok, nil
		}
		if tok, ok := m.adoptPersisted(shared); ok {
			return tok, nil
		}
		return m.exchange(shared)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Invalidate forgets the in-memory and persisted credential so the next call
// to Token performs a fresh exchange.
func (m *Manager) Invalidate(ctx context.Context) {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Evict(ctx); err != nil {
		m.logger.Warn("failed to evict credential", zap.Error(err))
	}
}

func (m *Manager) cached() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.current.Valid(m.now()) {
		return m.current.Token, true
	}
	return "", false
}

func (m *Manager) adoptPersisted(ctx context.Context) (string, bool) {
	cred, err := m.store.Load(ctx)
	switch {
	case errors.Is(err, credential.ErrNotFound):
		return "", false
	case err != nil:
		m.logger.Warn("failed to load persisted credential", zap.Error(err))
		return "", false
	}

	if !cred.Valid(m.now()) {
		m.logger.Debug("evicting expired persisted credential", zap.Time("expires_at", cred.ExpiresAt))
		if err := m.store.Evict(ctx); err != nil {
			m.logger.Warn("failed to evict expired credential", zap.Error(err))
		}
		return "", false
	}

	m.mu.Lock()
	m.current = &cred
	m.mu.Unlock()

	m.logger.Debug("adopted persisted credential", zap.Time("expires_at", cred.ExpiresAt))
	return cred.Token, true
}

func (m *Manager) exchange(ctx context.Context) (string, error) {
	if err := m.checkConfig(); err != nil {
		return "", &models.AuthenticationError{Reason: "client credentials not configured", Err: err}
	}

	if err := m.limiter.Wait(ctx, ratelimit.EndpointToken); err != nil {
		return "", &models.AuthenticationError{Reason: "rate limiter", Err: err}
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", m.cfg.ClientID)
	form.Set("client_secret", m.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(m.cfg.BaseURL, "/")+tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &models.AuthenticationError{Reason: "creating request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", &models.AuthenticationError{Err: &models.NetworkError{Endpoint: ratelimit.EndpointToken, Err: err}}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		m.logger.Warn("token exchange rejected", zap.Int("status", resp.StatusCode))
		return "", &models.AuthenticationError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
		}
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &models.AuthenticationError{Reason: "malformed token response", Err: err}
	}
	if body.AccessToken == "" || body.ExpiresIn <= 0 {
		return "", &models.AuthenticationError{Reason: "malformed token response: missing access_token or expires_in"}
	}

	cred := models.Credential{
		Token:     body.AccessToken,
		ExpiresAt: m.now().Add(time.Duration(body.ExpiresIn) * time.Second),
	}

	m.mu.Lock()
	m.current = &cred
	m.mu.Unlock()

	if err := m.store.Save(ctx, cred); err != nil {
		m.logger.Warn("failed to persist credential", zap.Error(err))
	}

	m.logger.Info("acquired provider token", zap.Time("expires_at", cred.ExpiresAt))
	return cred.Token, nil
}

func (m *Manager) checkConfig() error {
	var missing []string
	if m.cfg.ClientID == "" {
		missing = append(missing, "client id")
	}
	if m.cfg.ClientSecret == "" {
		missing = append(missing, "client secret")
	}
	if m.cfg.BaseURL == "" {
		missing = append(missing, "provider base url")
	}
	if len(missing) > 0 {
		return &models.ConfigurationError{Missing: missing}
	}
	return nil
}
