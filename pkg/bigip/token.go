package bigip

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// tokenCache is the single-slot session token cell shared by concurrent requests.
// Readers see either the previous token or the refreshed one.
type tokenCache struct {
	mu    sync.RWMutex
	token string

	static oauth2.TokenSource
	login  func(ctx context.Context) oauth2.TokenSource
	// loginTimeout bounds a shared login, which outlives any single caller.
	loginTimeout time.Duration

	group singleflight.Group
}

func newTokenCache(settings Settings, login func(ctx context.Context) oauth2.TokenSource) *tokenCache {
	tc := &tokenCache{loginTimeout: settings.Timeout}
	if settings.Token != "" {
		tc.static = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: settings.Token})
	}
	if settings.CanLogin() {
		tc.login = login
	}
	return tc
}

func (tc *tokenCache) current() string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.token
}

func (tc *tokenCache) store(token string) {
	tc.mu.Lock()
	tc.token = token
	tc.mu.Unlock()
}

// storeIfEmpty caches token unless another request cached one first, and
// returns the cached value.
func (tc *tokenCache) storeIfEmpty(token string) string {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if tc.token == "" {
		tc.token = token
	}
	return tc.token
}

// get returns the cached token, else the static token, else a token from a login.
func (tc *tokenCache) get(ctx context.Context) (string, error) {
	if tok := tc.current(); tok != "" {
		return tok, nil
	}
	if tc.static != nil {
		t, err := tc.static.Token()
		if err != nil {
			return "", errors.Mark(errors.Wrap(err, "reading static token"), ErrAuth)
		}
		return tc.storeIfEmpty(t.AccessToken), nil
	}
	if tc.login != nil {
		return tc.fetch(ctx)
	}
	return "", configErrorf("no BIG-IP token or username/password configured")
}

// refresh replaces stale with a freshly logged-in token. When another request
// already replaced stale, the replacement is returned without a new login.
func (tc *tokenCache) refresh(ctx context.Context, stale string) (string, error) {
	if tok := tc.current(); tok != "" && tok != stale {
		return tok, nil
	}
	return tc.fetch(ctx)
}

func (tc *tokenCache) fetch(ctx context.Context) (string, error) {
	if tc.login == nil {
		return "", configErrorf("no BIG-IP username/password configured for login")
	}
	ch := tc.group.DoChan("login", func() (any, error) {
		loginCtx, cancel := tc.loginContext(ctx)
		defer cancel()
		t, err := tc.login(loginCtx).Token()
		if err != nil {
			return "", err
		}
		tc.store(t.AccessToken)
		return t.AccessToken, nil
	})
	select {
	case <-ctx.Done():
		return "", errors.Wrap(ctx.Err(), "waiting for BIG-IP login")
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// loginContext detaches the shared login from the caller that started it.
func (tc *tokenCache) loginContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if tc.loginTimeout > 0 {
		return context.WithTimeout(detached, tc.loginTimeout)
	}
	return context.WithCancel(detached)
}

// loginSource exchanges username and password for a session token.
type loginSource struct {
	ctx context.Context
	c   *Client
}

func (c *Client) loginSource(ctx context.Context) oauth2.TokenSource {
	return loginSource{ctx: ctx, c: c}
}

func (s loginSource) Token() (*oauth2.Token, error) {
	token, err := s.c.fetchToken(s.ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: token, TokenType: AuthHeader}, nil
}

type loginRequest struct {
	Username          string `json:"username"`
	Password          string `json:"password"`
	LoginProviderName string `json:"loginProviderName"`
}

type loginResponse struct {
	Token struct {
		Token   string `json:"token"`
		Timeout int    `json:"timeout"`
	} `json:"token"`
}

// fetchToken performs POST /mgmt/shared/authn/login.
func (c *Client) fetchToken(ctx context.Context) (string, error) {
	payload, err := json.Marshal(loginRequest{
		Username:          c.settings.Username,
		Password:          c.settings.Password,
		LoginProviderName: c.settings.LoginProvider,
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding login request")
	}

	u := c.baseURL + loginPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "building login request")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observeRequest(http.MethodPost, loginPath, "error", time.Since(start))
		return "", errors.Mark(errors.Wrap(err, "BIG-IP login"), ErrAuth)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	observeRequest(http.MethodPost, loginPath, strconv.Itoa(resp.StatusCode), time.Since(start))
	loginsTotal.Inc()
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "reading login response"), ErrAuth)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Mark(&HTTPError{
			Method:     http.MethodPost,
			URL:        u,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}, ErrAuth)
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return "", errors.Mark(errors.Wrap(err, "decoding login response"), ErrAuth)
	}
	if lr.Token.Token == "" {
		return "", authErrorf("BIG-IP login response did not include a token")
	}

	c.logger.Info("obtained BIG-IP session token",
		"user", c.settings.Username,
		"login_provider", c.settings.LoginProvider,
		"timeout_seconds", lr.Token.Timeout,
	)
	return lr.Token.Token, nil
}
