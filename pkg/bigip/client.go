// Package bigip is a client for the F5 BIG-IP iControl REST management API.
//
// A Client owns one pooled HTTP client and a session token. The token comes
// from a statically configured value or from a login with username and
// password; a 401 or 403 answer triggers a single re-login and retry when
// credentials are available.
package bigip

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-cleanhttp"
)

// AuthHeader carries the session token on every iControl request.
const AuthHeader = "X-F5-Auth-Token"

const loginPath = "/shared/authn/login"

// Item is a single object as returned by the device: at least name, partition,
// fullPath and generation.
type Item map[string]any

func (i Item) str(key string) string {
	s, _ := i[key].(string)
	return s
}

// Name returns the object name.
func (i Item) Name() string { return i.str("name") }

// Partition returns the administrative partition of the object.
func (i Item) Partition() string { return i.str("partition") }

// FullPath returns the /Partition/Name path of the object.
func (i Item) FullPath() string { return i.str("fullPath") }

// Generation returns the device generation counter, or nil when absent.
func (i Item) Generation() any { return i["generation"] }

// Client performs authenticated iControl REST calls. It is safe for concurrent use.
type Client struct {
	settings   Settings
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	tokens     *tokenCache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled HTTP client built from the settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a Client. Zero-valued optional settings fall back to their
// defaults; missing credentials are reported by the first request.
func New(settings Settings, opts ...Option) *Client {
	if settings.Partition == "" {
		settings.Partition = DefaultPartition
	}
	if settings.LoginProvider == "" {
		settings.LoginProvider = DefaultLoginProvider
	}
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}
	settings.Host = strings.TrimRight(settings.Host, "/")

	c := &Client{
		settings: settings,
		baseURL:  settings.Host + "/mgmt",
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = newHTTPClient(settings)
	}
	c.tokens = newTokenCache(settings, c.loginSource)
	return c
}

func newHTTPClient(settings Settings) *http.Client {
	transport := cleanhttp.DefaultPooledTransport()
	if !settings.VerifyTLS {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // BIGIP_VERIFY_SSL=0 is an explicit opt-out
		}
	}
	return &http.Client{
		Transport: transport,
		Timeout:   settings.Timeout,
	}
}

// Settings returns a copy of the client settings.
func (c *Client) Settings() Settings {
	return c.settings
}

// Partition is the partition used for bare names and list filtering.
func (c *Client) Partition() string {
	return c.settings.Partition
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// rawResponse is a fully read HTTP response.
type rawResponse struct {
	method      string
	url         string
	statusCode  int
	contentType string
	body        []byte
}

// Request issues method against <host>/mgmt<path> and decodes the answer.
//
// JSON responses decode into map[string]any / []any; an empty body yields nil and
// a body that fails to parse is returned as a string. Other content types are
// returned as a string. Non-2xx statuses return *HTTPError.
func (c *Client) Request(ctx context.Context, method, path string, params url.Values, body any) (any, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding %s %s body", method, path)
		}
	}

	token, err := c.tokens.get(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, method, path, params, payload, token)
	if err != nil {
		return nil, err
	}

	if (resp.statusCode == http.StatusUnauthorized || resp.statusCode == http.StatusForbidden) && c.settings.CanLogin() {
		c.logger.Debug("BIG-IP rejected session token, logging in again",
			"method", method,
			"path", path,
			"status", resp.statusCode,
		)
		token, err = c.tokens.refresh(ctx, token)
		if err != nil {
			return nil, err
		}
		resp, err = c.do(ctx, method, path, params, payload, token)
		if err != nil {
			return nil, err
		}
	}

	return decodeResponse(resp)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, payload []byte, token string) (*rawResponse, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s %s", method, path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(AuthHeader, token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observeRequest(method, path, "error", time.Since(start))
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	observeRequest(method, path, strconv.Itoa(resp.StatusCode), elapsed)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s %s response", method, path)
	}

	c.logger.Debug("iControl request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_seconds", elapsed.Seconds(),
	)

	return &rawResponse{
		method:      method,
		url:         u,
		statusCode:  resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        data,
	}, nil
}

func decodeResponse(resp *rawResponse) (any, error) {
	if resp.statusCode < 200 || resp.statusCode > 299 {
		return nil, &HTTPError{
			Method:     resp.method,
			URL:        resp.url,
			StatusCode: resp.statusCode,
			Body:       string(resp.body),
		}
	}

	if !strings.HasPrefix(strings.ToLower(resp.contentType), "application/json") {
		return string(resp.body), nil
	}
	if len(bytes.TrimSpace(resp.body)) == 0 {
		return nil, nil
	}
	var out any
	if err := json.Unmarshal(resp.body, &out); err != nil {
		// some endpoints label plain text as JSON
		return string(resp.body), nil
	}
	return out, nil
}

// requestItem is Request for endpoints answering with a single object.
func (c *Client) requestItem(ctx context.Context, method, path string, params url.Values, body any) (Item, error) {
	out, err := c.Request(ctx, method, path, params, body)
	if err != nil {
		return nil, err
	}
	switch v := out.(type) {
	case map[string]any:
		return Item(v), nil
	case nil:
		return Item{}, nil
	default:
		return nil, errors.Newf("unexpected %T response from %s %s", out, method, path)
	}
}

// listItems fetches a collection, selecting fields, and keeps the items of the
// configured partition only.
func (c *Client) listItems(ctx context.Context, resource string, fields []string) ([]Item, error) {
	params := url.Values{}
	if sel := SelectFields(fields); len(sel) > 0 {
		params.Set("$select", strings.Join(sel, ","))
	}

	out, err := c.requestItem(ctx, http.MethodGet, resourcePath(resource, ""), params, nil)
	if err != nil {
		return nil, err
	}

	raw, _ := out["items"].([]any)
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if item := Item(m); c.inPartition(item) {
			items = append(items, item)
		}
	}
	return items, nil
}

// inPartition is the client-side partition filter; not every endpoint honors
// server-side partition scoping.
func (c *Client) inPartition(item Item) bool {
	p := c.settings.Partition
	return item.Partition() == p || strings.HasPrefix(item.FullPath(), "/"+p+"/")
}

// parseName resolves name against the given partition or the client default.
func (c *Client) parseName(name, partition string) (ResourceName, error) {
	if partition == "" {
		partition = c.settings.Partition
	}
	return ParseName(name, partition)
}

// NormalizeName is the package NormalizeName with the client partition as default.
func (c *Client) NormalizeName(name, partition string) (string, error) {
	rn, err := c.parseName(name, partition)
	if err != nil {
		return "", err
	}
	return rn.Tilde(), nil
}

// FullPath is the package FullPath with the client partition as default.
func (c *Client) FullPath(name, partition string) (string, error) {
	rn, err := c.parseName(name, partition)
	if err != nil {
		return "", err
	}
	return rn.FullPath(), nil
}

// SelectFields deduplicates field names, keeping the first occurrence and
// dropping blanks. Comparison is case-sensitive.
func SelectFields(fields []string) []string {
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
