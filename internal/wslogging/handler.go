// Package wslogging provides the slog.Handler used by mcp-bigip. Records are
// written as JSON to stderr and, when a collector URL is configured, mirrored
// in batches to a WebSocket endpoint. Credential-looking attributes are
// redacted in both destinations.
package wslogging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Environment variables read by NewFromEnv.
const (
	EnvURL   = "WS_LOGGING_URL"
	EnvToken = "WS_LOGGING_TOKEN"
)

const (
	// bufferSize is the number of records queued for the collector before new ones are dropped
	bufferSize = 1000
	// handshakeTimeout bounds the WebSocket handshake
	handshakeTimeout = 10 * time.Second
	// batchInterval is how often queued records are flushed
	batchInterval = 5 * time.Second
	// maxBatchSize forces a flush before the interval elapses
	maxBatchSize = 50

	redacted = "[REDACTED]"
)

// sensitiveKeys are compared case-insensitively against attribute keys.
var sensitiveKeys = map[string]struct{}{
	"password":        {},
	"token":           {},
	"authorization":   {},
	"x-f5-auth-token": {},
}

func isSensitive(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

// Handler implements slog.Handler. Handlers derived through WithAttrs and
// WithGroup share one sink.
type Handler struct {
	stderr slog.Handler
	sink   *sink

	attrs  []slog.Attr
	groups []string
}

// sink is the WebSocket side shared by a Handler and everything derived from it.
type sink struct {
	mu      sync.Mutex
	enabled bool
	closed  bool
	started bool
	url     string
	token   string
	buffer  chan []byte
	done    chan struct{}

	// batch is only touched by the run goroutine
	batch [][]byte

	hostname string
	pid      int
	diag     io.Writer
}

// NewHandler creates a Handler writing JSON to out. The WebSocket side stays
// disabled until ConfigureWebSocket is called.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	var o slog.HandlerOptions
	if opts != nil {
		o = *opts
	}
	next := o.ReplaceAttr
	o.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
		if isSensitive(a.Key) {
			a.Value = slog.StringValue(redacted)
		}
		if next != nil {
			return next(groups, a)
		}
		return a
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return &Handler{
		stderr: slog.NewJSONHandler(out, &o),
		sink: &sink{
			hostname: hostname,
			pid:      os.Getpid(),
			diag:     os.Stderr,
		},
	}
}

// NewFromEnv creates a Handler writing to out and configures the WebSocket side
// from WS_LOGGING_URL and WS_LOGGING_TOKEN when the URL is set.
func NewFromEnv(out io.Writer, opts *slog.HandlerOptions) (*Handler, error) {
	h := NewHandler(out, opts)
	if u := os.Getenv(EnvURL); u != "" {
		if err := h.ConfigureWebSocket(u, os.Getenv(EnvToken)); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.stderr.Enabled(ctx, level)
}

// Handle writes r to stderr and queues it for the collector. Only the stderr
// error is returned; collector failures are reported as diagnostics.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	err := h.stderr.Handle(ctx, r)
	if h.sink.active() {
		data, merr := json.Marshal(h.buildLogEntry(r))
		if merr != nil {
			h.sink.diagnostic("failed to marshal log entry: %v", merr)
			return err
		}
		h.sink.enqueue(data)
	}
	return err
}

// WithAttrs returns a Handler with attrs added; the sink is shared.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return &Handler{
		stderr: h.stderr.WithAttrs(attrs),
		sink:   h.sink,
		attrs:  append(append([]slog.Attr{}, h.attrs...), attrs...),
		groups: h.groups,
	}
}

// WithGroup returns a Handler that nests subsequent attributes under name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &Handler{
		stderr: h.stderr.WithGroup(name),
		sink:   h.sink,
		attrs:  h.attrs,
		groups: append(append([]string{}, h.groups...), name),
	}
}

// ConfigureWebSocket enables the collector at wsURL (ws:// or wss://). token,
// when set, is sent as a bearer Authorization header.
func (h *Handler) ConfigureWebSocket(wsURL, token string) error {
	if wsURL == "" {
		return fmt.Errorf("WebSocket URL cannot be empty")
	}
	parsed, err := url.Parse(wsURL)
	if err != nil {
		return fmt.Errorf("invalid WebSocket URL: %w", err)
	}
	if parsed.Scheme != "ws" && parsed.Scheme != "wss" {
		return fmt.Errorf("invalid WebSocket URL scheme: %s (must be ws or wss)", parsed.Scheme)
	}

	s := h.sink
	if token == "" {
		s.diagnostic("WARNING: no authentication token provided for %s", EnvURL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		return fmt.Errorf("WebSocket logging is already configured")
	}
	s.url = wsURL
	s.token = token
	s.enabled = true
	s.buffer = make(chan []byte, bufferSize)
	s.done = make(chan struct{})
	return nil
}

// Start runs the batching goroutine until ctx is cancelled or Close is called.
// It is a no-op when the WebSocket side is not configured.
func (h *Handler) Start(ctx context.Context) {
	s := h.sink
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || s.started || s.closed {
		return
	}
	s.started = true
	go s.run(ctx)
}

// Close stops accepting collector records and waits, up to ctx, for the
// remaining batch to be flushed.
func (h *Handler) Close(ctx context.Context) error {
	s := h.sink
	s.mu.Lock()
	if s.closed || !s.enabled {
		s.closed = true
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.buffer)
	started := s.started
	s.mu.Unlock()

	if !started {
		return nil
	}
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wslogging: flushing on close: %w", ctx.Err())
	}
}

// buildLogEntry renders r for the collector, nesting attributes under the
// handler's groups.
func (h *Handler) buildLogEntry(r slog.Record) map[string]any {
	entry := map[string]any{
		"level":    r.Level.String(),
		"message":  r.Message,
		"hostname": h.sink.hostname,
		"pid":      h.sink.pid,
	}
	if !r.Time.IsZero() {
		entry["timestamp"] = r.Time.Format(time.RFC3339Nano)
	}

	if len(h.attrs) == 0 && r.NumAttrs() == 0 {
		return entry
	}
	current := entry
	for _, g := range h.groups {
		next := map[string]any{}
		current[g] = next
		current = next
	}
	for _, a := range h.attrs {
		addAttr(current, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(current, a)
		return true
	})
	return entry
}

func addAttr(m map[string]any, a slog.Attr) {
	if isSensitive(a.Key) {
		m[a.Key] = redacted
		return
	}
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		group := map[string]any{}
		for _, ga := range v.Group() {
			addAttr(group, ga)
		}
		if a.Key == "" {
			for k, gv := range group {
				m[k] = gv
			}
			return
		}
		m[a.Key] = group
		return
	}
	if err, ok := v.Any().(error); ok {
		m[a.Key] = err.Error()
		return
	}
	m[a.Key] = v.Any()
}

func (s *sink) active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled && !s.closed
}

func (s *sink) enqueue(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.buffer <- data:
	default:
		s.diagnostic("dropping log message: buffer is full (%d messages)", bufferSize)
	}
}

func (s *sink) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(batchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.flush()
			return
		case data, ok := <-s.buffer:
			if !ok {
				s.flush()
				return
			}
			s.batch = append(s.batch, data)
			if len(s.batch) >= maxBatchSize {
				s.flush()
			}
		case <-ticker.C:
			s.flush()
		}
	}
}

// flush sends the batch over a fresh connection. Unsent records stay queued
// for the next flush.
func (s *sink) flush() {
	if len(s.batch) == 0 {
		return
	}
	conn, err := s.connect()
	if err != nil {
		s.diagnostic("failed to connect to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	sent := 0
	for _, data := range s.batch {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.diagnostic("failed to write message to WebSocket: %v", err)
			break
		}
		sent++
	}
	s.batch = append(s.batch[:0], s.batch[sent:]...)
}

func (s *sink) connect() (*websocket.Conn, error) {
	dialer := &websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	headers := http.Header{}
	if s.token != "" {
		headers.Set("Authorization", "Bearer "+s.token)
	}
	conn, _, err := dialer.Dial(s.url, headers)
	return conn, err
}

// diagnostic reports logging infrastructure problems as a JSON line, outside
// of the slog pipeline.
func (s *sink) diagnostic(format string, args ...any) {
	entry := map[string]any{
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
		"level":  "DEBUG",
		"msg":    fmt.Sprintf(format, args...),
		"source": "wslogging",
	}
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(s.diag, "[wslogging] %s\n", entry["msg"])
		return
	}
	fmt.Fprintf(s.diag, "%s\n", data)
}
