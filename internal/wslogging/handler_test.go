package wslogging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// collector is a WebSocket endpoint recording every text message and the
// Authorization header of each connection.
type collector struct {
	mu       sync.Mutex
	messages [][]byte
	auth     []string
}

func (c *collector) received() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte{}, c.messages...)
}

func (c *collector) headers() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.auth...)
}

func newCollector(t *testing.T) (*collector, string) {
	t.Helper()
	c := &collector{}
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.mu.Lock()
		c.auth = append(c.auth, r.Header.Get("Authorization"))
		c.mu.Unlock()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			c.mu.Lock()
			c.messages = append(c.messages, data)
			c.mu.Unlock()
		}
	}))
	t.Cleanup(srv.Close)
	return c, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestHandler_Enabled(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		check slog.Level
		want  bool
	}{
		{name: "debug allows debug", level: slog.LevelDebug, check: slog.LevelDebug, want: true},
		{name: "info blocks debug", level: slog.LevelInfo, check: slog.LevelDebug, want: false},
		{name: "info allows warn", level: slog.LevelInfo, check: slog.LevelWarn, want: true},
		{name: "error blocks info", level: slog.LevelError, check: slog.LevelInfo, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: tt.level})
			require.Equal(t, tt.want, h.Enabled(context.Background(), tt.check))
		})
	}
}

func TestHandler_StderrRedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Info("login", "user", "admin", "password", "hunter2", "X-F5-Auth-Token", "abc")
	logger.With("Token", "t1").WithGroup("bigip").Info("request", "host", "https://bigip.example")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	require.Equal(t, "admin", lines[0]["user"])
	require.Equal(t, redacted, lines[0]["password"])
	require.Equal(t, redacted, lines[0]["X-F5-Auth-Token"])
	require.Equal(t, redacted, lines[1]["Token"])
	require.Equal(t, map[string]any{"host": "https://bigip.example"}, lines[1]["bigip"])
}

func TestHandler_ReplaceAttrChained(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	logger.Info("hello", "password", "p")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.NotContains(t, lines[0], "time")
	require.Equal(t, redacted, lines[0]["password"])
}

func TestBuildLogEntry(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, nil)
	derived := h.WithAttrs([]slog.Attr{slog.String("service", "ltm")}).WithGroup("call").(*Handler)

	r := slog.NewRecord(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC), slog.LevelWarn, "tool failed", 0)
	r.AddAttrs(
		slog.String("tool", "pools_create"),
		slog.String("password", "secret"),
		slog.Any("err", context.DeadlineExceeded),
		slog.Group("target", slog.String("host", "bigip1")),
	)

	entry := derived.buildLogEntry(r)
	require.Equal(t, "WARN", entry["level"])
	require.Equal(t, "tool failed", entry["message"])
	require.Equal(t, "2026-10-19T12:00:00Z", entry["timestamp"])
	require.NotEmpty(t, entry["hostname"])
	require.NotZero(t, entry["pid"])

	group, ok := entry["call"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "ltm", group["service"])
	require.Equal(t, "pools_create", group["tool"])
	require.Equal(t, redacted, group["password"])
	require.Equal(t, "context deadline exceeded", group["err"])
	require.Equal(t, map[string]any{"host": "bigip1"}, group["target"])
}

func TestConfigureWebSocket_Validation(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{name: "empty", url: "", wantErr: "cannot be empty"},
		{name: "http scheme", url: "http://collector.example/logs", wantErr: "must be ws or wss"},
		{name: "bad url", url: "ws://bad host\x7f", wantErr: "invalid WebSocket URL"},
		{name: "ws", url: "ws://collector.example/logs"},
		{name: "wss", url: "wss://collector.example/logs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&bytes.Buffer{}, nil)
			h.sink.diag = &bytes.Buffer{}
			err := h.ConfigureWebSocket(tt.url, "token")
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.True(t, h.sink.active())
		})
	}
}

func TestConfigureWebSocket_Twice(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, nil)
	require.NoError(t, h.ConfigureWebSocket("ws://collector.example", "t"))
	require.ErrorContains(t, h.ConfigureWebSocket("ws://collector.example", "t"), "already configured")
}

func TestConfigureWebSocket_WarnsWithoutToken(t *testing.T) {
	var diag bytes.Buffer
	h := NewHandler(&bytes.Buffer{}, nil)
	h.sink.diag = &diag
	require.NoError(t, h.ConfigureWebSocket("ws://collector.example", ""))
	require.Contains(t, diag.String(), "no authentication token")
}

func TestHandler_ShipsBatchOnClose(t *testing.T) {
	coll, wsURL := newCollector(t)

	var stderr bytes.Buffer
	h := NewHandler(&stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	require.NoError(t, h.ConfigureWebSocket(wsURL, "collector-token"))
	h.Start(context.Background())

	logger := slog.New(h).With("component", "bigip")
	logger.Info("first", "password", "p")
	logger.Debug("second")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.Close(ctx))

	require.Eventually(t, func() bool {
		return len(coll.received()) == 2
	}, 3*time.Second, 10*time.Millisecond)
	msgs := coll.received()
	var first map[string]any
	require.NoError(t, json.Unmarshal(msgs[0], &first))
	require.Equal(t, "first", first["message"])
	require.Equal(t, "bigip", first["component"])
	require.Equal(t, redacted, first["password"])
	require.Equal(t, []string{"Bearer collector-token"}, coll.headers())

	require.Len(t, decodeLines(t, &stderr), 2)

	// Records after Close still reach stderr.
	logger.Info("late")
	require.Len(t, decodeLines(t, &stderr), 3)
	require.Len(t, coll.received(), 2)
}

func TestHandler_FlushesFullBatch(t *testing.T) {
	coll, wsURL := newCollector(t)

	h := NewHandler(&bytes.Buffer{}, nil)
	require.NoError(t, h.ConfigureWebSocket(wsURL, "t"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.Start(ctx)

	logger := slog.New(h)
	for i := 0; i < maxBatchSize; i++ {
		logger.Info("tick", "i", i)
	}

	require.Eventually(t, func() bool {
		return len(coll.received()) == maxBatchSize
	}, 3*time.Second, 20*time.Millisecond)
}

func TestHandler_KeepsBatchWhenCollectorDown(t *testing.T) {
	var diag bytes.Buffer
	h := NewHandler(&bytes.Buffer{}, nil)
	h.sink.diag = &diag
	require.NoError(t, h.ConfigureWebSocket("ws://127.0.0.1:1/logs", "t"))

	h.sink.batch = [][]byte{[]byte(`{"message":"kept"}`)}
	h.sink.flush()

	require.Len(t, h.sink.batch, 1)
	require.Contains(t, diag.String(), "failed to connect to WebSocket")
}

func TestHandler_DropsWhenBufferFull(t *testing.T) {
	var diag bytes.Buffer
	h := NewHandler(&bytes.Buffer{}, nil)
	h.sink.diag = &diag
	require.NoError(t, h.ConfigureWebSocket("ws://collector.example", "t"))

	// Not started, so nothing drains the buffer.
	logger := slog.New(h)
	for i := 0; i < bufferSize+1; i++ {
		logger.Info("fill")
	}
	require.Len(t, h.sink.buffer, bufferSize)
	require.Contains(t, diag.String(), "buffer is full")
}

func TestHandler_CloseWithoutWebSocket(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)
	h.Start(context.Background())
	require.NoError(t, h.Close(context.Background()))
	require.NoError(t, h.Close(context.Background()))

	slog.New(h).Info("still logging")
	require.Contains(t, buf.String(), "still logging")
}

func TestNewFromEnv(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		t.Setenv(EnvURL, "")
		h, err := NewFromEnv(&bytes.Buffer{}, nil)
		require.NoError(t, err)
		require.False(t, h.sink.active())
	})

	t.Run("configured", func(t *testing.T) {
		t.Setenv(EnvURL, "wss://collector.example/logs")
		t.Setenv(EnvToken, "abc")
		h, err := NewFromEnv(&bytes.Buffer{}, nil)
		require.NoError(t, err)
		require.True(t, h.sink.active())
		require.Equal(t, "abc", h.sink.token)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv(EnvURL, "https://collector.example/logs")
		_, err := NewFromEnv(&bytes.Buffer{}, nil)
		require.ErrorContains(t, err, "must be ws or wss")
	})
}
