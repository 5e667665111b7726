//go:build integration

package testing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

const (
	pollInterval = 500 * time.Millisecond
	waitTimeout  = 30 * time.Second
)

func verboseDump(t *testing.T, prefix string, v any) {
	if os.Getenv("E2E_VERBOSE") == "true" {
		t.Logf("%s: %+v", prefix, v)
	} else {
		t.Logf("%s: (suppressed). Set E2E_VERBOSE=true for details", prefix)
	}
}

// uniqueName returns prefix with a nanosecond suffix so reruns against a real device do not collide.
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// callToolJSON calls an MCP tool and unmarshals its text content into out.
func callToolJSON(ctx context.Context, c *client.Client, t *testing.T, name string, args map[string]any, out any) *mcp.CallToolResult {
	t.Helper()
	resp, err := c.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	})
	require.NoError(t, err)

	// Provide helpful logging on error responses, then assert to fail the test consistently.
	if resp.IsError {
		if len(resp.Content) > 0 {
			if tc, ok := resp.Content[0].(mcp.TextContent); ok {
				t.Logf("%s error text: %s", name, tc.Text)
			} else {
				verboseDump(t, name+" error content", resp.Content)
			}
		}
		require.False(t, resp.IsError, "%s returned error", name)
	}

	require.NotEmpty(t, resp.Content, "%s returned empty content", name)
	tc, ok := resp.Content[0].(mcp.TextContent)
	require.True(t, ok, "unexpected content type for %s", name)
	require.NoError(t, json.Unmarshal([]byte(tc.Text), out), "failed to unmarshal %s response", name)
	verboseDump(t, name+" result", out)
	return resp
}

// callToolError calls an MCP tool that is expected to fail and returns its error text.
func callToolError(ctx context.Context, c *client.Client, t *testing.T, name string, args map[string]any) string {
	t.Helper()
	resp, err := c.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	})
	require.NoError(t, err)
	require.True(t, resp.IsError, "%s should have failed", name)
	require.NotEmpty(t, resp.Content)
	tc, ok := resp.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

// initializeClient initializes and returns a new MCP client for serverURL.
func initializeClient(ctx context.Context, t *testing.T, serverURL string) *client.Client {
	t.Helper()
	c, err := newClient(serverURL, transport.WithHTTPTimeout(time.Minute))
	require.NoError(t, err)
	require.NoError(t, c.Start(ctx))

	initRequest := mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo: mcp.Implementation{
				Name:    "mcp-bigip-e2e",
				Version: "1.0.0",
			},
		},
	}
	_, err = c.Initialize(ctx, initRequest)
	require.NoError(t, err)
	return c
}

func newClient(baseURL string, options ...transport.StreamableHTTPCOption) (*client.Client, error) {
	trans, err := transport.NewStreamableHTTP(baseURL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create streamable HTTP transport: %w", err)
	}
	return client.NewClient(trans), nil
}
