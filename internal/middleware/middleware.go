package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// ToolCallResultError is an error that is driven by a faulty llm or user input, such as a bad
	// partition name or a pool member the device rejects. These errors are typically retryable upon
	// self-correction.
	ToolCallResultError = "tool_call_result_error"

	// ToolCallError is an error that is out of the control of the client. For instance, the client
	// getter could not be built. In this case, no amount of self-correction will be helpful.
	ToolCallError = "tool_call_error"

	// ToolCallSuccess is when the call succeeds entirely.
	ToolCallSuccess = "tool_call_success"
)

var toolCalls = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mcp_bigip_tool_calls_total",
		Help: "Total number of MCP tool calls by tool and outcome",
	},
	[]string{"tool", "outcome"},
)

type callIDKey struct{}

// CallID returns the id ToolMiddleware attached to ctx, or "" outside a tool call.
func CallID(ctx context.Context) string {
	id, _ := ctx.Value(callIDKey{}).(string)
	return id
}

// ToolLoggingMiddleware is a middleware that logs and counts tool calls.
type ToolLoggingMiddleware struct {
	Logger *slog.Logger
}

// ToolMiddleware wraps a tool handler to log duration and success/error status.
func (m *ToolLoggingMiddleware) ToolMiddleware(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := uuid.NewString()
		ctx = context.WithValue(ctx, callIDKey{}, callID)
		logger := m.Logger.With("tool", req.Params.Name, "call_id", callID)

		start := time.Now()
		result, err := next(ctx, req)
		if err != nil {
			toolCalls.WithLabelValues(req.Params.Name, ToolCallError).Inc()
			logger.Error("Tool call failed",
				"duration_seconds", time.Since(start).Seconds(),
				"error", err,
				"tool_call_outcome", ToolCallError,
			)
			return result, err
		}

		if result != nil && result.IsError {
			var payload string
			if len(result.Content) > 0 {
				if textContent, ok := result.Content[0].(mcp.TextContent); ok {
					payload = textContent.Text
				}
			}
			toolCalls.WithLabelValues(req.Params.Name, ToolCallResultError).Inc()
			logger.Error("Tool call returned error result",
				"duration_seconds", time.Since(start).Seconds(),
				"content", payload,
				"tool_call_outcome", ToolCallResultError,
			)
			return result, err
		}

		toolCalls.WithLabelValues(req.Params.Name, ToolCallSuccess).Inc()
		logger.Info("Tool call successful",
			"duration_seconds", time.Since(start).Seconds(),
			"tool_call_outcome", ToolCallSuccess,
		)
		return result, err
	}
}
