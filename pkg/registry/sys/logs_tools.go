package sys

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mcp-bigip/pkg/bigip"
)

const defaultTailLines = 100

// LogsTool provides device log tools
type LogsTool struct {
	client func(ctx context.Context) (LogsClient, error)
}

// NewLogsTool creates a new LogsTool
func NewLogsTool(client func(ctx context.Context) (LogsClient, error)) *LogsTool {
	return &LogsTool{client: client}
}

// TailResult is the output of logs_tail_ltm.
type TailResult struct {
	Lines    int    `json:"lines"`
	Contains string `json:"contains,omitempty"`
	Output   string `json:"output"`
}

func (l *LogsTool) tailLTM(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	lines := defaultTailLines
	if raw, ok := args["lines"]; ok && raw != nil {
		v, ok := raw.(float64)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("lines must be a number, got %T", raw)), nil
		}
		if v != math.Trunc(v) {
			return mcp.NewToolResultError("lines must be an integer"), nil
		}
		lines = int(v)
	}
	contains, _ := args["contains"].(string)

	client, err := l.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get BIG-IP client: %w", err)
	}
	out, err := client.TailLTMLog(ctx, lines, contains)
	if err != nil {
		if errors.Is(err, bigip.ErrValidation) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultErrorFromErr("api error", err), nil
	}

	jsonOut, err := json.MarshalIndent(TailResult{Lines: lines, Contains: contains, Output: out}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}
	return mcp.NewToolResultText(string(jsonOut)), nil
}

// Tools returns the log tools
func (l *LogsTool) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Handler: l.tailLTM,
			Tool: mcp.NewTool("logs_tail_ltm",
				mcp.WithDescription("Return the last lines of /var/log/ltm, optionally filtered by a fixed string, via /mgmt/tm/util/bash."),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithNumber("lines", mcp.DefaultNumber(defaultTailLines), mcp.Min(1), mcp.Max(bigip.MaxTailLines), mcp.Description("Number of lines to return")),
				mcp.WithString("contains", mcp.MaxLength(bigip.MaxGrepLength), mcp.Description("Only return lines containing this literal string")),
			),
		},
	}
}
