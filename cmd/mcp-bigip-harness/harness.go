package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	defaultRulePrefix   = "mcp_harness"
	defaultDefinitionV1 = `when CLIENT_ACCEPTED { log local0. "mcp harness v1" }`
	defaultDefinitionV2 = `when CLIENT_ACCEPTED { log local0. "mcp harness v2" }`
)

// toolClient is the part of the mcp-go client used by a validation run.
type toolClient interface {
	ListTools(ctx context.Context, request mcp.ListToolsRequest) (*mcp.ListToolsResult, error)
	CallTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type config struct {
	virtual      string
	rulePrefix   string
	definitionV1 string
	definitionV2 string
	logLines     int
	logFilter    string
}

// parseEnvOverrides checks that every entry is KEY=VALUE with a non-empty key.
func parseEnvOverrides(pairs []string) ([]string, error) {
	out := make([]string, 0, len(pairs))
	for _, item := range pairs {
		key, value, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("invalid env entry %q, use KEY=VALUE", item)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid env key in %q", item)
		}
		out = append(out, key+"="+value)
	}
	return out, nil
}

type step struct {
	key  string
	tool string
	args map[string]any
}

// runValidation walks an iRule through create, update, attach, log tail,
// detach and delete on cfg.virtual. Results are keyed by step. When a step
// fails, the rule is detached and deleted on a best-effort basis.
func runValidation(ctx context.Context, logger *slog.Logger, c toolClient, cfg config, now time.Time) (map[string]any, error) {
	results := map[string]any{
		"timestamp":      now.UTC().Format(time.RFC3339),
		"rule_prefix":    cfg.rulePrefix,
		"virtual_server": cfg.virtual,
	}

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return results, fmt.Errorf("listing tools: %w", err)
	}
	results["tool_count"] = len(tools.Tools)

	ruleName := fmt.Sprintf("%s_%d", cfg.rulePrefix, now.Unix())
	tailArgs := map[string]any{"lines": cfg.logLines}
	if cfg.logFilter != "" {
		tailArgs["contains"] = cfg.logFilter
	}
	attachArgs := map[string]any{"virtual_name": cfg.virtual, "rule_name": ruleName}

	steps := []step{
		{key: "server_info", tool: "server_info"},
		{key: "irules_list_before", tool: "irules_list", args: map[string]any{"include_definition": false}},
		{key: "irules_create", tool: "irules_create", args: map[string]any{"name": ruleName, "definition": cfg.definitionV1}},
		{key: "irules_update", tool: "irules_update", args: map[string]any{"name": ruleName, "definition": cfg.definitionV2}},
		{key: "virtuals_attach_irule", tool: "virtuals_attach_irule", args: attachArgs},
		{key: "logs_tail_ltm", tool: "logs_tail_ltm", args: tailArgs},
		{key: "virtuals_detach_irule", tool: "virtuals_detach_irule", args: attachArgs},
		{key: "irules_delete", tool: "irules_delete", args: map[string]any{"name": ruleName}},
	}

	var created, attached bool
	for _, s := range steps {
		logger.Info("running step", "step", s.key)
		out, err := callTool(ctx, c, s.tool, s.args)
		if err != nil {
			results["failed_step"] = s.key
			results["error"] = err.Error()
			cleanup(context.WithoutCancel(ctx), logger, c, ruleName, attachArgs, created, attached)
			return results, fmt.Errorf("step %s: %w", s.key, err)
		}
		results[s.key] = out

		switch s.key {
		case "irules_create":
			created = true
		case "virtuals_attach_irule":
			attached = true
		case "virtuals_detach_irule":
			attached = false
		case "irules_delete":
			created = false
		}
	}
	return results, nil
}

func cleanup(ctx context.Context, logger *slog.Logger, c toolClient, ruleName string, attachArgs map[string]any, created, attached bool) {
	if attached {
		if _, err := callTool(ctx, c, "virtuals_detach_irule", attachArgs); err != nil {
			logger.Warn("cleanup detach failed", "rule", ruleName, "error", err)
		}
	}
	if created {
		if _, err := callTool(ctx, c, "irules_delete", map[string]any{"name": ruleName}); err != nil {
			logger.Warn("cleanup delete failed", "rule", ruleName, "error", err)
		}
	}
}

// callTool calls name and decodes its JSON text result. Tool error results are
// returned as errors carrying the tool's message.
func callTool(ctx context.Context, c toolClient, name string, args map[string]any) (any, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	if len(args) > 0 {
		req.Params.Arguments = args
	}
	res, err := c.CallTool(ctx, req)
	if err != nil {
		return nil, err
	}

	var text string
	if len(res.Content) > 0 {
		if tc, ok := res.Content[0].(mcp.TextContent); ok {
			text = tc.Text
		}
	}
	if res.IsError {
		return nil, fmt.Errorf("%s returned error: %s", name, text)
	}

	var out any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return text, nil
	}
	return out, nil
}
