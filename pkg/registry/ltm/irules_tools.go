package ltm

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// IRulesTool provides iRule management tools
type IRulesTool struct {
	client func(ctx context.Context) (IRulesClient, error)
}

// NewIRulesTool creates a new IRulesTool
func NewIRulesTool(client func(ctx context.Context) (IRulesClient, error)) *IRulesTool {
	return &IRulesTool{client: client}
}

func (t *IRulesTool) listIRules(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	includeDefinition, _ := req.GetArguments()["include_definition"].(bool)

	client, err := t.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get BIG-IP client: %w", err)
	}
	items, err := client.ListIRules(ctx, includeDefinition)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(newListResult(client.Partition(), items))
}

func (t *IRulesTool) createIRule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}
	definition, ok := args["definition"].(string)
	if !ok || definition == "" {
		return mcp.NewToolResultError("definition is required"), nil
	}
	partition, _ := args["partition"].(string)

	client, err := t.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get BIG-IP client: %w", err)
	}
	item, err := client.CreateIRule(ctx, name, definition, partition)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(mutationResult("created", "rule", item, name, partitionOr(partition, client)))
}

func (t *IRulesTool) updateIRule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}
	definition, ok := args["definition"].(string)
	if !ok || definition == "" {
		return mcp.NewToolResultError("definition is required"), nil
	}
	partition, _ := args["partition"].(string)

	client, err := t.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get BIG-IP client: %w", err)
	}
	item, err := client.UpdateIRule(ctx, name, definition, partition)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(mutationResult("updated", "rule", item, name, partitionOr(partition, client)))
}

func (t *IRulesTool) deleteIRule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}
	partition, _ := args["partition"].(string)

	client, err := t.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get BIG-IP client: %w", err)
	}
	if err := client.DeleteIRule(ctx, name, partition); err != nil {
		return errorResult(err), nil
	}
	return jsonResult(mutationResult("deleted", "rule", nil, name, partitionOr(partition, client)))
}

// Tools returns the iRule tools
func (t *IRulesTool) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Handler: t.listIRules,
			Tool: mcp.NewTool("irules_list",
				mcp.WithDescription("List iRules in the configured partition (GET /mgmt/tm/ltm/rule)."),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithBoolean("include_definition", mcp.DefaultBool(false), mcp.Description("Include the TCL body (apiAnonymous) of each rule")),
			),
		},
		{
			Handler: t.createIRule,
			Tool: mcp.NewTool("irules_create",
				mcp.WithDescription("Create an iRule via POST /mgmt/tm/ltm/rule."),
				mcp.WithString("name", mcp.Required(), mcp.Description("Rule name: bare, /Partition/Name or ~Partition~Name")),
				mcp.WithString("definition", mcp.Required(), mcp.Description("TCL source of the iRule")),
				mcp.WithString("partition", mcp.Description("Partition for bare names; defaults to the configured partition")),
			),
		},
		{
			Handler: t.updateIRule,
			Tool: mcp.NewTool("irules_update",
				mcp.WithDescription("Replace the definition of an iRule via PATCH /mgmt/tm/ltm/rule/<name>."),
				mcp.WithString("name", mcp.Required(), mcp.Description("Rule name: bare, /Partition/Name or ~Partition~Name")),
				mcp.WithString("definition", mcp.Required(), mcp.Description("New TCL source of the iRule")),
				mcp.WithString("partition", mcp.Description("Partition for bare names; defaults to the configured partition")),
			),
		},
		{
			Handler: t.deleteIRule,
			Tool: mcp.NewTool("irules_delete",
				mcp.WithDescription("Delete an iRule via DELETE /mgmt/tm/ltm/rule/<name>. The rule must not be attached to a virtual server."),
				mcp.WithDestructiveHintAnnotation(true),
				mcp.WithString("name", mcp.Required(), mcp.Description("Rule name: bare, /Partition/Name or ~Partition~Name")),
				mcp.WithString("partition", mcp.Description("Partition for bare names; defaults to the configured partition")),
			),
		},
	}
}
