package ltm

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mcp-bigip/pkg/bigip"
)

var poolSpecSchema = reflectSchema(&bigip.PoolSpec{})

// PoolsTool provides pool management tools
type PoolsTool struct {
	client func(ctx context.Context) (PoolsClient, error)
}

// NewPoolsTool creates a new PoolsTool
func NewPoolsTool(client func(ctx context.Context) (PoolsClient, error)) *PoolsTool {
	return &PoolsTool{client: client}
}

func (t *PoolsTool) listPools(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	selectFields, _ := req.GetArguments()["select_fields"].(string)

	client, err := t.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get BIG-IP client: %w", err)
	}
	items, err := client.ListPools(ctx, parseFields(selectFields))
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(newListResult(client.Partition(), items))
}

func (t *PoolsTool) createPool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var spec bigip.PoolSpec
	if err := decodeArgs(req.GetArguments(), &spec); err != nil {
		return mcp.NewToolResultErrorFromErr("failed to parse pool arguments", err), nil
	}
	if spec.Name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	client, err := t.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get BIG-IP client: %w", err)
	}
	item, err := client.CreatePool(ctx, spec)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(mutationResult("created", "pool", item, spec.Name, partitionOr(spec.Partition, client)))
}

func (t *PoolsTool) modifyPool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var spec bigip.PoolSpec
	if err := decodeArgs(req.GetArguments(), &spec); err != nil {
		return mcp.NewToolResultErrorFromErr("failed to parse pool arguments", err), nil
	}
	if spec.Name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	client, err := t.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get BIG-IP client: %w", err)
	}
	item, err := client.ModifyPool(ctx, spec)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(mutationResult("modified", "pool", item, spec.Name, partitionOr(spec.Partition, client)))
}

func (t *PoolsTool) deletePool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	if err := client.DeletePool(ctx, name, partition); err != nil {
		return errorResult(err), nil
	}
	return jsonResult(mutationResult("deleted", "pool", nil, name, partitionOr(partition, client)))
}

// Tools returns the pool tools
func (t *PoolsTool) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Handler: t.listPools,
			Tool: mcp.NewTool("pools_list",
				mcp.WithDescription("List LTM pools in the configured partition (GET /mgmt/tm/ltm/pool)."),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithString("select_fields", mcp.Description("Comma separated extra fields to select, e.g. members,loadBalancingMode")),
			),
		},
		{
			Handler: t.createPool,
			Tool: mcp.NewToolWithRawSchema("pools_create",
				"Create an LTM pool via POST /mgmt/tm/ltm/pool. Only supplied fields are sent.",
				poolSpecSchema,
			),
		},
		{
			Handler: t.modifyPool,
			Tool: mcp.NewToolWithRawSchema("pools_modify",
				"Modify an LTM pool via PATCH /mgmt/tm/ltm/pool/<name>. Supplied members replace the full member list; at least one field besides name is required.",
				poolSpecSchema,
			),
		},
		{
			Handler: t.deletePool,
			Tool: mcp.NewTool("pools_delete",
				mcp.WithDescription("Delete an LTM pool via DELETE /mgmt/tm/ltm/pool/<name>."),
				mcp.WithDestructiveHintAnnotation(true),
				mcp.WithString("name", mcp.Required(), mcp.Description("Pool name: bare, /Partition/Name or ~Partition~Name")),
				mcp.WithString("partition", mcp.Description("Partition for bare names; defaults to the configured partition")),
			),
		},
	}
}
