package ltm

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mcp-bigip/pkg/bigip"
)

var dataGroupSpecSchema = reflectSchema(&bigip.DataGroupSpec{})

// DataGroupsTool provides internal data group tools
type DataGroupsTool struct {
	client func(ctx context.Context) (DataGroupsClient, error)
}

// NewDataGroupsTool creates a new DataGroupsTool
func NewDataGroupsTool(client func(ctx context.Context) (DataGroupsClient, error)) *DataGroupsTool {
	return &DataGroupsTool{client: client}
}

func (t *DataGroupsTool) listDataGroups(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	includeRecords, _ := req.GetArguments()["include_records"].(bool)

	client, err := t.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get BIG-IP client: %w", err)
	}
	items, err := client.ListDataGroups(ctx, includeRecords)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(newListResult(client.Partition(), items))
}

func (t *DataGroupsTool) createDataGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var spec bigip.DataGroupSpec
	if err := decodeArgs(req.GetArguments(), &spec); err != nil {
		return mcp.NewToolResultErrorFromErr("failed to parse data group arguments", err), nil
	}
	if spec.Name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	client, err := t.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get BIG-IP client: %w", err)
	}
	item, err := client.CreateDataGroup(ctx, spec)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(mutationResult("created", "data_group", item, spec.Name, partitionOr(spec.Partition, client)))
}

func (t *DataGroupsTool) updateDataGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var spec bigip.DataGroupSpec
	if err := decodeArgs(req.GetArguments(), &spec); err != nil {
		return mcp.NewToolResultErrorFromErr("failed to parse data group arguments", err), nil
	}
	if spec.Name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	client, err := t.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get BIG-IP client: %w", err)
	}
	item, err := client.UpdateDataGroup(ctx, spec)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(mutationResult("updated", "data_group", item, spec.Name, partitionOr(spec.Partition, client)))
}

func (t *DataGroupsTool) deleteDataGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	if err := client.DeleteDataGroup(ctx, name, partition); err != nil {
		return errorResult(err), nil
	}
	return jsonResult(mutationResult("deleted", "data_group", nil, name, partitionOr(partition, client)))
}

// Tools returns the data group tools
func (t *DataGroupsTool) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Handler: t.listDataGroups,
			Tool: mcp.NewTool("datagroups_list",
				mcp.WithDescription("List internal data groups in the configured partition (GET /mgmt/tm/ltm/data-group/internal)."),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithBoolean("include_records", mcp.DefaultBool(false), mcp.Description("Include the records of each data group")),
			),
		},
		{
			Handler: t.createDataGroup,
			Tool: mcp.NewToolWithRawSchema("datagroups_create",
				"Create an internal data group via POST /mgmt/tm/ltm/data-group/internal. type is required.",
				dataGroupSpecSchema,
			),
		},
		{
			Handler: t.updateDataGroup,
			Tool: mcp.NewToolWithRawSchema("datagroups_update",
				"Update an internal data group via PATCH /mgmt/tm/ltm/data-group/internal/<name>. Supplied records replace the full record list.",
				dataGroupSpecSchema,
			),
		},
		{
			Handler: t.deleteDataGroup,
			Tool: mcp.NewTool("datagroups_delete",
				mcp.WithDescription("Delete an internal data group via DELETE /mgmt/tm/ltm/data-group/internal/<name>."),
				mcp.WithDestructiveHintAnnotation(true),
				mcp.WithString("name", mcp.Required(), mcp.Description("Data group name: bare, /Partition/Name or ~Partition~Name")),
				mcp.WithString("partition", mcp.Description("Partition for bare names; defaults to the configured partition")),
			),
		},
	}
}
