package ltm

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mcp-bigip/pkg/bigip"
)

// VirtualsTool provides virtual server tools
type VirtualsTool struct {
	client func(ctx context.Context) (VirtualsClient, error)
}

// NewVirtualsTool creates a new VirtualsTool
func NewVirtualsTool(client func(ctx context.Context) (VirtualsClient, error)) *VirtualsTool {
	return &VirtualsTool{client: client}
}

func (t *VirtualsTool) listVirtuals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	selectFields, _ := req.GetArguments()["select_fields"].(string)

	client, err := t.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get BIG-IP client: %w", err)
	}
	items, err := client.ListVirtuals(ctx, parseFields(selectFields))
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(newListResult(client.Partition(), items))
}

type ruleEdit func(ctx context.Context, client VirtualsClient, virtual, rule, virtualPartition, rulePartition string) (*bigip.VirtualRules, error)

func (t *VirtualsTool) editRules(edit ruleEdit) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		virtual, ok := args["virtual_name"].(string)
		if !ok || virtual == "" {
			return mcp.NewToolResultError("virtual_name is required"), nil
		}
		rule, ok := args["rule_name"].(string)
		if !ok || rule == "" {
			return mcp.NewToolResultError("rule_name is required"), nil
		}
		virtualPartition, _ := args["virtual_partition"].(string)
		rulePartition, _ := args["rule_partition"].(string)

		client, err := t.client(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get BIG-IP client: %w", err)
		}
		result, err := edit(ctx, client, virtual, rule, virtualPartition, rulePartition)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(result)
	}
}

func attach(ctx context.Context, client VirtualsClient, virtual, rule, virtualPartition, rulePartition string) (*bigip.VirtualRules, error) {
	return client.AttachIRuleToVirtual(ctx, virtual, rule, virtualPartition, rulePartition)
}

func detach(ctx context.Context, client VirtualsClient, virtual, rule, virtualPartition, rulePartition string) (*bigip.VirtualRules, error) {
	return client.DetachIRuleFromVirtual(ctx, virtual, rule, virtualPartition, rulePartition)
}

// Tools returns the virtual server tools
func (t *VirtualsTool) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Handler: t.listVirtuals,
			Tool: mcp.NewTool("virtuals_list",
				mcp.WithDescription("List virtual servers in the configured partition (GET /mgmt/tm/ltm/virtual)."),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithString("select_fields", mcp.Description("Comma separated extra fields to select, e.g. destination,rules,pool")),
			),
		},
		{
			Handler: t.editRules(attach),
			Tool: mcp.NewTool("virtuals_attach_irule",
				mcp.WithDescription("Attach an iRule to a virtual server. The virtual server is only patched when the rule is not attached yet."),
				mcp.WithIdempotentHintAnnotation(true),
				mcp.WithString("virtual_name", mcp.Required(), mcp.Description("Virtual server name: bare, /Partition/Name or ~Partition~Name")),
				mcp.WithString("rule_name", mcp.Required(), mcp.Description("iRule name: bare, /Partition/Name or ~Partition~Name")),
				mcp.WithString("virtual_partition", mcp.Description("Partition for a bare virtual server name")),
				mcp.WithString("rule_partition", mcp.Description("Partition for a bare iRule name")),
			),
		},
		{
			Handler: t.editRules(detach),
			Tool: mcp.NewTool("virtuals_detach_irule",
				mcp.WithDescription("Detach an iRule from a virtual server. The virtual server is only patched when the rule was attached."),
				mcp.WithIdempotentHintAnnotation(true),
				mcp.WithString("virtual_name", mcp.Required(), mcp.Description("Virtual server name: bare, /Partition/Name or ~Partition~Name")),
				mcp.WithString("rule_name", mcp.Required(), mcp.Description("iRule name: bare, /Partition/Name or ~Partition~Name")),
				mcp.WithString("virtual_partition", mcp.Description("Partition for a bare virtual server name")),
				mcp.WithString("rule_partition", mcp.Description("Partition for a bare iRule name")),
			),
		},
	}
}
