//go:build integration

package testing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataGroupLifecycle(t *testing.T) {
	ctx := context.Background()
	c := initializeClient(ctx, t, mcpServerURL)
	defer c.Close()

	group := uniqueName("mcp_e2e_dg")
	groupPath := "/Common/" + group

	var created map[string]any
	callToolJSON(ctx, c, t, "datagroups_create", map[string]any{
		"name":    group,
		"type":    "string",
		"records": []any{"alpha", map[string]any{"name": "beta", "data": "2"}},
	}, &created)
	require.Equal(t, "created", created["status"])
	require.Equal(t, groupPath, created["data_group"])
	defer func() {
		var deleted map[string]any
		callToolJSON(ctx, c, t, "datagroups_delete", map[string]any{"name": groupPath}, &deleted)
		require.Equal(t, "deleted", deleted["status"])
	}()

	var updated map[string]any
	callToolJSON(ctx, c, t, "datagroups_update", map[string]any{
		"name":    group,
		"records": []any{"gamma"},
	}, &updated)
	require.Equal(t, "updated", updated["status"])

	var withoutRecords map[string]any
	callToolJSON(ctx, c, t, "datagroups_list", nil, &withoutRecords)
	item := findItem(t, withoutRecords, groupPath)
	require.NotNil(t, item)
	require.Equal(t, "string", item["type"])
	require.NotContains(t, item, "records")

	var withRecords map[string]any
	callToolJSON(ctx, c, t, "datagroups_list", map[string]any{"include_records": true}, &withRecords)
	item = findItem(t, withRecords, groupPath)
	require.NotNil(t, item)
	require.Equal(t, []any{map[string]any{"name": "gamma"}}, item["records"])
}

func TestDataGroupCreate_RequiresType(t *testing.T) {
	ctx := context.Background()
	c := initializeClient(ctx, t, mcpServerURL)
	defer c.Close()

	text := callToolError(ctx, c, t, "datagroups_create", map[string]any{"name": uniqueName("mcp_e2e_dg")})
	require.Contains(t, text, "data group type is required")
}
