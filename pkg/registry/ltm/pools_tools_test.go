package ltm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mcp-bigip/pkg/bigip"
)

func newPoolsTestTool(t *testing.T) (*PoolsTool, *MockPoolsClient) {
	ctrl := gomock.NewController(t)
	m := NewMockPoolsClient(ctrl)
	return NewPoolsTool(func(context.Context) (PoolsClient, error) {
		return m, nil
	}), m
}

func TestPoolsTool_createPool(t *testing.T) {
	tool, m := newPoolsTestTool(t)
	m.EXPECT().CreatePool(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, spec bigip.PoolSpec) (bigip.Item, error) {
		require.Equal(t, "web", spec.Name)
		require.NotNil(t, spec.Monitor)
		require.Equal(t, "/Common/http", *spec.Monitor)
		require.Nil(t, spec.Description)
		require.Nil(t, spec.LoadBalancingMode)
		require.Equal(t, []any{"10.0.0.1:80", map[string]any{"name": "10.0.0.2:80", "ratio": float64(2)}}, spec.Members)
		return bigip.Item{"fullPath": "/Common/web", "generation": 2}, nil
	})
	m.EXPECT().Partition().Return("Common")

	res, err := tool.createPool(context.Background(), callRequest(map[string]any{
		"name":    "web",
		"monitor": "/Common/http",
		"members": []any{"10.0.0.1:80", map[string]any{"name": "10.0.0.2:80", "ratio": 2}},
	}))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"status": "created", "pool": "/Common/web", "generation": float64(2)}, resultJSON(t, res))
}

func TestPoolsTool_createPoolBadArguments(t *testing.T) {
	tool, _ := newPoolsTestTool(t)

	res, err := tool.createPool(context.Background(), callRequest(map[string]any{"name": "web", "members": "10.0.0.1:80"}))
	require.NoError(t, err)
	require.True(t, res.IsError)

	res, err = tool.createPool(context.Background(), callRequest(map[string]any{"members": []any{}}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), "name is required")
}

func TestPoolsTool_modifyPoolValidation(t *testing.T) {
	tool, m := newPoolsTestTool(t)
	m.EXPECT().ModifyPool(gomock.Any(), bigip.PoolSpec{Name: "web"}).
		Return(nil, errors.Mark(errors.New("no pool fields to modify for /Common/web"), bigip.ErrValidation))

	res, err := tool.modifyPool(context.Background(), callRequest(map[string]any{"name": "web"}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Equal(t, "no pool fields to modify for /Common/web", resultText(t, res))
}

func TestPoolsTool_modifyAndDelete(t *testing.T) {
	tool, m := newPoolsTestTool(t)
	desc := "updated"
	m.EXPECT().ModifyPool(gomock.Any(), bigip.PoolSpec{Name: "web", Partition: "Tenant", Description: &desc}).
		Return(bigip.Item{"fullPath": "/Tenant/web", "generation": 5}, nil)
	m.EXPECT().DeletePool(gomock.Any(), "web", "Tenant").Return(nil)

	res, err := tool.modifyPool(context.Background(), callRequest(map[string]any{"name": "web", "partition": "Tenant", "description": "updated"}))
	require.NoError(t, err)
	require.Equal(t, "modified", resultJSON(t, res)["status"])

	res, err = tool.deletePool(context.Background(), callRequest(map[string]any{"name": "web", "partition": "Tenant"}))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"status": "deleted", "pool": "/Tenant/web", "generation": nil}, resultJSON(t, res))
}

func TestPoolSpecSchema(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal(poolSpecSchema, &schema))
	require.Equal(t, "object", schema["type"])
	require.Equal(t, []any{"name"}, schema["required"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"name", "partition", "load_balancing_mode", "monitor", "description", "members"} {
		require.Contains(t, props, key)
	}
}
