package ltm

import (
	"context"

	"mcp-bigip/pkg/bigip"
)

//go:generate mockgen -source=client.go -destination=mock_client.go -package=ltm

// IRulesClient is the part of *bigip.Client used by the iRule tools.
type IRulesClient interface {
	Partition() string
	ListIRules(ctx context.Context, includeDefinition bool) ([]bigip.Item, error)
	CreateIRule(ctx context.Context, name, definition, partition string) (bigip.Item, error)
	UpdateIRule(ctx context.Context, name, definition, partition string) (bigip.Item, error)
	DeleteIRule(ctx context.Context, name, partition string) error
}

// VirtualsClient is the part of *bigip.Client used by the virtual server tools.
type VirtualsClient interface {
	Partition() string
	ListVirtuals(ctx context.Context, fields []string) ([]bigip.Item, error)
	AttachIRuleToVirtual(ctx context.Context, virtual, rule, virtualPartition, rulePartition string) (*bigip.VirtualRules, error)
	DetachIRuleFromVirtual(ctx context.Context, virtual, rule, virtualPartition, rulePartition string) (*bigip.VirtualRules, error)
}

// PoolsClient is the part of *bigip.Client used by the pool tools.
type PoolsClient interface {
	Partition() string
	ListPools(ctx context.Context, fields []string) ([]bigip.Item, error)
	CreatePool(ctx context.Context, spec bigip.PoolSpec) (bigip.Item, error)
	ModifyPool(ctx context.Context, spec bigip.PoolSpec) (bigip.Item, error)
	DeletePool(ctx context.Context, name, partition string) error
}

// DataGroupsClient is the part of *bigip.Client used by the data group tools.
type DataGroupsClient interface {
	Partition() string
	ListDataGroups(ctx context.Context, includeRecords bool) ([]bigip.Item, error)
	CreateDataGroup(ctx context.Context, spec bigip.DataGroupSpec) (bigip.Item, error)
	UpdateDataGroup(ctx context.Context, spec bigip.DataGroupSpec) (bigip.Item, error)
	DeleteDataGroup(ctx context.Context, name, partition string) error
}
