package bigip

import (
	"context"
	"net/http"
	"strings"
)

const poolResource = "pool"

// PoolSpec describes a pool to create or modify. Nil optional fields are left
// out of the request; they never clear a value on the device.
type PoolSpec struct {
	Name              string  `json:"name" jsonschema:"required" jsonschema_description:"Pool name: bare, /Partition/Name or ~Partition~Name"`
	Partition         string  `json:"partition,omitempty" jsonschema_description:"Partition for bare names; defaults to the configured partition"`
	LoadBalancingMode *string `json:"load_balancing_mode,omitempty" jsonschema_description:"Load balancing mode, e.g. round-robin or least-connections-member"`
	Monitor           *string `json:"monitor,omitempty" jsonschema_description:"Health monitor expression, e.g. /Common/http"`
	Description       *string `json:"description,omitempty" jsonschema_description:"Free-form description"`
	Members           []any   `json:"members,omitempty" jsonschema_description:"Pool members: strings such as 10.0.0.1:80, or objects with at least a name key. Replaces the full member list"`
}

func (p PoolSpec) options() map[string]any {
	body := map[string]any{}
	if p.LoadBalancingMode != nil {
		body["loadBalancingMode"] = *p.LoadBalancingMode
	}
	if p.Monitor != nil {
		body["monitor"] = *p.Monitor
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	return body
}

// ListPools lists the pools of the configured partition.
func (c *Client) ListPools(ctx context.Context, fields []string) ([]Item, error) {
	return c.listItems(ctx, poolResource, withBaseFields(fields...))
}

// CreatePool creates a pool from spec.
func (c *Client) CreatePool(ctx context.Context, spec PoolSpec) (Item, error) {
	rn, err := c.parseName(spec.Name, spec.Partition)
	if err != nil {
		return nil, err
	}
	body := spec.options()
	if spec.Members != nil {
		members, err := normalizeNamed("member", spec.Members)
		if err != nil {
			return nil, err
		}
		body["members"] = members
	}
	body["name"] = rn.Name
	body["partition"] = rn.Partition
	return c.requestItem(ctx, http.MethodPost, resourcePath(poolResource, ""), nil, body)
}

// ModifyPool patches the fields set in spec. At least one optional field must be set.
func (c *Client) ModifyPool(ctx context.Context, spec PoolSpec) (Item, error) {
	rn, err := c.parseName(spec.Name, spec.Partition)
	if err != nil {
		return nil, err
	}
	body := spec.options()
	if spec.Members != nil {
		members, err := normalizeNamed("member", spec.Members)
		if err != nil {
			return nil, err
		}
		body["members"] = members
	}
	if len(body) == 0 {
		return nil, validationErrorf("no pool fields to modify for %s", rn.FullPath())
	}
	return c.requestItem(ctx, http.MethodPatch, resourcePath(poolResource, rn.Tilde()), nil, body)
}

// DeletePool deletes a pool.
func (c *Client) DeletePool(ctx context.Context, name, partition string) error {
	rn, err := c.parseName(name, partition)
	if err != nil {
		return err
	}
	_, err = c.Request(ctx, http.MethodDelete, resourcePath(poolResource, rn.Tilde()), nil, nil)
	return err
}

// normalizeNamed turns strings into {"name": s} and checks that mappings carry
// a non-empty name. kind names the entries in error messages.
func normalizeNamed(kind string, entries []any) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(entries))
	for i, e := range entries {
		switch v := e.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				return nil, validationErrorf("%s %d must not be empty", kind, i)
			}
			out = append(out, map[string]any{"name": v})
		case map[string]any:
			name, _ := v["name"].(string)
			if strings.TrimSpace(name) == "" {
				return nil, validationErrorf("%s %d must include a non-empty 'name'", kind, i)
			}
			m := make(map[string]any, len(v))
			for k, val := range v {
				m[k] = val
			}
			out = append(out, m)
		default:
			return nil, validationErrorf("%s %d must be a string or an object, got %T", kind, i, e)
		}
	}
	return out, nil
}
