package bigip

import (
	"context"
	"net/http"
	"slices"
)

const virtualResource = "virtual"

// VirtualRules is the outcome of attaching or detaching an iRule.
type VirtualRules struct {
	Virtual string   `json:"virtual"`
	Rules   []string `json:"rules"`
	Changed bool     `json:"changed"`
}

// ListVirtuals lists the virtual servers of the configured partition.
func (c *Client) ListVirtuals(ctx context.Context, fields []string) ([]Item, error) {
	return c.listItems(ctx, virtualResource, withBaseFields(fields...))
}

// GetVirtual fetches one virtual server.
func (c *Client) GetVirtual(ctx context.Context, name, partition string) (Item, error) {
	rn, err := c.parseName(name, partition)
	if err != nil {
		return nil, err
	}
	return c.requestItem(ctx, http.MethodGet, resourcePath(virtualResource, rn.Tilde()), nil, nil)
}

// AttachIRuleToVirtual appends rule to the virtual server's rule list unless it
// is already present. The virtual server is only patched when the list changes.
func (c *Client) AttachIRuleToVirtual(ctx context.Context, virtual, rule, virtualPartition, rulePartition string) (*VirtualRules, error) {
	return c.editVirtualRules(ctx, virtual, rule, virtualPartition, rulePartition, func(rules []string, target string) []string {
		if slices.Contains(rules, target) {
			return rules
		}
		return append(rules, target)
	})
}

// DetachIRuleFromVirtual removes rule from the virtual server's rule list. The
// virtual server is only patched when the rule was attached.
func (c *Client) DetachIRuleFromVirtual(ctx context.Context, virtual, rule, virtualPartition, rulePartition string) (*VirtualRules, error) {
	return c.editVirtualRules(ctx, virtual, rule, virtualPartition, rulePartition, func(rules []string, target string) []string {
		return slices.DeleteFunc(rules, func(r string) bool { return r == target })
	})
}

func (c *Client) editVirtualRules(
	ctx context.Context,
	virtual, rule, virtualPartition, rulePartition string,
	edit func(rules []string, target string) []string,
) (*VirtualRules, error) {
	vn, err := c.parseName(virtual, virtualPartition)
	if err != nil {
		return nil, err
	}
	rn, err := c.parseName(rule, rulePartition)
	if err != nil {
		return nil, err
	}

	path := resourcePath(virtualResource, vn.Tilde())
	current, err := c.requestItem(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	before := rulesOf(current)
	after := edit(slices.Clone(before), rn.FullPath())

	result := &VirtualRules{
		Virtual: current.FullPath(),
		Rules:   after,
	}
	if result.Virtual == "" {
		result.Virtual = vn.FullPath()
	}
	if slices.Equal(before, after) {
		return result, nil
	}

	if _, err := c.requestItem(ctx, http.MethodPatch, path, nil, map[string]any{"rules": after}); err != nil {
		return nil, err
	}
	result.Changed = true
	return result, nil
}

// Rules returns the iRule full paths attached to a virtual server item.
func (i Item) Rules() []string { return rulesOf(i) }

func rulesOf(item Item) []string {
	raw, _ := item["rules"].([]any)
	rules := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			rules = append(rules, s)
		}
	}
	return rules
}
