package bigip

import (
	"context"
	"net/http"
	"slices"
)

const (
	ruleResource = "rule"

	// ruleBodyField holds the TCL source of an iRule.
	ruleBodyField = "apiAnonymous"
)

// baseFields are always selected so that partition filtering has its inputs.
var baseFields = []string{"name", "fullPath", "partition", "generation"}

func withBaseFields(fields ...string) []string {
	return SelectFields(append(slices.Clone(baseFields), fields...))
}

// ListIRules lists the iRules of the configured partition. The rule body is only
// returned when includeDefinition is set.
func (c *Client) ListIRules(ctx context.Context, includeDefinition bool) ([]Item, error) {
	fields := withBaseFields()
	if includeDefinition {
		fields = withBaseFields(ruleBodyField)
	}
	items, err := c.listItems(ctx, ruleResource, fields)
	if err != nil {
		return nil, err
	}
	if !includeDefinition {
		// the device does not always honor $select
		for _, item := range items {
			delete(item, ruleBodyField)
		}
	}
	return items, nil
}

// CreateIRule creates an iRule with the given TCL definition.
func (c *Client) CreateIRule(ctx context.Context, name, definition, partition string) (Item, error) {
	rn, err := c.parseName(name, partition)
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"name":        rn.Name,
		"partition":   rn.Partition,
		ruleBodyField: definition,
	}
	return c.requestItem(ctx, http.MethodPost, resourcePath(ruleResource, ""), nil, body)
}

// UpdateIRule replaces the definition of an existing iRule.
func (c *Client) UpdateIRule(ctx context.Context, name, definition, partition string) (Item, error) {
	rn, err := c.parseName(name, partition)
	if err != nil {
		return nil, err
	}
	body := map[string]any{ruleBodyField: definition}
	return c.requestItem(ctx, http.MethodPatch, resourcePath(ruleResource, rn.Tilde()), nil, body)
}

// DeleteIRule deletes an iRule.
func (c *Client) DeleteIRule(ctx context.Context, name, partition string) error {
	rn, err := c.parseName(name, partition)
	if err != nil {
		return err
	}
	_, err = c.Request(ctx, http.MethodDelete, resourcePath(ruleResource, rn.Tilde()), nil, nil)
	return err
}
