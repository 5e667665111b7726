package bigip

import (
	"context"
	"net/http"
	"strings"
)

const (
	dataGroupResource = "data-group/internal"
	recordsField      = "records"
)

// DataGroupSpec describes an internal data group to create or update. Nil
// optional fields are left out of the request.
type DataGroupSpec struct {
	Name        string  `json:"name" jsonschema:"required" jsonschema_description:"Data group name: bare, /Partition/Name or ~Partition~Name"`
	Partition   string  `json:"partition,omitempty" jsonschema_description:"Partition for bare names; defaults to the configured partition"`
	Type        *string `json:"type,omitempty" jsonschema:"enum=string,enum=ip,enum=integer" jsonschema_description:"Key type; required on create"`
	Description *string `json:"description,omitempty" jsonschema_description:"Free-form description"`
	Records     []any   `json:"records,omitempty" jsonschema_description:"Records: strings (key only) or objects with a name key and an optional data value. Replaces the full record list"`
}

func (d DataGroupSpec) body() (map[string]any, error) {
	body := map[string]any{}
	if d.Type != nil {
		body["type"] = *d.Type
	}
	if d.Description != nil {
		body["description"] = *d.Description
	}
	if d.Records != nil {
		records, err := normalizeNamed("record", d.Records)
		if err != nil {
			return nil, err
		}
		body[recordsField] = records
	}
	return body, nil
}

// ListDataGroups lists the internal data groups of the configured partition.
// Records are only returned when includeRecords is set.
func (c *Client) ListDataGroups(ctx context.Context, includeRecords bool) ([]Item, error) {
	fields := withBaseFields("type", "description")
	if includeRecords {
		fields = withBaseFields("type", "description", recordsField)
	}
	items, err := c.listItems(ctx, dataGroupResource, fields)
	if err != nil {
		return nil, err
	}
	if !includeRecords {
		for _, item := range items {
			delete(item, recordsField)
		}
	}
	return items, nil
}

// CreateDataGroup creates an internal data group. Type is required.
func (c *Client) CreateDataGroup(ctx context.Context, spec DataGroupSpec) (Item, error) {
	rn, err := c.parseName(spec.Name, spec.Partition)
	if err != nil {
		return nil, err
	}
	if spec.Type == nil || strings.TrimSpace(*spec.Type) == "" {
		return nil, validationErrorf("data group type is required")
	}
	body, err := spec.body()
	if err != nil {
		return nil, err
	}
	body["name"] = rn.Name
	body["partition"] = rn.Partition
	return c.requestItem(ctx, http.MethodPost, resourcePath(dataGroupResource, ""), nil, body)
}

// UpdateDataGroup patches the fields set in spec. At least one optional field must be set.
func (c *Client) UpdateDataGroup(ctx context.Context, spec DataGroupSpec) (Item, error) {
	rn, err := c.parseName(spec.Name, spec.Partition)
	if err != nil {
		return nil, err
	}
	body, err := spec.body()
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, validationErrorf("no data group fields to update for %s", rn.FullPath())
	}
	return c.requestItem(ctx, http.MethodPatch, resourcePath(dataGroupResource, rn.Tilde()), nil, body)
}

// DeleteDataGroup deletes an internal data group.
func (c *Client) DeleteDataGroup(ctx context.Context, name, partition string) error {
	rn, err := c.parseName(name, partition)
	if err != nil {
		return err
	}
	_, err = c.Request(ctx, http.MethodDelete, resourcePath(dataGroupResource, rn.Tilde()), nil, nil)
	return err
}
