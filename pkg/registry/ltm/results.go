package ltm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"

	"mcp-bigip/pkg/bigip"
)

// ListResult is returned by every *_list tool.
type ListResult struct {
	Partition string       `json:"partition"`
	Count     int          `json:"count"`
	Items     []bigip.Item `json:"items"`
}

func newListResult(partition string, items []bigip.Item) ListResult {
	if items == nil {
		items = []bigip.Item{}
	}
	return ListResult{Partition: partition, Count: len(items), Items: items}
}

// mutationResult reports the affected object as {status, <key>: fullPath, generation}.
// The device's fullPath is preferred; name and partition are the fallback.
// generation is null when there is no item, as after a delete.
func mutationResult(status, key string, item bigip.Item, name, partition string) map[string]any {
	out := map[string]any{
		"status":     status,
		key:          displayPath(item, name, partition),
		"generation": nil,
	}
	if item != nil {
		out["generation"] = item.Generation()
	}
	return out
}

func displayPath(item bigip.Item, name, partition string) string {
	if p := item.FullPath(); p != "" {
		return p
	}
	if p, err := bigip.FullPath(name, partition); err == nil {
		return p
	}
	return name
}

// errorResult turns a client error into a tool error result. Bad input is
// reported as is so the caller can correct it; everything else is an api error.
func errorResult(err error) *mcp.CallToolResult {
	if errors.Is(err, bigip.ErrValidation) {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultErrorFromErr("api error", err)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// decodeArgs decodes the tool arguments into v.
func decodeArgs(args map[string]any, v any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// parseFields splits a comma separated field list.
func parseFields(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return bigip.SelectFields(strings.Split(raw, ","))
}

// reflectSchema renders the input schema of a tool taking v as arguments.
func reflectSchema(v any) json.RawMessage {
	r := jsonschema.Reflector{
		Anonymous:                  true,
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
		ExpandedStruct:             true,
	}
	s := r.Reflect(v)
	s.Version = ""
	data, err := s.MarshalJSON()
	if err != nil {
		panic(fmt.Errorf("failed to marshal schema for %T: %w", v, err))
	}
	return data
}

func partitionOr(partition string, client interface{ Partition() string }) string {
	if partition != "" {
		return partition
	}
	return client.Partition()
}
