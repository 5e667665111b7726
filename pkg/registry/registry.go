package registry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/server"

	"mcp-bigip/pkg/bigip"
	"mcp-bigip/pkg/registry/ltm"
	"mcp-bigip/pkg/registry/sys"
)

type getClientFn func(ctx context.Context) (*bigip.Client, error)

// supportedServices is a set of services that we support in this MCP server.
var supportedServices = map[string]struct{}{
	"irules":     {},
	"virtuals":   {},
	"pools":      {},
	"datagroups": {},
	"logs":       {},
}

// SupportedServices returns the service names accepted by Register, sorted.
func SupportedServices() []string {
	out := make([]string, 0, len(supportedServices))
	for k := range supportedServices {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func registerIRulesTools(s *server.MCPServer, getClient getClientFn) {
	s.AddTools(ltm.NewIRulesTool(func(ctx context.Context) (ltm.IRulesClient, error) {
		return getClient(ctx)
	}).Tools()...)
}

func registerVirtualsTools(s *server.MCPServer, getClient getClientFn) {
	s.AddTools(ltm.NewVirtualsTool(func(ctx context.Context) (ltm.VirtualsClient, error) {
		return getClient(ctx)
	}).Tools()...)
}

func registerPoolsTools(s *server.MCPServer, getClient getClientFn) {
	s.AddTools(ltm.NewPoolsTool(func(ctx context.Context) (ltm.PoolsClient, error) {
		return getClient(ctx)
	}).Tools()...)
}

func registerDataGroupsTools(s *server.MCPServer, getClient getClientFn) {
	s.AddTools(ltm.NewDataGroupsTool(func(ctx context.Context) (ltm.DataGroupsClient, error) {
		return getClient(ctx)
	}).Tools()...)
}

func registerLogsTools(s *server.MCPServer, getClient getClientFn) {
	s.AddTools(sys.NewLogsTool(func(ctx context.Context) (sys.LogsClient, error) {
		return getClient(ctx)
	}).Tools()...)
}

// registerInfoTools registers server_info, which reports the active services.
func registerInfoTools(s *server.MCPServer, getClient getClientFn, version string, services []string) {
	settings := func(ctx context.Context) (bigip.Settings, error) {
		c, err := getClient(ctx)
		if err != nil {
			return bigip.Settings{}, err
		}
		return c.Settings(), nil
	}
	s.AddTools(sys.NewInfoTool(settings, version, services).Tools()...)
}

// Register registers the set of tools for the specified services with the MCP server.
// We either register a subset of tools if services are specified, or we register all tools if no services are specified.
func Register(logger *slog.Logger, s *server.MCPServer, getClient getClientFn, version string, servicesToActivate ...string) error {
	if len(servicesToActivate) == 0 {
		logger.Warn("no services specified, loading all supported services")
		servicesToActivate = SupportedServices()
	}

	var active []string
	for _, svc := range servicesToActivate {
		svc = strings.TrimSpace(svc)
		if svc == "" || slices.Contains(active, svc) {
			continue
		}
		logger.Debug(fmt.Sprintf("Registering tools for service: %s", svc))
		switch svc {
		case "irules":
			registerIRulesTools(s, getClient)
		case "virtuals":
			registerVirtualsTools(s, getClient)
		case "pools":
			registerPoolsTools(s, getClient)
		case "datagroups":
			registerDataGroupsTools(s, getClient)
		case "logs":
			registerLogsTools(s, getClient)
		default:
			return fmt.Errorf("unsupported service: %s, supported services are: %s", svc, strings.Join(SupportedServices(), ","))
		}
		active = append(active, svc)
	}

	// server_info is always registered so clients can check which device they are talking to
	registerInfoTools(s, getClient, version, active)

	return nil
}
