package sys

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mcp-bigip/pkg/bigip"
)

// ServerInfo describes the device connection of this server. Credentials are never included.
type ServerInfo struct {
	Version       string   `json:"version"`
	Host          string   `json:"bigip_host"`
	Partition     string   `json:"partition"`
	VerifySSL     bool     `json:"verify_ssl"`
	LoginProvider string   `json:"login_provider"`
	AuthMode      string   `json:"auth_mode"`
	Services      []string `json:"services"`
}

type InfoTool struct {
	settings func(ctx context.Context) (bigip.Settings, error)
	version  string
	services []string
}

func NewInfoTool(settings func(ctx context.Context) (bigip.Settings, error), version string, services []string) *InfoTool {
	return &InfoTool{settings: settings, version: version, services: services}
}

func (i *InfoTool) serverInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := i.settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load BIG-IP settings: %w", err)
	}
	info := ServerInfo{
		Version:       i.version,
		Host:          s.Host,
		Partition:     s.Partition,
		VerifySSL:     s.VerifyTLS,
		LoginProvider: s.LoginProvider,
		AuthMode:      s.AuthMode(),
		Services:      i.services,
	}
	jsonInfo, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}
	return mcp.NewToolResultText(string(jsonInfo)), nil
}

// Tools returns the server info tool
func (i *InfoTool) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Handler: i.serverInfo,
			Tool: mcp.NewTool("server_info",
				mcp.WithDescription("Show the BIG-IP connection this server is configured for."),
				mcp.WithReadOnlyHintAnnotation(true),
			),
		},
	}
}
