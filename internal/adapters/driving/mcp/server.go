package mcp

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/jyotish-cli/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server exposes stored birth profiles and the chart, dasha, transit and
// match engines to MCP clients. A tool whose service is absent from Ports
// is not registered, and the instructions sent to clients say so.
type Server struct {
	ports  *Ports
	server *mcp.Server
	tools  []string
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "jyotish",
		Version: Version,
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{
			Instructions: instructions(ports),
		}),
	}

	s.registerTools()
	s.registerResources()

	log := logger.Logger("mcp")
	log.Debug().Strs("tools", s.tools).Msg("mcp server ready")

	return s, nil
}

// Tools returns the registered tool names in registration order.
func (s *Server) Tools() []string {
	return slices.Clone(s.tools)
}

// Run serves MCP over stdio until ctx is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// addTool registers a typed tool handler and records its name.
func addTool[In, Out any](s *Server, tool *mcp.Tool, handler mcp.ToolHandlerFor[In, Out]) {
	mcp.AddTool(s.server, tool, handler)
	s.tools = append(s.tools, tool.Name)
}

// instructions describes the conventions every tool shares.
func instructions(ports *Ports) string {
	var b strings.Builder
	b.WriteString("Vedic (sidereal) astrology over stored birth profiles.\n")
	b.WriteString("Refer to a profile by ID or name; " + uriScheme + "profiles lists them.\n")
	b.WriteString("Longitudes use the Lahiri ayanamsa and houses are whole-sign from the ascendant.\n")

	tools := []string{"chart (natal placements, nakshatra and pada)"}
	if ports.Dasha != nil {
		tools = append(tools, "dasha (Vimshottari periods)")
	}
	if ports.Transit != nil {
		tools = append(tools, "transit (current sky against the natal chart)")
	}
	if ports.Match != nil {
		tools = append(tools, "match (Ashta Kuta, 18 of 36 passes)")
	}
	b.WriteString("Tools: " + strings.Join(tools, ", ") + ".\n")

	if ports.Dasha != nil || ports.Transit != nil {
		b.WriteString("Dates are YYYY-MM-DD (UTC midnight) or RFC 3339.\n")
	}
	return b.String()
}
