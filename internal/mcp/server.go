package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/mydpo/mydpo/internal/compliance"
	"github.com/mydpo/mydpo/internal/knowledge"
	"github.com/mydpo/mydpo/internal/requests"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server exposes compliance state and guidance search as MCP tools, so an
// external agent can act on an organization's behalf.
type Server struct {
	service   *compliance.Service
	knowledge *knowledge.Store
	requests  *requests.Store
	mcp       *server.MCPServer
}

// NewServer creates the MCP server. knowledge and requests may be nil,
// dropping the corresponding tools.
func NewServer(service *compliance.Service, kb *knowledge.Store, reqs *requests.Store) *Server {
	s := &Server{
		service:   service,
		knowledge: kb,
		requests:  reqs,
	}

	s.mcp = server.NewMCPServer(
		"mydpo",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(getComplianceSummaryTool, s.handleGetComplianceSummary)
	s.mcp.AddTool(listActionsTool, s.handleListActions)
	if s.knowledge != nil {
		s.mcp.AddTool(searchGuidanceTool, s.handleSearchGuidance)
	}
	if s.requests != nil {
		s.mcp.AddTool(listOverdueRequestsTool, s.handleListOverdueRequests)
	}
}

// Serve starts the MCP server on stdio. Stdout carries protocol messages;
// logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
