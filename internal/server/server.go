package server

import (
	"fmt"
	"log"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/jask/jaskcalc/internal/adapter"
	"github.com/jask/jaskcalc/internal/config"
)

// Server exposes calculators as MCP tools.
type Server struct {
	mcp      *mcpserver.MCPServer
	registry *Registry
}

// New builds a server and registers every calculator tool.
func New(cfg config.MCPConfig, keys *adapter.KeyRegistry, version string) *Server {
	s := &Server{
		mcp: mcpserver.NewMCPServer(cfg.Name, version,
			mcpserver.WithToolCapabilities(false),
			mcpserver.WithRecovery(),
		),
		registry: NewRegistry(keys, cfg.MaxCalculators),
	}
	s.registerTools()
	return s
}

// Registry returns the calculators behind the tools.
func (s *Server) Registry() *Registry {
	return s.registry
}

// ServeStdio blocks serving the protocol on stdin and stdout.
func (s *Server) ServeStdio() error {
	log.Printf("serving calculator tools on stdio")
	if err := mcpserver.ServeStdio(s.mcp); err != nil {
		return fmt.Errorf("serve stdio: %w", err)
	}
	return nil
}

func (s *Server) registerTools() {
	for _, t := range s.tools() {
		s.mcp.AddTool(t.tool, t.handle)
	}
}
