// Package mcp exposes the registry, class parser, generators and lint rule
// as MCP tools over stdio.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/figmagen/pkg/mcplog"
	"github.com/gnana997/figmagen/pkg/pipeline"
)

const serverVersion = "0.1.0-dev"

// Server implements the figmagen MCP server. Every call reads the
// pipeline's current State, so a concurrent watcher reload is picked up by
// the next call.
type Server struct {
	mcpServer *server.MCPServer
	pipeline  *pipeline.Pipeline
	logger    *mcplog.Logger // nil disables call logging
}

// NewServer creates a server over p. logger may be nil.
func NewServer(p *pipeline.Pipeline, logger *mcplog.Logger) *Server {
	s := &Server{pipeline: p, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}
	s.mcpServer = server.NewMCPServer("figmagen", serverVersion, opts...)

	tools := make([]server.ServerTool, 0, len(s.tools()))
	for _, t := range s.tools() {
		tools = append(tools, server.ServerTool{Tool: t.tool, Handler: t.handler})
	}
	s.mcpServer.AddTools(tools...)
	return s
}

// ServeStdio serves on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// loggingMiddleware records every tool call as a JSONL entry.
func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := mcplog.Now()
			result, err := next(ctx, req)
			if logErr := s.logger.Record(req.Params.Name, req.GetArguments(), start, result, err); logErr != nil {
				s.pipeline.Logger().Warn("mcp call log failed", "error", logErr)
			}
			return result, err
		}
	}
}
