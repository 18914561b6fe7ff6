// Package mcpserver exposes the case engine as MCP tools over a stdio
// transport, so an LLM narrator can drive a case one tool call at a time.
// Every tool is a thin projection over internal/engine; no game rule lives
// here.
package mcpserver

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/myrjola/docket/internal/engine"
)

type Server struct {
	eng *engine.Engine
	mcp *sdk.Server
}

func NewServer(eng *engine.Engine, version string) *Server {
	s := &Server{
		eng: eng,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "docket",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
