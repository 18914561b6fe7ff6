package main

import (
	"context"

	"github.com/spf13/cobra"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/myrjola/docket/internal/mcpserver"
	"github.com/myrjola/docket/internal/pprofserver"
)

func serveCmd(app *application) *cobra.Command {
	var pprofAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pprofAddr != "" {
				pprofserver.Launch(pprofAddr, app.logger)
			}

			server := mcpserver.NewServer(app.eng, version)
			return server.Run(context.Background(), &sdk.StdioTransport{})
		},
	}
	cmd.Flags().StringVar(&pprofAddr, "pprof-addr", "", "Loopback port for pprof, e.g. :6060; empty disables it")
	return cmd
}
