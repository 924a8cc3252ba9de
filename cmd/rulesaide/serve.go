package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"rulesaide/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE:  runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	deps, err := loadAssistantDeps()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, deps.cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	jr := openJournal(deps.cfg, "mcp")
	if jr != nil {
		defer jr.Close()
	}

	// stdout carries the protocol, so logs go to stderr.
	logger := log.New(os.Stderr, "rulesaide: ", log.LstdFlags)
	a, err := deps.newAssistant(db, jr, logger)
	if err != nil {
		return err
	}

	server := mcp.NewServer(a, deps.weapons, deps.reminders, db, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
