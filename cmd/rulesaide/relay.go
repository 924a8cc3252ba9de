package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"rulesaide/internal/relay"
)

func relayCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Serve the assistant to a tabletop host over a websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelay(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to relay.addr in rulesaide.yaml)")
	return cmd
}

func runRelay(addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := loadAssistantDeps()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = deps.cfg.Relay.Addr
	}

	db, err := openDB(ctx, deps.cfg)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	jr := openJournal(deps.cfg, "relay")
	if jr != nil {
		defer jr.Close()
	}

	logger := log.New(os.Stderr, "rulesaide: ", log.LstdFlags)
	a, err := deps.newAssistant(db, jr, logger)
	if err != nil {
		return err
	}
	go a.Run(ctx, time.Minute)

	return relay.NewServer(a, logger).ListenAndServe(ctx, addr)
}
