package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rulesaide/internal/config"
)

func grudgesCmd() *cobra.Command {
	var limit int
	var clearLog bool
	cmd := &cobra.Command{
		Use:   "grudges <victim>",
		Short: "Show who has damaged a character, or clear the log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrudges(args[0], limit, clearLog)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of recent entries to show (0 for all)")
	cmd.Flags().BoolVar(&clearLog, "clear", false, "Delete every entry recorded against the victim")
	return cmd
}

func runGrudges(victim string, limit int, clearLog bool) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(projectFile)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	if clearLog {
		removed, err := db.ClearGrudges(ctx, victim)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Cleared %d entries for %s.\n", removed, victim)
		return nil
	}

	totals, err := db.GrudgeTotals(ctx, victim)
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		fmt.Fprintf(os.Stdout, "No grudges recorded for %s.\n", victim)
		return nil
	}

	fmt.Fprintf(os.Stdout, "Grudges held by %s:\n", victim)
	for _, total := range totals {
		fmt.Fprintf(os.Stdout, "  %s: %d damage over %d hits (%d critical)\n", total.Attacker, total.Total, total.Hits, total.Criticals)
	}

	entries, err := db.ListGrudges(ctx, victim, limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "")
	fmt.Fprintln(os.Stdout, "Recent:")
	for _, entry := range entries {
		marker := ""
		if entry.Critical {
			marker = " (critical)"
		}
		fmt.Fprintf(os.Stdout, "  %s  %s dealt %d%s\n", entry.RecordedAt.Local().Format("2006-01-02 15:04"), entry.Attacker, entry.Amount, marker)
	}
	return nil
}
