package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rulesaide/internal/config"
	"rulesaide/internal/journal"
)

func journalCmd() *cobra.Command {
	var dir, prefix, kind string
	cmd := &cobra.Command{
		Use:   "journal [file]",
		Short: "List journal files, or print the entries of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runJournalShow(args[0], kind)
			}
			return runJournalList(dir, prefix)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Journal directory (defaults to journal.dir in rulesaide.yaml)")
	cmd.Flags().StringVar(&prefix, "prefix", "relay", "Journal file prefix: relay, mcp or replay")
	cmd.Flags().StringVar(&kind, "kind", "", "Only print entries of this kind")
	return cmd
}

func runJournalList(dir, prefix string) error {
	if dir == "" {
		cfg, err := config.LoadProjectConfig(projectFile)
		if err != nil {
			return err
		}
		dir = cfg.Journal.Dir
	}

	files, err := journal.Files(dir, prefix)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stdout, "No journal files found.")
		return nil
	}
	for _, path := range files {
		fmt.Fprintln(os.Stdout, filepath.Base(path))
	}
	return nil
}

func runJournalShow(path, kind string) error {
	entries, err := journal.ReadFile(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if kind != "" && entry.Kind != kind {
			continue
		}
		fmt.Fprintf(os.Stdout, "%s %-11s %s\n", entry.At.Format("15:04:05.000"), entry.Kind, entry.Payload)
	}
	return nil
}
