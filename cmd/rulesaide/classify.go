package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rulesaide/internal/classify"
	"rulesaide/internal/config"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [text]",
		Short: "Classify chat message text (reads stdin when no text is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				text = string(data)
			}
			return runClassify(text)
		},
	}
}

func runClassify(text string) error {
	markers := classify.DefaultMarkers()
	if _, err := os.Stat(projectFile); err == nil {
		cfg, err := config.LoadProjectConfig(projectFile)
		if err != nil {
			return err
		}
		markers = cfg.Markers
	}

	classifier, err := classify.New(markers)
	if err != nil {
		return err
	}

	event := classifier.Classify(text)
	payload, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(payload))
	return nil
}
