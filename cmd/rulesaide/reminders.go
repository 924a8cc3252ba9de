package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rulesaide/internal/config"
	"rulesaide/internal/reminder"
)

func remindersCmd() *cobra.Command {
	var trigger string
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "List rule reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReminders(trigger)
		},
	}
	cmd.Flags().StringVar(&trigger, "trigger", "", "Only show reminders for this trigger")
	return cmd
}

func runReminders(trigger string) error {
	cfg, err := config.LoadProjectConfig(projectFile)
	if err != nil {
		return err
	}
	catalog, err := loadReminders(cfg)
	if err != nil {
		return err
	}

	items := catalog.All()
	if trigger != "" {
		if !reminder.IsKnownTrigger(trigger) {
			return fmt.Errorf("unknown trigger %q", trigger)
		}
		items = catalog.For(reminder.Trigger(strings.ToLower(strings.TrimSpace(trigger))))
	}
	if len(items) == 0 {
		fmt.Fprintln(os.Stdout, "No reminders found.")
		return nil
	}

	for _, r := range items {
		fmt.Fprintf(os.Stdout, "[%s] %s\n", r.Trigger, reminder.Render(r))
	}
	return nil
}
