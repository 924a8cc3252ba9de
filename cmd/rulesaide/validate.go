package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"rulesaide/internal/config"
	"rulesaide/internal/validate"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run consistency checks over the project, weapons and reminders",
		RunE:  runValidate,
	}
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadProjectConfig(projectFile)
	if err != nil {
		return err
	}

	weapons, err := config.ReadWeapons(weaponsFile)
	if errors.Is(err, fs.ErrNotExist) {
		weapons, err = nil, nil
	}
	if err != nil {
		return err
	}

	reminders, err := loadReminders(cfg)
	if err != nil {
		return err
	}

	report, err := validate.Run(cfg, weapons, reminders)
	if err != nil {
		return err
	}

	var errorIssues []validate.Issue
	var warnIssues []validate.Issue
	for _, issue := range report.Issues {
		switch issue.Severity {
		case validate.SeverityError:
			errorIssues = append(errorIssues, issue)
		case validate.SeverityWarn:
			warnIssues = append(warnIssues, issue)
		}
	}

	if len(errorIssues) == 0 && len(warnIssues) == 0 {
		fmt.Fprintln(os.Stdout, "No issues found.")
		return nil
	}

	if len(errorIssues) > 0 {
		fmt.Fprintf(os.Stdout, "Errors (%d):\n", len(errorIssues))
		printIssues(os.Stdout, errorIssues)
	}
	if len(warnIssues) > 0 {
		if len(errorIssues) > 0 {
			fmt.Fprintln(os.Stdout, "")
		}
		fmt.Fprintf(os.Stdout, "Warnings (%d):\n", len(warnIssues))
		printIssues(os.Stdout, warnIssues)
	}

	if report.HasErrors() {
		return fmt.Errorf("validation found errors")
	}
	return nil
}

func printIssues(out io.Writer, issues []validate.Issue) {
	for _, issue := range issues {
		location := issue.Subject
		if issue.FilePath != "" {
			location = fmt.Sprintf("%s (%s)", location, issue.FilePath)
		}
		fmt.Fprintf(out, "  - %s: %s (%s)\n", location, issue.Message, issue.Code)
	}
}
