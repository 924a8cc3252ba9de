package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const weaponsTemplate = `version: 1
weapons:
  - name: Longsword
    category: melee
  - name: Glaive
    category: melee
    traits: [reach]
  - name: Whip
    category: longMelee
  - name: Javelin
    category: thrown
    base_range: 6
  - name: Shortbow
    category: ranged
    base_range: 12
  - name: Shocking Grasp
    category: touch
`

const reminderTemplate = `---
title: Flanking
trigger: attack_roll
tags: [combat, positioning]
---
A creature between two allies that threaten it is off-guard against their melee attacks.
`

func initCmd() *cobra.Command {
	var projectName string
	var dsn string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new rulesaide project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName, dsn)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().StringVar(&dsn, "dsn", "sqlite://./rulesaide.db", "Database DSN (sqlite:// or postgres://)")
	return cmd
}

func runInit(projectName, dsn string) error {
	for _, path := range []string{projectFile, weaponsFile} {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	configContents := fmt.Sprintf(`project: %q
version: 1

database:
  dsn: %q

settings:
  enforce_target_selection: true
  enforce_range_checking: true
  max_targets: 1
  attack_roll_timeout_ms: 120000
  damage_roll_timeout_ms: 30000

grid:
  cell_size: 100
  unit_per_cell: 2

range:
  melee_max: 2
  reach_max: 4

reminders:
  paths:
    - ./reminders/

journal:
  dir: ./journal

relay:
  addr: ":8787"
`, projectName, dsn)
	if err := os.WriteFile(projectFile, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", projectFile, err)
	}
	if err := os.WriteFile(weaponsFile, []byte(weaponsTemplate), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", weaponsFile, err)
	}

	if err := os.MkdirAll("reminders", 0o755); err != nil {
		return fmt.Errorf("creating reminders directory: %w", err)
	}
	reminderPath := filepath.Join("reminders", "flanking.md")
	if err := os.WriteFile(reminderPath, []byte(reminderTemplate), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", reminderPath, err)
	}

	fmt.Fprintf(os.Stdout, "Created %s, %s and %s\n", projectFile, weaponsFile, reminderPath)
	return nil
}
