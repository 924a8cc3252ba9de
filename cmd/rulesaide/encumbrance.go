package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rulesaide/internal/config"
	"rulesaide/internal/encumbrance"
)

func encumbranceCmd() *cobra.Command {
	var capacity float64
	var itemSpecs []string
	cmd := &cobra.Command{
		Use:   "encumbrance <actor>",
		Short: "Show a character's encumbrance, or recompute it from items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("capacity") {
				return runShowEncumbrance(args[0])
			}
			items := make([]encumbrance.Item, 0, len(itemSpecs))
			for _, spec := range itemSpecs {
				item, err := parseItem(spec)
				if err != nil {
					return err
				}
				items = append(items, item)
			}
			return runUpdateEncumbrance(args[0], items, capacity)
		},
	}
	cmd.Flags().Float64Var(&capacity, "capacity", 0, "Carrying capacity; setting it recomputes and saves the status")
	cmd.Flags().StringArrayVar(&itemSpecs, "item", nil, "Carried item as name:weight[:quantity] (repeatable)")
	return cmd
}

func runShowEncumbrance(actor string) error {
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

	snapshot, err := db.GetEncumbrance(ctx, actor)
	if err != nil {
		return err
	}
	if snapshot == nil {
		fmt.Fprintf(os.Stdout, "No encumbrance recorded for %s.\n", actor)
		return nil
	}
	fmt.Fprintf(os.Stdout, "%s: %s (%g / %g)\n", snapshot.Actor, snapshot.Level, snapshot.Load, snapshot.Capacity)
	return nil
}

func runUpdateEncumbrance(actor string, items []encumbrance.Item, capacity float64) error {
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

	a, err := deps.newAssistant(db, nil, nil)
	if err != nil {
		return err
	}
	result, err := a.UpdateEncumbrance(ctx, actor, items, capacity)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s: %s (%g / %g)\n", result.Actor, result.Status.Level, result.Status.Load, result.Status.Capacity)
	for _, line := range result.Reminders {
		fmt.Fprintf(os.Stdout, "  %s\n", line)
	}
	return nil
}

func parseItem(value string) (encumbrance.Item, error) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return encumbrance.Item{}, fmt.Errorf("invalid item %q: expected name:weight[:quantity]", value)
	}
	item := encumbrance.Item{Name: strings.TrimSpace(parts[0])}
	weight, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return encumbrance.Item{}, fmt.Errorf("invalid item weight %q: %w", parts[1], err)
	}
	item.Weight = weight
	if len(parts) == 3 {
		qty, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return encumbrance.Item{}, fmt.Errorf("invalid item quantity %q: %w", parts[2], err)
		}
		item.Quantity = qty
	}
	return item, nil
}
