package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rulesaide/internal/assist"
	"rulesaide/internal/reminder"
)

func checkCmd() *cobra.Command {
	var attacker, target, weapon string
	var targets int
	var reach bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether an attack is legal at the given positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := assist.AttackRequest{Weapon: weapon, Targets: targets, HasReach: reach}
			from, err := parseFootprint(attacker)
			if err != nil {
				return err
			}
			req.Attacker = from
			if target != "" {
				to, err := parseFootprint(target)
				if err != nil {
					return err
				}
				req.Target = &to
			}
			return runCheck(req)
		},
	}
	cmd.Flags().StringVar(&attacker, "attacker", "", "Attacker footprint as x,y,width,height")
	cmd.Flags().StringVar(&target, "target", "", "Target footprint as x,y,width,height")
	cmd.Flags().StringVar(&weapon, "weapon", "", "Weapon name from weapons.yaml")
	cmd.Flags().IntVar(&targets, "targets", 0, "Number of selected targets")
	cmd.Flags().BoolVar(&reach, "reach", false, "Grant reach from a source other than the weapon")
	_ = cmd.MarkFlagRequired("attacker")
	return cmd
}

func runCheck(req assist.AttackRequest) error {
	ctx := context.Background()

	deps, err := loadAssistantDeps()
	if err != nil {
		return err
	}
	a, err := deps.newAssistant(nil, nil, nil)
	if err != nil {
		return err
	}

	outcome, err := a.CheckAttack(ctx, req)
	if err != nil {
		return err
	}
	if outcome.Allowed {
		fmt.Fprintln(os.Stdout, "Allowed.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "Denied: %s", outcome.Reason)
	if outcome.Distance > 0 {
		fmt.Fprintf(os.Stdout, " (distance %g, max %g)", outcome.Distance, outcome.MaxRange)
	}
	fmt.Fprintln(os.Stdout)
	for _, line := range a.RemindersFor(reminder.TriggerRangeViolation) {
		fmt.Fprintf(os.Stdout, "  %s\n", line)
	}
	return nil
}
