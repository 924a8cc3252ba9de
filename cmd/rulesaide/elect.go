package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rulesaide/internal/classify"
)

func electCmd() *cobra.Command {
	var observerSpecs []string
	var author string
	cmd := &cobra.Command{
		Use:   "elect",
		Short: "Show which observer reacts to a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			observers := make([]classify.Observer, 0, len(observerSpecs))
			for _, spec := range observerSpecs {
				o, err := parseObserver(spec)
				if err != nil {
					return err
				}
				observers = append(observers, o)
			}
			elected, ok := classify.Elect(observers, author)
			if !ok {
				fmt.Fprintln(os.Stdout, "No active observer.")
				return nil
			}
			fmt.Fprintln(os.Stdout, elected)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&observerSpecs, "observer", nil, "Observer as id[:privileged][:inactive] (repeatable)")
	cmd.Flags().StringVar(&author, "author", "", "Observer that authored the message")
	return cmd
}

func parseObserver(value string) (classify.Observer, error) {
	parts := strings.Split(value, ":")
	o := classify.Observer{ID: strings.TrimSpace(parts[0]), Active: true}
	if o.ID == "" {
		return classify.Observer{}, fmt.Errorf("invalid observer %q: empty id", value)
	}
	for _, flag := range parts[1:] {
		switch strings.ToLower(strings.TrimSpace(flag)) {
		case "privileged":
			o.Privileged = true
		case "inactive":
			o.Active = false
		default:
			return classify.Observer{}, fmt.Errorf("invalid observer %q: unknown flag %q", value, flag)
		}
	}
	return o, nil
}
