package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "rulesaide",
		Short: "Rules assistant for virtual tabletop sessions",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(initCmd())
	root.AddCommand(checkCmd())
	root.AddCommand(classifyCmd())
	root.AddCommand(electCmd())
	root.AddCommand(replayCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(relayCmd())
	root.AddCommand(grudgesCmd())
	root.AddCommand(encumbranceCmd())
	root.AddCommand(remindersCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(journalCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
