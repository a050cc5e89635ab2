// Command stella-panel serves the Stella bot control panel API.
//
//	@title			Stella Panel API
//	@version		1.0
//	@description	Control panel for the Stella chat bot: read, update and reset its configuration, toggle commands and inspect the activity log.
//	@BasePath		/api
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "stella-panel",
		Short: "Stella bot control panel",
		Long: `stella-panel exposes the Stella bot configuration over HTTP.
It keeps one in-memory settings record with a bounded activity log and
supports partial updates, resets and per-command toggles.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand())
	root.AddCommand(newDefaultsCommand())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
