// focusd is the runnable demonstration binary for the presenter-intent
// focus engine. It wires focus.Config -> engine.New -> actor.New ->
// hostsim/intent.Detector -> signaling.Bridge into one process, standing in
// for a real desktop-shell host (out of scope per spec.md §1), the way
// api/cmd/desktop-bridge/main.go wires the teacher's screenshot/MCP/revdial
// services together.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var Fatal = fatalErrorHandler

func fatalErrorHandler(cmd *cobra.Command, message string, code int) {
	cmd.PrintErrln(message)
	os.Exit(code)
}

// NewRootCmd builds focusd's cobra command tree, mirroring
// api/cmd/helix/root.go's shape (a bare root plus subcommands).
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "focusd",
		Short: "focusd",
		Long:  "Presenter-intent focus engine demo host",
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRunCmd())

	return rootCmd
}

// Execute runs the root command, matching api/cmd/helix/root.go's Execute.
func Execute() {
	rootCmd := NewRootCmd()
	rootCmd.SetContext(context.Background())
	rootCmd.SetOut(os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		Fatal(rootCmd, err.Error(), 1)
	}
}

func main() {
	Execute()
}
