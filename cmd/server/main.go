// Command server runs the Kame Daay backend and its maintenance checks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kamedaay",
	Short: "Kame Daay backend: phone+PIN auth and device sync",
	Long: `Kame Daay backend serves phone+PIN authentication and the bulk
synchronization API used by the mobile app.

Without a subcommand it starts the HTTP server (same as "serve").`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, checkEnvCmd, checkDBCmd)
}

// main is the application entry point / Point d'entrée de l'application
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
