// Command site runs the Lucky Blinds website and drives its contact form
// from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "site",
	Short: "Lucky Blinds website",
	Long: `Serves the Lucky Blinds marketing site and its contact form.

Configuration comes from the environment (a .env file is read when present).
EMAIL_USER and EMAIL_PASS are required to serve.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, submitCmd, checkConfigCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errSubmissionFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
