package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "rental-api",
		Short:        "Rental application lifecycle service",
		SilenceUsage: true,
	}
	serve := serveCmd()
	rootCmd.AddCommand(serve, migrateCmd())

	// bare invocation serves
	rootCmd.RunE = serve.RunE
	rootCmd.Flags().AddFlagSet(serve.Flags())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
