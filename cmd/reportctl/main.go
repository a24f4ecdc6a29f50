package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "reportctl",
		Short:        "Clinic revenue report tool",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "path to config.yml")

	rootCmd.AddCommand(revenueCmd())
	rootCmd.AddCommand(remoteCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
