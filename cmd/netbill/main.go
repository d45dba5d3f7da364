package main

import (
	"os"

	"github.com/spf13/cobra"

	"netbill/internal/interfaces/cli/migrate"
	"netbill/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "netbill",
		Short: "NetBill - ISP billing and network access reconciliation",
		Long:  `NetBill reconciles subscriber payments with network access: invoices, RADIUS entitlements, session resets, ledger entries and customer notifications.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
