package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "billingctl",
		Short: "Inspect card billing cycles",
		Long: `billingctl answers billing questions offline with the same rules the API uses:
which invoice a purchase falls in, how it splits into installments and when
an invoice closes and is due.`,
		SilenceUsage: true,
	}

	root.AddCommand(competenciaCmd())
	root.AddCommand(installmentsCmd())
	root.AddCommand(cycleCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
