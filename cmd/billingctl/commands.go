package main

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
)

func competenciaCmd() *cobra.Command {
	var (
		date       string
		closingDay int
	)
	cmd := &cobra.Command{
		Use:   "competencia",
		Short: "Print the invoice month a purchase date falls in",
		Example: `  billingctl competencia --date 2024-11-10 --closing-day 5
  2024-12-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := billing.ParseDate(date)
			if err != nil {
				return err
			}
			comp, err := billing.ResolveCompetencia(d, closingDay)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), comp)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "purchase date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&closingDay, "closing-day", 0, "card closing day (1-31)")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("closing-day")
	return cmd
}

func installmentsCmd() *cobra.Command {
	var (
		date       string
		closingDay int
		total      string
		count      int
		remainder  string
	)
	cmd := &cobra.Command{
		Use:   "installments",
		Short: "Print the installment schedule of a purchase as JSON",
		Example: `  billingctl installments --date 2024-11-10 --closing-day 5 --total 1000.00 --count 3
  billingctl installments --date 2024-11-10 --closing-day 5 --total 100 --count 3 --remainder last`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := billing.ParseDate(date)
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(total)
			if err != nil {
				return fmt.Errorf("%w: total %q is not a number", billing.ErrInvalidInput, total)
			}
			policy, err := billing.ParseRemainderPolicy(remainder)
			if err != nil {
				return err
			}
			installments, err := billing.ExpandInstallmentsWithPolicy(d, closingDay, amount, count, policy)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(installments)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "purchase date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&closingDay, "closing-day", 0, "card closing day (1-31)")
	cmd.Flags().StringVar(&total, "total", "", "purchase total, at most two decimal places")
	cmd.Flags().IntVar(&count, "count", 1, "number of installments")
	cmd.Flags().StringVar(&remainder, "remainder", billing.RemainderFirst.String(), "installment that absorbs leftover cents (first|last)")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("closing-day")
	cmd.MarkFlagRequired("total")
	return cmd
}

func cycleCmd() *cobra.Command {
	var (
		competencia string
		closingDay  int
		dueDay      int
	)
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Print the closing and due date of an invoice",
		Example: `  billingctl cycle --competencia 2024-12-01 --closing-day 5 --due-day 15
  closing 2024-12-05
  due     2024-12-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			comp, err := billing.ParseCompetencia(competencia)
			if err != nil {
				return err
			}
			cycle := billing.Cycle{ClosingDay: closingDay, DueDay: dueDay}
			if err := cycle.Validate(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "closing %s\n", cycle.ClosingDate(comp))
			fmt.Fprintf(out, "due     %s\n", cycle.DueDate(comp))
			return nil
		},
	}
	cmd.Flags().StringVar(&competencia, "competencia", "", "invoice month (YYYY-MM or YYYY-MM-01)")
	cmd.Flags().IntVar(&closingDay, "closing-day", 0, "card closing day (1-31)")
	cmd.Flags().IntVar(&dueDay, "due-day", 0, "card due day (1-31)")
	cmd.MarkFlagRequired("competencia")
	cmd.MarkFlagRequired("closing-day")
	cmd.MarkFlagRequired("due-day")
	return cmd
}
