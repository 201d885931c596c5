package main

import (
	"fmt"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/spf13/cobra"
)

var (
	resetConfirm bool
	topLimit     int
)

var resetAnalyticsCmd = &cobra.Command{
	Use:   "reset-analytics",
	Short: "Zero the global analytics counters",
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		inv, err := e.admin()
		if err != nil {
			return err
		}
		if err := e.services.Analytics.Reset(cmd.Context(), inv, resetConfirm); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "analytics reset")
		return nil
	}),
}

var revenueCmd = &cobra.Command{
	Use:   "revenue",
	Short: "Show collected fees per category",
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		summary, err := e.services.Revenue.Summary(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, category := range domain.AllRevenueCategories {
			fmt.Fprintf(out, "%-24s %s\n", category, summary.Categories[category])
		}
		fmt.Fprintf(out, "%-24s %s\n", "total", summary.Total)
		return nil
	}),
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the best performing heroes",
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		scores, err := e.services.Analytics.TopPerforming(cmd.Context(), topLimit)
		if err != nil {
			return err
		}
		for i, s := range scores {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d. hero %d  score %d\n", i+1, s.HeroID, s.Score)
		}
		return nil
	}),
}

var exportCmd = &cobra.Command{
	Use:       "export <battles|economy>",
	Short:     "Print an analytics summary",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.ExportBattles), string(domain.ExportEconomy)},
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		summary, err := e.services.Analytics.Export(cmd.Context(), domain.ExportKind(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), summary)
		return nil
	}),
}

func init() {
	resetAnalyticsCmd.Flags().BoolVar(&resetConfirm, "confirm", false, "Confirm the reset")
	topCmd.Flags().IntVarP(&topLimit, "limit", "n", 10, "Number of heroes to show")

	rootCmd.AddCommand(resetAnalyticsCmd, revenueCmd, topCmd, exportCmd)
}
