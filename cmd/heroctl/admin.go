package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		// Connecting already migrates; report what is there now.
		info, err := e.services.Admin.ContractInfo(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema up to date, %d heroes\n", info.TotalHeroes)
		return nil
	}),
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause hero creation and progression",
	RunE:  setPaused(true),
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume hero creation and progression",
	RunE:  setPaused(false),
}

func setPaused(paused bool) func(*cobra.Command, []string) error {
	return withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		inv, err := e.admin()
		if err != nil {
			return err
		}
		if err := e.services.Admin.SetPaused(cmd.Context(), inv, paused); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "paused: %t\n", paused)
		return nil
	})
}

var authorizeCmd = &cobra.Command{
	Use:   "authorize <account>",
	Short: "Allow an account to report battles and hero performance",
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		account, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid account %q: %w", args[0], err)
		}
		inv, err := e.admin()
		if err != nil {
			return err
		}
		if err := e.services.Admin.Authorize(cmd.Context(), inv, account); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "authorized %s\n", account)
		return nil
	}),
}

var revokeCmd = &cobra.Command{
	Use:   "revoke <account>",
	Short: "Remove an account's reporting rights",
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		account, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid account %q: %w", args[0], err)
		}
		inv, err := e.admin()
		if err != nil {
			return err
		}
		if err := e.services.Admin.Revoke(cmd.Context(), inv, account); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "revoked %s\n", account)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(migrateCmd, pauseCmd, resumeCmd, authorizeCmd, revokeCmd)
}
