// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EshwaranandB/medkit.ai/internal/export"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear recent searches",
	Long: `History lists recent explicit searches, most recent first. History is
kept per profile (history.profile) in the SQLite file set by --history-db;
without one it lasts only for the current command.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Bool("clear", false, "clear the search history")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	clearAll, _ := cmd.Flags().GetBool("clear")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if clearAll {
		if err := a.session.ClearHistory(ctx); err != nil {
			return err
		}
		fmt.Println("Search history cleared.")
		return nil
	}

	entries, err := a.history.Entries(ctx, a.cfg.History.Size)
	if err != nil {
		return err
	}
	if jsonOutput {
		return export.Encode(os.Stdout, entries, export.FormatJSON)
	}
	if len(entries) == 0 {
		fmt.Println("No recent searches.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %s\n", e.SearchedAt.Local().Format("2006-01-02 15:04"), e.Query)
	}
	return nil
}
