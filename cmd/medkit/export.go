// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/EshwaranandB/medkit.ai/internal/export"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the normalized library to YAML or JSON",
	Long: `Export writes the loaded topics, after normalization and deduplication,
with each topic's derived category. Use --category for a partial export.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("category", "all", "only topics in this category")
	exportCmd.Flags().StringP("out", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	category, _ := cmd.Flags().GetString("category")
	out, _ := cmd.Flags().GetString("out")

	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	c, ok := types.ParseCategory(category)
	if !ok {
		return fmt.Errorf("unknown category %q", category)
	}

	a, err := openApp(context.Background())
	if err != nil {
		return err
	}
	defer a.Close()

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	if err := export.WriteDataset(w, a.session.Index(), c, format); err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintf(os.Stderr, "Exported %d topics to %s\n", len(export.Entries(a.session.Index(), c)), out)
	}
	return nil
}
