// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EshwaranandB/medkit.ai/internal/enrich"
	"github.com/EshwaranandB/medkit.ai/internal/library"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with topic counts",
	Long: `Categories prints every category with its topic count. Counts come from
the statistics service when stats.url is configured and reachable, and
are computed from the loaded dataset otherwise.`,
	RunE: runCategories,
}

func runCategories(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	counts, remote := a.session.CategoryCounts(ctx)
	source := "local"
	if remote {
		source = "stats service"
	}

	for _, c := range append([]types.Category{types.CategoryAll}, types.Categories...) {
		info := c.Info()
		fmt.Printf("%-12s  %6d  %-18s  %s\n", c, counts[c], info.Name, info.Description)
	}
	fmt.Printf("\nCounts from %s\n", source)
	return nil
}

var lettersCmd = &cobra.Command{
	Use:   "letters",
	Short: "List the initial letters available in a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		c, ok := types.ParseCategory(category)
		if !ok {
			return fmt.Errorf("unknown category %q", category)
		}

		a, err := openApp(context.Background())
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Println(strings.Join(a.session.Index().Letters(c), " "))
		return nil
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List group tags with topic counts, for use with group:NAME",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		c, ok := types.ParseCategory(category)
		if !ok {
			return fmt.Errorf("unknown category %q", category)
		}

		a, err := openApp(context.Background())
		if err != nil {
			return err
		}
		defer a.Close()

		for _, g := range a.session.Index().Groups(c) {
			fmt.Printf("%6d  %s\n", g.Count, g.Name)
		}
		return nil
	},
}

var topicCmd = &cobra.Command{
	Use:   "topic <id>",
	Short: "Show a topic with its summary rendered as text",
	Long: `Topic prints one topic: its category, alternate names, groups, and the
summary rendered from HTML to plain text. Links to other topics in the
library are shown with their ids so they can be opened in turn.`,
	Args: cobra.ExactArgs(1),
	RunE: runTopic,
}

func runTopic(cmd *cobra.Command, args []string) error {
	a, err := openApp(context.Background())
	if err != nil {
		return err
	}
	defer a.Close()

	return printTopic(os.Stdout, a.session.Index(), args[0])
}

// printTopic writes the topic with the given id to w.
func printTopic(w io.Writer, x *library.Index, id string) error {
	t, ok := x.Topic(id)
	if !ok {
		return fmt.Errorf("topic %q not found", id)
	}
	c, _ := x.CategoryOf(t.ID)

	fmt.Fprintf(w, "%s [%s]\n", t.Title, t.ID)
	fmt.Fprintf(w, "Category: %s\n", c.Info().Name)
	if len(t.AlsoCalled) > 0 {
		fmt.Fprintf(w, "Also called: %s\n", strings.Join(t.AlsoCalled, ", "))
	}
	if len(t.Groups) > 0 {
		fmt.Fprintf(w, "Groups: %s\n", strings.Join(t.Groups, ", "))
	}
	if t.Locator != "" {
		fmt.Fprintf(w, "URL: %s\n", t.Locator)
	}
	if !t.LastUpdated.IsZero() {
		fmt.Fprintf(w, "Updated: %s\n", t.LastUpdated.Format("2006-01-02"))
	}
	fmt.Fprintln(w)

	if t.ShortDescription != "" {
		fmt.Fprintln(w, t.ShortDescription)
		fmt.Fprintln(w)
	}
	if err := enrich.WriteText(w, enrich.New(x).Blocks(t.Summary)); err != nil {
		return err
	}

	if len(t.RelatedTopics) > 0 {
		fmt.Fprintln(w, "\nRelated:")
		for _, rt := range t.RelatedTopics {
			if linked, ok := x.ByTitle(rt.Title); ok {
				fmt.Fprintf(w, "  %s [%s]\n", rt.Title, linked.ID)
				continue
			}
			fmt.Fprintf(w, "  %s\n", rt.Title)
		}
	}
	return nil
}

func init() {
	lettersCmd.Flags().String("category", "all", "category to list letters for")
	groupsCmd.Flags().String("category", "all", "category to list groups for")

	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(lettersCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(topicCmd)
}
