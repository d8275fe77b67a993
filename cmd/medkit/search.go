// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/EshwaranandB/medkit.ai/internal/export"
	"github.com/EshwaranandB/medkit.ai/internal/library"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the library and print one page of ranked results",
	Long: `Search scores every topic against the query and prints one page of
results, best first. With no query the selected category is listed
alphabetically.

The query may contain operators:
  "exact phrase"   only topics containing the phrase
  category:NAME    only topics in that category
  group:NAME       only topics tagged with that group
  has:FIELD        only topics with a non-empty field (summary, sites, ...)

Explicit searches are recorded in the search history.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("category", "all", "category to browse or search")
	searchCmd.Flags().String("letter", "", "only titles starting with this letter")
	searchCmd.Flags().Int("page", 1, "page number (clamped to the available pages)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "also write the results to a YAML search file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	letter, _ := cmd.Flags().GetString("letter")
	page, _ := cmd.Flags().GetInt("page")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	savePath, _ := cmd.Flags().GetString("save")

	req, err := parseRequest(category, letter, strings.Join(args, " "), page)
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	r, err := a.session.Submit(ctx, req)
	if err != nil {
		// The result is still usable when only history recording failed.
		if r == nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	if savePath != "" {
		if err := export.WriteSearchFile(savePath, export.NewSearchFile(r, time.Now())); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved search to %s\n", savePath)
	}

	if jsonOutput {
		return export.Encode(os.Stdout, r, export.FormatJSON)
	}
	printResults(os.Stdout, r)
	return nil
}

// printResults writes a result page as a table, followed by the
// did-you-mean alternatives when there are any.
func printResults(w io.Writer, r *library.Results) {
	p := r.Page
	text := r.Parsed.Text

	if p.TotalCount == 0 {
		fmt.Fprintln(w, "No results found.")
	} else {
		fmt.Fprintf(w, "%-4s  %-6s  %-12s  %-50s  %s\n", "Rank", "Score", "Category", "Title", "Match")
		fmt.Fprintln(w, strings.Repeat("-", 90))

		offset := (p.Page - 1) * library.PageSize
		for i, st := range p.Items {
			title := truncate(st.Title, 50)
			if text != "" {
				title = library.FindHighlight(title, text).Render("*", "*")
			}
			fmt.Fprintf(w, "%-4d  %-6d  %-12s  %-50s  %s\n",
				offset+i+1, st.Score, st.Category, title, st.Reason)
		}
		fmt.Fprintf(w, "\n%d results, page %d of %d\n", p.TotalCount, p.Page, p.PageCount)
	}

	if a := r.Analysis; a != nil && len(a.TopCategories) > 0 {
		fmt.Fprintf(w, "Mostly %s; average relevance %d (%s)\n",
			a.TopCategories[0].Name, a.AverageRelevance, a.Elapsed.Round(time.Microsecond))
		if len(a.Filters) > 0 {
			fmt.Fprintf(w, "Filters: %s\n", strings.Join(a.Filters, " "))
		}
	}
	if len(r.DidYouMean) > 0 {
		alts := make([]string, len(r.DidYouMean))
		for i, d := range r.DidYouMean {
			alts[i] = fmt.Sprintf("%s (%d%%)", d.Title, d.Similarity)
		}
		fmt.Fprintf(w, "Did you mean: %s\n", strings.Join(alts, ", "))
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// --- suggest ---

var suggestCmd = &cobra.Command{
	Use:   "suggest [text...]",
	Short: "Print autocomplete suggestions for partial input",
	Long: `Suggest prints up to twenty autocomplete suggestions for the text typed
so far, ordered by how strongly each title matches. Suggestions are not
recorded in the search history.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().Bool("json", false, "output suggestions as JSON")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := openApp(context.Background())
	if err != nil {
		return err
	}
	defer a.Close()

	suggestions := a.session.Index().Autocomplete(strings.Join(args, " "))
	if jsonOutput {
		return export.Encode(os.Stdout, suggestions, export.FormatJSON)
	}
	if len(suggestions) == 0 {
		fmt.Println("No suggestions.")
		return nil
	}
	for _, s := range suggestions {
		fmt.Printf("%-50s  %-12s  %s\n", truncate(s.Title, 50), s.Category, s.Reason)
	}
	return nil
}
