// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EshwaranandB/medkit.ai/internal/dataset"
	"github.com/EshwaranandB/medkit.ai/internal/library"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Search interactively",
	Long: `Shell reads queries from standard input, one per line, and prints a page
of results after each. Lines starting with ":" are commands:

  :page N         go to page N (:next and :prev step by one)
  :category NAME  switch category (all, medications, tests, ...)
  :letter X       only titles starting with X (":letter" alone clears it)
  :suggest TEXT   autocomplete suggestions for TEXT
  :topic ID       show a topic
  :history        recent searches (:clear empties them)
  :quit           leave the shell

With --watch, a file dataset is reloaded whenever it changes on disk.`,
	RunE: runShell,
}

func init() {
	shellCmd.Flags().Bool("watch", false, "reload the dataset file when it changes")
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	watch, _ := cmd.Flags().GetBool("watch")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if watch {
		stop, err := watchDataset(ctx, a)
		if err != nil {
			return err
		}
		defer stop()
	}

	sh := &shell{app: a, out: os.Stdout, req: library.PageRequest{Category: types.CategoryAll, Page: 1}}
	return sh.run(ctx, os.Stdin)
}

// watchDataset reloads the session whenever the dataset file changes. It
// returns a function that stops watching.
func watchDataset(ctx context.Context, a *app) (func(), error) {
	fs, ok := a.session.Source().(dataset.FileSource)
	if !ok {
		return nil, errors.New("--watch needs a dataset file, not a URL")
	}
	w, err := dataset.NewWatcher(fs.Path, 0)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx, func(ctx context.Context) {
			report, err := a.session.Reload(ctx)
			switch {
			case errors.Is(err, library.ErrStale), errors.Is(err, context.Canceled):
				return
			case err != nil:
				fmt.Fprintf(os.Stderr, "warning: reloading dataset: %v\n", err)
			case report.Err != nil:
				fmt.Fprintf(os.Stderr, "warning: reloading dataset: %v (keeping %d topics)\n",
					report.Err, a.session.Index().Len())
			default:
				fmt.Fprintf(os.Stderr, "Reloaded %d topics\n", report.Kept)
			}
		})
	}()
	return func() {
		w.Stop()
		<-done
	}, nil
}

// shell holds the interactive browsing state between lines.
type shell struct {
	app *app
	out io.Writer
	req library.PageRequest
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	sh.prompt()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		quit, err := sh.handle(ctx, line)
		if err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
		sh.prompt()
	}
	return scanner.Err()
}

func (sh *shell) prompt() {
	fmt.Fprintf(sh.out, "[%s%s] > ", sh.req.Category, letterSuffix(sh.req.Letter))
}

func letterSuffix(letter string) string {
	if letter == "" {
		return ""
	}
	return "/" + letter
}

// handle runs one input line and reports whether the shell should exit.
func (sh *shell) handle(ctx context.Context, line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		sh.req.Query = line
		sh.req.Page = 1
		return false, sh.search(ctx, true)
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "q", "quit", "exit":
		return true, nil

	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return false, fmt.Errorf("page number: %w", err)
		}
		sh.req.Page = n
		return false, sh.search(ctx, false)
	case "next":
		sh.req.Page++
		return false, sh.search(ctx, false)
	case "prev":
		sh.req.Page--
		return false, sh.search(ctx, false)

	case "category":
		req, err := parseRequest(arg, "", sh.req.Query, 1)
		if err != nil {
			return false, err
		}
		sh.req = req
		return false, sh.search(ctx, false)
	case "letter":
		req, err := parseRequest(string(sh.req.Category), arg, sh.req.Query, 1)
		if err != nil {
			return false, err
		}
		sh.req = req
		return false, sh.search(ctx, false)

	case "suggest":
		for _, s := range sh.app.session.Index().Autocomplete(arg) {
			fmt.Fprintf(sh.out, "  %-50s  %s\n", truncate(s.Title, 50), s.Reason)
		}
		return false, nil
	case "topic":
		return false, printTopic(sh.out, sh.app.session.Index(), arg)

	case "history":
		recent := sh.app.session.Recent()
		if len(recent) == 0 {
			fmt.Fprintln(sh.out, "No recent searches.")
		}
		for i, q := range recent {
			fmt.Fprintf(sh.out, "  %2d  %s\n", i+1, q)
		}
		return false, nil
	case "clear":
		return false, sh.app.session.ClearHistory(ctx)
	}
	return false, fmt.Errorf("unknown command %q", name)
}

// search shows the current request. Only explicit searches are recorded
// in the history; paging and filter changes are not.
func (sh *shell) search(ctx context.Context, explicit bool) error {
	var r *library.Results
	if explicit {
		var err error
		r, err = sh.app.session.Submit(ctx, sh.req)
		if r == nil {
			return err
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	} else {
		r = sh.app.session.Search(sh.req)
		if err := sh.app.session.Apply(r); err != nil {
			return err
		}
	}
	sh.req.Page = r.Page.Page
	printResults(sh.out, r)
	return nil
}
