// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/EshwaranandB/medkit.ai/internal/dataset"
	"github.com/EshwaranandB/medkit.ai/internal/history"
	"github.com/EshwaranandB/medkit.ai/internal/library"
	"github.com/EshwaranandB/medkit.ai/internal/secrets"
	"github.com/EshwaranandB/medkit.ai/internal/stats"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

// app bundles an open session with the resources it owns.
type app struct {
	cfg     types.LibraryConfig
	session *library.Session
	history *history.Store
}

func (a *app) Close() error {
	if a.history == nil {
		return nil
	}
	return a.history.Close()
}

// openApp builds a session from configuration, then loads the dataset and
// the search history concurrently. A dataset that fails to load leaves an
// empty library and a warning; history failures are fatal.
func openApp(ctx context.Context) (*app, error) {
	cfg := libraryConfig()

	src, err := dataset.NewSource(cfg.Dataset, secretDefault(secrets.DatasetToken, viper.GetString("dataset.token")))
	if err != nil {
		return nil, fmt.Errorf("%w (set --dataset or MEDKIT_DATASET_SOURCE)", err)
	}

	store, err := history.Open(cfg.History)
	if err != nil {
		return nil, err
	}

	var opts []library.Option
	if lang := viper.GetString("language"); lang != "" {
		tag, err := language.Parse(lang)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("parsing language %q: %w", lang, err)
		}
		opts = append(opts, library.WithLanguage(tag))
	}

	lcfg := library.Config{
		Source:       src,
		Dataset:      dataset.Options{ExcludeMarkers: cfg.Dataset.ExcludeMarkers},
		History:      store,
		RecentSize:   cfg.History.Size,
		IndexOptions: opts,
		Logger:       logger,
	}
	if c := stats.NewClient(cfg.Stats); c != nil {
		lcfg.Stats = c
	}
	a := &app{cfg: cfg, session: library.NewSession(lcfg), history: store}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report, err := a.session.Reload(gctx)
		if err != nil {
			return err
		}
		if report.Err != nil {
			fmt.Fprintf(os.Stderr, "warning: loading %s: %v\n", src, report.Err)
		}
		logger.V(1).Info("dataset loaded", "source", src.String(),
			"raw", report.Raw, "kept", report.Kept, "excluded", report.Excluded,
			"duplicates", report.Duplicates, "assigned_ids", report.AssignedIDs)
		return nil
	})
	g.Go(func() error {
		return a.session.LoadHistory(gctx)
	})
	if err := g.Wait(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// parseRequest validates the category and letter flags.
func parseRequest(category, letter, q string, page int) (library.PageRequest, error) {
	c, ok := types.ParseCategory(category)
	if !ok {
		return library.PageRequest{}, fmt.Errorf("unknown category %q (want one of all, %v)", category, types.Categories)
	}
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter != "" && (len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z') {
		return library.PageRequest{}, fmt.Errorf("letter must be a single letter A-Z, got %q", letter)
	}
	return library.PageRequest{Category: c, Letter: letter, Query: q, Page: page}, nil
}
