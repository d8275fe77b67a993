// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the medkit CLI, a search front end
// over a health-topic library.
package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/EshwaranandB/medkit.ai/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API tokens loaded from the secrets directory at startup.
var loadedSecrets secrets.Set

// logger is the root logger, configured from --verbose.
var logger = logr.Discard()

// secretDefault returns fallback when set, or the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return loadedSecrets.Get(key)
}

// rootCmd is the base command for the medkit CLI.
var rootCmd = &cobra.Command{
	Use:   "medkit",
	Short: "Search a library of health topics",
	Long: `medkit loads a health-topic dataset, classifies every topic into a
category, and answers free-text searches with ranked, paginated results,
autocomplete suggestions, and did-you-mean alternatives.

The dataset is a JSON file or an http(s) URL, set with --dataset or the
dataset.source config key. Queries accept the operators "quoted phrase",
category:NAME, group:NAME, and has:FIELD.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetCount("verbose")
		logger = newLogger(verbose)

		s, err := secrets.Load(viper.GetString("secrets"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", slices.Sorted(maps.Keys(s)))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: medkit.yaml in . or ~/.config/medkit/)")
	rootCmd.PersistentFlags().String("dataset", "", "dataset JSON file or http(s) URL")
	rootCmd.PersistentFlags().String("history-db", "", "SQLite file for search history (default: in memory)")
	rootCmd.PersistentFlags().String("secrets", ".secrets/", "directory of API token files")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (repeatable)")

	bindFlags(rootCmd.PersistentFlags(), map[string]string{
		"dataset":    "dataset.source",
		"history-db": "history.db",
		"secrets":    "secrets",
	})
	setDefaults()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("medkit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "medkit"))
		}
	}

	viper.SetEnvPrefix("MEDKIT")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger writes structured log lines to stderr. Verbosity 0 shows only
// info and errors; each -v enables one more V level.
func newLogger(verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: verbosity})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
