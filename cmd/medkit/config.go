// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/EshwaranandB/medkit.ai/internal/dataset"
	"github.com/EshwaranandB/medkit.ai/internal/library"
	"github.com/EshwaranandB/medkit.ai/internal/secrets"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "medkit/0.1"
)

// envKeyReplacer maps nested keys onto environment names, so dataset.source
// is read from MEDKIT_DATASET_SOURCE.
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// bindFlags binds each named flag in fs to its config key.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	fs.VisitAll(func(f *pflag.Flag) {
		if key, ok := keys[f.Name]; ok {
			_ = viper.BindPFlag(key, f)
		}
	})
}

func setDefaults() {
	viper.SetDefault("http.timeout", defaultTimeout)
	viper.SetDefault("http.user_agent", defaultUserAgent)
	viper.SetDefault("http.max_retries", 0)
	viper.SetDefault("dataset.exclude_markers", dataset.DefaultExcludeMarkers)
	viper.SetDefault("history.profile", "default")
	viper.SetDefault("history.size", library.DefaultRecentSize)
}

// httpConfig reads the shared HTTP settings, letting a section override
// the timeout with <section>.timeout.
func httpConfig(section string) types.HTTPConfig {
	timeout := viper.GetDuration("http.timeout")
	if d := viper.GetDuration(section + ".timeout"); d > 0 {
		timeout = d
	}
	return types.HTTPConfig{
		Timeout:    timeout,
		UserAgent:  viper.GetString("http.user_agent"),
		MaxRetries: viper.GetInt("http.max_retries"),
	}
}

// libraryConfig assembles component configuration from flags, the config
// file, and MEDKIT_* environment variables.
func libraryConfig() types.LibraryConfig {
	return types.LibraryConfig{
		Dataset: types.DatasetConfig{
			HTTPConfig:     httpConfig("dataset"),
			Source:         viper.GetString("dataset.source"),
			ExcludeMarkers: viper.GetStringSlice("dataset.exclude_markers"),
		},
		Stats: types.StatsConfig{
			HTTPConfig: httpConfig("stats"),
			URL:        viper.GetString("stats.url"),
			Token:      secretDefault(secrets.StatsToken, viper.GetString("stats.token")),
		},
		History: types.HistoryConfig{
			DBPath:  viper.GetString("history.db"),
			Profile: viper.GetString("history.profile"),
			Size:    viper.GetInt("history.size"),
		},
	}
}
