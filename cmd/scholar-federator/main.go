// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-federator CLI. It runs
// one-shot federated searches from the shell and serves the same search
// over HTTP.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/scholar-federator/internal/logger"
	"github.com/pdiddy/scholar-federator/internal/search"
	"github.com/pdiddy/scholar-federator/internal/secrets"
	"github.com/pdiddy/scholar-federator/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// appConfig is the resolved configuration, filled in PersistentPreRunE.
	appConfig types.Config
	appLogger = zap.NewNop()
)

// rootCmd is the base command for the scholar-federator CLI.
var rootCmd = &cobra.Command{
	Use:   "scholar-federator",
	Short: "Federated search over open scholarly sources",
	Long: `scholar-federator sends one query to several open literature sources
(arXiv, OpenAlex, Semantic Scholar, Europe PMC, Crossref, Wikipedia) and an
optional web search, then merges the hits into a single deduplicated list
of open-access resources with a per-source breakdown.

Use "search" for a one-shot query and "serve" to expose the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		l, err := logger.New(cfg.Log, version)
		if err != nil {
			return err
		}
		appLogger = l

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, appLogger)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			appLogger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		secrets.Apply(&cfg, s)

		appConfig = cfg
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = appLogger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholar-federator.yaml or ~/.config/scholar-federator/scholar-federator.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of credential files")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-env", "", "log flavour: local, dev or prod")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.env", rootCmd.PersistentFlags().Lookup("log-env"))
}

func initConfig() {
	setDefaults(viper.GetViper(), types.DefaultConfig())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholar-federator")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholar-federator"))
		}
	}

	configureEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: could not read config file %s: %v\n", cfgFile, err)
	}
}

// newFederator builds the provider set and federator from cfg.
func newFederator(cfg types.Config, l *zap.Logger) *search.Federator {
	scholarly, web := search.BuildProviders(cfg)
	return search.New(cfg.Federation, scholarly, web, search.WithLogger(l))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
