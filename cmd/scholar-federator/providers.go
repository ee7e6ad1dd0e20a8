package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-federator/pkg/types"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List configured sources with their priority, trust and timeout",
	RunE: func(cmd *cobra.Command, args []string) error {
		printProviders(appConfig, cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

// printProviders lists enabled scholarly providers in merge order, then
// the web provider and any disabled ones.
func printProviders(cfg types.Config, w io.Writer) {
	fed := newFederator(cfg, appLogger)

	fmt.Fprintf(w, "%-4s  %-18s  %-8s  %-7s  %s\n", "Rank", "Provider", "Enabled", "Trusted", "Timeout")
	for i, name := range fed.Providers() {
		fmt.Fprintf(w, "%-4d  %-18s  %-8s  %-7s  %s\n",
			i+1, name, "yes", yesNo(fed.Trusted(name)), cfg.Federation.TimeoutFor(name))
	}

	var rest []string
	for name := range cfg.Providers {
		if name == types.ProviderDuckDuckGo {
			continue
		}
		if !cfg.Providers[name].Enabled {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		fmt.Fprintf(w, "%-4s  %-18s  %-8s  %-7s  %s\n", "-", name, "no", yesNo(fed.Trusted(name)), "-")
	}

	web := cfg.Providers[types.ProviderDuckDuckGo]
	fmt.Fprintf(w, "%-4s  %-18s  %-8s  %-7s  %s\n", "web", types.ProviderDuckDuckGo, yesNo(web.Enabled), "-",
		cfg.Federation.TimeoutFor(types.ProviderDuckDuckGo))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
