package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-federator/internal/search"
	"github.com/pdiddy/scholar-federator/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run one federated search and print the merged results",
	Long: `Search sends the query to every enabled scholarly source, plus the web
provider unless --no-web is given, and prints the merged, deduplicated
open-access results. By default only results from trusted sources are kept;
--all-sources disables that filter.

Sources that fail or time out contribute nothing and are listed after the
results.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "free-text query (or pass it as arguments)")
	searchCmd.Flags().Bool("no-web", false, "skip the general web provider")
	searchCmd.Flags().Bool("all-sources", false, "keep results from untrusted sources")
	searchCmd.Flags().Int("limit", 0, "maximum scholarly results (default from config)")
	searchCmd.Flags().Int("web-limit", 0, "maximum web results (default from config)")
	searchCmd.Flags().String("format", "table", "output format: table, json or csl")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		query = strings.Join(args, " ")
	}
	if strings.TrimSpace(query) == "" {
		return search.ErrInvalidQuery
	}

	format, _ := cmd.Flags().GetString("format")
	write, err := formatter(format)
	if err != nil {
		return err
	}

	opts := search.DefaultOptions()
	noWeb, _ := cmd.Flags().GetBool("no-web")
	allSources, _ := cmd.Flags().GetBool("all-sources")
	opts.IncludeWeb = !noWeb
	opts.TrustedOnly = !allSources
	opts.LimitScholarly, _ = cmd.Flags().GetInt("limit")
	opts.LimitWeb, _ = cmd.Flags().GetInt("web-limit")
	if opts.LimitScholarly < 0 || opts.LimitWeb < 0 {
		return fmt.Errorf("limits must not be negative")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fed := newFederator(appConfig, appLogger)
	res, err := fed.Search(ctx, query, opts)
	if err != nil {
		return err
	}
	return write(res, cmd.OutOrStdout())
}

// formatter returns the writer for an output format name.
func formatter(name string) (func(types.AggregateResult, io.Writer) error, error) {
	switch strings.ToLower(name) {
	case "", "table":
		return func(res types.AggregateResult, w io.Writer) error {
			search.FormatTable(res, w)
			return nil
		}, nil
	case "json":
		return search.FormatJSON, nil
	case "csl", "yaml":
		return search.FormatCSL, nil
	}
	return nil, fmt.Errorf("unknown format %q: use table, json or csl", name)
}
