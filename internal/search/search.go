// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search fans a query out to scholarly providers and a web
// provider, normalizes and deduplicates what comes back, and returns one
// merged result.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/pdiddy/scholar-federator/internal/logger"
	"github.com/pdiddy/scholar-federator/internal/metrics"
	"github.com/pdiddy/scholar-federator/internal/normalize"
	"github.com/pdiddy/scholar-federator/pkg/types"
)

const tracerName = "github.com/pdiddy/scholar-federator/internal/search"

// Options are the per-request switches. Use DefaultOptions for the
// documented defaults; non-positive limits fall back to the federation
// config.
type Options struct {
	IncludeWeb     bool
	TrustedOnly    bool
	LimitWeb       int
	LimitScholarly int
}

// DefaultOptions returns web inclusion and trusted-only filtering on, with
// limits taken from the federation config.
func DefaultOptions() Options {
	return Options{IncludeWeb: true, TrustedOnly: true}
}

// Federator runs federated searches. It holds only read-only policy and
// the provider set, so one value may serve concurrent searches.
type Federator struct {
	cfg       types.FederationConfig
	scholarly []Provider
	web       WebProvider
	trust     TrustFilter
	logger    *zap.Logger
	tracer    trace.Tracer
}

// Option configures a Federator.
type Option func(*Federator)

// WithLogger sets the logger used when the request context carries none.
func WithLogger(l *zap.Logger) Option {
	return func(f *Federator) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithTracerProvider sets where search spans go. The global provider is
// used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(f *Federator) {
		if tp != nil {
			f.tracer = tp.Tracer(tracerName)
		}
	}
}

// New builds a Federator. Scholarly providers are reordered by
// cfg.Priority; web may be nil.
func New(cfg types.FederationConfig, scholarly []Provider, web WebProvider, opts ...Option) *Federator {
	f := &Federator{
		cfg:       cfg,
		scholarly: orderByPriority(scholarly, cfg.Priority),
		web:       web,
		trust:     NewTrustFilter(cfg.Trusted),
		logger:    zap.NewNop(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Providers returns the scholarly provider names in merge priority order.
func (f *Federator) Providers() []string {
	names := make([]string, len(f.scholarly))
	for i, p := range f.scholarly {
		names[i] = p.Name()
	}
	return names
}

// Trusted reports whether results from source survive trusted-only filtering.
func (f *Federator) Trusted(source string) bool { return f.trust.Trusted(source) }

// outcome is what one provider call settled to.
type outcome[T any] struct {
	items   []T
	err     error
	elapsed time.Duration
}

// Search queries every scholarly provider, plus the web provider when
// opts.IncludeWeb is set, all in parallel under per-provider deadlines.
// It waits for every call to settle; failed or timed-out providers simply
// contribute nothing. The only error is ErrInvalidQuery.
func (f *Federator) Search(ctx context.Context, query string, opts Options) (types.AggregateResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return types.AggregateResult{}, ErrInvalidQuery
	}
	opts = f.resolve(opts)

	ctx, span := f.tracer.Start(ctx, "federated_search", trace.WithAttributes(
		attribute.Int("providers", len(f.scholarly)),
		attribute.Bool("include_web", opts.IncludeWeb),
		attribute.Bool("trusted_only", opts.TrustedOnly),
	))
	defer span.End()

	log := f.logger
	if l, ok := logger.Lookup(ctx); ok {
		log = l
	}

	// Each goroutine writes only its own slot, so results stay in priority
	// order whatever the completion order.
	scholarly := make([]outcome[types.Resource], len(f.scholarly))
	var web outcome[types.WebResult]
	runWeb := opts.IncludeWeb && f.web != nil

	var wg sync.WaitGroup
	for i, p := range f.scholarly {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scholarly[i] = invoke(ctx, f.tracer, p.Name(), f.cfg.TimeoutFor(p.Name()), func(ctx context.Context) ([]types.Resource, error) {
				return p.Search(ctx, q, opts.LimitScholarly)
			})
		}()
	}
	if runWeb {
		wg.Add(1)
		go func() {
			defer wg.Done()
			web = invoke(ctx, f.tracer, f.web.Name(), f.cfg.TimeoutFor(f.web.Name()), func(ctx context.Context) ([]types.WebResult, error) {
				return f.web.Search(ctx, q, opts.LimitWeb)
			})
		}()
	}
	wg.Wait()

	var failed []string
	var candidates []types.Resource
	for i, out := range scholarly {
		name := f.scholarly[i].Name()
		if out.err != nil {
			failed = append(failed, name)
			observeFailure(log, name, out.err, out.elapsed)
			continue
		}
		kept := 0
		for _, r := range out.items {
			if cr, ok := normalize.Recheck(r, name); ok {
				candidates = append(candidates, cr)
				kept++
			}
		}
		metrics.ObserveProvider(name, metrics.StatusOK, out.elapsed, kept)
	}

	resources, removed := deduplicate(candidates)
	if opts.TrustedOnly {
		resources = f.trust.Apply(resources)
	}
	if len(resources) > opts.LimitScholarly {
		resources = resources[:opts.LimitScholarly]
	}

	breakdown := make(map[string]int)
	for _, r := range resources {
		breakdown[r.Source]++
	}

	result := types.AggregateResult{
		Resources:       resources,
		SourceBreakdown: breakdown,
	}

	if runWeb {
		name := f.web.Name()
		if web.err != nil {
			failed = append(failed, name)
			observeFailure(log, name, web.err, web.elapsed)
		} else {
			var hits []types.WebResult
			for _, w := range web.items {
				if nw, ok := normalize.WebResult(normalize.WebRecord{Title: w.Title, URL: w.URL, Snippet: w.Snippet, Source: w.Source}); ok {
					hits = append(hits, nw)
				}
			}
			hits = dedupWeb(hits)
			if len(hits) > opts.LimitWeb {
				hits = hits[:opts.LimitWeb]
			}
			result.Web = hits
			metrics.ObserveProvider(name, metrics.StatusOK, web.elapsed, len(hits))
		}
	}

	sort.Strings(failed)
	result.FailedSources = failed
	result.Degraded = len(failed) > 0
	metrics.ObserveSearch(result.Degraded)

	span.SetAttributes(
		attribute.Int("resources", len(result.Resources)),
		attribute.Int("duplicates_removed", removed),
		attribute.Bool("degraded", result.Degraded),
	)
	log.Debug("federated search complete",
		zap.String("query", q),
		zap.Int("candidates", len(candidates)),
		zap.Int("duplicates_removed", removed),
		zap.Int("resources", len(result.Resources)),
		zap.Int("web", len(result.Web)),
		zap.Strings("failed_sources", failed),
	)
	return result, nil
}

func (f *Federator) resolve(opts Options) Options {
	if opts.LimitScholarly <= 0 {
		opts.LimitScholarly = f.cfg.LimitScholarly
	}
	if opts.LimitScholarly <= 0 {
		opts.LimitScholarly = 20
	}
	if opts.LimitWeb <= 0 {
		opts.LimitWeb = f.cfg.LimitWeb
	}
	if opts.LimitWeb <= 0 {
		opts.LimitWeb = 10
	}
	return opts
}

// observeFailure logs and counts a provider that contributed nothing.
func observeFailure(log *zap.Logger, name string, err error, elapsed time.Duration) {
	status := metrics.StatusError
	var pe *ProviderError
	if errors.As(err, &pe) && pe.Timeout() {
		status = metrics.StatusTimeout
	}
	metrics.ObserveProvider(name, status, elapsed, 0)
	log.Warn("provider failed",
		zap.String("source", name),
		zap.String("status", status),
		zap.Duration("duration", elapsed),
		zap.Error(err),
	)
}

// invoke runs fn under its own deadline and settles to an outcome. A
// provider that ignores ctx is abandoned at the deadline; a panicking
// provider is recovered. Every failure is wrapped in a ProviderError.
func invoke[T any](ctx context.Context, tracer trace.Tracer, name string, timeout time.Duration, fn func(context.Context) ([]T, error)) outcome[T] {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "provider.search", trace.WithAttributes(attribute.String("provider", name)))
	defer span.End()

	start := time.Now()
	done := make(chan outcome[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome[T]{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		items, err := fn(ctx)
		done <- outcome[T]{items: items, err: err}
	}()

	var out outcome[T]
	select {
	case out = <-done:
	case <-ctx.Done():
		out = outcome[T]{err: ctx.Err()}
	}
	out.elapsed = time.Since(start)

	if out.err != nil {
		out.items = nil
		out.err = &ProviderError{Source: name, Err: out.err}
		span.RecordError(out.err)
		span.SetStatus(codes.Error, out.err.Error())
		return out
	}
	span.SetAttributes(attribute.Int("results", len(out.items)))
	return out
}
