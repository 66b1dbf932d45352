// Package orchestrator runs a release through every platform resolver and
// merges the per-platform outcomes into one result. Direct platforms fan out
// concurrently; the aggregator session is driven serially since it owns a
// single browser tab.
package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"albumlink/internal/links"
	"albumlink/internal/logging"
	"albumlink/internal/resolver"
	"albumlink/internal/resolver/direct"
)

// Aggregator resolves global platform links through the authenticated
// aggregator session.
type Aggregator interface {
	Resolve(ctx context.Context, query resolver.ReleaseQuery) ([]resolver.ResolvedLink, string, error)
}

// Options configures an Orchestrator.
type Options struct {
	Direct []direct.Resolver
	// Aggregator may be nil when the companion session is disabled.
	Aggregator Aggregator
	// Client fetches Bugs detail pages for the cover fallback. Optional.
	Client        *direct.Client
	MaxConcurrent int
	Logger        *slog.Logger
}

// Result is one release's merged resolution outcome.
type Result struct {
	Domestic []resolver.ResolvedLink
	Global   []resolver.ResolvedLink
	CoverURL string

	DomesticFound int
	GlobalFound   int
	// AggregatorFailure is the short failure label when the aggregator pass
	// did not complete, empty otherwise.
	AggregatorFailure string
}

// Links returns every per-platform link in reporting order.
func (r Result) Links() []resolver.ResolvedLink {
	merged := make([]resolver.ResolvedLink, 0, len(r.Domestic)+len(r.Global))
	merged = append(merged, r.Domestic...)
	merged = append(merged, r.Global...)
	return merged
}

// Orchestrator coordinates the resolver fleet for single and batch runs.
type Orchestrator struct {
	direct        []direct.Resolver
	aggregator    Aggregator
	client        *direct.Client
	maxConcurrent int
	logger        *slog.Logger
}

// New creates an orchestrator from the options.
func New(opts Options) *Orchestrator {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 5
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return &Orchestrator{
		direct:        opts.Direct,
		aggregator:    opts.Aggregator,
		client:        opts.Client,
		maxConcurrent: opts.MaxConcurrent,
		logger:        opts.Logger,
	}
}

// Resolve runs every resolver for the release. A failing platform yields a
// not-found link; only an invalid query fails the whole resolution.
func (o *Orchestrator) Resolve(ctx context.Context, query resolver.ReleaseQuery) (Result, error) {
	if err := query.Validate(); err != nil {
		return Result{}, err
	}

	ctx = resolver.WithCorrelationID(ctx, uuid.NewString())
	ctx = resolver.WithRelease(ctx, query.SearchTerm())
	log := logging.WithContext(ctx, o.logger).With(logging.FieldComponent, "orchestrator")

	result := Result{Domestic: make([]resolver.ResolvedLink, len(o.direct))}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(o.maxConcurrent)
	for i, platform := range o.direct {
		group.Go(func() error {
			started := time.Now()
			link := platform.Resolve(groupCtx, query)
			result.Domestic[i] = link
			log.Info("platform resolved",
				slog.String(logging.FieldPlatform, platform.Key()),
				slog.Bool("found", link.Found),
				slog.String("match", string(link.MatchNote)),
				slog.Duration("elapsed", time.Since(started)))
			return nil
		})
	}
	// Resolvers absorb their own failures, so the group error is always nil;
	// Wait only synchronizes the fan-out.
	_ = group.Wait()

	if o.aggregator != nil {
		started := time.Now()
		global, cover, err := o.aggregator.Resolve(ctx, query)
		if err != nil {
			result.AggregatorFailure = resolver.FailureCategory(err)
			log.Warn("aggregator pass failed",
				slog.String("failure", result.AggregatorFailure),
				slog.Duration("elapsed", time.Since(started)),
				logging.Error(err))
		} else {
			result.Global = global
			result.CoverURL = cover
		}
	}

	result.DomesticFound = resolver.CountFound(result.Domestic)
	result.GlobalFound = resolver.CountFound(result.Global)
	o.applyCoverFallback(ctx, &result)

	log.Info("release resolved",
		slog.Int("domestic_found", result.DomesticFound),
		slog.Int("global_found", result.GlobalFound),
		slog.Bool("cover", result.CoverURL != ""))
	return result, nil
}

// applyCoverFallback fills a missing cover from the Bugs listing: first the
// synthesized image URL, then the album page itself.
func (o *Orchestrator) applyCoverFallback(ctx context.Context, result *Result) {
	if result.CoverURL != "" {
		return
	}
	for _, link := range result.Domestic {
		if !link.Found || link.PlatformKey != "bugs" {
			continue
		}
		if cover := direct.BugsCoverURL(link.AlbumID); cover != "" {
			result.CoverURL = cover
			return
		}
		if o.client != nil {
			result.CoverURL = direct.FetchBugsPageCover(ctx, o.client, link.ListingURL)
		}
		return
	}
}

// Summary aggregates a batch run for the end-of-run report.
type Summary struct {
	Releases      int
	Resolved      int
	LinksWritten  int
	DomesticFound int
	GlobalFound   int
	// Failures counts aggregator failure labels across the batch.
	Failures map[string]int
}

// Outcome is one batch item's result as delivered to the progress callback.
type Outcome struct {
	Result  Result
	Written int
	Err     error
}

// Progress observes batch items as they complete.
type Progress func(index, total int, release links.Release, outcome Outcome)

// ResolveAll runs the worklist sequentially, persisting each release's links
// before moving on so an interrupted batch keeps everything collected so
// far. The context aborts the batch between items.
func (o *Orchestrator) ResolveAll(ctx context.Context, store *links.Store, releases []links.Release, progress Progress) (Summary, error) {
	summary := Summary{Releases: len(releases), Failures: make(map[string]int)}

	for i, release := range releases {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		outcome := Outcome{}
		outcome.Result, outcome.Err = o.Resolve(ctx, release.Query())
		if outcome.Err == nil {
			written, err := store.Apply(ctx, release.Identity(), outcome.Result.Links(), outcome.Result.CoverURL)
			if err != nil {
				outcome.Err = err
			} else {
				outcome.Written = written
				summary.Resolved++
				summary.LinksWritten += written
				summary.DomesticFound += outcome.Result.DomesticFound
				summary.GlobalFound += outcome.Result.GlobalFound
				if outcome.Result.AggregatorFailure != "" {
					summary.Failures[outcome.Result.AggregatorFailure]++
				}
			}
		}
		if progress != nil {
			progress(i, len(releases), release, outcome)
		}
	}
	return summary, nil
}
