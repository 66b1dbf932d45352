package companion

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"albumlink/internal/logging"
	"albumlink/internal/resolver"
	"albumlink/internal/wait"
)

// Options configures the aggregator session.
type Options struct {
	// BaseURL is the aggregator's site root.
	BaseURL string
	// DevToolsURL is the remote browser's CDP websocket endpoint.
	DevToolsURL string
	Username    string
	Password    string

	// LoadingAppear bounds the best-effort wait for the search spinner to
	// show up; LoadingDisappear bounds the wait for it to go away.
	LoadingAppear    time.Duration
	LoadingDisappear time.Duration
	// ResultsSettle is the pause after the spinner clears; DetailSettle is
	// the fixed pause after opening a smart-link detail page, also used when
	// the spinner never appeared.
	ResultsSettle time.Duration
	DetailSettle  time.Duration

	Logger *slog.Logger
	// Sleep overrides the pause primitive for tests.
	Sleep wait.Sleeper
}

func (o Options) withDefaults() Options {
	if o.LoadingAppear <= 0 {
		o.LoadingAppear = 10 * time.Second
	}
	if o.LoadingDisappear <= 0 {
		o.LoadingDisappear = 30 * time.Second
	}
	if o.ResultsSettle <= 0 {
		o.ResultsSettle = 2 * time.Second
	}
	if o.DetailSettle <= 0 {
		o.DetailSettle = 7 * time.Second
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	if o.Sleep == nil {
		o.Sleep = wait.SleepContext
	}
	return o
}

// Session owns the one authenticated browser tab driving the aggregator UI.
// All resolution runs through it serially; concurrent callers queue on the
// mutex. After an authentication or transport failure the session is
// discarded and re-dialed on the next call.
type Session struct {
	mu   sync.Mutex
	opts Options

	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc
	browserCtx    context.Context
	authenticated bool
}

// NewSession creates a session without dialing the browser; the connection
// is established on first Resolve.
func NewSession(opts Options) *Session {
	return &Session{opts: opts.withDefaults()}
}

// Resolve searches the aggregator catalog for the release and extracts the
// global platform listings plus the detail page's cover URL.
func (s *Session) Resolve(ctx context.Context, query resolver.ReleaseQuery) ([]resolver.ResolvedLink, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(ctx); err != nil {
		return nil, "", err
	}
	links, cover, err := s.resolveLocked(ctx, query)
	if err != nil && !resolver.Recoverable(err) {
		s.drop()
	}
	return links, cover, err
}

// Close tears down the browser connection.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drop()
}

func (s *Session) ensure(ctx context.Context) error {
	if s.browserCtx != nil && s.authenticated {
		return nil
	}
	s.drop()

	// The allocator parents on the background context so the session
	// survives the per-call context; per-call cancellation is honoured by
	// checking ctx between steps.
	allocCtx, allocCancel := chromedp.NewRemoteAllocator(context.Background(), s.opts.DevToolsURL)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	s.allocCancel = allocCancel
	s.browserCancel = browserCancel
	s.browserCtx = browserCtx

	if err := s.login(ctx); err != nil {
		s.drop()
		return err
	}
	s.authenticated = true
	return nil
}

func (s *Session) drop() {
	if s.browserCancel != nil {
		s.browserCancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
	s.browserCtx = nil
	s.browserCancel = nil
	s.allocCancel = nil
	s.authenticated = false
}

func (s *Session) login(ctx context.Context) error {
	log := s.opts.Logger.With(logging.FieldComponent, "companion")
	log.Info("logging in to aggregator")

	err := s.run(ctx,
		chromedp.Navigate(s.opts.BaseURL+"/login"),
		chromedp.WaitVisible("#username", chromedp.ByQuery),
		chromedp.SetValue("#username", s.opts.Username, chromedp.ByQuery),
		chromedp.SetValue("#password", s.opts.Password, chromedp.ByQuery),
		chromedp.Click("button.btn_login", chromedp.ByQuery),
	)
	if err != nil {
		return resolver.Wrap(resolver.ErrAuthentication, "companion", "login", "submit", err)
	}

	// The post-login landing page identifies itself as the dashboard in
	// both its URL and title; accept either.
	err = wait.Until(ctx, func(ctx context.Context) (bool, error) {
		var location, title string
		if err := s.run(ctx, chromedp.Location(&location), chromedp.Title(&title)); err != nil {
			return false, nil
		}
		return strings.Contains(strings.ToLower(location), "dashboard") ||
			strings.Contains(strings.ToLower(title), "dashboard"), nil
	}, wait.Options{Timeout: s.opts.LoadingAppear, Interval: time.Second, Sleep: s.opts.Sleep})
	if err != nil {
		return resolver.Wrap(resolver.ErrAuthentication, "companion", "login", "dashboard never appeared", err)
	}
	log.Info("aggregator session authenticated")
	return nil
}

func (s *Session) resolveLocked(ctx context.Context, query resolver.ReleaseQuery) ([]resolver.ResolvedLink, string, error) {
	log := s.opts.Logger.With(logging.FieldComponent, "companion")

	row, note, err := s.locateRow(ctx, query)
	if err != nil {
		return nil, "", err
	}
	if row.Link == "" {
		return nil, "", resolver.Wrap(resolver.ErrExtraction, "companion", "smart-link", "matched row has no platform link", nil)
	}

	if err := s.run(ctx, chromedp.Navigate(row.Link)); err != nil {
		return nil, "", resolver.Wrap(resolver.ErrNetwork, "companion", "open detail", row.Link, err)
	}
	if err := s.opts.Sleep(ctx, s.opts.DetailSettle); err != nil {
		return nil, "", resolver.Wrap(resolver.ErrNetwork, "companion", "open detail", "cancelled", err)
	}

	var anchors []platformAnchor
	if err := s.run(ctx, chromedp.Evaluate(platformsJS, &anchors)); err != nil {
		return nil, "", resolver.Wrap(resolver.ErrExtraction, "companion", "extract platforms", "", err)
	}
	links := collectPlatforms(anchors, note)
	if len(links) == 0 {
		return nil, "", resolver.Wrap(resolver.ErrExtraction, "companion", "extract platforms", "no entries on detail page", nil)
	}

	var cover string
	if err := s.run(ctx, chromedp.Evaluate(coverJS, &cover)); err != nil {
		log.Warn("cover extraction failed", logging.Error(err))
		cover = ""
	}

	log.Info("aggregator platforms extracted",
		slog.Int("platforms", len(links)),
		slog.String("match", string(note)))
	return links, cover, nil
}

// locateRow runs the search passes in order of confidence: catalog code,
// artist+album title, then one artist-only re-search.
func (s *Session) locateRow(ctx context.Context, query resolver.ReleaseQuery) (catalogRow, resolver.MatchNote, error) {
	log := s.opts.Logger.With(logging.FieldComponent, "companion")

	if code := strings.TrimSpace(query.CatalogCode); code != "" {
		rows, err := s.searchRows(ctx, code)
		if err != nil {
			return catalogRow{}, "", err
		}
		if row, ok := findByCatalogCode(rows, code); ok {
			return row, resolver.MatchCatalogCode, nil
		}
		log.Warn("catalog code not in results, retrying by title",
			slog.String("catalog_code", code))
	}

	rows, err := s.searchRows(ctx, query.SearchTerm())
	if err != nil {
		return catalogRow{}, "", err
	}
	if row, ok := findByTitle(rows, query); ok {
		return row, resolver.MatchExact, nil
	}

	rows, err = s.searchRows(ctx, query.ArtistPrimary)
	if err != nil {
		return catalogRow{}, "", err
	}
	if row, ok := findByAlbumOnly(rows, query); ok {
		return row, resolver.MatchArtistOnly, nil
	}
	return catalogRow{}, "", resolver.Wrap(resolver.ErrCatalogNotFound, "companion", "search", query.SearchTerm(), nil)
}

// searchRows loads a fresh catalog page, submits the term, waits for the
// asynchronous results, and captures the result rows.
func (s *Session) searchRows(ctx context.Context, term string) ([]catalogRow, error) {
	// A fresh page per search avoids stale rows from the previous query; the
	// timestamp defeats the aggregator's page cache.
	pageURL := s.opts.BaseURL + "/catalog?init=Y&t=" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	err := s.run(ctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible("#search_text", chromedp.ByQuery),
		chromedp.SetValue("#search_text", term, chromedp.ByQuery),
		chromedp.Evaluate(`catalog.search(); undefined`, nil),
	)
	if err != nil {
		return nil, resolver.Wrap(resolver.ErrNetwork, "companion", "search", term, err)
	}

	if err := s.waitForResults(ctx); err != nil {
		return nil, err
	}

	var rows []catalogRow
	if err := s.run(ctx, chromedp.Evaluate(rowsJS, &rows)); err != nil {
		return nil, resolver.Wrap(resolver.ErrParse, "companion", "read results", term, err)
	}
	return rows, nil
}

// waitForResults tracks the search spinner. The appear phase is best-effort:
// fast responses can clear the spinner before the first poll sees it. A
// spinner that never goes away is logged and tolerated, matching how slow
// result pages still render usable rows underneath it.
func (s *Session) waitForResults(ctx context.Context) error {
	log := s.opts.Logger.With(logging.FieldComponent, "companion")

	loadingVisible := func(ctx context.Context) (bool, error) {
		var visible bool
		if err := s.run(ctx, chromedp.Evaluate(loadingVisibleJS, &visible)); err != nil {
			return false, nil
		}
		return visible, nil
	}

	appeared := wait.Until(ctx, loadingVisible, wait.Options{
		Timeout:  s.opts.LoadingAppear,
		Interval: 500 * time.Millisecond,
		Sleep:    s.opts.Sleep,
	}) == nil

	if !appeared {
		// Either the results rendered before polling started or this page
		// has no spinner; a fixed settle covers both.
		return s.sleepWrapped(ctx, s.opts.DetailSettle)
	}

	err := wait.Until(ctx, func(ctx context.Context) (bool, error) {
		visible, _ := loadingVisible(ctx)
		return !visible, nil
	}, wait.Options{Timeout: s.opts.LoadingDisappear, Interval: time.Second, Sleep: s.opts.Sleep})
	if err != nil {
		if ctx.Err() != nil {
			return resolver.Wrap(resolver.ErrNetwork, "companion", "await results", "cancelled", ctx.Err())
		}
		log.Warn("results spinner never cleared, reading rows anyway")
	}
	return s.sleepWrapped(ctx, s.opts.ResultsSettle)
}

func (s *Session) sleepWrapped(ctx context.Context, d time.Duration) error {
	if err := s.opts.Sleep(ctx, d); err != nil {
		return resolver.Wrap(resolver.ErrNetwork, "companion", "await results", "cancelled", err)
	}
	return nil
}

// run executes browser actions against the session tab, honouring the
// caller's context by checking it before dispatch.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.browserCtx == nil {
		return resolver.Wrap(resolver.ErrNetwork, "companion", "run", "session not connected", nil)
	}
	return chromedp.Run(s.browserCtx, actions...)
}
