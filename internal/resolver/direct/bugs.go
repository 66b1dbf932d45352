package direct

import (
	"context"
	"net/url"
	"regexp"

	"albumlink/internal/resolver"
)

const bugsSearchBase = "https://music.bugs.co.kr"

var bugsPattern = regexp.MustCompile(`/album/(\d+)`)

// Bugs resolves listings on Bugs Music via its integrated search page, using
// the same context-window disambiguation as Genie since album path segments
// appear in every result row.
type Bugs struct {
	client *Client
	base   string
}

// NewBugs creates the Bugs resolver. An empty base selects production.
func NewBugs(client *Client, base string) *Bugs {
	if base == "" {
		base = bugsSearchBase
	}
	return &Bugs{client: client, base: base}
}

func (b *Bugs) Key() string  { return "bugs" }
func (b *Bugs) Name() string { return "벅스" }

func (b *Bugs) Resolve(ctx context.Context, query resolver.ReleaseQuery) resolver.ResolvedLink {
	link := resolver.NotFound(resolver.CategoryDomestic, b.Key(), b.Name())

	searchURL := b.base + "/search/integrated?q=" + url.QueryEscape(query.SearchTerm()) +
		"&_=" + CacheNonce()
	body, err := b.client.Get(ctx, searchURL, nil)
	if err != nil || len(body) < htmlMinBody {
		return link
	}

	occurrences := scanIdentifiers(string(body), bugsPattern)
	id, note, ok := pickByContext(occurrences, query.ArtistPrimary, query.AlbumTitle)
	if !ok {
		return link
	}
	link.AlbumID = id
	link.ListingURL = "https://music.bugs.co.kr/album/" + id
	link.Found = true
	link.MatchNote = note
	return link
}
