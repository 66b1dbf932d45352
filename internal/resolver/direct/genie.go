package direct

import (
	"context"
	"net/url"
	"regexp"

	"albumlink/internal/resolver"
)

const genieSearchBase = "https://www.genie.co.kr"

var geniePattern = regexp.MustCompile(`fnViewAlbumLayer\(['"]?([0-9]+)['"]?\)`)

// Genie resolves listings on Genie Music via its album search page. Result
// pages list many candidate albums, so occurrences are disambiguated with
// normalized context windows.
type Genie struct {
	client *Client
	base   string
}

// NewGenie creates the Genie resolver. An empty base selects production.
func NewGenie(client *Client, base string) *Genie {
	if base == "" {
		base = genieSearchBase
	}
	return &Genie{client: client, base: base}
}

func (g *Genie) Key() string  { return "genie" }
func (g *Genie) Name() string { return "지니뮤직" }

func (g *Genie) Resolve(ctx context.Context, query resolver.ReleaseQuery) resolver.ResolvedLink {
	link := resolver.NotFound(resolver.CategoryDomestic, g.Key(), g.Name())

	searchURL := g.base + "/search/searchAlbum?query=" + url.QueryEscape(query.SearchTerm()) +
		"&_=" + CacheNonce()
	body, err := g.client.Get(ctx, searchURL, nil)
	if err != nil || len(body) < htmlMinBody {
		return link
	}

	occurrences := scanIdentifiers(string(body), geniePattern)
	id, note, ok := pickByContext(occurrences, query.ArtistPrimary, query.AlbumTitle)
	if !ok {
		return link
	}
	link.AlbumID = id
	link.ListingURL = "https://www.genie.co.kr/detail/albumInfo?axnm=" + id
	link.Found = true
	link.MatchNote = note
	return link
}
