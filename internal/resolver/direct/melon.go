package direct

import (
	"context"
	"net/url"
	"regexp"

	"albumlink/internal/resolver"
)

const melonSearchBase = "https://www.melon.com"

// Melon's markup embeds album identifiers in detail-view call sites; the
// query-parameter form appears on some result layouts.
var melonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`goAlbumDetail\(['"]([0-9]+)['"]\)`),
	regexp.MustCompile(`albumId=([0-9]+)`),
}

// Melon resolves listings on Melon via its album search page.
type Melon struct {
	client *Client
	base   string
}

// NewMelon creates the Melon resolver. An empty base selects production.
func NewMelon(client *Client, base string) *Melon {
	if base == "" {
		base = melonSearchBase
	}
	return &Melon{client: client, base: base}
}

func (m *Melon) Key() string  { return "melon" }
func (m *Melon) Name() string { return "멜론" }

func (m *Melon) Resolve(ctx context.Context, query resolver.ReleaseQuery) resolver.ResolvedLink {
	link := resolver.NotFound(resolver.CategoryDomestic, m.Key(), m.Name())

	searchURL := m.base + "/search/album/index.htm?q=" + url.QueryEscape(query.SearchTerm()) +
		"&section=&searchGnbYn=Y&kkoSpl=Y&kkoDpType=&_=" + CacheNonce()
	body, err := m.client.Get(ctx, searchURL, nil)
	if err != nil || len(body) < htmlMinBody {
		return link
	}

	html := string(body)
	for _, pattern := range melonPatterns {
		if match := pattern.FindStringSubmatch(html); match != nil {
			link.AlbumID = match[1]
			link.ListingURL = "https://www.melon.com/album/detail.htm?albumId=" + match[1]
			link.Found = true
			link.MatchNote = resolver.MatchFirstResult
			break
		}
	}
	return link
}
