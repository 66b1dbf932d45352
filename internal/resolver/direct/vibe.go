package direct

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"albumlink/internal/resolver"
)

const vibeSearchBase = "https://apis.naver.com"

// vibeResponse models the slice of the VIBE search payload the resolver
// descends. Track results are preferred; the dedicated album section ranks
// less precisely for release queries.
type vibeResponse struct {
	Response struct {
		Result struct {
			TrackResult struct {
				Tracks []struct {
					Album struct {
						AlbumID json.Number `json:"albumId"`
					} `json:"album"`
				} `json:"tracks"`
			} `json:"trackResult"`
			AlbumResult struct {
				Albums []struct {
					AlbumID json.Number `json:"albumId"`
				} `json:"albums"`
			} `json:"albumResult"`
		} `json:"result"`
	} `json:"response"`
}

// Vibe resolves listings on VIBE through the Naver music search API. The API
// is session-gated: requests without the VIBE referer and origin are rejected
// upstream.
type Vibe struct {
	client *Client
	base   string
}

// NewVibe creates the VIBE resolver. An empty base selects production.
func NewVibe(client *Client, base string) *Vibe {
	if base == "" {
		base = vibeSearchBase
	}
	return &Vibe{client: client, base: base}
}

func (v *Vibe) Key() string  { return "vibe" }
func (v *Vibe) Name() string { return "VIBE" }

func (v *Vibe) Resolve(ctx context.Context, query resolver.ReleaseQuery) resolver.ResolvedLink {
	link := resolver.NotFound(resolver.CategoryDomestic, v.Key(), v.Name())

	searchURL := v.base + "/vibeWeb/musicapiweb/v4/searchall?query=" + url.QueryEscape(query.SearchTerm()) +
		"&sort=RELEVANCE&alDisplay=21"
	body, err := v.client.Get(ctx, searchURL, map[string]string{
		"Accept":  "application/json",
		"Referer": "https://vibe.naver.com/",
		"Origin":  "https://vibe.naver.com",
	})
	if err != nil {
		return link
	}

	var payload vibeResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return link
	}

	id := ""
	if tracks := payload.Response.Result.TrackResult.Tracks; len(tracks) > 0 {
		id = tracks[0].Album.AlbumID.String()
	} else if albums := payload.Response.Result.AlbumResult.Albums; len(albums) > 0 {
		id = albums[0].AlbumID.String()
	}
	if id == "" || !validNumericID(id) {
		return link
	}

	link.AlbumID = id
	link.ListingURL = "https://vibe.naver.com/album/" + id
	link.Found = true
	link.MatchNote = resolver.MatchFirstResult
	return link
}

func validNumericID(id string) bool {
	n, err := strconv.ParseInt(id, 10, 64)
	return err == nil && n > 0
}
