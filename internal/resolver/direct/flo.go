package direct

import (
	"context"
	"encoding/json"
	"net/url"

	"albumlink/internal/resolver"
)

const floSearchBase = "https://www.music-flo.com"

// floResponse models the FLO search payload: a list of typed sections, of
// which only the ALBUM section's entries matter.
type floResponse struct {
	Data struct {
		List []struct {
			Type string `json:"type"`
			List []struct {
				ID json.Number `json:"id"`
			} `json:"list"`
		} `json:"list"`
	} `json:"data"`
}

// Flo resolves listings on FLO through its public search API.
type Flo struct {
	client *Client
	base   string
}

// NewFlo creates the FLO resolver. An empty base selects production.
func NewFlo(client *Client, base string) *Flo {
	if base == "" {
		base = floSearchBase
	}
	return &Flo{client: client, base: base}
}

func (f *Flo) Key() string  { return "flo" }
func (f *Flo) Name() string { return "FLO" }

func (f *Flo) Resolve(ctx context.Context, query resolver.ReleaseQuery) resolver.ResolvedLink {
	link := resolver.NotFound(resolver.CategoryDomestic, f.Key(), f.Name())

	searchURL := f.base + "/api/search/v2/search?keyword=" + url.QueryEscape(query.SearchTerm()) +
		"&searchType=ALBUM&sortType=ACCURACY&size=20&page=1"
	body, err := f.client.Get(ctx, searchURL, nil)
	if err != nil {
		return link
	}

	var payload floResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return link
	}

	for _, section := range payload.Data.List {
		if section.Type != "ALBUM" || len(section.List) == 0 {
			continue
		}
		id := section.List[0].ID.String()
		if !validNumericID(id) {
			break
		}
		link.AlbumID = id
		link.ListingURL = "https://www.music-flo.com/detail/album/" + id
		link.Found = true
		link.MatchNote = resolver.MatchFirstResult
		break
	}
	return link
}
