package resolver

import "strings"

// Category distinguishes directly-queried domestic platforms from platforms
// reached through the aggregator's smart-link pages.
type Category string

const (
	CategoryDomestic Category = "kr"
	CategoryGlobal   Category = "global"
)

// MatchNote records which acceptance tier produced a link.
type MatchNote string

const (
	// MatchExact means the candidate's context contained both the normalized
	// artist and the normalized album.
	MatchExact MatchNote = "exact"
	// MatchArtistOnly means only the normalized artist was present.
	MatchArtistOnly MatchNote = "artist-only"
	// MatchFirstResult means no candidate satisfied either term check and the
	// first occurrence was used as a last resort.
	MatchFirstResult MatchNote = "first-result"
	// MatchCatalogCode means the aggregator row matched the catalog code exactly.
	MatchCatalogCode MatchNote = "catalog-code"
)

// ReleaseQuery describes one release to resolve. Immutable per attempt.
type ReleaseQuery struct {
	ArtistPrimary string
	AlbumTitle    string
	ArtistAlt     string
	AlbumAlt      string
	CatalogCode   string
}

// SearchTerm joins the primary artist and album title for platform search.
func (q ReleaseQuery) SearchTerm() string {
	return strings.TrimSpace(q.ArtistPrimary + " " + q.AlbumTitle)
}

// AltArtist returns the secondary-language artist name, falling back to the
// primary when no variant exists.
func (q ReleaseQuery) AltArtist() string {
	if strings.TrimSpace(q.ArtistAlt) != "" {
		return q.ArtistAlt
	}
	return q.ArtistPrimary
}

// AltAlbum returns the secondary-language album title, falling back to the
// primary when no variant exists.
func (q ReleaseQuery) AltAlbum() string {
	if strings.TrimSpace(q.AlbumAlt) != "" {
		return q.AlbumAlt
	}
	return q.AlbumTitle
}

// Validate reports whether the query carries the required fields.
func (q ReleaseQuery) Validate() error {
	if strings.TrimSpace(q.ArtistPrimary) == "" {
		return Wrap(ErrParse, "query", "validate", "artist is required", nil)
	}
	if strings.TrimSpace(q.AlbumTitle) == "" {
		return Wrap(ErrParse, "query", "validate", "album title is required", nil)
	}
	return nil
}

// ResolvedLink is the per-platform result of a resolution attempt.
type ResolvedLink struct {
	Category     Category
	PlatformKey  string
	PlatformName string
	ListingURL   string
	AlbumID      string
	Found        bool
	MatchNote    MatchNote
}

// NotFound builds an empty result for the given platform.
func NotFound(category Category, key, name string) ResolvedLink {
	return ResolvedLink{Category: category, PlatformKey: key, PlatformName: name}
}

// CountFound returns how many of the links carry a listing URL.
func CountFound(links []ResolvedLink) int {
	count := 0
	for _, link := range links {
		if link.Found {
			count++
		}
	}
	return count
}
