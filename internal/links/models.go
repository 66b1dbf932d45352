package links

import (
	"strings"
	"time"

	"albumlink/internal/resolver"
)

// Release is one worklist entry: the release to collect links for, in both
// its domestic and latin names.
type Release struct {
	ID          int64
	ArtistKo    string
	ArtistEn    string
	AlbumKo     string
	AlbumEn     string
	CatalogCode string
	ReleaseDate string
	CoverURL    string
	CreatedAt   time.Time
}

// Identity returns the storage key for the release's links.
func (r Release) Identity() Identity {
	return Identity{ArtistKo: r.ArtistKo, AlbumKo: r.AlbumKo}
}

// Query builds the resolution query for the release.
func (r Release) Query() resolver.ReleaseQuery {
	return resolver.ReleaseQuery{
		ArtistPrimary: r.ArtistKo,
		AlbumTitle:    r.AlbumKo,
		ArtistAlt:     r.ArtistEn,
		AlbumAlt:      r.AlbumEn,
		CatalogCode:   r.CatalogCode,
	}
}

// Label is the release's log-friendly display form.
func (r Release) Label() string {
	return strings.TrimSpace(r.ArtistKo + " - " + r.AlbumKo)
}

// Identity keys a release's link rows. Links are stored per domestic artist
// and album name, independent of the worklist row that produced them.
type Identity struct {
	ArtistKo string
	AlbumKo  string
}

// PlatformLink is one stored per-platform resolution result.
type PlatformLink struct {
	ID           int64
	ArtistKo     string
	AlbumKo      string
	Category     resolver.Category
	PlatformKey  string
	PlatformName string
	ListingURL   string
	AlbumID      string
	CoverURL     string
	MatchNote    string
	Found        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter narrows link listings. Zero values select everything.
type Filter struct {
	Category  resolver.Category
	OnlyFound bool
}
