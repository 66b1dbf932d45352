package companion

import (
	"strings"

	"albumlink/internal/resolver"
	"albumlink/internal/textutil"
)

// catalogColumn is the zero-based index of the catalog code cell in the
// aggregator's result table.
const catalogColumn = 3

// catalogRow is the raw per-row data the browser extraction script returns:
// the text of each cell and the smart-link href, when the row has one.
type catalogRow struct {
	Cells []string `json:"cells"`
	Link  string   `json:"link"`
}

func (r catalogRow) catalogCell() string {
	if len(r.Cells) <= catalogColumn {
		return ""
	}
	return strings.TrimSpace(r.Cells[catalogColumn])
}

// matchCatalogCell reports whether the row's catalog cell identifies the
// code. Cells hold either the bare code or a UPC joined with it
// ("<upc> / <code>"), so only exact and suffix forms are accepted.
func matchCatalogCell(cell, code string) bool {
	cell = strings.TrimSpace(cell)
	code = strings.TrimSpace(code)
	if cell == "" || code == "" {
		return false
	}
	return cell == code ||
		strings.HasSuffix(cell, " / "+code) ||
		strings.HasSuffix(cell, "/"+code)
}

// findByCatalogCode returns the first row whose catalog cell matches the
// code exactly. Fuzzy acceptance is deliberately absent here: a catalog code
// identifies one release, and a near miss is a different release.
func findByCatalogCode(rows []catalogRow, code string) (catalogRow, bool) {
	for _, row := range rows {
		if matchCatalogCell(row.catalogCell(), code) {
			return row, true
		}
	}
	return catalogRow{}, false
}

// findByTitle returns the first row whose text matches the query's artist
// and album under mutual normalized containment. Aggregator rows truncate
// long titles, so containment runs in both directions.
func findByTitle(rows []catalogRow, query resolver.ReleaseQuery) (catalogRow, bool) {
	candidates := [][2]string{
		{query.ArtistPrimary, query.AlbumTitle},
		{query.AltArtist(), query.AltAlbum()},
	}
	for _, row := range rows {
		joined := strings.Join(row.Cells, " ")
		for _, pair := range candidates {
			if textutil.MutualContains(joined, pair[0]) && textutil.MutualContains(joined, pair[1]) {
				return row, true
			}
		}
	}
	return catalogRow{}, false
}

// findByAlbumOnly returns the first row containing the normalized album
// title, used by the artist-only re-search pass where the search term was
// the artist and the album disambiguates among that artist's releases.
func findByAlbumOnly(rows []catalogRow, query resolver.ReleaseQuery) (catalogRow, bool) {
	for _, row := range rows {
		joined := strings.Join(row.Cells, " ")
		if textutil.MutualContains(joined, query.AlbumTitle) ||
			textutil.MutualContains(joined, query.AltAlbum()) {
			return row, true
		}
	}
	return catalogRow{}, false
}
