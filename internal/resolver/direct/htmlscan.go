package direct

import (
	"regexp"
	"strings"

	"albumlink/internal/resolver"
	"albumlink/internal/textutil"
)

// contextWindow is how many bytes of surrounding markup each identifier
// occurrence carries into the term check.
const contextWindow = 500

// htmlMinBody is the smallest body an HTML search page can plausibly have;
// anything shorter is a blocked or templated error response.
const htmlMinBody = 1000

type occurrence struct {
	id      string
	context string
}

// scanIdentifiers collects every pattern occurrence in the page together with
// a bounded context window around it. The pattern's first capture group is
// the album identifier.
func scanIdentifiers(html string, pattern *regexp.Regexp) []occurrence {
	indexes := pattern.FindAllStringSubmatchIndex(html, -1)
	if len(indexes) == 0 {
		return nil
	}
	found := make([]occurrence, 0, len(indexes))
	for _, loc := range indexes {
		if len(loc) < 4 || loc[2] < 0 {
			continue
		}
		start := loc[0] - contextWindow
		if start < 0 {
			start = 0
		}
		end := loc[1] + contextWindow
		if end > len(html) {
			end = len(html)
		}
		found = append(found, occurrence{
			id:      html[loc[2]:loc[3]],
			context: html[start:end],
		})
	}
	return found
}

// pickByContext applies the three-tier acceptance policy to the occurrences:
// a window containing both normalized terms wins immediately; otherwise the
// first artist-only window; otherwise the very first occurrence. Domestic
// search pages rarely hold one unambiguous hit, and an empty result is worse
// than a weak guess an operator can correct later.
func pickByContext(occurrences []occurrence, artist, album string) (string, resolver.MatchNote, bool) {
	if len(occurrences) == 0 {
		return "", "", false
	}
	normArtist := textutil.Normalize(artist)
	normAlbum := textutil.Normalize(album)

	artistOnly := ""
	for _, occ := range occurrences {
		window := textutil.Normalize(occ.context)
		hasArtist := normArtist != "" && strings.Contains(window, normArtist)
		hasAlbum := normAlbum != "" && strings.Contains(window, normAlbum)
		if hasArtist && hasAlbum {
			return occ.id, resolver.MatchExact, true
		}
		if artistOnly == "" && hasArtist {
			artistOnly = occ.id
		}
	}
	if artistOnly != "" {
		return artistOnly, resolver.MatchArtistOnly, true
	}
	return occurrences[0].id, resolver.MatchFirstResult, true
}
