package companion

import (
	"regexp"
	"strings"

	"albumlink/internal/resolver"
)

// clickPayload pulls the listing URL and platform code out of the
// click_platform onclick handler the smart-link page attaches to each entry.
var clickPayload = regexp.MustCompile(`click_platform\(\s*["']([^"']+)["']\s*,\s*["']([^"']*)["']`)

// logoClass isolates the platform code suffix from the entry's logo span.
var logoClass = regexp.MustCompile(`\blogo_([A-Za-z0-9]+)\b`)

// platformNames maps the aggregator's short platform codes to display names.
var platformNames = map[string]string{
	"spo": "Spotify",
	"itm": "Apple Music",
	"yat": "YouTube Music",
	"ang": "Anghami",
	"dee": "Deezer",
	"pdx": "Pandora",
	"lmj": "LINE MUSIC (JP)",
	"lmt": "LINE MUSIC (TW)",
	"lmk": "LINE MUSIC",
	"lmu": "LINE MUSIC",
	"asp": "TIDAL",
	"ama": "Amazon Music",
	"kkb": "KKBOX",
	"awa": "AWA",
	"awm": "AWA",
	"qom": "QQ Music",
	"tct": "QQ Music",
	"mov": "MOOV",
	"moo": "MOOV",
}

// domainNames recognizes platforms by listing URL when the logo code is
// missing or unknown.
var domainNames = []struct {
	fragment string
	name     string
}{
	{"spotify", "Spotify"},
	{"apple", "Apple Music"},
	{"youtube", "YouTube Music"},
	{"anghami", "Anghami"},
	{"deezer", "Deezer"},
	{"pandora", "Pandora"},
	{"line", "LINE MUSIC"},
	{"tidal", "TIDAL"},
	{"amazon", "Amazon Music"},
	{"kkbox", "KKBOX"},
	{"awa", "AWA"},
	{"qq", "QQ Music"},
	{"moov", "MOOV"},
}

// platformAnchor is the raw per-entry data the browser extraction script
// returns: the anchor's onclick attribute and its logo span class list.
type platformAnchor struct {
	OnClick string `json:"onclick"`
	Logo    string `json:"logo"`
}

// parsePlatformAnchor turns one smart-link entry into a resolved global
// link. Entries without a parseable click_platform payload are skipped.
func parsePlatformAnchor(anchor platformAnchor) (resolver.ResolvedLink, bool) {
	match := clickPayload.FindStringSubmatch(anchor.OnClick)
	if match == nil {
		return resolver.ResolvedLink{}, false
	}
	listingURL := strings.ReplaceAll(match[1], `\/`, "/")
	code := strings.ToLower(match[2])

	if logo := logoClass.FindStringSubmatch(anchor.Logo); logo != nil {
		code = strings.ToLower(logo[1])
	}

	name := platformNames[code]
	if name == "" {
		name = nameFromDomain(listingURL)
	}
	if name == "" {
		if code != "" {
			name = strings.ToUpper(code)
		} else {
			name = "Unknown"
		}
	}
	if code == "" {
		code = "unknown"
	}

	return resolver.ResolvedLink{
		Category:     resolver.CategoryGlobal,
		PlatformKey:  code,
		PlatformName: name,
		ListingURL:   listingURL,
		Found:        true,
		MatchNote:    resolver.MatchCatalogCode,
	}, true
}

func nameFromDomain(listingURL string) string {
	lowered := strings.ToLower(listingURL)
	for _, entry := range domainNames {
		if strings.Contains(lowered, entry.fragment) {
			return entry.name
		}
	}
	return ""
}

// collectPlatforms parses every extracted anchor, dropping duplicates by
// platform key so a page listing the same store twice yields one link.
func collectPlatforms(anchors []platformAnchor, note resolver.MatchNote) []resolver.ResolvedLink {
	seen := make(map[string]bool, len(anchors))
	links := make([]resolver.ResolvedLink, 0, len(anchors))
	for _, anchor := range anchors {
		link, ok := parsePlatformAnchor(anchor)
		if !ok || seen[link.PlatformKey] {
			continue
		}
		link.MatchNote = note
		seen[link.PlatformKey] = true
		links = append(links, link)
	}
	return links
}
