// Package direct implements the resolvers for domestic platforms that expose
// a plain HTTP search surface.
//
// Each platform is a small strategy behind the Resolver interface: build a
// search request, fetch with browser-like headers, extract a best-candidate
// album identifier, and synthesize the listing URL from a fixed template.
// Structured platforms (VIBE, FLO) descend a known JSON path and take the
// first entry. Unstructured platforms (Melon, Genie, Bugs) scan the raw HTML
// for identifier patterns and disambiguate with normalized context windows.
//
// Failures never escape a resolver: network errors, short or blocked
// responses, and parse misses all collapse into a found=false result so one
// broken platform cannot abort resolution of the others.
package direct
