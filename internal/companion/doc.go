// Package companion resolves global platform listings through the
// aggregator's authenticated catalog UI, driven over the Chrome DevTools
// Protocol against a remote browser.
//
// The aggregator has no API: the catalog is a server-rendered search page
// whose smart-link detail view enumerates per-platform listing URLs. The
// session is a process-wide singleton owned by a mutex, lazily dialed and
// logged in on first use, and discarded after authentication or transport
// failures so the next attempt starts clean.
//
// Everything that does not need a live browser — row matching, onclick
// payload parsing, platform code mapping — is kept in pure functions so it
// can be tested without one.
package companion
