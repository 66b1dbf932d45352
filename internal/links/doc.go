// Package links persists the release worklist and resolved platform links in
// SQLite. Writes are monotonic: a found link is never overwritten by a later
// not-found result, so transient platform failures cannot erase previously
// collected URLs.
package links
