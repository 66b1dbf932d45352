// Command albumlink resolves music release listing links across domestic
// streaming platforms and the aggregator's global smart-link catalog, and
// maintains the SQLite worklist backing batch collection runs.
package main
