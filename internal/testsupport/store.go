package testsupport

import (
	"context"
	"testing"

	"albumlink/internal/config"
	"albumlink/internal/links"
)

// MustOpenStore opens a links.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *links.Store {
	t.Helper()

	store, err := links.Open(cfg)
	if err != nil {
		t.Fatalf("links.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewRelease seeds a worklist entry for tests using the provided store.
func NewRelease(t testing.TB, store *links.Store, release links.Release) links.Release {
	t.Helper()

	id, err := store.AddRelease(context.Background(), release)
	if err != nil {
		t.Fatalf("store.AddRelease: %v", err)
	}
	release.ID = id
	return release
}
