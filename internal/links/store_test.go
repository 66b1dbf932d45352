package links_test

import (
	"context"
	"testing"

	"albumlink/internal/links"
	"albumlink/internal/resolver"
	"albumlink/internal/testsupport"
)

func testRelease() links.Release {
	return links.Release{
		ArtistKo:    "뉴진스",
		ArtistEn:    "NewJeans",
		AlbumKo:     "겟업",
		AlbumEn:     "Get Up",
		CatalogCode: "CAT-001",
		ReleaseDate: "2023-07-21",
	}
}

func foundLink(key string) resolver.ResolvedLink {
	return resolver.ResolvedLink{
		Category:     resolver.CategoryDomestic,
		PlatformKey:  key,
		PlatformName: key,
		ListingURL:   "https://example.com/" + key,
		AlbumID:      "1",
		Found:        true,
		MatchNote:    resolver.MatchExact,
	}
}

func TestApplyInsertsAndLists(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	release := testsupport.NewRelease(t, store, testRelease())

	written, err := store.Apply(context.Background(), release.Identity(), []resolver.ResolvedLink{
		foundLink("melon"),
		resolver.NotFound(resolver.CategoryDomestic, "genie", "지니뮤직"),
	}, "https://example.com/cover.jpg")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if written != 2 {
		t.Fatalf("expected 2 rows written, got %d", written)
	}

	stored, err := store.ListByRelease(context.Background(), release.Identity())
	if err != nil {
		t.Fatalf("ListByRelease: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 links, got %d", len(stored))
	}

	got, ok, err := store.GetRelease(context.Background(), release.Identity())
	if err != nil || !ok {
		t.Fatalf("GetRelease: ok=%v err=%v", ok, err)
	}
	if got.CoverURL != "https://example.com/cover.jpg" {
		t.Fatalf("release cover not persisted, got %q", got.CoverURL)
	}
}

func TestApplyNeverDemotesFoundLink(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	release := testsupport.NewRelease(t, store, testRelease())
	identity := release.Identity()

	if _, err := store.Apply(context.Background(), identity, []resolver.ResolvedLink{foundLink("melon")}, ""); err != nil {
		t.Fatalf("Apply found: %v", err)
	}

	written, err := store.Apply(context.Background(), identity, []resolver.ResolvedLink{
		resolver.NotFound(resolver.CategoryDomestic, "melon", "멜론"),
	}, "")
	if err != nil {
		t.Fatalf("Apply not-found: %v", err)
	}
	if written != 0 {
		t.Fatalf("not-found over found must write nothing, wrote %d", written)
	}

	stored, err := store.ListByRelease(context.Background(), identity)
	if err != nil {
		t.Fatalf("ListByRelease: %v", err)
	}
	if len(stored) != 1 || !stored[0].Found {
		t.Fatalf("stored link was demoted: %+v", stored)
	}
	if stored[0].ListingURL != "https://example.com/melon" {
		t.Fatalf("listing URL lost: %q", stored[0].ListingURL)
	}
}

func TestApplyFoundOverwritesNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	release := testsupport.NewRelease(t, store, testRelease())
	identity := release.Identity()

	if _, err := store.Apply(context.Background(), identity, []resolver.ResolvedLink{
		resolver.NotFound(resolver.CategoryDomestic, "melon", "멜론"),
	}, ""); err != nil {
		t.Fatalf("Apply not-found: %v", err)
	}

	written, err := store.Apply(context.Background(), identity, []resolver.ResolvedLink{foundLink("melon")}, "")
	if err != nil {
		t.Fatalf("Apply found: %v", err)
	}
	if written != 1 {
		t.Fatalf("found over not-found must write, wrote %d", written)
	}

	stored, err := store.ListFiltered(context.Background(), identity, links.Filter{OnlyFound: true})
	if err != nil {
		t.Fatalf("ListFiltered: %v", err)
	}
	if len(stored) != 1 || stored[0].PlatformKey != "melon" {
		t.Fatalf("expected the found melon link, got %+v", stored)
	}
}

func TestListUncollected(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	fresh := testsupport.NewRelease(t, store, testRelease())
	partial := testsupport.NewRelease(t, store, links.Release{
		ArtistKo: "아이유", AlbumKo: "조각집", ArtistEn: "IU", AlbumEn: "Pieces",
	})
	done := testsupport.NewRelease(t, store, links.Release{
		ArtistKo: "태연", AlbumKo: "투엑스", ArtistEn: "TAEYEON", AlbumEn: "To. X",
	})

	ctx := context.Background()
	if _, err := store.Apply(ctx, partial.Identity(), []resolver.ResolvedLink{
		foundLink("melon"),
		resolver.NotFound(resolver.CategoryDomestic, "genie", "지니뮤직"),
	}, ""); err != nil {
		t.Fatalf("Apply partial: %v", err)
	}
	if _, err := store.Apply(ctx, done.Identity(), []resolver.ResolvedLink{
		foundLink("melon"), foundLink("genie"),
	}, ""); err != nil {
		t.Fatalf("Apply done: %v", err)
	}

	uncollected, err := store.ListUncollected(ctx)
	if err != nil {
		t.Fatalf("ListUncollected: %v", err)
	}
	if len(uncollected) != 2 {
		t.Fatalf("expected 2 uncollected releases, got %d", len(uncollected))
	}
	if uncollected[0].ID != fresh.ID || uncollected[1].ID != partial.ID {
		t.Fatalf("unexpected uncollected set: %+v", uncollected)
	}
}

func TestAddReleaseUpsertsByName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	first := testsupport.NewRelease(t, store, testRelease())
	updated := testRelease()
	updated.CatalogCode = "CAT-002"
	if _, err := store.AddRelease(context.Background(), updated); err != nil {
		t.Fatalf("AddRelease update: %v", err)
	}

	all, err := store.ListReleases(context.Background())
	if err != nil {
		t.Fatalf("ListReleases: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected a single release row, got %d", len(all))
	}
	if all[0].ID != first.ID || all[0].CatalogCode != "CAT-002" {
		t.Fatalf("upsert did not update in place: %+v", all[0])
	}
}
