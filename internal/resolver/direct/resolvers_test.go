package direct

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"albumlink/internal/resolver"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	noop := func(ctx context.Context, d time.Duration) error { return nil }
	return NewClient("albumlink-test", time.Second, time.Millisecond, WithSleeper(noop))
}

func testQuery() resolver.ReleaseQuery {
	return resolver.ReleaseQuery{ArtistPrimary: "NewJeans", AlbumTitle: "Get Up"}
}

// pad grows an HTML body past the blocked-response floor.
func pad(body string) string {
	return body + strings.Repeat("<!-- pad -->", htmlMinBody/12+1)
}

func TestMelonResolvesFromDetailCallSite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "NewJeans Get Up" {
			t.Errorf("unexpected query term: %q", got)
		}
		w.Write([]byte(pad(`<a href="#" onclick="goAlbumDetail('123456')">NewJeans Get Up</a>`)))
	}))
	defer server.Close()

	link := NewMelon(testClient(t), server.URL).Resolve(context.Background(), testQuery())
	if !link.Found {
		t.Fatalf("expected a found link")
	}
	if link.AlbumID != "123456" {
		t.Fatalf("unexpected album id: %s", link.AlbumID)
	}
	if link.ListingURL != "https://www.melon.com/album/detail.htm?albumId=123456" {
		t.Fatalf("unexpected listing URL: %s", link.ListingURL)
	}
	if link.Category != resolver.CategoryDomestic || link.PlatformKey != "melon" {
		t.Fatalf("unexpected platform identity: %s/%s", link.Category, link.PlatformKey)
	}
}

func TestMelonFallsBackToQueryParameterPattern(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pad(`<a href="/album/detail.htm?albumId=987">release</a>`)))
	}))
	defer server.Close()

	link := NewMelon(testClient(t), server.URL).Resolve(context.Background(), testQuery())
	if !link.Found || link.AlbumID != "987" {
		t.Fatalf("expected fallback pattern match, got found=%v id=%s", link.Found, link.AlbumID)
	}
}

func TestMelonRejectsShortBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`goAlbumDetail('123')`))
	}))
	defer server.Close()

	link := NewMelon(testClient(t), server.URL).Resolve(context.Background(), testQuery())
	if link.Found {
		t.Fatalf("short body must not produce a link")
	}
}

func TestMelonAbsorbsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer server.Close()

	link := NewMelon(testClient(t), server.URL).Resolve(context.Background(), testQuery())
	if link.Found {
		t.Fatalf("non-200 must not produce a link")
	}
	if link.PlatformName == "" {
		t.Fatalf("not-found link must keep platform identity")
	}
}

func TestGeniePicksOccurrenceWithBothTerms(t *testing.T) {
	page := `<div class="row">fnViewAlbumLayer('111') Other Artist</div>` +
		strings.Repeat(" ", contextWindow*2) +
		`<div class="row">fnViewAlbumLayer('222') NewJeans Get Up</div>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pad(page)))
	}))
	defer server.Close()

	link := NewGenie(testClient(t), server.URL).Resolve(context.Background(), testQuery())
	if !link.Found || link.AlbumID != "222" {
		t.Fatalf("expected exact occurrence 222, got found=%v id=%s", link.Found, link.AlbumID)
	}
	if link.MatchNote != resolver.MatchExact {
		t.Fatalf("expected exact note, got %s", link.MatchNote)
	}
	if link.ListingURL != "https://www.genie.co.kr/detail/albumInfo?axnm=222" {
		t.Fatalf("unexpected listing URL: %s", link.ListingURL)
	}
}

func TestBugsResolvesFromAlbumPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pad(`<a href="/album/4067880">NewJeans Get Up</a>`)))
	}))
	defer server.Close()

	link := NewBugs(testClient(t), server.URL).Resolve(context.Background(), testQuery())
	if !link.Found || link.AlbumID != "4067880" {
		t.Fatalf("expected album 4067880, got found=%v id=%s", link.Found, link.AlbumID)
	}
	if link.ListingURL != "https://music.bugs.co.kr/album/4067880" {
		t.Fatalf("unexpected listing URL: %s", link.ListingURL)
	}
}

func TestVibePrefersTrackResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Referer") != "https://vibe.naver.com/" {
			t.Errorf("missing VIBE referer, got %q", r.Header.Get("Referer"))
		}
		w.Write([]byte(`{"response":{"result":{
			"trackResult":{"tracks":[{"album":{"albumId":55}}]},
			"albumResult":{"albums":[{"albumId":99}]}}}}`))
	}))
	defer server.Close()

	link := NewVibe(testClient(t), server.URL).Resolve(context.Background(), testQuery())
	if !link.Found || link.AlbumID != "55" {
		t.Fatalf("expected track-derived album 55, got found=%v id=%s", link.Found, link.AlbumID)
	}
	if link.ListingURL != "https://vibe.naver.com/album/55" {
		t.Fatalf("unexpected listing URL: %s", link.ListingURL)
	}
}

func TestVibeFallsBackToAlbumResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"result":{"albumResult":{"albums":[{"albumId":"99"}]}}}}`))
	}))
	defer server.Close()

	link := NewVibe(testClient(t), server.URL).Resolve(context.Background(), testQuery())
	if !link.Found || link.AlbumID != "99" {
		t.Fatalf("expected album-section fallback 99, got found=%v id=%s", link.Found, link.AlbumID)
	}
}

func TestVibeRejectsInvalidIdentifier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"result":{"albumResult":{"albums":[{"albumId":"0"}]}}}}`))
	}))
	defer server.Close()

	link := NewVibe(testClient(t), server.URL).Resolve(context.Background(), testQuery())
	if link.Found {
		t.Fatalf("non-positive id must not produce a link")
	}
}

func TestFloSkipsNonAlbumSections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("searchType"); got != "ALBUM" {
			t.Errorf("unexpected search type: %q", got)
		}
		w.Write([]byte(`{"data":{"list":[
			{"type":"TRACK","list":[{"id":1}]},
			{"type":"ALBUM","list":[{"id":777}]}]}}`))
	}))
	defer server.Close()

	link := NewFlo(testClient(t), server.URL).Resolve(context.Background(), testQuery())
	if !link.Found || link.AlbumID != "777" {
		t.Fatalf("expected album section id 777, got found=%v id=%s", link.Found, link.AlbumID)
	}
	if link.ListingURL != "https://www.music-flo.com/detail/album/777" {
		t.Fatalf("unexpected listing URL: %s", link.ListingURL)
	}
}

func TestFloHandlesMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	link := NewFlo(testClient(t), server.URL).Resolve(context.Background(), testQuery())
	if link.Found {
		t.Fatalf("malformed payload must not produce a link")
	}
}

func TestRegistryCoversAllDomesticPlatforms(t *testing.T) {
	keys := make([]string, 0, 5)
	for _, r := range Registry(testClient(t)) {
		keys = append(keys, r.Key())
	}
	want := []string{"melon", "genie", "bugs", "vibe", "flo"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d resolvers, got %d", len(want), len(keys))
	}
	for i, key := range want {
		if keys[i] != key {
			t.Fatalf("resolver %d: expected %s, got %s", i, key, keys[i])
		}
	}
}
