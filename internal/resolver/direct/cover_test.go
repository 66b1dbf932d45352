package direct

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBugsCoverURL(t *testing.T) {
	got := BugsCoverURL("4067880")
	want := "https://image.bugsm.co.kr/album/images/500/406788/4067880.jpg"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestBugsCoverURLRejectsShortID(t *testing.T) {
	if got := BugsCoverURL("12345"); got != "" {
		t.Fatalf("short id must not synthesize a URL, got %s", got)
	}
}

func TestFetchBugsPageCoverPrefersAlbumArt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:image" content="https://example.com/og.jpg">
		</head><body>
			<div class="albumImgArea"><img src="//image.bugsm.co.kr/album/images/500/406788/4067880.jpg"></div>
		</body></html>`))
	}))
	defer server.Close()

	got := FetchBugsPageCover(context.Background(), testClient(t), server.URL)
	want := "https://image.bugsm.co.kr/album/images/500/406788/4067880.jpg"
	if got != want {
		t.Fatalf("expected protocol-fixed album art %s, got %s", want, got)
	}
}

func TestFetchBugsPageCoverFallsBackToOpenGraph(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:image" content="/album/images/500/406788/4067880.jpg">
		</head><body><p>no art element</p></body></html>`))
	}))
	defer server.Close()

	got := FetchBugsPageCover(context.Background(), testClient(t), server.URL)
	want := "https://image.bugsm.co.kr/album/images/500/406788/4067880.jpg"
	if got != want {
		t.Fatalf("expected host-fixed og:image %s, got %s", want, got)
	}
}

func TestFetchBugsPageCoverAbsorbsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	if got := FetchBugsPageCover(context.Background(), testClient(t), server.URL); got != "" {
		t.Fatalf("fetch failure must yield empty cover, got %s", got)
	}
}
