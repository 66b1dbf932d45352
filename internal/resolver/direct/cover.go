package direct

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const bugsImageHost = "https://image.bugsm.co.kr"

// BugsCoverURL synthesizes the 500px cover image URL from a Bugs album id.
// The image path buckets albums by the first six digits of the id, so ids
// shorter than that cannot be mapped.
func BugsCoverURL(albumID string) string {
	if len(albumID) < 6 {
		return ""
	}
	return bugsImageHost + "/album/images/500/" + albumID[:6] + "/" + albumID + ".jpg"
}

// FetchBugsPageCover loads a Bugs album page and extracts the cover image
// URL, preferring the album art element over the og:image fallback. Returns
// an empty string when neither yields a usable URL.
func FetchBugsPageCover(ctx context.Context, client *Client, albumURL string) string {
	body, err := client.Get(ctx, albumURL, nil)
	if err != nil {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return ""
	}

	if src, ok := doc.Find(".albumImgArea img").First().Attr("src"); ok {
		if fixed := fixBugsImageURL(src); fixed != "" {
			return fixed
		}
	}
	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		return fixBugsImageURL(content)
	}
	return ""
}

// fixBugsImageURL repairs protocol-relative and host-relative image paths.
func fixBugsImageURL(raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "/"):
		return bugsImageHost + raw
	default:
		return raw
	}
}
