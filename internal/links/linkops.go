package links

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"albumlink/internal/resolver"
)

const linkColumns = "id, artist_ko, album_ko, category, platform_key, platform_name, listing_url, album_id, cover_url, match_note, found, created_at, updated_at"

// Apply stores a resolution attempt's links for the release. Writes are
// monotonic per platform: a new row is always inserted, a found result
// always overwrites, and a not-found result never displaces a stored found
// one. Returns the number of rows actually written.
func (s *Store) Apply(ctx context.Context, identity Identity, incoming []resolver.ResolvedLink, coverURL string) (int, error) {
	ctx = ensureContext(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin apply tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC().Format(time.RFC3339)
	written := 0
	for _, link := range incoming {
		found := 0
		if link.Found {
			found = 1
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO platform_links (artist_ko, album_ko, category, platform_key, platform_name,
				listing_url, album_id, cover_url, match_note, found, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (artist_ko, album_ko, category, platform_key) DO UPDATE SET
				platform_name = excluded.platform_name,
				listing_url = excluded.listing_url,
				album_id = excluded.album_id,
				cover_url = excluded.cover_url,
				match_note = excluded.match_note,
				found = excluded.found,
				updated_at = excluded.updated_at
			WHERE excluded.found = 1 OR platform_links.found = 0`,
			identity.ArtistKo, identity.AlbumKo, string(link.Category), link.PlatformKey,
			link.PlatformName, link.ListingURL, link.AlbumID, coverURL,
			string(link.MatchNote), found, now, now,
		)
		if err != nil {
			return 0, fmt.Errorf("upsert link %s/%s: %w", link.Category, link.PlatformKey, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		written += int(affected)
	}

	if coverURL != "" {
		if _, err := tx.ExecContext(ctx,
			`UPDATE releases SET cover_url = ? WHERE artist_ko = ? AND album_ko = ?`,
			coverURL, identity.ArtistKo, identity.AlbumKo,
		); err != nil {
			return 0, fmt.Errorf("update release cover: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit apply: %w", err)
	}
	return written, nil
}

// ListByRelease returns every stored link for the release, domestic first,
// platforms in key order.
func (s *Store) ListByRelease(ctx context.Context, identity Identity) ([]PlatformLink, error) {
	return s.queryLinks(ctx, `
		SELECT `+linkColumns+` FROM platform_links
		WHERE artist_ko = ? AND album_ko = ?
		ORDER BY category DESC, platform_key`,
		identity.ArtistKo, identity.AlbumKo)
}

// ListFiltered narrows ListByRelease by category and found state.
func (s *Store) ListFiltered(ctx context.Context, identity Identity, filter Filter) ([]PlatformLink, error) {
	query := `SELECT ` + linkColumns + ` FROM platform_links WHERE artist_ko = ? AND album_ko = ?`
	args := []any{identity.ArtistKo, identity.AlbumKo}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(filter.Category))
	}
	if filter.OnlyFound {
		query += ` AND found = 1`
	}
	query += ` ORDER BY category DESC, platform_key`
	return s.queryLinks(ctx, query, args...)
}

func (s *Store) queryLinks(ctx context.Context, query string, args ...any) ([]PlatformLink, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	var result []PlatformLink
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return result, nil
}

func scanLink(rows *sql.Rows) (PlatformLink, error) {
	var link PlatformLink
	var category string
	var found int
	var createdAt, updatedAt string
	if err := rows.Scan(
		&link.ID, &link.ArtistKo, &link.AlbumKo, &category, &link.PlatformKey,
		&link.PlatformName, &link.ListingURL, &link.AlbumID, &link.CoverURL,
		&link.MatchNote, &found, &createdAt, &updatedAt,
	); err != nil {
		return PlatformLink{}, fmt.Errorf("scan link: %w", err)
	}
	link.Category = resolver.Category(category)
	link.Found = found == 1
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		link.CreatedAt = parsed
	}
	if parsed, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		link.UpdatedAt = parsed
	}
	return link, nil
}
