package links

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const releaseColumns = "id, artist_ko, artist_en, album_ko, album_en, catalog_code, release_date, cover_url, created_at"

// AddRelease inserts a worklist entry, updating the auxiliary fields when the
// artist/album pair already exists.
func (s *Store) AddRelease(ctx context.Context, release Release) (int64, error) {
	ctx = ensureContext(ctx)
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO releases (artist_ko, artist_en, album_ko, album_en, catalog_code, release_date, cover_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (artist_ko, album_ko) DO UPDATE SET
			artist_en = excluded.artist_en,
			album_en = excluded.album_en,
			catalog_code = excluded.catalog_code,
			release_date = excluded.release_date`,
		release.ArtistKo, release.ArtistEn, release.AlbumKo, release.AlbumEn,
		release.CatalogCode, release.ReleaseDate, release.CoverURL, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert release: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("release id: %w", err)
	}
	return id, nil
}

// ListReleases returns the full worklist in insertion order.
func (s *Store) ListReleases(ctx context.Context) ([]Release, error) {
	return s.queryReleases(ctx, `SELECT `+releaseColumns+` FROM releases ORDER BY id`)
}

// ListUncollected returns releases still needing a resolution pass: those
// with no stored links at all, or with at least one not-found link that a
// retry might fill in.
func (s *Store) ListUncollected(ctx context.Context) ([]Release, error) {
	return s.queryReleases(ctx, `
		SELECT `+releaseColumns+` FROM releases r
		WHERE NOT EXISTS (
			SELECT 1 FROM platform_links pl
			WHERE pl.artist_ko = r.artist_ko AND pl.album_ko = r.album_ko
		)
		OR EXISTS (
			SELECT 1 FROM platform_links pl
			WHERE pl.artist_ko = r.artist_ko AND pl.album_ko = r.album_ko AND pl.found = 0
		)
		ORDER BY r.id`)
}

// GetRelease looks a worklist entry up by its domestic names.
func (s *Store) GetRelease(ctx context.Context, identity Identity) (Release, bool, error) {
	releases, err := s.queryReleases(ctx,
		`SELECT `+releaseColumns+` FROM releases WHERE artist_ko = ? AND album_ko = ?`,
		identity.ArtistKo, identity.AlbumKo)
	if err != nil {
		return Release{}, false, err
	}
	if len(releases) == 0 {
		return Release{}, false, nil
	}
	return releases[0], true, nil
}

func (s *Store) queryReleases(ctx context.Context, query string, args ...any) ([]Release, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query releases: %w", err)
	}
	defer rows.Close()

	var releases []Release
	for rows.Next() {
		release, err := scanRelease(rows)
		if err != nil {
			return nil, err
		}
		releases = append(releases, release)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate releases: %w", err)
	}
	return releases, nil
}

func scanRelease(rows *sql.Rows) (Release, error) {
	var release Release
	var createdAt string
	if err := rows.Scan(
		&release.ID, &release.ArtistKo, &release.ArtistEn,
		&release.AlbumKo, &release.AlbumEn, &release.CatalogCode,
		&release.ReleaseDate, &release.CoverURL, &createdAt,
	); err != nil {
		return Release{}, fmt.Errorf("scan release: %w", err)
	}
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		release.CreatedAt = parsed
	}
	return release, nil
}
