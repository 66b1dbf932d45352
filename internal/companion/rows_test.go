package companion

import (
	"testing"

	"albumlink/internal/resolver"
)

func TestMatchCatalogCell(t *testing.T) {
	cases := []struct {
		cell string
		code string
		want bool
	}{
		{"CAT-001", "CAT-001", true},
		{"8809440338696 / CAT-001", "CAT-001", true},
		{"8809440338696/CAT-001", "CAT-001", true},
		{"CAT-0012", "CAT-001", false},
		{"8809440338696 / CAT-0012", "CAT-001", false},
		{"", "CAT-001", false},
		{"CAT-001", "", false},
		{"  CAT-001  ", "CAT-001", true},
	}
	for _, tc := range cases {
		if got := matchCatalogCell(tc.cell, tc.code); got != tc.want {
			t.Fatalf("matchCatalogCell(%q, %q) = %v, want %v", tc.cell, tc.code, got, tc.want)
		}
	}
}

func TestFindByCatalogCodeReturnsFirstExactRow(t *testing.T) {
	rows := []catalogRow{
		{Cells: []string{"1", "Other", "Artist", "CAT-999"}, Link: "https://companion.global/catalog/platform/1"},
		{Cells: []string{"2", "Get Up", "NewJeans", "8809 / CAT-001"}, Link: "https://companion.global/catalog/platform/2"},
	}
	row, ok := findByCatalogCode(rows, "CAT-001")
	if !ok {
		t.Fatalf("expected a match")
	}
	if row.Link != "https://companion.global/catalog/platform/2" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestFindByCatalogCodeIgnoresShortRows(t *testing.T) {
	rows := []catalogRow{{Cells: []string{"only", "three", "cells"}}}
	if _, ok := findByCatalogCode(rows, "CAT-001"); ok {
		t.Fatalf("rows without a catalog column must not match")
	}
}

func TestFindByTitleMatchesNormalizedCells(t *testing.T) {
	rows := []catalogRow{
		{Cells: []string{"1", "Other Album", "Other Artist", "X"}},
		{Cells: []string{"2", "[Get-Up]", "NEW JEANS", "Y"}, Link: "link-2"},
	}
	query := resolver.ReleaseQuery{ArtistPrimary: "NewJeans", AlbumTitle: "Get Up"}
	row, ok := findByTitle(rows, query)
	if !ok || row.Link != "link-2" {
		t.Fatalf("expected normalized row match, got %v (ok=%v)", row, ok)
	}
}

func TestFindByTitleUsesAlternateNames(t *testing.T) {
	rows := []catalogRow{
		{Cells: []string{"1", "겟업", "뉴진스", "X"}, Link: "link-ko"},
	}
	query := resolver.ReleaseQuery{
		ArtistPrimary: "NewJeans",
		AlbumTitle:    "Get Up",
		ArtistAlt:     "뉴진스",
		AlbumAlt:      "겟업",
	}
	row, ok := findByTitle(rows, query)
	if !ok || row.Link != "link-ko" {
		t.Fatalf("expected alternate-name match, got %v (ok=%v)", row, ok)
	}
}

func TestFindByAlbumOnly(t *testing.T) {
	rows := []catalogRow{
		{Cells: []string{"1", "OMG", "NewJeans", "X"}},
		{Cells: []string{"2", "Get Up", "NewJeans", "Y"}, Link: "link-2"},
	}
	query := resolver.ReleaseQuery{ArtistPrimary: "NewJeans", AlbumTitle: "Get Up"}
	row, ok := findByAlbumOnly(rows, query)
	if !ok || row.Link != "link-2" {
		t.Fatalf("expected album-only match, got %v (ok=%v)", row, ok)
	}
}

func TestFindByTitleNoMatch(t *testing.T) {
	rows := []catalogRow{{Cells: []string{"1", "Unrelated", "Someone", "X"}}}
	query := resolver.ReleaseQuery{ArtistPrimary: "NewJeans", AlbumTitle: "Get Up"}
	if _, ok := findByTitle(rows, query); ok {
		t.Fatalf("unrelated rows must not match")
	}
}
