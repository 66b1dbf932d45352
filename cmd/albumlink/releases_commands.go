package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"albumlink/internal/links"
)

func newReleasesCommand(ctx *commandContext) *cobra.Command {
	releasesCmd := &cobra.Command{
		Use:   "releases",
		Short: "Manage the release worklist",
	}
	releasesCmd.AddCommand(newReleasesAddCommand(ctx))
	releasesCmd.AddCommand(newReleasesListCommand(ctx))
	return releasesCmd
}

func newReleasesAddCommand(ctx *commandContext) *cobra.Command {
	var (
		artist   string
		album    string
		artistEn string
		albumEn  string
		catalog  string
		date     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a release to the worklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			release := links.Release{
				ArtistKo:    strings.TrimSpace(artist),
				ArtistEn:    strings.TrimSpace(artistEn),
				AlbumKo:     strings.TrimSpace(album),
				AlbumEn:     strings.TrimSpace(albumEn),
				CatalogCode: strings.TrimSpace(catalog),
				ReleaseDate: strings.TrimSpace(date),
			}
			if release.ArtistKo == "" || release.AlbumKo == "" {
				return fmt.Errorf("artist and album are required")
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.AddRelease(cmd.Context(), release)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added release #%d: %s\n", id, release.Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&artist, "artist", "", "Artist name (domestic)")
	cmd.Flags().StringVar(&album, "album", "", "Album title (domestic)")
	cmd.Flags().StringVar(&artistEn, "artist-en", "", "Artist name (latin)")
	cmd.Flags().StringVar(&albumEn, "album-en", "", "Album title (latin)")
	cmd.Flags().StringVar(&catalog, "catalog", "", "Catalog code")
	cmd.Flags().StringVar(&date, "date", "", "Release date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("artist")
	_ = cmd.MarkFlagRequired("album")
	return cmd
}

func newReleasesListCommand(ctx *commandContext) *cobra.Command {
	var uncollected bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List worklist releases",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var releases []links.Release
			if uncollected {
				releases, err = store.ListUncollected(cmd.Context())
			} else {
				releases, err = store.ListReleases(cmd.Context())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(releases) == 0 {
				fmt.Fprintln(out, "No releases")
				return nil
			}

			rows := make([][]string, 0, len(releases))
			for _, release := range releases {
				rows = append(rows, []string{
					fmt.Sprintf("%d", release.ID),
					release.ArtistKo,
					release.AlbumKo,
					release.CatalogCode,
					release.ReleaseDate,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Artist", "Album", "Catalog", "Released"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&uncollected, "uncollected", false, "Show only releases still needing a resolution pass")
	return cmd
}
