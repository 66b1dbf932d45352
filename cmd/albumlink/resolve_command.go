package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"albumlink/internal/links"
	"albumlink/internal/orchestrator"
	"albumlink/internal/resolver"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var (
		artist   string
		album    string
		artistEn string
		albumEn  string
		catalog  string
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve one release's listing links across all platforms",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := resolver.ReleaseQuery{
				ArtistPrimary: strings.TrimSpace(artist),
				AlbumTitle:    strings.TrimSpace(album),
				ArtistAlt:     strings.TrimSpace(artistEn),
				AlbumAlt:      strings.TrimSpace(albumEn),
				CatalogCode:   strings.TrimSpace(catalog),
			}
			if err := query.Validate(); err != nil {
				return err
			}

			orch, cleanup, err := ctx.newOrchestrator()
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := orch.Resolve(cmd.Context(), query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printResult(out, result)

			if save {
				store, err := ctx.openStore()
				if err != nil {
					return err
				}
				defer store.Close()

				identity := links.Identity{ArtistKo: query.ArtistPrimary, AlbumKo: query.AlbumTitle}
				written, err := store.Apply(cmd.Context(), identity, result.Links(), result.CoverURL)
				if err != nil {
					return fmt.Errorf("persist links: %w", err)
				}
				fmt.Fprintf(out, "Saved %d link(s) to %s\n", written, store.Path())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&artist, "artist", "", "Artist name (domestic)")
	cmd.Flags().StringVar(&album, "album", "", "Album title (domestic)")
	cmd.Flags().StringVar(&artistEn, "artist-en", "", "Artist name (latin), used as a matching fallback")
	cmd.Flags().StringVar(&albumEn, "album-en", "", "Album title (latin), used as a matching fallback")
	cmd.Flags().StringVar(&catalog, "catalog", "", "Catalog code for exact aggregator matching")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the resolved links")
	_ = cmd.MarkFlagRequired("artist")
	_ = cmd.MarkFlagRequired("album")
	return cmd
}

func printResult(out io.Writer, result orchestrator.Result) {
	tty := isTerminal(out)
	rows := make([][]string, 0, len(result.Domestic)+len(result.Global))
	for _, link := range result.Links() {
		rows = append(rows, []string{
			string(link.Category),
			link.PlatformName,
			foundMark(link.Found, tty),
			string(link.MatchNote),
			link.ListingURL,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Category", "Platform", "Found", "Match", "URL"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	))
	fmt.Fprintf(out, "Domestic: %d found, Global: %d found\n", result.DomesticFound, result.GlobalFound)
	if result.CoverURL != "" {
		fmt.Fprintf(out, "Cover: %s\n", result.CoverURL)
	}
	if result.AggregatorFailure != "" {
		fmt.Fprintf(out, "Aggregator failure: %s\n", result.AggregatorFailure)
	}
}
