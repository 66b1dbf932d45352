package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"albumlink/internal/links"
	"albumlink/internal/resolver"
)

func newLinksCommand(ctx *commandContext) *cobra.Command {
	linksCmd := &cobra.Command{
		Use:   "links",
		Short: "Inspect stored platform links",
	}
	linksCmd.AddCommand(newLinksShowCommand(ctx))
	return linksCmd
}

func newLinksShowCommand(ctx *commandContext) *cobra.Command {
	var (
		artist    string
		album     string
		category  string
		onlyFound bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show stored links for a release",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			identity := links.Identity{
				ArtistKo: strings.TrimSpace(artist),
				AlbumKo:  strings.TrimSpace(album),
			}
			filter := links.Filter{OnlyFound: onlyFound}
			switch strings.TrimSpace(category) {
			case "":
			case string(resolver.CategoryDomestic):
				filter.Category = resolver.CategoryDomestic
			case string(resolver.CategoryGlobal):
				filter.Category = resolver.CategoryGlobal
			default:
				return fmt.Errorf("unknown category %q (expected %q or %q)",
					category, resolver.CategoryDomestic, resolver.CategoryGlobal)
			}

			stored, err := store.ListFiltered(cmd.Context(), identity, filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(stored) == 0 {
				fmt.Fprintln(out, "No links stored for this release")
				return nil
			}

			tty := isTerminal(out)
			rows := make([][]string, 0, len(stored))
			for _, link := range stored {
				rows = append(rows, []string{
					string(link.Category),
					link.PlatformName,
					foundMark(link.Found, tty),
					link.MatchNote,
					link.ListingURL,
					link.UpdatedAt.Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Category", "Platform", "Found", "Match", "URL", "Updated"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&artist, "artist", "", "Artist name (domestic)")
	cmd.Flags().StringVar(&album, "album", "", "Album title (domestic)")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category (kr or global)")
	cmd.Flags().BoolVar(&onlyFound, "found", false, "Show only found links")
	_ = cmd.MarkFlagRequired("artist")
	_ = cmd.MarkFlagRequired("album")
	return cmd
}
