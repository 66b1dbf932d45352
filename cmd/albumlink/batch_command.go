package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"albumlink/internal/links"
	"albumlink/internal/orchestrator"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Resolve every uncollected release in the worklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// The aggregator session is one shared browser tab; a second
			// batch run would corrupt its page state mid-search.
			lock := flock.New(filepath.Join(cfg.Paths.DataDir, "albumlink.lock"))
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !ok {
				return errors.New("another albumlink batch is already running")
			}
			defer func() {
				_ = lock.Unlock()
			}()

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var releases []links.Release
			if all {
				releases, err = store.ListReleases(cmd.Context())
			} else {
				releases, err = store.ListUncollected(cmd.Context())
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(releases) == 0 {
				fmt.Fprintln(out, "Nothing to collect")
				return nil
			}

			orch, cleanup, err := ctx.newOrchestrator()
			if err != nil {
				return err
			}
			defer cleanup()

			summary, runErr := orch.ResolveAll(cmd.Context(), store, releases,
				func(index, total int, release links.Release, outcome orchestrator.Outcome) {
					if outcome.Err != nil {
						fmt.Fprintf(out, "[%d/%d] %s: error: %v\n", index+1, total, release.Label(), outcome.Err)
						return
					}
					fmt.Fprintf(out, "[%d/%d] %s: %d domestic, %d global, %d written\n",
						index+1, total, release.Label(),
						outcome.Result.DomesticFound, outcome.Result.GlobalFound, outcome.Written)
				})

			printSummary(out, summary)
			return runErr
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Re-resolve every release, not only uncollected ones")
	return cmd
}

func printSummary(out io.Writer, summary orchestrator.Summary) {
	fmt.Fprintf(out, "\nResolved %d/%d release(s), %d link(s) written (%d domestic, %d global found)\n",
		summary.Resolved, summary.Releases, summary.LinksWritten,
		summary.DomesticFound, summary.GlobalFound)
	if len(summary.Failures) == 0 {
		return
	}
	labels := make([]string, 0, len(summary.Failures))
	for label := range summary.Failures {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	fmt.Fprintln(out, "Aggregator failures:")
	for _, label := range labels {
		fmt.Fprintf(out, "  %s: %d\n", label, summary.Failures[label])
	}
}
