package main

import (
	"context"
	"fmt"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/tilepath/levels"
)

type checkResult struct {
	level   string
	points  int
	edges   int
	elapsed time.Duration
	err     error
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [LEVEL...]",
		Short: "Validate levels and build their graphs concurrently (default: every embedded level)",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = levels.Names()
			}
			results, err := checkLevels(cmd.Context(), opts, names)
			if err != nil {
				return err
			}

			failed := 0
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, r := range results {
				if r.err != nil {
					failed++
					fmt.Fprintf(tw, "FAIL\t%s\t%v\n", r.level, r.err)
					continue
				}
				fmt.Fprintf(tw, "ok\t%s\t%d points\t%d edges\t%s\n", r.level, r.points, r.edges, r.elapsed.Round(time.Microsecond))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d levels failed", failed, len(results))
			}
			return nil
		},
	}
}

// checkLevels builds every level on its own goroutine. A bad level is a
// result, not an error; only cancellation stops the run.
func checkLevels(ctx context.Context, opts *rootOptions, names []string) ([]checkResult, error) {
	results := make([]checkResult, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			began := time.Now()
			l, err := opts.load(name)
			results[i] = checkResult{level: name, elapsed: time.Since(began), err: err}
			if err == nil {
				results[i].points = l.stats.Points
				results[i].edges = l.stats.Edges
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
