package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/tilepath/levels"
	"github.com/milk9111/tilepath/metrics"
	"github.com/milk9111/tilepath/sim"
)

type simOptions struct {
	ticks       int
	click       string
	clickAt     int
	hunt        bool
	metricsAddr string
}

func newSimCmd(opts *rootOptions) *cobra.Command {
	so := &simOptions{}
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run the level headless and print where the agents end up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())
			m := metrics.New(reg)

			s, err := opts.newSim(m)
			if err != nil {
				return err
			}
			if err := runSim(s, so); err != nil {
				return err
			}
			if err := printAgents(cmd, s); err != nil {
				return err
			}
			if so.metricsAddr == "" {
				return nil
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			fmt.Fprintf(cmd.ErrOrStderr(), "serving metrics on %s/metrics, interrupt to stop\n", so.metricsAddr)
			return serveMetrics(ctx, so.metricsAddr, reg)
		},
	}
	cmd.Flags().IntVar(&so.ticks, "ticks", 600, "fixed ticks to run")
	cmd.Flags().StringVar(&so.click, "click", "", "send the player to X,Y")
	cmd.Flags().IntVar(&so.clickAt, "click-at", 60, "tick on which --click is sent")
	cmd.Flags().BoolVar(&so.hunt, "hunt", false, "start the skeleton chasing the player")
	cmd.Flags().StringVar(&so.metricsAddr, "metrics-addr", "", "serve /metrics on this address after the run")
	return cmd
}

func (o *rootOptions) newSim(m *metrics.Metrics) (*sim.Sim, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	lvl, err := levels.Open(o.level)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", o.level, err)
	}
	return sim.New(lvl, sim.WithConfig(cfg), sim.WithLogger(o.logger), sim.WithMetrics(m))
}

func runSim(s *sim.Sim, so *simOptions) error {
	if so.ticks < 0 {
		return fmt.Errorf("--ticks must not be negative")
	}
	if so.hunt {
		s.ToggleHunt()
	}
	for tick := 0; tick < so.ticks; tick++ {
		if so.click != "" && tick == so.clickAt {
			goal, err := parseVec(so.click)
			if err != nil {
				return fmt.Errorf("--click: %w", err)
			}
			s.Click(goal)
		}
		s.Step()
	}
	return nil
}

func printAgents(cmd *cobra.Command, s *sim.Sim) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "AGENT\tPOSITION\tCELL\tGROUNDED\tTARGET\n")
	for _, a := range s.Agents() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", a.Kind, a.Position, s.Grid().LocalToMap(a.Position), a.Grounded, a.Target)
	}
	fmt.Fprintf(tw, "\n%d ticks\n", s.Ticks())
	return tw.Flush()
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	})
	return g.Wait()
}
