package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Elpulgo/azdo-buildstats/internal/app"
	"github.com/Elpulgo/azdo-buildstats/internal/buildstats"
	"github.com/Elpulgo/azdo-buildstats/internal/config"
	"github.com/Elpulgo/azdo-buildstats/internal/metrics"
	"github.com/Elpulgo/azdo-buildstats/internal/polling"
)

type watchOptions struct {
	queryFlags
	interval    time.Duration
	metricsAddr string
	logFile     string
	once        bool
}

func newWatchCmd(deps Deps, global *globalOptions) *cobra.Command {
	var o watchOptions

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh build status in a terminal UI",
		Long: `watch polls the build server every polling_interval seconds and shows the
report, the last day's failure counts and the estimated downtime.

Keys: r refresh, arrows to scroll, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, deps, global)
		},
	}

	o.addDays(cmd.Flags())
	o.addRuns(cmd.Flags())
	o.addScope(cmd.Flags())
	cmd.Flags().DurationVar(&o.interval, "interval", 0, "Polling interval; defaults to polling_interval from the config")
	cmd.Flags().StringVar(&o.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	cmd.Flags().StringVar(&o.logFile, "log-file", "", "Write logs to this file while the UI is running")
	cmd.Flags().BoolVar(&o.once, "once", false, "Fetch a single snapshot, print it with --output and exit")
	return cmd
}

func (o *watchOptions) run(cmd *cobra.Command, deps Deps, global *globalOptions) error {
	e, err := global.setup(deps)
	if err != nil {
		return err
	}
	if o.once {
		return o.runOnce(cmd, e, global)
	}

	// The UI owns the terminal, so logs go to a file or nowhere.
	logOut := io.Discard
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	e.log.Logger.SetOutput(logOut)

	interval := time.Duration(e.cfg.PollingInterval) * time.Second
	if cmd.Flags().Changed("interval") {
		interval = o.interval
	}

	var wrap func(buildstats.BuildSource) buildstats.BuildSource
	pollerOpts := []polling.Option{polling.WithLogger(e.log)}

	if o.metricsAddr != "" {
		m, err := metrics.New()
		if err != nil {
			return fmt.Errorf("failed to create metrics: %w", err)
		}
		wrap = m.Instrument
		pollerOpts = append(pollerOpts, polling.WithObserver(m.Observe))

		stop, err := serveMetrics(o.metricsAddr, m.Handler())
		if err != nil {
			return err
		}
		defer stop()
		e.log.WithField("addr", o.metricsAddr).Info("Serving metrics.")
	}

	svc, err := e.service(wrap)
	if err != nil {
		return err
	}

	queryOpts := o.options(cmd, e)
	poller := polling.NewPoller(svc, queryOpts, interval, pollerOpts...)
	model := app.NewModel(poller, app.Options{
		Organization:    e.cfg.Organization,
		TeamProject:     projectLabel(e.cfg, queryOpts.TeamProject),
		Styles:          e.styles,
		OnThemeSelected: e.cfg.UpdateTheme,
	})

	if _, err := deps.RunProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())); err != nil {
		return fmt.Errorf("TUI application error: %w", err)
	}
	return nil
}

// projectLabel names the projects a query covers. The wildcard is spelled out
// as the configured project list.
func projectLabel(cfg *config.Config, teamProject string) string {
	if teamProject != "" && teamProject != buildstats.AllProjects {
		return teamProject
	}
	if cfg.IsMultiProject() {
		return strings.Join(cfg.Projects, ", ")
	}
	if len(cfg.Projects) == 1 {
		return cfg.Projects[0]
	}
	return buildstats.AllProjects
}

func (o *watchOptions) runOnce(cmd *cobra.Command, e *env, global *globalOptions) error {
	r, err := global.renderer(e)
	if err != nil {
		return err
	}
	svc, err := e.service(nil)
	if err != nil {
		return err
	}
	snapshot, err := svc.Snapshot(cmd.Context(), o.options(cmd, e))
	if err != nil {
		return err
	}
	return r.Snapshot(snapshot)
}

// serveMetrics serves handler on /metrics at addr until the returned stop func is called.
func serveMetrics(addr string, handler http.Handler) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "metrics server: %v\n", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}, nil
}
