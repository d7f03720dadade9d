package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Elpulgo/azdo-buildstats/internal/buildstats"
)

// queryFlags override the query settings from the config.
type queryFlags struct {
	days        int
	runs        int
	project     string
	definitions []string
}

func (q *queryFlags) addDays(fs *pflag.FlagSet) {
	fs.IntVar(&q.days, "days", 0, "Days back to look at; defaults to max_days from the config")
}

func (q *queryFlags) addRuns(fs *pflag.FlagSet) {
	fs.IntVar(&q.runs, "runs", 0, "Older runs to show per definition; defaults to max_runs from the config")
}

func (q *queryFlags) addScope(fs *pflag.FlagSet) {
	fs.StringVarP(&q.project, "project", "p", "", "Team project, or * for every configured project")
	fs.StringSliceVarP(&q.definitions, "definition", "d", nil, "Build definition to include (repeatable); defaults to the config definitions")
}

// options merges the flags that were set over the config values.
func (q *queryFlags) options(cmd *cobra.Command, e *env) buildstats.QueryOptions {
	opts := buildstats.QueryOptions{
		MaxDaysBack: e.cfg.MaxDays,
		MaxRuns:     e.cfg.MaxRuns,
		TeamProject: e.cfg.GetTeamProject(),
		Definitions: e.cfg.Definitions,
	}

	flags := cmd.Flags()
	if flags.Changed("days") {
		opts.MaxDaysBack = q.days
	}
	if flags.Changed("runs") {
		opts.MaxRuns = q.runs
	}
	if flags.Changed("project") {
		opts.TeamProject = q.project
	}
	if flags.Changed("definition") {
		opts.Definitions = q.definitions
	}
	return opts
}

func newReportCmd(deps Deps, global *globalOptions) *cobra.Command {
	var q queryFlags
	var latest bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show recent builds grouped per definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := global.setup(deps)
			if err != nil {
				return err
			}
			r, err := global.renderer(e)
			if err != nil {
				return err
			}
			opts := q.options(cmd, e)
			if latest && len(opts.Definitions) == 0 {
				return fmt.Errorf("--latest needs at least one definition; pass --definition or set definitions in the config")
			}

			svc, err := e.service(nil)
			if err != nil {
				return err
			}

			var report buildstats.BuildStatusReport
			if latest {
				report, err = svc.LatestPerDefinition(cmd.Context(), opts)
			} else {
				report, err = svc.BuildInformation(cmd.Context(), opts)
			}
			if err != nil {
				return err
			}
			return r.Report(report)
		},
	}

	q.addDays(cmd.Flags())
	q.addRuns(cmd.Flags())
	q.addScope(cmd.Flags())
	cmd.Flags().BoolVar(&latest, "latest", false, "Show only the latest build of each configured definition")
	return cmd
}

func newStatsCmd(deps Deps, global *globalOptions) *cobra.Command {
	var q queryFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count builds and failures over the last 24 hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := global.setup(deps)
			if err != nil {
				return err
			}
			r, err := global.renderer(e)
			if err != nil {
				return err
			}
			opts := q.options(cmd, e)

			svc, err := e.service(nil)
			if err != nil {
				return err
			}
			stats, err := svc.RawBuildStats(cmd.Context(), opts.TeamProject, opts.Definitions)
			if err != nil {
				return err
			}
			return r.Stats(stats)
		},
	}

	q.addScope(cmd.Flags())
	return cmd
}

func newDowntimeCmd(deps Deps, global *globalOptions) *cobra.Command {
	var q queryFlags

	cmd := &cobra.Command{
		Use:   "downtime",
		Short: "Estimate minutes spent failing for the configured definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := global.setup(deps)
			if err != nil {
				return err
			}
			r, err := global.renderer(e)
			if err != nil {
				return err
			}
			opts := q.options(cmd, e)
			if len(opts.Definitions) == 0 {
				return fmt.Errorf("downtime needs at least one definition; pass --definition or set definitions in the config")
			}

			svc, err := e.service(nil)
			if err != nil {
				return err
			}
			minutes, err := svc.Downtime(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return r.Downtime(minutes)
		},
	}

	q.addDays(cmd.Flags())
	q.addScope(cmd.Flags())
	return cmd
}
