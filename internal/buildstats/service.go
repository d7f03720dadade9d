package buildstats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrInvalidQuery is returned when query options are out of range.
var ErrInvalidQuery = errors.New("invalid query")

// rawStatsWindow is the window RawBuildStats looks back over.
const rawStatsWindow = 24 * time.Hour

// QueryOptions are the caller-facing query parameters.
type QueryOptions struct {
	MaxDaysBack int
	MaxRuns     int
	TeamProject string
	Definitions []string
}

// Validate checks the options are within range.
func (o QueryOptions) Validate() error {
	if o.MaxDaysBack < 0 {
		return fmt.Errorf("%w: max days back must not be negative, got %d", ErrInvalidQuery, o.MaxDaysBack)
	}
	if o.MaxRuns < 0 {
		return fmt.Errorf("%w: max runs must not be negative, got %d", ErrInvalidQuery, o.MaxRuns)
	}
	return nil
}

func (o QueryOptions) teamProject() string {
	if o.TeamProject == "" {
		return AllProjects
	}
	return o.TeamProject
}

// Service queries a BuildSource and aggregates the results.
type Service struct {
	source BuildSource
	log    *logrus.Entry
	now    func() time.Time
}

// NewService creates a Service reading from source. A nil logger uses the
// standard logrus logger.
func NewService(source BuildSource, log *logrus.Entry) *Service {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{
		source: source,
		log:    log,
		now:    time.Now,
	}
}

// BuildInformation returns the report for builds finished in the last
// MaxDaysBack days, grouped per definition with up to MaxRuns older runs each.
func (s *Service) BuildInformation(ctx context.Context, opts QueryOptions) (BuildStatusReport, error) {
	if err := opts.Validate(); err != nil {
		return BuildStatusReport{}, err
	}

	records, err := s.query(ctx, s.window(opts.MaxDaysBack, opts.teamProject(), opts.Definitions, ByDefinition))
	if err != nil {
		return BuildStatusReport{}, fmt.Errorf("failed to get build information: %w", err)
	}

	report := GroupRuns(records, opts.MaxRuns)
	s.log.WithFields(logrus.Fields{
		"records":     len(records),
		"definitions": len(report.Projects),
	}).Debug("Grouped build records.")
	return report, nil
}

// LatestPerDefinition queries each definition in opts.Definitions separately
// and reports only its most recent build. Definitions without builds in the
// window are left out.
func (s *Service) LatestPerDefinition(ctx context.Context, opts QueryOptions) (BuildStatusReport, error) {
	if err := opts.Validate(); err != nil {
		return BuildStatusReport{}, err
	}

	report := BuildStatusReport{Projects: []ProjectRun{}}
	for _, definition := range opts.Definitions {
		q := s.window(opts.MaxDaysBack, opts.teamProject(), []string{definition}, ByDefinition)
		records, err := s.query(ctx, q)
		if err != nil {
			return BuildStatusReport{}, fmt.Errorf("failed to get builds for definition %q: %w", definition, err)
		}
		if len(records) == 0 {
			s.log.WithField("definition", definition).Debug("No builds found for definition.")
			continue
		}
		report.Projects = append(report.Projects, ProjectRun{Run: newRun(records[0]), Runs: []Run{}})
	}

	return report, nil
}

// RawBuildStats counts failures over the last day of builds in teamProject.
func (s *Service) RawBuildStats(ctx context.Context, teamProject string, configurations []string) (BuildStats, error) {
	opts := QueryOptions{TeamProject: teamProject}
	now := s.now()
	q := Query{
		MinFinishTime: now.Add(-rawStatsWindow),
		MaxFinishTime: now,
		TeamProject:   opts.teamProject(),
		Order:         ByDefinition,
	}

	records, err := s.query(ctx, q)
	if err != nil {
		return BuildStats{}, fmt.Errorf("failed to get raw build stats: %w", err)
	}

	return RawFailureRate(records, configurations), nil
}

// Downtime estimates outage minutes for opts.Definitions over the last
// MaxDaysBack days.
func (s *Service) Downtime(ctx context.Context, opts QueryOptions) (int, error) {
	if err := opts.Validate(); err != nil {
		return 0, err
	}

	records, err := s.query(ctx, s.window(opts.MaxDaysBack, opts.teamProject(), opts.Definitions, ByFinishTime))
	if err != nil {
		return 0, fmt.Errorf("failed to estimate downtime: %w", err)
	}

	return EstimateDowntime(records, opts.Definitions), nil
}

// Snapshot gathers the report, raw stats and downtime in one call.
func (s *Service) Snapshot(ctx context.Context, opts QueryOptions) (Snapshot, error) {
	report, err := s.BuildInformation(ctx, opts)
	if err != nil {
		return Snapshot{}, err
	}

	stats, err := s.RawBuildStats(ctx, opts.TeamProject, opts.Definitions)
	if err != nil {
		return Snapshot{}, err
	}

	downtime, err := s.Downtime(ctx, opts)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Report:          report,
		Stats:           stats,
		DowntimeMinutes: downtime,
		FetchedAt:       s.now(),
	}, nil
}

func (s *Service) window(days int, teamProject string, definitions []string, order Order) Query {
	now := s.now()
	return Query{
		MinFinishTime: now.AddDate(0, 0, -days),
		MaxFinishTime: now,
		TeamProject:   teamProject,
		Definitions:   definitions,
		Order:         order,
	}
}

func (s *Service) query(ctx context.Context, q Query) ([]BuildRecord, error) {
	log := s.log.WithFields(logrus.Fields{
		"project":     q.TeamProject,
		"definitions": q.Definitions,
		"from":        q.MinFinishTime.Format(time.RFC3339),
		"to":          q.MaxFinishTime.Format(time.RFC3339),
	})
	log.Debug("Querying builds.")

	records, err := s.source.QueryBuilds(ctx, q)
	if err != nil {
		log.WithError(err).Debug("Build query failed.")
		return nil, err
	}

	log.WithField("count", len(records)).Debug("Build query returned.")
	return records, nil
}
