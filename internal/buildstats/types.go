// Package buildstats groups build results into a project/run tree and computes
// downtime and failure statistics over them.
package buildstats

import (
	"fmt"
	"strings"
	"time"
)

// Status is the terminal outcome of a build.
type Status int

const (
	StatusOther Status = iota
	StatusSucceeded
	StatusFailed
)

// String returns the lower-case name used in serialized output.
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "other"
	}
}

// ParseStatus maps a build server result string to a Status.
// Anything that is not a success or a failure is StatusOther.
func ParseStatus(result string) Status {
	switch strings.ToLower(result) {
	case "succeeded":
		return StatusSucceeded
	case "failed":
		return StatusFailed
	default:
		return StatusOther
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	*s = ParseStatus(string(text))
	return nil
}

// BuildRecord is one reported outcome of a build definition, as returned by a BuildSource.
type BuildRecord struct {
	DefinitionName string
	ProjectName    string
	Status         Status
	StartTime      time.Time
	FinishTime     time.Time
}

// Run is a build result attached to a report.
type Run struct {
	DefinitionName string    `json:"definitionName" yaml:"definitionName"`
	ProjectName    string    `json:"projectName" yaml:"projectName"`
	Status         Status    `json:"status" yaml:"status"`
	StartTime      time.Time `json:"startTime" yaml:"startTime"`
	FinishTime     time.Time `json:"finishTime" yaml:"finishTime"`
}

func newRun(r BuildRecord) Run {
	return Run{
		DefinitionName: r.DefinitionName,
		ProjectName:    r.ProjectName,
		Status:         r.Status,
		StartTime:      r.StartTime,
		FinishTime:     r.FinishTime,
	}
}

// Duration returns a human-readable duration for the run.
func (r Run) Duration() string {
	if r.StartTime.IsZero() || r.FinishTime.IsZero() || r.FinishTime.Before(r.StartTime) {
		return "-"
	}
	return formatDuration(r.FinishTime.Sub(r.StartTime))
}

// ProjectRun is a top-level report entry: the most recent run of a definition
// followed by older runs of the same definition. Child runs never have children.
type ProjectRun struct {
	Run  `yaml:",inline"`
	Runs []Run `json:"runs" yaml:"runs"`
}

// BuildStatusReport holds one ProjectRun per distinct definition name.
type BuildStatusReport struct {
	Projects []ProjectRun `json:"projects" yaml:"projects"`
}

// BuildStats are the failure counters produced by RawFailureRate.
type BuildStats struct {
	TotalBuilds          int `json:"totalBuilds" yaml:"totalBuilds"`
	TotalProjectFailures int `json:"totalProjectFailures" yaml:"totalProjectFailures"`
	TotalBuildFailures   int `json:"totalBuildFailures" yaml:"totalBuildFailures"`
}

// Add returns the sum of s and other.
func (s BuildStats) Add(other BuildStats) BuildStats {
	return BuildStats{
		TotalBuilds:          s.TotalBuilds + other.TotalBuilds,
		TotalProjectFailures: s.TotalProjectFailures + other.TotalProjectFailures,
		TotalBuildFailures:   s.TotalBuildFailures + other.TotalBuildFailures,
	}
}

// Snapshot bundles everything the watch view shows for one poll.
type Snapshot struct {
	Report          BuildStatusReport `json:"report" yaml:"report"`
	Stats           BuildStats        `json:"stats" yaml:"stats"`
	DowntimeMinutes int               `json:"downtimeMinutes" yaml:"downtimeMinutes"`
	FetchedAt       time.Time         `json:"fetchedAt" yaml:"fetchedAt"`
}

// formatDuration formats a duration without milliseconds
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, mins, secs)
}
