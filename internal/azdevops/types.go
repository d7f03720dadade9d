package azdevops

import (
	"time"

	"github.com/Elpulgo/azdo-buildstats/internal/buildstats"
)

// Build represents a completed build returned by the builds API
type Build struct {
	ID          int           `json:"id"`
	BuildNumber string        `json:"buildNumber"`
	Status      string        `json:"status"` // "inProgress", "completed", "canceling", "postponed", "notStarted"
	Result      string        `json:"result"` // "succeeded", "failed", "canceled", "partiallySucceeded", "none"
	Deleted     bool          `json:"deleted"`
	QueueTime   time.Time     `json:"queueTime"`
	StartTime   *time.Time    `json:"startTime"`
	FinishTime  *time.Time    `json:"finishTime"`
	Definition  DefinitionRef `json:"definition"`
	Project     Project       `json:"project"`
}

// DefinitionRef is the build definition a build belongs to
type DefinitionRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Project represents an Azure DevOps project
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BuildsResponse represents the API response for listing builds
type BuildsResponse struct {
	Count int     `json:"count"`
	Value []Build `json:"value"`
}

// DefinitionsResponse represents the API response for listing build definitions
type DefinitionsResponse struct {
	Count int             `json:"count"`
	Value []DefinitionRef `json:"value"`
}

// Record maps the build to a build record. project is used when the
// response does not carry a project name.
func (b Build) Record(project string) buildstats.BuildRecord {
	r := buildstats.BuildRecord{
		DefinitionName: b.Definition.Name,
		ProjectName:    b.Project.Name,
		Status:         buildstats.ParseStatus(b.Result),
	}
	if r.ProjectName == "" {
		r.ProjectName = project
	}
	if b.StartTime != nil {
		r.StartTime = *b.StartTime
	}
	if b.FinishTime != nil {
		r.FinishTime = *b.FinishTime
	}
	if r.StartTime.IsZero() || r.StartTime.After(r.FinishTime) {
		r.StartTime = r.FinishTime
	}
	return r
}
