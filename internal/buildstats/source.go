package buildstats

import (
	"context"
	"sort"
	"time"
)

// AllProjects is the team-project filter token meaning "every project the source knows".
const AllProjects = "*"

// Order is the sort order a BuildSource applies to its results.
type Order int

const (
	// ByDefinition sorts by definition name ascending, then finish time descending.
	ByDefinition Order = iota
	// ByFinishTime sorts by finish time descending only.
	ByFinishTime
)

// Query constrains which build records a BuildSource returns.
type Query struct {
	MinFinishTime time.Time
	MaxFinishTime time.Time
	// TeamProject is passed through untouched; AllProjects selects every project.
	TeamProject string
	// Definitions filters by definition name. Empty means all definitions.
	Definitions []string
	Order       Order
}

// BuildSource returns build records matching a query, sorted by q.Order.
type BuildSource interface {
	QueryBuilds(ctx context.Context, q Query) ([]BuildRecord, error)
}

// SortRecords sorts records in place according to order.
func SortRecords(records []BuildRecord, order Order) {
	switch order {
	case ByFinishTime:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].FinishTime.After(records[j].FinishTime)
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].DefinitionName != records[j].DefinitionName {
				return records[i].DefinitionName < records[j].DefinitionName
			}
			return records[i].FinishTime.After(records[j].FinishTime)
		})
	}
}

// StaticSource is an in-memory BuildSource over a fixed set of records.
// It applies the time window, project and definition filters, and ordering.
type StaticSource struct {
	Records []BuildRecord
	// Err, when set, is returned from every query.
	Err error
	// Queries records every query received.
	Queries []Query
}

// QueryBuilds implements BuildSource.
func (s *StaticSource) QueryBuilds(ctx context.Context, q Query) ([]BuildRecord, error) {
	s.Queries = append(s.Queries, q)
	if s.Err != nil {
		return nil, s.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(q.Definitions))
	for _, d := range q.Definitions {
		wanted[d] = struct{}{}
	}

	var out []BuildRecord
	for _, r := range s.Records {
		if !q.MinFinishTime.IsZero() && r.FinishTime.Before(q.MinFinishTime) {
			continue
		}
		if !q.MaxFinishTime.IsZero() && r.FinishTime.After(q.MaxFinishTime) {
			continue
		}
		if q.TeamProject != "" && q.TeamProject != AllProjects && r.ProjectName != q.TeamProject {
			continue
		}
		if len(wanted) > 0 {
			if _, ok := wanted[r.DefinitionName]; !ok {
				continue
			}
		}
		out = append(out, r)
	}

	SortRecords(out, q.Order)
	return out, nil
}
