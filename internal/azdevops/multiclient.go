package azdevops

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Elpulgo/azdo-buildstats/internal/buildstats"
)

// MultiClient wraps multiple project-scoped clients for concurrent fetching.
// It is the production buildstats.BuildSource.
type MultiClient struct {
	org     string
	pat     string
	opts    []Option
	mu      sync.Mutex
	clients map[string]*Client // project name → client
}

// NewMultiClient creates clients for each project.
func NewMultiClient(org string, projects []string, pat string, opts ...Option) (*MultiClient, error) {
	if len(projects) == 0 {
		return nil, fmt.Errorf("at least one project is required")
	}

	clients := make(map[string]*Client, len(projects))
	for _, project := range projects {
		c, err := NewClient(org, project, pat, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create client for project %q: %w", project, err)
		}
		clients[project] = c
	}
	return &MultiClient{org: org, pat: pat, opts: opts, clients: clients}, nil
}

// clientsFor resolves a team-project filter. AllProjects (or empty) selects
// every configured project; any other value names a single project, which is
// added on first use if it was not configured.
func (mc *MultiClient) clientsFor(teamProject string) ([]*Client, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if teamProject == "" || teamProject == buildstats.AllProjects {
		clients := make([]*Client, 0, len(mc.clients))
		for _, c := range mc.clients {
			clients = append(clients, c)
		}
		return clients, nil
	}

	if c, ok := mc.clients[teamProject]; ok {
		return []*Client{c}, nil
	}

	c, err := NewClient(mc.org, teamProject, mc.pat, mc.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for project %q: %w", teamProject, err)
	}
	mc.clients[teamProject] = c
	return []*Client{c}, nil
}

// QueryBuilds fetches builds from the selected projects concurrently, merges
// them and sorts by q.Order. The first project failure cancels the others and
// is returned.
func (mc *MultiClient) QueryBuilds(ctx context.Context, q buildstats.Query) ([]buildstats.BuildRecord, error) {
	clients, err := mc.clientsFor(q.TeamProject)
	if err != nil {
		return nil, err
	}

	results := make([][]buildstats.BuildRecord, len(clients))
	g, gctx := errgroup.WithContext(ctx)
	for i, client := range clients {
		i, client := i, client
		g.Go(func() error {
			records, err := client.QueryBuilds(gctx, q)
			if err != nil {
				return fmt.Errorf("project %q: %w", client.GetProject(), err)
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []buildstats.BuildRecord
	for _, records := range results {
		all = append(all, records...)
	}
	buildstats.SortRecords(all, q.Order)
	return all, nil
}

var _ buildstats.BuildSource = (*MultiClient)(nil)
var _ buildstats.BuildSource = (*Client)(nil)
