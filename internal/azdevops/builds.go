package azdevops

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Elpulgo/azdo-buildstats/internal/buildstats"
)

// maxPages bounds how many continuation pages a single query follows.
const maxPages = 50

// ListDefinitionIDs returns the IDs of build definitions named name.
func (c *Client) ListDefinitionIDs(ctx context.Context, name string) ([]int, error) {
	params := url.Values{}
	params.Set("api-version", apiVersion)
	params.Set("name", name)

	resp, err := c.get(ctx, "/build/definitions?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to list build definitions: %w", err)
	}

	var definitions DefinitionsResponse
	if err := json.Unmarshal(resp.body, &definitions); err != nil {
		return nil, fmt.Errorf("failed to parse Azure DevOps API response for build definitions: %w", err)
	}

	ids := make([]int, 0, len(definitions.Value))
	for _, d := range definitions.Value {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// ListBuilds returns completed builds, deleted ones included, that finished in
// [minTime, maxTime], most recent first. definitionIDs narrows the query when
// non-empty.
func (c *Client) ListBuilds(ctx context.Context, minTime, maxTime time.Time, definitionIDs []int) ([]Build, error) {
	params := url.Values{}
	params.Set("api-version", apiVersion)
	params.Set("statusFilter", "completed")
	params.Set("deletedFilter", "includeDeleted")
	params.Set("queryOrder", "finishTimeDescending")
	if !minTime.IsZero() {
		params.Set("minTime", minTime.UTC().Format(time.RFC3339))
	}
	if !maxTime.IsZero() {
		params.Set("maxTime", maxTime.UTC().Format(time.RFC3339))
	}
	if len(definitionIDs) > 0 {
		ids := make([]string, len(definitionIDs))
		for i, id := range definitionIDs {
			ids[i] = strconv.Itoa(id)
		}
		params.Set("definitions", strings.Join(ids, ","))
	}

	var builds []Build
	for page := 0; page < maxPages; page++ {
		resp, err := c.get(ctx, "/build/builds?"+params.Encode())
		if err != nil {
			return nil, fmt.Errorf("failed to list builds: %w", err)
		}

		var response BuildsResponse
		if err := json.Unmarshal(resp.body, &response); err != nil {
			return nil, fmt.Errorf("failed to parse Azure DevOps API response for builds: %w. "+
				"This may indicate an API structure change", err)
		}
		builds = append(builds, response.Value...)

		if resp.continuationToken == "" {
			return builds, nil
		}
		params.Set("continuationToken", resp.continuationToken)
	}

	return nil, fmt.Errorf("failed to list builds: more than %d pages returned", maxPages)
}

// QueryBuilds implements buildstats.BuildSource for this client's project.
// q.TeamProject is ignored; use MultiClient to select projects.
func (c *Client) QueryBuilds(ctx context.Context, q buildstats.Query) ([]buildstats.BuildRecord, error) {
	var definitionIDs []int
	for _, name := range q.Definitions {
		ids, err := c.ListDefinitionIDs(ctx, name)
		if err != nil {
			return nil, err
		}
		definitionIDs = append(definitionIDs, ids...)
	}
	if len(q.Definitions) > 0 && len(definitionIDs) == 0 {
		return nil, nil
	}

	builds, err := c.ListBuilds(ctx, q.MinFinishTime, q.MaxFinishTime, definitionIDs)
	if err != nil {
		return nil, err
	}

	records := make([]buildstats.BuildRecord, 0, len(builds))
	for _, b := range builds {
		if b.FinishTime == nil {
			continue
		}
		records = append(records, b.Record(c.project))
	}

	buildstats.SortRecords(records, q.Order)
	return records, nil
}
