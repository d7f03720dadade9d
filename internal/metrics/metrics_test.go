package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elpulgo/azdo-buildstats/internal/buildstats"
)

func TestMetrics_Observe(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	fetched := time.Date(2024, 2, 6, 12, 0, 0, 0, time.UTC)
	m.Observe(buildstats.Snapshot{
		Report: buildstats.BuildStatusReport{Projects: []buildstats.ProjectRun{
			{Run: buildstats.Run{DefinitionName: "Build-A", ProjectName: "Alpha", Status: buildstats.StatusFailed}},
			{Run: buildstats.Run{DefinitionName: "Build-B", ProjectName: "Alpha", Status: buildstats.StatusSucceeded}},
		}},
		Stats:           buildstats.BuildStats{TotalBuilds: 5, TotalProjectFailures: 2, TotalBuildFailures: 1},
		DowntimeMinutes: 30,
		FetchedAt:       fetched,
	})

	assert.Equal(t, 5.0, testutil.ToFloat64(m.builds))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.projectFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.buildFailures))
	assert.Equal(t, 30.0, testutil.ToFloat64(m.downtime))
	assert.Equal(t, float64(fetched.Unix()), testutil.ToFloat64(m.lastUpdate))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.definitions.WithLabelValues("Build-A", "Alpha", "failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.definitions.WithLabelValues("Build-A", "Alpha", "succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.definitions.WithLabelValues("Build-B", "Alpha", "succeeded")))
}

func TestMetrics_ObserveResetsDefinitions(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.Observe(buildstats.Snapshot{Report: buildstats.BuildStatusReport{Projects: []buildstats.ProjectRun{
		{Run: buildstats.Run{DefinitionName: "Gone", ProjectName: "Alpha", Status: buildstats.StatusFailed}},
	}}})
	assert.Equal(t, 3, testutil.CollectAndCount(m.definitions))

	m.Observe(buildstats.Snapshot{})
	assert.Equal(t, 0, testutil.CollectAndCount(m.definitions))
}

func TestMetrics_Instrument(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	ok := m.Instrument(&buildstats.StaticSource{})
	_, err = ok.QueryBuilds(context.Background(), buildstats.Query{TeamProject: "Alpha"})
	require.NoError(t, err)

	failing := m.Instrument(&buildstats.StaticSource{Err: errors.New("boom")})
	_, err = failing.QueryBuilds(context.Background(), buildstats.Query{TeamProject: "Beta"})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.queryErrors.WithLabelValues("Beta")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.queryDuration))
}

func TestMetrics_Handler(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	m.Observe(buildstats.Snapshot{DowntimeMinutes: 7})

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "azdo_buildstats_downtime_minutes 7"),
		"expected downtime gauge in exposition output:\n%s", body)
}
