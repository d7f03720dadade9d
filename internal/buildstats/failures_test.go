package buildstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawFailureRate(t *testing.T) {
	records := []BuildRecord{
		record("CI", StatusFailed, 50),
		record("CI", StatusSucceeded, 40),
		record("Nightly", StatusFailed, 35),
		record("Nightly", StatusOther, 30),
		record("Docs", StatusFailed, 20),
	}

	tests := []struct {
		name           string
		records        []BuildRecord
		configurations []string
		want           BuildStats
	}{
		{
			name:           "empty records",
			records:        nil,
			configurations: []string{"CI"},
			want:           BuildStats{},
		},
		{
			name:           "empty configuration set",
			records:        records,
			configurations: nil,
			want:           BuildStats{},
		},
		{
			name:           "single configuration",
			records:        records,
			configurations: []string{"CI"},
			want:           BuildStats{TotalBuilds: 2, TotalProjectFailures: 1, TotalBuildFailures: 5},
		},
		{
			name:           "build failures are floored",
			records:        records,
			configurations: []string{"CI", "Nightly"},
			want:           BuildStats{TotalBuilds: 4, TotalProjectFailures: 2, TotalBuildFailures: 2},
		},
		{
			name:           "unknown configuration matches nothing",
			records:        records,
			configurations: []string{"Release", "Deploy", "Smoke"},
			want:           BuildStats{TotalBuilds: 0, TotalProjectFailures: 0, TotalBuildFailures: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RawFailureRate(tt.records, tt.configurations)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRawFailureRate_FailuresPlusOthersEqualTotal(t *testing.T) {
	records := []BuildRecord{
		record("CI", StatusFailed, 50),
		record("CI", StatusSucceeded, 40),
		record("CI", StatusOther, 39),
		record("Nightly", StatusFailed, 35),
		record("Nightly", StatusFailed, 30),
		record("Docs", StatusSucceeded, 20),
	}
	configurations := []string{"CI", "Nightly"}

	stats := RawFailureRate(records, configurations)

	nonFailed := 0
	set := nameSet(configurations)
	for _, r := range records {
		if _, ok := set[r.DefinitionName]; ok && r.Status != StatusFailed {
			nonFailed++
		}
	}
	assert.Equal(t, stats.TotalBuilds, stats.TotalProjectFailures+nonFailed)
}

func TestBuildStats_Add(t *testing.T) {
	a := BuildStats{TotalBuilds: 3, TotalProjectFailures: 1, TotalBuildFailures: 2}
	b := BuildStats{TotalBuilds: 4, TotalProjectFailures: 2, TotalBuildFailures: 0}

	got := a.Add(b)

	assert.Equal(t, BuildStats{TotalBuilds: 7, TotalProjectFailures: 3, TotalBuildFailures: 2}, got)
	assert.Equal(t, BuildStats{TotalBuilds: 3, TotalProjectFailures: 1, TotalBuildFailures: 2}, a, "Add must not modify the receiver")
}
