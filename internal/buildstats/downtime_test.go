package buildstats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimateDowntime(t *testing.T) {
	tests := []struct {
		name           string
		records        []BuildRecord
		configurations []string
		want           int
	}{
		{
			name:           "empty input",
			records:        nil,
			configurations: []string{"Build-A"},
			want:           0,
		},
		{
			name: "two failure runs each resolved by a success",
			records: []BuildRecord{
				record("Build-A", StatusFailed, 50),
				record("Build-A", StatusFailed, 40),
				record("Build-A", StatusSucceeded, 30),
				record("Build-A", StatusFailed, 20),
				record("Build-A", StatusSucceeded, 10),
			},
			configurations: []string{"Build-A"},
			want:           30,
		},
		{
			name: "records outside the configuration set are ignored",
			records: []BuildRecord{
				record("Build-A", StatusFailed, 50),
				record("Build-B", StatusSucceeded, 45),
				record("Build-A", StatusSucceeded, 30),
			},
			configurations: []string{"Build-A"},
			want:           20,
		},
		{
			name: "empty configuration set matches nothing",
			records: []BuildRecord{
				record("Build-A", StatusFailed, 50),
				record("Build-A", StatusSucceeded, 30),
			},
			configurations: nil,
			want:           0,
		},
		{
			name: "unresolved failure run contributes nothing",
			records: []BuildRecord{
				record("Build-A", StatusFailed, 50),
				record("Build-A", StatusSucceeded, 45),
				record("Build-A", StatusFailed, 30),
				record("Build-A", StatusFailed, 20),
			},
			configurations: []string{"Build-A"},
			want:           5,
		},
		{
			name: "failure as the last record does not read past the end",
			records: []BuildRecord{
				record("Build-A", StatusSucceeded, 50),
				record("Build-A", StatusFailed, 40),
			},
			configurations: []string{"Build-A"},
			want:           0,
		},
		{
			name: "other statuses belong to the failure run",
			records: []BuildRecord{
				record("Build-A", StatusFailed, 50),
				record("Build-A", StatusOther, 45),
				record("Build-A", StatusSucceeded, 38),
			},
			configurations: []string{"Build-A"},
			want:           12,
		},
		{
			name: "leading other status does not start a run",
			records: []BuildRecord{
				record("Build-A", StatusOther, 50),
				record("Build-A", StatusSucceeded, 40),
			},
			configurations: []string{"Build-A"},
			want:           0,
		},
		{
			name: "outage of exactly the threshold is ignored",
			records: []BuildRecord{
				record("Build-A", StatusFailed, 11),
				record("Build-A", StatusSucceeded, 10),
			},
			configurations: []string{"Build-A"},
			want:           0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateDowntime(tt.records, tt.configurations)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEstimateDowntime_PartialMinutesAreFloored(t *testing.T) {
	records := []BuildRecord{
		{DefinitionName: "Build-A", Status: StatusFailed, FinishTime: base.Add(3*time.Minute + 59*time.Second)},
		{DefinitionName: "Build-A", Status: StatusSucceeded, FinishTime: base},
	}

	assert.Equal(t, 3, EstimateDowntime(records, []string{"Build-A"}))
}

func TestEstimateDowntime_NeverNegative(t *testing.T) {
	records := []BuildRecord{
		record("Build-A", StatusFailed, 10),
		record("Build-A", StatusSucceeded, 30),
	}

	assert.GreaterOrEqual(t, EstimateDowntime(records, []string{"Build-A"}), 0)
}
