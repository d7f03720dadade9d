package buildstats

import "time"

// DowntimeThreshold is the shortest outage that counts toward downtime.
const DowntimeThreshold = time.Minute

// EstimateDowntime returns the total outage in whole minutes for records
// ordered by finish time descending (most recent first).
//
// Only records whose definition is in configurations are considered. For each
// failing run, the outage is the time between its most recent failure and the
// success that precedes it. Outages not longer than DowntimeThreshold are
// ignored. A failing run with no earlier success in the sequence contributes
// nothing.
func EstimateDowntime(records []BuildRecord, configurations []string) int {
	set := nameSet(configurations)
	filtered := make([]BuildRecord, 0, len(records))
	for _, r := range records {
		if _, ok := set[r.DefinitionName]; ok {
			filtered = append(filtered, r)
		}
	}

	total := 0
	i := 0
	for i < len(filtered) {
		if filtered[i].Status != StatusFailed {
			i++
			continue
		}

		j := i + 1
		for j < len(filtered) && filtered[j].Status != StatusSucceeded {
			j++
		}
		if j >= len(filtered) {
			break
		}

		elapsed := filtered[i].FinishTime.Sub(filtered[j].FinishTime)
		if elapsed > DowntimeThreshold {
			total += int(elapsed / time.Minute)
		}
		i = j
	}

	return total
}
