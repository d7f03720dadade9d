package buildstats

// RawFailureRate counts failures over records from a single day.
//
// TotalBuilds and TotalProjectFailures count only records whose definition is
// in configurations. TotalBuildFailures approximates failed build cycles as the
// number of records in the window divided by the number of configurations, and
// is zero when configurations is empty.
func RawFailureRate(records []BuildRecord, configurations []string) BuildStats {
	var stats BuildStats
	if len(configurations) == 0 {
		return stats
	}

	stats.TotalBuildFailures = len(records) / len(configurations)

	set := nameSet(configurations)
	for _, r := range records {
		if _, ok := set[r.DefinitionName]; !ok {
			continue
		}
		if r.Status == StatusFailed {
			stats.TotalProjectFailures++
		}
		stats.TotalBuilds++
	}

	return stats
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
