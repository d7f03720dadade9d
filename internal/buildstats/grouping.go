package buildstats

// GroupRuns turns records sorted by definition name, then finish time descending,
// into a report. The first record of each definition becomes a top-level entry;
// later records of the same definition are attached as child runs until maxRuns
// children are present, after which they are dropped.
//
// Records are not re-sorted. If a definition shows up again after another one
// was opened, its records still go to the existing entry so names stay unique.
func GroupRuns(records []BuildRecord, maxRuns int) BuildStatusReport {
	report := BuildStatusReport{Projects: []ProjectRun{}}
	index := make(map[string]int)

	current := ""
	opened := false
	for _, record := range records {
		name := record.DefinitionName
		if opened && name == current {
			addChildRun(&report.Projects[index[name]], record, maxRuns)
			continue
		}

		current = name
		opened = true
		if i, ok := index[name]; ok {
			addChildRun(&report.Projects[i], record, maxRuns)
			continue
		}

		index[name] = len(report.Projects)
		report.Projects = append(report.Projects, ProjectRun{Run: newRun(record), Runs: []Run{}})
	}

	return report
}

func addChildRun(parent *ProjectRun, record BuildRecord, maxRuns int) {
	if len(parent.Runs) < maxRuns {
		parent.Runs = append(parent.Runs, newRun(record))
	}
}
