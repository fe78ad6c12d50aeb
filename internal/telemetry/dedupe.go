package telemetry

import "strings"

// DedupeManagedJobs collapses a resource inventory that may list the same
// logical job under multiple raw spellings into one entry per job.
//
// The dedupe key is the normalized name; when normalization yields
// nothing, the lower-cased raw name keeps unnormalizable jobs
// distinguishable from each other instead of collapsing them together.
// The first occurrence in input order wins and fixes the recorded raw
// name and running state. State is not merged across duplicates; callers
// wanting the effective state must cross-reference BuildJobStates by
// normalized key.
func DedupeManagedJobs(resources []Resource) []ManagedContainerJob {
	seen := make(map[string]struct{})
	jobs := make([]ManagedContainerJob, 0)
	for _, resource := range resources {
		if !isJobResource(resource) {
			continue
		}
		key := NormalizeJobName(resource.Name)
		if key == "" {
			key = strings.ToLower(strings.TrimSpace(resource.Name))
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		var state *string
		if s := strings.TrimSpace(resource.RunningState); s != "" {
			state = &s
		}
		jobs = append(jobs, ManagedContainerJob{Name: resource.Name, RunningState: state})
	}
	return jobs
}
