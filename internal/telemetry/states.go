package telemetry

import "strings"

// BuildJobStates maps normalized job names to their last-known running
// state. Only normalized keys are stored: callers must normalize before
// probing. Resources with an empty state are skipped, since absence, not
// an empty string, represents "unknown". When duplicates share a
// normalized key the later resource wins; the input order is the only
// tie-break.
func BuildJobStates(resources []Resource) map[string]string {
	states := make(map[string]string)
	for _, resource := range resources {
		if !isJobResource(resource) {
			continue
		}
		key := NormalizeJobName(resource.Name)
		if key == "" {
			continue
		}
		state := strings.TrimSpace(resource.RunningState)
		if state == "" {
			continue
		}
		states[key] = state
	}
	return states
}
