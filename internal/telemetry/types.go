// Package telemetry reconciles heterogeneous infrastructure records from
// the platform health API into one canonical, deduplicated view.
package telemetry

import (
	"encoding/json"
	"strings"
)

// JobResourceType is the resource type under which the platform
// materializes scheduled jobs.
const JobResourceType = "Microsoft.App/jobs"

// HealthSnapshot is one complete fetch result from the health API. It is
// immutable once fetched and replaced wholesale on each refresh.
type HealthSnapshot struct {
	Overall    json.RawMessage   `json:"overall,omitempty"`
	DataLayers []DataLayer       `json:"dataLayers"`
	Resources  []Resource        `json:"resources"`
	RecentJobs []json.RawMessage `json:"recentJobs,omitempty"`
}

// DataLayer is a storage tier with its data domains.
type DataLayer struct {
	Name    string   `json:"name"`
	Domains []Domain `json:"domains"`
}

// Domain is a data domain within a layer. JobName and JobURL are optional
// scheduler-facing metadata; JobURL may be malformed or in a legacy form.
type Domain struct {
	Name    string `json:"name"`
	JobName string `json:"jobName,omitempty"`
	JobURL  string `json:"jobUrl,omitempty"`
}

// Resource is a raw infrastructure record. Only resources whose type is
// JobResourceType participate in link, state, and dedupe resolution.
type Resource struct {
	Name         string `json:"name"`
	ResourceType string `json:"resourceType"`
	AzureID      string `json:"azureId,omitempty"`
	RunningState string `json:"runningState,omitempty"`
}

// ManagedContainerJob is one logical job, keyed by normalized identity,
// carrying the first-seen raw spelling of its name.
type ManagedContainerJob struct {
	Name         string  `json:"name"`
	RunningState *string `json:"runningState"`
}

// AggregatedView is the reconciled bundle handed to display components.
//
// JobLinks is dual-keyed: both the raw and normalized spelling of a job
// may map to the same URL so lookups from either source succeed.
// JobStates holds normalized keys only; probe it with a normalized name.
type AggregatedView struct {
	DisplayDataLayers    []DataLayer           `json:"displayDataLayers"`
	JobLinks             map[string]string     `json:"jobLinks"`
	JobStates            map[string]string     `json:"jobStates"`
	ManagedContainerJobs []ManagedContainerJob `json:"managedContainerJobs"`
}

func isJobResource(r Resource) bool {
	return strings.EqualFold(strings.TrimSpace(r.ResourceType), JobResourceType)
}
