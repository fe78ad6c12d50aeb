package telemetry

import "testing"

func endToEndSnapshot() *HealthSnapshot {
	return &HealthSnapshot{
		DataLayers: []DataLayer{{
			Name: "bronze",
			Domains: []Domain{
				{Name: "admin"},
				{Name: "equities"},
			},
		}},
		Resources: []Resource{{
			Name:         "Etl-Job",
			ResourceType: JobResourceType,
			AzureID:      "/subscriptions/s1/resourceGroups/rg/providers/Microsoft.App/jobs/etl-job",
			RunningState: "Running",
		}},
	}
}

func TestAggregatorEndToEnd(t *testing.T) {
	t.Parallel()

	agg := NewAggregator(nil)
	view := agg.View(endToEndSnapshot())

	if len(view.DisplayDataLayers) != 1 {
		t.Fatalf("layers = %+v", view.DisplayDataLayers)
	}
	if domains := view.DisplayDataLayers[0].Domains; len(domains) != 1 || domains[0].Name != "equities" {
		t.Fatalf("domains = %+v, want only equities", domains)
	}
	if view.JobStates[NormalizeJobName("Etl-Job")] != "Running" {
		t.Fatalf("job states = %v", view.JobStates)
	}

	want := "https://portal.azure.com/#resource/subscriptions/s1/resourceGroups/rg/providers/Microsoft.App/jobs/etl-job"
	if len(view.JobLinks) != 2 {
		t.Fatalf("job links = %v, want raw + normalized entries", view.JobLinks)
	}
	for key, url := range map[string]string{"Etl-Job": want, "etljob": want} {
		if view.JobLinks[key] != url {
			t.Fatalf("jobLinks[%q] = %q, want %q", key, view.JobLinks[key], url)
		}
	}
	if len(view.ManagedContainerJobs) != 1 || view.ManagedContainerJobs[0].Name != "Etl-Job" {
		t.Fatalf("managed jobs = %+v", view.ManagedContainerJobs)
	}
}

func TestAggregatorMemoizesByContent(t *testing.T) {
	t.Parallel()

	agg := NewAggregator(nil)

	// Two distinct values representing the same logical snapshot must
	// share one view so consumers can re-render on pointer inequality.
	first := agg.View(endToEndSnapshot())
	second := agg.View(endToEndSnapshot())
	if first != second {
		t.Fatalf("same logical snapshot produced distinct views")
	}

	changed := endToEndSnapshot()
	changed.Resources[0].RunningState = "Suspended"
	third := agg.View(changed)
	if third == first {
		t.Fatalf("changed snapshot reused a stale view")
	}
}

func TestAggregatorNilSnapshot(t *testing.T) {
	t.Parallel()

	view := NewAggregator(nil).View(nil)
	if view == nil {
		t.Fatalf("nil snapshot must still yield a view")
	}
	if len(view.DisplayDataLayers) != 0 || len(view.JobLinks) != 0 ||
		len(view.JobStates) != 0 || len(view.ManagedContainerJobs) != 0 {
		t.Fatalf("empty view expected, got %+v", view)
	}
}

func TestFingerprintStable(t *testing.T) {
	t.Parallel()

	a := Fingerprint(endToEndSnapshot())
	b := Fingerprint(endToEndSnapshot())
	if a == "" || a != b {
		t.Fatalf("fingerprints differ for equal content: %q vs %q", a, b)
	}

	changed := endToEndSnapshot()
	changed.DataLayers[0].Name = "silver"
	if Fingerprint(changed) == a {
		t.Fatalf("fingerprint must change with content")
	}
	if Fingerprint(nil) != "" {
		t.Fatalf("nil snapshot fingerprint must be empty")
	}
}
