package config

import "testing"

func TestLoadWithOptions_Defaults(t *testing.T) {
	t.Setenv("HEALTH_API_URL", "https://health.internal")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("REFRESH_INTERVAL", "")
	t.Setenv("HEARTBEAT_INTERVAL", "")
	t.Setenv("EXCLUDED_DOMAINS", "")

	cfg, err := LoadWithOptions(LoadOptions{RequireHealthAPIURL: true})
	if err != nil {
		t.Fatalf("LoadWithOptions() error = %v", err)
	}
	if cfg.HTTPAddr != defaultHTTPAddr {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, defaultHTTPAddr)
	}
	if cfg.RefreshInterval != defaultRefreshInterval {
		t.Fatalf("RefreshInterval = %s, want %s", cfg.RefreshInterval, defaultRefreshInterval)
	}
	if cfg.HeartbeatInterval != defaultHeartbeatInterval {
		t.Fatalf("HeartbeatInterval = %s, want %s", cfg.HeartbeatInterval, defaultHeartbeatInterval)
	}
	if cfg.ExcludedDomains != nil {
		t.Fatalf("ExcludedDomains = %v, want nil", cfg.ExcludedDomains)
	}
}

func TestLoadWithOptions_ParsesIntervals(t *testing.T) {
	t.Setenv("HEALTH_API_URL", "https://health.internal")
	t.Setenv("REFRESH_INTERVAL", "90s")
	t.Setenv("HEARTBEAT_INTERVAL", "250ms")

	cfg, err := LoadWithOptions(LoadOptions{RequireHealthAPIURL: true})
	if err != nil {
		t.Fatalf("LoadWithOptions() error = %v", err)
	}
	if cfg.RefreshInterval.String() != "1m30s" {
		t.Fatalf("RefreshInterval = %s", cfg.RefreshInterval)
	}
	if cfg.HeartbeatInterval.String() != "250ms" {
		t.Fatalf("HeartbeatInterval = %s", cfg.HeartbeatInterval)
	}
}

func TestLoadWithOptions_InvalidIntervalKeepsDefault(t *testing.T) {
	t.Setenv("HEALTH_API_URL", "https://health.internal")
	t.Setenv("REFRESH_INTERVAL", "soon")

	cfg, err := LoadWithOptions(LoadOptions{RequireHealthAPIURL: true})
	if err != nil {
		t.Fatalf("LoadWithOptions() error = %v", err)
	}
	if cfg.RefreshInterval != defaultRefreshInterval {
		t.Fatalf("RefreshInterval = %s, want default", cfg.RefreshInterval)
	}
}

func TestLoadWithOptions_ExcludedDomains(t *testing.T) {
	t.Setenv("HEALTH_API_URL", "https://health.internal")
	t.Setenv("EXCLUDED_DOMAINS", " Admin, internal ,,sandbox ")

	cfg, err := LoadWithOptions(LoadOptions{RequireHealthAPIURL: true})
	if err != nil {
		t.Fatalf("LoadWithOptions() error = %v", err)
	}
	want := []string{"Admin", "internal", "sandbox"}
	if len(cfg.ExcludedDomains) != len(want) {
		t.Fatalf("ExcludedDomains = %v, want %v", cfg.ExcludedDomains, want)
	}
	for i, domain := range want {
		if cfg.ExcludedDomains[i] != domain {
			t.Fatalf("ExcludedDomains = %v, want %v", cfg.ExcludedDomains, want)
		}
	}
}

func TestLoadWithOptions_RequiredValues(t *testing.T) {
	t.Setenv("HEALTH_API_URL", "")
	t.Setenv("DATABASE_URL", "")

	if _, err := LoadWithOptions(LoadOptions{RequireHealthAPIURL: true}); err == nil {
		t.Fatal("expected HEALTH_API_URL error")
	}
	if _, err := LoadWithOptions(LoadOptions{RequireDatabaseURL: true}); err == nil {
		t.Fatal("expected DATABASE_URL error")
	}
}
