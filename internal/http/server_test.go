package httpapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opsdeck/opsdeck/internal/config"
	"github.com/opsdeck/opsdeck/internal/healthapi"
	"github.com/opsdeck/opsdeck/internal/refresh"
	"github.com/opsdeck/opsdeck/internal/telemetry"
)

type noopFetcher struct{}

func (noopFetcher) GetSnapshot(context.Context, healthapi.GetOptions) (*telemetry.HealthSnapshot, error) {
	return &telemetry.HealthSnapshot{}, nil
}

func TestServerRoutes(t *testing.T) {
	t.Parallel()

	ctrl := refresh.NewController(noopFetcher{}, nil, nil)
	s, err := NewServer(config.Config{}, ctrl, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	ts := httptest.NewServer(s.e)
	defer ts.Close()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/api/telemetry", http.StatusOK},
		{http.MethodGet, "/api/status", http.StatusOK},
		{http.MethodPost, "/api/refresh", http.StatusOK},
		{http.MethodGet, "/api/refresh/history", http.StatusNotFound},
		{http.MethodGet, "/api/missing", http.StatusNotFound},
	}
	for _, tc := range tests {
		req, err := http.NewRequest(tc.method, ts.URL+tc.path, nil)
		if err != nil {
			t.Fatalf("NewRequest: %v", err)
		}
		resp, err := ts.Client().Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", tc.method, tc.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.want {
			t.Errorf("%s %s: status = %d, want %d", tc.method, tc.path, resp.StatusCode, tc.want)
		}
	}
}
