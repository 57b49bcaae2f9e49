package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WaitForHealthy polls the /health endpoint until it returns 200 OK or
// the context is cancelled. baseURL is the server's base URL, e.g.
// "http://localhost:8080".
func WaitForHealthy(ctx context.Context, baseURL string) error {
	healthURL := baseURL + "/health"
	client := &http.Client{Timeout: 1 * time.Second}

	probe := func() bool {
		resp, err := client.Get(healthURL)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}

	if probe() {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if probe() {
				return nil
			}
		}
	}
}

// FetchStats retrieves the /stats snapshot from a running server
func FetchStats(ctx context.Context, baseURL string) (StatsSnapshot, error) {
	var snapshot StatsSnapshot

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/stats", nil)
	if err != nil {
		return snapshot, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return snapshot, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return snapshot, fmt.Errorf("stats endpoint returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return snapshot, fmt.Errorf("failed to decode stats: %w", err)
	}
	return snapshot, nil
}
