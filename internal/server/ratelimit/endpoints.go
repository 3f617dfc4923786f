package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// HealthPath is never limited.
const HealthPath = "/api/health"

// EndpointConfig overrides the default bucket for one route.
// A Limit of zero or less means unlimited.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// DefaultEndpointConfigs returns the per-route limits for the analysis API.
// Analysis and upload run the full pipeline and get tighter buckets.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/analyze", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/upload", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/upload/", Method: http.MethodGet, Limit: 300, Window: time.Minute, Burst: 50},
	}
}

var unlimited = EndpointConfig{}

// MatchEndpoint returns the config for path and method, or nil for the default.
// Paths ending in "/" match by prefix after exact matches are tried.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == HealthPath && method == http.MethodGet {
		return &unlimited
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}
