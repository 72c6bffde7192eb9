package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openfda-labs/fdadrugs-api/config"
)

func TestGetTokenCost(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		expectedCost int64
	}{
		// Operational endpoints
		{"Health endpoint", "/health", 5},
		{"Metrics endpoint", "/metrics", 5},

		// Local-index endpoints
		{"Reviews search", "/reviews/search", 10},
		{"Guidance", "/guidance", 20},

		// openFDA pass-through endpoints
		{"Drug search", "/drugs/search", 50},
		{"Indication search", "/drugs/indication/melanoma", 50},
		{"Drug details", "/drugs/24968ff1-098a-4b29-a6be-1a19cf69e276", 50},
		{"Similar drugs", "/drugs/24968ff1-098a-4b29-a6be-1a19cf69e276/similar", 100},
		{"Application history", "/applications/NDA021457", 50},

		// Scraping endpoints cost the most
		{"Patents", "/patents/NDA021457", 150},
		{"Advisory materials", "/adcom/materials", 200},

		// Default case
		{"Unknown endpoint", "/unknown", 20},
		{"Root path", "/", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			cost := getTokenCost(req)

			if cost != tt.expectedCost {
				t.Errorf("Expected cost %d for path %s, got %d", tt.expectedCost, tt.path, cost)
			}
		})
	}
}

func TestRealIPMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		remoteAddr string
		expected   string
	}{
		{"No X-Forwarded-For", "", "192.168.1.1:1234", "192.168.1.1:1234"},
		{"Single forwarded IP", "203.0.113.7", "192.168.1.1:1234", "203.0.113.7"},
		{"Multiple forwarded IPs take first", "203.0.113.7, 10.0.0.1, 10.0.0.2", "192.168.1.1:1234", "203.0.113.7"},
		{"Forwarded IP with spaces", " 203.0.113.7 ", "192.168.1.1:1234", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenAddr string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenAddr = r.RemoteAddr
			})

			req := httptest.NewRequest("GET", "/health", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}

			RealIPMiddleware(next).ServeHTTP(httptest.NewRecorder(), req)

			if seenAddr != tt.expected {
				t.Errorf("Expected RemoteAddr %q, got %q", tt.expected, seenAddr)
			}
		})
	}
}

func TestRequestSizeMiddleware(t *testing.T) {
	cfg := &config.Config{
		MaxRequestBody: 1024,
		MaxHeaderSize:  256,
	}
	middleware := RequestSizeMiddleware(cfg)

	t.Run("normal request passes", func(t *testing.T) {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		rr := httptest.NewRecorder()
		middleware(next).ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

		if !called {
			t.Error("Expected next handler to be called")
		}
		if rr.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rr.Code)
		}
	})

	t.Run("oversized body rejected", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Next handler should not be called")
		})

		req := httptest.NewRequest("POST", "/health", nil)
		req.Header.Set("Content-Length", "4096")
		rr := httptest.NewRecorder()
		middleware(next).ServeHTTP(rr, req)

		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("Expected status 413, got %d", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Request body too large") {
			t.Errorf("Unexpected body: %s", rr.Body.String())
		}
	})

	t.Run("oversized headers rejected", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Next handler should not be called")
		})

		req := httptest.NewRequest("GET", "/health", nil)
		req.Header.Set("X-Padding", strings.Repeat("a", 512))
		rr := httptest.NewRecorder()
		middleware(next).ServeHTTP(rr, req)

		if rr.Code != http.StatusRequestHeaderFieldsTooLarge {
			t.Errorf("Expected status 431, got %d", rr.Code)
		}
	})
}

func TestRateLimiter_GetBucket(t *testing.T) {
	rl := NewRateLimiter()

	bucket1 := rl.getBucket("10.0.0.1")
	bucket2 := rl.getBucket("10.0.0.1")
	bucket3 := rl.getBucket("10.0.0.2")

	if bucket1 != bucket2 {
		t.Error("Same IP should share one bucket")
	}
	if bucket1 == bucket3 {
		t.Error("Different IPs should not share a bucket")
	}
	if len(rl.clients) != 2 {
		t.Errorf("Expected 2 buckets, got %d", len(rl.clients))
	}
}

func TestRateLimitHandler(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimitHandler(next)

	t.Run("request within budget passes with headers", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		req.RemoteAddr = "198.51.100.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
		if rr.Header().Get("X-RateLimit-Limit") != "1000" {
			t.Errorf("X-RateLimit-Limit = %q", rr.Header().Get("X-RateLimit-Limit"))
		}
		if rr.Header().Get("X-RateLimit-Rate") != "3" {
			t.Errorf("X-RateLimit-Rate = %q", rr.Header().Get("X-RateLimit-Rate"))
		}
		if rr.Header().Get("X-RateLimit-Remaining") == "" {
			t.Error("Expected X-RateLimit-Remaining header")
		}
	})

	t.Run("exhausted bucket returns 429", func(t *testing.T) {
		// The advisory-materials route costs 200 tokens, so a fresh
		// 1000-token bucket allows five requests before refill matters.
		var lastCode int
		for j := 0; j < 10; j++ {
			req := httptest.NewRequest("GET", "/adcom/materials", nil)
			req.RemoteAddr = "198.51.100.2:1234"
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			lastCode = rr.Code
		}

		if lastCode != http.StatusTooManyRequests {
			t.Errorf("Expected status 429 after exhausting bucket, got %d", lastCode)
		}
	})

	t.Run("429 carries Retry-After", func(t *testing.T) {
		for j := 0; j < 10; j++ {
			req := httptest.NewRequest("GET", "/adcom/materials", nil)
			req.RemoteAddr = "198.51.100.3:1234"
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code == http.StatusTooManyRequests {
				if rr.Header().Get("Retry-After") != "60" {
					t.Errorf("Retry-After = %q, want 60", rr.Header().Get("Retry-After"))
				}
				if rr.Header().Get("X-RateLimit-Remaining") != "0" {
					t.Errorf("X-RateLimit-Remaining = %q, want 0", rr.Header().Get("X-RateLimit-Remaining"))
				}
				return
			}
		}
		t.Error("Bucket never exhausted")
	})

	t.Run("clients are limited independently", func(t *testing.T) {
		for j := 0; j < 10; j++ {
			req := httptest.NewRequest("GET", "/adcom/materials", nil)
			req.RemoteAddr = "198.51.100.4:1234"
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest("GET", "/adcom/materials", nil)
		req.RemoteAddr = "198.51.100.5:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("Fresh client should not be limited, got %d", rr.Code)
		}
	})
}
