package footballdata

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lnjp/matchday-api/internal/platform/logging"
	"github.com/lnjp/matchday-api/internal/platform/resilience"
	"github.com/lnjp/matchday-api/internal/usecase"
)

const scheduledMatchesPayload = `{
  "matches": [
    {
      "id": 501,
      "matchday": 4,
      "utcDate": "2026-09-12T19:00:00Z",
      "homeTeam": {"name": "Paris Saint-Germain FC", "shortName": "PSG", "crest": "https://crests.example/psg.png"},
      "awayTeam": {"name": "Olympique Lyonnais", "shortName": "Lyon", "crest": "https://crests.example/ol.png"}
    },
    {
      "id": 502,
      "matchday": 4,
      "utcDate": "2026-09-13T15:00:00Z",
      "homeTeam": {"name": "RC Lens", "shortName": "", "crest": ""},
      "awayTeam": {"name": "LOSC Lille", "shortName": "Lille", "crest": ""}
    }
  ]
}`

func newTestClient(t *testing.T, serverURL string, maxRetries int, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	return NewClient(ClientConfig{
		BaseURL:         serverURL,
		Token:           "test-token",
		CompetitionCode: "FL1",
		Timeout:         2 * time.Second,
		MaxRetries:      maxRetries,
		Logger:          logging.NewNop(),
		CircuitBreaker:  breaker,
	})
}

func TestClient_ScheduledMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Auth-Token"); got != "test-token" {
			t.Errorf("expected auth token header, got %q", got)
		}
		if !strings.HasPrefix(r.URL.Path, "/competitions/FL1/matches") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("status"); got != "SCHEDULED" {
			t.Errorf("expected status=SCHEDULED, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(scheduledMatchesPayload))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 0, resilience.CircuitBreakerConfig{})

	matches, err := client.ScheduledMatches(t.Context())
	if err != nil {
		t.Fatalf("scheduled matches failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	first := matches[0]
	if first.ExternalMatchID != 501 || first.Matchday != 4 {
		t.Fatalf("unexpected first match: %+v", first)
	}
	if first.HomeTeam != "PSG" || first.AwayTeam != "Lyon" {
		t.Fatalf("expected short names, got %q vs %q", first.HomeTeam, first.AwayTeam)
	}
	wantKickoff := time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC)
	if !first.KickoffAt.Equal(wantKickoff) {
		t.Fatalf("expected kickoff %v, got %v", wantKickoff, first.KickoffAt)
	}

	// Falls back to the full name when the short name is absent.
	if matches[1].HomeTeam != "RC Lens" {
		t.Fatalf("expected full-name fallback, got %q", matches[1].HomeTeam)
	}
}

func TestClient_ScheduledMatches_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(scheduledMatchesPayload))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1, resilience.CircuitBreakerConfig{})

	matches, err := client.ScheduledMatches(t.Context())
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestClient_ScheduledMatches_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "restricted"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 2, resilience.CircuitBreakerConfig{})

	if _, err := client.ScheduledMatches(t.Context()); err == nil {
		t.Fatalf("expected error on 403")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected no retry on 403, got %d attempts", calls.Load())
	}
}

func TestClient_ScheduledMatches_CircuitOpens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	if _, err := client.ScheduledMatches(t.Context()); err == nil {
		t.Fatalf("expected first call to fail")
	}

	_, err := client.ScheduledMatches(t.Context())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected open circuit to reject with ErrDependencyUnavailable, got %v", err)
	}
}
