package footballdata

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/lnjp/matchday-api/internal/platform/logging"
	"github.com/lnjp/matchday-api/internal/platform/resilience"
	"github.com/lnjp/matchday-api/internal/usecase"
)

const (
	defaultBaseURL  = "https://api.football-data.org/v4"
	maxResponseSize = 4 << 20
)

var errFootballDataTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	HTTPClient      *http.Client
	BaseURL         string
	Token           string
	CompetitionCode string
	Timeout         time.Duration
	MaxRetries      int
	Logger          *logging.Logger
	CircuitBreaker  resilience.CircuitBreakerConfig
}

// Client reads the football-data.org v4 competition feed. It implements
// usecase.FixtureProvider.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	token           string
	competitionCode string
	maxRetries      int
	logger          *logging.Logger
	breaker         *resilience.CircuitBreaker
	circuitEnabled  bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:      httpClient,
		baseURL:         baseURL,
		token:           strings.TrimSpace(cfg.Token),
		competitionCode: strings.TrimSpace(cfg.CompetitionCode),
		maxRetries:      maxRetries,
		logger:          logger,
		breaker:         resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled:  breakerCfg.Enabled,
	}
}

type matchesEnvelope struct {
	Matches []matchItem `json:"matches"`
}

type matchItem struct {
	ID       int64     `json:"id"`
	Matchday int       `json:"matchday"`
	UTCDate  time.Time `json:"utcDate"`
	HomeTeam teamItem  `json:"homeTeam"`
	AwayTeam teamItem  `json:"awayTeam"`
}

type teamItem struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Crest     string `json:"crest"`
}

// ScheduledMatches fetches every SCHEDULED fixture of the configured
// competition.
func (c *Client) ScheduledMatches(ctx context.Context) ([]usecase.FixtureMatch, error) {
	if c.competitionCode == "" {
		return nil, fmt.Errorf("competition code is not configured")
	}

	path := fmt.Sprintf("/competitions/%s/matches?status=SCHEDULED", c.competitionCode)

	var envelope matchesEnvelope
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("fetch scheduled matches competition=%s: %w", c.competitionCode, err)
	}

	out := make([]usecase.FixtureMatch, 0, len(envelope.Matches))
	for _, item := range envelope.Matches {
		if item.ID <= 0 {
			continue
		}
		out = append(out, usecase.FixtureMatch{
			ExternalMatchID: item.ID,
			Matchday:        item.Matchday,
			KickoffAt:       item.UTCDate.UTC(),
			HomeTeam:        teamDisplayName(item.HomeTeam),
			AwayTeam:        teamDisplayName(item.AwayTeam),
			HomeCrest:       strings.TrimSpace(item.HomeTeam.Crest),
			AwayCrest:       strings.TrimSpace(item.AwayTeam.Crest),
		})
	}

	return out, nil
}

func teamDisplayName(team teamItem) string {
	if name := strings.TrimSpace(team.ShortName); name != "" {
		return name
	}
	return strings.TrimSpace(team.Name)
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.Warn("football-data circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: fixture feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	raw, err := c.executeRequest(ctx, c.baseURL+path)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errFootballDataTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Auth-Token", c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFootballDataTransient, err)
		} else {
			raw, readErr := readBody(resp)
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFootballDataTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: feed status=%d", errFootballDataTransient, resp.StatusCode)
			} else {
				return nil, fmt.Errorf("feed status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.Warn("football-data request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(http.MaxBytesReader(nil, resp.Body, maxResponseSize)); err != nil {
		return nil, err
	}

	out := make([]byte, len(buf.B))
	copy(out, buf.B)
	return out, nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
