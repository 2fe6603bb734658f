package seasonsim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitLeague registers all teams and recruits with the service.
// Teams go first so recruit offer sheets resolve on arrival.
func submitLeague(ctx context.Context, config *Config, teams []Team, recruits []Recruit, stats *Stats) error {
	client := newHTTPClient(config.Timeout)

	log.Printf("📤 Submitting %d teams...", len(teams))
	teamsOK, teamsFailed := submitBatch(ctx, config, client, config.BaseURL+"/teams", len(teams), func(i int) interface{} {
		return teams[i]
	})
	stats.TeamsSubmitted = teamsOK

	log.Printf("📤 Submitting %d recruits with %d workers...", len(recruits), config.Workers)
	recruitsOK, recruitsFailed := submitBatch(ctx, config, client, config.BaseURL+"/recruits", len(recruits), func(i int) interface{} {
		return recruits[i]
	})
	stats.RecruitsSubmitted = recruitsOK
	stats.SubmissionsFailed = teamsFailed + recruitsFailed

	log.Printf(`✅ League submission completed:
   Teams: %d (failed: %d)
   Recruits: %d (failed: %d)
`, teamsOK, teamsFailed, recruitsOK, recruitsFailed)

	if teamsOK == 0 || recruitsOK == 0 {
		return fmt.Errorf("league submission failed: %d teams, %d recruits accepted", teamsOK, recruitsOK)
	}
	return nil
}

// submitBatch posts n payloads concurrently and returns success and failure counts.
func submitBatch(ctx context.Context, config *Config, client *HTTPClient, url string, n int, payload func(int) interface{}) (int, int) {
	var (
		successful int64
		failed     int64
	)

	indexChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
					if submitSinglePayload(ctx, client, url, payload(index)) {
						atomic.AddInt64(&successful, 1)
					} else {
						atomic.AddInt64(&failed, 1)
					}
				}
			}
		}()
	}

	go func() {
		defer close(indexChan)
		for i := 0; i < n; i++ {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	wg.Wait()
	return int(atomic.LoadInt64(&successful)), int(atomic.LoadInt64(&failed))
}

// submitSinglePayload posts one payload and reports acceptance.
func submitSinglePayload(ctx context.Context, client *HTTPClient, url string, payload interface{}) bool {
	resp, err := client.Post(ctx, url, payload)
	if err != nil {
		return false
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return false
	}

	if resp.StatusCode != StatusAccepted {
		return false
	}

	var ack AckResponse
	if err := unmarshalJSON(body, &ack); err == nil && ack.Status == "accepted" {
		return true
	}
	return true // Assume success for 202 even if parsing fails
}

// triggerSweep queues a league-wide recompute for the given week.
func triggerSweep(ctx context.Context, config *Config, client *HTTPClient, week int, stats *Stats) error {
	url := config.BaseURL + "/recompute"

	resp, err := client.Post(ctx, url, map[string]int{"week": week})
	if err != nil {
		return fmt.Errorf("sweep request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read sweep response: %w", err)
	}

	if resp.StatusCode != StatusAccepted {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var sweep RecomputeResponse
	if err := unmarshalJSON(body, &sweep); err != nil {
		return fmt.Errorf("failed to parse sweep response: %w", err)
	}

	stats.SweepsQueued += sweep.Queued
	log.Printf("🔄 Week %d sweep queued %d rebuilds", week, sweep.Queued)
	return nil
}
