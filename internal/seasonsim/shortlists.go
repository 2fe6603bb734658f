package seasonsim

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// retrieveShortlists fetches shortlists for all recruits concurrently.
func retrieveShortlists(ctx context.Context, config *Config, recruits []Recruit, week int, stats *Stats) (map[string]ShortlistResult, error) {
	log.Printf("🎯 Retrieving shortlists for %d recruits with %d workers...", len(recruits), config.Workers)

	client := newHTTPClient(config.Timeout)

	results := make([]ShortlistResult, len(recruits))
	retrievedFlags := make([]bool, len(recruits))
	var (
		retrieved int64
		failed    int64
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
					recruitID := recruits[index].ID
					result, err := retrieveSingleShortlist(ctx, client, config.BaseURL, recruitID, week)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Failed to get shortlist for %s: %v", recruitID, err)
						}
					} else {
						results[index] = result
						retrievedFlags[index] = true
						atomic.AddInt64(&retrieved, 1)
					}
				}
			}
		}()
	}

	go func() {
		defer close(indexChan)
		for i := range recruits {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	wg.Wait()

	shortlists := make(map[string]ShortlistResult, len(recruits))
	for i, ok := range retrievedFlags {
		if ok {
			shortlists[recruits[i].ID] = results[i]
		}
	}

	stats.ShortlistsRetrieved += len(shortlists)
	stats.ShortlistFailures += int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Shortlist retrieval completed:
   Retrieved: %d
   Failed: %d
`, len(shortlists), int(atomic.LoadInt64(&failed)))

	return shortlists, nil
}

// retrieveSingleShortlist fetches the shortlist for one recruit.
func retrieveSingleShortlist(ctx context.Context, client *HTTPClient, baseURL, recruitID string, week int) (ShortlistResult, error) {
	url := fmt.Sprintf("%s/shortlist/%s?week=%d", baseURL, recruitID, week)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return ShortlistResult{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return ShortlistResult{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return ShortlistResult{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var result ShortlistResult
	if err := unmarshalJSON(body, &result); err != nil {
		return ShortlistResult{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return result, nil
}

// getBoard retrieves the top N recruiting board entries.
func getBoard(ctx context.Context, config *Config, stats *Stats) ([]BoardEntry, error) {
	log.Printf("🔥 Getting top %d board entries...", config.TopN)

	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/board?limit=%d", config.BaseURL, config.TopN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var entries []BoardEntry
	if err := unmarshalJSON(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.BoardEntries = len(entries)
	log.Printf("✅ Retrieved %d board entries", len(entries))

	return entries, nil
}

// getQuestDeck retrieves the sponsor quest deck for the given week.
func getQuestDeck(ctx context.Context, config *Config, week int, stats *Stats) ([]SponsorQuest, error) {
	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/quests/deck?week=%d", config.BaseURL, week)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var deck []SponsorQuest
	if err := unmarshalJSON(body, &deck); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.QuestsDealt += len(deck)
	log.Printf("🃏 Week %d quest deck dealt %d quests", week, len(deck))

	return deck, nil
}
