// Package feed handles downloading and parsing the league's CSV feeds.
package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/model"
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client downloads and parses league feeds.
type Client struct {
	client  HTTPClient
	timeout time.Duration
}

// New creates a Client with the given HTTP client.
func New(client HTTPClient) *Client {
	return &Client{
		client:  client,
		timeout: 30 * time.Second,
	}
}

// FetchResults downloads the results feed and returns the finished duels,
// discarding rows whose division is not part of the league.
func (c *Client) FetchResults(ctx context.Context, url string) ([]model.Result, error) {
	records, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	var results []model.Result
	for _, rec := range records {
		if len(rec) < 8 {
			continue
		}
		div, ok := model.ParseDivision(rec[0])
		if !ok {
			continue
		}
		results = append(results, model.Result{
			Division: div,
			Date:     rec[3],
			Score:    rec[4],
			Home:     rec[5],
			Away:     rec[6],
			DuelURL:  rec[7],
		})
	}
	return results, nil
}

// FetchFixtures downloads the schedule or calendar feed and returns the
// upcoming duels. The time label keeps only HH:MM.
func (c *Client) FetchFixtures(ctx context.Context, url string) ([]model.Fixture, error) {
	records, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	var fixtures []model.Fixture
	for _, rec := range records {
		if len(rec) < 9 {
			continue
		}
		div, ok := model.ParseDivision(rec[0])
		if !ok {
			continue
		}
		fixtures = append(fixtures, model.Fixture{
			Division: div,
			Home:     rec[1],
			Away:     rec[2],
			Time:     trimSeconds(rec[5]),
			HomeURL:  rec[6],
			AwayURL:  rec[7],
			DuelURL:  rec[8],
		})
	}
	return fixtures, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "CarcassonneSpainBot/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(body)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return records, nil
}

// trimSeconds drops the seconds from a HH:MM:SS label.
func trimSeconds(t string) string {
	if len(t) > 3 {
		return t[:len(t)-3]
	}
	return t
}
