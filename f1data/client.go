package f1data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client fetches classification data from an Ergast-compatible F1 API
// (e.g. Jolpica). Responses are cached through the injected Cache so that
// standings aggregation does not re-fetch every prior round.
type Client struct {
	baseURL string
	http    *http.Client
	cache   Cache
}

// NewClient creates a Client for the given API base URL, e.g.
// "https://api.jolpi.ca/ergast/f1". A nil cache disables caching.
func NewClient(baseURL string, cache Cache) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   cache,
	}
}

type ergastResponse struct {
	MRData struct {
		RaceTable struct {
			Races []struct {
				Results           []ergastResult     `json:"Results"`
				QualifyingResults []ergastQualifying `json:"QualifyingResults"`
				Laps              []json.RawMessage  `json:"Laps"`
			} `json:"Races"`
		} `json:"RaceTable"`
	} `json:"MRData"`
}

type ergastDriver struct {
	Code            string `json:"code"`
	PermanentNumber string `json:"permanentNumber"`
	GivenName       string `json:"givenName"`
	FamilyName      string `json:"familyName"`
}

type ergastConstructor struct {
	Name string `json:"name"`
}

type ergastResult struct {
	Number       string            `json:"number"`
	PositionText string            `json:"positionText"`
	Points       string            `json:"points"`
	Grid         string            `json:"grid"`
	Status       string            `json:"status"`
	Driver       ergastDriver      `json:"Driver"`
	Constructor  ergastConstructor `json:"Constructor"`
}

type ergastQualifying struct {
	Number      string            `json:"number"`
	Position    string            `json:"position"`
	Driver      ergastDriver      `json:"Driver"`
	Constructor ergastConstructor `json:"Constructor"`
	Q1          string            `json:"Q1"`
	Q2          string            `json:"Q2"`
	Q3          string            `json:"Q3"`
}

// RaceResults returns the race classification for a round. A competitor that
// did not classify (retired, disqualified) has a nil Position.
func (c *Client) RaceResults(ctx context.Context, year, round int) ([]SessionRow, error) {
	body, err := c.fetch(ctx, fmt.Sprintf("%d/%d/results", year, round))
	if err != nil {
		return nil, err
	}

	var resp ergastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding race results: %w", err)
	}
	if len(resp.MRData.RaceTable.Races) == 0 {
		return nil, nil
	}

	results := resp.MRData.RaceTable.Races[0].Results
	rows := make([]SessionRow, 0, len(results))
	for _, r := range results {
		row := SessionRow{
			DriverNumber: atoiOr(r.Number, atoiOr(r.Driver.PermanentNumber, 0)),
			Driver:       r.Driver.Code,
			FullName:     r.Driver.GivenName + " " + r.Driver.FamilyName,
			Team:         r.Constructor.Name,
			Status:       r.Status,
		}
		// Non-numeric positionText ("R", "D", "W") means not classified.
		if pos, err := strconv.Atoi(r.PositionText); err == nil {
			row.Position = &pos
		}
		if grid, err := strconv.Atoi(r.Grid); err == nil {
			row.GridPosition = &grid
		}
		if pts, err := strconv.ParseFloat(r.Points, 64); err == nil {
			row.Points = &pts
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// QualifyingResults returns the qualifying classification for a round,
// ordered by position as delivered by the API.
func (c *Client) QualifyingResults(ctx context.Context, year, round int) ([]SessionRow, error) {
	body, err := c.fetch(ctx, fmt.Sprintf("%d/%d/qualifying", year, round))
	if err != nil {
		return nil, err
	}

	var resp ergastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding qualifying results: %w", err)
	}
	if len(resp.MRData.RaceTable.Races) == 0 {
		return nil, nil
	}

	results := resp.MRData.RaceTable.Races[0].QualifyingResults
	rows := make([]SessionRow, 0, len(results))
	for _, q := range results {
		row := SessionRow{
			DriverNumber: atoiOr(q.Number, atoiOr(q.Driver.PermanentNumber, 0)),
			Driver:       q.Driver.Code,
			FullName:     q.Driver.GivenName + " " + q.Driver.FamilyName,
			Team:         q.Constructor.Name,
			Q1:           parseLapTime(q.Q1),
			Q2:           parseLapTime(q.Q2),
			Q3:           parseLapTime(q.Q3),
		}
		if pos, err := strconv.Atoi(q.Position); err == nil {
			row.Position = &pos
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// HasLapData reports whether per-lap timing exists for the round.
func (c *Client) HasLapData(ctx context.Context, year, round int) (bool, error) {
	body, err := c.fetch(ctx, fmt.Sprintf("%d/%d/laps", year, round))
	if err != nil {
		return false, err
	}

	var resp ergastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("decoding laps: %w", err)
	}
	races := resp.MRData.RaceTable.Races
	return len(races) > 0 && len(races[0].Laps) > 0, nil
}

func (c *Client) fetch(ctx context.Context, key string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(key); ok {
			return body, nil
		}
	}

	url := fmt.Sprintf("%s/%s.json?limit=100", c.baseURL, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", key, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", key, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	if c.cache != nil {
		c.cache.Set(key, body)
	}
	return body, nil
}

func atoiOr(s string, fallback int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return fallback
}

// parseLapTime parses "m:ss.mmm" (or bare seconds) into a duration.
func parseLapTime(s string) *time.Duration {
	if s == "" {
		return nil
	}

	var mins int
	secsPart := s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		m, err := strconv.Atoi(s[:i])
		if err != nil {
			return nil
		}
		mins = m
		secsPart = s[i+1:]
	}

	secs, err := strconv.ParseFloat(secsPart, 64)
	if err != nil {
		return nil
	}

	d := time.Duration(mins)*time.Minute + time.Duration(secs*float64(time.Second))
	return &d
}
