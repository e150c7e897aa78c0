package sportsdataio

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"propfactor/internal/logger"
)

type Client struct {
	HttpClient *http.Client
	ApiKey     string
	BaseUrl    string

	// transient failures (network errors, 429s) are retried this many
	// times with RetryWait between attempts
	RetryAttempts int
	RetryWait     time.Duration
}

func New(apiKey string) *Client {
	return &Client{
		HttpClient:    &http.Client{Timeout: 10 * time.Second},
		ApiKey:        apiKey,
		BaseUrl:       "https://api.sportsdata.io/v3/nfl",
		RetryAttempts: 3,
		RetryWait:     2 * time.Second,
	}
}

// FlexInt tolerates the API sending ids as either numbers or strings,
// which it does depending on the endpoint.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("cannot parse %q as an id: %w", s, err)
		}
		*f = FlexInt(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

type PlayerGameProjection struct {
	PlayerID          FlexInt `json:"PlayerID"`
	Name              string  `json:"Name"`
	Team              string  `json:"Team"`
	Opponent          string  `json:"Opponent"`
	Position          string  `json:"Position"`
	PassingYards      float64 `json:"PassingYards"`
	PassingTouchdowns float64 `json:"PassingTouchdowns"`
	RushingYards      float64 `json:"RushingYards"`
	ReceivingYards    float64 `json:"ReceivingYards"`
	Receptions        float64 `json:"Receptions"`
}

type DepthChartPosition struct {
	PlayerID   FlexInt `json:"PlayerID"`
	Name       string  `json:"Name"`
	Position   string  `json:"Position"`
	DepthOrder int     `json:"DepthOrder"`
}

type TeamDepthChart struct {
	Team    string               `json:"Team"`
	Offense []DepthChartPosition `json:"Offense"`
}

type PlayerGameStats struct {
	PlayerID               FlexInt `json:"PlayerID"`
	Name                   string  `json:"Name"`
	Team                   string  `json:"Team"`
	Position               string  `json:"Position"`
	OffensiveSnapsPlayed   float64 `json:"OffensiveSnapsPlayed"`
	OffensiveTeamSnaps     float64 `json:"OffensiveTeamSnaps"`
	RushingAttempts        float64 `json:"RushingAttempts"`
	Targets                float64 `json:"Targets"`
	RedZoneTargets         float64 `json:"RedZoneTargets"`
	RedZoneRushingAttempts float64 `json:"RedZoneRushingAttempts"`
}

type PlayerInjury struct {
	PlayerID FlexInt `json:"PlayerID"`
	Name     string  `json:"Name"`
	Team     string  `json:"Team"`
	Position string  `json:"Position"`
	Status   string  `json:"Status"`
	BodyPart string  `json:"BodyPart"`
}

type Article struct {
	Title   string `json:"Title"`
	Author  string `json:"Author"`
	Content string `json:"Content"`
	Team    string `json:"Team"`
	Updated string `json:"Updated"`
}

func (c *Client) GetGameProjections(season, week int) ([]PlayerGameProjection, error) {
	out := []PlayerGameProjection{}
	err := c.get(fmt.Sprintf("/projections/json/PlayerGameProjectionStatsByWeek/%d/%d", season, week), &out)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projections for %d week %d: %w", season, week, err)
	}
	return out, nil
}

func (c *Client) GetDepthCharts() ([]TeamDepthChart, error) {
	out := []TeamDepthChart{}
	err := c.get("/scores/json/DepthCharts", &out)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch depth charts: %w", err)
	}
	return out, nil
}

func (c *Client) GetPlayerGameStats(season, week int, team string) ([]PlayerGameStats, error) {
	out := []PlayerGameStats{}
	err := c.get(fmt.Sprintf("/stats/json/PlayerGameStatsByTeam/%d/%d/%s", season, week, team), &out)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game stats for %s: %w", team, err)
	}
	return out, nil
}

func (c *Client) GetInjuries(season, week int) ([]PlayerInjury, error) {
	out := []PlayerInjury{}
	err := c.get(fmt.Sprintf("/scores/json/Injuries/%d/%d", season, week), &out)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch injuries for %d week %d: %w", season, week, err)
	}
	return out, nil
}

// GetRotoBallerArticles pulls beat reporter articles for a date
// (YYYY-MM-DD). News is best effort, so this uses a short timeout and
// no retries - a slow article feed shouldn't stall an analysis.
func (c *Client) GetRotoBallerArticles(date string) ([]Article, error) {
	short := *c
	short.HttpClient = &http.Client{Timeout: 5 * time.Second}
	short.RetryAttempts = 1

	out := []Article{}
	err := short.get(fmt.Sprintf("/articles-rotoballer/json/RotoBallerArticlesByDate/%s", date), &out)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch articles for %s: %w", date, err)
	}
	return out, nil
}

func (c *Client) get(path string, out interface{}) error {
	url := fmt.Sprintf("%s%s?key=%s", c.BaseUrl, path, c.ApiKey)

	attempts := c.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			logger.Debug("retrying sportsdataio request %s (attempt %d)", path, attempt+1)
			time.Sleep(c.RetryWait)
		}
		retry, err := c.getOnce(url, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			return err
		}
	}

	return lastErr
}

func (c *Client) getOnce(url string, out interface{}) (bool, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", "propfactor/1.0")

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return true, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return true, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	switch {
	case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden:
		return false, fmt.Errorf("sportsdataio rejected the api key (status %d): %s", response.StatusCode, string(responseBytes))
	case response.StatusCode == http.StatusTooManyRequests:
		logger.Debug("hit sportsdataio rate limit, backing off")
		return true, fmt.Errorf("rate limited with status %d", response.StatusCode)
	case response.StatusCode != http.StatusOK:
		return false, fmt.Errorf("failed with status code %d: %s", response.StatusCode, string(responseBytes))
	}

	if err := json.Unmarshal(responseBytes, out); err != nil {
		return false, fmt.Errorf("failed to parse sportsdataio response: %w", err)
	}

	return false, nil
}
