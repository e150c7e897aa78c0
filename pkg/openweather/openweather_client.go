package openweather

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	HttpClient *http.Client
	ApiKey     string
	BaseUrl    string
}

func New(apiKey string) *Client {
	return &Client{
		HttpClient: &http.Client{Timeout: 5 * time.Second},
		ApiKey:     apiKey,
		BaseUrl:    "https://api.openweathermap.org/data/2.5",
	}
}

// CurrentConditions is the subset of the openweathermap current weather
// response we care about. Units are imperial, so Wind.Speed is mph and
// Main.Temp is fahrenheit.
type CurrentConditions struct {
	Name string `json:"name"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain    map[string]float64 `json:"rain"`
	Snow    map[string]float64 `json:"snow"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

func (c CurrentConditions) Precipitating() bool {
	if len(c.Rain) > 0 || len(c.Snow) > 0 {
		return true
	}
	for _, w := range c.Weather {
		switch w.Main {
		case "Rain", "Snow", "Drizzle", "Thunderstorm":
			return true
		}
	}
	return false
}

func (c *Client) GetCurrentConditions(city string) (*CurrentConditions, error) {
	requestUrl := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=imperial", c.BaseUrl, url.QueryEscape(city), c.ApiKey)
	req, err := http.NewRequest(http.MethodGet, requestUrl, nil)
	if err != nil {
		return nil, err
	}
	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed with status code %d: %s", response.StatusCode, string(responseBytes))
	}

	conditions := CurrentConditions{}
	if err := json.Unmarshal(responseBytes, &conditions); err != nil {
		return nil, err
	}

	return &conditions, nil
}
