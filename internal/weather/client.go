// internal/weather/client.go
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	apperrors "outfit-orchestrator/internal/common/errors"
	"outfit-orchestrator/internal/common/httpclient"
	"outfit-orchestrator/internal/models"
)

// Client fetches current conditions from the weather collaborator.
type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpclient.New("weather", timeout, httpclient.DefaultBackoff),
	}
}

type currentResponse struct {
	TemperatureF float64 `json:"temperatureF"`
	Condition    string  `json:"condition"`
	Humidity     int     `json:"humidity"`
	WindSpeedMph float64 `json:"windSpeedMph"`
	Location     string  `json:"location"`
}

// FetchByLocation returns the current snapshot for a location.
func (c *Client) FetchByLocation(ctx context.Context, location string) (models.WeatherSnapshot, error) {
	resp, err := c.http.Do(ctx, func() (*http.Request, error) {
		u := fmt.Sprintf("%s/current?location=%s", c.baseURL, url.QueryEscape(location))
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		if c.apiKey != "" {
			req.Header.Set("X-Api-Key", c.apiKey)
		}
		return req, nil
	})
	if err != nil {
		return models.WeatherSnapshot{}, apperrors.NewWeatherFetchFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.WeatherSnapshot{}, apperrors.NewWeatherFetchFailedError(fmt.Errorf("weather api status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.WeatherSnapshot{}, apperrors.NewWeatherFetchFailedError(err)
	}

	var cur currentResponse
	if err := json.Unmarshal(body, &cur); err != nil {
		return models.WeatherSnapshot{}, apperrors.NewWeatherFetchFailedError(fmt.Errorf("decode weather response: %w", err))
	}

	return models.WeatherSnapshot{
		Temperature: cur.TemperatureF,
		Condition:   cur.Condition,
		Humidity:    cur.Humidity,
		WindSpeed:   cur.WindSpeedMph,
		Location:    cur.Location,
		FetchedAt:   time.Now().UTC(),
	}, nil
}
