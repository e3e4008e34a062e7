// internal/dashboard/httpsources.go
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "outfit-orchestrator/internal/common/errors"
	"outfit-orchestrator/internal/common/httpclient"
	"outfit-orchestrator/internal/models"
)

// HTTPSources implements the remote dashboard sources against the
// analytics service. One client covers summary, history, trending, and
// top items; each method is called independently by the aggregator so a
// failure in one never affects the others.
type HTTPSources struct {
	baseURL string
	http    *httpclient.Client
}

func NewHTTPSources(baseURL string, timeout time.Duration) *HTTPSources {
	return &HTTPSources{
		baseURL: baseURL,
		http:    httpclient.New("dashboard", timeout, httpclient.DefaultBackoff),
	}
}

func (s *HTTPSources) Summary(ctx context.Context, user models.User) (WardrobeSummary, error) {
	var summary WardrobeSummary
	if err := s.getJSON(ctx, user, "/dashboard/summary", &summary); err != nil {
		return WardrobeSummary{}, err
	}
	return summary, nil
}

func (s *HTTPSources) OutfitsThisWeek(ctx context.Context, user models.User) (int, error) {
	var payload struct {
		OutfitsThisWeek int `json:"outfitsThisWeek"`
	}
	if err := s.getJSON(ctx, user, "/dashboard/history/week", &payload); err != nil {
		return 0, err
	}
	return payload.OutfitsThisWeek, nil
}

func (s *HTTPSources) Trending(ctx context.Context, user models.User) ([]models.Collection, error) {
	var collections []models.Collection
	if err := s.getJSON(ctx, user, "/dashboard/trending", &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (s *HTTPSources) TopItems(ctx context.Context, user models.User) ([]models.TopItem, error) {
	var items []models.TopItem
	if err := s.getJSON(ctx, user, "/dashboard/top-items", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *HTTPSources) getJSON(ctx context.Context, user models.User, path string, out interface{}) error {
	resp, err := s.http.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, s.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		if user.Token != "" {
			req.Header.Set("Authorization", "Bearer "+user.Token)
		}
		req.Header.Set("X-User-ID", user.ID)
		return req, nil
	})
	if err != nil {
		return apperrors.NewDashboardFetchFailedError(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.NewDashboardFetchFailedError(path, fmt.Errorf("dashboard api status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewDashboardFetchFailedError(path, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewDashboardFetchFailedError(path, err)
	}
	return nil
}

// CacheSuggestion serves today's suggestion straight from the daily outfit
// cache instead of a remote call.
type CacheSuggestion struct {
	reader TodayReader
}

// TodayReader is the slice of the orchestrator the suggestion source needs.
type TodayReader interface {
	Today(ctx context.Context, user models.User) *models.GeneratedOutfit
}

func NewCacheSuggestion(reader TodayReader) *CacheSuggestion {
	return &CacheSuggestion{reader: reader}
}

func (s *CacheSuggestion) TodaysSuggestion(ctx context.Context, user models.User) (models.TodaysSuggestion, error) {
	outfit := s.reader.Today(ctx, user)
	if outfit == nil {
		return models.TodaysSuggestion{}, nil
	}
	return models.TodaysSuggestion{
		OutfitID:   outfit.ID,
		Name:       outfit.Name,
		Confidence: outfit.Confidence,
		IsWorn:     outfit.IsWorn,
	}, nil
}
