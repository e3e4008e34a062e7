// internal/wear/tracker.go
package wear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "outfit-orchestrator/internal/common/errors"
	"outfit-orchestrator/internal/common/httpclient"
	"outfit-orchestrator/internal/models"
)

// Record is the payload sent to the wear tracking service when an outfit
// is worn.
type Record struct {
	OutfitID  string                 `json:"outfitId"`
	Items     []models.OutfitItem    `json:"items"`
	Timestamp time.Time              `json:"timestamp"`
	Occasion  string                 `json:"occasion"`
	Mood      string                 `json:"mood"`
	Weather   models.WeatherSnapshot `json:"weather"`
	Notes     string                 `json:"notes,omitempty"`
	Tags      []string               `json:"tags,omitempty"`
}

// Tracker persists wear records in the history service.
type Tracker interface {
	Track(ctx context.Context, user models.User, record Record) error
}

// HTTPTracker is the production Tracker backed by the wear tracking API.
type HTTPTracker struct {
	baseURL string
	http    *httpclient.Client
}

func NewHTTPTracker(baseURL string, timeout time.Duration) *HTTPTracker {
	return &HTTPTracker{
		baseURL: baseURL,
		http:    httpclient.New("wear_tracking", timeout, httpclient.DefaultBackoff),
	}
}

func (t *HTTPTracker) Track(ctx context.Context, user models.User, record Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return apperrors.NewWearTrackingFailedError(err)
	}

	resp, err := t.http.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, t.baseURL+"/wear", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if user.Token != "" {
			req.Header.Set("Authorization", "Bearer "+user.Token)
		}
		req.Header.Set("X-User-ID", user.ID)
		return req, nil
	})
	if err != nil {
		return apperrors.NewWearTrackingFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apperrors.NewWearTrackingFailedError(fmt.Errorf("wear tracking api status %d", resp.StatusCode))
	}
	return nil
}
