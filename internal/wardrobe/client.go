// internal/wardrobe/client.go
package wardrobe

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

// Client fetches the user's stored wardrobe catalog.
type Client struct {
	baseURL string
	http    *httpclient.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    httpclient.New("wardrobe", timeout, httpclient.DefaultBackoff),
	}
}

// Items returns the catalog for the authenticated user. Callers treat a
// failure here as non-fatal and degrade to an empty wardrobe.
func (c *Client) Items(ctx context.Context, user models.User) ([]models.WardrobeItem, error) {
	resp, err := c.http.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, c.baseURL+"/wardrobe", nil)
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
		return nil, apperrors.NewWardrobeFetchFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewWardrobeFetchFailedError(fmt.Errorf("wardrobe api status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewWardrobeFetchFailedError(err)
	}

	var items []models.WardrobeItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, apperrors.NewWardrobeFetchFailedError(fmt.Errorf("decode wardrobe response: %w", err))
	}

	return items, nil
}
