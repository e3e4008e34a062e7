// internal/generation/client.go
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	apperrors "outfit-orchestrator/internal/common/errors"
	"outfit-orchestrator/internal/common/httpclient"
	"outfit-orchestrator/internal/models"
	"outfit-orchestrator/internal/styling"
)

// Request is the payload sent to the generation service.
type Request struct {
	Occasion styling.Occasion       `json:"occasion"`
	Style    styling.Style          `json:"style"`
	Mood     styling.Mood           `json:"mood"`
	Weather  models.WeatherSnapshot `json:"weather"`
	Wardrobe []models.WardrobeItem  `json:"wardrobe"`
	Profile  RequestProfile         `json:"profile"`
}

// RequestProfile carries the minimal user context the service personalizes on.
type RequestProfile struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
}

type response struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Items      []models.OutfitItem `json:"items"`
	Reasoning  string              `json:"reasoning"`
	Confidence float64             `json:"confidence"`
}

// Client calls the outfit generation service.
type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
	schema  *gojsonschema.Schema
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchema))
	if err != nil {
		// The schema is a compile-time constant; failing here is a programming error.
		panic(fmt.Sprintf("generation response schema invalid: %v", err))
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpclient.New("generation", timeout, httpclient.BackoffConfig{MaxRetries: 0, InitialInterval: time.Second}),
		schema:  schema,
	}
}

// Generate requests an outfit. Timeouts, non-success statuses, and schema
// violations all come back as errors for the orchestrator's fallback path.
func (c *Client) Generate(ctx context.Context, req Request) (*models.GeneratedOutfit, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.NewGenerationFailedError(err)
	}

	resp, err := c.http.Do(ctx, func() (*http.Request, error) {
		httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/generate", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			httpReq.Header.Set("X-Api-Key", c.apiKey)
		}
		return httpReq, nil
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.NewGenerationTimeoutError()
		}
		return nil, apperrors.NewGenerationFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewGenerationFailedError(fmt.Errorf("generation api status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewGenerationFailedError(err)
	}

	if err := c.validate(body); err != nil {
		return nil, err
	}

	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperrors.NewGenerationInvalidResponseError(err.Error())
	}

	return &models.GeneratedOutfit{
		ID:         out.ID,
		Name:       out.Name,
		Items:      out.Items,
		Reasoning:  out.Reasoning,
		Confidence: out.Confidence,
	}, nil
}

func (c *Client) validate(body []byte) error {
	result, err := c.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return apperrors.NewGenerationInvalidResponseError(err.Error())
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return apperrors.NewGenerationInvalidResponseError(strings.Join(msgs, "; "))
	}
	return nil
}
