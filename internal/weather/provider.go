// internal/weather/provider.go
package weather

import (
	"context"

	"outfit-orchestrator/internal/models"
)

// Provider abstracts the upstream weather API.
type Provider interface {
	FetchByLocation(ctx context.Context, location string) (models.WeatherSnapshot, error)
}
