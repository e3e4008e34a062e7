// internal/api/http/routes.go
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "outfit-orchestrator/internal/common/errors"
	"outfit-orchestrator/internal/common/logger"
	"outfit-orchestrator/internal/common/observability"
	"outfit-orchestrator/internal/dashboard"
	"outfit-orchestrator/internal/models"
	"outfit-orchestrator/internal/outfit"
	"outfit-orchestrator/internal/wear"
)

// Pinger is the health probe for the backing cache store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler exposes the orchestration actions over HTTP.
type Handler struct {
	orch     *outfit.Orchestrator
	sync     *wear.Synchronizer
	agg      *dashboard.Aggregator
	pinger   Pinger
	obs      *observability.Observability
	validate *validator.Validate
	log      logger.Logger
}

func NewHandler(
	orch *outfit.Orchestrator,
	sync *wear.Synchronizer,
	agg *dashboard.Aggregator,
	pinger Pinger,
	obs *observability.Observability,
	log logger.Logger,
) *Handler {
	return &Handler{
		orch:     orch,
		sync:     sync,
		agg:      agg,
		pinger:   pinger,
		obs:      obs,
		validate: validator.New(),
		log:      log,
	}
}

// Register mounts all routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/healthz", h.health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")
	v1.Use(h.recordAction)
	v1.Post("/outfit/generate", h.generate)
	v1.Post("/outfit/regenerate", h.regenerate)
	v1.Post("/outfit/wear", h.markWorn)
	v1.Get("/outfit/today", h.today)
	v1.Delete("/outfit/today", h.clearToday)
	v1.Get("/dashboard", h.dashboard)
}

// recordAction feeds per-action counters and latency into the meter.
func (h *Handler) recordAction(c *fiber.Ctx) error {
	if h.obs == nil {
		return c.Next()
	}
	start := time.Now()
	err := c.Next()

	status := "success"
	if err != nil || c.Response().StatusCode() >= http.StatusBadRequest {
		status = "error"
	}
	h.obs.RecordAction(c.Context(), c.Path(), status)
	h.obs.RecordActionDuration(c.Context(), c.Path(), time.Since(start))
	return err
}

type wearRequest struct {
	Notes string   `json:"notes" validate:"max=500"`
	Tags  []string `json:"tags" validate:"max=10,dive,max=40"`
}

func (h *Handler) health(c *fiber.Ctx) error {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.Context()); err != nil {
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"cache":  err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) generate(c *fiber.Ctx) error {
	user, err := userFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	result, err := h.orch.GenerateDaily(c.Context(), user)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

func (h *Handler) regenerate(c *fiber.Ctx) error {
	user, err := userFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	result, err := h.orch.Regenerate(c.Context(), user)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

func (h *Handler) markWorn(c *fiber.Ctx) error {
	user, err := userFrom(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req wearRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return h.fail(c, apperrors.NewPreconditionError("request body"))
		}
	}
	if err := h.validate.Struct(&req); err != nil {
		return h.fail(c, apperrors.NewPreconditionError("request body"))
	}

	result, err := h.sync.MarkWorn(c.Context(), user, req.Notes, req.Tags)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

func (h *Handler) today(c *fiber.Ctx) error {
	user, err := userFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	result := h.orch.Today(c.Context(), user)
	if result == nil {
		return h.fail(c, apperrors.NewOutfitNotFoundError(user.ID, "today"))
	}
	return c.JSON(result)
}

func (h *Handler) clearToday(c *fiber.Ctx) error {
	user, err := userFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.orch.ClearToday(c.Context(), user); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *Handler) dashboard(c *fiber.Ctx) error {
	user, err := userFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(h.agg.Aggregate(c.Context(), user))
}

// userFrom builds the request identity from headers. Authentication itself
// happens upstream; this layer only needs a stable user id to key on.
func userFrom(c *fiber.Ctx) (models.User, error) {
	id := c.Get("X-User-ID")
	if id == "" {
		return models.User{}, apperrors.NewPreconditionError("X-User-ID header")
	}
	user := models.User{ID: id, Name: c.Get("X-User-Name")}
	const bearerPrefix = "Bearer "
	if auth := c.Get(fiber.HeaderAuthorization); len(auth) > len(bearerPrefix) && auth[:len(bearerPrefix)] == bearerPrefix {
		user.Token = auth[len(bearerPrefix):]
	}
	return user, nil
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	code := apperrors.CodeOf(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", map[string]interface{}{
			"path":  c.Path(),
			"code":  string(code),
			"error": err.Error(),
		})
	}
	body := fiber.Map{"message": err.Error()}
	if code != "" {
		body["code"] = string(code)
	}
	return c.Status(status).JSON(fiber.Map{"error": body})
}

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodePreconditionFailed:
		return http.StatusBadRequest
	case apperrors.ErrCodeOutfitNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeGenerationInFlight:
		return http.StatusConflict
	case apperrors.ErrCodeOwnershipMismatch:
		return http.StatusForbidden
	case apperrors.ErrCodeWearTrackingFailed, apperrors.ErrCodeGenerationFailed,
		apperrors.ErrCodeGenerationTimeout, apperrors.ErrCodeGenerationInvalidResponse,
		apperrors.ErrCodeWardrobeFetchFailed, apperrors.ErrCodeWeatherFetchFailed,
		apperrors.ErrCodeDashboardFetchFailed:
		return http.StatusBadGateway
	case apperrors.ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
