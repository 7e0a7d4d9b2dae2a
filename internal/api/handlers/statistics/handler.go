package statistics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/kyros-barber/KB-BookingService/internal/api/handlers"
	"github.com/kyros-barber/KB-BookingService/internal/api/middleware"
	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/service/statistics"
)

const (
	msgInvalidLimit  = "некорректный лимит"
	msgInvalidPeriod = "некорректный период, ожидается day, week или month"
	msgAccessDenied  = "доступ запрещен"

	defaultPopularServicesLimit = 5
)

type Handler struct {
	service StatisticsService
	logger  Logger
}

func NewHandler(service StatisticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleBranchCounts GET /api/v1/statistics/branches
// Количество записей по филиалам, только для владельца
func (h *Handler) HandleBranchCounts(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "GET /statistics/branches")
	if !ok {
		return
	}

	result, err := h.service.BranchCounts(r.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, statistics.ErrAccessDenied):
			h.logger.Warn("GET /statistics/branches - Access denied: business_id=%d", actor.BusinessID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /statistics/branches - Failed to get branch counts: business_id=%d, error=%v", actor.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /statistics/branches - Branch counts retrieved successfully: business_id=%d, count=%d",
		actor.BusinessID, len(result.Branches))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandlePopularServices GET /api/v1/statistics/services
// Query params: limit (опционально)
func (h *Handler) HandlePopularServices(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "GET /statistics/services")
	if !ok {
		return
	}

	limit := uint64(defaultPopularServicesLimit)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.ParseUint(limitStr, 10, 64)
		if err != nil || parsed == 0 {
			h.logger.Warn("GET /statistics/services - Invalid limit: %q", limitStr)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	result, err := h.service.PopularServices(r.Context(), actor, limit)
	if err != nil {
		h.logger.Error("GET /statistics/services - Failed to get popular services: business_id=%d, error=%v", actor.BusinessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /statistics/services - Popular services retrieved successfully: business_id=%d, count=%d",
		actor.BusinessID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleRevenue GET /api/v1/statistics/revenue?period=day|week|month
func (h *Handler) HandleRevenue(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "GET /statistics/revenue")
	if !ok {
		return
	}

	period := r.URL.Query().Get("period")

	result, err := h.service.Revenue(r.Context(), actor, period)
	if err != nil {
		switch {
		case errors.Is(err, statistics.ErrInvalidPeriod):
			h.logger.Warn("GET /statistics/revenue - Invalid period: %q", period)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, statistics.ErrAccessDenied):
			h.logger.Warn("GET /statistics/revenue - Access denied: business_id=%d", actor.BusinessID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /statistics/revenue - Failed to get revenue: business_id=%d, error=%v", actor.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /statistics/revenue - Revenue retrieved successfully: business_id=%d, period=%s, total=%.2f",
		actor.BusinessID, result.Period, result.TotalRevenue)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) actorFrom(w http.ResponseWriter, r *http.Request, route string) (domain.ActorContext, bool) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		h.logger.Error("%s - Actor missing in context", route)
		handlers.RespondInternalError(w)
		return domain.ActorContext{}, false
	}
	return actor, true
}
