package manage_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kyros-barber/KB-BookingService/internal/api/handlers"
	"github.com/kyros-barber/KB-BookingService/internal/api/middleware"
	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/service/catalog"
	"github.com/kyros-barber/KB-BookingService/internal/service/catalog/models"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgAccessDenied       = "доступ запрещен"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/services
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "POST /services")
	if !ok {
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /services - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /services - Access denied: business_id=%d", actor.BusinessID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /services - Failed to create service: business_id=%d, error=%v", actor.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services - Service created successfully: id=%d, business_id=%d", result.ID, actor.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/services
// Query params: branchId (опционально: услуги филиала плюс глобальные)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "GET /services")
	if !ok {
		return
	}

	var result *models.ServiceListResponse
	var err error

	if branchIDStr := r.URL.Query().Get("branchId"); branchIDStr != "" {
		branchID, parseErr := strconv.ParseInt(branchIDStr, 10, 64)
		if parseErr != nil {
			h.logger.Warn("GET /services - Invalid branch ID: %v", parseErr)
			handlers.RespondBadRequest(w, msgInvalidBranchID)
			return
		}
		result, err = h.service.GetForBranch(r.Context(), actor, branchID)
	} else {
		result, err = h.service.GetByBusiness(r.Context(), actor)
	}

	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("GET /services - Access denied: business_id=%d", actor.BusinessID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /services - Failed to list services: business_id=%d, error=%v", actor.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services - Services retrieved successfully: business_id=%d, count=%d",
		actor.BusinessID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/services/{serviceId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "GET /services/{id}")
	if !ok {
		return
	}

	serviceID, ok := h.parseServiceID(w, r, "GET /services/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), actor, serviceID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /services/{id} - Failed to get service: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id} - Service retrieved successfully: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/services/{serviceId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "PUT /services/{id}")
	if !ok {
		return
	}

	serviceID, ok := h.parseServiceID(w, r, "PUT /services/{id}")
	if !ok {
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id} - Invalid request body: service_id=%d, error=%v", serviceID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, serviceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /services/{id} - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("PUT /services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PUT /services/{id} - Access denied: service_id=%d", serviceID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PUT /services/{id} - Failed to update service: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /services/{id} - Service updated successfully: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/services/{serviceId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "DELETE /services/{id}")
	if !ok {
		return
	}

	serviceID, ok := h.parseServiceID(w, r, "DELETE /services/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, serviceID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("DELETE /services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("DELETE /services/{id} - Access denied: service_id=%d", serviceID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /services/{id} - Failed to delete service: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /services/{id} - Service deleted successfully: service_id=%d", serviceID)
	handlers.RespondNoContent(w)
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

func (h *Handler) parseServiceID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid service ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return 0, false
	}
	return serviceID, true
}
