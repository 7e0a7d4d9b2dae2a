package manage_clients

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kyros-barber/KB-BookingService/internal/api/handlers"
	"github.com/kyros-barber/KB-BookingService/internal/api/middleware"
	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/service/clients"
	"github.com/kyros-barber/KB-BookingService/internal/service/clients/models"
)

const (
	msgInvalidClientID    = "некорректный ID клиента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgClientNotFound     = "клиент не найден"
	msgAccessDenied       = "доступ запрещен"
)

type Handler struct {
	service ClientService
	logger  Logger
}

func NewHandler(service ClientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/clients
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "POST /clients")
	if !ok {
		return
	}

	var req models.CreateClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clients - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrInvalidInput):
			h.logger.Warn("POST /clients - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, clients.ErrAccessDenied):
			h.logger.Warn("POST /clients - Access denied: business_id=%d", actor.BusinessID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /clients - Failed to create client: business_id=%d, error=%v", actor.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /clients - Client created successfully: id=%d, business_id=%d", result.ID, actor.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/clients
// Актор филиала видит только клиентов своего филиала
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "GET /clients")
	if !ok {
		return
	}

	result, err := h.service.List(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /clients - Failed to list clients: business_id=%d, error=%v", actor.BusinessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clients - Clients retrieved successfully: business_id=%d, count=%d",
		actor.BusinessID, len(result.Clients))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/clients/{clientId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "GET /clients/{id}")
	if !ok {
		return
	}

	clientID, ok := h.parseClientID(w, r, "GET /clients/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), actor, clientID)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrClientNotFound):
			h.logger.Warn("GET /clients/{id} - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, clients.ErrAccessDenied):
			h.logger.Warn("GET /clients/{id} - Access denied: client_id=%d", clientID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /clients/{id} - Failed to get client: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{id} - Client retrieved successfully: client_id=%d", clientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/clients/{clientId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "PUT /clients/{id}")
	if !ok {
		return
	}

	clientID, ok := h.parseClientID(w, r, "PUT /clients/{id}")
	if !ok {
		return
	}

	var req models.UpdateClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /clients/{id} - Invalid request body: client_id=%d, error=%v", clientID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, clientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrInvalidInput):
			h.logger.Warn("PUT /clients/{id} - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, clients.ErrClientNotFound):
			h.logger.Warn("PUT /clients/{id} - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, clients.ErrAccessDenied):
			h.logger.Warn("PUT /clients/{id} - Access denied: client_id=%d", clientID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PUT /clients/{id} - Failed to update client: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /clients/{id} - Client updated successfully: client_id=%d", clientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/clients/{clientId}
// Записи клиента сохраняются без ссылки на него
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "DELETE /clients/{id}")
	if !ok {
		return
	}

	clientID, ok := h.parseClientID(w, r, "DELETE /clients/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, clientID); err != nil {
		switch {
		case errors.Is(err, clients.ErrClientNotFound):
			h.logger.Warn("DELETE /clients/{id} - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, clients.ErrAccessDenied):
			h.logger.Warn("DELETE /clients/{id} - Access denied: client_id=%d", clientID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /clients/{id} - Failed to delete client: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /clients/{id} - Client deleted successfully: client_id=%d", clientID)
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

func (h *Handler) parseClientID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	clientID, err := strconv.ParseInt(mux.Vars(r)["clientId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid client ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return 0, false
	}
	return clientID, true
}
