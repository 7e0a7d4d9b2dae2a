package manage_branches

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kyros-barber/KB-BookingService/internal/api/handlers"
	"github.com/kyros-barber/KB-BookingService/internal/api/middleware"
	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/service/branches"
	"github.com/kyros-barber/KB-BookingService/internal/service/branches/models"
)

const (
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBranchNotFound     = "филиал не найден"
	msgBusinessNotFound   = "бизнес не найден"
	msgAccessDenied       = "доступ запрещен"
)

type Handler struct {
	service BranchService
	logger  Logger
}

func NewHandler(service BranchService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleGetBusiness GET /api/v1/business
func (h *Handler) HandleGetBusiness(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "GET /business")
	if !ok {
		return
	}

	result, err := h.service.GetBusiness(r.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, branches.ErrBusinessNotFound):
			h.logger.Warn("GET /business - Business not found: business_id=%d", actor.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("GET /business - Failed to get business: business_id=%d, error=%v", actor.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /business - Business retrieved successfully: business_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreate POST /api/v1/branches
// Только владелец; опционально создает учетную запись филиала (fail-soft)
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "POST /branches")
	if !ok {
		return
	}

	var req models.CreateBranchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /branches - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, branches.ErrInvalidInput):
			h.logger.Warn("POST /branches - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, branches.ErrAccessDenied):
			h.logger.Warn("POST /branches - Access denied: business_id=%d", actor.BusinessID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /branches - Failed to create branch: business_id=%d, error=%v", actor.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /branches - Branch created successfully: id=%d, business_id=%d", result.ID, actor.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/branches
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "GET /branches")
	if !ok {
		return
	}

	result, err := h.service.List(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /branches - Failed to list branches: business_id=%d, error=%v", actor.BusinessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /branches - Branches retrieved successfully: business_id=%d, count=%d",
		actor.BusinessID, len(result.Branches))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/branches/{branchId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "GET /branches/{id}")
	if !ok {
		return
	}

	branchID, ok := h.parseBranchID(w, r, "GET /branches/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), actor, branchID)
	if err != nil {
		switch {
		case errors.Is(err, branches.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{id} - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, branches.ErrAccessDenied):
			h.logger.Warn("GET /branches/{id} - Access denied: branch_id=%d", branchID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /branches/{id} - Failed to get branch: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id} - Branch retrieved successfully: branch_id=%d", branchID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/branches/{branchId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "PUT /branches/{id}")
	if !ok {
		return
	}

	branchID, ok := h.parseBranchID(w, r, "PUT /branches/{id}")
	if !ok {
		return
	}

	var req models.UpdateBranchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /branches/{id} - Invalid request body: branch_id=%d, error=%v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, branchID, &req)
	if err != nil {
		switch {
		case errors.Is(err, branches.ErrInvalidInput):
			h.logger.Warn("PUT /branches/{id} - Invalid input: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, branches.ErrBranchNotFound):
			h.logger.Warn("PUT /branches/{id} - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, branches.ErrAccessDenied):
			h.logger.Warn("PUT /branches/{id} - Access denied: branch_id=%d", branchID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PUT /branches/{id} - Failed to update branch: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /branches/{id} - Branch updated successfully: branch_id=%d", branchID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/branches/{branchId}
// Блокируется при наличии активных будущих записей
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "DELETE /branches/{id}")
	if !ok {
		return
	}

	branchID, ok := h.parseBranchID(w, r, "DELETE /branches/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, branchID); err != nil {
		switch {
		case errors.Is(err, branches.ErrBranchNotFound):
			h.logger.Warn("DELETE /branches/{id} - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, branches.ErrHasActiveAppointments):
			h.logger.Warn("DELETE /branches/{id} - Branch has active appointments: branch_id=%d", branchID)
			handlers.RespondError(w, http.StatusConflict, err.Error())

		case errors.Is(err, branches.ErrAccessDenied):
			h.logger.Warn("DELETE /branches/{id} - Access denied: branch_id=%d", branchID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /branches/{id} - Failed to delete branch: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /branches/{id} - Branch deleted successfully: branch_id=%d", branchID)
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

func (h *Handler) parseBranchID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	branchID, err := strconv.ParseInt(mux.Vars(r)["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid branch ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return 0, false
	}
	return branchID, true
}
