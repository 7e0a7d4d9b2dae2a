package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kyros-barber/KB-BookingService/internal/api/handlers"
	"github.com/kyros-barber/KB-BookingService/internal/api/middleware"
	"github.com/kyros-barber/KB-BookingService/internal/service/branches"
	getAvailableSlots "github.com/kyros-barber/KB-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgMissingDate     = "дата обязательна"
	msgInvalidParams   = "некорректные параметры запроса"
	msgBranchNotFound  = "филиал не найден"
	msgAccessDenied    = "доступ запрещен"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	branches BranchResolver
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, branches BranchResolver, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		branches: branches,
		logger:   logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/available-slots
// Query params: date (required, YYYY-MM-DD), employeeId, interval (опционально)
// Защищенный маршрут: бизнес берется из контекста актора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		h.logger.Error("GET /branches/{id}/available-slots - Actor missing in context")
		handlers.RespondInternalError(w)
		return
	}

	branchID, ok := h.parseBranchID(w, r)
	if !ok {
		return
	}

	if !actor.CanAccessBranch(branchID) {
		h.logger.Warn("GET /branches/{id}/available-slots - Access denied: branch_id=%d", branchID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	h.serve(w, r, actor.BusinessID, branchID, "GET /branches/{id}/available-slots")
}

// HandlePublic GET /api/v1/public/branches/{branchId}/available-slots
// Публичный маршрут виджета: бизнес определяется по филиалу
func (h *Handler) HandlePublic(w http.ResponseWriter, r *http.Request) {
	branchID, ok := h.parseBranchID(w, r)
	if !ok {
		return
	}

	branch, err := h.branches.PublicGetByID(r.Context(), branchID)
	if err != nil {
		if errors.Is(err, branches.ErrBranchNotFound) {
			h.logger.Warn("GET /public/branches/{id}/available-slots - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)
			return
		}
		h.logger.Error("GET /public/branches/{id}/available-slots - Failed to resolve branch: branch_id=%d, error=%v", branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.serve(w, r, branch.BusinessID, branchID, "GET /public/branches/{id}/available-slots")
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, businessID, branchID int64, route string) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("%s - Missing date: branch_id=%d", route, branchID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(
		businessID,
		branchID,
		dateStr,
		r.URL.Query().Get("employeeId"),
		r.URL.Query().Get("interval"),
	)
	if err != nil {
		h.logger.Warn("%s - Invalid parameters: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: branch_id=%d, error=%v", route, branchID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getAvailableSlots.ErrBranchNotFound):
			h.logger.Warn("%s - Branch not found: branch_id=%d", route, branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		default:
			h.logger.Error("%s - Failed to get slots: branch_id=%d, error=%v", route, branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Slots retrieved successfully: branch_id=%d, date=%s, slots_count=%d",
		route, branchID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) parseBranchID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	branchID, err := strconv.ParseInt(mux.Vars(r)["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("available-slots - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return 0, false
	}
	return branchID, true
}
