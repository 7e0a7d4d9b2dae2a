package get_branch_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kyros-barber/KB-BookingService/internal/api/handlers"
	"github.com/kyros-barber/KB-BookingService/internal/api/middleware"
	"github.com/kyros-barber/KB-BookingService/internal/service/appointments"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgInvalidParams   = "некорректные параметры запроса"
	msgInvalidStatus   = "некорректный статус записи"
	msgAccessDenied    = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/appointments
// Query params: date | startDate+endDate, employeeId, status, includeCanceled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		h.logger.Error("GET /branches/{id}/appointments - Actor missing in context")
		handlers.RespondInternalError(w)
		return
	}

	branchID, err := strconv.ParseInt(mux.Vars(r)["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/appointments - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	serviceReq, err := ToServiceRequest(branchID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /branches/{id}/appointments - Invalid parameters: branch_id=%d, error=%v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetBranchAppointments(r.Context(), actor, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("GET /branches/{id}/appointments - Invalid status filter: branch_id=%d", branchID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /branches/{id}/appointments - Access denied: branch_id=%d", branchID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /branches/{id}/appointments - Failed to get appointments: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/appointments - Appointments retrieved successfully: branch_id=%d, count=%d",
		branchID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
