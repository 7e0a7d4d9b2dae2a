package create_appointment

import (
	"errors"
	"net/http"

	"github.com/kyros-barber/KB-BookingService/internal/api/handlers"
	"github.com/kyros-barber/KB-BookingService/internal/api/middleware"
	createAppointment "github.com/kyros-barber/KB-BookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени"
	msgAccessDenied        = "доступ запрещен"
	msgBranchNotFound      = "филиал не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceNotAvailable = "услуга недоступна в выбранном филиале"
	msgEmployeeNotFound    = "сотрудник не найден"
	msgEmployeeMismatch    = "сотрудник работает в другом филиале"
	msgEmployeeCannot      = "сотрудник не выполняет выбранные услуги"
	msgTimeConflict        = "выбранное время у сотрудника уже занято"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		h.logger.Error("POST /appointments - Actor missing in context")
		handlers.RespondInternalError(w)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), actor, useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createAppointment.ErrAccessDenied):
			h.logger.Warn("POST /appointments - Access denied: branch_id=%d", req.BranchID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, createAppointment.ErrBranchNotFound):
			h.logger.Warn("POST /appointments - Branch not found: branch_id=%d", req.BranchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: branch_id=%d", req.BranchID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotAvailableAtBranch):
			h.logger.Warn("POST /appointments - Service not available at branch: branch_id=%d", req.BranchID)
			handlers.RespondBadRequest(w, msgServiceNotAvailable)

		case errors.Is(err, createAppointment.ErrEmployeeNotFound):
			h.logger.Warn("POST /appointments - Employee not found: branch_id=%d", req.BranchID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, createAppointment.ErrEmployeeBranchMismatch):
			h.logger.Warn("POST /appointments - Employee branch mismatch: branch_id=%d", req.BranchID)
			handlers.RespondBadRequest(w, msgEmployeeMismatch)

		case errors.Is(err, createAppointment.ErrEmployeeCannotPerform):
			h.logger.Warn("POST /appointments - Employee cannot perform services: branch_id=%d", req.BranchID)
			handlers.RespondBadRequest(w, msgEmployeeCannot)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: branch_id=%d, error=%v", req.BranchID, err)
			handlers.RespondError(w, http.StatusConflict, err.Error())

		case errors.Is(err, createAppointment.ErrTimeConflict):
			h.logger.Warn("POST /appointments - Time conflict: branch_id=%d, start=%s", req.BranchID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgTimeConflict)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: branch_id=%d, error=%v", req.BranchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: id=%d, branch_id=%d", result.ID, result.BranchID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
