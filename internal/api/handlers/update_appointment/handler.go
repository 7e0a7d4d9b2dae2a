package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kyros-barber/KB-BookingService/internal/api/handlers"
	"github.com/kyros-barber/KB-BookingService/internal/api/middleware"
	updateAppointment "github.com/kyros-barber/KB-BookingService/internal/usecase/update_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени"
	msgAppointmentNotFound  = "запись не найдена"
	msgCannotUpdate         = "запись больше нельзя изменить"
	msgAccessDenied         = "доступ запрещен"
	msgServiceNotFound      = "услуга не найдена"
	msgServiceNotAvailable  = "услуга недоступна в выбранном филиале"
	msgEmployeeNotFound     = "сотрудник не найден"
	msgEmployeeMismatch     = "сотрудник работает в другом филиале"
	msgEmployeeCannot       = "сотрудник не выполняет выбранные услуги"
	msgTimeConflict         = "выбранное время у сотрудника уже занято"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		h.logger.Error("PUT /appointments/{id} - Actor missing in context")
		handlers.RespondInternalError(w)
		return
	}

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), actor, useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id} - Invalid input: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, updateAppointment.ErrCannotUpdate):
			h.logger.Warn("PUT /appointments/{id} - Appointment can no longer be updated: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgCannotUpdate)

		case errors.Is(err, updateAppointment.ErrAccessDenied):
			h.logger.Warn("PUT /appointments/{id} - Access denied: appointment_id=%d", appointmentID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, updateAppointment.ErrServiceNotFound):
			h.logger.Warn("PUT /appointments/{id} - Service not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateAppointment.ErrServiceNotAvailableAtBranch):
			h.logger.Warn("PUT /appointments/{id} - Service not available at branch: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgServiceNotAvailable)

		case errors.Is(err, updateAppointment.ErrEmployeeNotFound):
			h.logger.Warn("PUT /appointments/{id} - Employee not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, updateAppointment.ErrEmployeeBranchMismatch):
			h.logger.Warn("PUT /appointments/{id} - Employee branch mismatch: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgEmployeeMismatch)

		case errors.Is(err, updateAppointment.ErrEmployeeCannotPerform):
			h.logger.Warn("PUT /appointments/{id} - Employee cannot perform services: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgEmployeeCannot)

		case errors.Is(err, updateAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("PUT /appointments/{id} - Outside working hours: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondError(w, http.StatusConflict, err.Error())

		case errors.Is(err, updateAppointment.ErrTimeConflict):
			h.logger.Warn("PUT /appointments/{id} - Time conflict: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgTimeConflict)

		default:
			h.logger.Error("PUT /appointments/{id} - Failed to update appointment: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id} - Appointment updated successfully: appointment_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
