package create_public_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kyros-barber/KB-BookingService/internal/api/handlers"
	"github.com/kyros-barber/KB-BookingService/internal/service/branches"
	createPublicBooking "github.com/kyros-barber/KB-BookingService/internal/usecase/create_public_booking"
)

const (
	msgInvalidBranchID     = "некорректный ID филиала"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени"
	msgBranchNotFound      = "филиал не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceNotAvailable = "услуга недоступна в выбранном филиале"
	msgEmployeeNotFound    = "сотрудник не найден"
	msgEmployeeMismatch    = "сотрудник работает в другом филиале"
	msgEmployeeCannot      = "сотрудник не выполняет выбранные услуги"
	msgSlotTaken           = "выбранный слот уже занят"
)

type Handler struct {
	useCase  CreatePublicBookingUseCase
	branches BranchResolver
	logger   Logger
}

func NewHandler(useCase CreatePublicBookingUseCase, branches BranchResolver, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		branches: branches,
		logger:   logger,
	}
}

// Handle POST /api/v1/public/branches/{branchId}/bookings
// Публичный маршрут виджета: бронирование создается со статусом pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseInt(mux.Vars(r)["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /public/branches/{id}/bookings - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	branch, err := h.branches.PublicGetByID(r.Context(), branchID)
	if err != nil {
		if errors.Is(err, branches.ErrBranchNotFound) {
			h.logger.Warn("POST /public/branches/{id}/bookings - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)
			return
		}
		h.logger.Error("POST /public/branches/{id}/bookings - Failed to resolve branch: branch_id=%d, error=%v", branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	var req CreatePublicBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/branches/{id}/bookings - Invalid request body: branch_id=%d, error=%v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(branch.BusinessID, branchID)
	if err != nil {
		h.logger.Warn("POST /public/branches/{id}/bookings - Invalid date or time: branch_id=%d, error=%v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createPublicBooking.ErrInvalidInput):
			h.logger.Warn("POST /public/branches/{id}/bookings - Invalid input: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createPublicBooking.ErrBranchNotFound):
			h.logger.Warn("POST /public/branches/{id}/bookings - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, createPublicBooking.ErrServiceNotFound):
			h.logger.Warn("POST /public/branches/{id}/bookings - Service not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createPublicBooking.ErrServiceNotAvailableAtBranch):
			h.logger.Warn("POST /public/branches/{id}/bookings - Service not available at branch: branch_id=%d", branchID)
			handlers.RespondBadRequest(w, msgServiceNotAvailable)

		case errors.Is(err, createPublicBooking.ErrEmployeeNotFound):
			h.logger.Warn("POST /public/branches/{id}/bookings - Employee not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, createPublicBooking.ErrEmployeeBranchMismatch):
			h.logger.Warn("POST /public/branches/{id}/bookings - Employee branch mismatch: branch_id=%d", branchID)
			handlers.RespondBadRequest(w, msgEmployeeMismatch)

		case errors.Is(err, createPublicBooking.ErrEmployeeCannotPerform):
			h.logger.Warn("POST /public/branches/{id}/bookings - Employee cannot perform services: branch_id=%d", branchID)
			handlers.RespondBadRequest(w, msgEmployeeCannot)

		case errors.Is(err, createPublicBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /public/branches/{id}/bookings - Outside working hours: branch_id=%d, error=%v", branchID, err)
			handlers.RespondError(w, http.StatusConflict, err.Error())

		case errors.Is(err, createPublicBooking.ErrSlotTaken):
			h.logger.Warn("POST /public/branches/{id}/bookings - Slot taken: branch_id=%d, start=%s", branchID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		default:
			h.logger.Error("POST /public/branches/{id}/bookings - Failed to create booking: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /public/branches/{id}/bookings - Booking created successfully: id=%d, branch_id=%d", result.ID, result.BranchID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
