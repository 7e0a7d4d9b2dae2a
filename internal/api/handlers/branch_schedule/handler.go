package branch_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kyros-barber/KB-BookingService/internal/api/handlers"
	"github.com/kyros-barber/KB-BookingService/internal/api/middleware"
	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/service/schedule"
	"github.com/kyros-barber/KB-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidDayOfWeek   = "некорректный день недели"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgScheduleNotFound   = "расписание не найдено"
	msgBranchNotFound     = "филиал не найден"
	msgAccessDenied       = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleGet GET /api/v1/branches/{branchId}/schedule
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, branchID, ok := h.parseActorAndBranch(w, r, "GET /branches/{id}/schedule")
	if !ok {
		return
	}

	result, err := h.service.GetBranchSchedule(r.Context(), actor, branchID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{id}/schedule - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("GET /branches/{id}/schedule - Access denied: branch_id=%d", branchID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /branches/{id}/schedule - Failed to get schedule: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/schedule - Schedule retrieved successfully: branch_id=%d, days=%d",
		branchID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpsertDay PUT /api/v1/branches/{branchId}/schedule
// Создает или заменяет запись расписания на день недели из тела запроса
func (h *Handler) HandleUpsertDay(w http.ResponseWriter, r *http.Request) {
	actor, branchID, ok := h.parseActorAndBranch(w, r, "PUT /branches/{id}/schedule")
	if !ok {
		return
	}

	var req models.UpsertDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /branches/{id}/schedule - Invalid request body: branch_id=%d, error=%v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertDay(r.Context(), actor, branchID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /branches/{id}/schedule - Invalid input: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, schedule.ErrBranchNotFound):
			h.logger.Warn("PUT /branches/{id}/schedule - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /branches/{id}/schedule - Access denied: branch_id=%d", branchID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PUT /branches/{id}/schedule - Failed to upsert day: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /branches/{id}/schedule - Day upserted successfully: branch_id=%d, day_of_week=%d",
		branchID, result.DayOfWeek)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDeleteDay DELETE /api/v1/branches/{branchId}/schedule/{dayOfWeek}
// Удаление записи делает филиал закрытым в этот день недели
func (h *Handler) HandleDeleteDay(w http.ResponseWriter, r *http.Request) {
	actor, branchID, ok := h.parseActorAndBranch(w, r, "DELETE /branches/{id}/schedule/{day}")
	if !ok {
		return
	}

	dayOfWeek, err := strconv.Atoi(mux.Vars(r)["dayOfWeek"])
	if err != nil || dayOfWeek < 0 || dayOfWeek > 6 {
		h.logger.Warn("DELETE /branches/{id}/schedule/{day} - Invalid day of week: branch_id=%d", branchID)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	if err := h.service.DeleteDay(r.Context(), actor, branchID, dayOfWeek); err != nil {
		switch {
		case errors.Is(err, schedule.ErrScheduleNotFound):
			h.logger.Warn("DELETE /branches/{id}/schedule/{day} - Schedule not found: branch_id=%d, day_of_week=%d",
				branchID, dayOfWeek)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /branches/{id}/schedule/{day} - Invalid input: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidDayOfWeek)

		case errors.Is(err, schedule.ErrBranchNotFound):
			h.logger.Warn("DELETE /branches/{id}/schedule/{day} - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /branches/{id}/schedule/{day} - Access denied: branch_id=%d", branchID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /branches/{id}/schedule/{day} - Failed to delete day: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /branches/{id}/schedule/{day} - Day deleted successfully: branch_id=%d, day_of_week=%d",
		branchID, dayOfWeek)
	handlers.RespondNoContent(w)
}

func (h *Handler) parseActorAndBranch(w http.ResponseWriter, r *http.Request, route string) (domain.ActorContext, int64, bool) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		h.logger.Error("%s - Actor missing in context", route)
		handlers.RespondInternalError(w)
		return domain.ActorContext{}, 0, false
	}

	branchID, err := strconv.ParseInt(mux.Vars(r)["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid branch ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return domain.ActorContext{}, 0, false
	}

	return actor, branchID, true
}
