package get_public_open_days

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kyros-barber/KB-BookingService/internal/api/handlers"
)

const msgInvalidBranchID = "некорректный ID филиала"

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

// Handle GET /api/v1/public/branches/{branchId}/open-days
// Дни недели, в которые филиал открыт, для выбора даты в виджете
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseInt(mux.Vars(r)["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /public/branches/{id}/open-days - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	result, err := h.service.GetOpenDays(r.Context(), branchID)
	if err != nil {
		h.logger.Error("GET /public/branches/{id}/open-days - Failed to get open days: branch_id=%d, error=%v", branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /public/branches/{id}/open-days - Open days retrieved successfully: branch_id=%d, count=%d",
		branchID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
