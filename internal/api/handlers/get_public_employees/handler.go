package get_public_employees

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/kyros-barber/KB-BookingService/internal/api/handlers"
	"github.com/kyros-barber/KB-BookingService/internal/service/branches"
)

const (
	msgInvalidBranchID   = "некорректный ID филиала"
	msgInvalidServiceIDs = "некорректный список услуг"
	msgBranchNotFound    = "филиал не найден"
)

type Handler struct {
	staff    StaffService
	branches BranchResolver
	logger   Logger
}

func NewHandler(staff StaffService, branches BranchResolver, logger Logger) *Handler {
	return &Handler{
		staff:    staff,
		branches: branches,
		logger:   logger,
	}
}

// Handle GET /api/v1/public/branches/{branchId}/employees?serviceIds=1,2
// Сотрудники филиала, выполняющие ВСЕ выбранные услуги
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseInt(mux.Vars(r)["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /public/branches/{id}/employees - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	serviceIDs, err := parseServiceIDs(r.URL.Query().Get("serviceIds"))
	if err != nil {
		h.logger.Warn("GET /public/branches/{id}/employees - Invalid service IDs: branch_id=%d, error=%v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		return
	}

	branch, err := h.branches.PublicGetByID(r.Context(), branchID)
	if err != nil {
		if errors.Is(err, branches.ErrBranchNotFound) {
			h.logger.Warn("GET /public/branches/{id}/employees - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)
			return
		}
		h.logger.Error("GET /public/branches/{id}/employees - Failed to resolve branch: branch_id=%d, error=%v", branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.staff.GetPerformingAll(r.Context(), branch.BusinessID, branchID, serviceIDs)
	if err != nil {
		h.logger.Error("GET /public/branches/{id}/employees - Failed to get employees: branch_id=%d, error=%v", branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /public/branches/{id}/employees - Employees retrieved successfully: branch_id=%d, count=%d",
		branchID, len(result.Employees))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseServiceIDs разбирает список ID из query параметра вида "1,2,3"
// Пустой параметр означает отсутствие фильтра по услугам
func parseServiceIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
