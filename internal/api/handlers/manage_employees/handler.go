package manage_employees

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kyros-barber/KB-BookingService/internal/api/handlers"
	"github.com/kyros-barber/KB-BookingService/internal/api/middleware"
	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/service/staff"
	"github.com/kyros-barber/KB-BookingService/internal/service/staff/models"
)

const (
	msgInvalidEmployeeID  = "некорректный ID сотрудника"
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgAccessDenied       = "доступ запрещен"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/employees
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "POST /employees")
	if !ok {
		return
	}

	var req models.CreateEmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /employees - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrInvalidInput):
			h.logger.Warn("POST /employees - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, staff.ErrServiceNotFound):
			h.logger.Warn("POST /employees - Service not found: business_id=%d", actor.BusinessID)
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, staff.ErrAccessDenied):
			h.logger.Warn("POST /employees - Access denied: business_id=%d", actor.BusinessID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /employees - Failed to create employee: business_id=%d, error=%v", actor.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /employees - Employee created successfully: id=%d, business_id=%d", result.ID, actor.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/employees
// Query params: branchId (опционально)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "GET /employees")
	if !ok {
		return
	}

	var result *models.EmployeeListResponse
	var err error

	if branchIDStr := r.URL.Query().Get("branchId"); branchIDStr != "" {
		branchID, parseErr := strconv.ParseInt(branchIDStr, 10, 64)
		if parseErr != nil {
			h.logger.Warn("GET /employees - Invalid branch ID: %v", parseErr)
			handlers.RespondBadRequest(w, msgInvalidBranchID)
			return
		}
		result, err = h.service.GetByBranch(r.Context(), actor, branchID)
	} else {
		result, err = h.service.GetByBusiness(r.Context(), actor)
	}

	if err != nil {
		switch {
		case errors.Is(err, staff.ErrAccessDenied):
			h.logger.Warn("GET /employees - Access denied: business_id=%d", actor.BusinessID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /employees - Failed to list employees: business_id=%d, error=%v", actor.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /employees - Employees retrieved successfully: business_id=%d, count=%d",
		actor.BusinessID, len(result.Employees))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/employees/{employeeId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "GET /employees/{id}")
	if !ok {
		return
	}

	employeeID, ok := h.parseEmployeeID(w, r, "GET /employees/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), actor, employeeID)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrEmployeeNotFound):
			h.logger.Warn("GET /employees/{id} - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, staff.ErrAccessDenied):
			h.logger.Warn("GET /employees/{id} - Access denied: employee_id=%d", employeeID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /employees/{id} - Failed to get employee: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /employees/{id} - Employee retrieved successfully: employee_id=%d", employeeID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/employees/{employeeId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "PUT /employees/{id}")
	if !ok {
		return
	}

	employeeID, ok := h.parseEmployeeID(w, r, "PUT /employees/{id}")
	if !ok {
		return
	}

	var req models.UpdateEmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /employees/{id} - Invalid request body: employee_id=%d, error=%v", employeeID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, employeeID, &req)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrInvalidInput):
			h.logger.Warn("PUT /employees/{id} - Invalid input: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, staff.ErrEmployeeNotFound):
			h.logger.Warn("PUT /employees/{id} - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, staff.ErrServiceNotFound):
			h.logger.Warn("PUT /employees/{id} - Service not found: employee_id=%d", employeeID)
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, staff.ErrAccessDenied):
			h.logger.Warn("PUT /employees/{id} - Access denied: employee_id=%d", employeeID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PUT /employees/{id} - Failed to update employee: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /employees/{id} - Employee updated successfully: employee_id=%d", employeeID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/employees/{employeeId}
// Записи сотрудника сохраняются и становятся записями "без предпочтения"
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r, "DELETE /employees/{id}")
	if !ok {
		return
	}

	employeeID, ok := h.parseEmployeeID(w, r, "DELETE /employees/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, employeeID); err != nil {
		switch {
		case errors.Is(err, staff.ErrEmployeeNotFound):
			h.logger.Warn("DELETE /employees/{id} - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, staff.ErrAccessDenied):
			h.logger.Warn("DELETE /employees/{id} - Access denied: employee_id=%d", employeeID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /employees/{id} - Failed to delete employee: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /employees/{id} - Employee deleted successfully: employee_id=%d", employeeID)
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

func (h *Handler) parseEmployeeID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	employeeID, err := strconv.ParseInt(mux.Vars(r)["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid employee ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return 0, false
	}
	return employeeID, true
}
