package get_public_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kyros-barber/KB-BookingService/internal/api/handlers"
	"github.com/kyros-barber/KB-BookingService/internal/service/branches"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgBranchNotFound  = "филиал не найден"
)

type Handler struct {
	catalog  CatalogService
	branches BranchResolver
	logger   Logger
}

func NewHandler(catalog CatalogService, branches BranchResolver, logger Logger) *Handler {
	return &Handler{
		catalog:  catalog,
		branches: branches,
		logger:   logger,
	}
}

// Handle GET /api/v1/public/branches/{branchId}/services
// Услуги филиала: собственные плюс глобальные услуги бизнеса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseInt(mux.Vars(r)["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /public/branches/{id}/services - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	branch, err := h.branches.PublicGetByID(r.Context(), branchID)
	if err != nil {
		if errors.Is(err, branches.ErrBranchNotFound) {
			h.logger.Warn("GET /public/branches/{id}/services - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)
			return
		}
		h.logger.Error("GET /public/branches/{id}/services - Failed to resolve branch: branch_id=%d, error=%v", branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.catalog.PublicGetForBranch(r.Context(), branch.BusinessID, branchID)
	if err != nil {
		h.logger.Error("GET /public/branches/{id}/services - Failed to get services: branch_id=%d, error=%v", branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /public/branches/{id}/services - Services retrieved successfully: branch_id=%d, count=%d",
		branchID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
