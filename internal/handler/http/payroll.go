package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kasirapp/pos-backend-go/internal/domain/payroll"
	"github.com/kasirapp/pos-backend-go/internal/handler/http/response"
)

type PayrollHandler struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) *PayrollHandler {
	return &PayrollHandler{
		payrollService: payrollService,
	}
}

func tenantFromContext(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	tenantID, ok := claims["tenant_id"].(string)
	if !ok || tenantID == "" {
		return "", false
	}
	return tenantID, true
}

// GetSetting handles GET /api/v1/payroll/settings
func (h *PayrollHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	resp, err := h.payrollService.GetSetting(r.Context(), tenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// UpdateSetting handles PUT /api/v1/payroll/settings
func (h *PayrollHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	var req payroll.UpdatePayrollSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.payrollService.UpdateSetting(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll setting updated successfully", resp)
}

// CreatePeriod handles POST /api/v1/payroll/periods
func (h *PayrollHandler) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	var req payroll.CreatePayrollPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.payrollService.CreatePeriod(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll period created successfully", resp)
}

// ListPeriods handles GET /api/v1/payroll/periods
func (h *PayrollHandler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	resp, err := h.payrollService.ListPeriods(r.Context(), tenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Calculate handles POST /api/v1/payroll/calculate
func (h *PayrollHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	var req payroll.CalculatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.payrollService.Calculate(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// UpsertDetail handles PUT /api/v1/payroll/periods/{periodID}/details/{staffID}
func (h *PayrollHandler) UpsertDetail(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	var req payroll.UpsertPayrollDetailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.PeriodID = chi.URLParam(r, "periodID")
	req.StaffID = chi.URLParam(r, "staffID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, created, err := h.payrollService.UpsertDetail(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if created {
		response.Created(w, "Payroll detail created successfully", resp)
		return
	}
	response.SuccessWithMessage(w, "Payroll detail updated successfully", resp)
}

// ListDetails handles GET /api/v1/payroll/periods/{periodID}/details
func (h *PayrollHandler) ListDetails(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	periodID := chi.URLParam(r, "periodID")

	resp, err := h.payrollService.ListDetails(r.Context(), tenantID, periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Finalize handles POST /api/v1/payroll/periods/{periodID}/finalize
func (h *PayrollHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	periodID := chi.URLParam(r, "periodID")

	resp, err := h.payrollService.Finalize(r.Context(), tenantID, periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll period finalized successfully", resp)
}
