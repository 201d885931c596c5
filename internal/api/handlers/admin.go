package handlers

import (
	"net/http"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AdminHandler serves the revenue ledger and the privileged switches
type AdminHandler struct {
	adminService   *service.AdminService
	revenueService *service.RevenueService
}

func NewAdminHandler(adminService *service.AdminService, revenueService *service.RevenueService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		revenueService: revenueService,
	}
}

type CallerRequest struct {
	Account string `json:"account"`
}

func (h *AdminHandler) ContractInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.adminService.ContractInfo(r.Context())
	if err != nil {
		writeError(w, "admin.ContractInfo", err)
		return
	}

	writeJSON(w, info)
}

func (h *AdminHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.setPaused(w, r, true)
}

func (h *AdminHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.setPaused(w, r, false)
}

func (h *AdminHandler) setPaused(w http.ResponseWriter, r *http.Request, paused bool) {
	inv, ok := invocation(w, r, "")
	if !ok {
		return
	}

	if err := h.adminService.SetPaused(r.Context(), inv, paused); err != nil {
		writeError(w, "admin.SetPaused", err)
		return
	}

	writeJSON(w, map[string]bool{"paused": paused})
}

func (h *AdminHandler) ListCallers(w http.ResponseWriter, r *http.Request) {
	callers, err := h.adminService.AuthorizedCallers(r.Context())
	if err != nil {
		writeError(w, "admin.ListCallers", err)
		return
	}

	writeJSON(w, callers)
}

func (h *AdminHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	var req CallerRequest
	if !decode(w, r, &req) {
		return
	}
	account, err := uuid.Parse(req.Account)
	if err != nil {
		http.Error(w, "Invalid account id", http.StatusBadRequest)
		return
	}
	inv, ok := invocation(w, r, "")
	if !ok {
		return
	}

	if err := h.adminService.Authorize(r.Context(), inv, account); err != nil {
		writeError(w, "admin.Authorize", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	account, err := uuid.Parse(chi.URLParam(r, "account"))
	if err != nil {
		http.Error(w, "Invalid account id", http.StatusBadRequest)
		return
	}
	inv, ok := invocation(w, r, "")
	if !ok {
		return
	}

	if err := h.adminService.Revoke(r.Context(), inv, account); err != nil {
		writeError(w, "admin.Revoke", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	summary, err := h.revenueService.Summary(r.Context())
	if err != nil {
		writeError(w, "admin.Revenue", err)
		return
	}

	writeJSON(w, summary)
}

func (h *AdminHandler) RevenueByCategory(w http.ResponseWriter, r *http.Request) {
	category := domain.RevenueCategory(chi.URLParam(r, "category"))

	amount, err := h.revenueService.ByCategory(r.Context(), category)
	if err != nil {
		writeError(w, "admin.RevenueByCategory", err)
		return
	}

	writeJSON(w, domain.RevenueCategoryTotal{Category: category, Total: amount})
}
