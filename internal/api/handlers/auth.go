package handlers

import (
	"errors"
	"net/http"

	"github.com/dom/hero-forge/internal/api/middleware"
	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/logger"
	"github.com/dom/hero-forge/internal/service"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type LoginRequest struct {
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RefreshRequest struct {
	AccountID    string `json:"accountId"`
	RefreshToken string `json:"refreshToken"`
}

type AuthResponse struct {
	Account      AccountResponse `json:"account"`
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
}

type AccountResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

func newAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		Account: AccountResponse{
			ID:          result.Account.ID.String(),
			DisplayName: result.Account.DisplayName,
		},
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	if req.Password == "" || req.DisplayName == "" {
		http.Error(w, "Password and display name are required", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDisplayNameExists) {
			http.Error(w, "Display name already exists", http.StatusConflict)
			return
		}
		logger.Sugar().Errorf("ERROR [auth.Register]: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, newAuthResponse(result))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decode(w, r, &req) {
		return
	}

	if req.DisplayName == "" || req.Password == "" {
		http.Error(w, "Display name and password are required", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		logger.Sugar().Errorf("ERROR [auth.Login]: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, newAuthResponse(result))
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !decode(w, r, &req) {
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil || req.RefreshToken == "" {
		http.Error(w, "Account id and refresh token are required", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Refresh(r.Context(), accountID, req.RefreshToken)
	if err != nil {
		writeError(w, "auth.Refresh", err)
		return
	}

	writeJSON(w, newAuthResponse(result))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	account, err := h.authService.GetAccountByID(r.Context(), caller)
	if err != nil {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}

	writeJSON(w, AccountResponse{
		ID:          account.ID.String(),
		DisplayName: account.DisplayName,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), caller); err != nil {
		logger.Sugar().Errorf("ERROR [auth.Logout]: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]bool{"success": true})
}
