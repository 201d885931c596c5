package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dom/hero-forge/internal/api/middleware"
	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/host"
	"github.com/dom/hero-forge/internal/logger"
	"github.com/go-chi/chi/v5"
)

// statusFor maps a domain error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnderpaid):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrHeroNotFound),
		errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAbilityAlreadyUnlocked),
		errors.Is(err, domain.ErrAbilitySlotsFull),
		errors.Is(err, domain.ErrMaxLevelReached),
		errors.Is(err, domain.ErrSelfTransfer),
		errors.Is(err, domain.ErrDisplayNameExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrGateNotMet),
		errors.Is(err, domain.ErrEvolutionRequirementNotMet),
		errors.Is(err, domain.ErrInsufficientExperience),
		errors.Is(err, domain.ErrInvalidClass),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidEvolutionType),
		errors.Is(err, domain.ErrInvalidRarity),
		errors.Is(err, domain.ErrInvalidRecipient),
		errors.Is(err, domain.ErrInvalidAction),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidRevenueCategory),
		errors.Is(err, domain.ErrInvalidExportKind),
		errors.Is(err, domain.ErrConfirmationRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPaused):
		return http.StatusLocked
	case errors.Is(err, domain.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// writeError answers with the mapped status. Unexpected errors are logged
// and hidden from the client.
func writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Sugar().Errorf("ERROR [%s]: %v", op, err)
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// invocation builds the host invocation for an authenticated request.
// paid is a decimal unit string; empty means nothing was paid.
func invocation(w http.ResponseWriter, r *http.Request, paid string) (host.Invocation, bool) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return host.Invocation{}, false
	}

	var amount domain.Amount
	if paid != "" {
		var err error
		if amount, err = domain.ParseAmount(paid); err != nil {
			http.Error(w, "Invalid paid amount", http.StatusBadRequest)
			return host.Invocation{}, false
		}
	}
	return host.NewInvocation(caller, amount), true
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func heroIDParam(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		http.Error(w, "Invalid hero id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
