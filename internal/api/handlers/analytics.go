package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// defaultTopLimit bounds the leaderboard when no limit is requested
const defaultTopLimit = 10

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

type PlayerActionRequest struct {
	Action string `json:"action"`
	HeroID uint64 `json:"heroId"`
	Value  uint64 `json:"value"`
}

type BattleOutcomeRequest struct {
	Hero1    uint64 `json:"hero1"`
	Hero2    uint64 `json:"hero2"`
	Winner   uint64 `json:"winner"`
	Duration uint64 `json:"duration"`
	Damage   uint64 `json:"damage"`
}

type EconomicTransactionRequest struct {
	Type     string `json:"type"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type HeroPerformanceRequest struct {
	Experience  uint64 `json:"experience"`
	DamageDealt uint64 `json:"damageDealt"`
	DamageTaken uint64 `json:"damageTaken"`
}

type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

type TransactionStatsResponse struct {
	Count  uint64        `json:"count"`
	Volume domain.Amount `json:"volume"`
}

func (h *AnalyticsHandler) RecordPlayerAction(w http.ResponseWriter, r *http.Request) {
	var req PlayerActionRequest
	if !decode(w, r, &req) {
		return
	}
	inv, ok := invocation(w, r, "")
	if !ok {
		return
	}

	if err := h.analyticsService.RecordPlayerAction(r.Context(), inv, req.Action, req.HeroID, req.Value); err != nil {
		writeError(w, "analytics.RecordPlayerAction", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AnalyticsHandler) RecordBattleOutcome(w http.ResponseWriter, r *http.Request) {
	var req BattleOutcomeRequest
	if !decode(w, r, &req) {
		return
	}
	inv, ok := invocation(w, r, "")
	if !ok {
		return
	}

	err := h.analyticsService.RecordBattleOutcome(r.Context(), inv, service.BattleOutcome{
		Hero1:    req.Hero1,
		Hero2:    req.Hero2,
		Winner:   req.Winner,
		Duration: req.Duration,
		Damage:   req.Damage,
	})
	if err != nil {
		writeError(w, "analytics.RecordBattleOutcome", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AnalyticsHandler) RecordEconomicTransaction(w http.ResponseWriter, r *http.Request) {
	var req EconomicTransactionRequest
	if !decode(w, r, &req) {
		return
	}
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		http.Error(w, "Invalid amount", http.StatusBadRequest)
		return
	}
	inv, ok := invocation(w, r, "")
	if !ok {
		return
	}

	if err := h.analyticsService.RecordEconomicTransaction(r.Context(), inv, req.Type, amount, req.Currency); err != nil {
		writeError(w, "analytics.RecordEconomicTransaction", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AnalyticsHandler) UpdateHeroPerformance(w http.ResponseWriter, r *http.Request) {
	id, ok := heroIDParam(w, r)
	if !ok {
		return
	}
	var req HeroPerformanceRequest
	if !decode(w, r, &req) {
		return
	}
	inv, ok := invocation(w, r, "")
	if !ok {
		return
	}

	if err := h.analyticsService.UpdateHeroPerformance(r.Context(), inv, id, req.Experience, req.DamageDealt, req.DamageTaken); err != nil {
		writeError(w, "analytics.UpdateHeroPerformance", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AnalyticsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if !decode(w, r, &req) {
		return
	}
	inv, ok := invocation(w, r, "")
	if !ok {
		return
	}

	if err := h.analyticsService.Reset(r.Context(), inv, req.Confirm); err != nil {
		writeError(w, "analytics.Reset", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AnalyticsHandler) GameStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsService.GameStats(r.Context())
	if err != nil {
		writeError(w, "analytics.GameStats", err)
		return
	}

	writeJSON(w, stats)
}

// DailyStats reports the bucket of the "date" query (YYYY-MM-DD), today by default
func (h *AnalyticsHandler) DailyStats(w http.ResponseWriter, r *http.Request) {
	at := time.Now().UTC()
	if date := r.URL.Query().Get("date"); date != "" {
		var err error
		if at, err = time.Parse(time.DateOnly, date); err != nil {
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}
	}

	stats, err := h.analyticsService.DailyStats(r.Context(), at, r.URL.Query().Get("currency"))
	if err != nil {
		writeError(w, "analytics.DailyStats", err)
		return
	}

	writeJSON(w, stats)
}

func (h *AnalyticsHandler) HeroPerformance(w http.ResponseWriter, r *http.Request) {
	id, ok := heroIDParam(w, r)
	if !ok {
		return
	}

	metrics, err := h.analyticsService.HeroPerformance(r.Context(), id)
	if err != nil {
		writeError(w, "analytics.HeroPerformance", err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"metrics": metrics,
		"winRate": metrics.WinRate(),
	})
}

func (h *AnalyticsHandler) PlayerStats(w http.ResponseWriter, r *http.Request) {
	account, err := uuid.Parse(chi.URLParam(r, "account"))
	if err != nil {
		http.Error(w, "Invalid account id", http.StatusBadRequest)
		return
	}

	stats, err := h.analyticsService.PlayerStats(r.Context(), account, r.URL.Query().Get("currency"))
	if err != nil {
		writeError(w, "analytics.PlayerStats", err)
		return
	}
	tier, err := h.analyticsService.PlayerTier(r.Context(), account)
	if err != nil {
		writeError(w, "analytics.PlayerStats", err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"stats": stats,
		"tier":  tier,
	})
}

func (h *AnalyticsHandler) ActionStats(w http.ResponseWriter, r *http.Request) {
	count, err := h.analyticsService.ActionStats(r.Context(), chi.URLParam(r, "action"))
	if err != nil {
		writeError(w, "analytics.ActionStats", err)
		return
	}

	writeJSON(w, map[string]uint64{"count": count})
}

func (h *AnalyticsHandler) TransactionStats(w http.ResponseWriter, r *http.Request) {
	count, volume, err := h.analyticsService.TransactionStats(r.Context(), chi.URLParam(r, "type"), r.URL.Query().Get("currency"))
	if err != nil {
		writeError(w, "analytics.TransactionStats", err)
		return
	}

	writeJSON(w, TransactionStatsResponse{Count: count, Volume: volume})
}

func (h *AnalyticsHandler) CurrencyVolume(w http.ResponseWriter, r *http.Request) {
	volume, err := h.analyticsService.CurrencyVolume(r.Context(), chi.URLParam(r, "currency"))
	if err != nil {
		writeError(w, "analytics.CurrencyVolume", err)
		return
	}

	writeJSON(w, map[string]domain.Amount{"volume": volume})
}

func (h *AnalyticsHandler) TopPerforming(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	top, err := h.analyticsService.TopPerforming(r.Context(), limit)
	if err != nil {
		writeError(w, "analytics.TopPerforming", err)
		return
	}

	writeJSON(w, top)
}

func (h *AnalyticsHandler) Export(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsService.Export(r.Context(), domain.ExportKind(chi.URLParam(r, "kind")))
	if err != nil {
		writeError(w, "analytics.Export", err)
		return
	}

	writeJSON(w, map[string]string{"summary": summary})
}
