package handlers

import (
	"net/http"

	"github.com/dom/hero-forge/internal/api/middleware"
	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type HeroHandler struct {
	heroService *service.HeroService
}

func NewHeroHandler(heroService *service.HeroService) *HeroHandler {
	return &HeroHandler{heroService: heroService}
}

type CreateHeroRequest struct {
	Name        string `json:"name"`
	Class       string `json:"class"`
	Personality string `json:"personality"`
	Enhanced    bool   `json:"enhanced"`
	Paid        string `json:"paid"`
}

type LevelUpResponse struct {
	Hero         *domain.Hero `json:"hero"`
	LevelsGained uint32       `json:"levelsGained"`
}

type BattleResultRequest struct {
	Won        bool   `json:"won"`
	Experience uint64 `json:"experience"`
}

type TransferRequest struct {
	To string `json:"to"`
}

type EvolveRequest struct {
	Type string `json:"type"`
	Paid string `json:"paid"`
}

type EvolveResponse struct {
	Hero           *domain.Hero  `json:"hero"`
	OldRarity      domain.Rarity `json:"oldRarity"`
	NewRarity      domain.Rarity `json:"newRarity"`
	GrantedAbility *uint32       `json:"grantedAbility,omitempty"`
}

type UnlockAbilityRequest struct {
	Ability uint32 `json:"ability"`
	Paid    string `json:"paid"`
}

type PaymentRequest struct {
	Paid string `json:"paid"`
}

type CostsResponse struct {
	BasicCreation    domain.Amount                          `json:"basicCreation"`
	EnhancedCreation domain.Amount                          `json:"enhancedCreation"`
	AbilityUnlock    domain.Amount                          `json:"abilityUnlock"`
	Ascension        domain.Amount                          `json:"ascension"`
	Evolutions       map[domain.EvolutionType]domain.Amount `json:"evolutions"`
}

func (h *HeroHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateHeroRequest
	if !decode(w, r, &req) {
		return
	}
	inv, ok := invocation(w, r, req.Paid)
	if !ok {
		return
	}

	in := service.CreateHeroInput{
		Name:        req.Name,
		Personality: req.Personality,
		Enhanced:    req.Enhanced,
	}
	if req.Class != "" {
		class := domain.HeroClass(req.Class)
		in.Class = &class
	}

	hero, err := h.heroService.Create(r.Context(), inv, in)
	if err != nil {
		writeError(w, "hero.Create", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, hero)
}

func (h *HeroHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := heroIDParam(w, r)
	if !ok {
		return
	}

	hero, err := h.heroService.Get(r.Context(), id)
	if err != nil {
		writeError(w, "hero.Get", err)
		return
	}

	writeJSON(w, hero)
}

func (h *HeroHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := heroIDParam(w, r)
	if !ok {
		return
	}

	stats, err := h.heroService.Stats(r.Context(), id)
	if err != nil {
		writeError(w, "hero.Stats", err)
		return
	}

	writeJSON(w, stats)
}

func (h *HeroHandler) BattleStats(w http.ResponseWriter, r *http.Request) {
	id, ok := heroIDParam(w, r)
	if !ok {
		return
	}

	stats, err := h.heroService.BattleStats(r.Context(), id)
	if err != nil {
		writeError(w, "hero.BattleStats", err)
		return
	}

	writeJSON(w, stats)
}

func (h *HeroHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := heroIDParam(w, r)
	if !ok {
		return
	}

	history, err := h.heroService.History(r.Context(), id)
	if err != nil {
		writeError(w, "hero.History", err)
		return
	}

	writeJSON(w, history)
}

func (h *HeroHandler) CanEvolve(w http.ResponseWriter, r *http.Request) {
	id, ok := heroIDParam(w, r)
	if !ok {
		return
	}

	can, err := h.heroService.CanEvolve(r.Context(), id, domain.EvolutionType(r.URL.Query().Get("type")))
	if err != nil {
		writeError(w, "hero.CanEvolve", err)
		return
	}

	writeJSON(w, map[string]bool{"canEvolve": can})
}

func (h *HeroHandler) CanAscend(w http.ResponseWriter, r *http.Request) {
	id, ok := heroIDParam(w, r)
	if !ok {
		return
	}

	can, err := h.heroService.CanAscend(r.Context(), id)
	if err != nil {
		writeError(w, "hero.CanAscend", err)
		return
	}

	writeJSON(w, map[string]bool{"canAscend": can})
}

// List returns hero ids, filtered by rarity when the query names one
func (h *HeroHandler) List(w http.ResponseWriter, r *http.Request) {
	rarity := r.URL.Query().Get("rarity")
	if rarity == "" {
		total, err := h.heroService.Total(r.Context())
		if err != nil {
			writeError(w, "hero.List", err)
			return
		}
		writeJSON(w, map[string]uint64{"total": total})
		return
	}

	ids, err := h.heroService.IDsByRarity(r.Context(), domain.Rarity(rarity))
	if err != nil {
		writeError(w, "hero.List", err)
		return
	}

	writeJSON(w, map[string][]uint64{"heroIds": ids})
}

// Owned lists the heroes of the account in the path, or of the caller when
// mounted without an account parameter
func (h *HeroHandler) Owned(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "account")

	var owner uuid.UUID
	if param == "" {
		caller, ok := middleware.GetCaller(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		owner = caller
	} else {
		var err error
		if owner, err = uuid.Parse(param); err != nil {
			http.Error(w, "Invalid account id", http.StatusBadRequest)
			return
		}
	}

	heroes, err := h.heroService.HeroesOf(r.Context(), owner)
	if err != nil {
		writeError(w, "hero.Owned", err)
		return
	}

	writeJSON(w, heroes)
}

func (h *HeroHandler) Costs(w http.ResponseWriter, r *http.Request) {
	resp := CostsResponse{
		BasicCreation:    h.heroService.CreationCost(false),
		EnhancedCreation: h.heroService.CreationCost(true),
		AbilityUnlock:    h.heroService.AbilityCost(),
		Ascension:        h.heroService.AscensionCost(),
		Evolutions:       make(map[domain.EvolutionType]domain.Amount, len(domain.AllEvolutionTypes)),
	}
	for _, t := range domain.AllEvolutionTypes {
		cost, err := h.heroService.EvolutionCost(t)
		if err != nil {
			writeError(w, "hero.Costs", err)
			return
		}
		resp.Evolutions[t] = cost
	}

	writeJSON(w, resp)
}

func (h *HeroHandler) LevelUp(w http.ResponseWriter, r *http.Request) {
	id, ok := heroIDParam(w, r)
	if !ok {
		return
	}
	inv, ok := invocation(w, r, "")
	if !ok {
		return
	}

	hero, gained, err := h.heroService.LevelUp(r.Context(), inv, id)
	if err != nil {
		writeError(w, "hero.LevelUp", err)
		return
	}

	writeJSON(w, LevelUpResponse{Hero: hero, LevelsGained: gained})
}

func (h *HeroHandler) RecordBattleResult(w http.ResponseWriter, r *http.Request) {
	id, ok := heroIDParam(w, r)
	if !ok {
		return
	}
	var req BattleResultRequest
	if !decode(w, r, &req) {
		return
	}
	inv, ok := invocation(w, r, "")
	if !ok {
		return
	}

	hero, err := h.heroService.RecordBattleResult(r.Context(), inv, id, req.Won, req.Experience)
	if err != nil {
		writeError(w, "hero.RecordBattleResult", err)
		return
	}

	writeJSON(w, hero)
}

func (h *HeroHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	id, ok := heroIDParam(w, r)
	if !ok {
		return
	}
	var req TransferRequest
	if !decode(w, r, &req) {
		return
	}
	to, err := uuid.Parse(req.To)
	if err != nil {
		http.Error(w, "Invalid recipient", http.StatusBadRequest)
		return
	}
	inv, ok := invocation(w, r, "")
	if !ok {
		return
	}

	hero, err := h.heroService.Transfer(r.Context(), inv, id, to)
	if err != nil {
		writeError(w, "hero.Transfer", err)
		return
	}

	writeJSON(w, hero)
}

func (h *HeroHandler) Evolve(w http.ResponseWriter, r *http.Request) {
	id, ok := heroIDParam(w, r)
	if !ok {
		return
	}
	var req EvolveRequest
	if !decode(w, r, &req) {
		return
	}
	inv, ok := invocation(w, r, req.Paid)
	if !ok {
		return
	}

	hero, result, err := h.heroService.Evolve(r.Context(), inv, id, domain.EvolutionType(req.Type))
	if err != nil {
		writeError(w, "hero.Evolve", err)
		return
	}

	writeJSON(w, EvolveResponse{
		Hero:           hero,
		OldRarity:      result.OldRarity,
		NewRarity:      result.NewRarity,
		GrantedAbility: result.GrantedAbility,
	})
}

func (h *HeroHandler) UnlockAbility(w http.ResponseWriter, r *http.Request) {
	id, ok := heroIDParam(w, r)
	if !ok {
		return
	}
	var req UnlockAbilityRequest
	if !decode(w, r, &req) {
		return
	}
	inv, ok := invocation(w, r, req.Paid)
	if !ok {
		return
	}

	hero, err := h.heroService.UnlockAbility(r.Context(), inv, id, req.Ability)
	if err != nil {
		writeError(w, "hero.UnlockAbility", err)
		return
	}

	writeJSON(w, hero)
}

func (h *HeroHandler) Ascend(w http.ResponseWriter, r *http.Request) {
	id, ok := heroIDParam(w, r)
	if !ok {
		return
	}
	var req PaymentRequest
	if !decode(w, r, &req) {
		return
	}
	inv, ok := invocation(w, r, req.Paid)
	if !ok {
		return
	}

	hero, err := h.heroService.Ascend(r.Context(), inv, id)
	if err != nil {
		writeError(w, "hero.Ascend", err)
		return
	}

	writeJSON(w, hero)
}
