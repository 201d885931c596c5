package game

import (
	"fmt"
	"time"

	"github.com/dom/hero-forge/internal/domain"
)

// EvolutionResult reports what an evolution changed
type EvolutionResult struct {
	Type           domain.EvolutionType
	Rule           domain.EvolutionRule
	OldRarity      domain.Rarity
	NewRarity      domain.Rarity
	OldLevel       uint32
	NewLevel       uint32
	GrantedAbility *uint32
}

func requirementNotMet(cause error) error {
	return fmt.Errorf("%w: %w", domain.ErrEvolutionRequirementNotMet, cause)
}

// CheckEvolution validates gate then payment without touching the hero
func CheckEvolution(h *domain.Hero, t domain.EvolutionType, paid domain.Amount) (domain.EvolutionRule, error) {
	rule, ok := domain.EvolutionRules[t]
	if !ok {
		return domain.EvolutionRule{}, domain.ErrInvalidEvolutionType
	}
	if !rule.GateMet(h) {
		return rule, requirementNotMet(domain.ErrGateNotMet)
	}
	if paid < rule.Cost {
		return rule, requirementNotMet(domain.ErrUnderpaid)
	}
	return rule, nil
}

// Evolve applies a paid evolution to the hero.
// The tick selects the elemental ability for infusions.
func Evolve(h *domain.Hero, t domain.EvolutionType, paid domain.Amount, now time.Time, tick uint64) (EvolutionResult, error) {
	rule, err := CheckEvolution(h, t, paid)
	if err != nil {
		return EvolutionResult{}, err
	}

	res := EvolutionResult{
		Type:      t,
		Rule:      rule,
		OldRarity: h.Rarity,
		OldLevel:  h.Level,
	}

	h.Stats = h.Stats.Apply(rule.Bonus(h))
	if rule.AdvancesRarity {
		h.Rarity = h.Rarity.Next()
	}
	if rule.GrantsElemental {
		ability := domain.ElementalAbilities[tick%uint64(len(domain.ElementalAbilities))]
		if !h.HasAbility(ability) && h.AbilitySlotsFree() {
			h.Abilities = append(h.Abilities, ability)
			res.GrantedAbility = &ability
		}
	}
	h.LastEvolutionAt = now
	h.Level++

	res.NewRarity = h.Rarity
	res.NewLevel = h.Level
	return res, nil
}

// CanEvolve reports whether the hero meets the gate of an evolution type
func CanEvolve(h *domain.Hero, t domain.EvolutionType) bool {
	rule, ok := domain.EvolutionRules[t]
	return ok && rule.GateMet(h)
}

// EvolutionCost returns the fee for an evolution type
func EvolutionCost(t domain.EvolutionType) (domain.Amount, error) {
	rule, ok := domain.EvolutionRules[t]
	if !ok {
		return 0, domain.ErrInvalidEvolutionType
	}
	return rule.Cost, nil
}

// CheckAbilityUnlock validates an ability unlock without touching the hero
func CheckAbilityUnlock(h *domain.Hero, ability uint32, paid domain.Amount) error {
	if h.Level < domain.AbilityMinLevel {
		return domain.ErrGateNotMet
	}
	if h.HasAbility(ability) {
		return domain.ErrAbilityAlreadyUnlocked
	}
	if !h.AbilitySlotsFree() {
		return domain.ErrAbilitySlotsFull
	}
	if paid < domain.AbilityUnlockFee {
		return domain.ErrUnderpaid
	}
	return nil
}

// UnlockAbility adds an ability to the hero
func UnlockAbility(h *domain.Hero, ability uint32, paid domain.Amount) error {
	if err := CheckAbilityUnlock(h, ability, paid); err != nil {
		return err
	}
	h.Abilities = append(h.Abilities, ability)
	return nil
}

// CanAscend reports whether the hero meets the ascension gate
func CanAscend(h *domain.Hero) bool {
	return h.Level >= domain.AscensionMinLevel &&
		h.Rarity == domain.RarityLegendary &&
		h.BattlesWon >= domain.AscensionMinWins
}

// CheckAscension validates an ascension without touching the hero
func CheckAscension(h *domain.Hero, paid domain.Amount) error {
	if !CanAscend(h) {
		return domain.ErrGateNotMet
	}
	if !h.HasAbility(domain.AscendedAbility) && !h.AbilitySlotsFree() {
		return domain.ErrAbilitySlotsFull
	}
	if paid < domain.AscensionFee {
		return domain.ErrUnderpaid
	}
	return nil
}

// Ascend resets a legendary hero to level 1 as Mythical with doubled core stats
func Ascend(h *domain.Hero, paid domain.Amount, now time.Time) error {
	if err := CheckAscension(h, paid); err != nil {
		return err
	}
	h.Rarity = domain.RarityMythical
	h.Level = 1
	h.Stats = h.Stats.DoubleCore()
	if !h.HasAbility(domain.AscendedAbility) {
		h.Abilities = append(h.Abilities, domain.AscendedAbility)
	}
	h.LastEvolutionAt = now
	return nil
}
