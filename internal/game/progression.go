package game

import (
	"github.com/dom/hero-forge/internal/domain"
)

// LevelUp consumes experience for as many levels as it covers, applying
// class growth for each. At least one level must be affordable.
// It returns the number of levels gained.
func LevelUp(h *domain.Hero) (uint32, error) {
	if h.Level >= domain.MaxLevel {
		return 0, domain.ErrMaxLevelReached
	}
	if h.Experience < h.ExperienceToNextLevel() {
		return 0, domain.ErrInsufficientExperience
	}

	growth := domain.LevelGrowth(h.Class)
	var gained uint32
	for h.Level < domain.MaxLevel && h.Experience >= h.ExperienceToNextLevel() {
		h.Experience -= h.ExperienceToNextLevel()
		h.Level++
		h.Stats = h.Stats.Apply(growth)
		gained++
	}
	return gained, nil
}

// ApplyBattleResult records one fought battle on the hero
func ApplyBattleResult(h *domain.Hero, won bool, experience uint64) {
	h.BattlesFought++
	if won {
		h.BattlesWon++
	}
	h.Experience += experience
}
