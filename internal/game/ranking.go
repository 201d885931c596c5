package game

import (
	"cmp"
	"slices"

	"github.com/dom/hero-forge/internal/domain"
)

// HeroScore pairs a hero with its performance score
type HeroScore struct {
	HeroID uint64 `json:"heroId"`
	Score  uint64 `json:"score"`
}

// TopPerforming scores every hero that fought at least once and returns up
// to limit of them, best first. Ties go to the lower hero id.
func TopPerforming(metrics []domain.HeroMetrics, limit int) []HeroScore {
	scores := make([]HeroScore, 0, len(metrics))
	for i := range metrics {
		m := &metrics[i]
		if m.BattlesFought == 0 {
			continue
		}
		scores = append(scores, HeroScore{HeroID: m.HeroID, Score: m.PerformanceScore()})
	}

	slices.SortFunc(scores, func(a, b HeroScore) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.HeroID, b.HeroID)
	})

	if limit < 0 {
		limit = 0
	}
	if len(scores) > limit {
		scores = scores[:limit]
	}
	return scores
}

// TierFor maps activity and transaction counts to a ranking tier
func TierFor(activity, transactions uint64) domain.PlayerTier {
	score := activity + transactions*2
	switch {
	case score > 1000:
		return domain.PlayerTierTop
	case score > 500:
		return domain.PlayerTierHigh
	case score > 100:
		return domain.PlayerTierMedium
	default:
		return domain.PlayerTierLow
	}
}
