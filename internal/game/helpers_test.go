package game_test

import (
	"time"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/google/uuid"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newHero(class domain.HeroClass, level uint32) *domain.Hero {
	return &domain.Hero{
		ID:      7,
		OwnerID: uuid.New(),
		Name:    "Test Hero",
		Class:   class,
		Level:   level,
		Stats:   domain.ClassTemplate(class),
		Rarity:  domain.RarityCommon,
	}
}

func classPtr(c domain.HeroClass) *domain.HeroClass {
	return &c
}
