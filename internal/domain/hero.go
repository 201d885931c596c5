package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MaxNameLength is the longest hero name accepted, in bytes
const MaxNameLength = 32

// DefaultPersonality is used when a basic creation request omits one
const DefaultPersonality = "Balanced"

// Traits is the AI persona attached to a hero at creation
type Traits struct {
	Personality    string      `json:"personality"`
	BattleStyle    BattleStyle `json:"battleStyle"`
	AdaptationRate uint32      `json:"adaptationRate"`
	LearningFactor uint32      `json:"learningFactor"`
	AISeed         uint64      `json:"aiSeed"`
}

type Hero struct {
	ID              uint64                      `json:"id" gorm:"primaryKey;autoIncrement:false"`
	OwnerID         uuid.UUID                   `json:"ownerId" gorm:"type:uuid;not null;index"`
	Name            string                      `json:"name" gorm:"size:32;not null"`
	Class           HeroClass                   `json:"class" gorm:"not null"`
	Level           uint32                      `json:"level" gorm:"not null;default:1"`
	Experience      uint64                      `json:"experience" gorm:"not null;default:0"`
	Stats           Stats                       `json:"stats" gorm:"embedded;embeddedPrefix:stat_"`
	Rarity          Rarity                      `json:"rarity" gorm:"not null;default:'common';index"`
	BattlesFought   uint32                      `json:"battlesFought" gorm:"not null;default:0"`
	BattlesWon      uint32                      `json:"battlesWon" gorm:"not null;default:0"`
	CreatedAt       time.Time                   `json:"createdAt"`
	LastEvolutionAt time.Time                   `json:"lastEvolutionAt"`
	Abilities       datatypes.JSONSlice[uint32] `json:"abilities" gorm:"type:jsonb"`
	Traits          Traits                      `json:"traits" gorm:"embedded;embeddedPrefix:trait_"`
	AIGenerated     bool                        `json:"aiGenerated" gorm:"not null;default:false"`
}

// ExperienceToNextLevel returns the experience required to level up
func (h *Hero) ExperienceToNextLevel() uint64 {
	return uint64(h.Level) * ExperiencePerStep
}

// HasAbility reports whether the hero already owns the ability
func (h *Hero) HasAbility(id uint32) bool {
	return slices.Contains(h.Abilities, id)
}

// AbilitySlotsFree reports whether another ability can be added
func (h *Hero) AbilitySlotsFree() bool {
	return len(h.Abilities) < MaxAbilities
}

// Clone returns a deep copy of the hero
func (h *Hero) Clone() *Hero {
	c := *h
	c.Abilities = slices.Clone(h.Abilities)
	return &c
}

// WinRate returns the win percentage, 0 when no battles were fought
func (h *Hero) WinRate() uint64 {
	if h.BattlesFought == 0 {
		return 0
	}
	return uint64(h.BattlesWon) * 100 / uint64(h.BattlesFought)
}

// HeroOwnership is the owner-to-hero set membership row
type HeroOwnership struct {
	HeroID  uint64    `json:"heroId" gorm:"primaryKey;autoIncrement:false"`
	OwnerID uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
}

// OwnerHeroCount caches the cardinality of an owner's hero set
type OwnerHeroCount struct {
	OwnerID uuid.UUID `json:"ownerId" gorm:"type:uuid;primaryKey"`
	Count   uint32    `json:"count" gorm:"not null;default:0"`
}

// HeroStatsView is the read model for a hero's attributes
type HeroStatsView struct {
	Stats      Stats  `json:"stats"`
	Level      uint32 `json:"level"`
	Experience uint64 `json:"experience"`
	Rarity     Rarity `json:"rarity"`
}

// BattleStatsView is the read model for a hero's battle record
type BattleStatsView struct {
	BattlesFought uint32 `json:"battlesFought"`
	BattlesWon    uint32 `json:"battlesWon"`
	WinRate       uint64 `json:"winRate"`
}

// EvolutionHistory summarizes the evolution state of a hero
type EvolutionHistory struct {
	LastEvolutionAt time.Time `json:"lastEvolutionAt"`
	AbilityCount    int       `json:"abilityCount"`
}
