package domain

import "slices"

// RevenueCategory names a fee bucket in the revenue ledger
type RevenueCategory string

const (
	CategoryBasicHeroGeneration RevenueCategory = "basic_hero_generation"
	CategoryAIHeroGeneration    RevenueCategory = "ai_hero_generation"
	CategoryStatBoost           RevenueCategory = "stat_boost"
	CategoryRarityUpgrade       RevenueCategory = "rarity_upgrade"
	CategoryClassEvolution      RevenueCategory = "class_evolution"
	CategoryElementalInfusion   RevenueCategory = "elemental_infusion"
	CategoryAbilityUnlock       RevenueCategory = "ability_unlock"
	CategoryHeroAscension       RevenueCategory = "hero_ascension"
)

// AllRevenueCategories lists every category the ledger knows about
var AllRevenueCategories = []RevenueCategory{
	CategoryBasicHeroGeneration,
	CategoryAIHeroGeneration,
	CategoryStatBoost,
	CategoryRarityUpgrade,
	CategoryClassEvolution,
	CategoryElementalInfusion,
	CategoryAbilityUnlock,
	CategoryHeroAscension,
}

func (c RevenueCategory) IsValid() bool {
	return slices.Contains(AllRevenueCategories, c)
}

func (c RevenueCategory) String() string {
	return string(c)
}

// RevenueCategoryTotal is the accumulated fees for one category
type RevenueCategoryTotal struct {
	Category RevenueCategory `json:"category" gorm:"primaryKey"`
	Total    Amount          `json:"total" gorm:"not null;default:0"`
}

func (RevenueCategoryTotal) TableName() string {
	return "revenue_categories"
}

// RevenueTotal is the single grand-total row of the ledger
type RevenueTotal struct {
	ID    int    `json:"-" gorm:"primaryKey;autoIncrement:false"`
	Total Amount `json:"total" gorm:"not null;default:0"`
}

// RevenueTotalRowID is the primary key of the grand-total row
const RevenueTotalRowID = 1

// RevenueSummary is the full ledger view
type RevenueSummary struct {
	Total      Amount                     `json:"total"`
	Categories map[RevenueCategory]Amount `json:"categories"`
}
