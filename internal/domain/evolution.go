package domain

// EvolutionType identifies a paid evolution path
type EvolutionType string

const (
	EvolutionStatBoost         EvolutionType = "stat_boost"
	EvolutionRarityUpgrade     EvolutionType = "rarity_upgrade"
	EvolutionClassEvolution    EvolutionType = "class_evolution"
	EvolutionElementalInfusion EvolutionType = "elemental_infusion"
)

// AllEvolutionTypes lists every evolution type
var AllEvolutionTypes = []EvolutionType{
	EvolutionStatBoost,
	EvolutionRarityUpgrade,
	EvolutionClassEvolution,
	EvolutionElementalInfusion,
}

// IsValid checks if an evolution type is valid
func (t EvolutionType) IsValid() bool {
	_, ok := EvolutionRules[t]
	return ok
}

// String returns the string representation of the evolution type
func (t EvolutionType) String() string {
	return string(t)
}

const (
	// AscendedAbility is granted on ascension
	AscendedAbility   uint32 = 999
	MaxAbilities             = 5
	MaxLevel          uint32 = 100
	ExperiencePerStep uint64 = 100
)

// ElementalAbilities is the pool an elemental infusion draws from
var ElementalAbilities = [5]uint32{100, 101, 102, 103, 104}

// EvolutionRule describes the cost, gate and effect of one evolution type
type EvolutionRule struct {
	Cost       Amount
	Category   RevenueCategory
	MinLevel   uint32
	MinBattles uint32
	MinRarity  Rarity
	// MaxRarity is exclusive; empty means no ceiling
	MaxRarity Rarity
	// Bonus returns the stat delta applied for a hero in its pre-evolution state
	Bonus func(h *Hero) StatDelta
	// GrantsElemental adds an elemental ability when a slot is free
	GrantsElemental bool
	// AdvancesRarity moves the hero one tier up
	AdvancesRarity bool
}

var rarityBonus = map[Rarity]StatDelta{
	RarityRare:      {Vitality: 50, Strength: 30, MagicPower: 25, Agility: 20, Intelligence: 15},
	RarityEpic:      {Vitality: 75, Strength: 45, MagicPower: 35, Agility: 30, Intelligence: 25},
	RarityLegendary: {Vitality: 100, Strength: 60, MagicPower: 50, Agility: 40, Intelligence: 35},
}

var classEvolutionBonus = map[HeroClass]StatDelta{
	ClassWarrior:     {Vitality: 80, Strength: 50, MagicPower: 40},
	ClassMage:        {Intelligence: 70, Strength: 40, Agility: 20},
	ClassRogue:       {Agility: 70, Strength: 55, MagicPower: 15},
	ClassNecromancer: {Agility: 60, Strength: 45, Intelligence: 25},
}

var defaultClassEvolutionBonus = StatDelta{Vitality: 40, Strength: 35, MagicPower: 25, Agility: 30, Intelligence: 30}

// EvolutionRules is the single table driving every evolution path
var EvolutionRules = map[EvolutionType]EvolutionRule{
	EvolutionStatBoost: {
		Cost:     Unit / 2,
		Category: CategoryStatBoost,
		MinLevel: 10,
		Bonus: func(*Hero) StatDelta {
			return StatDelta{Vitality: 25, Strength: 15, MagicPower: 12, Agility: 10, Intelligence: 8}
		},
	},
	EvolutionRarityUpgrade: {
		Cost:           Unit,
		Category:       CategoryRarityUpgrade,
		MinLevel:       25,
		MaxRarity:      RarityLegendary,
		AdvancesRarity: true,
		Bonus: func(h *Hero) StatDelta {
			return rarityBonus[h.Rarity.Next()]
		},
	},
	EvolutionClassEvolution: {
		Cost:       2 * Unit,
		Category:   CategoryClassEvolution,
		MinLevel:   50,
		MinBattles: 20,
		Bonus: func(h *Hero) StatDelta {
			if d, ok := classEvolutionBonus[h.Class]; ok {
				return d
			}
			return defaultClassEvolutionBonus
		},
	},
	EvolutionElementalInfusion: {
		Cost:            Unit + Unit/2,
		Category:        CategoryElementalInfusion,
		MinLevel:        30,
		MinRarity:       RarityRare,
		GrantsElemental: true,
		Bonus: func(*Hero) StatDelta {
			return StatDelta{Vitality: 40, Strength: 35, MagicPower: 30, Intelligence: 40}
		},
	},
}

// GateMet reports whether the hero satisfies the non-payment requirements of the rule
func (r EvolutionRule) GateMet(h *Hero) bool {
	if h.Level < r.MinLevel || h.BattlesFought < r.MinBattles {
		return false
	}
	if r.MinRarity != "" && !h.Rarity.AtLeast(r.MinRarity) {
		return false
	}
	if r.MaxRarity != "" && h.Rarity.AtLeast(r.MaxRarity) {
		return false
	}
	return true
}

// Ascension requirements
const (
	AscensionMinLevel uint32 = 100
	AscensionMinWins  uint32 = 50
	AbilityMinLevel   uint32 = 25
)
