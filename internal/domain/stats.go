package domain

// BaseStatPoints is the common base every class template is offset from
const BaseStatPoints uint32 = 100

// Stats holds the six base attributes of a hero
type Stats struct {
	Strength     uint32 `json:"strength" gorm:"not null"`
	Intelligence uint32 `json:"intelligence" gorm:"not null"`
	Agility      uint32 `json:"agility" gorm:"not null"`
	Vitality     uint32 `json:"vitality" gorm:"not null"`
	Luck         uint32 `json:"luck" gorm:"not null"`
	MagicPower   uint32 `json:"magicPower" gorm:"not null"`
}

// StatDelta is an increment to the five core stats. Luck is never trained.
type StatDelta struct {
	Vitality     uint32 `json:"vitality"`
	Strength     uint32 `json:"strength"`
	MagicPower   uint32 `json:"magicPower"`
	Agility      uint32 `json:"agility"`
	Intelligence uint32 `json:"intelligence"`
}

// UniformStats returns stats with every attribute set to value
func UniformStats(value uint32) Stats {
	return Stats{
		Strength:     value,
		Intelligence: value,
		Agility:      value,
		Vitality:     value,
		Luck:         value,
		MagicPower:   value,
	}
}

// Apply returns s with the delta added to the core stats
func (s Stats) Apply(d StatDelta) Stats {
	s.Vitality += d.Vitality
	s.Strength += d.Strength
	s.MagicPower += d.MagicPower
	s.Agility += d.Agility
	s.Intelligence += d.Intelligence
	return s
}

// AddUniform returns s with n added to all six attributes
func (s Stats) AddUniform(n uint32) Stats {
	s.Strength += n
	s.Intelligence += n
	s.Agility += n
	s.Vitality += n
	s.Luck += n
	s.MagicPower += n
	return s
}

// DoubleCore returns s with the five core stats doubled
func (s Stats) DoubleCore() Stats {
	s.Vitality *= 2
	s.Strength *= 2
	s.MagicPower *= 2
	s.Agility *= 2
	s.Intelligence *= 2
	return s
}

// Total returns the sum of all attributes
func (s Stats) Total() uint64 {
	return uint64(s.Strength) + uint64(s.Intelligence) + uint64(s.Agility) +
		uint64(s.Vitality) + uint64(s.Luck) + uint64(s.MagicPower)
}

// offset applies a signed class delta to the base
func offset(delta int32) uint32 {
	return uint32(int32(BaseStatPoints) + delta)
}

// ClassTemplate returns the starting stats for a class.
// Unknown classes get the uniform base.
func ClassTemplate(c HeroClass) Stats {
	switch c {
	case ClassWarrior:
		return Stats{Strength: offset(30), Intelligence: offset(0), Agility: offset(10), Vitality: offset(20), Luck: offset(0), MagicPower: offset(-10)}
	case ClassMage:
		return Stats{Strength: offset(-10), Intelligence: offset(30), Agility: offset(0), Vitality: offset(0), Luck: offset(10), MagicPower: offset(20)}
	case ClassRogue:
		return Stats{Strength: offset(10), Intelligence: offset(10), Agility: offset(30), Vitality: offset(0), Luck: offset(20), MagicPower: offset(-10)}
	case ClassPaladin:
		return Stats{Strength: offset(20), Intelligence: offset(10), Agility: offset(0), Vitality: offset(20), Luck: offset(0), MagicPower: offset(10)}
	case ClassNecromancer:
		return Stats{Strength: offset(0), Intelligence: offset(25), Agility: offset(5), Vitality: offset(-5), Luck: offset(5), MagicPower: offset(30)}
	case ClassElementalist:
		return Stats{Strength: offset(-5), Intelligence: offset(20), Agility: offset(15), Vitality: offset(5), Luck: offset(15), MagicPower: offset(25)}
	default:
		return UniformStats(BaseStatPoints)
	}
}

// balancedGrowth is used for any class without a dedicated growth row
var balancedGrowth = StatDelta{Vitality: 10, Strength: 6, MagicPower: 4, Agility: 5, Intelligence: 5}

var levelGrowth = map[HeroClass]StatDelta{
	ClassWarrior:     {Vitality: 15, Strength: 8, MagicPower: 6, Agility: 2, Intelligence: 1},
	ClassMage:        {Vitality: 8, Strength: 6, MagicPower: 3, Agility: 4, Intelligence: 10},
	ClassRogue:       {Vitality: 6, Strength: 10, MagicPower: 2, Agility: 12, Intelligence: 2},
	ClassPaladin:     {Vitality: 12, Strength: 7, MagicPower: 7, Agility: 3, Intelligence: 3},
	ClassNecromancer: {Vitality: 6, Strength: 5, MagicPower: 4, Agility: 3, Intelligence: 11},
}

// LevelGrowth returns the per-level stat increase for a class
func LevelGrowth(c HeroClass) StatDelta {
	if d, ok := levelGrowth[c]; ok {
		return d
	}
	return balancedGrowth
}
