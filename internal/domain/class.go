package domain

// HeroClass represents the archetype a hero is minted with
type HeroClass string

const (
	ClassWarrior      HeroClass = "warrior"
	ClassMage         HeroClass = "mage"
	ClassRogue        HeroClass = "rogue"
	ClassPaladin      HeroClass = "paladin"
	ClassNecromancer  HeroClass = "necromancer"
	ClassElementalist HeroClass = "elementalist"
)

// AllClasses contains all classes in enumeration order.
// Personality-derived class selection indexes into this slice, so the order is part of the contract.
var AllClasses = []HeroClass{
	ClassWarrior,
	ClassMage,
	ClassRogue,
	ClassPaladin,
	ClassNecromancer,
	ClassElementalist,
}

// IsValid checks if a class is valid
func (c HeroClass) IsValid() bool {
	switch c {
	case ClassWarrior, ClassMage, ClassRogue, ClassPaladin, ClassNecromancer, ClassElementalist:
		return true
	}
	return false
}

// String returns the string representation of the class
func (c HeroClass) String() string {
	return string(c)
}

// DisplayName returns a user-friendly display name for the class
func (c HeroClass) DisplayName() string {
	switch c {
	case ClassWarrior:
		return "Warrior"
	case ClassMage:
		return "Mage"
	case ClassRogue:
		return "Rogue"
	case ClassPaladin:
		return "Paladin"
	case ClassNecromancer:
		return "Necromancer"
	case ClassElementalist:
		return "Elementalist"
	default:
		return string(c)
	}
}

// BattleStyle describes how a hero's AI persona fights
type BattleStyle string

const (
	BattleStyleAggressive BattleStyle = "aggressive"
	BattleStyleDefensive  BattleStyle = "defensive"
	BattleStyleBalanced   BattleStyle = "balanced"
	BattleStyleTactical   BattleStyle = "tactical"
	BattleStyleBerserker  BattleStyle = "berserker"
)

// BattleStyle returns the fixed battle style for the class
func (c HeroClass) BattleStyle() BattleStyle {
	switch c {
	case ClassWarrior:
		return BattleStyleAggressive
	case ClassMage, ClassNecromancer:
		return BattleStyleTactical
	case ClassPaladin:
		return BattleStyleDefensive
	default:
		return BattleStyleBalanced
	}
}
