package domain

// Rarity is the ordered tier of a hero
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythical  Rarity = "mythical"
)

// AllRarities contains all rarities in ascending order
var AllRarities = []Rarity{
	RarityCommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
	RarityMythical,
}

// IsValid checks if a rarity is valid
func (r Rarity) IsValid() bool {
	return r.Tier() >= 0
}

// String returns the string representation of the rarity
func (r Rarity) String() string {
	return string(r)
}

// Tier returns the position of the rarity in AllRarities, or -1 if unknown
func (r Rarity) Tier() int {
	for i, rarity := range AllRarities {
		if rarity == r {
			return i
		}
	}
	return -1
}

// AtLeast reports whether r is the same tier as other or higher
func (r Rarity) AtLeast(other Rarity) bool {
	return r.Tier() >= other.Tier()
}

// Next returns the tier directly above r. The top tier returns itself.
func (r Rarity) Next() Rarity {
	tier := r.Tier()
	if tier < 0 || tier >= len(AllRarities)-1 {
		return r
	}
	return AllRarities[tier+1]
}
