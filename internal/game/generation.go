package game

import (
	"github.com/dom/hero-forge/internal/domain"
)

// GenerationRequest describes the hero an owner asked to mint
type GenerationRequest struct {
	Class       *domain.HeroClass
	Personality string
	Enhanced    bool
	HeroID      uint64
}

// Generated is the attribute set a generator produced
type Generated struct {
	Class  domain.HeroClass
	Stats  domain.Stats
	Traits domain.Traits
}

// Generator produces starting attributes for a new hero
type Generator interface {
	Generate(req GenerationRequest, tick uint64) (Generated, error)
}

// PlaceholderGenerator derives attributes with deterministic arithmetic
// over the personality string and the entropy tick. It stands in for a
// real generation model.
type PlaceholderGenerator struct{}

func NewPlaceholderGenerator() *PlaceholderGenerator {
	return &PlaceholderGenerator{}
}

func (g *PlaceholderGenerator) Generate(req GenerationRequest, tick uint64) (Generated, error) {
	if req.Class != nil && !req.Class.IsValid() {
		return Generated{}, domain.ErrInvalidClass
	}

	if !req.Enhanced {
		if req.Class == nil {
			return Generated{}, domain.ErrInvalidClass
		}
		personality := req.Personality
		if personality == "" {
			personality = domain.DefaultPersonality
		}
		class := *req.Class
		return Generated{
			Class:  class,
			Stats:  domain.ClassTemplate(class),
			Traits: deriveTraits(class, personality, tick, req.HeroID),
		}, nil
	}

	n := len(req.Personality)
	var class domain.HeroClass
	var stats domain.Stats
	if req.Class != nil {
		class = *req.Class
		stats = domain.ClassTemplate(class)
	} else {
		class = domain.AllClasses[n%len(domain.AllClasses)]
		stats = domain.UniformStats(domain.BaseStatPoints)
	}

	return Generated{
		Class:  class,
		Stats:  stats.AddUniform(EnhancementFor(req.Personality)),
		Traits: deriveTraits(class, req.Personality, tick, req.HeroID),
	}, nil
}

// EnhancementFor returns the flat bonus an enhanced creation adds to every stat
func EnhancementFor(personality string) uint32 {
	return uint32(len(personality)%20) + 10
}

func deriveTraits(class domain.HeroClass, personality string, tick, heroID uint64) domain.Traits {
	return domain.Traits{
		Personality:    personality,
		BattleStyle:    class.BattleStyle(),
		AdaptationRate: 70 + uint32(tick%31),
		LearningFactor: 60 + uint32(tick%31),
		AISeed:         tick + heroID,
	}
}
