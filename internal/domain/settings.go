package domain

import (
	"time"

	"github.com/google/uuid"
)

// Setting keys
const (
	SettingPaused = "paused"
)

// Setting is a key/value row for global flags
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     string    `json:"value" gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthorizedCaller is an account allowed to submit privileged telemetry
type AuthorizedCaller struct {
	Account   uuid.UUID `json:"account" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sequence is a named monotonic counter
type Sequence struct {
	Name  string `json:"name" gorm:"primaryKey"`
	Value uint64 `json:"value" gorm:"not null;default:0"`
}

// SequenceHero names the hero id sequence
const SequenceHero = "hero"

// ContractInfo summarizes the administrative state of the system
type ContractInfo struct {
	Admin       uuid.UUID `json:"admin"`
	Paused      bool      `json:"paused"`
	TotalHeroes uint64    `json:"totalHeroes"`
}
