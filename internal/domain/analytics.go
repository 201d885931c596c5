package domain

import (
	"time"

	"github.com/google/uuid"
)

// SecondsPerDay is the width of a daily analytics bucket
const SecondsPerDay = 86400

// DefaultCurrency is reported by views that take no currency argument
const DefaultCurrency = "EGLD"

// DayOf returns the daily bucket key for a timestamp
func DayOf(t time.Time) int64 {
	return t.Unix() / SecondsPerDay
}

type HeroMetrics struct {
	HeroID                 uint64    `json:"heroId" gorm:"primaryKey;autoIncrement:false"`
	BattlesFought          uint64    `json:"battlesFought" gorm:"not null;default:0"`
	BattlesWon             uint64    `json:"battlesWon" gorm:"not null;default:0"`
	TotalExperienceGained  uint64    `json:"totalExperienceGained" gorm:"not null;default:0"`
	TotalDamageDealt       uint64    `json:"totalDamageDealt" gorm:"not null;default:0"`
	TotalDamageTaken       uint64    `json:"totalDamageTaken" gorm:"not null;default:0"`
	UsageCount             uint64    `json:"usageCount" gorm:"not null;default:0"`
	LastUsedAt             time.Time `json:"lastUsedAt"`
	AvgDamagePerBattle     uint64    `json:"avgDamagePerBattle" gorm:"not null;default:0"`
	AvgExperiencePerBattle uint64    `json:"avgExperiencePerBattle" gorm:"not null;default:0"`
}

// RecomputeAverages derives the per-battle averages from the running sums
func (m *HeroMetrics) RecomputeAverages() {
	if m.BattlesFought == 0 {
		return
	}
	m.AvgDamagePerBattle = m.TotalDamageDealt / m.BattlesFought
	m.AvgExperiencePerBattle = m.TotalExperienceGained / m.BattlesFought
}

// WinRate returns the win percentage, 0 when no battles were fought
func (m *HeroMetrics) WinRate() uint64 {
	if m.BattlesFought == 0 {
		return 0
	}
	return m.BattlesWon * 100 / m.BattlesFought
}

// PerformanceScore is win rate percent plus a tenth of the average damage
func (m *HeroMetrics) PerformanceScore() uint64 {
	return m.WinRate() + m.AvgDamagePerBattle/10
}

type PlayerMetrics struct {
	Account          uuid.UUID `json:"account" gorm:"type:uuid;primaryKey"`
	ActivityCount    uint64    `json:"activityCount" gorm:"not null;default:0"`
	LastActivityAt   time.Time `json:"lastActivityAt"`
	TransactionCount uint64    `json:"transactionCount" gorm:"not null;default:0"`
}

type PlayerSpend struct {
	Account  uuid.UUID `json:"account" gorm:"type:uuid;primaryKey"`
	Currency string    `json:"currency" gorm:"primaryKey"`
	Amount   Amount    `json:"amount" gorm:"not null;default:0"`
}

func (PlayerSpend) TableName() string {
	return "player_spend"
}

type DailyActiveUser struct {
	Day     int64     `json:"day" gorm:"primaryKey;autoIncrement:false"`
	Account uuid.UUID `json:"account" gorm:"type:uuid;primaryKey"`
}

type DailyActionCount struct {
	Day    int64  `json:"day" gorm:"primaryKey;autoIncrement:false"`
	Action string `json:"action" gorm:"primaryKey"`
	Count  uint64 `json:"count" gorm:"not null;default:0"`
}

type DailyBattleCount struct {
	Day   int64  `json:"day" gorm:"primaryKey;autoIncrement:false"`
	Count uint64 `json:"count" gorm:"not null;default:0"`
}

type DailyTransactionVolume struct {
	Day      int64  `json:"day" gorm:"primaryKey;autoIncrement:false"`
	Currency string `json:"currency" gorm:"primaryKey"`
	Volume   Amount `json:"volume" gorm:"not null;default:0"`
}

type ActionCount struct {
	Action string `json:"action" gorm:"primaryKey"`
	Count  uint64 `json:"count" gorm:"not null;default:0"`
}

type CurrencyVolume struct {
	Currency string `json:"currency" gorm:"primaryKey"`
	Volume   Amount `json:"volume" gorm:"not null;default:0"`
}

type TransactionTypeStat struct {
	Type     string `json:"type" gorm:"primaryKey"`
	Currency string `json:"currency" gorm:"primaryKey"`
	Count    uint64 `json:"count" gorm:"not null;default:0"`
	Volume   Amount `json:"volume" gorm:"not null;default:0"`
}

// GlobalMetrics is the single row of game-wide counters
type GlobalMetrics struct {
	ID                    int    `json:"-" gorm:"primaryKey;autoIncrement:false"`
	TotalBattles          uint64 `json:"totalBattles" gorm:"not null;default:0"`
	TotalTransactions     uint64 `json:"totalTransactions" gorm:"not null;default:0"`
	TotalExperience       uint64 `json:"totalExperience" gorm:"not null;default:0"`
	TotalDamage           uint64 `json:"totalDamage" gorm:"not null;default:0"`
	TotalBattleDamage     uint64 `json:"totalBattleDamage" gorm:"not null;default:0"`
	TotalBattleTime       uint64 `json:"totalBattleTime" gorm:"not null;default:0"`
	AverageBattleDuration uint64 `json:"averageBattleDuration" gorm:"not null;default:0"`
}

// GlobalMetricsRowID is the primary key of the global counters row
const GlobalMetricsRowID = 1

// AddBattleDuration folds one battle into the totals. The average is always
// recomputed from the exact total.
func (g *GlobalMetrics) AddBattleDuration(d uint64) {
	prevTotal := g.TotalBattleTime
	g.TotalBattles++
	g.TotalBattleTime += d
	if g.TotalBattles == 1 {
		g.AverageBattleDuration = d
		return
	}
	g.AverageBattleDuration = (prevTotal + d) / g.TotalBattles
}

// Reset zeroes the game-wide counters
func (g *GlobalMetrics) Reset() {
	*g = GlobalMetrics{ID: g.ID}
}

// PlayerStats is the read model for a player's activity
type PlayerStats struct {
	ActivityCount    uint64    `json:"activityCount"`
	LastActivityAt   time.Time `json:"lastActivityAt"`
	TransactionCount uint64    `json:"transactionCount"`
	TotalSpent       Amount    `json:"totalSpent"`
}

// DailyStats is the read model for one daily bucket
type DailyStats struct {
	Day               int64  `json:"day"`
	ActiveUsers       int    `json:"activeUsers"`
	Battles           uint64 `json:"battles"`
	TransactionVolume Amount `json:"transactionVolume"`
}

// PlayerTier ranks players by activity
type PlayerTier int

const (
	PlayerTierTop    PlayerTier = 1
	PlayerTierHigh   PlayerTier = 2
	PlayerTierMedium PlayerTier = 3
	PlayerTierLow    PlayerTier = 4
)

// ExportKind selects the summary produced by an analytics export
type ExportKind string

const (
	ExportBattles ExportKind = "battles"
	ExportEconomy ExportKind = "economy"
)
