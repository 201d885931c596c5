package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationHeroCreated           NotificationType = "hero_created"
	NotificationHeroLeveled           NotificationType = "hero_leveled"
	NotificationHeroEvolved           NotificationType = "hero_evolved"
	NotificationAbilityUnlocked       NotificationType = "ability_unlocked"
	NotificationHeroAscended          NotificationType = "hero_ascended"
	NotificationHeroTransferred       NotificationType = "hero_transferred"
	NotificationBattleRecorded        NotificationType = "battle_recorded"
	NotificationBattleOutcomeRecorded NotificationType = "battle_outcome_recorded"
	NotificationPlayerActionRecorded  NotificationType = "player_action_recorded"
	NotificationTransactionRecorded   NotificationType = "transaction_recorded"
	NotificationRevenueCollected      NotificationType = "revenue_collected"
	NotificationAnalyticsReset        NotificationType = "analytics_reset"
	NotificationPausedChanged         NotificationType = "paused_changed"
)

// Notification is emitted once per successful state transition.
// Data carries the old/new values an indexer needs.
type Notification struct {
	ID        uuid.UUID         `json:"id"`
	Type      NotificationType  `json:"type"`
	HeroIDs   []uint64          `json:"heroIds,omitempty"`
	Accounts  []uuid.UUID       `json:"accounts,omitempty"`
	Data      datatypes.JSONMap `json:"data,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// NewNotification builds a notification stamped with the given time
func NewNotification(t NotificationType, at time.Time, data map[string]interface{}) Notification {
	return Notification{
		ID:        uuid.New(),
		Type:      t,
		Data:      datatypes.JSONMap(data),
		CreatedAt: at,
	}
}

// WithHeroes attaches hero ids to the notification
func (n Notification) WithHeroes(ids ...uint64) Notification {
	n.HeroIDs = append(n.HeroIDs, ids...)
	return n
}

// WithAccounts attaches accounts to the notification
func (n Notification) WithAccounts(accounts ...uuid.UUID) Notification {
	n.Accounts = append(n.Accounts, accounts...)
	return n
}
