// Package memory is an in-process implementation of the repositories.
// A single store-wide mutex serializes units of work; a failed unit is
// rolled back to a snapshot taken when it started.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/repository"
	"github.com/google/uuid"
)

type dayKey struct {
	day int64
	key string
}

type spendKey struct {
	account  uuid.UUID
	currency string
}

type txKey struct {
	txType   string
	currency string
}

type state struct {
	accounts map[uuid.UUID]domain.Account
	sessions map[uuid.UUID]domain.AccountSession

	heroes    map[uint64]*domain.Hero
	owners    map[uint64]uuid.UUID
	counts    map[uuid.UUID]uint32
	sequences map[string]uint64

	revenue      map[domain.RevenueCategory]domain.Amount
	revenueTotal domain.Amount

	heroMetrics    map[uint64]domain.HeroMetrics
	playerMetrics  map[uuid.UUID]domain.PlayerMetrics
	playerSpend    map[spendKey]domain.Amount
	activeUsers    map[int64]map[uuid.UUID]struct{}
	dailyActions   map[dayKey]uint64
	dailyBattles   map[int64]uint64
	dailyVolume    map[dayKey]domain.Amount
	actions        map[string]uint64
	currencyVolume map[string]domain.Amount
	transactions   map[txKey]domain.TransactionTypeStat
	global         domain.GlobalMetrics

	paused     bool
	authorized map[uuid.UUID]time.Time
}

func newState() *state {
	return &state{
		accounts:       make(map[uuid.UUID]domain.Account),
		sessions:       make(map[uuid.UUID]domain.AccountSession),
		heroes:         make(map[uint64]*domain.Hero),
		owners:         make(map[uint64]uuid.UUID),
		counts:         make(map[uuid.UUID]uint32),
		sequences:      make(map[string]uint64),
		revenue:        make(map[domain.RevenueCategory]domain.Amount),
		heroMetrics:    make(map[uint64]domain.HeroMetrics),
		playerMetrics:  make(map[uuid.UUID]domain.PlayerMetrics),
		playerSpend:    make(map[spendKey]domain.Amount),
		activeUsers:    make(map[int64]map[uuid.UUID]struct{}),
		dailyActions:   make(map[dayKey]uint64),
		dailyBattles:   make(map[int64]uint64),
		dailyVolume:    make(map[dayKey]domain.Amount),
		actions:        make(map[string]uint64),
		currencyVolume: make(map[string]domain.Amount),
		transactions:   make(map[txKey]domain.TransactionTypeStat),
		global:         domain.GlobalMetrics{ID: domain.GlobalMetricsRowID},
		authorized:     make(map[uuid.UUID]time.Time),
	}
}

func (s *state) clone() *state {
	c := *s
	c.accounts = maps.Clone(s.accounts)
	c.sessions = maps.Clone(s.sessions)
	c.heroes = make(map[uint64]*domain.Hero, len(s.heroes))
	for id, h := range s.heroes {
		c.heroes[id] = h.Clone()
	}
	c.owners = maps.Clone(s.owners)
	c.counts = maps.Clone(s.counts)
	c.sequences = maps.Clone(s.sequences)
	c.revenue = maps.Clone(s.revenue)
	c.heroMetrics = maps.Clone(s.heroMetrics)
	c.playerMetrics = maps.Clone(s.playerMetrics)
	c.playerSpend = maps.Clone(s.playerSpend)
	c.activeUsers = make(map[int64]map[uuid.UUID]struct{}, len(s.activeUsers))
	for day, set := range s.activeUsers {
		c.activeUsers[day] = maps.Clone(set)
	}
	c.dailyActions = maps.Clone(s.dailyActions)
	c.dailyBattles = maps.Clone(s.dailyBattles)
	c.dailyVolume = maps.Clone(s.dailyVolume)
	c.actions = maps.Clone(s.actions)
	c.currencyVolume = maps.Clone(s.currencyVolume)
	c.transactions = maps.Clone(s.transactions)
	c.authorized = maps.Clone(s.authorized)
	return &c
}

// accessor hands a repository the state it operates on
type accessor interface {
	with(fn func(st *state) error) error
}

type lockedAccess struct {
	s *Store
}

func (a lockedAccess) with(fn func(st *state) error) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return fn(a.s.st)
}

// txAccess is used inside Atomic where the store lock is already held
type txAccess struct {
	st *state
}

func (a txAccess) with(fn func(st *state) error) error {
	return fn(a.st)
}

type Store struct {
	mu    sync.Mutex
	st    *state
	repos *repository.Repositories
}

func NewStore() *Store {
	s := &Store{st: newState()}
	s.repos = newRepositories(lockedAccess{s: s})
	return s
}

func (s *Store) Repositories() *repository.Repositories {
	return s.repos
}

func (s *Store) Atomic(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(newRepositories(txAccess{st: s.st})); err != nil {
		*s.st = *snapshot
		return err
	}
	return nil
}

func newRepositories(acc accessor) *repository.Repositories {
	return &repository.Repositories{
		Account:          &accountRepository{acc: acc},
		Session:          &sessionRepository{acc: acc},
		Hero:             &heroRepository{acc: acc},
		Ownership:        &ownershipRepository{acc: acc},
		Sequence:         &sequenceRepository{acc: acc},
		Revenue:          &revenueRepository{acc: acc},
		Analytics:        &analyticsRepository{acc: acc},
		Settings:         &settingsRepository{acc: acc},
		AuthorizedCaller: &authorizedCallerRepository{acc: acc},
	}
}
