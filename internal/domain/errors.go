package domain

import "errors"

// Payment errors
var (
	ErrUnderpaid = errors.New("insufficient payment")
)

// Hero errors
var (
	ErrHeroNotFound           = errors.New("hero not found")
	ErrInvalidClass           = errors.New("invalid hero class")
	ErrInvalidName            = errors.New("hero name must be between 1 and 32 bytes")
	ErrInvalidEvolutionType   = errors.New("invalid evolution type")
	ErrQuotaExceeded          = errors.New("maximum heroes per account reached")
	ErrInsufficientExperience = errors.New("insufficient experience to level up")
	ErrMaxLevelReached        = errors.New("hero is already at max level")
	ErrInvalidRarity          = errors.New("invalid rarity")
)

// Evolution errors
var (
	ErrEvolutionRequirementNotMet = errors.New("evolution requirements not met")
	ErrGateNotMet                 = errors.New("hero does not meet the requirements")
	ErrAbilitySlotsFull           = errors.New("all ability slots are in use")
	ErrAbilityAlreadyUnlocked     = errors.New("ability already unlocked")
)

// Ownership errors
var (
	ErrNotOwner         = errors.New("caller does not own this hero")
	ErrSelfTransfer     = errors.New("cannot transfer a hero to yourself")
	ErrInvalidRecipient = errors.New("invalid recipient")
)

// Access errors
var (
	ErrUnauthorized         = errors.New("caller is not authorized")
	ErrPaused               = errors.New("operations are paused")
	ErrConfirmationRequired = errors.New("confirmation required")
)

// Telemetry errors
var (
	ErrInvalidAction          = errors.New("action type is required")
	ErrInvalidCurrency        = errors.New("currency is required")
	ErrInvalidRevenueCategory = errors.New("invalid revenue category")
	ErrInvalidExportKind      = errors.New("invalid export data type")
)

// Account errors
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDisplayNameExists  = errors.New("display name already exists")
	ErrSessionNotFound    = errors.New("session not found")
)
