package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/host"
	"github.com/dom/hero-forge/internal/repository"
	"github.com/dom/hero-forge/internal/service"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AccountBuilder creates test accounts with a builder pattern
type AccountBuilder struct {
	displayName string
	password    string
}

// NewAccountBuilder creates a new AccountBuilder with default values
func NewAccountBuilder() *AccountBuilder {
	return &AccountBuilder{
		displayName: fmt.Sprintf("player_%s", uuid.New().String()[:8]),
		password:    "testpassword123",
	}
}

// WithDisplayName sets the display name
func (b *AccountBuilder) WithDisplayName(name string) *AccountBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *AccountBuilder) WithPassword(password string) *AccountBuilder {
	b.password = password
	return b
}

// Build stores the account and returns it with the raw password
func (b *AccountBuilder) Build(t *testing.T, repo repository.AccountRepository) (*domain.Account, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	account := &domain.Account{
		ID:           uuid.New(),
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	return account, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	Account struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"account"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate registers the account via the API and returns it with an access token
func (b *AccountBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.Account, string) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"displayName": b.displayName,
		"password":    b.password,
	})

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register account: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	accountID, _ := uuid.Parse(authResp.Account.ID)
	return &domain.Account{ID: accountID, DisplayName: authResp.Account.DisplayName}, authResp.AccessToken
}

// AdminToken issues an access token for the configured admin account
func (ts *TestServer) AdminToken(t *testing.T) string {
	t.Helper()

	account := &domain.Account{
		ID:           ts.Config.AdminAccountID,
		DisplayName:  "admin_" + ts.Config.AdminAccountID.String()[:8],
		PasswordHash: "unused",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if _, err := ts.Repos.Account.GetByID(context.Background(), account.ID); err != nil {
		if err := ts.Repos.Account.Create(context.Background(), account); err != nil {
			t.Fatalf("failed to create admin account: %v", err)
		}
	}

	token, err := ts.Services.Auth.IssueAccessToken(account)
	if err != nil {
		t.Fatalf("failed to issue admin token: %v", err)
	}
	return token
}

// CreateHero mints a basic hero for the owner through the service layer
func CreateHero(t *testing.T, heroes *service.HeroService, owner uuid.UUID, class domain.HeroClass) *domain.Hero {
	t.Helper()

	hero, err := heroes.Create(context.Background(), host.NewInvocation(owner, domain.BasicCreationFee), service.CreateHeroInput{
		Name:  "Hero",
		Class: &class,
	})
	if err != nil {
		t.Fatalf("failed to create hero: %v", err)
	}
	return hero
}

// HeroPatch overrides progression fields of a stored hero
type HeroPatch struct {
	Level      uint32
	Experience uint64
	Rarity     domain.Rarity
	Battles    uint32
	Wins       uint32
	Abilities  []uint32
}

// PatchHero writes progression state directly, for tests that need a hero
// past gates the public operations take many steps to reach
func PatchHero(t *testing.T, repo repository.HeroRepository, heroID uint64, p HeroPatch) *domain.Hero {
	t.Helper()

	ctx := context.Background()
	hero, err := repo.GetByID(ctx, heroID)
	if err != nil {
		t.Fatalf("failed to load hero %d: %v", heroID, err)
	}
	if p.Level != 0 {
		hero.Level = p.Level
	}
	hero.Experience = p.Experience
	if p.Rarity != "" {
		hero.Rarity = p.Rarity
	}
	hero.BattlesFought = p.Battles
	hero.BattlesWon = p.Wins
	if p.Abilities != nil {
		hero.Abilities = p.Abilities
	}
	if err := repo.Update(ctx, hero); err != nil {
		t.Fatalf("failed to patch hero %d: %v", heroID, err)
	}
	return hero
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// Do sends an authenticated request and returns the response
func Do(t *testing.T, method, url string, body interface{}, token string) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(CreateAuthenticatedRequest(t, method, url, body, token))
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
