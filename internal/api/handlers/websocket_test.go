package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/testutil"
	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wsTimeout = 2 * time.Second

func TestWebSocketHandler_RejectsBadTokens(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"invalid token", "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp, err := ws.DefaultDialer.Dial(ts.WebSocketURL(tt.token), nil)
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestWebSocketHandler_StreamsOwnAndSubscribedHeroes(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, ownerToken := testutil.NewAccountBuilder().BuildAndAuthenticate(t, ts)
	_, watcherToken := testutil.NewAccountBuilder().BuildAndAuthenticate(t, ts)

	owner := testutil.NewWSClient(t, ts.WebSocketURL(ownerToken))
	watcher := testutil.NewWSClient(t, ts.WebSocketURL(watcherToken))
	require.Eventually(t, func() bool { return ts.Hub.ClientCount() == 2 }, wsTimeout, 10*time.Millisecond)

	ack := watcher.Subscribe([]uint64{1}, false)
	assert.Equal(t, []uint64{1}, ack.HeroIDs)

	hero := createHero(t, ts, ownerToken)

	created := owner.ExpectNotificationOfType(domain.NotificationHeroCreated, wsTimeout)
	assert.Equal(t, []uint64{hero.ID}, created.HeroIDs)

	seen := watcher.ExpectNotificationOfType(domain.NotificationHeroCreated, wsTimeout)
	assert.Equal(t, created.ID, seen.ID)

	resp := testutil.Do(t, http.MethodPost, ts.APIURL("/admin/pause"), nil, ts.AdminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Pause changes reach the admin only; nobody else subscribed to everything.
	watcher.ExpectNoMessage(200 * time.Millisecond)
}
