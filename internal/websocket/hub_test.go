package websocket_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/testutil"
	"github.com/dom/hero-forge/internal/websocket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wait = 2 * time.Second

func newHubServer(t *testing.T) (*websocket.Hub, func(account uuid.UUID) *testutil.WSClient) {
	t.Helper()

	hub := websocket.NewHub()
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, err := uuid.Parse(r.URL.Query().Get("account"))
		if err != nil {
			http.Error(w, "bad account", http.StatusBadRequest)
			return
		}
		if err := hub.Serve(w, r, account); err != nil {
			t.Logf("serve: %v", err)
		}
	}))

	t.Cleanup(func() {
		srv.Close()
		hub.Stop()
	})

	dial := func(account uuid.UUID) *testutil.WSClient {
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?account=" + account.String()
		return testutil.NewWSClient(t, url)
	}
	return hub, dial
}

func waitForClients(t *testing.T, hub *websocket.Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, wait, 10*time.Millisecond)
}

func heroNote(t domain.NotificationType, heroID uint64, accounts ...uuid.UUID) domain.Notification {
	return domain.NewNotification(t, time.Now(), map[string]interface{}{"heroId": heroID}).
		WithHeroes(heroID).
		WithAccounts(accounts...)
}

func TestHub_SubscribedHeroesReceiveNotifications(t *testing.T) {
	hub, dial := newHubServer(t)

	watcher := dial(uuid.New())
	ack := watcher.Subscribe([]uint64{7, 3}, false)
	assert.Equal(t, []uint64{3, 7}, ack.HeroIDs)
	assert.False(t, ack.All)

	require.NoError(t, hub.Notify(context.Background(), heroNote(domain.NotificationHeroLeveled, 9)))
	require.NoError(t, hub.Notify(context.Background(), heroNote(domain.NotificationHeroLeveled, 7)))

	n := watcher.ExpectNotification(wait)
	assert.Equal(t, domain.NotificationHeroLeveled, n.Type)
	assert.Equal(t, []uint64{7}, n.HeroIDs)
	watcher.ExpectNoMessage(100 * time.Millisecond)
}

func TestHub_AccountNotificationsNeedNoSubscription(t *testing.T) {
	hub, dial := newHubServer(t)

	owner := uuid.New()
	ownerClient := dial(owner)
	stranger := dial(uuid.New())
	waitForClients(t, hub, 2)

	note := heroNote(domain.NotificationHeroCreated, 1, owner)
	require.NoError(t, hub.Notify(context.Background(), note))

	got := ownerClient.ExpectNotification(wait)
	assert.Equal(t, note.ID, got.ID)
	assert.Equal(t, []uuid.UUID{owner}, got.Accounts)
	stranger.ExpectNoMessage(100 * time.Millisecond)
}

func TestHub_SubscribeAllAndUnsubscribe(t *testing.T) {
	hub, dial := newHubServer(t)

	c := dial(uuid.New())
	ack := c.Subscribe(nil, true)
	assert.True(t, ack.All)

	paused := domain.NewNotification(domain.NotificationPausedChanged, time.Now(), map[string]interface{}{"paused": true})
	require.NoError(t, hub.Notify(context.Background(), paused))
	got := c.ExpectNotification(wait)
	assert.Equal(t, domain.NotificationPausedChanged, got.Type)
	assert.Equal(t, true, got.Data["paused"])

	ack = c.Unsubscribe(nil, true)
	assert.False(t, ack.All)
	assert.Empty(t, ack.HeroIDs)

	require.NoError(t, hub.Notify(context.Background(), paused))
	c.ExpectNoMessage(100 * time.Millisecond)
}

func TestHub_RejectsUnknownMessages(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		code  string
	}{
		{"not json", "{", "INVALID_MESSAGE"},
		{"unknown type", `{"type":"PING","payload":{}}`, "UNKNOWN_TYPE"},
		{"bad payload", `{"type":"SUBSCRIBE","payload":{"heroIds":"x"}}`, "INVALID_PAYLOAD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, dial := newHubServer(t)
			c := dial(uuid.New())

			c.SendRaw([]byte(tt.frame))
			errPayload := c.ExpectError(wait)
			assert.Equal(t, tt.code, errPayload.Code)
		})
	}
}

func TestHub_StopClosesClients(t *testing.T) {
	hub, dial := newHubServer(t)

	c := dial(uuid.New())
	waitForClients(t, hub, 1)

	hub.Stop()
	c.ExpectClosed(wait)

	assert.Equal(t, 0, hub.ClientCount())
	assert.ErrorIs(t, hub.Notify(context.Background(), heroNote(domain.NotificationHeroLeveled, 1)), websocket.ErrHubStopped)
}

func TestHub_StopWithoutRun(t *testing.T) {
	hub := websocket.NewHub()

	stopped := make(chan struct{})
	go func() {
		hub.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(wait):
		t.Fatal("Stop blocked on a hub that never ran")
	}

	assert.ErrorIs(t, hub.Notify(context.Background(), heroNote(domain.NotificationHeroLeveled, 1)), websocket.ErrHubStopped)

	ran := make(chan struct{})
	go func() {
		hub.Run()
		close(ran)
	}()
	select {
	case <-ran:
	case <-time.After(wait):
		t.Fatal("Run kept serving a stopped hub")
	}

	hub.Stop()
}

func TestHub_NotifyHonoursContext(t *testing.T) {
	hub := websocket.NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Run is not started, so the broadcast buffer eventually fills.
	var err error
	for i := 0; i < 100 && err == nil; i++ {
		err = hub.Notify(ctx, heroNote(domain.NotificationHeroLeveled, uint64(i)))
	}
	assert.ErrorIs(t, err, context.Canceled)
}
