package gateway_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/timesync/go/internal/teamsync"
	"github.com/mcdev12/timesync/go/internal/teamsync/gateway"
)

// startGateway starts a test HTTP server hosting the websocket gateway.
// Returns the ws:// URL and the registry behind it.
func startGateway(t *testing.T) (string, *teamsync.Registry) {
	t.Helper()

	registry := teamsync.NewRegistry()
	router := teamsync.NewRouter(registry)
	handler := teamsync.NewHandler(registry, router)
	g := gateway.New(registry, handler, gateway.DefaultConfig())

	srv := httptest.NewServer(g)
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http"), registry
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendJSON(t *testing.T, conn *websocket.Conn, raw string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(raw)))
}

func readJSON(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

// waitForMembers polls until the team has the expected member count; joins
// are processed asynchronously by the read pump.
func waitForMembers(t *testing.T, registry *teamsync.Registry, teamID, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(registry.MembersOf(teamID)) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("team %d never reached %d members", teamID, want)
}

func TestGateway_RejectsNonWebSocketRequest(t *testing.T) {
	wsURL, _ := startGateway(t)
	httpURL := "http" + strings.TrimPrefix(wsURL, "ws")

	resp, err := http.Get(httpURL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestGateway_TeamBroadcast(t *testing.T) {
	wsURL, registry := startGateway(t)

	a := dial(t, wsURL)
	b := dial(t, wsURL)
	c := dial(t, wsURL)

	sendJSON(t, a, `{"type":"join","userId":1,"teamId":7}`)
	sendJSON(t, b, `{"type":"join","userId":2,"teamId":7}`)
	sendJSON(t, c, `{"type":"join","userId":3,"teamId":9}`)
	waitForMembers(t, registry, 7, 2)
	waitForMembers(t, registry, 9, 1)

	sendJSON(t, a, `{"type":"timeUpdate","time":"2024-01-01T10:00:00Z"}`)

	got := readJSON(t, b)
	assert.Equal(t, "timeUpdate", got["type"])
	assert.Equal(t, "2024-01-01T10:00:00Z", got["time"])
	assert.Equal(t, float64(1), got["userId"])

	// C is on another team and must see nothing.
	c.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := c.ReadMessage()
	assert.Error(t, err)
}

func TestGateway_SenderGetsNoEcho(t *testing.T) {
	wsURL, registry := startGateway(t)

	a := dial(t, wsURL)
	b := dial(t, wsURL)
	sendJSON(t, a, `{"type":"join","userId":1,"teamId":7}`)
	sendJSON(t, b, `{"type":"join","userId":2,"teamId":7}`)
	waitForMembers(t, registry, 7, 2)

	sendJSON(t, a, `{"type":"timezoneUpdate","timezone":"Europe/Paris","action":"add"}`)

	got := readJSON(t, b)
	assert.Equal(t, "timezoneUpdate", got["type"])
	assert.Equal(t, "add", got["action"])

	a.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := a.ReadMessage()
	assert.Error(t, err, "sender must not receive its own update")
}

func TestGateway_DisconnectRemovesFromRegistry(t *testing.T) {
	wsURL, registry := startGateway(t)

	a := dial(t, wsURL)
	b := dial(t, wsURL)
	sendJSON(t, a, `{"type":"join","userId":1,"teamId":7}`)
	sendJSON(t, b, `{"type":"join","userId":2,"teamId":7}`)
	waitForMembers(t, registry, 7, 2)

	a.Close()
	waitForMembers(t, registry, 7, 1)

	// B's update is attempted only against remaining members.
	sendJSON(t, b, `{"type":"timezoneUpdate","timezone":"Europe/Paris","action":"add"}`)

	b.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := b.ReadMessage()
	assert.Error(t, err)
}

func TestGateway_UpdateBeforeJoinIsDropped(t *testing.T) {
	wsURL, registry := startGateway(t)

	a := dial(t, wsURL)
	b := dial(t, wsURL)
	sendJSON(t, b, `{"type":"join","userId":2,"teamId":7}`)
	waitForMembers(t, registry, 7, 1)

	sendJSON(t, a, `{"type":"timeUpdate","time":"2024-01-01T10:00:00Z"}`)

	b.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := b.ReadMessage()
	assert.Error(t, err, "un-joined sender must deliver to nobody")

	// The connection survives the dropped message.
	sendJSON(t, a, `{"type":"join","userId":1,"teamId":7}`)
	waitForMembers(t, registry, 7, 2)
}
