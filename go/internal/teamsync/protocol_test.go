package teamsync

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) (*Registry, *Handler) {
	t.Helper()
	r := NewRegistry()
	return r, NewHandler(r, NewRouter(r))
}

func join(h *Handler, conn *Conn, userID, teamID int) {
	h.HandleMessage(conn, []byte(`{"type":"join","userId":`+itoa(userID)+`,"teamId":`+itoa(teamID)+`}`))
}

func itoa(v int) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func decodeSingle[T any](t *testing.T, sock *mockSocket) T {
	t.Helper()
	sent := sock.getSent()
	require.Len(t, sent, 1)
	var out T
	require.NoError(t, json.Unmarshal(sent[0], &out))
	return out
}

func TestHandler_TimeUpdateReachesTeamOnly(t *testing.T) {
	r, h := newSession(t)

	aSock, bSock, cSock := &mockSocket{}, &mockSocket{}, &mockSocket{}
	a := r.Register(aSock)
	b := r.Register(bSock)
	c := r.Register(cSock)
	join(h, a, 1, 7)
	join(h, b, 2, 7)
	join(h, c, 3, 9)

	h.HandleMessage(a, []byte(`{"type":"timeUpdate","time":"2024-01-01T10:00:00Z"}`))

	got := decodeSingle[TimeUpdateEvent](t, bSock)
	assert.Equal(t, MessageTypeTimeUpdate, got.Type)
	assert.Equal(t, `"2024-01-01T10:00:00Z"`, string(got.Time))
	require.NotNil(t, got.UserID)
	assert.Equal(t, 1, *got.UserID)

	assert.Empty(t, aSock.getSent(), "sender must not receive an echo")
	assert.Empty(t, cSock.getSent(), "other team must not receive")
}

func TestHandler_TimezoneUpdateCarriesActionAndSender(t *testing.T) {
	r, h := newSession(t)

	aSock, bSock := &mockSocket{}, &mockSocket{}
	a := r.Register(aSock)
	b := r.Register(bSock)
	join(h, a, 1, 7)
	join(h, b, 2, 7)

	h.HandleMessage(a, []byte(`{"type":"timezoneUpdate","timezone":{"name":"Paris","timezone":"Europe/Paris"},"action":"add"}`))

	got := decodeSingle[TimezoneUpdateEvent](t, bSock)
	assert.Equal(t, MessageTypeTimezoneUpdate, got.Type)
	assert.Equal(t, "add", got.Action)
	assert.JSONEq(t, `{"name":"Paris","timezone":"Europe/Paris"}`, string(got.Timezone))
	require.NotNil(t, got.UserID)
	assert.Equal(t, 1, *got.UserID)
}

func TestHandler_UpdateBeforeJoinDeliversToNobody(t *testing.T) {
	r, h := newSession(t)

	aSock, bSock := &mockSocket{}, &mockSocket{}
	a := r.Register(aSock)
	b := r.Register(bSock)
	join(h, b, 2, 7)

	assert.NotPanics(t, func() {
		h.HandleMessage(a, []byte(`{"type":"timeUpdate","time":"2024-01-01T10:00:00Z"}`))
	})
	assert.Empty(t, aSock.getSent())
	assert.Empty(t, bSock.getSent())
}

func TestHandler_RejoinLastWriteWins(t *testing.T) {
	r, h := newSession(t)

	aSock := &mockSocket{}
	a := r.Register(aSock)
	team5Sock, team6Sock := &mockSocket{}, &mockSocket{}
	team5 := r.Register(team5Sock)
	team6 := r.Register(team6Sock)
	join(h, team5, 10, 5)
	join(h, team6, 11, 6)

	join(h, a, 1, 5)
	join(h, a, 1, 6)

	h.HandleMessage(a, []byte(`{"type":"timeUpdate","time":"t"}`))

	assert.Empty(t, team5Sock.getSent(), "connection left team 5 on rejoin")
	assert.Len(t, team6Sock.getSent(), 1)
}

func TestHandler_DisconnectedMemberIsAbsentFromDelivery(t *testing.T) {
	r, h := newSession(t)

	aSock, bSock := &mockSocket{}, &mockSocket{}
	a := r.Register(aSock)
	b := r.Register(bSock)
	join(h, a, 1, 7)
	join(h, b, 2, 7)

	h.HandleClose(a)

	h.HandleMessage(b, []byte(`{"type":"timezoneUpdate","timezone":"Europe/Paris","action":"add"}`))

	assert.Empty(t, aSock.getSent(), "removed connection must not receive")
	assert.Empty(t, bSock.getSent(), "sender is excluded and no one else remains")
	require.Len(t, r.MembersOf(7), 1)
}

func TestHandler_MalformedAndUnknownMessagesAreDropped(t *testing.T) {
	r, h := newSession(t)

	aSock, bSock := &mockSocket{}, &mockSocket{}
	a := r.Register(aSock)
	b := r.Register(bSock)
	join(h, a, 1, 7)
	join(h, b, 2, 7)

	for _, raw := range []string{
		"not json",
		`{"type":"selfDestruct"}`,
		`{}`,
	} {
		assert.NotPanics(t, func() {
			h.HandleMessage(a, []byte(raw))
		}, "raw=%s", raw)
	}

	assert.Empty(t, bSock.getSent())
	// The session is still usable after dropped messages.
	h.HandleMessage(a, []byte(`{"type":"timeUpdate","time":1}`))
	assert.Len(t, bSock.getSent(), 1)
}

func TestHandler_CloseIsIdempotent(t *testing.T) {
	r, h := newSession(t)
	a := r.Register(&mockSocket{})
	join(h, a, 1, 7)

	h.HandleClose(a)
	assert.NotPanics(t, func() { h.HandleClose(a) })
	assert.Empty(t, r.MembersOf(7))
}
