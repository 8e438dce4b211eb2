package teamsync

import (
	"errors"

	"github.com/rs/zerolog/log"
)

// Handler drives the per-connection session protocol: a connection is
// unassociated until its first join, then relays time and timezone updates to
// its team. The sender never receives its own update back; clients apply
// their changes optimistically.
//
// Malformed and unrecognized messages are dropped after logging and leave the
// session state untouched.
type Handler struct {
	registry *Registry
	router   *Router
}

// NewHandler creates a protocol handler over the registry and router.
func NewHandler(registry *Registry, router *Router) *Handler {
	return &Handler{registry: registry, router: router}
}

// HandleMessage processes one inbound frame from conn. It never returns an
// error: the socket protocol has no error channel back to the client.
func (h *Handler) HandleMessage(conn *Conn, data []byte) {
	msg, err := DecodeMessage(data)
	if err != nil {
		if errors.Is(err, ErrUnknownMessageType) {
			log.Debug().Err(err).Str("connection_id", conn.ID()).Msg("ignoring message")
		} else {
			log.Warn().Err(err).Str("connection_id", conn.ID()).Msg("dropping malformed message")
		}
		return
	}

	switch m := msg.(type) {
	case JoinMessage:
		h.registry.Associate(conn, m.UserID, m.TeamID)

	case TimeUpdateMessage:
		h.router.Send(conn.TeamID(), TimeUpdateEvent{
			Type:   MessageTypeTimeUpdate,
			Time:   m.Time,
			UserID: conn.UserID(),
		}, conn)

	case TimezoneUpdateMessage:
		h.router.Send(conn.TeamID(), TimezoneUpdateEvent{
			Type:     MessageTypeTimezoneUpdate,
			Timezone: m.Timezone,
			Action:   m.Action,
			UserID:   conn.UserID(),
		}, conn)
	}
}

// HandleClose removes conn from the registry. Called on transport close and
// transport error alike; safe to call more than once.
func (h *Handler) HandleClose(conn *Conn) {
	h.registry.Remove(conn)
}
