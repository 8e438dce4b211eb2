package teamsync

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Forwarder propagates a serialized envelope beyond the local registry, e.g.
// to peer instances over a message bus. Forward must not block the broadcast
// path for long; delivery is best effort.
type Forwarder interface {
	Forward(teamID int, payload []byte)
}

// Router fans envelopes out to every registered member of a team. Delivery is
// fire-and-forget per recipient: a failed write is logged and skipped, never
// surfaced to the sender.
type Router struct {
	registry  *Registry
	forwarder Forwarder
}

// NewRouter creates a router over the given registry.
func NewRouter(registry *Registry) *Router {
	return &Router{registry: registry}
}

// SetForwarder attaches a cross-instance forwarder. Must be called before the
// router is in use; nil leaves the router purely process-local.
func (rt *Router) SetForwarder(f Forwarder) {
	rt.forwarder = f
}

// Send serializes envelope once and delivers it to every member of teamID
// except exclude. An unset team is a zero-recipient no-op.
func (rt *Router) Send(teamID *int, envelope any, exclude *Conn) {
	if teamID == nil {
		return
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		log.Error().Err(err).Int("team_id", *teamID).Msg("failed to marshal envelope")
		return
	}

	rt.Deliver(*teamID, data, exclude)

	if rt.forwarder != nil {
		rt.forwarder.Forward(*teamID, data)
	}
}

// Deliver writes an already-serialized envelope to the local members of
// teamID, skipping exclude. Used by Send and by forwarders replaying
// envelopes received from peer instances.
func (rt *Router) Deliver(teamID int, data []byte, exclude *Conn) {
	members := rt.registry.MembersOf(teamID)

	delivered := 0
	for _, member := range members {
		if member == exclude {
			continue
		}
		if err := member.write(data); err != nil {
			log.Warn().
				Err(err).
				Str("connection_id", member.ID()).
				Int("team_id", teamID).
				Msg("failed to write to team member")
			continue
		}
		delivered++
	}

	log.Debug().
		Int("team_id", teamID).
		Int("recipients", delivered).
		Msg("envelope broadcast")
}
