package teamsync

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Socket is the write side of one client connection. Implementations must be
// safe to call from the broadcast path; a failed write is reported to the
// router, never to the sending client.
type Socket interface {
	WriteMessage(data []byte) error
}

// Conn is one registered connection. Its user/team association is unset until
// the first join message is processed; all fields are guarded by the owning
// registry's lock.
type Conn struct {
	id       string
	socket   Socket
	registry *Registry

	userID *int
	teamID *int
}

// ID returns the connection's opaque identifier, used for logging only.
func (c *Conn) ID() string { return c.id }

// UserID returns the connection's user id, or nil before the first join.
func (c *Conn) UserID() *int {
	c.registry.mu.RLock()
	defer c.registry.mu.RUnlock()
	return c.userID
}

// TeamID returns the connection's team id, or nil before the first join.
func (c *Conn) TeamID() *int {
	c.registry.mu.RLock()
	defer c.registry.mu.RUnlock()
	return c.teamID
}

func (c *Conn) write(data []byte) error {
	return c.socket.WriteMessage(data)
}

// Registry tracks every live connection of one process instance. Connections
// are keyed by team so broadcast fan-out is proportional to team size, not to
// the total connection count. The zero ordering of members is deliberate;
// callers must not rely on iteration order.
type Registry struct {
	mu    sync.RWMutex
	conns map[*Conn]struct{}
	teams map[int]map[*Conn]struct{}
}

// NewRegistry creates an empty registry. One registry is constructed per
// process instance and passed by reference into the router and gateway.
func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[*Conn]struct{}),
		teams: make(map[int]map[*Conn]struct{}),
	}
}

// Register adds a connection with an unset association and returns its
// handle. The connection is visible to broadcast immediately, but joins no
// team until Associate is called.
func (r *Registry) Register(socket Socket) *Conn {
	conn := &Conn{
		id:       uuid.New().String(),
		socket:   socket,
		registry: r,
	}

	r.mu.Lock()
	r.conns[conn] = struct{}{}
	total := len(r.conns)
	r.mu.Unlock()

	log.Debug().
		Str("connection_id", conn.id).
		Int("total_connections", total).
		Msg("connection registered")

	return conn
}

// Associate sets the connection's user/team association. Team identifiers are
// accepted as asserted by the client; a repeated join overwrites the previous
// association (last write wins).
func (r *Registry) Associate(conn *Conn, userID, teamID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[conn]; !ok {
		return
	}

	if conn.teamID != nil {
		r.detachLocked(conn, *conn.teamID)
	}

	conn.userID = &userID
	conn.teamID = &teamID

	members, ok := r.teams[teamID]
	if !ok {
		members = make(map[*Conn]struct{})
		r.teams[teamID] = members
	}
	members[conn] = struct{}{}

	log.Debug().
		Str("connection_id", conn.id).
		Int("user_id", userID).
		Int("team_id", teamID).
		Int("team_members", len(members)).
		Msg("connection associated")
}

// Remove deletes the connection from the registry. Calling it again, or for a
// connection that was never registered, is a no-op.
func (r *Registry) Remove(conn *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[conn]; !ok {
		return
	}
	delete(r.conns, conn)
	if conn.teamID != nil {
		r.detachLocked(conn, *conn.teamID)
	}

	log.Debug().
		Str("connection_id", conn.id).
		Int("total_connections", len(r.conns)).
		Msg("connection removed")
}

func (r *Registry) detachLocked(conn *Conn, teamID int) {
	members, ok := r.teams[teamID]
	if !ok {
		return
	}
	delete(members, conn)
	if len(members) == 0 {
		delete(r.teams, teamID)
	}
}

// MembersOf returns a snapshot of every connection currently associated with
// teamID. Connections with no association never appear. Order is unspecified.
func (r *Registry) MembersOf(teamID int) []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.teams[teamID]
	if len(members) == 0 {
		return nil
	}
	snapshot := make([]*Conn, 0, len(members))
	for conn := range members {
		snapshot = append(snapshot, conn)
	}
	return snapshot
}

// Stats returns the number of teams with at least one member and the total
// connection count, associated or not.
func (r *Registry) Stats() (teams, connections int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.teams), len(r.conns)
}
