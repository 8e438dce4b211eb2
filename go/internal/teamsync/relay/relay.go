package relay

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/timesync/go/internal/teamsync"
)

// Config holds NATS relay settings.
type Config struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultConfig returns the default relay configuration.
func DefaultConfig() Config {
	return Config{
		URL:           nats.DefaultURL,
		SubjectPrefix: "timesync",
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
	}
}

// envelope is the relay wire format: the serialized broadcast payload plus
// the id of the instance that originated it, so an instance can skip its own
// publications when they come back around.
type envelope struct {
	InstanceID string          `json:"instanceId"`
	TeamID     int             `json:"teamId"`
	Payload    json.RawMessage `json:"payload"`
}

// Relay extends the broadcast scope across process instances over NATS.
// Every locally broadcast envelope is published on <prefix>.team.<id>, and
// envelopes published by peer instances are replayed into the local registry.
// This is the multi-instance counterpart of the process-local gateway: teams
// keep one shared broadcast scope regardless of which instance a member's
// socket landed on.
type Relay struct {
	instanceID string
	router     *teamsync.Router
	config     Config
	nc         *nats.Conn
	sub        *nats.Subscription
}

// New connects to NATS and subscribes to the team subject space. The returned
// relay must be attached to the router with Router.SetForwarder before the
// gateway starts accepting connections.
func New(router *teamsync.Router, config Config) (*Relay, error) {
	opts := []nats.Option{
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	r := &Relay{
		instanceID: uuid.New().String(),
		router:     router,
		config:     config,
		nc:         nc,
	}

	sub, err := nc.Subscribe(config.SubjectPrefix+".team.*", r.handleMessage)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("subscribe to team subjects: %w", err)
	}
	r.sub = sub

	log.Info().
		Str("instance_id", r.instanceID).
		Str("url", config.URL).
		Str("subject_prefix", config.SubjectPrefix).
		Msg("relay connected")

	return r, nil
}

// Forward publishes a locally broadcast envelope to peer instances. Delivery
// is best effort; a publish failure is logged and the local broadcast stands.
func (r *Relay) Forward(teamID int, payload []byte) {
	data, err := json.Marshal(envelope{
		InstanceID: r.instanceID,
		TeamID:     teamID,
		Payload:    payload,
	})
	if err != nil {
		log.Error().Err(err).Int("team_id", teamID).Msg("failed to marshal relay envelope")
		return
	}

	if err := r.nc.Publish(teamSubject(r.config.SubjectPrefix, teamID), data); err != nil {
		log.Warn().Err(err).Int("team_id", teamID).Msg("failed to publish relay envelope")
	}
}

func (r *Relay) handleMessage(msg *nats.Msg) {
	env, err := decodeEnvelope(msg.Data)
	if err != nil {
		log.Warn().Err(err).Str("subject", msg.Subject).Msg("dropping malformed relay envelope")
		return
	}
	if env.InstanceID == r.instanceID {
		return
	}

	r.router.Deliver(env.TeamID, env.Payload, nil)

	log.Debug().
		Str("origin_instance", env.InstanceID).
		Int("team_id", env.TeamID).
		Msg("replayed relay envelope")
}

// Close drains the subscription and closes the NATS connection.
func (r *Relay) Close() {
	if r.sub != nil {
		if err := r.sub.Unsubscribe(); err != nil {
			log.Warn().Err(err).Msg("failed to unsubscribe relay")
		}
	}
	if r.nc != nil {
		r.nc.Close()
	}
}

func teamSubject(prefix string, teamID int) string {
	return prefix + ".team." + strconv.Itoa(teamID)
}

func decodeEnvelope(data []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return envelope{}, fmt.Errorf("decode relay envelope: %w", err)
	}
	if env.InstanceID == "" {
		return envelope{}, fmt.Errorf("relay envelope missing instance id")
	}
	if len(env.Payload) == 0 {
		return envelope{}, fmt.Errorf("relay envelope missing payload")
	}
	return env, nil
}
