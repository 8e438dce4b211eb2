package teamsync

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MessageType identifies the kind of a protocol message
type MessageType string

const (
	MessageTypeJoin           MessageType = "join"
	MessageTypeTimeUpdate     MessageType = "timeUpdate"
	MessageTypeTimezoneUpdate MessageType = "timezoneUpdate"
)

// ErrUnknownMessageType is returned by DecodeMessage for a well-formed
// message whose type tag is not part of the protocol.
var ErrUnknownMessageType = errors.New("unknown message type")

// JoinMessage declares the sender's user/team association
type JoinMessage struct {
	UserID int `json:"userId"`
	TeamID int `json:"teamId"`
}

// TimeUpdateMessage carries a virtual-clock adjustment. The time payload is
// opaque to the server and forwarded verbatim.
type TimeUpdateMessage struct {
	Time json.RawMessage `json:"time"`
}

// TimezoneUpdateMessage carries a timezone configuration change. Action is a
// free-form tag ("add", "remove", "update") interpreted by receivers only.
type TimezoneUpdateMessage struct {
	Timezone json.RawMessage `json:"timezone"`
	Action   string          `json:"action"`
}

// DecodeMessage decodes a raw inbound frame into one of JoinMessage,
// TimeUpdateMessage or TimezoneUpdateMessage based on its type tag.
func DecodeMessage(data []byte) (any, error) {
	var head struct {
		Type MessageType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}

	switch head.Type {
	case MessageTypeJoin:
		var msg JoinMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("decode join message: %w", err)
		}
		return msg, nil

	case MessageTypeTimeUpdate:
		var msg TimeUpdateMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("decode timeUpdate message: %w", err)
		}
		return msg, nil

	case MessageTypeTimezoneUpdate:
		var msg TimezoneUpdateMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("decode timezoneUpdate message: %w", err)
		}
		return msg, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, head.Type)
	}
}

// TimeUpdateEvent is the outbound envelope broadcast to team members when a
// client adjusts the shared virtual clock. UserID is omitted when the sender
// never joined.
type TimeUpdateEvent struct {
	Type   MessageType     `json:"type"`
	Time   json.RawMessage `json:"time"`
	UserID *int            `json:"userId,omitempty"`
}

// TimezoneUpdateEvent is the outbound envelope broadcast to team members when
// a client changes its timezone set.
type TimezoneUpdateEvent struct {
	Type     MessageType     `json:"type"`
	Timezone json.RawMessage `json:"timezone"`
	Action   string          `json:"action"`
	UserID   *int            `json:"userId,omitempty"`
}
