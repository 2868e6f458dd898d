package domain

import (
	"encoding/json"
	"errors"
)

// Known signaling frame types. Anything else is relayed opaquely.
const (
	TypeJoin      = "join"
	TypeOffer     = "offer"
	TypeAnswer    = "answer"
	TypeICE       = "ice"
	TypeCandidate = "candidate"
)

var (
	// ErrMalformedFrame marks a frame that could not be parsed at all.
	ErrMalformedFrame = errors.New("malformed signaling frame")

	// ErrNoSender marks a join frame that carries no usable sender id.
	ErrNoSender = errors.New("join frame carries no sender id")
)

// Signal is a decoded inbound signaling frame. Exactly one of Join, Relay
// or Opaque implements it.
type Signal interface {
	signal()
}

// Join announces the sender identity for the connection.
type Join struct {
	Sender UserID
}

// Relay is an offer/answer/ICE frame. Target is nil when the client did not
// address it; in that case the frame falls back to room broadcast for
// compatibility with older clients. Raw is the original frame and is
// forwarded untouched.
type Relay struct {
	Type   string
	Target *UserID
	Raw    []byte
}

// Opaque is a frame with an unrecognized type. It is relayed to the room
// as-is; the server does not validate the payload shape.
type Opaque struct {
	Type string
	Raw  []byte
}

func (Join) signal()   {}
func (Relay) signal()  {}
func (Opaque) signal() {}

// DecodeSignal parses one inbound frame into its variant.
func DecodeSignal(raw []byte) (Signal, error) {
	var head struct {
		Type     string `json:"type"`
		SenderID *int64 `json:"senderId"`
		UserID   *int64 `json:"userId"`
		To       *int64 `json:"to"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, ErrMalformedFrame
	}

	switch head.Type {
	case TypeJoin:
		// Older clients send userId instead of senderId.
		id := head.SenderID
		if id == nil {
			id = head.UserID
		}
		if id == nil {
			return nil, ErrNoSender
		}
		return Join{Sender: UserID(*id)}, nil

	case TypeOffer, TypeAnswer, TypeICE, TypeCandidate:
		var target *UserID
		if head.To != nil {
			t := UserID(*head.To)
			target = &t
		}
		return Relay{Type: head.Type, Target: target, Raw: raw}, nil

	default:
		return Opaque{Type: head.Type, Raw: raw}, nil
	}
}
