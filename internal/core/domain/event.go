package domain

import "encoding/json"

// Event is an opaque board/chat channel event: a type tag plus whatever the
// REST side serialized. The fan-out layer never interprets Data.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Encode renders the event for the wire.
func (e Event) Encode() []byte {
	b, _ := json.Marshal(e)
	return b
}

// Voice room notifications. These are server-generated, so marshalling
// cannot realistically fail and errors are dropped.

// UserJoined announces a freshly joined identity to the rest of the room.
func UserJoined(id UserID) []byte {
	b, _ := json.Marshal(struct {
		Type   string `json:"type"`
		UserID UserID `json:"userId"`
	}{"user_joined", id})
	return b
}

// ExistingUsers is the snapshot sent back to a joiner so it can start a
// mesh negotiation with each peer already present. The users list is always
// an array, never null.
func ExistingUsers(ids []UserID) []byte {
	if ids == nil {
		ids = []UserID{}
	}
	b, _ := json.Marshal(struct {
		Type  string   `json:"type"`
		Users []UserID `json:"users"`
	}{"existing_users", ids})
	return b
}

// UserLeft announces a departed identity to the whole room.
func UserLeft(id UserID) []byte {
	b, _ := json.Marshal(struct {
		Type   string `json:"type"`
		UserID UserID `json:"userId"`
	}{"user_left", id})
	return b
}
