package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uzih05/DOMO/internal/core/domain"
)

func TestDecodeSignal(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		validate func(t *testing.T, sig domain.Signal, err error)
	}{
		{
			name: "join with senderId",
			raw:  `{"type":"join","senderId":42}`,
			validate: func(t *testing.T, sig domain.Signal, err error) {
				require.NoError(t, err)
				join, ok := sig.(domain.Join)
				require.True(t, ok)
				assert.Equal(t, domain.UserID(42), join.Sender)
			},
		},
		{
			name: "join with legacy userId field",
			raw:  `{"type":"join","userId":7}`,
			validate: func(t *testing.T, sig domain.Signal, err error) {
				require.NoError(t, err)
				join, ok := sig.(domain.Join)
				require.True(t, ok)
				assert.Equal(t, domain.UserID(7), join.Sender)
			},
		},
		{
			name: "join without sender id",
			raw:  `{"type":"join"}`,
			validate: func(t *testing.T, sig domain.Signal, err error) {
				assert.ErrorIs(t, err, domain.ErrNoSender)
				assert.Nil(t, sig)
			},
		},
		{
			name: "offer with target",
			raw:  `{"type":"offer","to":2,"sdp":"v=0"}`,
			validate: func(t *testing.T, sig domain.Signal, err error) {
				require.NoError(t, err)
				relay, ok := sig.(domain.Relay)
				require.True(t, ok)
				assert.Equal(t, domain.TypeOffer, relay.Type)
				require.NotNil(t, relay.Target)
				assert.Equal(t, domain.UserID(2), *relay.Target)
				assert.JSONEq(t, `{"type":"offer","to":2,"sdp":"v=0"}`, string(relay.Raw))
			},
		},
		{
			name: "ice without target falls back to broadcast form",
			raw:  `{"type":"ice","candidate":"cand"}`,
			validate: func(t *testing.T, sig domain.Signal, err error) {
				require.NoError(t, err)
				relay, ok := sig.(domain.Relay)
				require.True(t, ok)
				assert.Equal(t, domain.TypeICE, relay.Type)
				assert.Nil(t, relay.Target)
			},
		},
		{
			name: "candidate is unicast-capable",
			raw:  `{"type":"candidate","to":9}`,
			validate: func(t *testing.T, sig domain.Signal, err error) {
				require.NoError(t, err)
				relay, ok := sig.(domain.Relay)
				require.True(t, ok)
				assert.Equal(t, domain.TypeCandidate, relay.Type)
				require.NotNil(t, relay.Target)
				assert.Equal(t, domain.UserID(9), *relay.Target)
			},
		},
		{
			name: "unknown type is opaque",
			raw:  `{"type":"mute","userId":1}`,
			validate: func(t *testing.T, sig domain.Signal, err error) {
				require.NoError(t, err)
				opaque, ok := sig.(domain.Opaque)
				require.True(t, ok)
				assert.Equal(t, "mute", opaque.Type)
				assert.JSONEq(t, `{"type":"mute","userId":1}`, string(opaque.Raw))
			},
		},
		{
			name: "garbage frame",
			raw:  `not json`,
			validate: func(t *testing.T, sig domain.Signal, err error) {
				assert.ErrorIs(t, err, domain.ErrMalformedFrame)
				assert.Nil(t, sig)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, err := domain.DecodeSignal([]byte(tt.raw))
			tt.validate(t, sig, err)
		})
	}
}

func TestNotificationPayloads(t *testing.T) {
	assert.JSONEq(t, `{"type":"user_joined","userId":2}`, string(domain.UserJoined(2)))
	assert.JSONEq(t, `{"type":"user_left","userId":2}`, string(domain.UserLeft(2)))
	assert.JSONEq(t, `{"type":"existing_users","users":[1]}`, string(domain.ExistingUsers([]domain.UserID{1})))

	// The users list must be an array even with no peers, never null.
	assert.Equal(t, `{"type":"existing_users","users":[]}`, string(domain.ExistingUsers(nil)))
}

func TestEventEncode(t *testing.T) {
	ev := domain.Event{Type: "card_updated", Data: []byte(`{"id":3}`)}
	assert.JSONEq(t, `{"type":"card_updated","data":{"id":3}}`, string(ev.Encode()))

	// No data is fine: some events are bare notifications.
	assert.JSONEq(t, `{"type":"board_refresh"}`, string(domain.Event{Type: "board_refresh"}.Encode()))
}
