package view

import (
	"testing"
	"time"

	"github.com/obkschool/chatgame/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectMessages_TagsSentAndReceived(t *testing.T) {
	at := time.Date(2025, 6, 1, 14, 30, 0, 0, time.Local)
	msgs := []model.Message{
		{UserID: "user_self", Username: "me", Text: "hi", CreatedAt: at},
		{UserID: "user_other", Username: "them", Avatar: "😎", Text: "yo", CreatedAt: at},
	}

	blocks := ProjectMessages(msgs, "user_self")
	require.Len(t, blocks, 2)

	assert.True(t, blocks[0].Sent)
	assert.False(t, blocks[1].Sent)
	assert.Equal(t, "them", blocks[1].Username)
	assert.Equal(t, "😎", blocks[1].Avatar)
	assert.Equal(t, "14:30", blocks[0].Time)
}

func TestProjectPlayers_IsIdempotent(t *testing.T) {
	players := []model.Player{
		{UserID: "user_h", Username: "host", Avatar: "😀", IsHost: true},
		{UserID: "user_self", Username: "me", Avatar: "🤖"},
	}

	first := ProjectPlayers(players, "user_self")
	second := ProjectPlayers(players, "user_self")

	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.True(t, first[0].IsHost)
	assert.False(t, first[0].IsSelf)
	assert.True(t, first[1].IsSelf)
}

func TestTypingIndicator_Texts(t *testing.T) {
	now := time.Now()
	rec := func(id, name string) model.PresenceRecord {
		return model.PresenceRecord{UserID: id, Username: name, IsTyping: true, LastActive: now}
	}

	tests := []struct {
		name string
		recs []model.PresenceRecord
		want string
	}{
		{
			name: "nobody typing",
			recs: nil,
			want: "",
		},
		{
			name: "one typist",
			recs: []model.PresenceRecord{rec("user_a", "alice")},
			want: "alice is typing...",
		},
		{
			name: "two typists",
			recs: []model.PresenceRecord{rec("user_a", "alice"), rec("user_b", "bob")},
			want: "alice and bob are typing...",
		},
		{
			name: "three or more",
			recs: []model.PresenceRecord{rec("user_a", "alice"), rec("user_b", "bob"), rec("user_c", "carol")},
			want: "Multiple people are typing...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypingIndicator(tt.recs, "user_self", now))
		})
	}
}

func TestTypingIndicator_ExcludesSelf(t *testing.T) {
	now := time.Now()
	recs := []model.PresenceRecord{
		{UserID: "user_self", Username: "me", IsTyping: true, LastActive: now},
	}
	assert.Equal(t, "", TypingIndicator(recs, "user_self", now))
}

func TestTypingIndicator_IgnoresStaleAndIdle(t *testing.T) {
	now := time.Now()
	recs := []model.PresenceRecord{
		{UserID: "user_a", Username: "alice", IsTyping: true, LastActive: now.Add(-15 * time.Second)},
		{UserID: "user_b", Username: "bob", IsTyping: false, LastActive: now},
		{UserID: "user_c", Username: "carol", IsTyping: true, LastActive: now.Add(-3 * time.Second)},
	}
	assert.Equal(t, "carol is typing...", TypingIndicator(recs, "user_self", now))
}
