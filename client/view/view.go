package view

import (
	"time"

	"github.com/obkschool/chatgame/internal/model"
)

// StaleAfter bounds how long a typing flag is trusted. A record older than
// this belongs to someone who closed the tab mid-keystroke.
const StaleAfter = 10 * time.Second

// MessageBlock is one rendered chat message.
type MessageBlock struct {
	Sent     bool
	Username string
	Avatar   string
	Text     string
	Time     string
}

// ProjectMessages maps an ordered feed onto display blocks. Messages by the
// caller are tagged sent, everything else received.
func ProjectMessages(msgs []model.Message, selfID string) []MessageBlock {
	blocks := make([]MessageBlock, 0, len(msgs))
	for _, m := range msgs {
		blocks = append(blocks, MessageBlock{
			Sent:     m.UserID == selfID,
			Username: m.Username,
			Avatar:   m.Avatar,
			Text:     m.Text,
			Time:     m.CreatedAt.Local().Format("15:04"),
		})
	}
	return blocks
}

type PlayerEntry struct {
	Username string
	Avatar   string
	IsHost   bool
	IsSelf   bool
}

// ProjectPlayers maps a room snapshot onto the rendered player list. Each
// snapshot replaces the previous list wholesale, so projecting the same
// snapshot twice yields the same entries.
func ProjectPlayers(players []model.Player, selfID string) []PlayerEntry {
	entries := make([]PlayerEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, PlayerEntry{
			Username: p.Username,
			Avatar:   p.Avatar,
			IsHost:   p.IsHost,
			IsSelf:   p.UserID == selfID,
		})
	}
	return entries
}

// TypingIndicator recomputes the indicator line from a whole presence
// snapshot. The caller's own record, records with the flag off and records
// older than StaleAfter are ignored. Empty string means nobody is typing.
func TypingIndicator(recs []model.PresenceRecord, selfID string, now time.Time) string {
	var names []string
	for _, rec := range recs {
		if rec.UserID == selfID || !rec.IsTyping {
			continue
		}
		if now.Sub(rec.LastActive) > StaleAfter {
			continue
		}
		names = append(names, rec.Username)
	}

	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0] + " is typing..."
	case 2:
		return names[0] + " and " + names[1] + " are typing..."
	default:
		return "Multiple people are typing..."
	}
}
