package model

import "time"

// PresenceRecord is upserted on every presence report. One logical record per
// (room, user). Staleness is judged by readers, the record itself never
// expires on write.
type PresenceRecord struct {
	RoomID     RoomID
	UserID     string
	Username   string
	Avatar     string
	IsTyping   bool
	LastActive time.Time
}
