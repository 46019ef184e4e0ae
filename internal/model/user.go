package model

// User is a session-scoped identity. IDs are regenerated on every session,
// nothing about a user survives a reconnect.
type User struct {
	UserID   string
	Username string
	Avatar   string
}

var Avatars = []string{"😀", "😎", "🤖", "👻", "🐱", "🐶", "🦊", "🐼"}

func IsAvatar(glyph string) bool {
	for _, a := range Avatars {
		if a == glyph {
			return true
		}
	}
	return false
}
