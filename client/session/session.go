package session

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/obkschool/chatgame/internal/model"
)

var (
	ErrEmptyUsername = errors.New("empty username")
	ErrUnknownAvatar = errors.New("unknown avatar")
)

// Session is the caller's identity for one run of the client. The user id is
// generated fresh every time and never persisted, closing a session discards
// the identity.
type Session struct {
	user model.User
}

func New(username, avatar string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if !model.IsAvatar(avatar) {
		return nil, ErrUnknownAvatar
	}

	return &Session{
		user: model.User{
			UserID:   "user_" + uuid.NewString(),
			Username: username,
			Avatar:   avatar,
		},
	}, nil
}

func (s *Session) User() model.User {
	return s.user
}

func (s *Session) UserID() string {
	return s.user.UserID
}
