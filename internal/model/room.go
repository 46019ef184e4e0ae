package model

type Player struct {
	UserID   string
	Username string
	Avatar   string
	IsHost   bool
}

type Room struct {
	ID      RoomID
	Status  RoomStatus
	Players []Player
}

// HostID returns the user id of the room creator, "" if the host already left.
func (r Room) HostID() string {
	for _, p := range r.Players {
		if p.IsHost {
			return p.UserID
		}
	}
	return ""
}

func (r Room) HasPlayer(userID string) bool {
	for _, p := range r.Players {
		if p.UserID == userID {
			return true
		}
	}
	return false
}
