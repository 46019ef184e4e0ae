package infra_redis_presence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis"
	"github.com/obkschool/chatgame/internal/model"
)

// One hash per room, keyed by user id. The hash carries a sliding TTL so
// presence of abandoned rooms eventually falls out on its own.
const roomTTL = 24 * time.Hour

type Driver struct {
	client *redis.Client
	key    string
}

func New(
	client *redis.Client,
	key string,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
	}
}

type recordDTO struct {
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	IsTyping   bool   `json:"is_typing"`
	LastActive int64  `json:"last_active"` // unix millis
}

func (d *Driver) Upsert(ctx context.Context, rec model.PresenceRecord) error {
	raw, err := json.Marshal(recordDTO{
		Username:   rec.Username,
		Avatar:     rec.Avatar,
		IsTyping:   rec.IsTyping,
		LastActive: rec.LastActive.UnixMilli(),
	})
	if err != nil {
		return err
	}

	fullKey := d.getFullKey(rec.RoomID)
	if err := d.client.HSet(fullKey, rec.UserID, raw).Err(); err != nil {
		return err
	}
	return d.client.Expire(fullKey, roomTTL).Err()
}

func (d *Driver) ListByRoom(ctx context.Context, id model.RoomID) ([]model.PresenceRecord, error) {
	fields, err := d.client.HGetAll(d.getFullKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	recs := make([]model.PresenceRecord, 0, len(fields))
	for userID, raw := range fields {
		var dto recordDTO
		if err := json.Unmarshal([]byte(raw), &dto); err != nil {
			continue // skip unreadable records, they only ever affect typing hints
		}
		recs = append(recs, model.PresenceRecord{
			RoomID:     id,
			UserID:     userID,
			Username:   dto.Username,
			Avatar:     dto.Avatar,
			IsTyping:   dto.IsTyping,
			LastActive: time.UnixMilli(dto.LastActive),
		})
	}
	return recs, nil
}

func (d *Driver) DropRoom(ctx context.Context, id model.RoomID) error {
	return d.client.Del(d.getFullKey(id)).Err()
}

func (d *Driver) getFullKey(id model.RoomID) string {
	if d.key != "" {
		return d.key + ":" + string(id)
	}
	return string(id)
}
