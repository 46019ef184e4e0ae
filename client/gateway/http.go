package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/obkschool/chatgame/internal/model"
)

// Client talks to the backend over HTTP for mutations and one websocket per
// subscription for live snapshots.
type Client struct {
	baseURL    string
	httpClient *http.Client
	dialer     *websocket.Dialer

	logger *slog.Logger
}

type ClientOption func(*Client)

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient expects the API root, e.g. "http://localhost:8080/api/v1".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		dialer:     websocket.DefaultDialer,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type userDTO struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type playerDTO struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	IsHost   bool   `json:"is_host"`
}

type roomDTO struct {
	RoomID  string      `json:"room_id"`
	Status  string      `json:"status"`
	Players []playerDTO `json:"players"`
}

type messageDTO struct {
	RoomID    string `json:"room_id"`
	RoomType  string `json:"room_type"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
	Text      string `json:"text"`
	Seq       int64  `json:"seq"`
	CreatedAt int64  `json:"created_at"`
}

type presenceDTO struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	IsTyping   bool   `json:"is_typing"`
	LastActive int64  `json:"last_active"`
}

func toUserDTO(user model.User) userDTO {
	return userDTO{
		UserID:   user.UserID,
		Username: user.Username,
		Avatar:   user.Avatar,
	}
}

func (dto roomDTO) toModel() model.Room {
	room := model.Room{
		ID:      model.RoomID(dto.RoomID),
		Status:  model.RoomStatus(dto.Status),
		Players: make([]model.Player, 0, len(dto.Players)),
	}
	for _, p := range dto.Players {
		room.Players = append(room.Players, model.Player{
			UserID:   p.UserID,
			Username: p.Username,
			Avatar:   p.Avatar,
			IsHost:   p.IsHost,
		})
	}
	return room
}

func toMessages(dtos []messageDTO) []model.Message {
	msgs := make([]model.Message, 0, len(dtos))
	for _, m := range dtos {
		msgs = append(msgs, model.Message{
			RoomID:    model.RoomID(m.RoomID),
			RoomType:  model.RoomType(m.RoomType),
			UserID:    m.UserID,
			Username:  m.Username,
			Avatar:    m.Avatar,
			Text:      m.Text,
			Seq:       m.Seq,
			CreatedAt: time.UnixMilli(m.CreatedAt),
		})
	}
	return msgs
}

func toPresence(dtos []presenceDTO) []model.PresenceRecord {
	recs := make([]model.PresenceRecord, 0, len(dtos))
	for _, rec := range dtos {
		recs = append(recs, model.PresenceRecord{
			UserID:     rec.UserID,
			Username:   rec.Username,
			Avatar:     rec.Avatar,
			IsTyping:   rec.IsTyping,
			LastActive: time.UnixMilli(rec.LastActive),
		})
	}
	return recs
}

func (c *Client) makeRequest(ctx context.Context, method, path string, body any, headers map[string]string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrConnection, err)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	base := fmt.Errorf("unexpected status: %s - %s", resp.Status, string(body))
	switch resp.StatusCode {
	case http.StatusBadRequest:
		return errors.Join(ErrValidation, base)
	case http.StatusForbidden:
		return errors.Join(ErrNotHost, base)
	case http.StatusNotFound:
		return errors.Join(ErrNotFound, base)
	default:
		return errors.Join(ErrConnection, base)
	}
}

func (c *Client) CreateRoom(ctx context.Context, user model.User) (model.Room, error) {
	resp, err := c.makeRequest(ctx, http.MethodPost, "/rooms", toUserDTO(user), nil)
	if err != nil {
		return model.Room{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return model.Room{}, statusError(resp)
	}

	var dto roomDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return model.Room{}, errors.Join(ErrConnection, err)
	}
	return dto.toModel(), nil
}

func (c *Client) JoinRoom(ctx context.Context, id model.RoomID, user model.User) (*model.Room, error) {
	resp, err := c.makeRequest(ctx, http.MethodPost,
		fmt.Sprintf("/rooms/%s/players", id), toUserDTO(user), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var dto roomDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, errors.Join(ErrConnection, err)
	}
	room := dto.toModel()
	return &room, nil
}

func (c *Client) LeaveRoom(ctx context.Context, id model.RoomID, userID string) error {
	resp, err := c.makeRequest(ctx, http.MethodDelete,
		fmt.Sprintf("/rooms/%s/players/%s", id, userID), nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return statusError(resp)
	}
	return nil
}

func (c *Client) SetRoomStatus(ctx context.Context, id model.RoomID, status model.RoomStatus, callerID string) error {
	resp, err := c.makeRequest(ctx, http.MethodPut,
		fmt.Sprintf("/rooms/%s/status", id),
		map[string]string{"status": string(status)},
		map[string]string{"X-user-token": callerID})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return statusError(resp)
	}
	return nil
}

func (c *Client) SendMessage(ctx context.Context, id model.RoomID, roomType model.RoomType, user model.User, text string) error {
	payload := struct {
		RoomType string `json:"room_type"`
		userDTO
		Text string `json:"text"`
	}{
		RoomType: string(roomType),
		userDTO:  toUserDTO(user),
		Text:     text,
	}

	resp, err := c.makeRequest(ctx, http.MethodPost,
		fmt.Sprintf("/rooms/%s/messages", id), payload, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return statusError(resp)
	}
	return nil
}

func (c *Client) UpdatePresence(ctx context.Context, id model.RoomID, user model.User, isTyping bool) error {
	payload := struct {
		userDTO
		IsTyping bool `json:"is_typing"`
	}{
		userDTO:  toUserDTO(user),
		IsTyping: isTyping,
	}

	resp, err := c.makeRequest(ctx, http.MethodPut,
		fmt.Sprintf("/rooms/%s/presence", id), payload, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return statusError(resp)
	}
	return nil
}

type wsEvent struct {
	Type    string          `json:"type"`
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
	Error   string          `json:"error"`
}

type wsCommand struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

func (c *Client) wsURL(id model.RoomID) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	scheme := "ws"
	if base.Scheme == "https" {
		scheme = "wss"
	}
	u := url.URL{
		Scheme: scheme,
		Host:   base.Host,
		Path:   fmt.Sprintf("%s/rooms/%s/ws", base.Path, id),
	}
	return u.String(), nil
}

// subscribe opens a dedicated websocket, asks for one topic and pumps every
// snapshot frame into handle. The returned cancel closes the socket, which
// also ends the read loop.
func (c *Client) subscribe(ctx context.Context, id model.RoomID, topic string, handle func(json.RawMessage)) (CancelFunc, error) {
	u, err := c.wsURL(id)
	if err != nil {
		return nil, errors.Join(ErrConnection, err)
	}

	conn, _, err := c.dialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, errors.Join(ErrConnection, err)
	}

	if err := conn.WriteJSON(wsCommand{Action: "subscribe", Topic: topic}); err != nil {
		conn.Close()
		return nil, errors.Join(ErrConnection, err)
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			conn.Close()
		})
	}

	go func() {
		defer cancel()
		for {
			var ev wsEvent
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			if ev.Type == "error" {
				c.logger.Warn("subscription error frame",
					slog.String("topic", topic),
					slog.String("error", ev.Error),
				)
				continue
			}
			if ev.Type != "snapshot" || ev.Topic != topic {
				continue
			}
			handle(ev.Payload)
		}
	}()

	return cancel, nil
}

func isNullPayload(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func (c *Client) SubscribeRoom(ctx context.Context, id model.RoomID, onUpdate func(*model.Room)) (CancelFunc, error) {
	return c.subscribe(ctx, id, "room", func(raw json.RawMessage) {
		if isNullPayload(raw) {
			onUpdate(nil)
			return
		}
		var dto roomDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			c.logger.Warn("bad room snapshot", slog.String("error", err.Error()))
			return
		}
		room := dto.toModel()
		onUpdate(&room)
	})
}

func (c *Client) SubscribeMessages(ctx context.Context, id model.RoomID, roomType model.RoomType, onUpdate func([]model.Message)) (CancelFunc, error) {
	topic := "messages:" + string(roomType)
	return c.subscribe(ctx, id, topic, func(raw json.RawMessage) {
		var dtos []messageDTO
		if err := json.Unmarshal(raw, &dtos); err != nil {
			c.logger.Warn("bad message snapshot", slog.String("error", err.Error()))
			return
		}
		onUpdate(toMessages(dtos))
	})
}

func (c *Client) SubscribePresence(ctx context.Context, id model.RoomID, onUpdate func([]model.PresenceRecord)) (CancelFunc, error) {
	return c.subscribe(ctx, id, "presence", func(raw json.RawMessage) {
		var dtos []presenceDTO
		if err := json.Unmarshal(raw, &dtos); err != nil {
			c.logger.Warn("bad presence snapshot", slog.String("error", err.Error()))
			return
		}
		onUpdate(toPresence(dtos))
	})
}
