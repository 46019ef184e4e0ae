package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/obkschool/chatgame/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() model.User {
	return model.User{UserID: "user_t", Username: "tester", Avatar: "😀"}
}

func TestClient_CreateRoom(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/rooms", r.URL.Path)

		var user userDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&user))
		assert.Equal(t, "user_t", user.UserID)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(roomDTO{
			RoomID: "room_x",
			Status: "waiting",
			Players: []playerDTO{
				{UserID: user.UserID, Username: user.Username, Avatar: user.Avatar, IsHost: true},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api/v1")
	room, err := c.CreateRoom(context.Background(), testUser())
	require.NoError(t, err)

	assert.Equal(t, model.RoomID("room_x"), room.ID)
	assert.Equal(t, model.StatusWaiting, room.Status)
	require.Len(t, room.Players, 1)
	assert.True(t, room.Players[0].IsHost)
}

func TestClient_JoinRoomNotFoundIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api/v1")
	room, err := c.JoinRoom(context.Background(), "room_nope", testUser())
	require.NoError(t, err)
	assert.Nil(t, room)
}

func TestClient_SetRoomStatusForbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "user_t", r.Header.Get("X-user-token"))
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api/v1")
	err := c.SetRoomStatus(context.Background(), "room_x", model.StatusPlaying, "user_t")
	assert.ErrorIs(t, err, ErrNotHost)
}

func TestClient_SendMessageValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api/v1")
	err := c.SendMessage(context.Background(), "room_x", model.RoomTypeWaiting, testUser(), "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestClient_ConnectionErrorIsTagged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	c := NewClient(srv.URL + "/api/v1")
	_, err := c.CreateRoom(context.Background(), testUser())
	assert.ErrorIs(t, err, ErrConnection)
}

func TestClient_LeaveRoomIsPlainDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/rooms/room_x/players/user_t", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api/v1")
	require.NoError(t, c.LeaveRoom(context.Background(), "room_x", "user_t"))
}

func TestClient_SubscribeRoomStreamsSnapshots(t *testing.T) {
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/rooms/room_x/ws", r.URL.Path)

		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var cmd wsCommand
		require.NoError(t, conn.ReadJSON(&cmd))
		assert.Equal(t, "subscribe", cmd.Action)
		assert.Equal(t, "room", cmd.Topic)

		require.NoError(t, conn.WriteJSON(wsEvent{
			Type:    "snapshot",
			Topic:   "room",
			Payload: json.RawMessage(`{"room_id":"room_x","status":"waiting","players":[]}`),
		}))
		// room closed
		require.NoError(t, conn.WriteJSON(wsEvent{
			Type:    "snapshot",
			Topic:   "room",
			Payload: json.RawMessage(`null`),
		}))

		// hold the connection until the client cancels
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api/v1")

	updates := make(chan *model.Room, 2)
	cancel, err := c.SubscribeRoom(context.Background(), "room_x", func(room *model.Room) {
		updates <- room
	})
	require.NoError(t, err)
	defer cancel()

	select {
	case room := <-updates:
		require.NotNil(t, room)
		assert.Equal(t, model.StatusWaiting, room.Status)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for first snapshot")
	}

	select {
	case room := <-updates:
		assert.Nil(t, room, "closed room arrives as a nil snapshot")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for closed-room snapshot")
	}
}
