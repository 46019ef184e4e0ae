package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/obkschool/chatgame/client/gateway"
	"github.com/obkschool/chatgame/client/session"
	"github.com/obkschool/chatgame/client/typing"
	"github.com/obkschool/chatgame/client/view"
	"github.com/obkschool/chatgame/internal/model"
)

var (
	ErrAlreadyInRoom = errors.New("already in a room")
	ErrNoRoom        = errors.New("not in a room")
)

type Screen string

const (
	ScreenWelcome Screen = "welcome"
	ScreenWaiting Screen = "waiting"
	ScreenGame    Screen = "game"
)

// Renderer is whatever draws the client. The controller pushes whole
// projections into it, rendering the same projection twice must be harmless.
type Renderer interface {
	ShowScreen(screen Screen)
	RenderPlayers(players []view.PlayerEntry)
	RenderMessages(roomType model.RoomType, blocks []view.MessageBlock)
	RenderTypingIndicator(text string)
	ShowError(message string)
}

// Controller drives the welcome/waiting/game screen machine. One room at a
// time: entering a room opens its subscriptions, leaving (or eviction via a
// nil room snapshot) cancels them all before the next room can be entered.
type Controller struct {
	gw       gateway.Gateway
	session  *session.Session
	renderer Renderer
	subs     *gateway.Registry
	typing   *typing.Tracker

	logger *slog.Logger

	mu     sync.Mutex
	screen Screen
	roomID model.RoomID
	isHost bool
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithTypingOptions forwards options to the embedded typing tracker.
func WithTypingOptions(opts ...typing.Option) ControllerOption {
	return func(c *Controller) {
		c.typing = typing.New(c.reportTyping, opts...)
	}
}

func New(gw gateway.Gateway,
	sess *session.Session,
	renderer Renderer,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		gw:       gw,
		session:  sess,
		renderer: renderer,
		subs:     gateway.NewRegistry(),
		logger:   slog.Default(),
		screen:   ScreenWelcome,
	}
	c.typing = typing.New(c.reportTyping)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

func (c *Controller) RoomID() model.RoomID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID
}

func (c *Controller) IsHost() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isHost
}

func (c *Controller) CreateRoom(ctx context.Context) error {
	if c.RoomID() != model.EmptyRoomID {
		return ErrAlreadyInRoom
	}

	room, err := c.gw.CreateRoom(ctx, c.session.User())
	if err != nil {
		c.renderer.ShowError("Failed to create room")
		return err
	}

	return c.enterRoom(ctx, room)
}

func (c *Controller) JoinRoom(ctx context.Context, id model.RoomID) error {
	if c.RoomID() != model.EmptyRoomID {
		return ErrAlreadyInRoom
	}

	room, err := c.gw.JoinRoom(ctx, id, c.session.User())
	if err != nil {
		c.renderer.ShowError("Failed to join room")
		return err
	}
	if room == nil {
		c.renderer.ShowError("Room not found")
		return nil
	}

	return c.enterRoom(ctx, *room)
}

// enterRoom commits to the room and opens its subscriptions. Host standing is
// derived once here, from the snapshot the server returned for our own
// create/join, and never re-derived from later snapshots.
func (c *Controller) enterRoom(ctx context.Context, room model.Room) error {
	screen := ScreenWaiting
	if room.Status == model.StatusPlaying {
		screen = ScreenGame
	}

	isHost := false
	for _, p := range room.Players {
		if p.UserID == c.session.UserID() && p.IsHost {
			isHost = true
			break
		}
	}

	c.mu.Lock()
	c.roomID = room.ID
	c.isHost = isHost
	c.screen = screen
	c.mu.Unlock()

	c.renderer.ShowScreen(screen)
	c.renderer.RenderPlayers(view.ProjectPlayers(room.Players, c.session.UserID()))

	roomID := room.ID
	cancel, err := c.gw.SubscribeRoom(ctx, roomID, func(r *model.Room) {
		c.handleRoom(roomID, r)
	})
	if err != nil {
		c.teardown(ctx, false)
		c.renderer.ShowError("Lost connection to room")
		return err
	}
	c.subs.Add(cancel)

	cancel, err = c.gw.SubscribeMessages(ctx, room.ID, model.RoomTypeWaiting, func(msgs []model.Message) {
		c.handleMessages(model.RoomTypeWaiting, msgs)
	})
	if err != nil {
		c.teardown(ctx, false)
		c.renderer.ShowError("Lost connection to room")
		return err
	}
	c.subs.Add(cancel)

	cancel, err = c.gw.SubscribePresence(ctx, room.ID, c.handlePresence)
	if err != nil {
		c.teardown(ctx, false)
		c.renderer.ShowError("Lost connection to room")
		return err
	}
	c.subs.Add(cancel)

	if screen == ScreenGame {
		if err := c.subscribeGameMessages(ctx, room.ID); err != nil {
			c.teardown(ctx, false)
			c.renderer.ShowError("Lost connection to room")
			return err
		}
	}

	return nil
}

func (c *Controller) subscribeGameMessages(ctx context.Context, id model.RoomID) error {
	cancel, err := c.gw.SubscribeMessages(ctx, id, model.RoomTypeGame, func(msgs []model.Message) {
		c.handleMessages(model.RoomTypeGame, msgs)
	})
	if err != nil {
		return err
	}
	c.subs.Add(cancel)
	return nil
}

// handleRoom receives snapshots for the room the subscription was opened on.
// An in-flight snapshot can land after Leave or into a freshly joined room;
// only the current room may repaint or evict anything.
func (c *Controller) handleRoom(id model.RoomID, room *model.Room) {
	c.mu.Lock()
	stale := c.roomID != id
	c.mu.Unlock()
	if stale {
		return
	}

	if room == nil {
		c.teardown(context.Background(), false)
		c.renderer.ShowScreen(ScreenWelcome)
		return
	}

	c.mu.Lock()
	if c.roomID != id {
		c.mu.Unlock()
		return
	}
	startGame := room.Status == model.StatusPlaying && c.screen == ScreenWaiting
	if startGame {
		c.screen = ScreenGame
	}
	c.mu.Unlock()

	c.renderer.RenderPlayers(view.ProjectPlayers(room.Players, c.session.UserID()))

	if startGame {
		if err := c.subscribeGameMessages(context.Background(), room.ID); err != nil {
			c.logger.Warn("failed to open game message feed",
				slog.String("error", err.Error()),
			)
		}
		c.renderer.ShowScreen(ScreenGame)
	}
}

func (c *Controller) handleMessages(roomType model.RoomType, msgs []model.Message) {
	c.renderer.RenderMessages(roomType, view.ProjectMessages(msgs, c.session.UserID()))
}

func (c *Controller) handlePresence(recs []model.PresenceRecord) {
	c.renderer.RenderTypingIndicator(
		view.TypingIndicator(recs, c.session.UserID(), time.Now()),
	)
}

// StartGame flips the room to playing. Non-hosts get an error message, the
// server enforces the same rule on its side.
func (c *Controller) StartGame(ctx context.Context) error {
	c.mu.Lock()
	id := c.roomID
	isHost := c.isHost
	c.mu.Unlock()

	if id == model.EmptyRoomID {
		return ErrNoRoom
	}
	if !isHost {
		c.renderer.ShowError("Only the host can start the game")
		return nil
	}

	if err := c.gw.SetRoomStatus(ctx, id, model.StatusPlaying, c.session.UserID()); err != nil {
		c.renderer.ShowError("Failed to start game")
		return err
	}
	return nil
}

// SendMessage routes the text to the feed of the current screen.
func (c *Controller) SendMessage(ctx context.Context, text string) error {
	c.mu.Lock()
	id := c.roomID
	screen := c.screen
	c.mu.Unlock()

	if id == model.EmptyRoomID {
		return ErrNoRoom
	}

	roomType := model.RoomTypeWaiting
	if screen == ScreenGame {
		roomType = model.RoomTypeGame
	}

	if err := c.gw.SendMessage(ctx, id, roomType, c.session.User(), text); err != nil {
		if errors.Is(err, gateway.ErrValidation) {
			return err
		}
		c.renderer.ShowError("Failed to send message")
		return err
	}

	c.typing.MessageSent()
	return nil
}

// InputChanged feeds the typing tracker on every edit of the message box.
func (c *Controller) InputChanged(text string) {
	if c.RoomID() == model.EmptyRoomID {
		return
	}
	c.typing.InputChanged(text)
}

// Leave exits the current room. Local state is cleared no matter what the
// server says, the remote leave is best-effort.
func (c *Controller) Leave(ctx context.Context) {
	if c.RoomID() == model.EmptyRoomID {
		return
	}
	c.teardown(ctx, true)
	c.renderer.ShowScreen(ScreenWelcome)
}

func (c *Controller) teardown(ctx context.Context, notifyServer bool) {
	c.mu.Lock()
	id := c.roomID
	c.roomID = model.EmptyRoomID
	c.isHost = false
	c.screen = ScreenWelcome
	c.mu.Unlock()

	c.subs.CancelAll()
	c.typing.Stop()

	if notifyServer && id != model.EmptyRoomID {
		if err := c.gw.LeaveRoom(ctx, id, c.session.UserID()); err != nil {
			c.logger.Warn("failed to leave room",
				slog.String("room_id", string(id)),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (c *Controller) reportTyping(isTyping bool) {
	c.mu.Lock()
	id := c.roomID
	c.mu.Unlock()

	if id == model.EmptyRoomID {
		return
	}

	if err := c.gw.UpdatePresence(context.Background(), id, c.session.User(), isTyping); err != nil {
		c.logger.Warn("failed to update presence",
			slog.String("error", err.Error()),
		)
	}
}
