package usecase_room

import (
	"context"
	"testing"

	"github.com/obkschool/chatgame/internal/model"
	repo_mocks "github.com/obkschool/chatgame/internal/usecase/room/mocks/room/repository"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseRoomUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase  *Usecase
	roomRepo *repo_mocks.RoomRepository
	ctx      context.Context
}

func initResources(t provider.T) *resources {
	roomRepo := repo_mocks.NewRoomRepository(t)
	usecase := New(roomRepo)

	return &resources{
		roomRepo: roomRepo,
		usecase:  usecase,
		ctx:      context.Background(),
	}
}

func validUser() model.User {
	return model.User{UserID: "user_abc123", Username: "alice", Avatar: model.Avatars[0]}
}

func validRoomID() model.RoomID {
	return model.RoomID("room_xyz789")
}

func (suite *UsecaseRoomUnitSuite) TestCreate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		expectError   bool
		expectedError error
	}{
		{
			name: "Should create room with creator as sole host",
			setupMocks: func(r *resources) {
				r.roomRepo.On("Create", r.ctx, mock.AnythingOfType("model.Room")).
					Return(nil).Once()
			},
			expectError: false,
		},
		{
			name: "Should give up after repeated id conflicts",
			setupMocks: func(r *resources) {
				r.roomRepo.On("Create", r.ctx, mock.AnythingOfType("model.Room")).
					Return(ErrCodeConflict).Times(3)
			},
			expectError:   true,
			expectedError: ErrRoomsUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			room, err := r.usecase.Create(r.ctx, validUser())

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusWaiting, room.Status)
				assert.Len(t, room.Players, 1)
				assert.True(t, room.Players[0].IsHost)
				assert.Equal(t, validUser().UserID, room.Players[0].UserID)
				assert.Equal(t, validUser().UserID, room.HostID())
			}
			r.roomRepo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseRoomUnitSuite) TestJoin(t provider.T) {
	t.Parallel()

	host := model.Player{UserID: "user_host", Username: "bob", Avatar: model.Avatars[1], IsHost: true}

	testCases := []struct {
		name          string
		setupMocks    func(r *resources, id model.RoomID, user model.User)
		expectError   bool
		expectedError error
	}{
		{
			name: "Should append joiner and return fresh snapshot",
			setupMocks: func(r *resources, id model.RoomID, user model.User) {
				before := model.Room{ID: id, Status: model.StatusWaiting, Players: []model.Player{host}}
				after := model.Room{ID: id, Status: model.StatusWaiting, Players: []model.Player{
					host,
					{UserID: user.UserID, Username: user.Username, Avatar: user.Avatar},
				}}
				r.roomRepo.On("ByID", r.ctx, id).Return(before, nil).Once()
				r.roomRepo.On("AddPlayer", r.ctx, id, mock.AnythingOfType("model.Player")).Return(nil).Once()
				r.roomRepo.On("ByID", r.ctx, id).Return(after, nil).Once()
			},
			expectError: false,
		},
		{
			name: "Should not re-add an existing member",
			setupMocks: func(r *resources, id model.RoomID, user model.User) {
				member := model.Player{UserID: user.UserID, Username: user.Username, Avatar: user.Avatar}
				room := model.Room{ID: id, Status: model.StatusWaiting, Players: []model.Player{host, member}}
				r.roomRepo.On("ByID", r.ctx, id).Return(room, nil).Twice()
			},
			expectError: false,
		},
		{
			name: "Should report missing room",
			setupMocks: func(r *resources, id model.RoomID, user model.User) {
				r.roomRepo.On("ByID", r.ctx, id).Return(model.Room{}, ErrResourceNotFound).Once()
			},
			expectError:   true,
			expectedError: ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			id := validRoomID()
			user := validUser()
			tc.setupMocks(r, id, user)

			room, err := r.usecase.Join(r.ctx, id, user)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
				assert.True(t, room.HasPlayer(user.UserID))
				for _, p := range room.Players {
					if p.UserID == user.UserID {
						assert.False(t, p.IsHost)
					}
				}
			}
			r.roomRepo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseRoomUnitSuite) TestLeave(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		setupMocks     func(r *resources, id model.RoomID)
		expectedClosed bool
		expectError    bool
	}{
		{
			name: "Should remove player and keep room open",
			setupMocks: func(r *resources, id model.RoomID) {
				r.roomRepo.On("RemovePlayer", r.ctx, id, "user_abc123").Return(1, nil).Once()
			},
			expectedClosed: false,
		},
		{
			name: "Should garbage-collect room after last player leaves",
			setupMocks: func(r *resources, id model.RoomID) {
				r.roomRepo.On("RemovePlayer", r.ctx, id, "user_abc123").Return(0, nil).Once()
				r.roomRepo.On("Delete", r.ctx, id).Return(nil).Once()
			},
			expectedClosed: true,
		},
		{
			name: "Should treat leaving a missing room as a no-op",
			setupMocks: func(r *resources, id model.RoomID) {
				r.roomRepo.On("RemovePlayer", r.ctx, id, "user_abc123").Return(0, ErrResourceNotFound).Once()
			},
			expectedClosed: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			id := validRoomID()
			tc.setupMocks(r, id)

			closed, err := r.usecase.Leave(r.ctx, id, "user_abc123")

			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectedClosed, closed)
			r.roomRepo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseRoomUnitSuite) TestSetStatus(t provider.T) {
	t.Parallel()

	host := model.Player{UserID: "user_host", IsHost: true}
	guest := model.Player{UserID: "user_guest"}

	testCases := []struct {
		name          string
		callerID      string
		status        model.RoomStatus
		setupMocks    func(r *resources, id model.RoomID)
		expectError   bool
		expectedError error
	}{
		{
			name:     "Should let the host start the game",
			callerID: "user_host",
			status:   model.StatusPlaying,
			setupMocks: func(r *resources, id model.RoomID) {
				room := model.Room{ID: id, Status: model.StatusWaiting, Players: []model.Player{host, guest}}
				r.roomRepo.On("ByID", r.ctx, id).Return(room, nil).Once()
				r.roomRepo.On("SetStatus", r.ctx, id, model.StatusPlaying).Return(nil).Once()
			},
			expectError: false,
		},
		{
			name:     "Should refuse a non-host caller",
			callerID: "user_guest",
			status:   model.StatusPlaying,
			setupMocks: func(r *resources, id model.RoomID) {
				room := model.Room{ID: id, Status: model.StatusWaiting, Players: []model.Player{host, guest}}
				r.roomRepo.On("ByID", r.ctx, id).Return(room, nil).Once()
			},
			expectError:   true,
			expectedError: ErrNotHost,
		},
		{
			name:          "Should reject an unknown status before touching storage",
			callerID:      "user_host",
			status:        model.RoomStatus("paused"),
			setupMocks:    func(r *resources, id model.RoomID) {},
			expectError:   true,
			expectedError: ErrBadStatus,
		},
		{
			name:     "Should report missing room",
			callerID: "user_host",
			status:   model.StatusPlaying,
			setupMocks: func(r *resources, id model.RoomID) {
				r.roomRepo.On("ByID", r.ctx, id).Return(model.Room{}, ErrResourceNotFound).Once()
			},
			expectError:   true,
			expectedError: ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			id := validRoomID()
			tc.setupMocks(r, id)

			err := r.usecase.SetStatus(r.ctx, id, tc.status, tc.callerID)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			r.roomRepo.AssertExpectations(t)
		})
	}
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseRoomUnitSuite))
}
