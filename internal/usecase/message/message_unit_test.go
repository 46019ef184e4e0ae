package usecase_message

import (
	"context"
	"testing"

	"github.com/obkschool/chatgame/internal/model"
	repo_mocks "github.com/obkschool/chatgame/internal/usecase/message/mocks/message/repository"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseMessageUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	repo    *repo_mocks.MessageRepository
	ctx     context.Context
}

func initResources(t provider.T) *resources {
	repo := repo_mocks.NewMessageRepository(t)
	return &resources{
		repo:    repo,
		usecase: New(repo),
		ctx:     context.Background(),
	}
}

func (suite *UsecaseMessageUnitSuite) TestSend(t provider.T) {
	t.Parallel()

	user := model.User{UserID: "user_abc123", Username: "alice", Avatar: model.Avatars[0]}
	id := model.RoomID("room_xyz789")

	testCases := []struct {
		name          string
		text          string
		setupMocks    func(r *resources)
		expectError   bool
		expectedError error
	}{
		{
			name: "Should append trimmed message with sender identity",
			text: "  hello there  ",
			setupMocks: func(r *resources) {
				r.repo.On("Append", r.ctx, mock.MatchedBy(func(m model.Message) bool {
					return m.Text == "hello there" &&
						m.RoomID == id &&
						m.RoomType == model.RoomTypeGame &&
						m.UserID == user.UserID
				})).Return(nil).Once()
			},
			expectError: false,
		},
		{
			name:          "Should refuse blank text before touching storage",
			text:          "   ",
			setupMocks:    func(r *resources) {},
			expectError:   true,
			expectedError: ErrEmptyText,
		},
		{
			name: "Should surface missing room",
			text: "hi",
			setupMocks: func(r *resources) {
				r.repo.On("Append", r.ctx, mock.AnythingOfType("model.Message")).
					Return(ErrResourceNotFound).Once()
			},
			expectError:   true,
			expectedError: ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			err := r.usecase.Send(r.ctx, id, model.RoomTypeGame, user, tc.text)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			r.repo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseMessageUnitSuite) TestList(t provider.T) {
	t.Parallel()

	id := model.RoomID("room_xyz789")

	t.Run("Should return feed scoped to room type", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		feed := []model.Message{
			{RoomID: id, RoomType: model.RoomTypeWaiting, Text: "first", Seq: 1},
			{RoomID: id, RoomType: model.RoomTypeWaiting, Text: "second", Seq: 2},
		}
		r.repo.On("ListByRoom", r.ctx, id, model.RoomTypeWaiting).Return(feed, nil).Once()

		msgs, err := r.usecase.List(r.ctx, id, model.RoomTypeWaiting)

		assert.NoError(t, err)
		assert.Equal(t, feed, msgs)
		r.repo.AssertExpectations(t)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseMessageUnitSuite))
}
