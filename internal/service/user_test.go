package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/userkeeper-server/internal/apierror"
	servermocks "github.com/dtroode/userkeeper-server/internal/mocks"
	"github.com/dtroode/userkeeper-server/internal/model"
	"github.com/dtroode/userkeeper-server/internal/testutil"
)

type userDeps struct {
	store     *servermocks.UserStore
	directory *servermocks.Directory
	notifier  *servermocks.Notifier
	publisher *servermocks.EventPublisher
}

func newUserService(t *testing.T) (*User, userDeps) {
	t.Helper()
	deps := userDeps{
		store:     servermocks.NewUserStore(t),
		directory: servermocks.NewDirectory(t),
		notifier:  servermocks.NewNotifier(t),
		publisher: servermocks.NewEventPublisher(t),
	}
	svc := NewUser(deps.store, deps.directory, deps.notifier, deps.publisher, testutil.MakeNoopLogger())
	return svc, deps
}

func TestUser_CreateUser(t *testing.T) {
	params := model.CreateUserParams{ID: 5, Email: "a@x.io", FirstName: "A", LastName: "B"}
	persisted := model.User{ID: 5, Email: "a@x.io", FirstName: "A", LastName: "B"}

	tests := []struct {
		name     string
		setup    func(d userDeps)
		wantUser model.User
		wantKind apierror.Kind
		wantErr  bool
		wantMsg  string
	}{
		{
			name: "new user is persisted notified and announced",
			setup: func(d userDeps) {
				d.store.On("GetByEmail", mock.Anything, "a@x.io").Return(model.User{}, model.ErrNotFound).Once()
				d.store.On("Create", mock.Anything, params.ToUser()).Return(persisted, nil).Once()
				d.notifier.On("Send", mock.Anything, "a@x.io", "Welcome!", "Thank you for registering.").Return(nil).Once()
				d.publisher.On("Publish", mock.Anything, "user_created", int64(5)).Return(nil).Once()
			},
			wantUser: persisted,
		},
		{
			name: "duplicate email is a conflict without side effects",
			setup: func(d userDeps) {
				d.store.On("GetByEmail", mock.Anything, "a@x.io").Return(model.User{ID: 1, Email: "a@x.io"}, nil).Once()
			},
			wantErr:  true,
			wantKind: apierror.KindConflict,
			wantMsg:  "user with this email already exists",
		},
		{
			name: "unique violation on insert is a conflict",
			setup: func(d userDeps) {
				d.store.On("GetByEmail", mock.Anything, "a@x.io").Return(model.User{}, model.ErrNotFound).Once()
				d.store.On("Create", mock.Anything, mock.Anything).Return(model.User{}, model.ErrAlreadyExists).Once()
			},
			wantErr:  true,
			wantKind: apierror.KindConflict,
		},
		{
			name: "email lookup failure is internal",
			setup: func(d userDeps) {
				d.store.On("GetByEmail", mock.Anything, "a@x.io").Return(model.User{}, errors.New("connection reset")).Once()
			},
			wantErr:  true,
			wantKind: apierror.KindInternal,
			wantMsg:  "failed to create user, try again later",
		},
		{
			name: "persist failure is internal and nothing is sent",
			setup: func(d userDeps) {
				d.store.On("GetByEmail", mock.Anything, "a@x.io").Return(model.User{}, model.ErrNotFound).Once()
				d.store.On("Create", mock.Anything, mock.Anything).Return(model.User{}, errors.New("disk full")).Once()
			},
			wantErr:  true,
			wantKind: apierror.KindInternal,
			wantMsg:  "failed to create user, try again later",
		},
		{
			name: "notification failure is internal and event is not published",
			setup: func(d userDeps) {
				d.store.On("GetByEmail", mock.Anything, "a@x.io").Return(model.User{}, model.ErrNotFound).Once()
				d.store.On("Create", mock.Anything, mock.Anything).Return(persisted, nil).Once()
				d.notifier.On("Send", mock.Anything, "a@x.io", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
			},
			wantErr:  true,
			wantKind: apierror.KindInternal,
			wantMsg:  "failed to create user, try again later",
		},
		{
			name: "publish failure is internal",
			setup: func(d userDeps) {
				d.store.On("GetByEmail", mock.Anything, "a@x.io").Return(model.User{}, model.ErrNotFound).Once()
				d.store.On("Create", mock.Anything, mock.Anything).Return(persisted, nil).Once()
				d.notifier.On("Send", mock.Anything, "a@x.io", mock.Anything, mock.Anything).Return(nil).Once()
				d.publisher.On("Publish", mock.Anything, "user_created", int64(5)).Return(errors.New("broker down")).Once()
			},
			wantErr:  true,
			wantKind: apierror.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newUserService(t)
			tt.setup(deps)

			user, err := svc.CreateUser(context.Background(), params)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apierror.KindOf(err))
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, err.Error())
				}
				assert.Equal(t, model.User{}, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, user)
		})
	}
}

func TestUser_CreateUser_NoRetryOnFailure(t *testing.T) {
	svc, deps := newUserService(t)
	params := model.CreateUserParams{ID: 9, Email: "z@x.io", FirstName: "Z", LastName: "Z"}

	deps.store.On("GetByEmail", mock.Anything, "z@x.io").Return(model.User{}, model.ErrNotFound).Once()
	deps.store.On("Create", mock.Anything, mock.Anything).Return(model.User{}, errors.New("timeout")).Once()

	_, err := svc.CreateUser(context.Background(), params)
	require.Error(t, err)
	deps.store.AssertNumberOfCalls(t, "Create", 1)
}

func TestUser_GetUser(t *testing.T) {
	t.Run("returns remote profile", func(t *testing.T) {
		svc, deps := newUserService(t)
		profile := model.RemoteProfile{ID: 2, Email: "janet.weaver@reqres.in", FirstName: "Janet", LastName: "Weaver", Avatar: "https://reqres.in/img/faces/2-image.jpg"}
		deps.directory.On("GetUser", mock.Anything, int64(2)).Return(profile, nil).Once()

		got, err := svc.GetUser(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, profile, got)
	})

	t.Run("remote failure is internal", func(t *testing.T) {
		svc, deps := newUserService(t)
		deps.directory.On("GetUser", mock.Anything, int64(2)).Return(model.RemoteProfile{}, errors.New("failed to make API call to URL: x")).Once()

		_, err := svc.GetUser(context.Background(), 2)
		require.Error(t, err)
		assert.Equal(t, apierror.KindInternal, apierror.KindOf(err))
		assert.NotContains(t, err.Error(), "API call")
	})
}
