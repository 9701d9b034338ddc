//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/userkeeper-server/internal/model"
	repo "github.com/dtroode/userkeeper-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "userkeeper_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/userkeeper_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	u := model.User{ID: 5, Email: "a@x.com", FirstName: "J", LastName: "D"}

	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)
	require.Equal(t, u.ID, saved.ID)
	require.False(t, saved.CreatedAt.IsZero())

	byEmail, err := ur.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	_, err = ur.Create(ctx, model.User{ID: 6, Email: u.Email, FirstName: "X", LastName: "Y"})
	require.ErrorIs(t, err, model.ErrAlreadyExists)

	_, err = ur.Create(ctx, model.User{ID: 5, Email: "other@x.com", FirstName: "X", LastName: "Y"})
	require.ErrorIs(t, err, model.ErrAlreadyExists)

	require.NoError(t, ur.SetAvatar(ctx, u.ID, "deadbeef"))
	require.ErrorIs(t, ur.SetAvatar(ctx, u.ID, "cafebabe"), model.ErrNotFound)

	byID, err := ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "deadbeef", byID.Avatar)

	require.NoError(t, ur.DeleteByID(ctx, u.ID))
	_, err = ur.GetByID(ctx, u.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
	require.ErrorIs(t, ur.DeleteByID(ctx, u.ID), model.ErrNotFound)
}
