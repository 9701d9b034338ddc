package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/userkeeper-server/internal/api/http/handler"
	"github.com/dtroode/userkeeper-server/internal/apierror"
	"github.com/dtroode/userkeeper-server/internal/mocks"
	"github.com/dtroode/userkeeper-server/internal/model"
	"github.com/dtroode/userkeeper-server/internal/testutil"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestRouter(t *testing.T) (http.Handler, *mocks.UserService, *mocks.AvatarService) {
	t.Helper()
	us := mocks.NewUserService(t)
	as := mocks.NewAvatarService(t)
	checks := map[string]handler.HealthChecker{
		"postgres": pingFunc(func(context.Context) error { return nil }),
	}
	return New(us, as, checks, testutil.MakeNoopLogger()), us, as
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_CreateUser(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		h, us, _ := newTestRouter(t)
		params := model.CreateUserParams{ID: 5, Email: "a@x.io", FirstName: "A", LastName: "B"}
		us.On("CreateUser", mock.Anything, params).Return(params.ToUser(), nil)

		rec := do(h, http.MethodPost, "/api/users", `{"id":5,"email":"a@x.io","first_name":"A","last_name":"B"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"id":5,"email":"a@x.io","first_name":"A","last_name":"B"}`, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("conflict", func(t *testing.T) {
		h, us, _ := newTestRouter(t)
		us.On("CreateUser", mock.Anything, mock.Anything).Return(model.User{}, apierror.NewErrEmailIsTaken())

		rec := do(h, http.MethodPost, "/api/users", `{"id":5,"email":"a@x.io","first_name":"A","last_name":"B"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"error":"user with this email already exists"}`, rec.Body.String())
	})

	t.Run("internal", func(t *testing.T) {
		h, us, _ := newTestRouter(t)
		us.On("CreateUser", mock.Anything, mock.Anything).Return(model.User{}, apierror.NewErrCreateUser())

		rec := do(h, http.MethodPost, "/api/users", `{"id":5,"email":"a@x.io","first_name":"A","last_name":"B"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"failed to create user, try again later"}`, rec.Body.String())
	})

	for _, body := range []string{
		`not json`,
		`{"id":5,"email":"a@x.io","first_name":"A","last_name":"B","extra":1}`,
		`{"id":0,"email":"a@x.io","first_name":"A","last_name":"B"}`,
		`{"id":5,"email":"","first_name":"A","last_name":"B"}`,
	} {
		t.Run("bad request "+body, func(t *testing.T) {
			h, _, _ := newTestRouter(t)
			rec := do(h, http.MethodPost, "/api/users", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRouter_GetUser(t *testing.T) {
	h, us, _ := newTestRouter(t)
	us.On("GetUser", mock.Anything, int64(2)).Return(model.RemoteProfile{
		ID: 2, Email: "janet.weaver@reqres.in", FirstName: "Janet", LastName: "Weaver", Avatar: "https://reqres.in/img/faces/2-image.jpg",
	}, nil)

	rec := do(h, http.MethodGet, "/api/users/2", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":2,"email":"janet.weaver@reqres.in","first_name":"Janet","last_name":"Weaver","avatar":"https://reqres.in/img/faces/2-image.jpg"}`, rec.Body.String())
}

func TestRouter_Avatar(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		h, _, as := newTestRouter(t)
		as.On("GetAvatar", mock.Anything, int64(1)).Return("aGVsbG8=", nil)

		rec := do(h, http.MethodGet, "/api/users/1/avatar", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `"aGVsbG8="`, rec.Body.String())
	})

	t.Run("get failure", func(t *testing.T) {
		h, _, as := newTestRouter(t)
		as.On("GetAvatar", mock.Anything, int64(1)).Return("", apierror.NewErrFetchAvatar(1))

		rec := do(h, http.MethodGet, "/api/users/1/avatar", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"failed to fetch avatar for user ID: 1, try again later"}`, rec.Body.String())
	})

	t.Run("delete", func(t *testing.T) {
		h, _, as := newTestRouter(t)
		as.On("DeleteAvatar", mock.Anything, int64(1)).Return(true, nil)

		rec := do(h, http.MethodDelete, "/api/users/1/avatar", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `true`, rec.Body.String())
	})

	t.Run("delete not found", func(t *testing.T) {
		h, _, as := newTestRouter(t)
		as.On("DeleteAvatar", mock.Anything, int64(7)).Return(false, apierror.NewErrUserNotFound(7))

		rec := do(h, http.MethodDelete, "/api/users/7/avatar", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"user with ID: 7 not found"}`, rec.Body.String())
	})

	t.Run("unexpected error is hidden", func(t *testing.T) {
		h, _, as := newTestRouter(t)
		as.On("DeleteAvatar", mock.Anything, int64(7)).Return(false, errors.New("pq: connection reset"))

		rec := do(h, http.MethodDelete, "/api/users/7/avatar", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	})

	t.Run("non numeric id", func(t *testing.T) {
		h, _, _ := newTestRouter(t)
		rec := do(h, http.MethodGet, "/api/users/abc/avatar", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_Health(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rec := do(h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(h, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"postgres":"ok"}}`, rec.Body.String())
}

func TestRouter_ReadyzUnhealthy(t *testing.T) {
	checks := map[string]handler.HealthChecker{
		"postgres": pingFunc(func(context.Context) error { return errors.New("down") }),
	}
	h := New(mocks.NewUserService(t), mocks.NewAvatarService(t), checks, testutil.MakeNoopLogger())

	rec := do(h, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unhealthy","checks":{"postgres":"error"}}`, rec.Body.String())
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	h, _, _ := newTestRouter(t)

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/nope", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(h, http.MethodPut, "/api/users/1/avatar", "").Code)
}
