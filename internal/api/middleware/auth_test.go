package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/auth"
)

type stubUsers map[string]*user.User

func (s stubUsers) GetUser(_ context.Context, id string) (*user.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s *stubRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return s.revoked[tokenID], s.err
}

type authFixture struct {
	tokens      *auth.TokenManager
	users       stubUsers
	revocations *stubRevocations
	echo        *echo.Echo
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		tokens: auth.NewTokenManager("test-secret-test-secret-test-secret", time.Hour, "test"),
		users: stubUsers{
			"admin-1":    {ID: "admin-1", Role: user.RoleAdmin},
			"creator-1":  {ID: "creator-1", Role: user.RoleEventCreator},
			"attendee-1": {ID: "attendee-1", Role: user.RoleAttendee},
		},
		revocations: &stubRevocations{revoked: map[string]bool{}},
		echo:        echo.New(),
	}

	authn := Authenticate(f.tokens, f.revocations, f.users)
	f.echo.GET("/me", func(c echo.Context) error {
		return c.String(http.StatusOK, CurrentUser(c).ID)
	}, authn)
	f.echo.GET("/users", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, authn, RequireRoles(user.RoleAdmin))
	f.echo.GET("/my-events", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, authn, RequireRoles(user.RoleAdmin, user.RoleEventCreator))
	return f
}

func (f *authFixture) do(t *testing.T, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func (f *authFixture) bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := f.tokens.Issue(userID)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture()

	t.Run("有効なトークンでユーザーを解決する", func(t *testing.T) {
		rec := f.do(t, "/me", f.bearer(t, "attendee-1"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "attendee-1", rec.Body.String())
	})

	t.Run("トークンなしは401", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", "").Code)
	})

	t.Run("不正なトークンは401", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", "Bearer not-a-token").Code)
	})

	t.Run("別の鍵で署名されたトークンは401", func(t *testing.T) {
		other := auth.NewTokenManager("another-secret-another-secret-xx", time.Hour, "test")
		token, err := other.Issue("admin-1")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", "Bearer "+token).Code)
	})

	t.Run("存在しないユーザーのトークンは401", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", f.bearer(t, "deleted-user")).Code)
	})
}

func TestAuthenticate_Revocation(t *testing.T) {
	f := newAuthFixture()
	header := f.bearer(t, "attendee-1")

	token, err := auth.TokenFromHeader(header)
	require.NoError(t, err)
	claims, err := f.tokens.Verify(token)
	require.NoError(t, err)

	t.Run("失効済みトークンは401", func(t *testing.T) {
		f.revocations.revoked[claims.ID] = true
		defer delete(f.revocations.revoked, claims.ID)

		assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", header).Code)
	})

	t.Run("失効ストアの障害は503", func(t *testing.T) {
		f.revocations.err = errors.New("redis down")
		defer func() { f.revocations.err = nil }()

		assert.Equal(t, http.StatusServiceUnavailable, f.do(t, "/me", header).Code)
	})
}

func TestRequireRoles(t *testing.T) {
	f := newAuthFixture()

	tests := []struct {
		name   string
		path   string
		userID string
		want   int
	}{
		{"管理者はユーザー一覧を取得できる", "/users", "admin-1", http.StatusOK},
		{"イベント作成者はユーザー一覧を取得できない", "/users", "creator-1", http.StatusForbidden},
		{"参加者はユーザー一覧を取得できない", "/users", "attendee-1", http.StatusForbidden},
		{"イベント作成者は自分のイベントを取得できる", "/my-events", "creator-1", http.StatusOK},
		{"参加者は自分のイベント一覧を利用できない", "/my-events", "attendee-1", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.do(t, tt.path, f.bearer(t, tt.userID)).Code)
		})
	}

	t.Run("未認証はロール判定より先に401", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.do(t, "/users", "").Code)
	})
}

func TestRequireRoles_ReflectsRoleChange(t *testing.T) {
	f := newAuthFixture()
	header := f.bearer(t, "attendee-1")

	assert.Equal(t, http.StatusForbidden, f.do(t, "/my-events", header).Code)

	// 同じトークンのままロールが変わる
	f.users["attendee-1"].Role = user.RoleEventCreator
	assert.Equal(t, http.StatusOK, f.do(t, "/my-events", header).Code)
}
