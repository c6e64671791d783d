package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/auth"
)

const (
	adminID    = "11111111-1111-1111-1111-111111111111"
	creatorID  = "22222222-2222-2222-2222-222222222222"
	attendeeID = "33333333-3333-3333-3333-333333333333"
	eventID    = "44444444-4444-4444-4444-444444444444"
	bookingID  = "55555555-5555-5555-5555-555555555555"
)

type stubUsers map[string]*user.User

func (s stubUsers) GetUser(_ context.Context, id string) (*user.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

// testServer はルーティングとミドルウェアを含めたハンドラーのテスト環境
type testServer struct {
	e        *echo.Echo
	tokens   *auth.TokenManager
	users    stubUsers
	auth     *MockAuthService
	userSvc  *MockUserService
	events   *MockEventService
	bookings *MockBookingService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	now := time.Now()
	s := &testServer{
		e:      NewTestEcho(),
		tokens: auth.NewTokenManager("test-secret", time.Hour, "test"),
		users: stubUsers{
			adminID:    {ID: adminID, Name: "Admin", Email: "admin@example.com", Role: user.RoleAdmin, CreatedAt: now, UpdatedAt: now},
			creatorID:  {ID: creatorID, Name: "Creator", Email: "creator@example.com", Role: user.RoleEventCreator, CreatedAt: now, UpdatedAt: now},
			attendeeID: {ID: attendeeID, Name: "Attendee", Email: "attendee@example.com", Role: user.RoleAttendee, CreatedAt: now, UpdatedAt: now},
		},
		auth:     new(MockAuthService),
		userSvc:  new(MockUserService),
		events:   new(MockEventService),
		bookings: new(MockBookingService),
	}

	router := &Router{
		Auth:       NewAuthHandler(s.auth),
		Users:      NewUserHandler(s.userSvc),
		Events:     NewEventHandler(s.events),
		Booking:    NewBookingHandler(s.bookings),
		Health:     NewHealthHandler(),
		Verifier:   s.tokens,
		UserLoader: s.users,
	}
	router.Register(s.e)

	t.Cleanup(func() {
		s.auth.AssertExpectations(t)
		s.userSvc.AssertExpectations(t)
		s.events.AssertExpectations(t)
		s.bookings.AssertExpectations(t)
	})
	return s
}

func (s *testServer) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := s.tokens.Issue(userID)
	require.NoError(t, err)
	return token
}

// do はリクエストを実行する。token が空なら Authorization ヘッダーを付けない
func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// fieldErrors は検証エラーレスポンスの errors を取り出す
func fieldErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := decode(t, rec)
	errs, ok := body["errors"].(map[string]interface{})
	require.True(t, ok, "errors がありません: %s", rec.Body.String())
	return errs
}

// intPtr はテスト用のポインタヘルパー
func intPtr(v int) *int {
	return &v
}

// mustTime はイベント日時文字列を解釈する
func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse("2006-01-02 15:04:05", s)
	require.NoError(t, err)
	return v
}
