package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/auth"
)

const (
	contextKeyUser   = "auth.user"
	contextKeyClaims = "auth.claims"
)

// TokenVerifier はベアラートークンを検証する
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RevocationChecker は失効済みトークンを判定する
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// UserLoader はトークンの主体となるユーザーを読み込む
type UserLoader interface {
	GetUser(ctx context.Context, id string) (*user.User, error)
}

// Authenticate はベアラートークンを検証し、呼び出し元ユーザーをコンテキストに格納する
// ロールは毎回ストアから読むので、ロール変更は次のリクエストから反映される
// revocations が nil の場合は失効確認を行わない
func Authenticate(verifier TokenVerifier, revocations RevocationChecker, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := auth.TokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return unauthorized(err)
			}
			claims, err := verifier.Verify(token)
			if err != nil {
				return unauthorized(err)
			}

			ctx := c.Request().Context()
			if revocations != nil {
				revoked, err := revocations.IsRevoked(ctx, claims.ID)
				if err != nil {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "Service Unavailable").SetInternal(err)
				}
				if revoked {
					return unauthorized(auth.ErrInvalidToken)
				}
			}

			u, err := users.GetUser(ctx, claims.UserID())
			if errors.Is(err, user.ErrUserNotFound) {
				return unauthorized(err)
			}
			if err != nil {
				return err
			}

			c.Set(contextKeyUser, u)
			c.Set(contextKeyClaims, claims)
			return next(c)
		}
	}
}

// RequireRoles は呼び出し元のロールが roles のいずれかと一致する場合のみ通す
// Authenticate の後に置く
func RequireRoles(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := CurrentUser(c)
			if u == nil {
				return unauthorized(auth.ErrMissingToken)
			}
			if err := auth.Authorize(u.Role, roles...); err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden").SetInternal(err)
			}
			return next(c)
		}
	}
}

// CurrentUser は認証済みユーザーを返す。未認証なら nil
func CurrentUser(c echo.Context) *user.User {
	u, _ := c.Get(contextKeyUser).(*user.User)
	return u
}

// CurrentClaims は検証済みトークンのクレームを返す。未認証なら nil
func CurrentClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(contextKeyClaims).(*auth.Claims)
	return claims
}

func unauthorized(err error) error {
	return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized").SetInternal(err)
}
