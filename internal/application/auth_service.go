package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/auth"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/metrics"
)

// TokenIssuer はアクセストークンを発行する
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// TokenRevoker はトークンを有効期限まで失効させる
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

type AuthService struct {
	userRepo user.Repository
	hasher   *auth.PasswordHasher
	tokens   TokenIssuer
	revoker  TokenRevoker
	metrics  *metrics.Metrics
}

// NewAuthService は AuthService を作成する
// revoker が nil の場合、ログアウトはトークンを失効させない
func NewAuthService(userRepo user.Repository, hasher *auth.PasswordHasher, tokens TokenIssuer, revoker TokenRevoker, m *metrics.Metrics) *AuthService {
	return &AuthService{userRepo: userRepo, hasher: hasher, tokens: tokens, revoker: revoker, metrics: m}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult は登録・ログインの結果
type AuthResult struct {
	Token string
	User  *user.User
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	result, err := s.register(ctx, input)
	s.metrics.RecordAuth("register", authOutcome(err,
		user.ErrEmailAlreadyTaken, user.ErrNameRequired, user.ErrEmailRequired, user.ErrPasswordRequired))
	return result, err
}

func (s *AuthService) register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, user.ErrEmailAlreadyTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	u := user.NewUser(input.Name, input.Email, hash)
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	// 同時登録は一意制約で ErrEmailAlreadyTaken になる
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	result, err := s.login(ctx, input)
	s.metrics.RecordAuth("login", authOutcome(err, user.ErrInvalidCredentials))
	return result, err
}

func (s *AuthService) login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	u, err := s.userRepo.GetByEmail(ctx, input.Email)
	if errors.Is(err, user.ErrUserNotFound) {
		// 未登録でも比較コストを揃え、存在有無を応答時間から推測させない
		s.hasher.CompareDummy(input.Password)
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Compare(u.PasswordHash, input.Password); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

// Logout は提示されたトークンを失効させる
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.revoker == nil {
		s.metrics.RecordAuth("logout", "success")
		return nil
	}
	err := s.revoker.Revoke(ctx, claims.ID, claims.TTL(time.Now()))
	s.metrics.RecordAuth("logout", authOutcome(err))
	return err
}

// Me は認証済みユーザー自身を返す
func (s *AuthService) Me(ctx context.Context, userID string) (*user.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

type AdminSeedInput struct {
	Name     string
	Email    string
	Password string
}

// EnsureAdmin は管理者ユーザーが存在することを保証する
// 既存ユーザーが管理者でなければ昇格させる
func (s *AuthService) EnsureAdmin(ctx context.Context, input AdminSeedInput) (*user.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, input.Email)
	switch {
	case err == nil:
		if u.IsAdmin() {
			return u, nil
		}
		if err := u.ChangeRole(user.RoleAdmin); err != nil {
			return nil, err
		}
		if err := s.userRepo.UpdateRole(ctx, u); err != nil {
			return nil, fmt.Errorf("管理者への昇格に失敗: %w", err)
		}
		return u, nil
	case !errors.Is(err, user.ErrUserNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	u = user.NewUser(input.Name, input.Email, hash)
	if err := u.ChangeRole(user.RoleAdmin); err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("管理者の作成に失敗: %w", err)
	}
	return u, nil
}

// authOutcome はメトリクス用の結果ラベルを返す
func authOutcome(err error, rejected ...error) string {
	if err == nil {
		return "success"
	}
	for _, target := range rejected {
		if errors.Is(err, target) {
			return "rejected"
		}
	}
	return "error"
}
