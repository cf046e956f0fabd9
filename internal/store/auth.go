package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/hitoshi/yardclient/internal/model"
	"github.com/hitoshi/yardclient/internal/verify"
)

// AuthService は認証サービスのインターフェース。
type AuthService interface {
	Signup(ctx context.Context, req model.UserRegistration) (bool, error)
	Signin(ctx context.Context, req model.UserLogin) (bool, error)
	Signout(ctx context.Context) error
}

// UserInfoService は現在のユーザー取得のインターフェース。
type UserInfoService interface {
	Info(ctx context.Context) (*model.User, error)
}

// AuthStore はセッションの認証状態を保持する。
// 認証状態はログイン・登録のレスポンス本文から直接設定せず、
// 常に /user/info への再問い合わせの結果から導出する。
type AuthStore struct {
	authService AuthService
	userService UserInfoService
	logger      *slog.Logger

	mu       sync.Mutex
	isAuth   bool
	userData *model.User
}

// NewAuthStore はAuthStoreの新しいインスタンスを生成する。
func NewAuthStore(authService AuthService, userService UserInfoService, logger *slog.Logger) *AuthStore {
	return &AuthStore{
		authService: authService,
		userService: userService,
		logger:      logger,
	}
}

// CheckIfAuth は現在のユーザーを問い合わせ、非nilのユーザーが返った場合のみ
// 認証済みとしてユーザーを保持しtrueを返す。失敗（未認証を含む）の場合は
// 認証状態とユーザーをクリアしてfalseを返す。
func (s *AuthStore) CheckIfAuth(ctx context.Context) bool {
	u, err := s.userService.Info(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil || u == nil {
		if err != nil && !errors.Is(err, model.ErrUnauthenticated) {
			s.logger.Warn("認証状態の確認に失敗しました", slog.String("error", err.Error()))
		}
		s.isAuth = false
		s.userData = nil
		return false
	}
	s.isAuth = true
	s.userData = u
	return true
}

// Login はログインする。バックエンドが真を返した場合のみCheckIfAuthを
// 再実行してセッションを確立する。入力が不正な場合はリクエストを送らない。
func (s *AuthStore) Login(ctx context.Context, req model.UserLogin) bool {
	if !verify.Email(req.Email) || !verify.NotEmpty(req.Password) {
		return false
	}
	ok, err := s.authService.Signin(ctx, req)
	if err != nil {
		s.logger.Warn("ログインに失敗しました", slog.String("error", err.Error()))
		return false
	}
	if !ok {
		return false
	}
	return s.CheckIfAuth(ctx)
}

// Signup は新規ユーザーを登録する。バックエンドが真を返した場合のみ
// CheckIfAuthを再実行してセッションを確立する。入力が不正な場合はリクエストを送らない。
func (s *AuthStore) Signup(ctx context.Context, req model.UserRegistration) bool {
	if !verify.Email(req.Email) || !verify.NotEmpty(req.Password) ||
		!verify.LettersOnly(req.Name) || !verify.LettersOnly(req.Surname) {
		return false
	}
	ok, err := s.authService.Signup(ctx, req)
	if err != nil {
		s.logger.Warn("ユーザー登録に失敗しました", slog.String("error", err.Error()))
		return false
	}
	if !ok {
		return false
	}
	return s.CheckIfAuth(ctx)
}

// Logout はログアウトを試み、結果に関わらずローカルのセッション状態をクリアする。
func (s *AuthStore) Logout(ctx context.Context) {
	if err := s.authService.Signout(ctx); err != nil {
		s.logger.Warn("ログアウトリクエストに失敗しました", slog.String("error", err.Error()))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isAuth = false
	s.userData = nil
}

// IsAuth は認証済みかどうかを返す。
func (s *AuthStore) IsAuth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAuth
}

// UserData は保持中のユーザーを返す。未認証の場合はnil。
func (s *AuthStore) UserData() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userData == nil {
		return nil
	}
	cp := *s.userData
	return &cp
}
