// Package auth は認証トークンエンドポイントの操作を提供する。
// セッション自体はCookieで維持され、クライアントはトークンを直接保持しない。
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/yardclient/internal/model"
)

// HTTPClient はバックエンドAPIクライアントのインターフェース。
type HTTPClient interface {
	PostJSON(ctx context.Context, path string, in, out any) error
}

// Service は認証エンドポイントのサービス。
type Service struct {
	client HTTPClient
	logger *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(client HTTPClient, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Signup は新規ユーザーを登録する。バックエンドの真偽値レスポンスをそのまま返す。
func (s *Service) Signup(ctx context.Context, req model.UserRegistration) (bool, error) {
	var ok bool
	if err := s.client.PostJSON(ctx, "/token/signup", req, &ok); err != nil {
		return false, fmt.Errorf("ユーザー登録に失敗しました: %w", err)
	}
	return ok, nil
}

// Signin はログインする。成功するとセッションCookieがクライアントのjarに保存される。
func (s *Service) Signin(ctx context.Context, req model.UserLogin) (bool, error) {
	var ok bool
	if err := s.client.PostJSON(ctx, "/token/signin", req, &ok); err != nil {
		return false, fmt.Errorf("ログインに失敗しました: %w", err)
	}
	return ok, nil
}

// Signout はログアウトする。呼び出し元はこの結果に関わらずローカル状態を破棄する。
func (s *Service) Signout(ctx context.Context) error {
	if err := s.client.PostJSON(ctx, "/token/logout", nil, nil); err != nil {
		s.logger.Warn("ログアウトリクエストに失敗しました",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("ログアウトに失敗しました: %w", err)
	}
	return nil
}
