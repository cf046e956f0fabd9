// Package chat はアイテムを巡る買い手・売り手間のメッセージング機能を提供する。
package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/yardclient/internal/model"
)

// HTTPClient はバックエンドAPIクライアントのインターフェース。
type HTTPClient interface {
	GetJSON(ctx context.Context, path string, out any) error
	PostJSON(ctx context.Context, path string, in, out any) error
}

// Sanitizer はメッセージ本文のサニタイズ機能のインターフェース。
type Sanitizer interface {
	Sanitize(raw string) string
}

// Service はチャットエンドポイントのサービス。
// バックエンドから受け取ったメッセージ本文はストアへ渡す前にサニタイズする。
type Service struct {
	client    HTTPClient
	sanitizer Sanitizer
	logger    *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(client HTTPClient, sanitizer Sanitizer, logger *slog.Logger) *Service {
	return &Service{
		client:    client,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// Chats は自分が参加している全チャットを取得する。
func (s *Service) Chats(ctx context.Context) ([]model.Chat, error) {
	var chats []model.Chat
	if err := s.client.GetJSON(ctx, "/user/chat", &chats); err != nil {
		return nil, fmt.Errorf("チャット一覧の取得に失敗しました: %w", err)
	}
	for i := range chats {
		s.sanitizeMessages(chats[i].Messages)
	}
	return chats, nil
}

// Chat はアイテムと相手方ユーザーの組で特定されるチャットを取得する。
func (s *Service) Chat(ctx context.Context, req model.ChatRequest) (*model.Chat, error) {
	var c model.Chat
	if err := s.client.PostJSON(ctx, "/user/chat/get", req, &c); err != nil {
		return nil, fmt.Errorf("チャットの取得に失敗しました: %w", err)
	}
	s.sanitizeMessages(c.Messages)
	return &c, nil
}

// SendMessage はチャットにメッセージを送信する。
func (s *Service) SendMessage(ctx context.Context, req model.SendMessageRequest) error {
	if err := s.client.PostJSON(ctx, "/user/chat/message", req, nil); err != nil {
		s.logger.Warn("メッセージの送信に失敗しました",
			slog.Int64("item_id", req.ItemID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("メッセージの送信に失敗しました: %w", err)
	}
	return nil
}

// sanitizeMessages はメッセージ本文をインプレースでサニタイズする。
func (s *Service) sanitizeMessages(messages []model.Message) {
	for i := range messages {
		messages[i].Message = s.sanitizer.Sanitize(messages[i].Message)
	}
}
