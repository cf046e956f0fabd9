// Package item は公開アイテムの検索・取得機能を提供する。
package item

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

// Sanitizer はアイテム説明文のサニタイズ機能のインターフェース。
type Sanitizer interface {
	Sanitize(raw string) string
}

// Service は公開アイテムの検索・カテゴリ取得・詳細取得のサービス。
// バックエンドから受け取ったアイテム説明文はストアへ渡す前にサニタイズする。
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

// Items はフィルタ・ページネーション付きのアイテム検索を行う。
// リクエストの正規化は呼び出し元（ストア）の責務であり、ここでは送信のみを行う。
func (s *Service) Items(ctx context.Context, req model.ItemsRequest) (*model.ItemsResponse, error) {
	var resp model.ItemsResponse
	if err := s.client.PostJSON(ctx, "/store/item/filter", req, &resp); err != nil {
		return nil, fmt.Errorf("アイテム検索に失敗しました: %w", err)
	}
	s.sanitizeDescriptions(resp.Items)
	return &resp, nil
}

// Categories はカテゴリ一覧を取得する。
func (s *Service) Categories(ctx context.Context) (*model.CategoriesResponse, error) {
	var resp model.CategoriesResponse
	if err := s.client.GetJSON(ctx, "/store/category", &resp); err != nil {
		return nil, fmt.Errorf("カテゴリ一覧の取得に失敗しました: %w", err)
	}
	return &resp, nil
}

// ItemDetail はアイテムIDから詳細を取得する。
func (s *Service) ItemDetail(ctx context.Context, req model.ItemRequest) (*model.Item, error) {
	var resp model.Item
	if err := s.client.PostJSON(ctx, "/store/item/get", req, &resp); err != nil {
		return nil, fmt.Errorf("アイテム詳細の取得に失敗しました: %w", err)
	}
	resp.Description = s.sanitizer.Sanitize(resp.Description)
	return &resp, nil
}

// Recommended はおすすめアイテム一覧を取得する。
// バックエンドが閲覧履歴に基づいて選定したアイテムを返す。
func (s *Service) Recommended(ctx context.Context) (*model.ItemsResponse, error) {
	var resp model.ItemsResponse
	if err := s.client.GetJSON(ctx, "/store/item/recommended", &resp); err != nil {
		s.logger.Warn("おすすめアイテムの取得に失敗しました",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("おすすめアイテムの取得に失敗しました: %w", err)
	}
	s.sanitizeDescriptions(resp.Items)
	return &resp, nil
}

// sanitizeDescriptions はアイテム説明文をインプレースでサニタイズする。
func (s *Service) sanitizeDescriptions(items []model.Item) {
	for i := range items {
		items[i].Description = s.sanitizer.Sanitize(items[i].Description)
	}
}
