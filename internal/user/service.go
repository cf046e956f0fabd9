// Package user はユーザープロフィール・自分の出品・ブックマークの操作を提供する。
package user

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

// Service はユーザー関連エンドポイントのサービス。
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

// Info は現在ログイン中のユーザー情報を取得する。
// 未認証の場合はmodel.ErrUnauthenticatedを返す（エラーではなく正常な結果として扱う）。
func (s *Service) Info(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := s.client.GetJSON(ctx, "/user/info", &u); err != nil {
		return nil, fmt.Errorf("ユーザー情報の取得に失敗しました: %w", err)
	}
	return &u, nil
}

// UpdateInfo はユーザー情報を更新する。
func (s *Service) UpdateInfo(ctx context.Context, u model.User) error {
	if err := s.client.PostJSON(ctx, "/user/info", u, nil); err != nil {
		return fmt.Errorf("ユーザー情報の更新に失敗しました: %w", err)
	}
	return nil
}

// Items は自分の出品アイテム一覧を取得する。
func (s *Service) Items(ctx context.Context) (*model.ItemsResponse, error) {
	var resp model.ItemsResponse
	if err := s.client.GetJSON(ctx, "/user/item", &resp); err != nil {
		return nil, fmt.Errorf("出品アイテム一覧の取得に失敗しました: %w", err)
	}
	s.sanitizeDescriptions(resp.Items)
	return &resp, nil
}

// AddItem は新しいアイテムを出品する。
func (s *Service) AddItem(ctx context.Context, req model.AddItemRequest) error {
	if err := s.client.PostJSON(ctx, "/user/item", req, nil); err != nil {
		s.logger.Warn("アイテムの出品に失敗しました", slog.String("error", err.Error()))
		return fmt.Errorf("アイテムの出品に失敗しました: %w", err)
	}
	return nil
}

// ItemDetail は自分の出品アイテムの詳細を取得する。
func (s *Service) ItemDetail(ctx context.Context, req model.ItemRequest) (*model.Item, error) {
	var resp model.Item
	if err := s.client.PostJSON(ctx, "/user/item/store", req, &resp); err != nil {
		return nil, fmt.Errorf("出品アイテム詳細の取得に失敗しました: %w", err)
	}
	resp.Description = s.sanitizer.Sanitize(resp.Description)
	return &resp, nil
}

// EditItem は自分の出品アイテムを編集する。
func (s *Service) EditItem(ctx context.Context, req model.EditItemRequest) error {
	if err := s.client.PostJSON(ctx, "/user/item/edit", req, nil); err != nil {
		s.logger.Warn("アイテムの編集に失敗しました",
			slog.Int64("item_id", req.ItemID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("アイテムの編集に失敗しました: %w", err)
	}
	return nil
}

// DeleteItem は自分の出品アイテムを削除する。
func (s *Service) DeleteItem(ctx context.Context, req model.DeleteItemRequest) error {
	if err := s.client.PostJSON(ctx, "/user/item/delete", req, nil); err != nil {
		s.logger.Warn("アイテムの削除に失敗しました",
			slog.Int64("item_id", req.ItemID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("アイテムの削除に失敗しました: %w", err)
	}
	return nil
}

// ToggleBookmark はアイテムのブックマーク状態をトグルする。
func (s *Service) ToggleBookmark(ctx context.Context, req model.ToggleBookmarkRequest) error {
	if err := s.client.PostJSON(ctx, "/user/item/bookmark", req, nil); err != nil {
		return fmt.Errorf("ブックマークの切り替えに失敗しました: %w", err)
	}
	return nil
}

// BookmarkedItems はブックマーク済みアイテムをページネーション付きで取得する。
func (s *Service) BookmarkedItems(ctx context.Context, req model.GetBookmarkedItemsRequest) ([]model.Item, error) {
	var items []model.Item
	if err := s.client.PostJSON(ctx, "/user/item/bookmark/get", req, &items); err != nil {
		return nil, fmt.Errorf("ブックマーク済みアイテムの取得に失敗しました: %w", err)
	}
	s.sanitizeDescriptions(items)
	return items, nil
}

// sanitizeDescriptions はアイテム説明文をインプレースでサニタイズする。
func (s *Service) sanitizeDescriptions(items []model.Item) {
	for i := range items {
		items[i].Description = s.sanitizer.Sanitize(items[i].Description)
	}
}
