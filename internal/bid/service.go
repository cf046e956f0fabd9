// Package bid は入札関連エンドポイントの操作を提供する。
package bid

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

// Service は入札エンドポイントのサービス。
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

// Place はアイテムに入札する。
func (s *Service) Place(ctx context.Context, req model.PlaceBid) error {
	if err := s.client.PostJSON(ctx, "/user/item/bid/place", req, nil); err != nil {
		s.logger.Warn("入札に失敗しました",
			slog.Int64("item_id", req.ItemID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("入札に失敗しました: %w", err)
	}
	return nil
}

// ItemsWithUserBids は自分が入札したアイテムと出品者の組の一覧を取得する。
func (s *Service) ItemsWithUserBids(ctx context.Context, req model.UserBidItemsRequest) ([]model.UserBidItemsResponse, error) {
	var resp []model.UserBidItemsResponse
	if err := s.client.PostJSON(ctx, "/user/item/bids", req, &resp); err != nil {
		return nil, fmt.Errorf("入札済みアイテム一覧の取得に失敗しました: %w", err)
	}
	return resp, nil
}

// BidsOnItemByUser は特定アイテムに対する特定ユーザーの入札一覧を取得する。
func (s *Service) BidsOnItemByUser(ctx context.Context, req model.BidOnItemByUserRequest) ([]model.BidOnItemByUserResponse, error) {
	var resp []model.BidOnItemByUserResponse
	if err := s.client.PostJSON(ctx, "/user/item/bid/", req, &resp); err != nil {
		return nil, fmt.Errorf("入札一覧の取得に失敗しました: %w", err)
	}
	return resp, nil
}

// UsersWithBidOnUserItem は自分の出品に入札したユーザーの一覧を取得する。
func (s *Service) UsersWithBidOnUserItem(ctx context.Context, req model.UsersWithBidOnUserItemRequest) ([]model.UsersWithBidOnUserItemResponse, error) {
	var resp []model.UsersWithBidOnUserItemResponse
	if err := s.client.PostJSON(ctx, "/user/item/bid/users", req, &resp); err != nil {
		return nil, fmt.Errorf("入札者一覧の取得に失敗しました: %w", err)
	}
	return resp, nil
}

// BidsFromUsersOnUserItem は自分の出品に対する特定ユーザーの入札一覧を取得する。
func (s *Service) BidsFromUsersOnUserItem(ctx context.Context, req model.BidsFromUsersOnUserItemRequest) ([]model.BidsFromUsersOnUserItemResponse, error) {
	var resp []model.BidsFromUsersOnUserItemResponse
	if err := s.client.PostJSON(ctx, "/user/item/bid/users", req, &resp); err != nil {
		return nil, fmt.Errorf("出品への入札一覧の取得に失敗しました: %w", err)
	}
	return resp, nil
}

// Answer は自分の出品への入札に承諾または拒否で応答する。
func (s *Service) Answer(ctx context.Context, req model.AnswerBidRequest) error {
	if err := s.client.PostJSON(ctx, "/user/item/bid/answer", req, nil); err != nil {
		s.logger.Warn("入札への応答に失敗しました",
			slog.Int64("bid_id", req.BidID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("入札への応答に失敗しました: %w", err)
	}
	return nil
}
