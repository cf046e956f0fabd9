package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hitoshi/yardclient/internal/model"
)

// BidService は入札サービスのインターフェース。
type BidService interface {
	Place(ctx context.Context, req model.PlaceBid) error
	ItemsWithUserBids(ctx context.Context, req model.UserBidItemsRequest) ([]model.UserBidItemsResponse, error)
	BidsOnItemByUser(ctx context.Context, req model.BidOnItemByUserRequest) ([]model.BidOnItemByUserResponse, error)
	UsersWithBidOnUserItem(ctx context.Context, req model.UsersWithBidOnUserItemRequest) ([]model.UsersWithBidOnUserItemResponse, error)
	BidsFromUsersOnUserItem(ctx context.Context, req model.BidsFromUsersOnUserItemRequest) ([]model.BidsFromUsersOnUserItemResponse, error)
	Answer(ctx context.Context, req model.AnswerBidRequest) error
}

// defaultMaxConcurrentBidFetch はアイテムごとの入札取得の同時実行数の既定値。
const defaultMaxConcurrentBidFetch = 5

// BidStore は入札の集約状態を保持する。
// アイテムごとの入札取得はセマフォで同時実行数を制限しつつ並行に行い、
// 一部のエントリの失敗は集約全体を失敗させずスキップする。
type BidStore struct {
	service       BidService
	logger        *slog.Logger
	maxConcurrent int

	mu            sync.Mutex
	itemsWithBids []model.ItemWithBids
	usersWithBids []model.UserWithBids
}

// NewBidStore はBidStoreの新しいインスタンスを生成する。
// maxConcurrentが0以下の場合は既定値を使う。
func NewBidStore(service BidService, logger *slog.Logger, maxConcurrent int) *BidStore {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentBidFetch
	}
	return &BidStore{
		service:       service,
		logger:        logger,
		maxConcurrent: maxConcurrent,
	}
}

// GiveBidOnItem はアイテムに入札する。成功時は1、入力不正または失敗時は0を返す。
func (s *BidStore) GiveBidOnItem(ctx context.Context, itemID int64, askingPrice int) int {
	if itemID == 0 || askingPrice <= 0 {
		return 0
	}
	if err := s.service.Place(ctx, model.PlaceBid{ItemID: itemID, AskingPrice: askingPrice}); err != nil {
		s.logger.Warn("入札に失敗しました",
			slog.Int64("item_id", itemID),
			slog.String("error", err.Error()),
		)
		return 0
	}
	return 1
}

// GetUsersBidOnItem は特定アイテムに対する特定ユーザーの入札一覧を取得する。
// 入力不正または失敗時はゼロ値エントリ1件のセンチネルを返す。
func (s *BidStore) GetUsersBidOnItem(ctx context.Context, req model.BidOnItemByUserRequest) []model.BidOnItemByUserResponse {
	if req.ItemID == 0 || req.UserID == 0 {
		return []model.BidOnItemByUserResponse{{}}
	}
	bids, err := s.service.BidsOnItemByUser(ctx, req)
	if err != nil {
		s.logger.Warn("入札一覧の取得に失敗しました",
			slog.Int64("item_id", req.ItemID),
			slog.String("error", err.Error()),
		)
		return []model.BidOnItemByUserResponse{{}}
	}
	return bids
}

// FetchItemsWithBids は自分が入札したアイテムごとの入札履歴の集約を組み立てる。
// まず(アイテム, 出品者)の組の一覧を取得し、組ごとの入札詳細を並行に取得する。
// itemIDまたはuserIDが欠けたエントリと取得に失敗したエントリはスキップし、
// 残りで集約を構成する。一覧の取得自体に失敗した場合は空の集約とする。
func (s *BidStore) FetchItemsWithBids(ctx context.Context, req model.UserBidItemsRequest) {
	pairs, err := s.service.ItemsWithUserBids(ctx, req)
	if err != nil {
		s.logger.Warn("入札済みアイテム一覧の取得に失敗しました", slog.String("error", err.Error()))
		s.mu.Lock()
		s.itemsWithBids = []model.ItemWithBids{}
		s.mu.Unlock()
		return
	}

	results := make([]*model.ItemWithBids, len(pairs))
	sem := make(chan struct{}, s.maxConcurrent)
	var wg sync.WaitGroup
	var failed int64

	for i, pair := range pairs {
		if pair.ItemID == 0 || pair.UserID == 0 {
			continue
		}
		wg.Add(1)
		go func(i int, pair model.UserBidItemsResponse) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			bids, err := s.service.BidsOnItemByUser(ctx, model.BidOnItemByUserRequest{
				ItemID: pair.ItemID,
				UserID: pair.UserID,
			})
			if err != nil {
				s.logger.Warn("アイテムの入札詳細の取得に失敗しました",
					slog.Int64("item_id", pair.ItemID),
					slog.String("error", err.Error()),
				)
				s.mu.Lock()
				failed++
				s.mu.Unlock()
				return
			}
			results[i] = &model.ItemWithBids{Item: pair, Bids: bids}
		}(i, pair)
	}
	wg.Wait()

	assembled := make([]model.ItemWithBids, 0, len(pairs))
	for _, r := range results {
		if r != nil {
			assembled = append(assembled, *r)
		}
	}
	if failed > 0 {
		s.logger.Warn("一部のアイテムの入札詳細を取得できませんでした",
			slog.Int64("failed", failed),
			slog.Int("total", len(pairs)),
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemsWithBids = assembled
}

// FetchUsersWithBids は自分の出品に入札したユーザーごとの入札履歴の集約を組み立てる。
// 組み立て方はFetchItemsWithBidsと同じ。
func (s *BidStore) FetchUsersWithBids(ctx context.Context, req model.UsersWithBidOnUserItemRequest) {
	pairs, err := s.service.UsersWithBidOnUserItem(ctx, req)
	if err != nil {
		s.logger.Warn("入札者一覧の取得に失敗しました", slog.String("error", err.Error()))
		s.mu.Lock()
		s.usersWithBids = []model.UserWithBids{}
		s.mu.Unlock()
		return
	}

	results := make([]*model.UserWithBids, len(pairs))
	sem := make(chan struct{}, s.maxConcurrent)
	var wg sync.WaitGroup
	var failed int64

	for i, pair := range pairs {
		if pair.ItemID == 0 || pair.UserID == 0 {
			continue
		}
		wg.Add(1)
		go func(i int, pair model.UsersWithBidOnUserItemResponse) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			bids, err := s.service.BidsFromUsersOnUserItem(ctx, model.BidsFromUsersOnUserItemRequest{
				ItemID: pair.ItemID,
				UserID: pair.UserID,
			})
			if err != nil {
				s.logger.Warn("入札者の入札詳細の取得に失敗しました",
					slog.Int64("item_id", pair.ItemID),
					slog.Int64("user_id", pair.UserID),
					slog.String("error", err.Error()),
				)
				s.mu.Lock()
				failed++
				s.mu.Unlock()
				return
			}
			results[i] = &model.UserWithBids{User: pair, Bids: bids}
		}(i, pair)
	}
	wg.Wait()

	assembled := make([]model.UserWithBids, 0, len(pairs))
	for _, r := range results {
		if r != nil {
			assembled = append(assembled, *r)
		}
	}
	if failed > 0 {
		s.logger.Warn("一部の入札者の入札詳細を取得できませんでした",
			slog.Int64("failed", failed),
			slog.Int("total", len(pairs)),
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersWithBids = assembled
}

// AnswerBid は自分の出品への入札に応答する。
func (s *BidStore) AnswerBid(ctx context.Context, req model.AnswerBidRequest) bool {
	if err := s.service.Answer(ctx, req); err != nil {
		s.logger.Warn("入札への応答に失敗しました",
			slog.Int64("bid_id", req.BidID),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

// ItemsWithBids は保持中の集約のコピーを返す。
func (s *BidStore) ItemsWithBids() []model.ItemWithBids {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ItemWithBids, len(s.itemsWithBids))
	copy(out, s.itemsWithBids)
	return out
}

// UsersWithBids は保持中の集約のコピーを返す。
func (s *BidStore) UsersWithBids() []model.UserWithBids {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.UserWithBids, len(s.usersWithBids))
	copy(out, s.usersWithBids)
	return out
}
