// Package store はUI向けの状態コンテナを提供する。
// 各ストアはアプリケーションインスタンスごとに生成され、依存として注入される。
// 状態の読み書きはmutexで保護するが、遅延したレスポンスが新しい状態を
// 上書きする「最後のレスポンス勝ち」の性質はそのまま残る。
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hitoshi/yardclient/internal/item"
	"github.com/hitoshi/yardclient/internal/model"
)

// ストアがUIへ公開する固定エラーメッセージ。
const (
	errFetchItems      = "Failed to fetch items."
	errLoadMoreItems   = "Failed to load more items."
	errFetchCategories = "Failed to fetch categories."
	errFetchItem       = "Failed to fetch item."
	errUpdateItem      = "Failed to update item."
)

// ItemService は公開アイテムサービスのインターフェース。
type ItemService interface {
	Items(ctx context.Context, req model.ItemsRequest) (*model.ItemsResponse, error)
	Categories(ctx context.Context) (*model.CategoriesResponse, error)
	ItemDetail(ctx context.Context, req model.ItemRequest) (*model.Item, error)
}

// ItemsMetrics はアイテム取得件数のメトリクス記録インターフェース。
type ItemsMetrics interface {
	RecordItemsFetched(count int)
}

// ItemStore は検索結果・カテゴリ・アイテム詳細の状態を保持する。
type ItemStore struct {
	service ItemService
	metrics ItemsMetrics
	logger  *slog.Logger

	mu                  sync.Mutex
	items               []model.Item
	isItemsLoading      bool
	itemsError          string
	categories          []string
	isCategoriesLoading bool
	categoriesError     string
	isLoadingMore       bool
	moreItemsError      string
	newItemsCount       int
	item                *model.Item
	isItemLoading       bool
	itemError           string
}

// NewItemStore はItemStoreの新しいインスタンスを生成する。metricsはnil可。
func NewItemStore(service ItemService, metrics ItemsMetrics, logger *slog.Logger) *ItemStore {
	return &ItemStore{
		service: service,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchItems はフィルタ条件でアイテムを検索し、保持中の一覧を置き換える。
// 失敗時は固定エラー文字列を設定し、直前の一覧はそのまま保持する。
func (s *ItemStore) FetchItems(ctx context.Context, req model.ItemsRequest) {
	s.mu.Lock()
	s.isItemsLoading = true
	s.mu.Unlock()

	normalized := item.NormalizeItemsRequest(req)
	resp, err := s.service.Items(ctx, normalized)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isItemsLoading = false
	if err != nil {
		s.logger.Warn("アイテム検索に失敗しました", slog.String("error", err.Error()))
		s.itemsError = errFetchItems
		return
	}
	s.items = resp.Items
	s.itemsError = ""
	if s.metrics != nil {
		s.metrics.RecordItemsFetched(len(resp.Items))
	}
}

// LoadMoreItems は次のページを取得して既存の一覧に追記する。
// 新規に受信した件数をnewItemsCountに記録する。要求したページサイズより
// 少なければ呼び出し側はコレクションの末尾に達したと判断できる。
func (s *ItemStore) LoadMoreItems(ctx context.Context, req model.ItemsRequest) {
	s.mu.Lock()
	s.isLoadingMore = true
	s.mu.Unlock()

	normalized := item.NormalizeItemsRequest(req)
	resp, err := s.service.Items(ctx, normalized)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoadingMore = false
	if err != nil {
		s.logger.Warn("アイテムの追加取得に失敗しました", slog.String("error", err.Error()))
		s.moreItemsError = errLoadMoreItems
		return
	}
	s.items = append(s.items, resp.Items...)
	s.newItemsCount = len(resp.Items)
	s.moreItemsError = ""
	if s.metrics != nil {
		s.metrics.RecordItemsFetched(len(resp.Items))
	}
}

// FetchCategories はカテゴリ一覧を取得する。
func (s *ItemStore) FetchCategories(ctx context.Context) {
	s.mu.Lock()
	s.isCategoriesLoading = true
	s.mu.Unlock()

	resp, err := s.service.Categories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isCategoriesLoading = false
	if err != nil {
		s.logger.Warn("カテゴリ一覧の取得に失敗しました", slog.String("error", err.Error()))
		s.categoriesError = errFetchCategories
		return
	}
	s.categories = resp.Categories
	s.categoriesError = ""
}

// FetchItemDetails はアイテム詳細を取得する。
func (s *ItemStore) FetchItemDetails(ctx context.Context, req model.ItemRequest) {
	s.mu.Lock()
	s.isItemLoading = true
	s.mu.Unlock()

	detail, err := s.service.ItemDetail(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isItemLoading = false
	if err != nil {
		s.logger.Warn("アイテム詳細の取得に失敗しました", slog.String("error", err.Error()))
		s.itemError = errFetchItem
		return
	}
	s.item = detail
	s.itemError = ""
}

// Items は保持中のアイテム一覧のコピーを返す。
func (s *ItemStore) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Categories は保持中のカテゴリ一覧のコピーを返す。
func (s *ItemStore) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// Item は保持中のアイテム詳細を返す。未取得の場合はnil。
func (s *ItemStore) Item() *model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.item == nil {
		return nil
	}
	cp := *s.item
	return &cp
}

// NewItemsCount は直近のLoadMoreItemsで受信した件数を返す。
func (s *ItemStore) NewItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newItemsCount
}

// IsItemsLoading は一覧取得中かどうかを返す。
func (s *ItemStore) IsItemsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isItemsLoading
}

// IsLoadingMore は追加取得中かどうかを返す。
func (s *ItemStore) IsLoadingMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoadingMore
}

// IsCategoriesLoading はカテゴリ取得中かどうかを返す。
func (s *ItemStore) IsCategoriesLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isCategoriesLoading
}

// IsItemLoading は詳細取得中かどうかを返す。
func (s *ItemStore) IsItemLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isItemLoading
}

// ItemsError は一覧取得のエラーメッセージを返す。正常時は空文字列。
func (s *ItemStore) ItemsError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsError
}

// MoreItemsError は追加取得のエラーメッセージを返す。
func (s *ItemStore) MoreItemsError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moreItemsError
}

// CategoriesError はカテゴリ取得のエラーメッセージを返す。
func (s *ItemStore) CategoriesError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoriesError
}

// ItemError は詳細取得のエラーメッセージを返す。
func (s *ItemStore) ItemError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemError
}
