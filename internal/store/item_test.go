package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/hitoshi/yardclient/internal/model"
)

type fakeItemService struct {
	itemsFunc      func(req model.ItemsRequest) (*model.ItemsResponse, error)
	categoriesFunc func() (*model.CategoriesResponse, error)
	detailFunc     func(req model.ItemRequest) (*model.Item, error)
	lastRequest    model.ItemsRequest
}

func (f *fakeItemService) Items(ctx context.Context, req model.ItemsRequest) (*model.ItemsResponse, error) {
	f.lastRequest = req
	if f.itemsFunc != nil {
		return f.itemsFunc(req)
	}
	return &model.ItemsResponse{}, nil
}

func (f *fakeItemService) Categories(ctx context.Context) (*model.CategoriesResponse, error) {
	if f.categoriesFunc != nil {
		return f.categoriesFunc()
	}
	return &model.CategoriesResponse{}, nil
}

func (f *fakeItemService) ItemDetail(ctx context.Context, req model.ItemRequest) (*model.Item, error) {
	if f.detailFunc != nil {
		return f.detailFunc(req)
	}
	return &model.Item{}, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
}

func TestItemStore_FetchItems_ReplacesList(t *testing.T) {
	svc := &fakeItemService{
		itemsFunc: func(req model.ItemsRequest) (*model.ItemsResponse, error) {
			return &model.ItemsResponse{Items: []model.Item{{ItemID: 1}, {ItemID: 2}}}, nil
		},
	}
	s := NewItemStore(svc, nil, newTestLogger())

	s.FetchItems(context.Background(), model.ItemsRequest{})

	if got := len(s.Items()); got != 2 {
		t.Errorf("アイテム数 = %d, want 2", got)
	}
	if s.ItemsError() != "" {
		t.Errorf("エラー = %q, want 空", s.ItemsError())
	}
	if s.IsItemsLoading() {
		t.Error("取得完了後はローディングフラグがfalseであるべき")
	}

	// 2回目の取得は一覧を置き換える（追記しない）
	svc.itemsFunc = func(req model.ItemsRequest) (*model.ItemsResponse, error) {
		return &model.ItemsResponse{Items: []model.Item{{ItemID: 3}}}, nil
	}
	s.FetchItems(context.Background(), model.ItemsRequest{})

	items := s.Items()
	if len(items) != 1 || items[0].ItemID != 3 {
		t.Errorf("2回目の取得は一覧を置き換えるべき: %v", items)
	}
}

func TestItemStore_FetchItems_FailurePreservesPriorList(t *testing.T) {
	svc := &fakeItemService{
		itemsFunc: func(req model.ItemsRequest) (*model.ItemsResponse, error) {
			return &model.ItemsResponse{Items: []model.Item{{ItemID: 1}}}, nil
		},
	}
	s := NewItemStore(svc, nil, newTestLogger())
	s.FetchItems(context.Background(), model.ItemsRequest{})

	// 2回目は失敗させる
	svc.itemsFunc = func(req model.ItemsRequest) (*model.ItemsResponse, error) {
		return nil, errors.New("network down")
	}
	s.FetchItems(context.Background(), model.ItemsRequest{})

	items := s.Items()
	if len(items) != 1 || items[0].ItemID != 1 {
		t.Errorf("失敗時は直前の一覧が保持されるべき: %v", items)
	}
	if s.ItemsError() != "Failed to fetch items." {
		t.Errorf("エラー = %q, want \"Failed to fetch items.\"", s.ItemsError())
	}
	if s.IsItemsLoading() {
		t.Error("失敗パスでもローディングフラグがfalseであるべき")
	}
}

func TestItemStore_FetchItems_NormalizesRequest(t *testing.T) {
	svc := &fakeItemService{}
	s := NewItemStore(svc, nil, newTestLogger())

	min := 100
	s.FetchItems(context.Background(), model.ItemsRequest{
		PriceMinMax: []*int{&min, nil},
	})

	sent := svc.lastRequest
	if len(sent.SegmentOffset) != 2 || sent.SegmentOffset[0] != 0 || sent.SegmentOffset[1] != 10 {
		t.Errorf("SegmentOffset = %v, want [0 10]", sent.SegmentOffset)
	}
	if *sent.PriceMinMax[0] != 100 || *sent.PriceMinMax[1] != 2147483647 {
		t.Errorf("PriceMinMax = [%d %d], want [100 2147483647]", *sent.PriceMinMax[0], *sent.PriceMinMax[1])
	}
}

func TestItemStore_LoadMoreItems_EmptyListYieldsN(t *testing.T) {
	svc := &fakeItemService{
		itemsFunc: func(req model.ItemsRequest) (*model.ItemsResponse, error) {
			return &model.ItemsResponse{Items: []model.Item{{ItemID: 1}, {ItemID: 2}, {ItemID: 3}}}, nil
		},
	}
	s := NewItemStore(svc, nil, newTestLogger())

	s.LoadMoreItems(context.Background(), model.ItemsRequest{})

	if got := len(s.Items()); got != 3 {
		t.Errorf("アイテム数 = %d, want 3", got)
	}
	if s.NewItemsCount() != 3 {
		t.Errorf("newItemsCount = %d, want 3", s.NewItemsCount())
	}
}

func TestItemStore_LoadMoreItems_AppendsPreservingOrder(t *testing.T) {
	svc := &fakeItemService{
		itemsFunc: func(req model.ItemsRequest) (*model.ItemsResponse, error) {
			return &model.ItemsResponse{Items: []model.Item{{ItemID: 1}, {ItemID: 2}}}, nil
		},
	}
	s := NewItemStore(svc, nil, newTestLogger())
	s.FetchItems(context.Background(), model.ItemsRequest{})

	svc.itemsFunc = func(req model.ItemsRequest) (*model.ItemsResponse, error) {
		return &model.ItemsResponse{Items: []model.Item{{ItemID: 3}, {ItemID: 4}}}, nil
	}
	s.LoadMoreItems(context.Background(), model.ItemsRequest{})

	items := s.Items()
	if len(items) != 4 {
		t.Fatalf("アイテム数 = %d, want 4", len(items))
	}
	// 既存エントリの順序が先頭に保持されていること
	for i, want := range []int64{1, 2, 3, 4} {
		if items[i].ItemID != want {
			t.Errorf("items[%d].ItemID = %d, want %d", i, items[i].ItemID, want)
		}
	}
	if s.NewItemsCount() != 2 {
		t.Errorf("newItemsCount = %d, want 2", s.NewItemsCount())
	}
}

func TestItemStore_LoadMoreItems_FailurePreservesList(t *testing.T) {
	svc := &fakeItemService{
		itemsFunc: func(req model.ItemsRequest) (*model.ItemsResponse, error) {
			return &model.ItemsResponse{Items: []model.Item{{ItemID: 1}}}, nil
		},
	}
	s := NewItemStore(svc, nil, newTestLogger())
	s.FetchItems(context.Background(), model.ItemsRequest{})

	svc.itemsFunc = func(req model.ItemsRequest) (*model.ItemsResponse, error) {
		return nil, errors.New("boom")
	}
	s.LoadMoreItems(context.Background(), model.ItemsRequest{})

	if got := len(s.Items()); got != 1 {
		t.Errorf("失敗時は一覧が変更されないべき: %d件", got)
	}
	if s.MoreItemsError() != "Failed to load more items." {
		t.Errorf("エラー = %q, want \"Failed to load more items.\"", s.MoreItemsError())
	}
	if s.IsLoadingMore() {
		t.Error("失敗パスでもローディングフラグがfalseであるべき")
	}
}

func TestItemStore_FetchCategories(t *testing.T) {
	svc := &fakeItemService{
		categoriesFunc: func() (*model.CategoriesResponse, error) {
			return &model.CategoriesResponse{Categories: []string{"家具", "本"}}, nil
		},
	}
	s := NewItemStore(svc, nil, newTestLogger())

	s.FetchCategories(context.Background())

	if got := len(s.Categories()); got != 2 {
		t.Errorf("カテゴリ数 = %d, want 2", got)
	}
	if s.CategoriesError() != "" {
		t.Errorf("エラー = %q, want 空", s.CategoriesError())
	}
}

func TestItemStore_FetchCategories_Failure(t *testing.T) {
	svc := &fakeItemService{
		categoriesFunc: func() (*model.CategoriesResponse, error) {
			return nil, errors.New("boom")
		},
	}
	s := NewItemStore(svc, nil, newTestLogger())

	s.FetchCategories(context.Background())

	if s.CategoriesError() != "Failed to fetch categories." {
		t.Errorf("エラー = %q, want \"Failed to fetch categories.\"", s.CategoriesError())
	}
	if s.IsCategoriesLoading() {
		t.Error("失敗パスでもローディングフラグがfalseであるべき")
	}
}

func TestItemStore_FetchItemDetails(t *testing.T) {
	svc := &fakeItemService{
		detailFunc: func(req model.ItemRequest) (*model.Item, error) {
			return &model.Item{ItemID: req.ItemID, Name: "机"}, nil
		},
	}
	s := NewItemStore(svc, nil, newTestLogger())

	s.FetchItemDetails(context.Background(), model.ItemRequest{ItemID: 42})

	detail := s.Item()
	if detail == nil || detail.ItemID != 42 || detail.Name != "机" {
		t.Errorf("Item = %+v, want itemID=42 name=机", detail)
	}
}

func TestItemStore_FetchItemDetails_Failure(t *testing.T) {
	svc := &fakeItemService{
		detailFunc: func(req model.ItemRequest) (*model.Item, error) {
			return nil, errors.New("boom")
		},
	}
	s := NewItemStore(svc, nil, newTestLogger())

	s.FetchItemDetails(context.Background(), model.ItemRequest{ItemID: 1})

	if s.ItemError() != "Failed to fetch item." {
		t.Errorf("エラー = %q, want \"Failed to fetch item.\"", s.ItemError())
	}
	if s.Item() != nil {
		t.Error("失敗時は詳細が設定されないべき")
	}
	if s.IsItemLoading() {
		t.Error("失敗パスでもローディングフラグがfalseであるべき")
	}
}

type fakeItemsMetrics struct {
	total int
}

func (f *fakeItemsMetrics) RecordItemsFetched(count int) {
	f.total += count
}

func TestItemStore_RecordsFetchedItems(t *testing.T) {
	svc := &fakeItemService{
		itemsFunc: func(req model.ItemsRequest) (*model.ItemsResponse, error) {
			return &model.ItemsResponse{Items: []model.Item{{ItemID: 1}, {ItemID: 2}}}, nil
		},
	}
	m := &fakeItemsMetrics{}
	s := NewItemStore(svc, m, newTestLogger())

	s.FetchItems(context.Background(), model.ItemsRequest{})
	s.LoadMoreItems(context.Background(), model.ItemsRequest{})

	if m.total != 4 {
		t.Errorf("記録されたアイテム数 = %d, want 4", m.total)
	}
}

func TestItemStore_SuccessClearsPreviousError(t *testing.T) {
	svc := &fakeItemService{
		itemsFunc: func(req model.ItemsRequest) (*model.ItemsResponse, error) {
			return nil, errors.New("boom")
		},
	}
	s := NewItemStore(svc, nil, newTestLogger())
	s.FetchItems(context.Background(), model.ItemsRequest{})

	svc.itemsFunc = func(req model.ItemsRequest) (*model.ItemsResponse, error) {
		return &model.ItemsResponse{Items: []model.Item{{ItemID: 1}}}, nil
	}
	s.FetchItems(context.Background(), model.ItemsRequest{})

	if s.ItemsError() != "" {
		t.Errorf("成功時は以前のエラーがクリアされるべき: %q", s.ItemsError())
	}
}
