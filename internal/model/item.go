// Package model はドメインモデルとバックエンドAPIのDTOを定義する。
package model

// ItemState は出品アイテムのライフサイクル状態。
type ItemState string

const (
	// ItemStateAvailable は出品中の状態。
	ItemStateAvailable ItemState = "available"
	// ItemStateReserved は取引予約中の状態。
	ItemStateReserved ItemState = "reserved"
	// ItemStateSold は売却済みの状態。
	ItemStateSold ItemState = "sold"
	// ItemStateArchived はアーカイブ済みの状態。
	ItemStateArchived ItemState = "archived"
)

// Item は出品アイテムを表す。
// クライアントはフェッチ時に生成される一時的なプロジェクションのみを保持し、
// 永続化は一切行わない。publishedは日付文字列のままバックエンドから受け取る。
type Item struct {
	ItemID      int64  `json:"itemID"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Seller      string `json:"seller"`
	Description string `json:"description"`
	Published   string `json:"published"`
	Price       int    `json:"price"`
	State       string `json:"state"`
	ImageURL    string `json:"imageURL,omitempty"`
}

// ItemsRequest は /store/item/filter への検索・フィルタリクエスト。
// 各フィールドはnull許容。欠損フィールドのデフォルト補完は
// item.NormalizeItemsRequest が送信前に行う。
type ItemsRequest struct {
	Category   *string `json:"category"`
	SearchWord *string `json:"searchWord"`
	// PriceMinMax は [min, max] の価格範囲。スライス自体がnilの場合は
	// 価格フィルタなし、要素がnilの場合はその側の境界のみ未指定。
	PriceMinMax []*int  `json:"priceMinMax"`
	Sort        *string `json:"sort"`
	// SegmentOffset は [offset, limit] のページネーション指定。
	SegmentOffset []int `json:"segmentOffset"`
}

// ItemRequest はアイテムIDによる詳細取得リクエスト。
type ItemRequest struct {
	ItemID int64 `json:"itemID"`
}

// ItemsResponse はアイテム一覧レスポンス。
type ItemsResponse struct {
	Items []Item `json:"items"`
}

// CategoriesResponse はカテゴリ一覧レスポンス。
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// AddItemRequest は新規出品リクエスト。
type AddItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Category    string `json:"category"`
}

// EditItemRequest は自分の出品アイテムの編集リクエスト。
type EditItemRequest struct {
	ItemID      int64  `json:"itemID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Category    string `json:"category"`
}

// DeleteItemRequest は自分の出品アイテムの削除リクエスト。
type DeleteItemRequest struct {
	ItemID int64 `json:"itemID"`
}

// ToggleBookmarkRequest はブックマークのトグルリクエスト。
type ToggleBookmarkRequest struct {
	ItemID int64 `json:"itemID"`
}

// GetBookmarkedItemsRequest はブックマーク済みアイテムの取得リクエスト。
type GetBookmarkedItemsRequest struct {
	SegmentOffset []int `json:"segmentOffset"`
}
