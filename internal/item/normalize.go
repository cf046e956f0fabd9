// Package item は公開アイテムの検索・取得機能を提供する。
package item

import "github.com/hitoshi/yardclient/internal/model"

const (
	// DefaultMinPrice は価格下限が未指定の場合のデフォルト値。
	DefaultMinPrice = 0
	// DefaultMaxPrice は価格上限が未指定の場合のデフォルト値（int32の最大値）。
	DefaultMaxPrice = 2147483647
	// DefaultSegmentSize はページネーション未指定時の1ページあたりの件数。
	DefaultSegmentSize = 10
)

// NormalizeItemsRequest は検索リクエストの欠損フィールドにデフォルト値を補完する。
// 入力は変更せず、新しいリクエストを返す純粋関数。
//   - PriceMinMaxがnilの場合はnilのまま残す（価格フィルタなしの解釈はバックエンドに委ねる）
//   - PriceMinMaxの片側または両側がnilの場合、minは0、maxは2147483647で補完する
//   - SegmentOffsetがnilの場合は [0, 10] で補完する
func NormalizeItemsRequest(req model.ItemsRequest) model.ItemsRequest {
	normalized := req

	if req.PriceMinMax != nil {
		var minPrice, maxPrice *int
		if len(req.PriceMinMax) > 0 {
			minPrice = req.PriceMinMax[0]
		}
		if len(req.PriceMinMax) > 1 {
			maxPrice = req.PriceMinMax[1]
		}
		if minPrice == nil {
			minPrice = intPtr(DefaultMinPrice)
		}
		if maxPrice == nil {
			maxPrice = intPtr(DefaultMaxPrice)
		}
		normalized.PriceMinMax = []*int{minPrice, maxPrice}
	}

	if req.SegmentOffset == nil {
		normalized.SegmentOffset = []int{0, DefaultSegmentSize}
	}

	return normalized
}

func intPtr(v int) *int {
	return &v
}
