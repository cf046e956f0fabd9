// Package model はドメインモデルとバックエンドAPIのDTOを定義する。
package model

// Bid は入札を表す。売り手・買い手の表示名の結合はバックエンド側で行われ、
// クライアントは結合済みのリードモデルを受け取るだけでジョインは行わない。
type Bid struct {
	BidID       int64  `json:"bidID"`
	ItemID      int64  `json:"itemID"`
	UserID      int64  `json:"userID"`
	AskingPrice int    `json:"askingPrice"`
	Status      string `json:"status"`
	Published   string `json:"published"`
	ItemName    string `json:"itemName"`
	Email       string `json:"email"`
}

// PlaceBid は入札の書き込み専用DTO。itemIDと希望価格のみを運ぶ。
type PlaceBid struct {
	ItemID      int64 `json:"itemID"`
	AskingPrice int   `json:"askingPrice"`
}

// BidOnItemByUserRequest は特定アイテムに対する特定ユーザーの入札一覧リクエスト。
type BidOnItemByUserRequest struct {
	ItemID        int64 `json:"itemID"`
	UserID        int64 `json:"userID"`
	SegmentOffset []int `json:"segmentOffset"`
}

// BidOnItemByUserResponse は入札詳細のリードモデル。
type BidOnItemByUserResponse struct {
	BidID       int64  `json:"bidID"`
	ItemID      int64  `json:"itemID"`
	AskingPrice int    `json:"askingPrice"`
	Status      string `json:"status"`
	Published   string `json:"published"`
}

// UserBidItemsRequest は自分が入札したアイテム一覧のリクエスト。
type UserBidItemsRequest struct {
	SegmentOffset []int `json:"segmentOffset"`
}

// UserBidItemsResponse は自分が入札したアイテムと出品者の組。
type UserBidItemsResponse struct {
	ItemID   int64  `json:"itemID"`
	UserID   int64  `json:"userID"`
	ItemName string `json:"itemName"`
	Seller   string `json:"seller"`
}

// UsersWithBidOnUserItemRequest は自分の出品への入札者一覧のリクエスト。
type UsersWithBidOnUserItemRequest struct {
	SegmentOffset []int `json:"segmentOffset"`
}

// UsersWithBidOnUserItemResponse は自分の出品アイテムと入札者の組。
type UsersWithBidOnUserItemResponse struct {
	ItemID   int64  `json:"itemID"`
	UserID   int64  `json:"userID"`
	ItemName string `json:"itemName"`
	Buyer    string `json:"buyer"`
}

// BidsFromUsersOnUserItemRequest は自分の出品に対する特定ユーザーの入札一覧リクエスト。
type BidsFromUsersOnUserItemRequest struct {
	ItemID        int64 `json:"itemID"`
	UserID        int64 `json:"userID"`
	SegmentOffset []int `json:"segmentOffset"`
}

// BidsFromUsersOnUserItemResponse は自分の出品に対する入札のリードモデル。
type BidsFromUsersOnUserItemResponse struct {
	BidID       int64  `json:"bidID"`
	ItemID      int64  `json:"itemID"`
	AskingPrice int    `json:"askingPrice"`
	Status      string `json:"status"`
	Published   string `json:"published"`
}

// AnswerBidRequest は自分の出品への入札に対する承諾・拒否リクエスト。
type AnswerBidRequest struct {
	BidID  int64 `json:"bidID"`
	Accept bool  `json:"accept"`
}

// ItemWithBids はアイテムとそれに対する自分の入札履歴の集約。
// ビッドストアがN件のアイテムごとの入札フェッチを組み立てて生成する。
type ItemWithBids struct {
	Item UserBidItemsResponse      `json:"item"`
	Bids []BidOnItemByUserResponse `json:"bids"`
}

// UserWithBids は入札者とその入札履歴の集約。
type UserWithBids struct {
	User UsersWithBidOnUserItemResponse    `json:"user"`
	Bids []BidsFromUsersOnUserItemResponse `json:"bids"`
}
