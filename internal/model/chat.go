// Package model はドメインモデルとバックエンドAPIのDTOを定義する。
package model

// Message はチャット内の1メッセージを表す。
type Message struct {
	MessageID int64  `json:"messageID"`
	SenderID  int64  `json:"senderID"`
	Message   string `json:"message"`
	// NotSeenByUser はユーザーが未読の場合にtrue。
	// チャットを開いた時点でクライアント側が楽観的にfalseへ倒す。
	// この変更はローカルのUIヒントであり、リロード後の保持は保証しない。
	NotSeenByUser bool   `json:"notSeenByUser"`
	Published     string `json:"published"`
}

// Chat は1つのアイテムを巡る買い手と売り手の会話の集約。
// メッセージ列と両当事者、対象アイテムを保持する。
type Chat struct {
	Messages []Message `json:"messages"`
	Buyer    User      `json:"buyer"`
	Seller   User      `json:"seller"`
	Item     Item      `json:"item"`
}

// ChatRequest は特定チャットの取得リクエスト。
// アイテムと相手方ユーザーの組でチャットを特定する。
type ChatRequest struct {
	ItemID int64 `json:"itemID"`
	UserID int64 `json:"userID"`
}

// SendMessageRequest はメッセージ送信リクエスト。
type SendMessageRequest struct {
	ItemID  int64  `json:"itemID"`
	UserID  int64  `json:"userID"`
	Message string `json:"message"`
}
