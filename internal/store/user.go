package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hitoshi/yardclient/internal/model"
)

// UserService はユーザーサービスのインターフェース。
type UserService interface {
	Info(ctx context.Context) (*model.User, error)
	UpdateInfo(ctx context.Context, u model.User) error
	Items(ctx context.Context) (*model.ItemsResponse, error)
	AddItem(ctx context.Context, req model.AddItemRequest) error
	ItemDetail(ctx context.Context, req model.ItemRequest) (*model.Item, error)
	EditItem(ctx context.Context, req model.EditItemRequest) error
	DeleteItem(ctx context.Context, req model.DeleteItemRequest) error
	ToggleBookmark(ctx context.Context, req model.ToggleBookmarkRequest) error
	BookmarkedItems(ctx context.Context, req model.GetBookmarkedItemsRequest) ([]model.Item, error)
}

// ChatService はチャットサービスのインターフェース。
type ChatService interface {
	Chats(ctx context.Context) ([]model.Chat, error)
	Chat(ctx context.Context, req model.ChatRequest) (*model.Chat, error)
	SendMessage(ctx context.Context, req model.SendMessageRequest) error
}

// UserStore はプロフィール・自分の出品・ブックマーク・チャットの状態を保持する。
type UserStore struct {
	userService UserService
	chatService ChatService
	logger      *slog.Logger

	mu                      sync.Mutex
	user                    *model.User
	userItems               []model.Item
	item                    *model.Item
	isItemLoading           bool
	itemError               string
	bookmarkedItems         []model.Item
	newBookmarkedItemsCount int
	chats                   []model.Chat
	messagesNotSeen         int
}

// NewUserStore はUserStoreの新しいインスタンスを生成する。
func NewUserStore(userService UserService, chatService ChatService, logger *slog.Logger) *UserStore {
	return &UserStore{
		userService: userService,
		chatService: chatService,
		logger:      logger,
	}
}

// GetUserInfo はユーザー情報を取得して保持する。失敗時は直前の状態を保持する。
func (s *UserStore) GetUserInfo(ctx context.Context) {
	u, err := s.userService.Info(ctx)
	if err != nil {
		s.logger.Warn("ユーザー情報の取得に失敗しました", slog.String("error", err.Error()))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// PostUserInfo はユーザー情報を更新し、再取得して反映を確認する。
// 更新後の再取得結果のメールアドレスが送信した値と一致した場合のみtrueを返す。
func (s *UserStore) PostUserInfo(ctx context.Context, u model.User) bool {
	if err := s.userService.UpdateInfo(ctx, u); err != nil {
		s.logger.Warn("ユーザー情報の更新に失敗しました", slog.String("error", err.Error()))
		return false
	}
	fresh, err := s.userService.Info(ctx)
	if err != nil {
		s.logger.Warn("更新後のユーザー情報の再取得に失敗しました", slog.String("error", err.Error()))
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = fresh
	return fresh.Email == u.Email
}

// UpdateUserItems は自分の出品アイテム一覧を取得する。失敗時は空一覧にリセットする。
func (s *UserStore) UpdateUserItems(ctx context.Context) {
	resp, err := s.userService.Items(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Warn("出品アイテム一覧の取得に失敗しました", slog.String("error", err.Error()))
		s.userItems = []model.Item{}
		return
	}
	s.userItems = resp.Items
}

// PostItem は新しいアイテムを出品する。
func (s *UserStore) PostItem(ctx context.Context, req model.AddItemRequest) bool {
	if err := s.userService.AddItem(ctx, req); err != nil {
		s.logger.Warn("アイテムの出品に失敗しました", slog.String("error", err.Error()))
		return false
	}
	return true
}

// FetchUserItemDetails は自分の出品アイテムの詳細を取得する。
func (s *UserStore) FetchUserItemDetails(ctx context.Context, req model.ItemRequest) {
	s.mu.Lock()
	s.isItemLoading = true
	s.mu.Unlock()

	detail, err := s.userService.ItemDetail(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isItemLoading = false
	if err != nil {
		s.logger.Warn("出品アイテム詳細の取得に失敗しました", slog.String("error", err.Error()))
		s.itemError = errFetchItem
		return
	}
	s.item = detail
	s.itemError = ""
}

// UpdateItemDetails はアイテムを編集する。サーバー側の成功が確認できた場合のみ、
// 保持中の詳細（IDが一致する場合）と出品一覧内の該当エントリの両方を
// フィールド単位でパッチする。失敗時は状態に触れず固定エラー文字列を設定する。
func (s *UserStore) UpdateItemDetails(ctx context.Context, req model.EditItemRequest) bool {
	if err := s.userService.EditItem(ctx, req); err != nil {
		s.logger.Warn("アイテムの編集に失敗しました", slog.String("error", err.Error()))
		s.mu.Lock()
		s.itemError = errUpdateItem
		s.mu.Unlock()
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.item != nil && s.item.ItemID == req.ItemID {
		s.item.Name = req.Name
		s.item.Description = req.Description
		s.item.Price = req.Price
		s.item.Category = req.Category
	}
	for i := range s.userItems {
		if s.userItems[i].ItemID == req.ItemID {
			s.userItems[i].Name = req.Name
			s.userItems[i].Description = req.Description
			s.userItems[i].Price = req.Price
			s.userItems[i].Category = req.Category
			break
		}
	}
	s.itemError = ""
	return true
}

// DeleteItem は自分の出品アイテムを削除し、成功時は出品一覧からも取り除く。
func (s *UserStore) DeleteItem(ctx context.Context, req model.DeleteItemRequest) bool {
	if err := s.userService.DeleteItem(ctx, req); err != nil {
		s.logger.Warn("アイテムの削除に失敗しました", slog.String("error", err.Error()))
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.userItems[:0]
	for _, it := range s.userItems {
		if it.ItemID != req.ItemID {
			kept = append(kept, it)
		}
	}
	s.userItems = kept
	return true
}

// ToggleBookmark はアイテムのブックマーク状態をトグルする。
func (s *UserStore) ToggleBookmark(ctx context.Context, itemID int64) bool {
	if err := s.userService.ToggleBookmark(ctx, model.ToggleBookmarkRequest{ItemID: itemID}); err != nil {
		s.logger.Warn("ブックマークの切り替えに失敗しました", slog.String("error", err.Error()))
		return false
	}
	return true
}

// FetchBookmarkedItems はブックマーク済みアイテムを取得して一覧を置き換える。
func (s *UserStore) FetchBookmarkedItems(ctx context.Context, req model.GetBookmarkedItemsRequest) {
	items, err := s.userService.BookmarkedItems(ctx, req)
	if err != nil {
		s.logger.Warn("ブックマーク済みアイテムの取得に失敗しました", slog.String("error", err.Error()))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarkedItems = items
}

// LoadMoreBookmarkedItems は次のページを取得して既存の一覧に追記する。
func (s *UserStore) LoadMoreBookmarkedItems(ctx context.Context, req model.GetBookmarkedItemsRequest) {
	items, err := s.userService.BookmarkedItems(ctx, req)
	if err != nil {
		s.logger.Warn("ブックマーク済みアイテムの追加取得に失敗しました", slog.String("error", err.Error()))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarkedItems = append(s.bookmarkedItems, items...)
	s.newBookmarkedItemsCount = len(items)
}

// FetchChats は参加中の全チャットを取得し、未読メッセージ数を集計する。
func (s *UserStore) FetchChats(ctx context.Context) {
	chats, err := s.chatService.Chats(ctx)
	if err != nil {
		s.logger.Warn("チャット一覧の取得に失敗しました", slog.String("error", err.Error()))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = chats
	s.messagesNotSeen = countNotSeen(chats)
}

// OpenChat はチャットを開き、取得したメッセージをローカルで既読扱いにする。
// 既読化はサーバーの確認を待たない楽観的なローカル変更であり、
// リロード後も保持されることは保証しない。
func (s *UserStore) OpenChat(ctx context.Context, req model.ChatRequest) (*model.Chat, error) {
	c, err := s.chatService.Chat(ctx, req)
	if err != nil {
		s.logger.Warn("チャットの取得に失敗しました", slog.String("error", err.Error()))
		return nil, err
	}
	for i := range c.Messages {
		c.Messages[i].NotSeenByUser = false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.chats {
		if s.chats[i].Item.ItemID == req.ItemID {
			for j := range s.chats[i].Messages {
				s.chats[i].Messages[j].NotSeenByUser = false
			}
		}
	}
	s.messagesNotSeen = countNotSeen(s.chats)
	return c, nil
}

// SendMessage はチャットにメッセージを送信する。
func (s *UserStore) SendMessage(ctx context.Context, req model.SendMessageRequest) bool {
	if err := s.chatService.SendMessage(ctx, req); err != nil {
		s.logger.Warn("メッセージの送信に失敗しました", slog.String("error", err.Error()))
		return false
	}
	return true
}

// User は保持中のユーザー情報を返す。未取得の場合はnil。
func (s *UserStore) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	cp := *s.user
	return &cp
}

// UserItems は保持中の出品アイテム一覧のコピーを返す。
func (s *UserStore) UserItems() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Item, len(s.userItems))
	copy(out, s.userItems)
	return out
}

// Item は保持中の出品アイテム詳細を返す。未取得の場合はnil。
func (s *UserStore) Item() *model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.item == nil {
		return nil
	}
	cp := *s.item
	return &cp
}

// IsItemLoading は詳細取得中かどうかを返す。
func (s *UserStore) IsItemLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isItemLoading
}

// ItemError は詳細取得・編集のエラーメッセージを返す。
func (s *UserStore) ItemError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemError
}

// BookmarkedItems は保持中のブックマーク済みアイテム一覧のコピーを返す。
func (s *UserStore) BookmarkedItems() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Item, len(s.bookmarkedItems))
	copy(out, s.bookmarkedItems)
	return out
}

// NewBookmarkedItemsCount は直近の追加取得で受信した件数を返す。
func (s *UserStore) NewBookmarkedItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newBookmarkedItemsCount
}

// Chats は保持中のチャット一覧のコピーを返す。
func (s *UserStore) Chats() []model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Chat, len(s.chats))
	copy(out, s.chats)
	return out
}

// MessagesNotSeen は未読メッセージの総数を返す。
func (s *UserStore) MessagesNotSeen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messagesNotSeen
}

// countNotSeen はチャット一覧全体の未読メッセージ数を数える。
func countNotSeen(chats []model.Chat) int {
	count := 0
	for _, c := range chats {
		for _, m := range c.Messages {
			if m.NotSeenByUser {
				count++
			}
		}
	}
	return count
}
