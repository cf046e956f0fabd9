// Package app はCLIのエントリーポイントと依存関係のワイヤリングを提供する。
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/yardclient/internal/auth"
	"github.com/hitoshi/yardclient/internal/bid"
	"github.com/hitoshi/yardclient/internal/chat"
	"github.com/hitoshi/yardclient/internal/client"
	"github.com/hitoshi/yardclient/internal/config"
	"github.com/hitoshi/yardclient/internal/item"
	"github.com/hitoshi/yardclient/internal/logger"
	"github.com/hitoshi/yardclient/internal/metrics"
	"github.com/hitoshi/yardclient/internal/model"
	"github.com/hitoshi/yardclient/internal/security"
	"github.com/hitoshi/yardclient/internal/store"
	"github.com/hitoshi/yardclient/internal/user"
)

// Version はビルド時に-ldflagsで上書きされるバージョン文字列。
var Version = "dev"

// Stores はアプリケーションインスタンスごとに生成される状態コンテナの束。
// シングルトンのグローバル参照は行わず、利用側へ明示的に渡す。
type Stores struct {
	Item *store.ItemStore
	User *store.UserStore
	Bid  *store.BidStore
	Auth *store.AuthStore
}

// Init はアプリケーションの初期化を行う。
// JSON構造化ログをセットアップし、環境変数からConfigを読み込む。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Wire はConfigから全依存関係を組み立ててストアの束を返す。
func Wire(cfg *config.Config, log *slog.Logger, reg *prometheus.Registry) (*Stores, error) {
	collector := metrics.NewCollector(reg)

	cli, err := client.New(cfg.BaseURL, log, client.Options{
		Timeout:      cfg.HTTPTimeout,
		RateLimitRPS: cfg.RateLimitRPS,
		Metrics:      collector,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build http client: %w", err)
	}

	descSanitizer := security.NewDescriptionSanitizer()
	itemService := item.NewService(cli, descSanitizer, log)
	userService := user.NewService(cli, descSanitizer, log)
	authService := auth.NewService(cli, log)
	bidService := bid.NewService(cli, log)
	chatService := chat.NewService(cli, security.NewMessageSanitizer(), log)

	return &Stores{
		Item: store.NewItemStore(itemService, collector, log),
		User: store.NewUserStore(userService, chatService, log),
		Bid:  store.NewBidStore(bidService, log, cfg.MaxConcurrentBidFetch),
		Auth: store.NewAuthStore(authService, userService, log),
	}, nil
}

// Run はアプリケーションのメインエントリーポイント。
// サブコマンドを解析して実行し、結果をJSONでwに出力する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd, rest := ParseCommand(args)

	// version は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandVersion {
		fmt.Fprintln(w, Version)
		return nil
	}

	cfg, err := Init(os.Stderr)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("クライアントを起動します",
		slog.String("command", string(cmd)),
		slog.String("base_url", cfg.BaseURL),
	)

	reg := prometheus.NewRegistry()
	stores, err := Wire(cfg, slog.Default(), reg)
	if err != nil {
		return err
	}

	// メトリクスリスナーはポートが指定された場合のみ起動する
	if cfg.MetricsPort != "" {
		go func() {
			addr := ":" + cfg.MetricsPort
			slog.Info("メトリクスリスナーを起動します", slog.String("addr", addr))
			if err := http.ListenAndServe(addr, metrics.SetupMetricsRoute(reg)); err != nil {
				slog.Error("メトリクスリスナーが停止しました", slog.String("error", err.Error()))
			}
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout(cfg.HTTPTimeout))
	defer cancel()

	switch cmd {
	case CommandCategories:
		return runCategories(ctx, w, stores)
	case CommandItem:
		return runItem(ctx, w, stores, cfg, rest)
	case CommandRecommended:
		return runRecommended(ctx, w, cfg, slog.Default())
	case CommandWhoami:
		return runWhoami(ctx, w, stores)
	default:
		return runSearch(ctx, w, stores, cfg, rest)
	}
}

// runSearch はアイテムを検索して一覧をJSONで出力する。
// 先頭の引数を検索ワードとして扱う（省略時は全件の先頭ページ）。
func runSearch(ctx context.Context, w io.Writer, stores *Stores, cfg *config.Config, args []string) error {
	req := model.ItemsRequest{
		SegmentOffset: []int{0, cfg.PageSize},
	}
	if len(args) > 0 && args[0] != "" {
		word := args[0]
		req.SearchWord = &word
	}

	stores.Item.FetchItems(ctx, req)
	if msg := stores.Item.ItemsError(); msg != "" {
		return errors.New(msg)
	}
	return writeJSON(w, stores.Item.Items())
}

// runCategories はカテゴリ一覧をJSONで出力する。
func runCategories(ctx context.Context, w io.Writer, stores *Stores) error {
	stores.Item.FetchCategories(ctx)
	if msg := stores.Item.CategoriesError(); msg != "" {
		return errors.New(msg)
	}
	return writeJSON(w, stores.Item.Categories())
}

// itemOutput はitemサブコマンドの出力形式。
// 画像は出品者が指定した外部URLからSSRF検証付きで取得し、
// 取得できた場合のみサイズとMIMEタイプを添える。
type itemOutput struct {
	Item      *model.Item `json:"item"`
	ImageSize int         `json:"imageSize,omitempty"`
	ImageMime string      `json:"imageMime,omitempty"`
}

// runItem はアイテム詳細をJSONで出力する。引数にアイテムIDが必要。
func runItem(ctx context.Context, w io.Writer, stores *Stores, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return errors.New("item: アイテムIDを指定してください")
	}
	itemID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("item: 無効なアイテムIDです: %s", args[0])
	}

	stores.Item.FetchItemDetails(ctx, model.ItemRequest{ItemID: itemID})
	if msg := stores.Item.ItemError(); msg != "" {
		return errors.New(msg)
	}

	out := itemOutput{Item: stores.Item.Item()}
	if out.Item != nil && out.Item.ImageURL != "" {
		fetcher := item.NewImageFetcher(security.NewSSRFGuard(), cfg.ImageTimeout, cfg.ImageMaxSize)
		data, mime, _ := fetcher.FetchImage(ctx, out.Item.ImageURL)
		out.ImageSize = len(data)
		out.ImageMime = mime
	}
	return writeJSON(w, out)
}

// runRecommended はおすすめアイテム一覧をJSONで出力する。
// ストアを経由しない読み取り専用の補助コマンドのため、サービスを直接呼ぶ。
func runRecommended(ctx context.Context, w io.Writer, cfg *config.Config, log *slog.Logger) error {
	cli, err := client.New(cfg.BaseURL, log, client.Options{
		Timeout:      cfg.HTTPTimeout,
		RateLimitRPS: cfg.RateLimitRPS,
	})
	if err != nil {
		return err
	}
	resp, err := item.NewService(cli, security.NewDescriptionSanitizer(), log).Recommended(ctx)
	if err != nil {
		return err
	}
	return writeJSON(w, resp.Items)
}

// whoamiOutput はwhoamiサブコマンドの出力形式。
type whoamiOutput struct {
	Authenticated bool        `json:"authenticated"`
	User          *model.User `json:"user,omitempty"`
}

// runWhoami は認証状態と現在のユーザーをJSONで出力する。
// 未認証はエラーではなく authenticated=false として報告する。
func runWhoami(ctx context.Context, w io.Writer, stores *Stores) error {
	ok := stores.Auth.CheckIfAuth(ctx)
	return writeJSON(w, whoamiOutput{
		Authenticated: ok,
		User:          stores.Auth.UserData(),
	})
}

// writeJSON は値をインデント付きJSONとしてwに出力する。
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// commandTimeout はコマンド全体のタイムアウトを返す。
// 1コマンドは複数のリクエストを発行しうるため、HTTPタイムアウトの3倍を上限とし、
// 極端に小さい設定でも即時失敗しないよう下限を設ける。
func commandTimeout(base time.Duration) time.Duration {
	if base < time.Second {
		return 3 * time.Second
	}
	return base * 3
}
